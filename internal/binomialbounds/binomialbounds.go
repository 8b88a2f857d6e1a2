/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package binomialbounds computes one-sided upper confidence bounds on the success
// probability of a binomial experiment.
//
//   - n is the number of independent trials (obligors observed). It is known.
//   - p is the probability of a trial being a success (a default). It is unknown.
//   - k is the number of successes observed out of n.
//   - confidence is the one-sided confidence level gamma in (0, 1).
//
// The upper bound is the p for which P[Binomial(n, p) <= k] = 1 - confidence.
// For k = 0 this has the closed form 1 - (1-confidence)^(1/n), which is the
// most prudent estimation bound. For 0 < k < n-1 the bound is approximated.
package binomialbounds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZeroDefaultUpperBound returns 1 - (1-confidence)^(1/n), the exact upper bound when no
// defaults were observed among n trials. n must be positive and confidence in (0, 1).
func ZeroDefaultUpperBound(n uint64, confidence float64) float64 {
	// expm1/log1p keep precision when the bound is tiny.
	return -math.Expm1(math.Log1p(-confidence) / float64(n))
}

// ApproximateUpperBound computes the upper bound of an approximate Clopper-Pearson
// interval. The parameter k cannot exceed n and confidence must lie in (0, 1).
//
// Implementation Notes:
// The bound is defined with respect to the left tail of the binomial distribution.
//   - We want to solve for the p for which sum_{j,0,k}bino(j;n,p) = 1 - confidence.
//   - Define x = 1-p.
//   - We want to solve for the x for which I_x(n-k,k+1) = 1 - confidence.
//   - The right tail of the standard normal at yp = quantile(confidence) carries the
//     same probability 1 - confidence.
//   - return p = 1-x.
func ApproximateUpperBound(n, k uint64, confidence float64) (float64, error) {
	if k > n {
		return 0, fmt.Errorf("k cannot exceed n: n=%d, k=%d", n, k)
	}
	if !(confidence > 0 && confidence < 1) {
		return 0, fmt.Errorf("confidence must be in (0, 1): %v", confidence)
	}
	switch {
	case n == 0:
		return 1.0, nil // no trials, nothing is known
	case k == n:
		return 1.0, nil
	case k == n-1:
		return math.Pow(confidence, 1.0/float64(n)), nil
	case k == 0:
		return ZeroDefaultUpperBound(n, confidence), nil
	}
	yp := distuv.UnitNormal.Quantile(confidence)
	x := abramowitzStegunFormula26p5p22(float64(n-k), float64(k+1), yp)
	return 1.0 - x, nil
}

// abramowitzStegunFormula26p5p22 is Formula 26.5.22 on page 945 of Abramowitz & Stegun,
// an approximation of the inverse of the incomplete beta function I_x(a,b) = delta seen
// as a function of x. delta is given through yp, the number of standard deviations that
// leaves delta in the right tail of a standard normal.
//
// Variable names follow the book so the formula can be checked against it.
func abramowitzStegunFormula26p5p22(a, b, yp float64) float64 {
	b2m1 := (2.0 * b) - 1.0
	a2m1 := (2.0 * a) - 1.0
	lambda := ((yp * yp) - 3.0) / 6.0
	htmp := (1.0 / a2m1) + (1.0 / b2m1)
	h := 2.0 / htmp
	term1 := (yp * math.Sqrt(h+lambda)) / h
	term2 := (1.0 / b2m1) - (1.0 / a2m1)
	term3 := (lambda + (5.0 / 6.0)) - (2.0 / (3.0 * h))
	w := term1 - (term2 * term3)
	return a / (a + (b * math.Exp(2.0*w)))
}
