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

// Package solver finds the confidence level implied by an observed default count and a
// reference PD.
//
// For a grade with n obligors, k defaults and reference PD p, the implied gamma is the
// probability that a Binomial(n, p) variable exceeds k. The same number is the CDF of a
// Beta(k+1, n-k) distribution at p. Both are computed, independently, so they can be
// checked against each other:
//
//	gamma = 1 - F_Binomial(k; n, p) = F_Beta(p; k+1, n-k)
//
// The beta form is undefined when every obligor defaulted (n == k).
package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/creditrisk/prudentpd-go/grades"
)

// tailEpsilon stops a PMF summation once terms no longer change the sum.
const tailEpsilon = 1e-17

// ErrDegenerateInput reports that the beta form is undefined because n == k.
var ErrDegenerateInput = errors.New("degenerate input")

// Result holds the implied confidence level of one grade computed both ways.
type Result struct {
	Binomial float64
	Beta     float64
}

// BinomialGamma returns P[Binomial(n, p) > k], summing binomial probabilities directly.
func BinomialGamma(obs Observation, pd float64) (float64, error) {
	if err := obs.Validate(); err != nil {
		return 0, err
	}
	if err := validateProbability("reference PD", pd); err != nil {
		return 0, err
	}
	return binomialSurvival(obs.N, obs.K, pd), nil
}

// BetaGamma returns the CDF of Beta(k+1, n-k) at pd. It fails with ErrDegenerateInput
// when n == k.
func BetaGamma(obs Observation, pd float64) (float64, error) {
	if err := obs.Validate(); err != nil {
		return 0, err
	}
	if err := validateProbability("reference PD", pd); err != nil {
		return 0, err
	}
	if obs.N == obs.K {
		return 0, fmt.Errorf("%w: beta shape n-k is zero for n=k=%d", ErrDegenerateInput, obs.N)
	}
	return distuv.Beta{Alpha: float64(obs.K + 1), Beta: float64(obs.N - obs.K)}.CDF(pd), nil
}

// Solve computes both forms. When the beta form is degenerate the error wraps
// ErrDegenerateInput and Result.Binomial is still set.
func Solve(obs Observation, pd float64) (Result, error) {
	binomial, err := BinomialGamma(obs, pd)
	if err != nil {
		return Result{}, err
	}
	beta, err := BetaGamma(obs, pd)
	if err != nil {
		return Result{Binomial: binomial}, err
	}
	return Result{Binomial: binomial, Beta: beta}, nil
}

// SolveScale solves every grade of scale. obs and pds are ordered like scale.
func SolveScale(scale *grades.Scale, obs []Observation, pds []float64) ([]Result, error) {
	if err := scale.CheckLen(len(obs)); err != nil {
		return nil, fmt.Errorf("observations: %w", err)
	}
	if err := scale.CheckLen(len(pds)); err != nil {
		return nil, fmt.Errorf("reference PDs: %w", err)
	}
	results := make([]Result, len(obs))
	for i := range obs {
		res, err := Solve(obs[i], pds[i])
		if err != nil {
			return nil, fmt.Errorf("grade %q: %w", scale.Label(i), err)
		}
		results[i] = res
	}
	return results, nil
}

// binomialSurvival returns P[X > k] for X ~ Binomial(n, p).
func binomialSurvival(n, k uint64, p float64) float64 {
	switch {
	case k >= n, p == 0:
		return 0
	case p == 1:
		return 1
	}

	dist := distuv.Binomial{N: float64(n), P: p}
	mean := float64(n) * p

	// Below the mean the lower tail is the shorter sum and the survival is not small,
	// so the complement loses no relative precision.
	if float64(k) < mean {
		var lower float64
		for j := int64(k); j >= 0; j-- {
			term := dist.Prob(float64(j))
			lower += term
			if term <= lower*tailEpsilon {
				break
			}
		}
		return math.Max(1-lower, 0)
	}

	var upper float64
	for j := k + 1; j <= n; j++ {
		term := dist.Prob(float64(j))
		upper += term
		if term <= upper*tailEpsilon {
			break
		}
	}
	return math.Min(upper, 1)
}
