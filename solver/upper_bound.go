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

package solver

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/creditrisk/prudentpd-go/internal/binomialbounds"
)

// UpperBound returns the exact (Clopper-Pearson) upper confidence bound on the PD of a
// grade with the given default experience: the p at which BetaGamma(obs, p) equals
// gamma. With no defaults it reduces to the most prudent bound 1 - (1-gamma)^(1/n);
// with every obligor defaulted it is 1.
func UpperBound(obs Observation, gamma float64) (float64, error) {
	if err := obs.Validate(); err != nil {
		return 0, err
	}
	if err := validateConfidence(gamma); err != nil {
		return 0, err
	}
	switch obs.K {
	case obs.N:
		return 1.0, nil
	case 0:
		return binomialbounds.ZeroDefaultUpperBound(obs.N, gamma), nil
	}
	return distuv.Beta{Alpha: float64(obs.K + 1), Beta: float64(obs.N - obs.K)}.Quantile(gamma), nil
}

// ApproximateUpperBound is a closed-form approximation of UpperBound that avoids
// inverting the incomplete beta function. It is exact for k = 0, k = n-1 and k = n.
func ApproximateUpperBound(obs Observation, gamma float64) (float64, error) {
	if err := obs.Validate(); err != nil {
		return 0, err
	}
	if err := validateConfidence(gamma); err != nil {
		return 0, err
	}
	return binomialbounds.ApproximateUpperBound(obs.N, obs.K, gamma)
}
