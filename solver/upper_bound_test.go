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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditrisk/prudentpd-go/bounds"
	"github.com/creditrisk/prudentpd-go/grades"
)

func TestUpperBoundInvertsBetaGamma(t *testing.T) {
	testCases := []struct {
		n uint64
		k uint64
	}{
		{n: 100, k: 3},
		{n: 1000, k: 20},
		{n: 50, k: 49},
		{n: 12, k: 6},
	}
	for _, tc := range testCases {
		obs := Observation{N: tc.n, K: tc.k}
		for _, gamma := range []float64{0.5, 0.9, 0.95, 0.999} {
			p, err := UpperBound(obs, gamma)
			require.NoError(t, err)
			g, err := BetaGamma(obs, p)
			require.NoError(t, err)
			assert.InDelta(t, gamma, g, 1e-8, "n=%d k=%d gamma=%v", tc.n, tc.k, gamma)

			g, err = BinomialGamma(obs, p)
			require.NoError(t, err)
			assert.InDelta(t, gamma, g, 1e-8, "n=%d k=%d gamma=%v", tc.n, tc.k, gamma)
		}
	}
}

func TestUpperBoundWithoutDefaultsIsPrudentBound(t *testing.T) {
	for _, n := range []uint64{1, 30, 2200} {
		p, err := UpperBound(Observation{N: n}, 0.95)
		require.NoError(t, err)
		assert.InDelta(t, bounds.UpperBound(1, n, 0.95), p, 1e-15)
		assert.InDelta(t, 1-math.Pow(0.05, 1/float64(n)), p, 1e-15)
	}
}

func TestUpperBoundAllDefaulted(t *testing.T) {
	p, err := UpperBound(Observation{N: 7, K: 7}, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestUpperBoundValidation(t *testing.T) {
	for _, gamma := range []float64{0, 1, -1, math.NaN()} {
		_, err := UpperBound(Observation{N: 10, K: 1}, gamma)
		assert.ErrorIs(t, err, grades.ErrInvalidParameter, "gamma=%v", gamma)
		assert.ErrorContains(t, err, "confidence level")

		_, err = ApproximateUpperBound(Observation{N: 10, K: 1}, gamma)
		assert.ErrorIs(t, err, grades.ErrInvalidParameter, "gamma=%v", gamma)
	}
	_, err := UpperBound(Observation{N: 3, K: 4}, 0.9)
	assert.ErrorIs(t, err, grades.ErrInvalidParameter)
}

func TestApproximateUpperBound(t *testing.T) {
	testCases := []struct {
		name  string
		obs   Observation
		exact bool
	}{
		{name: "no defaults", obs: Observation{N: 400}, exact: true},
		{name: "one survivor", obs: Observation{N: 40, K: 39}, exact: true},
		{name: "all defaulted", obs: Observation{N: 40, K: 40}, exact: true},
		{name: "few defaults", obs: Observation{N: 1000, K: 20}},
		{name: "half defaulted", obs: Observation{N: 200, K: 100}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			want, err := UpperBound(tc.obs, 0.95)
			require.NoError(t, err)
			got, err := ApproximateUpperBound(tc.obs, 0.95)
			require.NoError(t, err)
			if tc.exact {
				assert.InDelta(t, want, got, 1e-10)
				return
			}
			assert.InEpsilon(t, want, got, 0.05)
		})
	}
}
