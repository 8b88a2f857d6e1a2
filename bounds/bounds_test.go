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

package bounds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/creditrisk/prudentpd-go/grades"
)

var portfolioCounts = []uint64{50, 60, 120, 70, 150, 180, 160, 200, 190, 180, 210, 230, 220, 80, 70, 30, 0, 0, 0}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTailCounts(t *testing.T) {
	testCases := []struct {
		name string
		freq []int
		want []int
	}{
		{name: "empty", freq: []int{}, want: []int{}},
		{name: "single", freq: []int{7}, want: []int{7}},
		{name: "all zero", freq: []int{0, 0, 0}, want: []int{0, 0, 0}},
		{name: "mixed", freq: []int{1, 2, 3, 0, 4}, want: []int{10, 9, 7, 4, 4}},
		{name: "trailing zeros", freq: []int{5, 0, 0}, want: []int{5, 0, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TailCounts(tc.freq))
		})
	}
}

func TestTailCountsInvariants(t *testing.T) {
	tail := TailCounts(portfolioCounts)
	require.Len(t, tail, len(portfolioCounts))

	last := len(tail) - 1
	assert.Equal(t, portfolioCounts[last], tail[last])
	for i := 0; i < last; i++ {
		assert.GreaterOrEqual(t, tail[i], tail[i+1], "index %d", i)
		assert.Equal(t, portfolioCounts[i]+tail[i+1], tail[i])
	}
	assert.Equal(t, uint64(2200), tail[0])
}

func TestUpperBoundZeroOwnCount(t *testing.T) {
	for _, gamma := range []float64{0.01, 0.5, 0.9, 0.999} {
		for _, tail := range []uint64{0, 1, 30, 5000} {
			assert.Equal(t, 1.0, UpperBound(0, tail, gamma), "gamma=%v tail=%d", gamma, tail)
		}
	}
}

func TestUpperBoundFormula(t *testing.T) {
	for _, gamma := range []float64{0.5, 0.9, 0.95, 0.999} {
		for _, tail := range []uint64{1, 2, 10, 100, 2200} {
			got := UpperBound(1, tail, gamma)
			want := 1 - math.Pow(1-gamma, 1/float64(tail))
			assert.InDelta(t, want, got, 1e-14)
			assert.Greater(t, got, 0.0)
			assert.Less(t, got, 1.0)
		}
	}
}

func TestUpperBoundLoosensAsTailShrinks(t *testing.T) {
	prev := 0.0
	for tail := uint64(5000); tail >= 1; tail /= 2 {
		got := UpperBound(1, tail, 0.9)
		assert.GreaterOrEqual(t, got, prev, "tail=%d", tail)
		prev = got
	}
}

func TestUpperBoundsPortfolio(t *testing.T) {
	scale := grades.MasterScale()
	b, err := UpperBounds(scale, portfolioCounts, 0.95)
	require.NoError(t, err)
	require.Equal(t, 19, b.Len())

	for _, g := range []string{"7+", "7", "7-"} {
		v, ok := b.Get(g)
		require.True(t, ok)
		assert.Equal(t, 1.0, v, "grade %s", g)
	}

	top, ok := b.Get("1")
	require.True(t, ok)
	assert.InDelta(t, 1-math.Pow(0.05, 1.0/2200), top, 1e-15)
	assert.InDelta(t, 0.0013608, top, 1e-7)

	// "6-" has 30 obligors and nothing below it
	v, ok := b.Get("6-")
	require.True(t, ok)
	assert.InDelta(t, 1-math.Pow(0.05, 1.0/30), v, 1e-15)

	values := b.Values()
	for i := 0; i < 16; i++ {
		assert.Greater(t, values[i], 0.0)
		assert.Less(t, values[i], 1.0)
		assert.LessOrEqual(t, values[i], values[i+1])
	}
}

func TestUpperBoundsZeroOwnCountWithPopulatedTail(t *testing.T) {
	scale, err := grades.NewScale("A", "B", "C")
	require.NoError(t, err)

	b, err := UpperBounds(scale, []int{10, 0, 25}, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.At(1))
	assert.InDelta(t, 1-math.Pow(0.1, 1.0/35), b.At(0), 1e-15)
	assert.InDelta(t, 1-math.Pow(0.1, 1.0/25), b.At(2), 1e-15)
}

func TestUpperBoundsErrors(t *testing.T) {
	scale := grades.MasterScale()
	testCases := []struct {
		name    string
		freq    []int64
		gamma   float64
		wantErr error
	}{
		{name: "gamma zero", freq: make([]int64, 19), gamma: 0, wantErr: grades.ErrInvalidParameter},
		{name: "gamma one", freq: make([]int64, 19), gamma: 1, wantErr: grades.ErrInvalidParameter},
		{name: "gamma negative", freq: make([]int64, 19), gamma: -0.5, wantErr: grades.ErrInvalidParameter},
		{name: "gamma NaN", freq: make([]int64, 19), gamma: math.NaN(), wantErr: grades.ErrInvalidParameter},
		{name: "too short", freq: make([]int64, 18), gamma: 0.9, wantErr: grades.ErrShapeMismatch},
		{name: "too long", freq: make([]int64, 20), gamma: 0.9, wantErr: grades.ErrShapeMismatch},
		{name: "negative count", freq: append(make([]int64, 18), -1), gamma: 0.9, wantErr: grades.ErrInvalidParameter},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := UpperBounds(scale, tc.freq, tc.gamma)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, b)
		})
	}
}

func TestBoundsAccessors(t *testing.T) {
	scale, err := grades.NewScale("A", "B", "C")
	require.NoError(t, err)
	b, err := UpperBounds(scale, []uint8{3, 2, 1}, 0.5)
	require.NoError(t, err)

	assert.Same(t, scale, b.Scale())

	sub, err := b.Subset([]string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []float64{b.At(2), b.At(0)}, sub)

	_, err = b.Subset([]string{"Z"})
	assert.ErrorIs(t, err, grades.ErrInvalidParameter)

	_, ok := b.Get("Z")
	assert.False(t, ok)

	m := b.Map()
	assert.Len(t, m, 3)
	assert.Equal(t, b.At(1), m["B"])

	values := b.Values()
	values[0] = 42
	assert.NotEqual(t, 42.0, b.At(0))
}
