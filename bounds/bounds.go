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

// Package bounds computes most prudent upper bounds on the probability of default of
// each rating grade (Pluto and Tasche, "Estimating Probabilities of Default for Low
// Default Portfolios", section 2).
//
// With no defaults observed, the bound for a grade is derived from the number of
// obligors in that grade and every worse grade (the tail count):
//
//	bound = 1 - (1 - gamma)^(1 / tail)
//
// A grade with no obligors of its own gets a bound of 1.0, even when worse grades are
// populated. This deliberately departs from the literal formula, which would still
// produce a finite bound from the tail count.
package bounds

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/creditrisk/prudentpd-go/grades"
	"github.com/creditrisk/prudentpd-go/internal/binomialbounds"
)

// UpperBound returns the prudent PD bound for one grade given its own count, its tail
// count and the confidence level gamma. The caller guarantees tail >= own.
func UpperBound(own, tail uint64, gamma float64) float64 {
	if own == 0 {
		return 1.0
	}
	return binomialbounds.ZeroDefaultUpperBound(tail, gamma)
}

// Bounds holds one PD bound per grade of a scale.
type Bounds struct {
	scale  *grades.Scale
	values []float64
}

// UpperBounds computes the prudent PD bound of every grade for a single observation
// period. freq is ordered like scale (best to worst) and gamma must lie in (0, 1).
func UpperBounds[T constraints.Integer](scale *grades.Scale, freq []T, gamma float64) (*Bounds, error) {
	if err := ValidateConfidence(gamma); err != nil {
		return nil, err
	}
	if err := scale.CheckLen(len(freq)); err != nil {
		return nil, err
	}
	counts, err := toCounts(scale, freq)
	if err != nil {
		return nil, err
	}
	return upperBounds(scale, counts, gamma), nil
}

// upperBounds assumes validated inputs.
func upperBounds(scale *grades.Scale, counts []uint64, gamma float64) *Bounds {
	tail := TailCounts(counts)
	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = UpperBound(c, tail[i], gamma)
	}
	return &Bounds{scale: scale, values: values}
}

// ValidateConfidence returns grades.ErrInvalidParameter unless gamma lies strictly
// inside (0, 1).
func ValidateConfidence(gamma float64) error {
	if !(gamma > 0 && gamma < 1) {
		return fmt.Errorf("%w: confidence level must be in (0, 1): %v", grades.ErrInvalidParameter, gamma)
	}
	return nil
}

func toCounts[T constraints.Integer](scale *grades.Scale, freq []T) ([]uint64, error) {
	counts := make([]uint64, len(freq))
	for i, f := range freq {
		if f < 0 {
			return nil, fmt.Errorf("%w: negative count %d for grade %q", grades.ErrInvalidParameter, f, scale.Label(i))
		}
		counts[i] = uint64(f)
	}
	return counts, nil
}

// Scale returns the scale the bounds are ordered by.
func (b *Bounds) Scale() *grades.Scale {
	return b.scale
}

// Len returns the number of grades.
func (b *Bounds) Len() int {
	return len(b.values)
}

// At returns the bound of the grade at position i.
func (b *Bounds) At(i int) float64 {
	return b.values[i]
}

// Values returns a copy of the bounds, best grade first.
func (b *Bounds) Values() []float64 {
	return slices.Clone(b.values)
}

// Get returns the bound of the given grade.
func (b *Bounds) Get(grade string) (float64, bool) {
	i, ok := b.scale.Index(grade)
	if !ok {
		return 0, false
	}
	return b.values[i], true
}

// Subset returns the bounds of the given grades, in the order requested.
func (b *Bounds) Subset(gradeLabels []string) ([]float64, error) {
	idx, err := b.scale.Indices(gradeLabels)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = b.values[j]
	}
	return out, nil
}

// Map returns the bounds keyed by grade label.
func (b *Bounds) Map() map[string]float64 {
	m := make(map[string]float64, len(b.values))
	for i, v := range b.values {
		m[b.scale.Label(i)] = v
	}
	return m
}
