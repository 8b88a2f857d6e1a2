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
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/creditrisk/prudentpd-go/grades"
)

// FrequencyTable maps observation periods to per-grade obligor counts, all ordered by
// the same scale. Periods keep their insertion order.
//
// A FrequencyTable is not safe for concurrent mutation. Reads may run concurrently
// once it is fully populated.
type FrequencyTable struct {
	scale   *grades.Scale
	periods []string
	counts  map[string][]uint64
}

// NewFrequencyTable creates an empty table over scale.
func NewFrequencyTable(scale *grades.Scale) *FrequencyTable {
	return &FrequencyTable{
		scale:  scale,
		counts: make(map[string][]uint64),
	}
}

// Set stores the counts of one period keyed by grade label. Grades missing from counts
// are zero. An unknown grade label fails with grades.ErrInvalidParameter.
// Setting an existing period replaces its counts.
func (t *FrequencyTable) Set(period string, counts map[string]uint64) error {
	vec := make([]uint64, t.scale.Len())
	for grade, c := range counts {
		i, ok := t.scale.Index(grade)
		if !ok {
			return fmt.Errorf("%w: period %q: grade %q is not on the scale", grades.ErrInvalidParameter, period, grade)
		}
		vec[i] = c
	}
	t.put(period, vec)
	return nil
}

// SetVector stores the counts of one period ordered like the scale.
func (t *FrequencyTable) SetVector(period string, freq []uint64) error {
	if err := t.scale.CheckLen(len(freq)); err != nil {
		return fmt.Errorf("period %q: %w", period, err)
	}
	t.put(period, slices.Clone(freq))
	return nil
}

func (t *FrequencyTable) put(period string, vec []uint64) {
	if _, ok := t.counts[period]; !ok {
		t.periods = append(t.periods, period)
	}
	t.counts[period] = vec
}

// Scale returns the scale of the table.
func (t *FrequencyTable) Scale() *grades.Scale {
	return t.scale
}

// Periods returns the period identifiers in insertion order.
func (t *FrequencyTable) Periods() []string {
	return slices.Clone(t.periods)
}

// Len returns the number of periods.
func (t *FrequencyTable) Len() int {
	return len(t.periods)
}

// Vector returns a copy of the counts of period.
func (t *FrequencyTable) Vector(period string) ([]uint64, bool) {
	vec, ok := t.counts[period]
	if !ok {
		return nil, false
	}
	return slices.Clone(vec), true
}

// BoundsTable holds the prudent bounds of every period of a FrequencyTable.
type BoundsTable struct {
	periods []string
	bounds  map[string]*Bounds
}

// UpperBoundsTable computes UpperBounds independently for every period of table.
// Periods are evaluated concurrently.
func UpperBoundsTable(table *FrequencyTable, gamma float64) (*BoundsTable, error) {
	if err := ValidateConfidence(gamma); err != nil {
		return nil, err
	}

	results := make([]*Bounds, len(table.periods))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range table.periods {
		vec := table.counts[p]
		g.Go(func() error {
			results[i] = upperBounds(table.scale, vec, gamma)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &BoundsTable{
		periods: slices.Clone(table.periods),
		bounds:  make(map[string]*Bounds, len(results)),
	}
	for i, p := range out.periods {
		out.bounds[p] = results[i]
	}
	return out, nil
}

// Periods returns the period identifiers in the order of the source table.
func (bt *BoundsTable) Periods() []string {
	return slices.Clone(bt.periods)
}

// Period returns the bounds of one period.
func (bt *BoundsTable) Period(period string) (*Bounds, bool) {
	b, ok := bt.bounds[period]
	return b, ok
}

// Get returns the bound of grade in period.
func (bt *BoundsTable) Get(period, grade string) (float64, bool) {
	b, ok := bt.bounds[period]
	if !ok {
		return 0, false
	}
	return b.Get(grade)
}
