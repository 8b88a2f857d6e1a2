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

// Package grades holds the ordered rating scale shared by the bound, calibration and
// solver packages.
//
// A Scale lists grade labels from the best grade to the worst. The order carries
// meaning: "worse than" is "later on the scale", which is what tail aggregation sums
// over. A Scale is immutable once built and safe for concurrent use.
package grades

import (
	"fmt"
	"slices"
)

// masterScaleLabels is the 19-notch master scale, best to worst.
var masterScaleLabels = []string{
	"1",
	"2+", "2", "2-",
	"3+", "3", "3-",
	"4+", "4", "4-",
	"5+", "5", "5-",
	"6+", "6", "6-",
	"7+", "7", "7-",
}

// Scale is an ordered, immutable list of rating grade labels (best to worst).
type Scale struct {
	labels []string
	index  map[string]int
}

// NewScale creates a Scale from labels ordered best to worst.
// Labels must be non-empty and unique, and at least one label is required.
func NewScale(labels ...string) (*Scale, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: scale must contain at least one grade", ErrInvalidParameter)
	}
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("%w: empty grade label at position %d", ErrInvalidParameter, i)
		}
		if j, ok := index[l]; ok {
			return nil, fmt.Errorf("%w: duplicate grade %q at positions %d and %d", ErrInvalidParameter, l, j, i)
		}
		index[l] = i
	}
	return &Scale{
		labels: slices.Clone(labels),
		index:  index,
	}, nil
}

// MasterScale returns the 19-grade master scale "1", "2+", ..., "7-".
func MasterScale() *Scale {
	s, err := NewScale(masterScaleLabels...)
	if err != nil {
		panic(err) // static labels are unique
	}
	return s
}

// Len returns the number of grades.
func (s *Scale) Len() int {
	return len(s.labels)
}

// Labels returns a copy of the grade labels, best to worst.
func (s *Scale) Labels() []string {
	return slices.Clone(s.labels)
}

// Label returns the label at position i.
func (s *Scale) Label(i int) string {
	return s.labels[i]
}

// Index returns the position of label on the scale.
func (s *Scale) Index(label string) (int, bool) {
	i, ok := s.index[label]
	return i, ok
}

// Contains reports whether label is on the scale.
func (s *Scale) Contains(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Indices maps subset labels to scale positions, keeping the order of subset.
func (s *Scale) Indices(subset []string) ([]int, error) {
	out := make([]int, len(subset))
	for i, l := range subset {
		idx, ok := s.index[l]
		if !ok {
			return nil, fmt.Errorf("%w: grade %q is not on the scale", ErrInvalidParameter, l)
		}
		out[i] = idx
	}
	return out, nil
}

// CheckLen returns ErrShapeMismatch unless n equals the number of grades.
func (s *Scale) CheckLen(n int) error {
	if n != len(s.labels) {
		return fmt.Errorf("%w: got %d values for %d grades", ErrShapeMismatch, n, len(s.labels))
	}
	return nil
}

// Equal reports whether both scales list the same labels in the same order.
func (s *Scale) Equal(other *Scale) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return slices.Equal(s.labels, other.labels)
}
