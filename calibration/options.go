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

package calibration

import "go.uber.org/zap"

const (
	// DefaultLowerGamma and DefaultUpperGamma keep the search away from the
	// singularities of the bound formula at 0 and 1.
	DefaultLowerGamma = 1e-4
	DefaultUpperGamma = 1 - 1e-4
)

// calibratorOptions holds optional parameters for calibrator construction.
type calibratorOptions struct {
	minimizer Minimizer
	lo        float64
	hi        float64
	logger    *zap.Logger
}

// CalibratorOption is a functional option for configuring a Calibrator.
type CalibratorOption func(*calibratorOptions)

// WithMinimizer replaces the default bounded Brent minimizer.
func WithMinimizer(m Minimizer) CalibratorOption {
	return func(opts *calibratorOptions) {
		opts.minimizer = m
	}
}

// WithSearchBounds sets the interval searched for gamma. Both ends must lie strictly
// inside (0, 1) with lo < hi.
func WithSearchBounds(lo, hi float64) CalibratorOption {
	return func(opts *calibratorOptions) {
		opts.lo = lo
		opts.hi = hi
	}
}

// WithLogger sets the logger receiving per-evaluation debug entries and a summary of
// each calibration. The default discards everything.
func WithLogger(logger *zap.Logger) CalibratorOption {
	return func(opts *calibratorOptions) {
		opts.logger = logger
	}
}
