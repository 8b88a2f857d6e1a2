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

// Package calibration fits the confidence level gamma of the prudent PD bounds to
// externally modelled reference PDs.
//
// The fitted gamma minimizes the root-mean-square error between the bounds of a chosen
// subset of grades (usually the weakest ones) and their reference PDs. The objective is
// smooth and, in practice, unimodal over the search interval, so any bounded
// derivative-free scalar minimizer reaches the same optimum. Brent's method with an
// absolute tolerance of 1e-8 on gamma is the default.
package calibration

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/creditrisk/prudentpd-go/bounds"
	"github.com/creditrisk/prudentpd-go/grades"
)

// Result is the outcome of one calibration.
type Result struct {
	// Gamma is the RMSE-minimizing confidence level.
	Gamma float64
	// RMSE is the objective value at Gamma.
	RMSE        float64
	Evaluations int
}

// Request describes one independent calibration for CalibrateAll.
type Request struct {
	Frequencies *bounds.FrequencyTable
	// Reference holds the reference PD of every grade in Subset.
	Reference map[string]float64
	Subset    []string
}

// Calibrator searches the confidence level that best reproduces reference PDs.
// A Calibrator is immutable and safe for concurrent use.
type Calibrator struct {
	scale     *grades.Scale
	minimizer Minimizer
	lo        float64
	hi        float64
	logger    *zap.Logger
}

// NewCalibrator creates a Calibrator for frequencies ordered by scale.
func NewCalibrator(scale *grades.Scale, opts ...CalibratorOption) (*Calibrator, error) {
	if scale == nil {
		return nil, fmt.Errorf("%w: no grade scale provided", grades.ErrInvalidParameter)
	}

	options := &calibratorOptions{
		minimizer: Brent{},
		lo:        DefaultLowerGamma,
		hi:        DefaultUpperGamma,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.minimizer == nil {
		return nil, fmt.Errorf("%w: no minimizer provided", grades.ErrInvalidParameter)
	}
	if !(options.lo > 0 && options.lo < options.hi && options.hi < 1) {
		return nil, fmt.Errorf("%w: search bounds must satisfy 0 < lo < hi < 1: [%v, %v]",
			grades.ErrInvalidParameter, options.lo, options.hi)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}

	return &Calibrator{
		scale:     scale,
		minimizer: options.minimizer,
		lo:        options.lo,
		hi:        options.hi,
		logger:    options.logger.Named("calibration"),
	}, nil
}

// SearchBounds returns the interval searched for gamma.
func (c *Calibrator) SearchBounds() (float64, float64) {
	return c.lo, c.hi
}

// Calibrate fits gamma for a single observation period. freq is ordered like the
// calibrator's scale, reference must hold a PD in [0, 1] for every grade of subset and
// subset must be non-empty.
func (c *Calibrator) Calibrate(freq []uint64, reference map[string]float64, subset []string) (Result, error) {
	if err := c.scale.CheckLen(len(freq)); err != nil {
		return Result{}, err
	}
	return c.calibrate([][]uint64{freq}, reference, subset)
}

// CalibrateTable fits a single gamma across every period of table. The error is pooled
// over all (period, subset grade) cells, each compared with the grade's reference PD.
func (c *Calibrator) CalibrateTable(table *bounds.FrequencyTable, reference map[string]float64, subset []string) (Result, error) {
	if table == nil || table.Len() == 0 {
		return Result{}, fmt.Errorf("%w: frequency table has no periods", grades.ErrInvalidParameter)
	}
	if !c.scale.Equal(table.Scale()) {
		return Result{}, fmt.Errorf("%w: frequency table uses a different grade scale", grades.ErrInvalidParameter)
	}
	vectors := make([][]uint64, 0, table.Len())
	for _, p := range table.Periods() {
		vec, _ := table.Vector(p)
		vectors = append(vectors, vec)
	}
	return c.calibrate(vectors, reference, subset)
}

// CalibrateAll runs independent table calibrations concurrently and returns their
// results in request order. The first failure cancels the requests not yet started.
func (c *Calibrator) CalibrateAll(ctx context.Context, requests []Request) ([]Result, error) {
	results := make([]Result, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, req := range requests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := c.CalibrateTable(req.Frequencies, req.Reference, req.Subset)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Calibrator) calibrate(vectors [][]uint64, reference map[string]float64, subset []string) (Result, error) {
	idx, targets, err := c.targets(reference, subset)
	if err != nil {
		return Result{}, err
	}

	cells := float64(len(vectors) * len(idx))
	objective := func(gamma float64) float64 {
		var sum float64
		for _, vec := range vectors {
			b, err := bounds.UpperBounds(c.scale, vec, gamma)
			if err != nil {
				// only reachable if a minimizer steps outside (0, 1)
				return math.Inf(1)
			}
			for j, i := range idx {
				diff := b.At(i) - targets[j]
				sum += diff * diff
			}
		}
		rmse := math.Sqrt(sum / cells)
		c.logger.Debug("objective evaluated", zap.Float64("gamma", gamma), zap.Float64("rmse", rmse))
		return rmse
	}

	m, err := c.minimizer.Minimize(objective, c.lo, c.hi)
	if err != nil {
		return Result{}, fmt.Errorf("calibrating gamma: %w", err)
	}
	c.logger.Info("calibrated confidence level",
		zap.Float64("gamma", m.X),
		zap.Float64("rmse", m.F),
		zap.Int("evaluations", m.Evaluations),
		zap.Int("periods", len(vectors)),
		zap.Strings("subset", subset),
	)
	return Result{Gamma: m.X, RMSE: m.F, Evaluations: m.Evaluations}, nil
}

// targets resolves subset to scale positions and reference PDs.
func (c *Calibrator) targets(reference map[string]float64, subset []string) ([]int, []float64, error) {
	if len(subset) == 0 {
		return nil, nil, fmt.Errorf("%w: calibration subset is empty", grades.ErrInvalidParameter)
	}
	idx, err := c.scale.Indices(subset)
	if err != nil {
		return nil, nil, err
	}
	targets := make([]float64, len(subset))
	for i, g := range subset {
		pd, ok := reference[g]
		if !ok {
			return nil, nil, fmt.Errorf("%w: no reference PD for grade %q", grades.ErrInvalidParameter, g)
		}
		if !(pd >= 0 && pd <= 1) {
			return nil, nil, fmt.Errorf("%w: reference PD for grade %q must be in [0, 1]: %v", grades.ErrInvalidParameter, g, pd)
		}
		targets[i] = pd
	}
	return idx, targets, nil
}
