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

import (
	"errors"
	"fmt"
	"math"

	"github.com/creditrisk/prudentpd-go/grades"
)

const (
	// DefaultTolerance is the absolute tolerance on the argmin used when a minimizer
	// leaves Tol unset.
	DefaultTolerance = 1e-8
	// DefaultMaxIter caps the number of objective evaluations when MaxIter is unset.
	DefaultMaxIter = 500

	inverseGolden = 0.6180339887498949025
	// goldenMean is 1 - inverseGolden, the golden section step used by Brent.
	goldenMean = 0.3819660112501051
)

var sqrtEpsilon = math.Sqrt(2.220446049250313e-16)

// ErrNoConvergence is returned with the best point found when a minimizer exhausts its
// evaluation budget before reaching its tolerance.
var ErrNoConvergence = errors.New("minimizer did not converge")

// Minimum is the outcome of a bounded scalar minimization.
type Minimum struct {
	X           float64
	F           float64
	Evaluations int
}

// Minimizer minimizes a scalar function over the closed interval [lo, hi].
type Minimizer interface {
	Minimize(f func(x float64) float64, lo, hi float64) (Minimum, error)
}

// MinimizerFunc adapts an ordinary function to the Minimizer interface.
type MinimizerFunc func(f func(x float64) float64, lo, hi float64) (Minimum, error)

// Minimize calls m(f, lo, hi).
func (m MinimizerFunc) Minimize(f func(x float64) float64, lo, hi float64) (Minimum, error) {
	return m(f, lo, hi)
}

// Brent is the bounded variant of Brent's method: golden section search accelerated by
// successive parabolic interpolation. It never evaluates f outside [lo, hi].
// The zero value uses DefaultTolerance and DefaultMaxIter.
type Brent struct {
	// Tol is the absolute tolerance on the argmin. A relative term of sqrt(machine
	// epsilon) * |x| is added to it.
	Tol     float64
	MaxIter int
}

// Minimize implements Minimizer.
func (br Brent) Minimize(f func(x float64) float64, lo, hi float64) (Minimum, error) {
	if err := validateInterval(lo, hi); err != nil {
		return Minimum{}, err
	}
	xatol, maxIter := settings(br.Tol, br.MaxIter)

	a, b := lo, hi
	// x holds the best point, w the second best, v the previous w.
	v := a + goldenMean*(b-a)
	w, x := v, v
	fx := f(x)
	evals := 1
	fv, fw := fx, fx
	var d, e float64

	xm := 0.5 * (a + b)
	tol1 := sqrtEpsilon*math.Abs(x) + xatol/3.0
	tol2 := 2.0 * tol1

	for math.Abs(x-xm) > tol2-0.5*(b-a) {
		if evals >= maxIter {
			return Minimum{X: x, F: fx, Evaluations: evals}, fmt.Errorf("%w after %d evaluations", ErrNoConvergence, evals)
		}

		golden := true
		if math.Abs(e) > tol1 {
			// trial parabolic fit through x, w and v
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2.0 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = d

			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-x) && p < q*(b-x) {
				golden = false
				d = p / q
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = tol1 * signOrOne(xm-x)
				}
			}
		}
		if golden {
			if x >= xm {
				e = a - x
			} else {
				e = b - x
			}
			d = goldenMean * e
		}

		u := x + signOrOne(d)*math.Max(math.Abs(d), tol1)
		fu := f(u)
		evals++

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEpsilon*math.Abs(x) + xatol/3.0
		tol2 = 2.0 * tol1
	}
	return Minimum{X: x, F: fx, Evaluations: evals}, nil
}

// GoldenSection is plain golden section search. It converges linearly, which makes it
// slower than Brent but immune to poor parabolic steps.
// The zero value uses DefaultTolerance and DefaultMaxIter.
type GoldenSection struct {
	Tol     float64
	MaxIter int
}

// Minimize implements Minimizer.
func (gs GoldenSection) Minimize(f func(x float64) float64, lo, hi float64) (Minimum, error) {
	if err := validateInterval(lo, hi); err != nil {
		return Minimum{}, err
	}
	tol, maxIter := settings(gs.Tol, gs.MaxIter)

	a, b := lo, hi
	c := b - inverseGolden*(b-a)
	d := a + inverseGolden*(b-a)
	fc, fd := f(c), f(d)
	evals := 2

	for b-a > tol {
		if evals >= maxIter {
			x, fx := best(c, fc, d, fd)
			return Minimum{X: x, F: fx, Evaluations: evals}, fmt.Errorf("%w after %d evaluations", ErrNoConvergence, evals)
		}
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - inverseGolden*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + inverseGolden*(b-a)
			fd = f(d)
		}
		evals++
	}
	x, fx := best(c, fc, d, fd)
	return Minimum{X: x, F: fx, Evaluations: evals}, nil
}

func best(x1, f1, x2, f2 float64) (float64, float64) {
	if f1 <= f2 {
		return x1, f1
	}
	return x2, f2
}

func settings(tol float64, maxIter int) (float64, int) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}
	return tol, maxIter
}

func validateInterval(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo >= hi {
		return fmt.Errorf("%w: search interval [%v, %v] is empty or not finite", grades.ErrInvalidParameter, lo, hi)
	}
	return nil
}

// signOrOne returns the sign of x, treating zero as positive.
func signOrOne(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
