// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "math"

// root-finding tolerance for accepting values just outside [min, max]
const solveEpsilon = 1e-12

// SolveQuadratic finds the real solutions of the quadratic equation
// a*x² + b*x + c = 0 that lie within [min, max], appending them to roots
// and returning the extended slice. A degenerate (linear) equation is
// handled. Roots are returned in no particular order.
func SolveQuadratic(a, b, c, min, max float32, roots []float32) []float32 {
	A := float64(a)
	B := float64(b)
	C := float64(c)

	add := func(x float64) []float32 {
		if x < float64(min)-solveEpsilon || x > float64(max)+solveEpsilon {
			return roots
		}
		xf := float32(x)
		if xf < min {
			xf = min
		} else if xf > max {
			xf = max
		}
		return append(roots, xf)
	}

	if math.Abs(A) < 1e-12 {
		if math.Abs(B) < 1e-12 {
			return roots
		}
		return add(-C / B)
	}

	disc := B*B - 4*A*C
	if disc < 0 {
		return roots
	}
	if disc == 0 {
		return add(-B / (2 * A))
	}

	// citardauq formulation for numerical stability
	sq := math.Sqrt(disc)
	q := -0.5 * (B + math.Copysign(sq, B))
	roots = add(q / A)
	if q != 0 {
		roots = add(C / q)
	} else {
		roots = add(-B / (2 * A))
	}
	return roots
}

// SolveCubic finds the real solutions of the cubic equation
// a*x³ + b*x² + c*x + d = 0 that lie within [min, max], appending them
// to roots and returning the extended slice. A degenerate (quadratic or
// linear) equation is handled.
func SolveCubic(a, b, c, d, min, max float32, roots []float32) []float32 {
	A := float64(a)
	B := float64(b)
	C := float64(c)
	D := float64(d)

	if math.Abs(A) < 1e-12 {
		return SolveQuadratic(b, c, d, min, max, roots)
	}

	// normalize to x³ + p*x + q = 0 via x = t - B/(3A)
	B /= A
	C /= A
	D /= A
	bd3 := B / 3
	p := C - B*bd3
	q := D - bd3*C + 2*bd3*bd3*bd3

	add := func(x float64) []float32 {
		x -= bd3
		if x < float64(min)-solveEpsilon || x > float64(max)+solveEpsilon {
			return roots
		}
		xf := float32(x)
		if xf < min {
			xf = min
		} else if xf > max {
			xf = max
		}
		return append(roots, xf)
	}

	disc := q*q/4 + p*p*p/27
	switch {
	case disc > 1e-14:
		// one real root
		sq := math.Sqrt(disc)
		u := math.Cbrt(-q/2 + sq)
		v := math.Cbrt(-q/2 - sq)
		roots = add(u + v)
	case disc < -1e-14:
		// three distinct real roots, trigonometric method
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(clamp64(-q/(2*r), -1, 1))
		m := 2 * math.Cbrt(r)
		roots = add(m * math.Cos(phi/3))
		roots = add(m * math.Cos((phi+2*math.Pi)/3))
		roots = add(m * math.Cos((phi+4*math.Pi)/3))
	default:
		// triple or double root
		if math.Abs(q) < 1e-14 && math.Abs(p) < 1e-14 {
			roots = add(0)
		} else {
			u := math.Cbrt(-q / 2)
			roots = add(2 * u)
			roots = add(-u)
		}
	}
	return roots
}

func clamp64(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
