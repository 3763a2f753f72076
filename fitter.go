// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// pathFitter fits a chain of cubic Béziers to the segment positions of
// a path using Schneider's least-squares algorithm, as used by
// [Path.Simplify].
type pathFitter struct {
	path        *Path
	err         float64
	ignoreClose bool
	positions   []math32.Vector2
	segments    []SegmentData
}

func newPathFitter(p *Path, tolerance float32, ignoreClose bool) *pathFitter {
	pf := &pathFitter{
		path:        p,
		err:         float64(tolerance),
		ignoreClose: ignoreClose,
	}
	// copy the positions, filtering out adjacent duplicates
	var prev math32.Vector2
	for i, seg := range p.segments {
		if i < 1 || prev != seg.Position {
			pf.positions = append(pf.positions, seg.Position)
			prev = seg.Position
		}
	}
	if p.closed && !ignoreClose && len(pf.positions) > 0 {
		// pad one position before the first and one after the last so
		// the fit is periodic
		last := pf.positions[len(pf.positions)-1]
		pf.positions = append([]math32.Vector2{last}, pf.positions...)
		pf.positions = append(pf.positions, pf.positions[1])
	}
	return pf
}

func (pf *pathFitter) fit() {
	if len(pf.positions) == 0 {
		return
	}
	first := pf.positions[0]
	pf.segments = append(pf.segments, SegmentData{first, first, first})

	if len(pf.positions) > 1 {
		n := len(pf.positions)
		pf.fitCubic(0, n-1,
			pf.positions[1].Sub(pf.positions[0]),
			pf.positions[n-2].Sub(pf.positions[n-1]))

		if pf.path.closed && !pf.ignoreClose && len(pf.segments) > 1 {
			// drop the duplicated pad segments
			pf.segments = pf.segments[1 : len(pf.segments)-1]
		}
	}

	pf.path.SwapSegments(pf.segments, pf.path.closed)
}

func normalizeSafe(v math32.Vector2) math32.Vector2 {
	l := v.Length()
	if l > 0 {
		return v.DivScalar(l)
	}
	return v
}

func (pf *pathFitter) fitCubic(first, last int, tan1, tan2 math32.Vector2) {
	// two points only: use a heuristic cubic
	if last-first == 1 {
		pt1 := pf.positions[first]
		pt2 := pf.positions[last]
		dist := pt1.DistanceTo(pt2) / 3
		pf.addCurve(pt1,
			pt1.Add(normalizeSafe(tan1).MulScalar(dist)),
			pt2.Add(normalizeSafe(tan2).MulScalar(dist)),
			pt2)
		return
	}

	uPrime := pf.chordLengthParameterize(first, last)

	maxError := pf.err
	if pf.err*pf.err > maxError {
		maxError = pf.err * pf.err
	}
	var split int
	parametersInOrder := true

	for i := 0; i <= 4; i++ {
		curve := pf.generateBezier(first, last, uPrime, tan1, tan2)

		maxDist, index := pf.findMaxError(first, last, curve, uPrime)
		if maxDist < pf.err && parametersInOrder {
			pf.addCurve(curve.P0, curve.P1, curve.P2, curve.P3)
			return
		}
		split = index

		// give up iterating when the error is already too large
		if maxDist >= maxError {
			break
		}
		parametersInOrder = pf.reparameterize(first, last, uPrime, curve)
		maxError = maxDist
	}

	// fitting failed: split at the point of maximum error and fit both
	// halves with a shared center tangent
	tanCenter := pf.positions[split-1].Sub(pf.positions[split+1])
	pf.fitCubic(first, split, tan1, tanCenter)
	pf.fitCubic(split, last, tanCenter.Negate(), tan2)
}

func (pf *pathFitter) addCurve(p0, h1, h2, p1 math32.Vector2) {
	pf.segments[len(pf.segments)-1].HandleOut = h1
	pf.segments = append(pf.segments, SegmentData{h2, p1, p1})
}

func (pf *pathFitter) generateBezier(first, last int, uPrime []float64, tan1, tan2 math32.Vector2) math32.Bezier {
	const eps = float64(GeometricEpsilon)

	pt1 := pf.positions[first]
	pt2 := pf.positions[last]

	var c [2][2]float64
	var x [2]float64

	for i, l := 0, last-first+1; i < l; i++ {
		u := uPrime[i]
		t := 1 - u
		b := 3 * u * t
		b0 := t * t * t
		b1 := b * t
		b2 := b * u
		b3 := u * u * u
		a1 := normalizeSafe(tan1).MulScalar(float32(b1))
		a2 := normalizeSafe(tan2).MulScalar(float32(b2))
		tmp := pf.positions[first+i].
			Sub(pt1.MulScalar(float32(b0 + b1))).
			Sub(pt2.MulScalar(float32(b2 + b3)))

		c[0][0] += float64(a1.Dot(a1))
		c[0][1] += float64(a1.Dot(a2))
		c[1][0] = c[0][1]
		c[1][1] += float64(a2.Dot(a2))

		x[0] += float64(a1.Dot(tmp))
		x[1] += float64(a2.Dot(tmp))
	}

	detC0C1 := c[0][0]*c[1][1] - c[1][0]*c[0][1]
	var alpha1, alpha2 float64

	if abs64(detC0C1) > eps {
		// Kramer's rule
		detC0X := c[0][0]*x[1] - c[1][0]*x[0]
		detXC1 := x[0]*c[1][1] - x[1]*c[0][1]
		alpha1 = detXC1 / detC0C1
		alpha2 = detC0X / detC0C1
	} else {
		// under-determined; try assuming alpha1 == alpha2
		c0 := c[0][0] + c[0][1]
		c1 := c[1][0] + c[1][1]
		switch {
		case abs64(c0) > eps:
			alpha1 = x[0] / c0
			alpha2 = alpha1
		case abs64(c1) > eps:
			alpha1 = x[1] / c1
			alpha2 = alpha1
		default:
			alpha1 = 0
			alpha2 = 0
		}
	}

	// non-positive alphas would produce coincident control points that
	// break the Newton-Raphson root finding; use the Wu/Barsky
	// heuristic instead
	segLength := float64(pt1.DistanceTo(pt2))
	epsilon := eps * segLength
	var handleOne, handleTwo math32.Vector2
	if alpha1 < epsilon || alpha2 < epsilon {
		alpha1 = segLength / 3
		alpha2 = alpha1
		handleOne = normalizeSafe(tan1).MulScalar(float32(alpha1))
		handleTwo = normalizeSafe(tan2).MulScalar(float32(alpha2))
	} else {
		// reject control points that project outside the chord
		line := pt2.Sub(pt1)
		handleOne = normalizeSafe(tan1).MulScalar(float32(alpha1))
		handleTwo = normalizeSafe(tan2).MulScalar(float32(alpha2))
		if float64(handleOne.Dot(line)-handleTwo.Dot(line)) > segLength*segLength {
			alpha1 = segLength / 3
			alpha2 = alpha1
			handleOne = normalizeSafe(tan1).MulScalar(float32(alpha1))
			handleTwo = normalizeSafe(tan2).MulScalar(float32(alpha2))
		}
	}

	return math32.NewBezier(pt1, pt1.Add(handleOne), pt2.Add(handleTwo), pt2)
}

// evaluate evaluates a Bézier of the given degree at parameter t using
// de Casteljau's algorithm over the first degree+1 control points.
func evaluate(degree int, curve math32.Bezier, t float64) math32.Vector2 {
	tmp := [4]math32.Vector2{curve.P0, curve.P1, curve.P2, curve.P3}
	tf := float32(t)
	for i := 1; i <= degree; i++ {
		for j := 0; j <= degree-i; j++ {
			tmp[j] = tmp[j].MulScalar(1 - tf).Add(tmp[j+1].MulScalar(tf))
		}
	}
	return tmp[0]
}

func (pf *pathFitter) reparameterize(first, last int, u []float64, curve math32.Bezier) bool {
	for i := first; i <= last; i++ {
		u[i-first] = pf.findRoot(curve, pf.positions[i], u[i-first])
	}
	// a reordered parameterization would fit the points in the wrong order
	for i := 1; i < len(u); i++ {
		if u[i] <= u[i-1] {
			return false
		}
	}
	return true
}

// findRoot performs one Newton-Raphson step of projecting the point
// onto the curve.
func (pf *pathFitter) findRoot(curve math32.Bezier, point math32.Vector2, u float64) float64 {
	// control vertices of the first derivative
	var curve1, curve2 math32.Bezier
	curve1.P0 = curve.P1.Sub(curve.P0).MulScalar(3)
	curve1.P1 = curve.P2.Sub(curve.P1).MulScalar(3)
	curve1.P2 = curve.P3.Sub(curve.P2).MulScalar(3)
	// control vertices of the second derivative
	curve2.P0 = curve1.P1.Sub(curve1.P0).MulScalar(2)
	curve2.P1 = curve1.P2.Sub(curve1.P1).MulScalar(2)

	pt := evaluate(3, curve, u)
	pt1 := evaluate(2, curve1, u)
	pt2 := evaluate(1, curve2, u)
	diff := pt.Sub(point)
	df := float64(pt1.Dot(pt1)) + float64(diff.Dot(pt2))

	if abs64(df) < 1e-12 {
		return u
	}
	return u - float64(diff.Dot(pt1))/df
}

func (pf *pathFitter) chordLengthParameterize(first, last int) []float64 {
	size := last - first
	u := make([]float64, size+1)
	for i := first + 1; i <= last; i++ {
		u[i-first] = u[i-first-1] + float64(pf.positions[i].DistanceTo(pf.positions[i-1]))
	}
	for i := 1; i <= size; i++ {
		u[i] /= u[size]
	}
	return u
}

func (pf *pathFitter) findMaxError(first, last int, curve math32.Bezier, u []float64) (float64, int) {
	index := (last - first + 1) / 2
	maxDist := float64(0)
	for i := first + 1; i < last; i++ {
		p := evaluate(3, curve, u[i-first])
		v := p.Sub(pf.positions[i])
		dist := float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y)
		if dist >= maxDist {
			maxDist = dist
			index = i
		}
	}
	return maxDist, index
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Simplify replaces the path's segments with a fitted chain of cubic
// Béziers within the given tolerance (Schneider's algorithm). A
// tolerance <= 0 uses the default of 2.5.
func (p *Path) Simplify(tolerance float32) {
	if tolerance <= 0 {
		tolerance = 2.5
	}
	newPathFitter(p, tolerance, true).fit()
}
