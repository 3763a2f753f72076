// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// kappa for a quarter-circle approximation
var kappa = float32(4 * (Sqrt(2) - 1) / 3)

// quarterCircle returns the kappa cubic from (r, 0) to (0, r).
func quarterCircle(r float32) Bezier {
	return NewBezier(
		Vec2(r, 0),
		Vec2(r, r*kappa),
		Vec2(r*kappa, r),
		Vec2(0, r),
	)
}

func TestBezierPoint(t *testing.T) {
	line := NewBezier(Vec2(0, 0), Vec2(0, 0), Vec2(10, 0), Vec2(10, 0))
	tolAssertEqualVector(t, Vec2(0, 0), line.Point(0))
	tolAssertEqualVector(t, Vec2(10, 0), line.Point(1))
	tolAssertEqualVector(t, Vec2(5, 0), line.Point(0.5))

	qc := quarterCircle(100)
	tolAssertEqualVector(t, Vec2(100, 0), qc.Point(0))
	tolAssertEqualVector(t, Vec2(0, 100), qc.Point(1))
	// the midpoint of a kappa arc sits on the circle
	mid := qc.Point(0.5)
	assert.InDelta(t, 100, mid.Length(), 0.03)
}

func TestBezierSubdivide(t *testing.T) {
	qc := quarterCircle(100)
	a, b := qc.Subdivide(0.5)
	tolAssertEqualVector(t, qc.Point(0.25), a.Point(0.5), 1e-3)
	tolAssertEqualVector(t, qc.Point(0.75), b.Point(0.5), 1e-3)
	tolAssertEqualVector(t, a.P3, b.P0)
}

func TestBezierLength(t *testing.T) {
	line := NewBezier(Vec2(0, 0), Vec2(0, 0), Vec2(30, 40), Vec2(30, 40))
	assert.InDelta(t, 50, line.Length(), 1e-3)

	qc := quarterCircle(100)
	assert.InDelta(t, Pi*50, qc.Length(), 0.05)
}

func TestBezierParameterAtOffset(t *testing.T) {
	line := NewBezier(Vec2(0, 0), Vec2(0, 0), Vec2(100, 0), Vec2(100, 0))
	assert.InDelta(t, 0.5, line.ParameterAtOffset(50), 1e-3)
	assert.Equal(t, float32(0), line.ParameterAtOffset(0))
	assert.Equal(t, float32(1), line.ParameterAtOffset(1000))

	qc := quarterCircle(100)
	half := qc.Length() / 2
	pt := qc.Point(qc.ParameterAtOffset(half))
	assert.InDelta(t, 100, pt.Length(), 0.05)
	// halfway along the arc is 45 degrees
	assert.InDelta(t, float64(DegToRad(45)), float64(pt.Angle()), 1e-2)
}

func TestBezierBounds(t *testing.T) {
	qc := quarterCircle(100)
	b := qc.Bounds()
	tolAssertEqualVector(t, Vec2(0, 0), b.Min, 0.05)
	tolAssertEqualVector(t, Vec2(100, 100), b.Max, 0.05)

	// s-curve with interior x extrema
	s := NewBezier(Vec2(0, 0), Vec2(100, 0), Vec2(-50, 50), Vec2(50, 50))
	sb := s.Bounds()
	assert.Less(t, sb.Min.X, float32(0))
	assert.Greater(t, sb.Max.X, float32(50))
}

func TestBezierStraight(t *testing.T) {
	line := NewBezier(Vec2(0, 0), Vec2(0, 0), Vec2(10, 10), Vec2(10, 10))
	assert.True(t, line.IsLinear())
	assert.True(t, line.IsStraight())

	inline := NewBezier(Vec2(0, 0), Vec2(2, 2), Vec2(8, 8), Vec2(10, 10))
	assert.False(t, inline.IsLinear())
	assert.True(t, inline.IsStraight())

	assert.False(t, quarterCircle(10).IsStraight())
}

func TestBezierTangentNormal(t *testing.T) {
	line := NewBezier(Vec2(0, 0), Vec2(0, 0), Vec2(10, 0), Vec2(10, 0))
	tolAssertEqualVector(t, Vec2(1, 0), line.Tangent(0.5))
	tolAssertEqualVector(t, Vec2(0, -1), line.Normal(0.5))
	// degenerate handles still give a defined endpoint tangent
	tolAssertEqualVector(t, Vec2(1, 0), line.Tangent(0))
	tolAssertEqualVector(t, Vec2(1, 0), line.Tangent(1))
}

func TestBezierExtrema(t *testing.T) {
	qc := quarterCircle(100)
	var buf [4]float32
	ex := qc.Extrema2D(buf[:0])
	// endpoint tangents are axis-aligned, so no interior extrema
	assert.Empty(t, ex)

	bump := NewBezier(Vec2(0, 0), Vec2(0, 100), Vec2(100, 100), Vec2(100, 0))
	ex = bump.Extrema(1, buf[:0])
	assert.Len(t, ex, 1)
	assert.InDelta(t, 0.5, ex[0], 1e-4)
}

func TestBezierIntersectionsLineLine(t *testing.T) {
	a := NewBezier(Vec2(0, 0), Vec2(0, 0), Vec2(100, 100), Vec2(100, 100))
	b := NewBezier(Vec2(0, 100), Vec2(0, 100), Vec2(100, 0), Vec2(100, 0))
	isecs := a.Intersections(b)
	assert.Len(t, isecs, 1)
	tolAssertEqualVector(t, Vec2(50, 50), isecs[0].Position, 1e-3)
	assert.InDelta(t, 0.5, isecs[0].T1, 1e-3)
	assert.InDelta(t, 0.5, isecs[0].T2, 1e-3)

	// parallel lines do not intersect
	c := NewBezier(Vec2(0, 10), Vec2(0, 10), Vec2(100, 110), Vec2(100, 110))
	assert.Empty(t, a.Intersections(c))
}

func TestBezierIntersectionsCurveLine(t *testing.T) {
	qc := quarterCircle(100)
	// horizontal line through the 45 degree point
	y := float32(100 / Sqrt(2))
	line := NewBezier(Vec2(-200, y), Vec2(-200, y), Vec2(200, y), Vec2(200, y))
	isecs := qc.Intersections(line)
	assert.Len(t, isecs, 1)
	assert.InDelta(t, float64(y), float64(isecs[0].Position.X), 0.25)
}

func TestBezierArea(t *testing.T) {
	// unit square as four lines
	pts := []Vector2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	total := float32(0)
	for i := range pts {
		p0 := pts[i]
		p1 := pts[(i+1)%4]
		total += NewBezier(p0, p0, p1, p1).Area()
	}
	assert.InDelta(t, 1, total, 1e-5)
}
