// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tobiasvend/paper/base/tolassert"
	"github.com/tobiasvend/paper/math32"
)

func assertVec2(t *testing.T, want, have math32.Vector2, tols ...float32) {
	t.Helper()
	tol := float32(1e-4)
	if len(tols) == 1 {
		tol = tols[0]
	}
	assert.InDelta(t, want.X, have.X, float64(tol))
	assert.InDelta(t, want.Y, have.Y, float64(tol))
}

func TestBasicPath(t *testing.T) {
	doc := NewDocument()

	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(100, 30))
	p.AddPoint(math32.Vec2(200, 30))
	assert.Equal(t, 2, p.SegmentCount())
	assert.Equal(t, math32.Vec2(100, 30), p.SegmentData()[0].Position)
	assert.Equal(t, math32.Vec2(200, 30), p.SegmentData()[1].Position)
	assert.True(t, p.IsPolygon())

	p.AddSegment(math32.Vec2(150, 150), math32.Vec2(-5, -3), math32.Vec2(5, 3))
	assert.Equal(t, 3, p.SegmentCount())
	assert.Equal(t, math32.Vec2(150, 150), p.SegmentData()[2].Position)
	assert.Equal(t, math32.Vec2(145, 147), p.SegmentData()[2].HandleIn)
	assert.Equal(t, math32.Vec2(155, 153), p.SegmentData()[2].HandleOut)

	assert.Equal(t, 2, p.CurveCount())
	assert.False(t, p.IsPolygon())
	assert.False(t, p.IsClosed())

	expected := []math32.Vector2{
		{X: 100, Y: 30}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 200, Y: 30},
		{X: 200, Y: 30}, {X: 0, Y: 0}, {X: -5, Y: -3}, {X: 150, Y: 150},
	}
	i := 0
	for ci := 0; ci < p.CurveCount(); ci++ {
		c := p.Curve(ci)
		assert.Equal(t, expected[i], c.PositionOne())
		assert.Equal(t, expected[i+1], c.HandleOne())
		assert.Equal(t, expected[i+2], c.HandleTwo())
		assert.Equal(t, expected[i+3], c.PositionTwo())
		i += 4
	}

	p.ClosePath()
	assert.True(t, p.IsClosed())
	assert.Equal(t, 3, p.CurveCount())
	last := p.Curve(p.CurveCount() - 1)
	assert.Equal(t, math32.Vec2(150, 150), last.PositionOne())
	assert.Equal(t, math32.Vec2(5, 3), last.HandleOne())
	assert.Equal(t, math32.Vec2(100, 30), last.PositionTwo())

	// insertion resets the affected curve caches
	p.InsertSegment(1, SegPoint(math32.Vec2(100, 75)))
	assert.Equal(t, 4, p.SegmentCount())
	assert.Equal(t, 4, p.CurveCount())
	assert.Equal(t, math32.Vec2(100, 30), p.SegmentData()[0].Position)
	assert.Equal(t, math32.Vec2(100, 75), p.SegmentData()[1].Position)
	assert.Equal(t, math32.Vec2(200, 30), p.SegmentData()[2].Position)
}

func TestClosePathMergesCoincidentEndpoints(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))
	p.CubicCurveTo(math32.Vec2(100, 50), math32.Vec2(50, 50), math32.Vec2(0, 0))
	assert.Equal(t, 3, p.SegmentCount())

	p.ClosePath()
	assert.True(t, p.IsClosed())
	// the coincident last segment merged into the first
	assert.Equal(t, 2, p.SegmentCount())
	assert.Equal(t, 2, p.CurveCount())
	// its incoming handle was carried over
	assert.Equal(t, math32.Vec2(50, 50), p.SegmentData()[0].HandleIn)
}

func TestCurveCountInvariant(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	assert.Equal(t, 0, p.CurveCount())
	p.AddPoint(math32.Vec2(0, 0))
	assert.Equal(t, 0, p.CurveCount())
	p.AddPoint(math32.Vec2(10, 0))
	assert.Equal(t, 1, p.CurveCount())
	p.AddPoint(math32.Vec2(10, 10))
	assert.Equal(t, 2, p.CurveCount())
	p.ClosePath()
	assert.Equal(t, 3, p.CurveCount())
	assert.Equal(t, p.SegmentCount(), p.CurveCount())
}

func TestPathLength(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(200, 0))
	p.AddPoint(math32.Vec2(200, 200))
	tolassert.Equal(t, 400, p.Length())

	rad := float32(100)
	p2 := doc.CreateCircle(math32.Vec2(0, 0), rad, "")
	circumference := 2 * math32.Pi * rad
	tolassert.EqualTol(t, circumference, p2.Length(), 0.1)
}

func TestRectangleScenario(t *testing.T) {
	// S1: rectangle length, area, bounds
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(200, 0))
	p.AddPoint(math32.Vec2(200, 100))
	p.AddPoint(math32.Vec2(0, 100))
	p.ClosePath()

	tolassert.Equal(t, 600, p.Length())
	tolassert.EqualTol(t, 20000, math32.Abs(p.Area()), 0.5)

	b := p.Bounds()
	assertVec2(t, math32.Vec2(0, 0), b.Min)
	assertVec2(t, math32.Vec2(200, 100), b.Max)
}

func TestCircleScenario(t *testing.T) {
	// S2: unit-circle construction
	doc := NewDocument()
	c := doc.CreateCircle(math32.Vec2(0, 0), 100, "")
	assert.Equal(t, 4, c.SegmentCount())
	assert.True(t, c.IsClosed())

	tolassert.EqualTol(t, 628.3185, c.Length(), 0.1)

	b := c.Bounds()
	assertVec2(t, math32.Vec2(-100, -100), b.Min, 0.1)
	assertVec2(t, math32.Vec2(100, 100), b.Max, 0.1)

	assert.True(t, c.Contains(math32.Vec2(0, 0)))
	assert.False(t, c.Contains(math32.Vec2(101, 0)))
}

func TestOrientation(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(200, 0))
	p.AddPoint(math32.Vec2(200, 200))
	p.AddPoint(math32.Vec2(0, 200))
	assert.True(t, p.IsClockwise())
	p.Reverse()
	assert.False(t, p.IsClockwise())
}

func TestReverseIdempotence(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.CubicCurveTo(math32.Vec2(10, 10), math32.Vec2(20, -10), math32.Vec2(30, 0))
	p.AddPoint(math32.Vec2(40, 40))
	p.ClosePath()

	orig := append([]SegmentData(nil), p.SegmentData()...)
	p.Reverse()
	p.Reverse()
	assert.Equal(t, orig, p.SegmentData())
}

func TestPathBounds(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(200, 0))
	p.AddPoint(math32.Vec2(200, 100))

	b := p.Bounds()
	assertVec2(t, math32.Vec2(0, 0), b.Min)
	tolassert.Equal(t, 200, b.Size().X)
	tolassert.Equal(t, 100, b.Size().Y)

	// mutation invalidates the cached bounds
	p.AddPoint(math32.Vec2(200, 200))
	b2 := p.Bounds()
	tolassert.Equal(t, 200, b2.Size().Y)

	p.ClosePath()
	p.SetStroke(RGBA(1, 1, 1, 1))
	p.SetStrokeWidth(20)
	p.SetStrokeJoin(JoinRound)

	pos, ok := p.Position()
	assert.True(t, ok)
	assertVec2(t, math32.Vec2(100, 100), pos)

	sb := p.StrokeBounds()
	assertVec2(t, math32.Vec2(-10, -10), sb.Min)
	tolassert.Equal(t, 220, sb.Size().X)
	tolassert.Equal(t, 220, sb.Size().Y)
}

func TestTransformedPathBounds(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))
	p.AddPoint(math32.Vec2(100, 100))
	p.AddPoint(math32.Vec2(0, 100))
	p.ClosePath()

	pos, _ := p.Position()
	assertVec2(t, math32.Vec2(50, 50), pos)

	p.Translate(math32.Vec2(100, 150))
	b := p.Bounds()
	assertVec2(t, math32.Vec2(100, 150), b.Min)
	tolassert.Equal(t, 100, b.Size().X)
	tolassert.Equal(t, 100, b.Size().Y)

	diagonal := math32.Sqrt(2) * 100
	p.Rotate(math32.Pi * 0.25)
	b2 := p.Bounds()
	pos, _ = p.Position()
	assertVec2(t, math32.Vec2(150, 200), pos, 1e-2)
	assertVec2(t, math32.Vec2(150-diagonal*0.5, 200-diagonal*0.5), b2.Min, 1e-2)
	tolassert.EqualTol(t, diagonal, b2.Size().X, 1e-2)
	tolassert.EqualTol(t, diagonal, b2.Size().Y, 1e-2)

	p.Scale(2, 2)
	b4 := p.Bounds()
	tolassert.EqualTol(t, diagonal*2, b4.Size().X, 1e-2)
	tolassert.EqualTol(t, diagonal*2, b4.Size().Y, 1e-2)

	// S3 (with the source's 2x scale): stroke bounds of the rotated,
	// scaled square grow by the scaled stroke radius on all sides
	p.SetStroke(RGBA(1, 1, 1, 1))
	p.SetStrokeWidth(20)
	p.SetStrokeJoin(JoinRound)
	p.SetStrokeCap(CapRound)
	b5 := p.StrokeBounds()
	tolassert.EqualTol(t, diagonal*2+40, b5.Size().X, 0.05)
	tolassert.EqualTol(t, diagonal*2+40, b5.Size().Y, 0.05)
}

func TestMiterStrokeBounds(t *testing.T) {
	doc := NewDocument()
	// right angle corner at (100, 0)
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))
	p.AddPoint(math32.Vec2(100, 100))
	p.SetStroke(RGBA(0, 0, 0, 1))
	p.SetStrokeWidth(20)

	p.SetStrokeJoin(JoinMiter)
	p.SetMiterLimit(4)
	mb := p.StrokeBounds()
	// the 90 degree miter apex extends radius*sqrt(2) out of the corner
	tolassert.EqualTol(t, 110, mb.Max.X, 1e-3)
	tolassert.EqualTol(t, -10, mb.Min.Y, 1e-3)

	// a miter limit below sqrt(2) falls back to bevel
	p.SetMiterLimit(1.2)
	bb := p.StrokeBounds()
	tolassert.EqualTol(t, 110, bb.Max.X, 1e-3)
	assert.Less(t, bb.Max.X-bb.Min.X, mb.Max.X-mb.Min.X+1e-3)
}

func TestSquareCapBounds(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))
	p.SetStroke(RGBA(0, 0, 0, 1))
	p.SetStrokeWidth(20)
	p.SetStrokeCap(CapSquare)

	sb := p.StrokeBounds()
	// square caps extend the line by the stroke radius at both ends
	tolassert.EqualTol(t, -10, sb.Min.X, 1e-3)
	tolassert.EqualTol(t, 110, sb.Max.X, 1e-3)
	tolassert.EqualTol(t, -10, sb.Min.Y, 1e-3)
	tolassert.EqualTol(t, 10, sb.Max.Y, 1e-3)
}

func TestHandleBounds(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.CubicCurveTo(math32.Vec2(50, -300), math32.Vec2(100, 300), math32.Vec2(100, 0))

	hb := p.HandleBounds()
	// handle positions are folded in even though the curve never
	// reaches them
	assert.LessOrEqual(t, hb.Min.Y, float32(-300))
	assert.GreaterOrEqual(t, hb.Max.Y, float32(300))
}

func TestHandleBoundsTransformed(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.CubicCurveTo(math32.Vec2(50, -300), math32.Vec2(100, 300), math32.Vec2(100, 0))
	p.SetTransform(math32.Translate2D(1000, 1000))

	// stroke bounds and handle positions are unioned in one space;
	// nothing of the box may stay behind near the local origin
	hb := p.HandleBounds()
	assert.GreaterOrEqual(t, hb.Min.X, float32(999))
	tolassert.EqualTol(t, 1000-300, hb.Min.Y, 1e-2)
	tolassert.EqualTol(t, 1000+300, hb.Max.Y, 1e-2)
}

func TestSingleSegmentBoundsTransformed(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(5, 5))
	p.SetTransform(math32.Translate2D(100, 0))

	b := p.Bounds()
	assertVec2(t, math32.Vec2(105, 5), b.Min)
	assertVec2(t, math32.Vec2(105, 5), b.Max)
}

func TestSegmentMutationClearsCurveCache(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))
	p.AddPoint(math32.Vec2(200, 0))

	tolassert.Equal(t, 200, p.Length())
	assert.Equal(t, float32(100), p.Curve(0).Length())

	p.Segment(1).SetPosition(math32.Vec2(100, 100))
	// both adjacent curves see the new geometry
	tolassert.EqualTol(t, math32.Sqrt(2)*100, p.Curve(0).Length(), 1e-2)
	tolassert.EqualTol(t, math32.Sqrt(2)*100, p.Curve(1).Length(), 1e-2)
	tolassert.EqualTol(t, 2*math32.Sqrt(2)*100, p.Length(), 1e-2)
}

func TestPositionAtAndTangent(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))
	p.AddPoint(math32.Vec2(100, 100))

	assertVec2(t, math32.Vec2(50, 0), p.PositionAt(50))
	assertVec2(t, math32.Vec2(100, 50), p.PositionAt(150))
	assertVec2(t, math32.Vec2(1, 0), p.TangentAt(50))
	assertVec2(t, math32.Vec2(0, 1), p.TangentAt(150))
}

func TestArcThrough(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(-100, 0))
	// upper half circle through (0, 100)
	err := p.ArcThrough(math32.Vec2(0, 100), math32.Vec2(100, 0))
	assert.NoError(t, err)

	tolassert.EqualTol(t, math32.Pi*100, p.Length(), 0.5)
	b := p.Bounds()
	tolassert.EqualTol(t, 100, b.Max.Y, 0.1)

	// colinear through point degrades to a line
	p2 := doc.CreatePath("")
	p2.AddPoint(math32.Vec2(0, 0))
	assert.NoError(t, p2.ArcThrough(math32.Vec2(50, 0), math32.Vec2(100, 0)))
	assert.True(t, p2.IsPolygon())
	tolassert.Equal(t, 100, p2.Length())
}

func TestArcSVG(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	// half circle of radius 50 to (100, 0)
	err := p.ArcSVG(math32.Vec2(100, 0), math32.Vec2(50, 50), 0, true, false)
	assert.NoError(t, err)
	tolassert.EqualTol(t, math32.Pi*50, p.Length(), 0.5)

	// zero radius degrades to a line
	p2 := doc.CreatePath("")
	p2.AddPoint(math32.Vec2(0, 0))
	assert.NoError(t, p2.ArcSVG(math32.Vec2(100, 0), math32.Vec2(0, 0), 0, true, false))
	assert.True(t, p2.IsPolygon())

	// non-finite radii fail
	p3 := doc.CreatePath("")
	p3.AddPoint(math32.Vec2(0, 0))
	err = p3.ArcSVG(math32.Vec2(100, 0), math32.Vec2(math32.NaN(), 50), 0, true, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestQuadraticConversion(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.QuadraticCurveTo(math32.Vec2(50, 100), math32.Vec2(100, 0))

	// B = E + 1/3 (A - E), C = E + 1/3 (D - E)
	assertVec2(t, math32.Vec2(100.0/3, 200.0/3), p.SegmentData()[0].HandleOut)
	assertVec2(t, math32.Vec2(50+50.0/3, 200.0/3), p.SegmentData()[1].HandleIn)

	// the curve passes through the quadratic apex at t = 0.5
	assertVec2(t, math32.Vec2(50, 50), p.Curve(0).Bezier().Point(0.5))
}

func TestCurveTo(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.CurveTo(math32.Vec2(50, 50), math32.Vec2(100, 0), 0.5)
	// passes through the given point at t = 0.5
	assertVec2(t, math32.Vec2(50, 50), p.Curve(0).Bezier().Point(0.5), 1e-3)
}

func TestSliceAndSplit(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))
	p.AddPoint(math32.Vec2(100, 100))

	slice := p.Slice(50, 150)
	assert.NotNil(t, slice)
	assertVec2(t, math32.Vec2(50, 0), slice.SegmentData()[0].Position)
	assertVec2(t, math32.Vec2(100, 50), slice.SegmentData()[len(slice.SegmentData())-1].Position)
	tolassert.EqualTol(t, 100, slice.Length(), 1e-2)
	slice.Remove()

	tail := p.SplitAt(100)
	assert.NotNil(t, tail)
	tolassert.EqualTol(t, 100, p.Length(), 1e-2)
	tolassert.EqualTol(t, 100, tail.Length(), 1e-2)
	assertVec2(t, math32.Vec2(100, 0), tail.SegmentData()[0].Position)
}

func TestDivideAtParameter(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))

	nc := p.Curve(0).DivideAtParameter(0.5)
	assert.True(t, nc.IsValid())
	assert.Equal(t, 3, p.SegmentCount())
	assert.Equal(t, 2, p.CurveCount())
	assertVec2(t, math32.Vec2(50, 0), p.SegmentData()[1].Position)
	// total length is unchanged
	tolassert.Equal(t, 100, p.Length())
}

func TestFlattenRegular(t *testing.T) {
	doc := NewDocument()
	c := doc.CreateCircle(math32.Vec2(0, 0), 100, "")
	length := c.Length()
	step, count := c.RegularOffsetAndSampleCount(10)
	tolassert.EqualTol(t, length/math32.Ceil(length/10), step, 1e-3)

	c.FlattenRegular(10, false)
	assert.True(t, c.IsPolygon())
	assert.Equal(t, count+1, c.SegmentCount())

	// samples are spaced by the regular step, not the raw maximum
	for i := 1; i < c.SegmentCount(); i++ {
		d := c.SegmentData()[i].Position.DistanceTo(c.SegmentData()[i-1].Position)
		tolassert.EqualTol(t, step, d, 0.1)
	}
}

func TestFlatten(t *testing.T) {
	doc := NewDocument()
	c := doc.CreateCircle(math32.Vec2(0, 0), 100, "")
	c.Flatten(0.25, false, 0, 32)
	assert.True(t, c.IsPolygon())
	assert.Greater(t, c.SegmentCount(), 16)
	// flattening preserves the outline within tolerance
	tolassert.EqualTol(t, 2*math32.Pi*100, c.Length(), 2)
}

func TestSimplify(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	// dense samples of a smooth arc
	for i := 0; i <= 100; i++ {
		a := float32(i) / 100 * math32.Pi
		p.AddPoint(math32.Vec2(100*math32.Cos(a), 100*math32.Sin(a)))
	}
	before := p.SegmentCount()
	length := p.Length()
	p.Simplify(2.5)
	assert.Less(t, p.SegmentCount(), before/4)
	// endpoints survive the fit
	assertVec2(t, math32.Vec2(100, 0), p.SegmentData()[0].Position, 1e-2)
	assertVec2(t, math32.Vec2(-100, 0), p.SegmentData()[p.SegmentCount()-1].Position, 1e-2)
	tolassert.EqualTol(t, length, p.Length(), 5)
}

func TestSmooth(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(50, 100))
	p.AddPoint(math32.Vec2(100, 0))
	p.AddPoint(math32.Vec2(150, 100))

	p.Smooth(SmoothAsymmetric, false)
	// interior segments have non-collapsed handles now
	assert.False(t, p.Segment(1).IsLinear())
	assert.False(t, p.Segment(2).IsLinear())
	// positions stay put
	assert.Equal(t, math32.Vec2(50, 100), p.SegmentData()[1].Position)
}
