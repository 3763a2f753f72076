// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/base/option"
	"github.com/tobiasvend/paper/math32"
)

// CurveData is the lazily computed derived data of one curve of a
// path. Absent fields are recomputed on the next read.
type CurveData struct {
	bezier option.Option[math32.Bezier]
	length option.Option[float32]
	bounds option.Option[math32.Box2]
}

// Curve is a light handle to one curve of a path: the cubic Bézier
// between segment index and the following segment (wrapping to 0 on a
// closed path).
type Curve struct {
	path  *Path
	index int
}

// IsValid returns whether the curve references a path.
func (c Curve) IsValid() bool { return c.path != nil }

// Index returns the curve index within its path.
func (c Curve) Index() int { return c.index }

// Path returns the owning path.
func (c Curve) Path() *Path { return c.path }

// SegmentOne returns the segment the curve starts at.
func (c Curve) SegmentOne() Segment {
	return Segment{c.path, c.index}
}

// SegmentTwo returns the segment the curve ends at.
func (c Curve) SegmentTwo() Segment {
	return Segment{c.path, (c.index + 1) % len(c.path.segments)}
}

// PositionOne returns the start position of the curve.
func (c Curve) PositionOne() math32.Vector2 { return c.SegmentOne().Position() }

// PositionTwo returns the end position of the curve.
func (c Curve) PositionTwo() math32.Vector2 { return c.SegmentTwo().Position() }

// HandleOne returns the first handle relative to the start position.
func (c Curve) HandleOne() math32.Vector2 { return c.SegmentOne().HandleOut() }

// HandleOneAbsolute returns the first handle as an absolute position.
func (c Curve) HandleOneAbsolute() math32.Vector2 { return c.SegmentOne().HandleOutAbsolute() }

// HandleTwo returns the second handle relative to the end position.
func (c Curve) HandleTwo() math32.Vector2 { return c.SegmentTwo().HandleIn() }

// HandleTwoAbsolute returns the second handle as an absolute position.
func (c Curve) HandleTwoAbsolute() math32.Vector2 { return c.SegmentTwo().HandleInAbsolute() }

// SetPositionOne moves the start anchor of the curve.
func (c Curve) SetPositionOne(p math32.Vector2) { c.SegmentOne().SetPosition(p) }

// SetPositionTwo moves the end anchor of the curve.
func (c Curve) SetPositionTwo(p math32.Vector2) { c.SegmentTwo().SetPosition(p) }

// SetHandleOne sets the first handle to the given absolute position.
func (c Curve) SetHandleOne(p math32.Vector2) { c.SegmentOne().SetHandleOut(p) }

// SetHandleTwo sets the second handle to the given absolute position.
func (c Curve) SetHandleTwo(p math32.Vector2) { c.SegmentTwo().SetHandleIn(p) }

// Bezier returns the cubic Bézier of the curve, cached until a
// mutation of either adjacent segment invalidates it.
func (c Curve) Bezier() math32.Bezier {
	cd := &c.path.curves[c.index]
	if !cd.bezier.Valid {
		cd.bezier.Set(math32.NewBezier(
			c.PositionOne(), c.HandleOneAbsolute(), c.HandleTwoAbsolute(), c.PositionTwo()))
	}
	return cd.bezier.Value
}

// Length returns the arc length of the curve, cached.
func (c Curve) Length() float32 {
	cd := &c.path.curves[c.index]
	if !cd.length.Valid {
		cd.length.Set(c.Bezier().Length())
	}
	return cd.length.Value
}

// Bounds returns the tight bounds of the curve, cached.
func (c Curve) Bounds() math32.Box2 {
	cd := &c.path.curves[c.index]
	if !cd.bounds.Valid {
		cd.bounds.Set(c.Bezier().Bounds())
	}
	return cd.bounds.Value
}

// BoundsPadded returns the bounds of the curve expanded by the given
// padding (not cached).
func (c Curve) BoundsPadded(padding float32) math32.Box2 {
	return c.Bezier().BoundsPadded(padding)
}

// Area returns the signed area contribution of the curve.
func (c Curve) Area() float32 {
	return c.Bezier().Area()
}

// markDirty clears the cached derived data of the curve.
func (c Curve) markDirty() {
	cd := &c.path.curves[c.index]
	cd.bezier.Clear()
	cd.length.Clear()
	cd.bounds.Clear()
}

// IsLinear returns whether both handles coincide with their anchors.
func (c Curve) IsLinear() bool {
	return c.HandleOne().IsClose(math32.Vector2{}, Tolerance) &&
		c.HandleTwo().IsClose(math32.Vector2{}, Tolerance)
}

// IsStraight returns whether the curve traces a straight line.
func (c Curve) IsStraight() bool {
	return c.Bezier().IsStraight()
}

// IsArc returns whether the curve approximates a circular arc: its
// handles are orthogonal and their lengths match the kappa fraction of
// the respective corner distances.
func (c Curve) IsArc() bool {
	h1 := c.HandleOne()
	h2 := c.HandleTwo()
	if !h1.Orthogonal(h2, Tolerance) {
		return false
	}
	// intersect the two handle lines to find the corner
	p1 := c.PositionOne()
	p2 := c.PositionTwo()
	den := h1.Cross(h2)
	if math32.Abs(den) < TrigEpsilon {
		return false
	}
	t := p2.Sub(p1).Cross(h2) / den
	corner := p1.Add(h1.MulScalar(t))

	d1 := corner.Sub(p1).Length()
	d2 := corner.Sub(p2).Length()
	if d1 == 0 || d2 == 0 {
		return false
	}
	return math32.IsClose(h1.Length()/d1, Kappa, Tolerance) &&
		math32.IsClose(h2.Length()/d2, Kappa, Tolerance)
}

// IsOrthogonal returns whether this curve and the other are both
// linear and orthogonal to each other.
func (c Curve) IsOrthogonal(other Curve) bool {
	return c.IsLinear() && other.IsLinear() &&
		c.PositionOne().Sub(c.PositionTwo()).
			Orthogonal(other.PositionOne().Sub(other.PositionTwo()), Tolerance)
}

// IsCollinear returns whether this curve and the other are both linear
// and parallel to each other.
func (c Curve) IsCollinear(other Curve) bool {
	return c.IsLinear() && other.IsLinear() &&
		c.PositionOne().Sub(c.PositionTwo()).
			Collinear(other.PositionOne().Sub(other.PositionTwo()), Tolerance)
}

// PositionAt returns the position at the given arc-length offset into
// the curve.
func (c Curve) PositionAt(offset float32) math32.Vector2 {
	return c.Bezier().Point(c.ParameterAtOffset(offset))
}

// NormalAt returns the unit normal at the given arc-length offset.
func (c Curve) NormalAt(offset float32) math32.Vector2 {
	return c.Bezier().Normal(c.ParameterAtOffset(offset))
}

// TangentAt returns the unit tangent at the given arc-length offset.
func (c Curve) TangentAt(offset float32) math32.Vector2 {
	return c.Bezier().Tangent(c.ParameterAtOffset(offset))
}

// CurvatureAt returns the curvature at the given arc-length offset.
func (c Curve) CurvatureAt(offset float32) float32 {
	return c.Bezier().Curvature(c.ParameterAtOffset(offset))
}

// AngleAt returns the tangent angle at the given arc-length offset.
func (c Curve) AngleAt(offset float32) float32 {
	return c.Bezier().Angle(c.ParameterAtOffset(offset))
}

// ParameterAtOffset returns the curve time at the given arc-length
// offset into the curve.
func (c Curve) ParameterAtOffset(offset float32) float32 {
	return c.Bezier().ParameterAtOffset(offset)
}

// ClosestParameter returns the curve time of the point on the curve
// closest to the given point.
func (c Curve) ClosestParameter(point math32.Vector2) float32 {
	t, _ := c.Bezier().ClosestParameter(point)
	return t
}

// LengthBetween returns the arc length between two curve times.
func (c Curve) LengthBetween(tStart, tEnd float32) float32 {
	return c.Bezier().LengthBetween(tStart, tEnd)
}

// PathOffset returns the arc length from the start of the path to the
// start of this curve.
func (c Curve) PathOffset() float32 {
	off := float32(0)
	for i := 0; i < c.index; i++ {
		off += Curve{c.path, i}.Length()
	}
	return off
}

// Peaks appends the curvature peak parameters of the curve.
func (c Curve) Peaks(roots []float32) []float32 {
	return c.Bezier().Peaks(roots)
}

// Extrema appends the x/y extrema parameters of the curve.
func (c Curve) Extrema(roots []float32) []float32 {
	return c.Bezier().Extrema2D(roots)
}

// CurveLocationAt returns the curve location at the given arc-length
// offset into the curve.
func (c Curve) CurveLocationAt(offset float32) CurveLocation {
	return CurveLocation{c, c.ParameterAtOffset(offset), c.PathOffset() + offset}
}

// CurveLocationAtParameter returns the curve location at the given
// curve time.
func (c Curve) CurveLocationAtParameter(t float32) CurveLocation {
	return CurveLocation{c, t, c.PathOffset() + c.LengthBetween(0, t)}
}

// ClosestCurveLocation returns the curve location closest to the given
// point.
func (c Curve) ClosestCurveLocation(point math32.Vector2) CurveLocation {
	t := c.ClosestParameter(point)
	return c.CurveLocationAtParameter(t)
}

// DivideAtParameter splits the curve at the given curve time by
// inserting a new segment, returning the newly created curve (the
// second half). Curve times at or outside the ends return an invalid
// curve and leave the path unchanged.
func (c Curve) DivideAtParameter(t float32) Curve {
	if t <= 0 || t >= 1 {
		return Curve{}
	}
	first, second := c.Bezier().Subdivide(t)
	c.SegmentOne().SetHandleOut(first.P1)
	c.SegmentTwo().SetHandleIn(second.P2)
	seg := SegmentData{first.P2, first.P3, second.P1}
	c.path.InsertSegment(c.index+1, seg)
	return Curve{c.path, c.index + 1}
}

// DivideAt splits the curve at the given arc-length offset, returning
// the newly created curve.
func (c Curve) DivideAt(offset float32) Curve {
	return c.DivideAtParameter(c.ParameterAtOffset(offset))
}

// CurveLocation is a location on a path: a curve, a curve time on it,
// and the arc-length offset from the path start.
type CurveLocation struct {
	curve     Curve
	parameter float32
	offset    float32
}

// IsValid returns whether the location references a curve.
func (cl CurveLocation) IsValid() bool { return cl.curve.IsValid() }

// Curve returns the curve of the location.
func (cl CurveLocation) Curve() Curve { return cl.curve }

// Parameter returns the curve time of the location.
func (cl CurveLocation) Parameter() float32 { return cl.parameter }

// Offset returns the arc-length offset of the location from the path
// start.
func (cl CurveLocation) Offset() float32 { return cl.offset }

// Position returns the position of the location.
func (cl CurveLocation) Position() math32.Vector2 {
	return cl.curve.Bezier().Point(cl.parameter)
}

// Normal returns the unit normal at the location.
func (cl CurveLocation) Normal() math32.Vector2 {
	return cl.curve.Bezier().Normal(cl.parameter)
}

// Tangent returns the unit tangent at the location.
func (cl CurveLocation) Tangent() math32.Vector2 {
	return cl.curve.Bezier().Tangent(cl.parameter)
}

// Curvature returns the curvature at the location.
func (cl CurveLocation) Curvature() float32 {
	return cl.curve.Bezier().Curvature(cl.parameter)
}

// Angle returns the tangent angle at the location.
func (cl CurveLocation) Angle() float32 {
	return cl.curve.Bezier().Angle(cl.parameter)
}

// IsSynonymous returns whether the two locations describe the same
// point on the same path within [GeometricEpsilon], also treating
// offsets a full path length apart as equal.
func (cl CurveLocation) IsSynonymous(other CurveLocation) bool {
	if !cl.IsValid() || !other.IsValid() {
		return false
	}
	if cl.curve.path != other.curve.path {
		return false
	}
	diff := math32.Abs(cl.offset - other.offset)
	return diff < GeometricEpsilon ||
		math32.Abs(cl.curve.path.Length()-diff) < GeometricEpsilon
}
