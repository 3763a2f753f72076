// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/base/option"
	"github.com/tobiasvend/paper/math32"
)

// Path is an item holding a sequence of cubic Bézier segments. A path
// with n segments has n-1 curves when open and n curves when closed
// (the last curve closing back to segment 0). Child paths form a
// compound path treated as a single region by the winding rule.
type Path struct {
	ItemBase

	segments []SegmentData
	curves   []CurveData
	closed   bool

	length option.Option[float32]

	// for hit testing
	monoCurves []monoCurveLoop

	// consumed by renderer backends
	geometryDirty bool
}

// ItemType returns [ItemPath].
func (p *Path) ItemType() ItemTypes { return ItemPath }

// SegmentData returns the raw segment array of the path. The slice
// must not be mutated directly.
func (p *Path) SegmentData() []SegmentData { return p.segments }

// SegmentCount returns the number of segments.
func (p *Path) SegmentCount() int { return len(p.segments) }

// CurveCount returns the number of curves.
func (p *Path) CurveCount() int { return len(p.curves) }

// Segment returns a handle to the segment at the given index.
func (p *Path) Segment(index int) Segment { return Segment{p, index} }

// Curve returns a handle to the curve at the given index.
func (p *Path) Curve(index int) Curve { return Curve{p, index} }

// IsClosed returns whether the path is closed.
func (p *Path) IsClosed() bool { return p.closed }

// IsPolygon returns whether every segment of the path is linear.
func (p *Path) IsPolygon() bool {
	for i := range p.segments {
		if !p.Segment(i).IsLinear() {
			return false
		}
	}
	return true
}

// construction

// AddPoint appends a segment with collapsed handles at the given
// position.
func (p *Path) AddPoint(to math32.Vector2) {
	addPoint(&p.segments, to)
	p.appendedSegments(1)
}

// CubicCurveTo appends a cubic curve from the current last position
// via the two absolute handles to the given position.
func (p *Path) CubicCurveTo(handleOne, handleTwo, to math32.Vector2) {
	cubicCurveTo(&p.segments, handleOne, handleTwo, to)
	p.appendedSegments(1)
}

// QuadraticCurveTo appends a quadratic curve, converted exactly to a
// cubic, from the current last position via the absolute handle to the
// given position.
func (p *Path) QuadraticCurveTo(handle, to math32.Vector2) {
	quadraticCurveTo(&p.segments, handle, to)
	p.appendedSegments(1)
}

// CurveTo appends a curve passing through the given point at curve
// time t (default 0.5) and ending at to.
func (p *Path) CurveTo(through, to math32.Vector2, t float32) {
	curveTo(&p.segments, through, to, t)
	p.appendedSegments(1)
}

// ArcThrough appends a circular arc from the current last position
// through the given point to the given end point. Colinear points fall
// back to a straight line; otherwise a failure to construct the circle
// returns [ErrInvalidArgument].
func (p *Path) ArcThrough(through, to math32.Vector2) error {
	before := len(p.segments)
	if err := arcThrough(&p.segments, through, to); err != nil {
		return err
	}
	p.appendedSegments(len(p.segments) - before)
	return nil
}

// ArcTo appends a circular arc sweeping from the current last position
// to the given point in the given direction.
func (p *Path) ArcTo(to math32.Vector2, clockwise bool) error {
	before := len(p.segments)
	if err := arcTo(&p.segments, to, clockwise); err != nil {
		return err
	}
	p.appendedSegments(len(p.segments) - before)
	return nil
}

// ArcSVG appends an SVG 1.1 elliptical arc from the current last
// position to the given point, with the given radii, x-axis rotation
// in radians, and the large-arc and sweep flags.
func (p *Path) ArcSVG(to, radii math32.Vector2, rotation float32, clockwise, large bool) error {
	before := len(p.segments)
	if err := arcSVG(&p.segments, to, radii, rotation, clockwise, large); err != nil {
		return err
	}
	p.appendedSegments(len(p.segments) - before)
	return nil
}

// CubicCurveBy is the relative form of [Path.CubicCurveTo].
func (p *Path) CubicCurveBy(handleOne, handleTwo, by math32.Vector2) {
	cubicCurveBy(&p.segments, handleOne, handleTwo, by)
	p.appendedSegments(1)
}

// QuadraticCurveBy is the relative form of [Path.QuadraticCurveTo].
func (p *Path) QuadraticCurveBy(handle, by math32.Vector2) {
	quadraticCurveBy(&p.segments, handle, by)
	p.appendedSegments(1)
}

// CurveBy is the relative form of [Path.CurveTo].
func (p *Path) CurveBy(through, by math32.Vector2, t float32) {
	curveBy(&p.segments, through, by, t)
	p.appendedSegments(1)
}

// ArcThroughBy is the relative form of [Path.ArcThrough].
func (p *Path) ArcThroughBy(through, by math32.Vector2) error {
	before := len(p.segments)
	if err := arcThroughBy(&p.segments, through, by); err != nil {
		return err
	}
	p.appendedSegments(len(p.segments) - before)
	return nil
}

// ArcBy is the relative form of [Path.ArcTo].
func (p *Path) ArcBy(to math32.Vector2, clockwise bool) error {
	before := len(p.segments)
	if err := arcBy(&p.segments, to, clockwise); err != nil {
		return err
	}
	p.appendedSegments(len(p.segments) - before)
	return nil
}

// ClosePath closes the path. If the first and last positions coincide
// within tolerance, the last segment is dropped and its incoming
// handle carried over to the first segment.
func (p *Path) ClosePath() {
	if p.closed {
		return
	}
	if len(p.segments) < 2 {
		return
	}
	first := p.Segment(0)
	last := p.Segment(len(p.segments) - 1)
	if first.Position().IsClose(last.Position(), Tolerance) {
		first.SetRelativeHandleIn(last.HandleIn())
		p.segments = p.segments[:len(p.segments)-1]
		p.curves[len(p.curves)-1] = CurveData{}
	} else {
		p.curves = append(p.curves, CurveData{})
	}
	p.closed = true
	p.markGeometryDirty(true, true)
}

// shape factories; these replace any existing segments

// MakeEllipse replaces the path contents with a closed four-segment
// kappa-approximated ellipse with the given center and size.
func (p *Path) MakeEllipse(center, size math32.Vector2) *Path {
	unit := [4]SegmentData{
		{math32.Vec2(0, Kappa), math32.Vec2(-1, 0), math32.Vec2(0, -Kappa)},
		{math32.Vec2(-Kappa, 0), math32.Vec2(0, -1), math32.Vec2(Kappa, 0)},
		{math32.Vec2(0, -Kappa), math32.Vec2(1, 0), math32.Vec2(0, Kappa)},
		{math32.Vec2(Kappa, 0), math32.Vec2(0, 1), math32.Vec2(-Kappa, 0)},
	}
	rad := size.MulScalar(0.5)
	segs := make([]SegmentData, 4)
	for i, u := range unit {
		pos := u.Position.Mul(rad).Add(center)
		segs[i] = SegmentData{
			HandleIn:  pos.Add(u.HandleIn.Mul(rad)),
			Position:  pos,
			HandleOut: pos.Add(u.HandleOut.Mul(rad)),
		}
	}
	p.SwapSegments(segs, true)
	return p
}

// MakeCircle replaces the path contents with a closed four-segment
// kappa-approximated circle with the given center and radius.
func (p *Path) MakeCircle(center math32.Vector2, radius float32) *Path {
	return p.MakeEllipse(center, math32.Vector2Scalar(radius).MulScalar(2))
}

// MakeRectangle replaces the path contents with a closed rectangle
// between the two given corners.
func (p *Path) MakeRectangle(from, to math32.Vector2) *Path {
	segs := []SegmentData{
		SegPoint(math32.Vec2(to.X, from.Y)),
		SegPoint(to),
		SegPoint(math32.Vec2(from.X, to.Y)),
		SegPoint(from),
	}
	p.SwapSegments(segs, true)
	return p
}

// MakeRoundedRectangle replaces the path contents with a closed
// eight-segment rounded rectangle between min and max with the given
// corner radii.
func (p *Path) MakeRoundedRectangle(min, max, radius math32.Vector2) *Path {
	r := radius
	r.X = math32.Min(r.X, (max.X-min.X)/2)
	r.Y = math32.Min(r.Y, (max.Y-min.Y)/2)
	hx := r.X * Kappa
	hy := r.Y * Kappa
	// straight edges at even curve indices, corner arcs at odd ones
	segs := []SegmentData{
		Seg(math32.Vec2(min.X+r.X, min.Y), math32.Vec2(-hx, 0), math32.Vector2{}),
		Seg(math32.Vec2(max.X-r.X, min.Y), math32.Vector2{}, math32.Vec2(hx, 0)),
		Seg(math32.Vec2(max.X, min.Y+r.Y), math32.Vec2(0, -hy), math32.Vector2{}),
		Seg(math32.Vec2(max.X, max.Y-r.Y), math32.Vector2{}, math32.Vec2(0, hy)),
		Seg(math32.Vec2(max.X-r.X, max.Y), math32.Vec2(hx, 0), math32.Vector2{}),
		Seg(math32.Vec2(min.X+r.X, max.Y), math32.Vector2{}, math32.Vec2(-hx, 0)),
		Seg(math32.Vec2(min.X, max.Y-r.Y), math32.Vec2(0, hy), math32.Vector2{}),
		Seg(math32.Vec2(min.X, min.Y+r.Y), math32.Vector2{}, math32.Vec2(0, -hy)),
	}
	p.SwapSegments(segs, true)
	return p
}

// segment manipulation

// AddSegment appends a segment with the given anchor and handles
// relative to the anchor.
func (p *Path) AddSegment(point, handleIn, handleOut math32.Vector2) {
	p.segments = append(p.segments, Seg(point, handleIn, handleOut))
	p.appendedSegments(1)
}

// AddSegments appends the given segment data.
func (p *Path) AddSegments(segs []SegmentData) {
	p.InsertSegments(len(p.segments), segs)
}

// InsertSegment inserts the given segment data at the given index and
// returns a handle to it.
func (p *Path) InsertSegment(index int, seg SegmentData) Segment {
	p.InsertSegments(index, []SegmentData{seg})
	return Segment{p, index}
}

// InsertSegments inserts the given segment data at the given index,
// resetting the curve caches that depend on the region.
func (p *Path) InsertSegments(index int, segs []SegmentData) {
	if len(segs) == 0 {
		return
	}
	if index >= len(p.segments) {
		// append case
		p.segments = append(p.segments, segs...)
		if len(p.segments) > 1 {
			if p.closed && len(p.curves) > 0 {
				p.curves = p.curves[:len(p.curves)-1]
			}
			want := len(p.segments) - 1
			for len(p.curves) < want {
				p.curves = append(p.curves, CurveData{})
			}
			if p.closed {
				p.curves = append(p.curves, CurveData{})
			}
		}
	} else {
		p.segments = append(p.segments, make([]SegmentData, len(segs))...)
		copy(p.segments[index+len(segs):], p.segments[index:])
		copy(p.segments[index:], segs)

		// insert new curve slots and reset all caches at and after the
		// insertion point
		p.curves = append(p.curves, make([]CurveData, len(segs))...)
		for i := index; i < len(p.curves); i++ {
			p.curves[i] = CurveData{}
		}
	}
	p.markGeometryDirty(true, true)
}

// RemoveSegment removes the segment at the given index.
func (p *Path) RemoveSegment(index int) {
	p.RemoveSegmentRange(index, index+1)
}

// RemoveSegmentRange removes the segments in [from, to).
func (p *Path) RemoveSegmentRange(from, to int) {
	p.segments = append(p.segments[:from], p.segments[to:]...)
	p.rebuildCurves()
	p.markGeometryDirty(true, true)
}

// RemoveSegments removes all segments, leaving an open empty path.
func (p *Path) RemoveSegments() {
	p.closed = false
	p.segments = nil
	p.curves = nil
	p.markGeometryDirty(true, true)
}

// SwapSegments replaces the path's segments with the given slice,
// taking ownership of it, and sets the closed flag.
func (p *Path) SwapSegments(segs []SegmentData, closed bool) {
	p.segments = segs
	p.closed = closed
	p.rebuildCurves()
	p.markGeometryDirty(true, true)
}

// rebuildCurves resizes the curve cache array to match the segments,
// clearing all cached data.
func (p *Path) rebuildCurves() {
	n := len(p.segments)
	count := n - 1
	if count < 0 {
		count = 0
	}
	if p.closed && n > 1 {
		count = n
	}
	p.curves = make([]CurveData, count)
}

// appendedSegments accounts for count segments appended directly to
// the segment buffer by the construction primitives. The first
// appended segment only creates a curve when another segment precedes
// it.
func (p *Path) appendedSegments(count int) {
	for i := 0; i < count; i++ {
		if len(p.segments)-count+i+1 > 1 {
			p.curves = append(p.curves, CurveData{})
		}
	}
	p.markGeometryDirty(true, true)
}

// derived data

// Length returns the total arc length of the path, cached.
func (p *Path) Length() float32 {
	if !p.length.Valid {
		total := float32(0)
		for i := range p.curves {
			total += p.Curve(i).Length()
		}
		p.length.Set(total)
	}
	return p.length.Value
}

// Area returns the signed area of the path, including the areas of
// child paths of a compound path.
func (p *Path) Area() float32 {
	area := float32(0)
	for i := range p.curves {
		area += p.Curve(i).Area()
	}
	if !p.closed && len(p.segments) > 1 {
		// integrate the implicit closing chord
		last := p.segments[len(p.segments)-1].Position
		first := p.segments[0].Position
		area += math32.NewBezier(last, last, first, first).Area()
	}
	for _, c := range p.children {
		if cp, ok := c.(*Path); ok {
			area += cp.Area()
		}
	}
	return area
}

// IsClockwise returns whether the path winds clockwise (non-negative
// signed area in a y-down coordinate system).
func (p *Path) IsClockwise() bool {
	return p.Area() >= 0
}

// SetClockwise reverses the path if needed so that its winding
// direction matches the given one.
func (p *Path) SetClockwise(b bool) {
	if p.IsClockwise() != b {
		p.Reverse()
	}
}

// Reverse reverses the segment order of the path (swapping handles),
// recursing into children paths.
func (p *Path) Reverse() {
	for i := range p.segments {
		seg := &p.segments[i]
		seg.HandleIn, seg.HandleOut = seg.HandleOut, seg.HandleIn
	}
	for i, j := 0, len(p.segments)-1; i < j; i, j = i+1, j-1 {
		p.segments[i], p.segments[j] = p.segments[j], p.segments[i]
	}
	for _, c := range p.children {
		if cp, ok := c.(*Path); ok {
			cp.Reverse()
		}
	}
	p.rebuildCurves()
	p.markGeometryDirty(true, true)
}

// Contains returns whether the given point lies inside the path under
// its effective winding rule.
func (p *Path) Contains(point math32.Vector2) bool {
	hb := p.HandleBounds()
	if hb == noBounds || !hb.ContainsPoint(point) {
		return false
	}
	w := winding(point, p.buildMonoCurves(), false)
	if p.WindingRule() == EvenOdd {
		return w&1 != 0
	}
	return w > 0
}

// locations

// CurveLocationAt returns the curve location at the given arc-length
// offset from the path start.
func (p *Path) CurveLocationAt(offset float32) CurveLocation {
	covered := float32(0)
	for i := range p.curves {
		start := covered
		covered += p.Curve(i).Length()
		if covered >= offset {
			return p.Curve(i).CurveLocationAt(offset - start)
		}
	}
	// the end of the curves may be missed through length imprecision
	if offset <= p.Length() && len(p.curves) > 0 {
		return p.Curve(len(p.curves) - 1).CurveLocationAtParameter(1)
	}
	return CurveLocation{}
}

// ClosestCurveLocation returns the curve location on the path closest
// to the given point, along with its distance.
func (p *Path) ClosestCurveLocation(point math32.Vector2) (CurveLocation, float32) {
	minDist := math32.Infinity
	closest := CurveLocation{}
	for i := range p.curves {
		t, dist := p.Curve(i).Bezier().ClosestParameter(point)
		if dist < minDist {
			minDist = dist
			closest = p.Curve(i).CurveLocationAtParameter(t)
		}
	}
	return closest, minDist
}

// PositionAt returns the position at the given arc-length offset.
func (p *Path) PositionAt(offset float32) math32.Vector2 {
	return p.CurveLocationAt(offset).Position()
}

// NormalAt returns the unit normal at the given arc-length offset.
func (p *Path) NormalAt(offset float32) math32.Vector2 {
	return p.CurveLocationAt(offset).Normal()
}

// TangentAt returns the unit tangent at the given arc-length offset.
func (p *Path) TangentAt(offset float32) math32.Vector2 {
	return p.CurveLocationAt(offset).Tangent()
}

// CurvatureAt returns the curvature at the given arc-length offset.
func (p *Path) CurvatureAt(offset float32) float32 {
	return p.CurveLocationAt(offset).Curvature()
}

// AngleAt returns the tangent angle at the given arc-length offset.
func (p *Path) AngleAt(offset float32) float32 {
	return p.CurveLocationAt(offset).Angle()
}

// Peaks returns the curve locations of all curvature peaks of the path.
func (p *Path) Peaks() []CurveLocation {
	var locs []CurveLocation
	var roots []float32
	for i := range p.curves {
		roots = p.Curve(i).Peaks(roots[:0])
		for _, t := range roots {
			locs = append(locs, p.Curve(i).CurveLocationAtParameter(t))
		}
	}
	return locs
}

// Extrema returns the curve locations of all x/y extrema of the path.
func (p *Path) Extrema() []CurveLocation {
	var locs []CurveLocation
	var roots []float32
	for i := range p.curves {
		roots = p.Curve(i).Extrema(roots[:0])
		for _, t := range roots {
			locs = append(locs, p.Curve(i).CurveLocationAtParameter(t))
		}
	}
	return locs
}

// Slice returns a new path covering the part of this path between the
// two arc-length offsets, inserted immediately above this path. It
// returns nil when the range is empty.
func (p *Path) Slice(from, to float32) *Path {
	return p.SliceLocations(p.CurveLocationAt(from), p.CurveLocationAt(to))
}

// SliceLocations returns a new path covering the part of this path
// between the two curve locations, inserted immediately above this
// path. It returns nil when the range is empty.
func (p *Path) SliceLocations(from, to CurveLocation) *Path {
	if !from.IsValid() || !to.IsValid() || from.curve.path != p || to.curve.path != p {
		return nil
	}
	if from.curve.index == to.curve.index && from.parameter == to.parameter {
		return nil
	}

	var bez, bez2 math32.Bezier
	if from.curve.index != to.curve.index {
		bez = from.curve.Bezier().Slice(from.parameter, 1)
		bez2 = to.curve.Bezier().Slice(0, to.parameter)
	} else {
		bez = from.curve.Bezier().Slice(from.parameter, to.parameter)
		bez2 = bez
	}

	segs := make([]SegmentData, 0, to.curve.index-from.curve.index+2)
	segs = append(segs, SegmentData{bez.P0, bez.P0, bez.P1})

	firstMid := from.curve.SegmentTwo().Index()
	lastMid := to.curve.SegmentOne().Index()
	for i := firstMid; i <= lastMid; i++ {
		seg := p.segments[i]
		handleIn := seg.HandleIn
		handleOut := seg.HandleOut
		if i == firstMid && i == lastMid {
			handleIn = bez.P2
			handleOut = bez2.P1
		} else if i == firstMid {
			handleIn = bez.P2
		} else if i == lastMid {
			handleOut = bez2.P1
		}
		segs = append(segs, SegmentData{handleIn, seg.Position, handleOut})
	}

	segs = append(segs, SegmentData{bez2.P2, bez2.P3, bez2.P3})

	ret := p.cloneWithoutGeometry()
	ret.SwapSegments(segs, false)
	ret.InsertAbove(p)
	return ret
}

// SplitAt splits the path at the given arc-length offset, shortening
// this path to [0, offset] and returning the tail as a new path
// inserted immediately above this one. Offsets at or outside the ends
// return nil and leave the path unchanged. A closed path is unclosed
// by the split.
func (p *Path) SplitAt(offset float32) *Path {
	loc := p.CurveLocationAt(offset)
	if !loc.IsValid() || offset <= 0 || offset >= p.Length() {
		return nil
	}
	tail := p.Slice(offset, p.Length())
	head := p.Slice(0, offset)
	if head == nil || tail == nil {
		if head != nil {
			head.Remove()
		}
		if tail != nil {
			tail.Remove()
		}
		return nil
	}
	p.SwapSegments(append([]SegmentData(nil), head.segments...), false)
	head.Remove()
	return tail
}

// cloneWithoutGeometry clones the path's item state (style, transform,
// name) without its segments or children.
func (p *Path) cloneWithoutGeometry() *Path {
	ret := p.doc.CreatePath(p.name)
	ret.visible = p.visible
	ret.transform = p.transform
	ret.pivot = p.pivot
	ret.fill = p.fill
	ret.stroke = p.stroke
	ret.strokeWidth = p.strokeWidth
	ret.strokeJoin = p.strokeJoin
	ret.strokeCap = p.strokeCap
	ret.scaleStroke = p.scaleStroke
	ret.miterLimit = p.miterLimit
	ret.dashArray = p.dashArray
	ret.dashOffset = p.dashOffset
	ret.windingRule = p.windingRule
	return ret
}

// Clone deep-copies the path and its subtree, inserting the copy
// immediately above the path in its parent.
func (p *Path) Clone() Item {
	ret := p.doc.CreatePath(p.name)
	ret.segments = append([]SegmentData(nil), p.segments...)
	ret.curves = append([]CurveData(nil), p.curves...)
	ret.closed = p.closed
	ret.length = p.length
	ret.geometryDirty = p.geometryDirty
	p.cloneItemTo(ret)
	return ret
}

// item dispatch

func (p *Path) canAddChild(child Item) bool {
	return child.ItemType() == ItemPath
}

func (p *Path) addedChild(child Item) {}

func (p *Path) computeBounds(tr *math32.Matrix2, kind BoundsKinds) (math32.Box2, bool) {
	var b math32.Box2
	var ok bool
	switch kind {
	case BoundsStroke:
		b, ok = p.computeStrokeBounds(tr)
	case BoundsHandle:
		b, ok = p.computeHandleBounds(tr)
	default:
		b, ok = p.computeFillBounds(tr, 0)
	}
	return p.mergeWithChildrenBounds(b, ok, tr, kind, false)
}

func (p *Path) transformChanged(fromParent bool) {
	p.ItemBase.transformChanged(fromParent)
	p.monoCurves = nil
}

func (p *Path) applyTransform(m math32.Matrix2, markParentsBoundsDirty bool) {
	for i := range p.segments {
		p.applyTransformToSegment(i, m)
	}
	for i := range p.curves {
		p.curves[i] = CurveData{}
	}
	p.markGeometryDirty(true, markParentsBoundsDirty)
	p.applyTransformToChildrenAndPivot(m)
}

func (p *Path) applyTransformToSegment(index int, m math32.Matrix2) {
	seg := &p.segments[index]
	seg.HandleIn = m.MulPoint(seg.HandleIn)
	seg.Position = m.MulPoint(seg.Position)
	seg.HandleOut = m.MulPoint(seg.HandleOut)
}

// markGeometryDirty flags the path geometry for the renderer and
// clears the path-level caches that depend on segment data.
func (p *Path) markGeometryDirty(markLengthDirty, markParentsBoundsDirty bool) {
	p.geometryDirty = true
	p.markBoundsDirty(markParentsBoundsDirty)
	if markLengthDirty {
		p.length.Clear()
	}
	p.monoCurves = nil
	p.markSymbolsDirty()
}

// CleanDirtyGeometry returns whether the geometry changed since the
// last call and resets the flag. Renderer backends call this to decide
// when to re-tessellate.
func (p *Path) CleanDirtyGeometry() bool {
	d := p.geometryDirty
	p.geometryDirty = false
	return d
}
