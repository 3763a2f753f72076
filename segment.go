// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// SegmentData is the plain data of one path segment: the anchor
// position and the two handles. All three are absolute positions;
// handles are not stored relative to the anchor.
type SegmentData struct {
	HandleIn  math32.Vector2
	Position  math32.Vector2
	HandleOut math32.Vector2
}

// Seg returns a [SegmentData] from the anchor position and the two
// handles given relative to the anchor.
func Seg(pos, handleIn, handleOut math32.Vector2) SegmentData {
	return SegmentData{pos.Add(handleIn), pos, pos.Add(handleOut)}
}

// SegPoint returns a [SegmentData] with both handles collapsed onto
// the anchor.
func SegPoint(pos math32.Vector2) SegmentData {
	return SegmentData{pos, pos, pos}
}

// Segment is a light handle to one segment of a path, identified by
// the path and the segment index.
type Segment struct {
	path  *Path
	index int
}

// IsValid returns whether the segment references a path.
func (s Segment) IsValid() bool { return s.path != nil }

// Index returns the segment index within its path.
func (s Segment) Index() int { return s.index }

func (s Segment) data() *SegmentData { return &s.path.segments[s.index] }

// Position returns the anchor position.
func (s Segment) Position() math32.Vector2 { return s.data().Position }

// HandleIn returns the incoming handle relative to the anchor.
func (s Segment) HandleIn() math32.Vector2 {
	return s.data().HandleIn.Sub(s.data().Position)
}

// HandleOut returns the outgoing handle relative to the anchor.
func (s Segment) HandleOut() math32.Vector2 {
	return s.data().HandleOut.Sub(s.data().Position)
}

// HandleInAbsolute returns the incoming handle as an absolute position.
func (s Segment) HandleInAbsolute() math32.Vector2 { return s.data().HandleIn }

// HandleOutAbsolute returns the outgoing handle as an absolute position.
func (s Segment) HandleOutAbsolute() math32.Vector2 { return s.data().HandleOut }

// SetPosition moves the anchor, carrying both handles along.
func (s Segment) SetPosition(pos math32.Vector2) {
	d := s.data()
	delta := pos.Sub(d.Position)
	d.Position = pos
	d.HandleIn = d.HandleIn.Add(delta)
	d.HandleOut = d.HandleOut.Add(delta)
	s.segmentChanged()
}

// SetHandleIn sets the incoming handle to the given absolute position.
func (s Segment) SetHandleIn(pos math32.Vector2) {
	s.data().HandleIn = pos
	s.segmentChanged()
}

// SetHandleOut sets the outgoing handle to the given absolute position.
func (s Segment) SetHandleOut(pos math32.Vector2) {
	s.data().HandleOut = pos
	s.segmentChanged()
}

// SetRelativeHandleIn sets the incoming handle relative to the anchor.
func (s Segment) SetRelativeHandleIn(rel math32.Vector2) {
	s.SetHandleIn(s.data().Position.Add(rel))
}

// SetRelativeHandleOut sets the outgoing handle relative to the anchor.
func (s Segment) SetRelativeHandleOut(rel math32.Vector2) {
	s.SetHandleOut(s.data().Position.Add(rel))
}

// IsLinear returns whether both handles coincide with the anchor
// within tolerance.
func (s Segment) IsLinear() bool {
	return s.HandleIn().IsClose(math32.Vector2{}, Tolerance) &&
		s.HandleOut().IsClose(math32.Vector2{}, Tolerance)
}

// CurveIn returns the curve ending at this segment, if any.
func (s Segment) CurveIn() Curve {
	n := len(s.path.segments)
	if n > 1 {
		if s.index == 0 && s.path.closed {
			return Curve{s.path, n - 1}
		}
		if s.index > 0 {
			return Curve{s.path, s.index - 1}
		}
	}
	return Curve{}
}

// CurveOut returns the curve starting at this segment, if any.
func (s Segment) CurveOut() Curve {
	n := len(s.path.segments)
	if n > 1 && (s.index < n-1 || s.path.closed) {
		return Curve{s.path, s.index}
	}
	return Curve{}
}

// Remove removes the segment from its path.
func (s Segment) Remove() {
	s.path.RemoveSegment(s.index)
}

// Transform applies the given transform to the segment geometry.
func (s Segment) Transform(m math32.Matrix2) {
	s.path.applyTransformToSegment(s.index, m)
	s.segmentChanged()
}

// segmentChanged invalidates the caches of the two adjacent curves and
// the path-level derived data.
func (s Segment) segmentChanged() {
	if ci := s.CurveIn(); ci.IsValid() {
		ci.markDirty()
	}
	if co := s.CurveOut(); co.IsValid() {
		co.markDirty()
	}
	s.path.markGeometryDirty(true, true)
}
