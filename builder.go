// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// SegmentBuilder accumulates segments through the post-script style
// construction operations without an owning path, so importers can
// build geometry locally and hand it to a path with
// [Path.SwapSegments] when done.
type SegmentBuilder struct {
	segs []SegmentData
}

// Len returns the number of accumulated segments.
func (sb *SegmentBuilder) Len() int { return len(sb.segs) }

// Segments returns the accumulated segments. The builder keeps
// ownership; use [SegmentBuilder.Take] to hand them off.
func (sb *SegmentBuilder) Segments() []SegmentData { return sb.segs }

// Take returns the accumulated segments and resets the builder.
func (sb *SegmentBuilder) Take() []SegmentData {
	segs := sb.segs
	sb.segs = nil
	return segs
}

// Last returns the last accumulated segment.
func (sb *SegmentBuilder) Last() SegmentData {
	return sb.segs[len(sb.segs)-1]
}

// LastPosition returns the position of the last accumulated segment,
// or the zero vector when empty.
func (sb *SegmentBuilder) LastPosition() math32.Vector2 {
	if len(sb.segs) == 0 {
		return math32.Vector2{}
	}
	return sb.segs[len(sb.segs)-1].Position
}

// SetLastHandleOut replaces the outgoing handle of the last segment
// with the given absolute position.
func (sb *SegmentBuilder) SetLastHandleOut(p math32.Vector2) {
	sb.segs[len(sb.segs)-1].HandleOut = p
}

// AddPoint appends a segment with collapsed handles.
func (sb *SegmentBuilder) AddPoint(to math32.Vector2) {
	addPoint(&sb.segs, to)
}

// AddSegment appends the given raw segment data.
func (sb *SegmentBuilder) AddSegment(seg SegmentData) {
	sb.segs = append(sb.segs, seg)
}

// CubicCurveTo appends a cubic curve via the two absolute handles.
func (sb *SegmentBuilder) CubicCurveTo(handleOne, handleTwo, to math32.Vector2) {
	cubicCurveTo(&sb.segs, handleOne, handleTwo, to)
}

// QuadraticCurveTo appends a quadratic curve, converted exactly to a
// cubic.
func (sb *SegmentBuilder) QuadraticCurveTo(handle, to math32.Vector2) {
	quadraticCurveTo(&sb.segs, handle, to)
}

// CurveTo appends a curve passing through the given point at curve
// time t.
func (sb *SegmentBuilder) CurveTo(through, to math32.Vector2, t float32) {
	curveTo(&sb.segs, through, to, t)
}

// ArcThrough appends a circular arc through the given point.
func (sb *SegmentBuilder) ArcThrough(through, to math32.Vector2) error {
	return arcThrough(&sb.segs, through, to)
}

// ArcTo appends a circular arc sweeping to the given point.
func (sb *SegmentBuilder) ArcTo(to math32.Vector2, clockwise bool) error {
	return arcTo(&sb.segs, to, clockwise)
}

// ArcSVG appends an SVG 1.1 elliptical arc.
func (sb *SegmentBuilder) ArcSVG(to, radii math32.Vector2, rotation float32, clockwise, large bool) error {
	return arcSVG(&sb.segs, to, radii, rotation, clockwise, large)
}
