// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// isFlatEnough returns whether the curve deviates from its chord by no
// more than the given tolerance.
func isFlatEnough(bz math32.Bezier, tolerance float32) bool {
	ux := 3*bz.P1.X - 2*bz.P0.X - bz.P3.X
	uy := 3*bz.P1.Y - 2*bz.P0.Y - bz.P3.Y
	vx := 3*bz.P2.X - 2*bz.P3.X - bz.P0.X
	vy := 3*bz.P2.Y - 2*bz.P3.Y - bz.P0.Y
	return math32.Max(ux*ux, vx*vx)+math32.Max(uy*uy, vy*vy) <= 16*tolerance*tolerance
}

func flattenCurve(bz math32.Bezier, out *[]math32.Vector2, angleTolerance, minDistance float32, depth, maxDepth int) {
	if depth < maxDepth && !isFlatEnough(bz, angleTolerance) &&
		(minDistance <= 0 || bz.P0.DistanceTo(bz.P3) > minDistance) {
		a, b := bz.Subdivide(0.5)
		flattenCurve(a, out, angleTolerance, minDistance, depth+1, maxDepth)
		flattenCurve(b, out, angleTolerance, minDistance, depth+1, maxDepth)
		return
	}
	*out = append(*out, bz.P0)
}

// flattenPathPositions emits the flattened positions of the path's
// curves, subdividing non-linearly: straight runs stay sparse while
// curvy regions subdivide deeply.
func flattenPathPositions(p *Path, angleTolerance, minDistance float32, maxRecursion int) []math32.Vector2 {
	var out []math32.Vector2
	for i := range p.curves {
		flattenCurve(p.Curve(i).Bezier(), &out, angleTolerance, minDistance, 0, maxRecursion)
	}
	if !p.closed && len(p.segments) > 0 {
		out = append(out, p.segments[len(p.segments)-1].Position)
	}
	return out
}

// Flatten replaces the path's curves with a polyline of positions.
// A curve is subdivided until it deviates from its chord by no more
// than angleTolerance, which is a distance bound; no angle between
// successive tangents is measured. Subdivision stops early below the
// minimum distance or at the maximum recursion depth. With
// flattenChildren, children paths are flattened too.
func (p *Path) Flatten(angleTolerance float32, flattenChildren bool, minDistance float32, maxRecursion int) {
	if angleTolerance <= 0 {
		angleTolerance = 0.25
	}
	if maxRecursion <= 0 {
		maxRecursion = 32
	}
	positions := flattenPathPositions(p, angleTolerance, minDistance, maxRecursion)
	segs := make([]SegmentData, len(positions))
	for i, pos := range positions {
		segs[i] = SegPoint(pos)
	}
	p.SwapSegments(segs, p.closed)

	if flattenChildren {
		for _, c := range p.children {
			if cp, ok := c.(*Path); ok {
				cp.Flatten(angleTolerance, true, minDistance, maxRecursion)
			}
		}
	}
}

// FlattenRegular replaces the path's curves with positions spaced
// evenly by the regular arc-length step not larger than maxDistance
// (length divided by the sample count it yields). With
// flattenChildren, children paths are flattened too.
func (p *Path) FlattenRegular(maxDistance float32, flattenChildren bool) {
	length := p.Length()
	if len(p.curves) == 0 || length == 0 {
		return
	}
	step, count := p.RegularOffsetAndSampleCount(maxDistance)
	segs := make([]SegmentData, 0, count+1)
	for i := 0; i <= count; i++ {
		off := math32.Min(float32(i)*step, length)
		segs = append(segs, SegPoint(p.PositionAt(off)))
	}
	p.SwapSegments(segs, p.closed)

	if flattenChildren {
		for _, c := range p.children {
			if cp, ok := c.(*Path); ok {
				cp.FlattenRegular(maxDistance, true)
			}
		}
	}
}

// RegularOffsetAndSampleCount returns the arc-length step not larger
// than maxDistance that evenly divides the path length, along with the
// resulting sample count.
func (p *Path) RegularOffsetAndSampleCount(maxDistance float32) (float32, int) {
	length := p.Length()
	count := int(math32.Ceil(length / maxDistance))
	if count < 1 {
		count = 1
	}
	return math32.Min(length, length/float32(count)), count
}

// RegularOffset returns the arc-length step not larger than
// maxDistance that evenly divides the path length.
func (p *Path) RegularOffset(maxDistance float32) float32 {
	off, _ := p.RegularOffsetAndSampleCount(maxDistance)
	return off
}
