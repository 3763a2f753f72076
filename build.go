// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"fmt"

	"github.com/tobiasvend/paper/math32"
)

// The post-script style construction primitives operate on a plain
// segment buffer so they can be used both by [Path] and by importers
// that accumulate segments before handing them to a path. All of them
// except addPoint require a current segment to extend.

func addPoint(segs *[]SegmentData, to math32.Vector2) {
	*segs = append(*segs, SegmentData{to, to, to})
}

func cubicCurveTo(segs *[]SegmentData, handleOne, handleTwo, to math32.Vector2) {
	current := &(*segs)[len(*segs)-1]
	current.HandleOut = handleOne
	*segs = append(*segs, SegmentData{handleTwo, to, to})
}

func quadraticCurveTo(segs *[]SegmentData, handle, to math32.Vector2) {
	// The conversion is exact: with the quad points A E D and the
	// cubic A B C D, B = E + 1/3 (A - E) and C = E + 1/3 (D - E).
	current := (*segs)[len(*segs)-1]
	const fact = 2.0 / 3.0
	cubicCurveTo(segs,
		current.Position.Add(handle.Sub(current.Position).MulScalar(fact)),
		to.Add(handle.Sub(to).MulScalar(fact)),
		to)
}

func curveTo(segs *[]SegmentData, through, to math32.Vector2, t float32) {
	if t <= 0 || t >= 1 {
		t = 0.5
	}
	current := (*segs)[len(*segs)-1]
	t1 := 1 - t
	tt := t * t
	t1t1 := t1 * t1
	// solve for the quadratic handle so the curve passes through the
	// given point at curve time t
	handle := through.
		Sub(current.Position.MulScalar(t1t1)).
		Sub(to.MulScalar(tt)).
		DivScalar(2 * t * t1)
	quadraticCurveTo(segs, handle, to)
}

// arcThrough appends the circular arc from the current position
// through one given point to another, constructed from the
// perpendicular bisectors of the chords.
func arcThrough(segs *[]SegmentData, through, to math32.Vector2) error {
	from := (*segs)[len(*segs)-1].Position

	oneStart := from.Add(through).MulScalar(0.5)
	oneDir := through.Sub(from).Rot90CCW()
	twoStart := through.Add(to).MulScalar(0.5)
	twoDir := to.Sub(through).Rot90CCW()

	line := to.Sub(from)
	throughSide := sideOfLine(from, line, through)

	den := oneDir.Cross(twoDir)
	if math32.Abs(den) < TrigEpsilon*oneDir.Length()*twoDir.Length() {
		if throughSide == 0 {
			// Colinear points leave no circle to arc along; the
			// connecting arc of the infinitely large circle is the
			// line between the points.
			addPoint(segs, to)
			return nil
		}
		return fmt.Errorf("%w: cannot put an arc through (%g, %g) and (%g, %g)",
			ErrInvalidArgument, through.X, through.Y, to.X, to.Y)
	}
	t := twoStart.Sub(oneStart).Cross(twoDir) / den
	center := oneStart.Add(oneDir.MulScalar(t))

	vec := from.Sub(center)
	extent := math32.RadToDeg(vec.AngleTo(to.Sub(center)))
	centerSide := sideOfLine(from, line, center)

	if centerSide == 0 {
		// The center lies on the line, so the sign of the extent is
		// ambiguous; take it from the side of the through point.
		extent = float32(throughSide) * math32.Abs(extent)
	} else if throughSide == centerSide {
		// The through point and the center share a side, so the arc
		// spans more than 180 degrees.
		if extent < 0 {
			extent += 360
		} else {
			extent -= 360
		}
	}
	return arcHelper(segs, extent, vec, to, center, nil)
}

// sideOfLine returns the side (-1, 0, +1) of the line from start with
// the given direction that the point lies on.
func sideOfLine(start, dir, point math32.Vector2) int {
	cross := dir.Cross(point.Sub(start))
	eps := TrigEpsilon * dir.Length() * point.Sub(start).Length()
	switch {
	case cross > eps:
		return 1
	case cross < -eps:
		return -1
	}
	return 0
}

// arcTo appends the half-circle-seeded arc sweeping from the current
// position to the given point in the requested direction.
func arcTo(segs *[]SegmentData, to math32.Vector2, clockwise bool) error {
	current := (*segs)[len(*segs)-1].Position
	mid := current.Add(to).MulScalar(0.5)
	dir := mid.Sub(current)
	if clockwise {
		dir = dir.Rot90CW()
	} else {
		dir = dir.Rot90CCW()
	}
	return arcThrough(segs, mid.Add(dir), to)
}

// arcSVG appends an SVG 1.1 elliptical arc using the endpoint-to-center
// conversion from the spec appendix, scaling the radii up when they
// are too small to span the endpoints.
func arcSVG(segs *[]SegmentData, to, radii math32.Vector2, rotation float32, clockwise, large bool) error {
	if math32.IsNaN(radii.X) || math32.IsNaN(radii.Y) ||
		math32.IsInf(radii.X, 0) || math32.IsInf(radii.Y, 0) {
		return fmt.Errorf("%w: non-finite arc radii", ErrInvalidArgument)
	}
	if math32.IsClose(radii.X, 0, Epsilon) || math32.IsClose(radii.Y, 0, Epsilon) {
		addPoint(segs, to)
		return nil
	}

	from := (*segs)[len(*segs)-1].Position
	middle := from.Add(to).MulScalar(0.5)
	pt := from.Sub(middle).Rot(-rotation, math32.Vector2{})
	rx := math32.Abs(radii.X)
	ry := math32.Abs(radii.Y)
	rxSq := rx * rx
	rySq := ry * ry
	xSq := pt.X * pt.X
	ySq := pt.Y * pt.Y

	factor := math32.Sqrt(xSq/rxSq + ySq/rySq)
	if factor > 1 {
		rx *= factor
		ry *= factor
		rxSq = rx * rx
		rySq = ry * ry
	}

	factor = (rxSq*rySq - rxSq*ySq - rySq*xSq) / (rxSq*ySq + rySq*xSq)
	if math32.Abs(factor) < TrigEpsilon {
		factor = 0
	}
	if factor < 0 {
		return fmt.Errorf("%w: cannot create an arc with the given arguments", ErrInvalidArgument)
	}

	center := math32.Vec2(rx*pt.Y/ry, -ry*pt.X/rx)
	sign := float32(1)
	if large == clockwise {
		sign = -1
	}
	center = center.MulScalar(sign * math32.Sqrt(factor)).
		Rot(rotation, math32.Vector2{}).
		Add(middle)

	// matrix mapping the unit circle onto the ellipse
	matrix := math32.Translate2D(center.X, center.Y).
		Rotate(rotation).
		Scale(rx, ry)
	inv := matrix.Inverse()
	vect := inv.MulPoint(from)
	extent := vect.AngleTo(inv.MulPoint(to))

	if !clockwise && extent > 0 {
		extent -= 2 * math32.Pi
	} else if clockwise && extent < 0 {
		extent += 2 * math32.Pi
	}

	return arcHelper(segs, math32.RadToDeg(extent), vect, to, center, &matrix)
}

// arcHelper walks the arc of the given signed extent in degrees in up
// to four quarter-turn steps, emitting kappa-approximated cubic
// segments. The direction vector is relative to the center (or in unit
// space when a transform mapping the unit circle is given).
func arcHelper(segs *[]SegmentData, extentDeg float32, direction, to, center math32.Vector2, transform *math32.Matrix2) error {
	ext := math32.Abs(extentDeg)
	count := 4
	if ext < 360 {
		count = int(math32.Ceil(ext / 90))
		if count < 1 {
			count = 1
		}
	}
	inc := extentDeg / float32(count)
	half := inc * math32.Pi / 360
	z := 4.0 / 3.0 * math32.Sin(half) / (1 + math32.Cos(half))
	dir := direction

	for i := 0; i <= count; i++ {
		// explicitly use the end point for the last segment, the
		// incremental calculation accumulates imprecision
		pt := to
		out := math32.Vec2(-dir.Y*z, dir.X*z)
		if i < count {
			if transform != nil {
				pt = transform.MulPoint(dir)
				out = transform.MulPoint(dir.Add(out)).Sub(pt)
			} else {
				pt = center.Add(dir)
			}
		}
		if i == 0 {
			// modify the start segment
			last := &(*segs)[len(*segs)-1]
			last.HandleOut = last.Position.Add(out)
		} else {
			in := math32.Vec2(dir.Y*z, -dir.X*z)
			if transform != nil {
				in = transform.MulPoint(dir.Add(in)).Sub(pt)
			}
			seg := SegmentData{pt.Add(in), pt, pt}
			if i < count {
				seg.HandleOut = pt.Add(out)
			}
			*segs = append(*segs, seg)
		}
		dir = dir.Rot(math32.DegToRad(inc), math32.Vector2{})
	}
	return nil
}

// relative forms

func cubicCurveBy(segs *[]SegmentData, handleOne, handleTwo, by math32.Vector2) {
	current := (*segs)[len(*segs)-1].Position
	cubicCurveTo(segs, current.Add(handleOne), current.Add(handleTwo), current.Add(by))
}

func quadraticCurveBy(segs *[]SegmentData, handle, by math32.Vector2) {
	current := (*segs)[len(*segs)-1].Position
	quadraticCurveTo(segs, current.Add(handle), current.Add(by))
}

func curveBy(segs *[]SegmentData, through, by math32.Vector2, t float32) {
	current := (*segs)[len(*segs)-1].Position
	curveTo(segs, current.Add(through), current.Add(by), t)
}

func arcThroughBy(segs *[]SegmentData, through, by math32.Vector2) error {
	current := (*segs)[len(*segs)-1].Position
	return arcThrough(segs, current.Add(through), current.Add(by))
}

func arcBy(segs *[]SegmentData, to math32.Vector2, clockwise bool) error {
	current := (*segs)[len(*segs)-1].Position
	return arcTo(segs, current.Add(to), clockwise)
}
