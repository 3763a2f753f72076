// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// effectiveTransform returns the matrix mapping the path's segments to
// the space bounds are computed in: the supplied transform when one is
// given, the absolute transform when the path is transformed, and nil
// when the segments already live in the target space.
func (p *Path) effectiveTransform(tr *math32.Matrix2) *math32.Matrix2 {
	if tr != nil {
		return tr
	}
	if p.IsTransformed() {
		m := p.AbsoluteTransform()
		return &m
	}
	return nil
}

// computeFillBounds computes the bounds of the path geometry, expanded
// by the given padding. When a transform is supplied (or the path is
// transformed), the segments are brought to the target space first.
func (p *Path) computeFillBounds(tr *math32.Matrix2, padding float32) (math32.Box2, bool) {
	if len(p.segments) == 0 {
		return math32.Box2{}, false
	}
	if len(p.segments) == 1 {
		pos := p.segments[0].Position
		if m := p.effectiveTransform(tr); m != nil {
			pos = m.MulPoint(pos)
		}
		return math32.Box2{Min: pos, Max: pos}, true
	}

	if tr == nil && !p.IsTransformed() {
		ret := math32.B2Empty()
		for i := range p.curves {
			if padding > 0 {
				ret.ExpandByBox(p.Curve(i).BoundsPadded(padding))
			} else {
				ret.ExpandByBox(p.Curve(i).Bounds())
			}
		}
		return ret, true
	}

	// bring the beziers to the target space; iterate over segments so
	// each one is transformed only once
	var m math32.Matrix2
	if tr != nil {
		m = *tr
	} else {
		m = p.AbsoluteTransform()
	}

	ret := math32.B2Empty()
	first := m.MulPoint(p.segments[0].Position)
	lastPos := first
	lastHandle := m.MulPoint(p.segments[0].HandleOut)
	for i := 1; i < len(p.segments); i++ {
		handleIn := m.MulPoint(p.segments[i].HandleIn)
		pos := m.MulPoint(p.segments[i].Position)
		bez := math32.NewBezier(lastPos, lastHandle, handleIn, pos)
		ret.ExpandByBox(bez.BoundsPadded(padding))
		lastHandle = m.MulPoint(p.segments[i].HandleOut)
		lastPos = pos
	}
	if p.closed {
		bez := math32.NewBezier(lastPos, lastHandle, m.MulPoint(p.segments[0].HandleIn), first)
		ret.ExpandByBox(bez.BoundsPadded(padding))
	}
	return ret, true
}

// strokeTransformMatrix returns the matrix mapping stroke space (where
// the stroke radius is 1) back to the path's local space. With
// scale-stroke the stroke lives in local space; without it the stroke
// is defined in document space regardless of the item transform.
func strokeTransformMatrix(transform math32.Matrix2, strokeWidth float32, scaleStroke bool) math32.Matrix2 {
	hsw := strokeWidth * 0.5
	if scaleStroke {
		return math32.Scale2D(hsw, hsw)
	}
	return transform.Inverse().Scale(hsw, hsw)
}

// strokePadding returns the axis-aligned half extents of the
// stroke-radius circle pushed through the given transform (the
// bounding box of the resulting rotated ellipse).
func strokePadding(strokeRadius float32, m math32.Matrix2) math32.Vector2 {
	hor := m.MulVector(math32.Vec2(strokeRadius, 0))
	vert := m.MulVector(math32.Vec2(0, strokeRadius))
	phi := math32.Atan2(hor.Y, hor.X)
	hlen := hor.Length()
	vlen := vert.Length()
	// For the rotated ellipse
	//	x = cx + a*cos(t)*cos(phi) - b*sin(t)*sin(phi)
	//	y = cy + b*sin(t)*cos(phi) + a*cos(t)*sin(phi)
	// the extremal t solve tan(t) = -b*tan(phi)/a for x and
	// tan(t) = b*cot(phi)/a for y.
	s := math32.Sin(phi)
	c := math32.Cos(phi)
	t := math32.Tan(phi)
	tx := math32.Atan2(vlen*t, hlen)
	ty := math32.Atan2(vlen, t*hlen)
	return math32.Vec2(
		hlen*math32.Cos(tx)*c+vlen*math32.Sin(tx)*s,
		vlen*math32.Sin(ty)*c+hlen*math32.Cos(ty)*s,
	).Abs()
}

// capOrJoinBevelMinMax returns the two outer corners perpendicular to
// the tangent at the given position, in stroke space (radius 1).
func capOrJoinBevelMinMax(pos, dir math32.Vector2) (math32.Vector2, math32.Vector2) {
	perp := math32.Vec2(dir.Y, -dir.X)
	return pos.Add(perp), pos.Sub(perp)
}

// capSquare returns the two outer corners of a square cap, offset
// forward by the stroke radius along the tangent, in stroke space.
func capSquare(pos, dir math32.Vector2) (math32.Vector2, math32.Vector2) {
	forward := pos.Add(dir)
	perp := math32.Vec2(dir.Y, -dir.X)
	return forward.Add(perp), forward.Sub(perp)
}

// joinMiter intersects the two outward edge lines to find the miter
// apex, returning it along with the miter length (which, in stroke
// space, is directly comparable against the miter limit).
func joinMiter(pos, point1, dir1, point2, dir2 math32.Vector2) (math32.Vector2, float32) {
	den := dir1.Cross(dir2)
	if math32.Abs(den) < TrigEpsilon {
		return pos, math32.Infinity
	}
	t := point2.Sub(point1).Cross(dir2) / den
	miter := point1.Add(dir1.MulScalar(t))
	return miter, miter.Sub(pos).Length()
}

func mergePoint(rect *math32.Box2, pt math32.Vector2, smat math32.Matrix2, tr *math32.Matrix2) {
	pt = smat.MulPoint(pt)
	if tr != nil {
		pt = tr.MulPoint(pt)
	}
	rect.ExpandByPoint(pt)
}

// mergeStrokeCap folds the cap at one end of the given stroke-space
// curve into the bounds.
func mergeStrokeCap(rect *math32.Box2, cap StrokeCaps, a, b SegmentData, start bool, strokePad math32.Vector2, smat math32.Matrix2, tr *math32.Matrix2) {
	bez := math32.NewBezier(a.Position, a.HandleOut, b.HandleIn, b.Position)
	var dir, pos math32.Vector2
	if start {
		dir = bez.Tangent(0).Negate()
		pos = a.Position
	} else {
		dir = bez.Tangent(1)
		pos = b.Position
	}
	switch cap {
	case CapSquare:
		c, d := capSquare(pos, dir)
		mergePoint(rect, c, smat, tr)
		mergePoint(rect, d, smat, tr)
	case CapRound:
		p := smat.MulPoint(pos)
		if tr != nil {
			p = tr.MulPoint(p)
		}
		rect.ExpandByPoint(p.Sub(strokePad))
		rect.ExpandByPoint(p.Add(strokePad))
	case CapButt:
		min, max := capOrJoinBevelMinMax(pos, dir)
		mergePoint(rect, min, smat, tr)
		mergePoint(rect, max, smat, tr)
	}
}

// mergeStrokeJoin folds the join at the middle of the given
// stroke-space segment triple into the bounds.
func mergeStrokeJoin(rect *math32.Box2, join StrokeJoins, miterLimit float32, prev, current, next SegmentData, strokePad math32.Vector2, smat math32.Matrix2, tr *math32.Matrix2) {
	switch join {
	case JoinRound:
		p := smat.MulPoint(current.Position)
		if tr != nil {
			p = tr.MulPoint(p)
		}
		rect.ExpandByPoint(p.Sub(strokePad))
		rect.ExpandByPoint(p.Add(strokePad))
		return
	case JoinMiter:
		curveIn := math32.NewBezier(prev.Position, prev.HandleOut, current.HandleIn, current.Position)
		curveOut := math32.NewBezier(current.Position, current.HandleOut, next.HandleIn, next.Position)

		lastDir := curveIn.Tangent(1)
		nextDir := curveOut.Tangent(0)
		lastPerp := math32.Vec2(lastDir.Y, -lastDir.X)
		perp := math32.Vec2(nextDir.Y, -nextDir.X)
		cross := lastDir.Cross(nextDir)

		pos := current.Position
		var miter math32.Vector2
		var miterLen float32
		if cross >= 0 {
			miter, miterLen = joinMiter(pos, pos.Add(lastPerp), lastDir, pos.Add(perp), nextDir)
		} else {
			miter, miterLen = joinMiter(pos, pos.Sub(lastPerp), lastDir, pos.Sub(perp), nextDir)
		}
		if miterLen <= miterLimit {
			mergePoint(rect, miter, smat, tr)
			return
		}
		// exceeds the limit; fall back to bevel
		fallthrough
	default: // JoinBevel
		curveIn := math32.NewBezier(prev.Position, prev.HandleOut, current.HandleIn, current.Position)
		curveOut := math32.NewBezier(current.Position, current.HandleOut, next.HandleIn, next.Position)
		dirA := curveIn.Tangent(1)
		dirB := curveOut.Tangent(0)
		min, max := capOrJoinBevelMinMax(current.Position, dirA)
		mergePoint(rect, min, smat, tr)
		mergePoint(rect, max, smat, tr)
		min, max = capOrJoinBevelMinMax(current.Position, dirB)
		mergePoint(rect, min, smat, tr)
		mergePoint(rect, max, smat, tr)
	}
}

// computeStrokeBounds computes the fill bounds padded by the stroke
// radius, then folds in the caps, joins, and miter apexes.
func (p *Path) computeStrokeBounds(tr *math32.Matrix2) (math32.Box2, bool) {
	if p.Stroke().IsNone() {
		return p.computeFillBounds(tr, 0)
	}

	join := p.StrokeJoin()
	cap := p.StrokeCap()
	sw := p.StrokeWidth()
	strokeRad := sw * 0.5
	ml := p.MiterLimit()
	scaling := p.ScaleStroke()

	effective := p.effectiveTransform(tr)
	target := p.AbsoluteTransform()
	if effective != nil {
		target = *effective
	}

	smat := strokeTransformMatrix(target, sw, scaling)
	padMat := math32.Identity2()
	if scaling {
		padMat = target
	}
	sp := strokePadding(strokeRad, padMat)

	ret, ok := p.computeFillBounds(effective, math32.Max(sp.X, sp.Y))
	if !ok {
		return ret, ok
	}
	if len(p.segments) < 2 {
		return ret, ok
	}

	ismat := smat.Inverse()
	strokeSegs := make([]SegmentData, len(p.segments))
	for i, seg := range p.segments {
		strokeSegs[i] = SegmentData{
			HandleIn:  ismat.MulPoint(seg.HandleIn),
			Position:  ismat.MulPoint(seg.Position),
			HandleOut: ismat.MulPoint(seg.HandleOut),
		}
	}

	n := len(strokeSegs)
	for i := 1; i < n-1; i++ {
		mergeStrokeJoin(&ret, join, ml, strokeSegs[i-1], strokeSegs[i], strokeSegs[i+1], sp, smat, effective)
	}
	if p.closed {
		// the two joins across the closing curve
		mergeStrokeJoin(&ret, join, ml, strokeSegs[n-2], strokeSegs[n-1], strokeSegs[0], sp, smat, effective)
		mergeStrokeJoin(&ret, join, ml, strokeSegs[n-1], strokeSegs[0], strokeSegs[1], sp, smat, effective)
	} else {
		mergeStrokeCap(&ret, cap, strokeSegs[0], strokeSegs[1], true, sp, smat, effective)
		mergeStrokeCap(&ret, cap, strokeSegs[n-2], strokeSegs[n-1], false, sp, smat, effective)
	}
	return ret, true
}

// computeHandleBounds unions the stroke bounds with every absolute
// handle position, in the same space the stroke bounds were computed in.
func (p *Path) computeHandleBounds(tr *math32.Matrix2) (math32.Box2, bool) {
	ret, ok := p.computeStrokeBounds(tr)
	if !ok {
		return ret, ok
	}
	effective := p.effectiveTransform(tr)
	for _, seg := range p.segments {
		hin := seg.HandleIn
		hout := seg.HandleOut
		if effective != nil {
			hin = effective.MulPoint(hin)
			hout = effective.MulPoint(hout)
		}
		ret.ExpandByPoint(hin)
		ret.ExpandByPoint(hout)
	}
	return ret, true
}
