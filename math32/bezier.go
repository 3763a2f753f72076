// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// tolerances for the bezier routines
const (
	bezierTolerance   = 1e-4
	curveTimeEpsilon  = 4e-4
	geometricEpsilon  = 2e-4
	bezierMaxRecurse  = 32
	maxIntersections  = 9
	flatnessTolerance = 1e-5
)

// Bezier is a cubic Bézier curve defined by four absolute control
// points: the start point P0, the two handles P1 and P2, and the end
// point P3.
type Bezier struct {
	P0 Vector2
	P1 Vector2
	P2 Vector2
	P3 Vector2
}

// NewBezier returns a new cubic [Bezier] with the given absolute
// control points.
func NewBezier(p0, p1, p2, p3 Vector2) Bezier {
	return Bezier{p0, p1, p2, p3}
}

// Point returns the position of the curve at parameter t in [0, 1].
func (bz Bezier) Point(t float32) Vector2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Vec2(
		a*bz.P0.X+b*bz.P1.X+c*bz.P2.X+d*bz.P3.X,
		a*bz.P0.Y+b*bz.P1.Y+c*bz.P2.Y+d*bz.P3.Y,
	)
}

// Derivative returns the first derivative of the curve at parameter t.
func (bz Bezier) Derivative(t float32) Vector2 {
	u := 1 - t
	c0 := bz.P1.Sub(bz.P0).MulScalar(3 * u * u)
	c1 := bz.P2.Sub(bz.P1).MulScalar(6 * u * t)
	c2 := bz.P3.Sub(bz.P2).MulScalar(3 * t * t)
	return c0.Add(c1).Add(c2)
}

// Tangent returns the unit tangent of the curve at parameter t.
// Degenerate handles at the endpoints fall back to the next
// well-defined direction, so the tangent at t = 0 or t = 1 of a curve
// with collapsed handles is still meaningful.
func (bz Bezier) Tangent(t float32) Vector2 {
	d := bz.Derivative(t)
	if d.IsZero() {
		// nudge inward; handles may collapse onto the anchor points
		if t < 0.5 {
			d = bz.Derivative(t + curveTimeEpsilon)
		} else {
			d = bz.Derivative(t - curveTimeEpsilon)
		}
		if d.IsZero() {
			d = bz.P3.Sub(bz.P0)
		}
	}
	return d.Normal()
}

// Normal returns the unit normal of the curve at parameter t, which is
// the tangent rotated by -90 degrees.
func (bz Bezier) Normal(t float32) Vector2 {
	return bz.Tangent(t).Rot90CW()
}

// Curvature returns the signed curvature of the curve at parameter t.
func (bz Bezier) Curvature(t float32) float32 {
	d1 := bz.Derivative(t)
	// second derivative
	u := 1 - t
	a := bz.P2.Sub(bz.P1.MulScalar(2)).Add(bz.P0).MulScalar(6 * u)
	b := bz.P3.Sub(bz.P2.MulScalar(2)).Add(bz.P1).MulScalar(6 * t)
	d2 := a.Add(b)
	den := Pow(d1.LengthSquared(), 1.5)
	if den == 0 {
		return 0
	}
	return d1.Cross(d2) / den
}

// Angle returns the tangent direction of the curve at parameter t, in
// radians.
func (bz Bezier) Angle(t float32) float32 {
	return bz.Tangent(t).Angle()
}

// Subdivide splits the curve at parameter t using de Casteljau's
// algorithm, returning the two halves.
func (bz Bezier) Subdivide(t float32) (Bezier, Bezier) {
	p01 := bz.P0.Lerp(bz.P1, t)
	p12 := bz.P1.Lerp(bz.P2, t)
	p23 := bz.P2.Lerp(bz.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	p := p012.Lerp(p123, t)
	return Bezier{bz.P0, p01, p012, p}, Bezier{p, p123, p23, bz.P3}
}

// Slice returns the part of the curve between parameters t0 and t1.
func (bz Bezier) Slice(t0, t1 float32) Bezier {
	if t0 > 0 {
		_, bz = bz.Subdivide(t0)
	}
	if t1 < 1 {
		// renormalize t1 into the remaining span
		t := (t1 - t0) / (1 - t0)
		bz, _ = bz.Subdivide(t)
	}
	return bz
}

// IsLinear returns whether both handles coincide with their anchor
// points, making the curve an exact line.
func (bz Bezier) IsLinear() bool {
	return bz.P1.Sub(bz.P0).IsClose(Vector2{}, bezierTolerance) &&
		bz.P2.Sub(bz.P3).IsClose(Vector2{}, bezierTolerance)
}

// IsStraight returns whether the curve traces a straight line, either
// because it is linear or because both handles are collinear with the
// chord and projected within it.
func (bz Bezier) IsStraight() bool {
	if bz.IsLinear() {
		return true
	}
	line := bz.P3.Sub(bz.P0)
	if line.IsClose(Vector2{}, bezierTolerance) {
		return false
	}
	h1 := bz.P1.Sub(bz.P0)
	h2 := bz.P2.Sub(bz.P3)
	if h1.Collinear(line, bezierTolerance) && h2.Collinear(line, bezierTolerance) {
		d := line.Dot(line)
		p1 := line.Dot(h1) / d
		p2 := line.Dot(h2) / d
		return p1 >= 0 && p1 <= 1 && p2 <= 0 && p2 >= -1
	}
	return false
}

// polyLength returns the length of the control polygon.
func (bz Bezier) polyLength() float32 {
	return bz.P0.DistanceTo(bz.P1) + bz.P1.DistanceTo(bz.P2) + bz.P2.DistanceTo(bz.P3)
}

// Length returns the arc length of the curve, computed by adaptive
// subdivision until the chord and the control polygon agree within
// tolerance.
func (bz Bezier) Length() float32 {
	return bz.lengthRec(0)
}

func (bz Bezier) lengthRec(depth int) float32 {
	chord := bz.P0.DistanceTo(bz.P3)
	poly := bz.polyLength()
	if poly-chord <= bezierTolerance || depth >= bezierMaxRecurse {
		return (poly + chord) * 0.5
	}
	a, b := bz.Subdivide(0.5)
	return a.lengthRec(depth+1) + b.lengthRec(depth+1)
}

// LengthBetween returns the arc length of the curve between parameters
// t0 and t1.
func (bz Bezier) LengthBetween(t0, t1 float32) float32 {
	if t0 >= t1 {
		return 0
	}
	return bz.Slice(t0, t1).Length()
}

// ParameterAtOffset returns the curve parameter t at which the arc
// length from the start equals the given offset. Offsets outside
// [0, Length] clamp to the endpoints.
func (bz Bezier) ParameterAtOffset(offset float32) float32 {
	if offset <= 0 {
		return 0
	}
	total := bz.Length()
	if offset >= total {
		return 1
	}
	// bisection on the monotonic arc-length function, with a Newton
	// step where the derivative is usable
	lo, hi := float32(0), float32(1)
	t := offset / total
	for i := 0; i < 32; i++ {
		l := bz.LengthBetween(0, t)
		diff := l - offset
		if Abs(diff) < bezierTolerance {
			break
		}
		if diff > 0 {
			hi = t
		} else {
			lo = t
		}
		speed := bz.Derivative(t).Length()
		if speed > 1e-6 {
			nt := t - diff/speed
			if nt > lo && nt < hi {
				t = nt
				continue
			}
		}
		t = (lo + hi) * 0.5
	}
	return t
}

// Extrema appends the curve parameters in (0, 1) where the derivative
// of the given axis (0 = x, 1 = y) vanishes, returning the extended
// slice.
func (bz Bezier) Extrema(axis int, roots []float32) []float32 {
	var v0, v1, v2, v3 float32
	if axis == 0 {
		v0, v1, v2, v3 = bz.P0.X, bz.P1.X, bz.P2.X, bz.P3.X
	} else {
		v0, v1, v2, v3 = bz.P0.Y, bz.P1.Y, bz.P2.Y, bz.P3.Y
	}
	a := 3*(v1-v2) - v0 + v3
	b := 2*(v0+v2) - 4*v1
	c := v1 - v0
	return SolveQuadratic(a, b, c, curveTimeEpsilon, 1-curveTimeEpsilon, roots)
}

// Extrema2D appends the curve parameters where either the x or the y
// derivative vanishes, returning the extended slice.
func (bz Bezier) Extrema2D(roots []float32) []float32 {
	roots = bz.Extrema(0, roots)
	roots = bz.Extrema(1, roots)
	return roots
}

// Peaks appends the curve parameters where the tangent is orthogonal to
// the vector between the endpoints (curvature peaks), returning the
// extended slice.
func (bz Bezier) Peaks(roots []float32) []float32 {
	ax := bz.P1.X - bz.P0.X
	ay := bz.P1.Y - bz.P0.Y
	bx := bz.P2.X - bz.P1.X
	by := bz.P2.Y - bz.P1.Y
	cx := bz.P3.X - bz.P2.X
	cy := bz.P3.Y - bz.P2.Y

	// coefficients of the dot product of the first and second derivative
	tx := ax - 2*bx + cx
	ty := ay - 2*by + cy
	ux := bx - ax
	uy := by - ay

	a := tx*tx + ty*ty
	b := 3 * (tx*ux + ty*uy)
	c := 2*(ux*ux+uy*uy) + tx*ax + ty*ay
	d := ux*ax + uy*ay
	return SolveCubic(a, b, c, d, curveTimeEpsilon, 1-curveTimeEpsilon, roots)
}

// Bounds returns the tight axis-aligned bounding box of the curve,
// refined by the parametric extrema.
func (bz Bezier) Bounds() Box2 {
	return bz.BoundsPadded(0)
}

// BoundsPadded returns the axis-aligned bounding box of the curve
// expanded by the given padding on all sides.
func (bz Bezier) BoundsPadded(padding float32) Box2 {
	b := B2Empty()
	b.ExpandByPoint(bz.P0)
	b.ExpandByPoint(bz.P3)
	var roots [4]float32
	for _, t := range bz.Extrema2D(roots[:0]) {
		b.ExpandByPoint(bz.Point(t))
	}
	if padding > 0 {
		b.ExpandByScalar(padding)
	}
	return b
}

// SolveCubicAxis appends the curve parameters within [min, max] at
// which the given axis coordinate (0 = x, 1 = y) equals value,
// returning the extended slice.
func (bz Bezier) SolveCubicAxis(value float32, axis int, min, max float32, roots []float32) []float32 {
	var v0, v1, v2, v3 float32
	if axis == 0 {
		v0, v1, v2, v3 = bz.P0.X, bz.P1.X, bz.P2.X, bz.P3.X
	} else {
		v0, v1, v2, v3 = bz.P0.Y, bz.P1.Y, bz.P2.Y, bz.P3.Y
	}
	c := 3 * (v1 - v0)
	b := 3*(v2-v1) - c
	a := v3 - v0 - c - b
	return SolveCubic(a, b, c, v0-value, min, max, roots)
}

// ClosestParameter returns the curve parameter of the point on the
// curve closest to the given point, along with the distance to it.
func (bz Bezier) ClosestParameter(point Vector2) (t, distance float32) {
	const steps = 100
	minDist := Infinity
	minT := float32(0)
	for i := 0; i <= steps; i++ {
		ct := float32(i) / steps
		d := bz.Point(ct).DistanceToSquared(point)
		if d < minDist {
			minDist = d
			minT = ct
		}
	}
	// refine by shrinking steps around the best sample
	step := float32(1.0 / (2 * steps))
	t = minT
	for step > curveTimeEpsilon/2 {
		l := Max(t-step, 0)
		r := Min(t+step, 1)
		dl := bz.Point(l).DistanceToSquared(point)
		dr := bz.Point(r).DistanceToSquared(point)
		if dl < minDist && dl <= dr {
			minDist = dl
			t = l
		} else if dr < minDist {
			minDist = dr
			t = r
		} else {
			step /= 2
		}
	}
	return t, Sqrt(minDist)
}

// Area returns the signed area between the curve and the line through
// the origin, such that summing over the closed chain of curves of a
// path yields the enclosed area.
func (bz Bezier) Area() float32 {
	x0, y0 := bz.P0.X, bz.P0.Y
	x1, y1 := bz.P1.X, bz.P1.Y
	x2, y2 := bz.P2.X, bz.P2.Y
	x3, y3 := bz.P3.X, bz.P3.Y
	return 3 * ((y3-y0)*(x1+x2) - (x3-x0)*(y1+y2) +
		y1*(x0-x2) - x1*(y0-y2) +
		y3*(x2+x0/3) - x3*(y2+y0/3)) / 20
}

// BezierIntersection is a single intersection between two cubic Bézier
// curves: the position and the curve times on each curve.
type BezierIntersection struct {
	Position Vector2
	T1       float32
	T2       float32
}

// Intersections returns the intersections between this curve and the
// other, at most nine. Straight segments are intersected analytically;
// curved cases use recursive subdivision with bounding-box clipping.
func (bz Bezier) Intersections(other Bezier) []BezierIntersection {
	var out []BezierIntersection
	s1 := bz.IsStraight()
	s2 := other.IsStraight()
	switch {
	case s1 && s2:
		out = intersectLineLine(bz, other, out)
	case s1:
		out = intersectCurveLine(other, bz, true, out)
	case s2:
		out = intersectCurveLine(bz, other, false, out)
	default:
		out = intersectCurveCurve(bz, 0, 1, other, 0, 1, 0, out)
	}
	return dedupeIntersections(out)
}

func addIntersection(out []BezierIntersection, pos Vector2, t1, t2 float32) []BezierIntersection {
	if len(out) >= maxIntersections {
		return out
	}
	return append(out, BezierIntersection{pos, Clamp(t1, 0, 1), Clamp(t2, 0, 1)})
}

func dedupeIntersections(in []BezierIntersection) []BezierIntersection {
	var out []BezierIntersection
	for _, is := range in {
		dup := false
		for _, have := range out {
			if (IsClose(is.T1, have.T1, curveTimeEpsilon) && IsClose(is.T2, have.T2, curveTimeEpsilon)) ||
				is.Position.IsClose(have.Position, geometricEpsilon) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, is)
		}
	}
	return out
}

// intersectLineLine intersects two straight curves.
func intersectLineLine(a, b Bezier, out []BezierIntersection) []BezierIntersection {
	p := a.P0
	r := a.P3.Sub(a.P0)
	q := b.P0
	s := b.P3.Sub(b.P0)
	den := r.Cross(s)
	if Abs(den) < flatnessTolerance*r.Length()*s.Length() {
		return out
	}
	qp := q.Sub(p)
	t := qp.Cross(s) / den
	u := qp.Cross(r) / den
	if t < -curveTimeEpsilon || t > 1+curveTimeEpsilon ||
		u < -curveTimeEpsilon || u > 1+curveTimeEpsilon {
		return out
	}
	return addIntersection(out, p.Add(r.MulScalar(t)), t, u)
}

// intersectCurveLine intersects a genuinely curved bezier with a
// straight one by rotating the curve into the line's coordinate frame
// and solving for the roots of the y coordinate.
func intersectCurveLine(curve, line Bezier, curveIsSecond bool, out []BezierIntersection) []BezierIntersection {
	dir := line.P3.Sub(line.P0)
	length := dir.Length()
	if length == 0 {
		return out
	}
	angle := Atan2(dir.Y, dir.X)
	toLine := Rotate2D(-angle).Mul(Translate2D(-line.P0.X, -line.P0.Y))
	local := Bezier{
		toLine.MulPoint(curve.P0),
		toLine.MulPoint(curve.P1),
		toLine.MulPoint(curve.P2),
		toLine.MulPoint(curve.P3),
	}
	var roots [4]float32
	for _, tc := range local.SolveCubicAxis(0, 1, 0, 1, roots[:0]) {
		x := local.Point(tc).X
		tl := x / length
		if tl < -curveTimeEpsilon || tl > 1+curveTimeEpsilon {
			continue
		}
		pos := curve.Point(tc)
		if curveIsSecond {
			out = addIntersection(out, pos, tl, tc)
		} else {
			out = addIntersection(out, pos, tc, tl)
		}
	}
	return out
}

// intersectCurveCurve recursively subdivides both curves until their
// bounding boxes are small enough to treat the overlap as a point.
func intersectCurveCurve(a Bezier, at0, at1 float32, b Bezier, bt0, bt1 float32, depth int, out []BezierIntersection) []BezierIntersection {
	if len(out) >= maxIntersections {
		return out
	}
	ab := a.Bounds()
	bb := b.Bounds()
	if !ab.IntersectsBox(bb) {
		return out
	}
	asz := ab.Size()
	bsz := bb.Size()
	if depth >= bezierMaxRecurse ||
		(Max(asz.X, asz.Y) < geometricEpsilon && Max(bsz.X, bsz.Y) < geometricEpsilon) {
		t1 := (at0 + at1) * 0.5
		t2 := (bt0 + bt1) * 0.5
		return addIntersection(out, a.Point(0.5), t1, t2)
	}
	a1, a2 := a.Subdivide(0.5)
	b1, b2 := b.Subdivide(0.5)
	am := (at0 + at1) * 0.5
	bm := (bt0 + bt1) * 0.5
	out = intersectCurveCurve(a1, at0, am, b1, bt0, bm, depth+1, out)
	out = intersectCurveCurve(a1, at0, am, b2, bm, bt1, depth+1, out)
	out = intersectCurveCurve(a2, am, at1, b1, bt0, bm, depth+1, out)
	out = intersectCurveCurve(a2, am, at1, b2, bm, bt1, depth+1, out)
	return out
}
