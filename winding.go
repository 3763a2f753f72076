// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// monoCurve is a curve piece that is monotonic in y, with its winding
// direction: -1 for downward y, +1 for upward, 0 for horizontal.
type monoCurve struct {
	bezier  math32.Bezier
	winding int
}

// monoCurveLoop is the y-monotonic decomposition of one path (one loop
// per child of a compound path). When the path is transformed, query
// points are brought into path space through the inverse transform.
type monoCurveLoop struct {
	transformed      bool
	inverseTransform math32.Matrix2
	curves           []monoCurve
	// the last non-horizontal curve, for the prev-winding logic
	last monoCurve
}

func insertMonoCurve(bz math32.Bezier, loop *monoCurveLoop) {
	y0 := bz.P0.Y
	y1 := bz.P3.Y

	var w int
	dx := bz.P0.X - bz.P3.X
	if math32.Abs((y0-y1)/dx) < GeometricEpsilon {
		w = 0
	} else if y0 > y1 {
		w = -1
	} else {
		w = 1
	}

	c := monoCurve{bz, w}
	loop.curves = append(loop.curves, c)
	if w != 0 {
		loop.last = c
	}
}

// handleMonoCurve splits the given curve at its y extrema so that each
// inserted piece is monotonic in y.
func handleMonoCurve(bz math32.Bezier, loop *monoCurveLoop) {
	// zero length curves contribute nothing
	if bz.Length() == 0 {
		return
	}

	y0 := bz.P0.Y
	y1 := bz.P1.Y
	y2 := bz.P2.Y
	y3 := bz.P3.Y

	if bz.IsStraight() ||
		((y0 >= y1) == (y1 >= y2) && (y1 >= y2) == (y2 >= y3)) {
		// straight curves and curves with control points sorted in y
		// are monotonic already
		insertMonoCurve(bz, loop)
		return
	}

	// split at the roots of the y derivative
	a := 3*(y1-y2) - y0 + y3
	b := 2*(y0+y2) - 4*y1
	c := y1 - y0

	tMin := float32(CurveTimeEpsilon)
	tMax := 1 - tMin
	var buf [2]float32
	roots := math32.SolveQuadratic(a, b, c, tMin, tMax, buf[:0])
	if len(roots) == 0 {
		insertMonoCurve(bz, loop)
		return
	}
	if len(roots) > 1 && roots[0] > roots[1] {
		roots[0], roots[1] = roots[1], roots[0]
	}
	t := roots[0]
	first, rest := bz.Subdivide(t)
	insertMonoCurve(first, loop)
	if len(roots) > 1 {
		// renormalize the second root into the remaining span
		t2 := (roots[1] - t) / (1 - t)
		first, rest = rest.Subdivide(t2)
		insertMonoCurve(first, loop)
	}
	insertMonoCurve(rest, loop)
}

// buildMonoCurves returns the cached y-monotonic decomposition of the
// path and all its children, rebuilding it when the geometry or
// transforms changed.
func (p *Path) buildMonoCurves() []monoCurveLoop {
	if len(p.monoCurves) > 0 {
		return p.monoCurves
	}

	loop := monoCurveLoop{}
	if p.IsTransformed() {
		loop.transformed = true
		loop.inverseTransform = p.AbsoluteTransform().Inverse()
	}

	for i := range p.curves {
		handleMonoCurve(p.Curve(i).Bezier(), &loop)
	}

	// open paths are joined by a straight line from the last to the
	// first position, like filling treats them
	if !p.closed && len(p.segments) > 1 {
		last := p.segments[len(p.segments)-1].Position
		first := p.segments[0].Position
		handleMonoCurve(math32.NewBezier(last, last, first, first), &loop)
	}

	p.monoCurves = append(p.monoCurves, loop)

	for _, c := range p.children {
		if cp, ok := c.(*Path); ok {
			p.monoCurves = append(p.monoCurves, cp.buildMonoCurves()...)
			// the child cache would double-count when queried through
			// the parent
			cp.monoCurves = nil
		}
	}
	return p.monoCurves
}

// winding returns the winding number of the given point against the
// mono curve loops. With horizontal set, the query point lies on a
// horizontal curve and is resolved by recursing on the nearest
// non-horizontal intercepts above and below.
func winding(point math32.Vector2, loops []monoCurveLoop, horizontal bool) int {
	epsilon := float32(WindingEpsilon)
	windingLeft := 0
	windingRight := 0

	if horizontal {
		yTop := -math32.Infinity
		yBottom := math32.Infinity

		for li := range loops {
			loop := &loops[li]
			p := point
			if loop.transformed {
				p = loop.inverseTransform.MulPoint(point)
			}
			yBefore := p.Y - epsilon
			yAfter := p.Y + epsilon
			// find the closest top and bottom intercepts of the
			// vertical line through the point
			var buf [3]float32
			for _, c := range loop.curves {
				for _, t := range c.bezier.SolveCubicAxis(p.X, 0, 0, 1, buf[:0]) {
					y := c.bezier.Point(t).Y
					if y < yBefore && y > yTop {
						yTop = y
					} else if y > yAfter && y < yBottom {
						yBottom = y
					}
				}
			}
		}

		// shift the point to halfway between the intercepts and combine
		yTop = (yTop + point.Y) * 0.5
		yBottom = (yBottom + point.Y) * 0.5
		if !math32.IsInf(yTop, -1) {
			windingLeft = winding(math32.Vec2(point.X, yTop), loops, false)
		}
		if !math32.IsInf(yBottom, 1) {
			windingRight = winding(math32.Vec2(point.X, yBottom), loops, false)
		}
		return maxInt(absInt(windingLeft), absInt(windingRight))
	}

	// separately count the windings for points lying on curves
	windLeftOnCurve := 0
	windRightOnCurve := 0

	for li := range loops {
		loop := &loops[li]
		p := point
		if loop.transformed {
			p = loop.inverseTransform.MulPoint(point)
		}
		xBefore := p.X - epsilon
		xAfter := p.X + epsilon

		var prevWinding int
		var prevXEnd float32
		onCurve := false

		for i, curve := range loop.curves {
			yStart := curve.bezier.P0.Y
			yEnd := curve.bezier.P3.Y
			w := curve.winding

			if i == 0 {
				// seed the previous winding from the last
				// non-horizontal curve of the loop
				prevWinding = loop.last.winding
				prevXEnd = loop.last.bezier.P3.X
				onCurve = false
			}

			// the pieces are monotonic in y, so the endpoint range
			// decides whether the horizontal ray can hit the piece
			if (p.Y >= yStart && p.Y <= yEnd) || (p.Y >= yEnd && p.Y <= yStart) {
				if w != 0 {
					var x float32
					gotX := true
					switch {
					case p.Y == yStart:
						x = curve.bezier.P0.X
					case p.Y == yEnd:
						x = curve.bezier.P3.X
					default:
						var buf [3]float32
						roots := curve.bezier.SolveCubicAxis(p.Y, 1, 0, 1, buf[:0])
						if len(roots) == 1 {
							x = curve.bezier.Point(roots[0]).X
						} else {
							gotX = false
						}
					}

					if gotX {
						// count the crossing unless it is the start of
						// the curve with unchanged winding, or lies on
						// the horizontal connection between the previous
						// curve's end and this curve's start
						countable := (p.Y != yStart || w != prevWinding) &&
							!(p.Y == yStart && (p.X-x)*(p.X-prevXEnd) < 0)
						if x >= xBefore && x <= xAfter {
							onCurve = true
						} else if countable {
							if x < xBefore {
								windingLeft += w
							} else if x > xAfter {
								windingRight += w
							}
						}
					}

					prevWinding = w
					prevXEnd = curve.bezier.P3.X
				} else if (p.X-curve.bezier.P0.X)*(p.X-curve.bezier.P3.X) <= 0 {
					// the point lies on a horizontal curve
					onCurve = true
				}
			}

			// at the end of a loop, points on a curve of the loop count
			// as if they were inside the path
			if onCurve && i >= len(loop.curves)-1 {
				windLeftOnCurve++
				windRightOnCurve--
			}
		}
	}

	// fall back to the on-curve windings when no crossings were found
	// or they canceled out
	if windingLeft == 0 && windingRight == 0 {
		windingLeft = windLeftOnCurve
		windingRight = windRightOnCurve
	}

	return maxInt(absInt(windingLeft), absInt(windingRight))
}

// Winding returns the winding number of the given point against the
// path (including compound children).
func (p *Path) Winding(point math32.Vector2) int {
	return winding(point, p.buildMonoCurves(), false)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
