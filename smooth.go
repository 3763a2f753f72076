// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// Smooth smooths the handles of all segments of the path using the
// given algorithm. With smoothChildren, children paths are smoothed
// too.
func (p *Path) Smooth(typ Smoothings, smoothChildren bool) {
	p.SmoothRange(0, int64(len(p.segments))-1, typ)
	if smoothChildren {
		for _, c := range p.children {
			if cp, ok := c.(*Path); ok {
				cp.Smooth(typ, true)
			}
		}
	}
}

func smoothIndex(idx, length int64, closed bool) int64 {
	// negative indices wrap on closed paths and count from the end on
	// open ones; the result is capped at the last index
	var v int64
	switch {
	case idx < 0 && closed:
		v = idx % length
		if v < 0 {
			v += length
		}
	case idx < 0:
		v = idx + length
	default:
		v = idx
	}
	if v > length-1 {
		v = length - 1
	}
	return v
}

// SmoothRange smooths the handles of the segments in [from, to] using
// a continuous spline solved with the Thomas algorithm. Negative
// indices count from the end (wrapping on closed paths).
//
// Based on work by Lubos Brieda, Particle In Cell Consulting LLC,
// https://www.particleincell.com/2012/bezier-splines/
func (p *Path) SmoothRange(fromIdx, toIdx int64, typ Smoothings) {
	count := int64(len(p.segments))
	if count < 2 {
		return
	}

	from := smoothIndex(fromIdx, count, p.closed)
	to := smoothIndex(toIdx, count, p.closed)
	if from > to {
		if p.closed {
			from -= count
		} else {
			from, to = to, from
		}
	}

	asymmetric := typ == SmoothAsymmetric
	amount := to - from + 1
	n := amount - 1
	loop := p.closed && fromIdx == 0 && to == count-1

	// closed paths overlap by up to 4 points on both sides, since a
	// segment is affected by its 4 neighbors
	padding := int64(1)
	if loop {
		padding = amount
		if padding > 4 {
			padding = 4
		}
	}
	paddingLeft := padding
	paddingRight := padding
	if !p.closed {
		paddingLeft = min64(1, from)
		paddingRight = min64(1, count-to-1)
	}

	n += paddingLeft + paddingRight
	if n <= 1 {
		return
	}

	knots := make([]math32.Vector2, n+1)
	for i, j := int64(0), fromIdx-paddingLeft; i <= n; i, j = i+1, j+1 {
		jj := j
		if jj < 0 {
			jj += count
		}
		knots[i] = p.segments[jj%count].Position
	}

	// solve with the Thomas algorithm
	x := float64(knots[0].X) + 2*float64(knots[1].X)
	y := float64(knots[0].Y) + 2*float64(knots[1].Y)
	f := float64(2)
	n1 := n - 1
	rx := make([]float64, n+1)
	ry := make([]float64, n+1)
	rf := make([]float64, n+1)
	rx[0] = x
	ry[0] = y
	rf[0] = f

	px := make([]float64, n+1)
	py := make([]float64, n+1)

	for i := int64(1); i < n; i++ {
		internal := i < n1
		var a, b, u, v float64
		switch {
		case internal:
			a, b, u, v = 1, 4, 4, 2
		case asymmetric:
			a, b, u, v = 1, 2, 3, 0
		default: // continuous
			a, b, u, v = 2, 7, 8, 1
		}
		m := a / f
		f = b - m
		rf[i] = f
		x = u*float64(knots[i].X) + v*float64(knots[i+1].X) - m*x
		y = u*float64(knots[i].Y) + v*float64(knots[i+1].Y) - m*y
		rx[i] = x
		ry[i] = y
	}

	px[n1] = rx[n1] / rf[n1]
	py[n1] = ry[n1] / rf[n1]
	for i := n - 2; i >= 0; i-- {
		px[i] = (rx[i] - px[i+1]) / rf[i]
		py[i] = (ry[i] - py[i+1]) / rf[i]
	}
	px[n] = (3*float64(knots[n].X) - px[n1]) / 2
	py[n] = (3*float64(knots[n].Y) - py[n1]) / 2

	// update the segments
	for i, j := paddingLeft, fromIdx; i <= n-paddingRight; i, j = i+1, j+1 {
		index := j
		if index < 0 {
			index += count
		}
		seg := &p.segments[index%count]
		hx := float32(px[i]) - seg.Position.X
		hy := float32(py[i]) - seg.Position.Y
		if loop || i < n-paddingRight {
			seg.HandleOut = seg.Position.Add(math32.Vec2(hx, hy))
		}
		if loop || i > paddingLeft {
			seg.HandleIn = seg.Position.Sub(math32.Vec2(hx, hy))
		}
	}

	p.rebuildCurves()
	p.markGeometryDirty(true, true)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
