// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tobiasvend/paper/math32"
)

func TestContainsRectangle(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateRectangle(math32.Vec2(0, 0), math32.Vec2(200, 100), "")

	assert.True(t, p.Contains(math32.Vec2(100, 50)))
	assert.True(t, p.Contains(math32.Vec2(1, 1)))
	assert.False(t, p.Contains(math32.Vec2(-1, 50)))
	assert.False(t, p.Contains(math32.Vec2(201, 50)))
	assert.False(t, p.Contains(math32.Vec2(100, 101)))
}

func TestContainsOpenPath(t *testing.T) {
	// open paths are closed by a synthetic line for hit testing
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))
	p.AddPoint(math32.Vec2(100, 100))

	assert.True(t, p.Contains(math32.Vec2(80, 40)))
	assert.False(t, p.Contains(math32.Vec2(20, 80)))
}

func TestContainsTransformed(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateRectangle(math32.Vec2(0, 0), math32.Vec2(100, 100), "")
	p.SetTransform(math32.Translate2D(1000, 0))

	// the query point is brought into path space via the inverse
	assert.True(t, p.Contains(math32.Vec2(1050, 50)))
	assert.False(t, p.Contains(math32.Vec2(50, 50)))
}

func TestWindingRules(t *testing.T) {
	doc := NewDocument()
	// two concentric circles as a compound path; the inner one
	// reversed, so the ring lies inside and the hole outside under
	// both even-odd and non-zero
	outer := doc.CreateCircle(math32.Vec2(0, 0), 100, "")
	inner := doc.CreateCircle(math32.Vec2(0, 0), 50, "")
	inner.Reverse()
	outer.AddChild(inner)

	center := math32.Vec2(0, 0)
	ring := math32.Vec2(75, 0)

	outer.SetWindingRule(EvenOdd)
	assert.True(t, outer.Contains(ring))
	assert.False(t, outer.Contains(center))

	outer.SetWindingRule(NonZero)
	assert.True(t, outer.Contains(ring))
}

func TestWindingMonteCarlo(t *testing.T) {
	// compare the winding test against the circle equation on a grid
	doc := NewDocument()
	c := doc.CreateCircle(math32.Vec2(0, 0), 100, "")

	for x := float32(-120); x <= 120; x += 7.3 {
		for y := float32(-120); y <= 120; y += 7.3 {
			d := math32.Hypot(x, y)
			if math32.Abs(d-100) < 1 {
				// skip the fuzzy band near the kappa-approximated boundary
				continue
			}
			want := d < 100
			assert.Equal(t, want, c.Contains(math32.Vec2(x, y)),
				"point (%g, %g), distance %g", x, y, d)
		}
	}
}
