// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tobiasvend/paper/base/tolassert"
	"github.com/tobiasvend/paper/math32"
)

func TestMatchShapeCircle(t *testing.T) {
	doc := NewDocument()
	c := doc.CreateCircle(math32.Vec2(10, 20), 50, "")
	sh := MatchShape(c)
	assert.Equal(t, ShapeCircle, sh.Type)
	tolassert.Equal(t, 10, sh.Position.X)
	tolassert.Equal(t, 20, sh.Position.Y)
	tolassert.Equal(t, 50, sh.Radius)
}

func TestMatchShapeEllipse(t *testing.T) {
	doc := NewDocument()
	e := doc.CreateEllipse(math32.Vec2(0, 0), math32.Vec2(200, 100), "")
	sh := MatchShape(e)
	assert.Equal(t, ShapeEllipse, sh.Type)
	tolassert.Equal(t, 200, sh.Size.X)
	tolassert.Equal(t, 100, sh.Size.Y)
}

func TestMatchShapeRectangle(t *testing.T) {
	doc := NewDocument()
	r := doc.CreateRectangle(math32.Vec2(10, 20), math32.Vec2(110, 70), "")
	sh := MatchShape(r)
	assert.Equal(t, ShapeRectangle, sh.Type)
	tolassert.Equal(t, 60, sh.Position.X)
	tolassert.Equal(t, 45, sh.Position.Y)
	tolassert.Equal(t, 100, math32.Abs(sh.Size.X))
	tolassert.Equal(t, 50, math32.Abs(sh.Size.Y))
	assert.Equal(t, float32(0), sh.CornerRadius.X)
}

func TestMatchShapeRoundedRectangle(t *testing.T) {
	doc := NewDocument()
	r := doc.CreateRoundedRectangle(math32.Vec2(0, 0), math32.Vec2(100, 60), math32.Vec2(10, 10), "")
	sh := MatchShape(r)
	assert.Equal(t, ShapeRectangle, sh.Type)
	tolassert.Equal(t, 100, sh.Size.X)
	tolassert.Equal(t, 60, sh.Size.Y)
	tolassert.EqualTol(t, 10, sh.CornerRadius.X, 0.01)
	tolassert.EqualTol(t, 10, sh.CornerRadius.Y, 0.01)
}

func TestMatchShapeNone(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(100, 0))
	p.AddPoint(math32.Vec2(50, 80))
	p.ClosePath()
	assert.Equal(t, ShapeNone, MatchShape(p).Type)
}
