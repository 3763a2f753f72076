// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobiasvend/paper"
	"github.com/tobiasvend/paper/math32"
)

func TestRoundTripPath(t *testing.T) {
	doc := paper.NewDocument()
	doc.SetSize(800, 600)

	p := doc.CreatePath("wiggle")
	p.AddPoint(math32.Vec2(1.5, 2.25))
	p.CubicCurveTo(math32.Vec2(10, -5), math32.Vec2(20, 5), math32.Vec2(30.125, 0.0625))
	p.AddPoint(math32.Vec2(40, 40))
	p.ClosePath()
	p.SetFill(paper.RGBA(1, 0.5, 0.25, 1))
	p.SetStrokeWidth(3.5)
	p.SetStrokeJoin(paper.JoinMiter)
	p.SetStrokeCap(paper.CapRound)
	p.SetMiterLimit(8)
	p.SetDashArray([]float32{1, 2, 3.5})
	p.SetDashOffset(0.5)
	p.SetWindingRule(paper.NonZero)
	p.SetScaleStroke(false)
	p.SetTransform(math32.Translate2D(10, 20).Rotate(0.5))
	p.SetPivot(math32.Vec2(7, 8))

	data, err := Export(doc)
	require.NoError(t, err)

	doc2 := paper.NewDocument()
	root, err := Import(doc2, data)
	require.NoError(t, err)
	require.Equal(t, paper.Item(doc2), root)

	assert.Equal(t, float32(800), doc2.Width())
	assert.Equal(t, float32(600), doc2.Height())
	require.Len(t, doc2.Children(), 1)

	p2, ok := doc2.Children()[0].(*paper.Path)
	require.True(t, ok)
	assert.Equal(t, "wiggle", p2.Name())
	assert.True(t, p2.IsClosed())

	// segment triples round-trip to exact float bits
	assert.Equal(t, p.SegmentData(), p2.SegmentData())
	assert.Equal(t, p.CurveCount(), p2.CurveCount())

	assert.True(t, p2.HasFill())
	assert.Equal(t, paper.RGBA(1, 0.5, 0.25, 1), p2.Fill().Color)
	assert.Equal(t, float32(3.5), p2.StrokeWidth())
	assert.Equal(t, paper.JoinMiter, p2.StrokeJoin())
	assert.Equal(t, paper.CapRound, p2.StrokeCap())
	assert.Equal(t, float32(8), p2.MiterLimit())
	assert.Equal(t, []float32{1, 2, 3.5}, p2.DashArray())
	assert.Equal(t, float32(0.5), p2.DashOffset())
	assert.Equal(t, paper.NonZero, p2.WindingRule())
	assert.False(t, p2.ScaleStroke())
	assert.Equal(t, p.Transform(), p2.Transform())
	pv, hasPivot := p2.Pivot()
	assert.True(t, hasPivot)
	assert.Equal(t, math32.Vec2(7, 8), pv)
}

func TestRoundTripSharedGradient(t *testing.T) {
	// S6: a shared linear gradient stays shared after re-parsing
	doc := paper.NewDocument()
	doc.SetSize(100, 100)

	grad := doc.NewLinearGradient(math32.Vec2(0, 0), math32.Vec2(100, 0))
	grad.AddStop(paper.RGBA(1, 0, 0, 1), 0)
	grad.AddStop(paper.RGBA(0, 0, 1, 0.5), 1)

	grp := doc.CreateGroup("grp")
	a := doc.CreateCircle(math32.Vec2(50, 50), 40, "a")
	b := doc.CreateRectangle(math32.Vec2(0, 0), math32.Vec2(100, 100), "b")
	grp.AddChild(a)
	grp.AddChild(b)
	a.SetFillGradient(grad)
	b.SetFillGradient(grad)

	data, err := Export(doc)
	require.NoError(t, err)

	doc2 := paper.NewDocument()
	_, err = Import(doc2, data)
	require.NoError(t, err)

	require.Len(t, doc2.Children(), 1)
	grp2, ok := doc2.Children()[0].(*paper.Group)
	require.True(t, ok)
	require.Len(t, grp2.Children(), 2)

	fa := grp2.Children()[0].AsItem().Fill()
	fb := grp2.Children()[1].AsItem().Fill()
	require.Equal(t, paper.PaintGradient, fa.Kind)
	require.Equal(t, paper.PaintGradient, fb.Kind)

	// object identity after parse
	assert.Same(t, fa.Gradient, fb.Gradient)

	g2 := fa.Gradient
	assert.Equal(t, paper.GradientLinear, g2.Type())
	assert.Equal(t, math32.Vec2(0, 0), g2.Origin())
	assert.Equal(t, math32.Vec2(100, 0), g2.Destination())
	require.Len(t, g2.Stops(), 2)
	assert.Equal(t, paper.RGBA(1, 0, 0, 1), g2.Stops()[0].Color)
	assert.Equal(t, float32(0), g2.Stops()[0].Offset)
	assert.Equal(t, paper.RGBA(0, 0, 1, 0.5), g2.Stops()[1].Color)
	assert.Equal(t, float32(1), g2.Stops()[1].Offset)
}

func TestRoundTripRadialGradient(t *testing.T) {
	doc := paper.NewDocument()

	grad := doc.NewRadialGradient(math32.Vec2(10, 10), math32.Vec2(60, 10))
	grad.SetFocalPointOffset(math32.Vec2(5, -5))
	grad.SetRatio(0.75)
	grad.AddStop(paper.RGBA(0, 0, 0, 1), 0)
	grad.AddStop(paper.RGBA(1, 1, 1, 1), 1)

	p := doc.CreateCircle(math32.Vec2(10, 10), 50, "c")
	p.SetStrokeGradient(grad)

	data, err := Export(doc)
	require.NoError(t, err)

	doc2 := paper.NewDocument()
	_, err = Import(doc2, data)
	require.NoError(t, err)

	p2 := doc2.Children()[0].(*paper.Path)
	g2 := p2.Stroke().Gradient
	require.NotNil(t, g2)
	assert.Equal(t, paper.GradientRadial, g2.Type())
	fp, ok := g2.FocalPointOffset()
	assert.True(t, ok)
	assert.Equal(t, math32.Vec2(5, -5), fp)
	ratio, ok := g2.Ratio()
	assert.True(t, ok)
	assert.Equal(t, float32(0.75), ratio)
}

func TestRoundTripHierarchy(t *testing.T) {
	doc := paper.NewDocument()
	outer := doc.CreateGroup("outer")
	outer.SetClipped(true)
	mask := doc.CreatePath("mask")
	mask.AddPoint(math32.Vec2(0, 0))
	mask.AddPoint(math32.Vec2(10, 0))
	mask.AddPoint(math32.Vec2(10, 10))
	mask.ClosePath()
	outer.AddChild(mask)

	inner := doc.CreateGroup("inner")
	leaf := doc.CreatePath("leaf")
	leaf.AddPoint(math32.Vec2(1, 1))
	leaf.AddPoint(math32.Vec2(2, 2))
	leaf.SetVisible(false)
	inner.AddChild(leaf)
	outer.AddChild(inner)

	data, err := Export(doc)
	require.NoError(t, err)

	doc2 := paper.NewDocument()
	_, err = Import(doc2, data)
	require.NoError(t, err)

	require.Len(t, doc2.Children(), 1)
	outer2 := doc2.Children()[0].(*paper.Group)
	assert.Equal(t, "outer", outer2.Name())
	assert.True(t, outer2.IsClipped())
	require.Len(t, outer2.Children(), 2)
	assert.Equal(t, "mask", outer2.Children()[0].AsItem().Name())

	inner2 := outer2.Children()[1].(*paper.Group)
	require.Len(t, inner2.Children(), 1)
	leaf2 := inner2.Children()[0].(*paper.Path)
	assert.Equal(t, "leaf", leaf2.Name())
	assert.False(t, leaf2.Visible())
}

func TestImportRejectsBadFiles(t *testing.T) {
	doc := paper.NewDocument()

	_, err := Import(doc, []byte("not a paper file"))
	assert.ErrorIs(t, err, paper.ErrParseFailed)

	_, err = Import(doc, []byte("pap"))
	assert.ErrorIs(t, err, paper.ErrParseFailed)

	// valid header, truncated body
	good, err := Export(paper.NewDocument())
	assert.NoError(t, err)
	_, err = Import(doc, good[:len(good)-4])
	assert.ErrorIs(t, err, paper.ErrParseFailed)
}

func TestExportRejectsSymbols(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreatePath("p")
	p.AddPoint(math32.Vec2(0, 0))
	doc.CreateSymbol(p, "sym")

	_, err := Export(doc)
	assert.ErrorIs(t, err, paper.ErrInvalidOperation)
}
