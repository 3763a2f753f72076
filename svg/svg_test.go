// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobiasvend/paper"
	"github.com/tobiasvend/paper/base/tolassert"
	"github.com/tobiasvend/paper/math32"
)

func TestParsePathData(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreatePath("")
	require.NoError(t, ParsePathData(doc, p, "M10 20 L100 20 100 120 Z"))

	assert.True(t, p.IsClosed())
	require.Equal(t, 3, p.SegmentCount())
	assert.Equal(t, math32.Vec2(10, 20), p.SegmentData()[0].Position)
	assert.Equal(t, math32.Vec2(100, 20), p.SegmentData()[1].Position)
	assert.Equal(t, math32.Vec2(100, 120), p.SegmentData()[2].Position)
}

func TestParsePathDataRelativeAndShorthand(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreatePath("")
	require.NoError(t, ParsePathData(doc, p, "m10 10 l10 0 h10 v10"))
	require.Equal(t, 4, p.SegmentCount())
	assert.Equal(t, math32.Vec2(10, 10), p.SegmentData()[0].Position)
	assert.Equal(t, math32.Vec2(20, 10), p.SegmentData()[1].Position)
	assert.Equal(t, math32.Vec2(30, 10), p.SegmentData()[2].Position)
	assert.Equal(t, math32.Vec2(30, 20), p.SegmentData()[3].Position)
}

func TestParsePathDataCurves(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreatePath("")
	require.NoError(t, ParsePathData(doc, p, "M0 0 C10 -10 20 10 30 0 S50 10 60 0"))
	require.Equal(t, 3, p.SegmentCount())
	// the smooth segment reflects the previous control point
	assert.Equal(t, math32.Vec2(40, -10), p.SegmentData()[1].HandleOut)

	q := doc.CreatePath("")
	require.NoError(t, ParsePathData(doc, q, "M0 0 Q50 100 100 0 T200 0"))
	require.Equal(t, 3, q.SegmentCount())
	// the T reflection mirrors the control point through (100, 0)
	assertVec2(t, math32.Vec2(150, -50), q.Curve(1).Bezier().Point(0.5), 1)
}

func TestParsePathDataCompound(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreatePath("")
	require.NoError(t, ParsePathData(doc, p, "M0 0 L10 0 10 10 Z M20 0 L30 0 30 10 Z"))
	assert.Equal(t, 3, p.SegmentCount())
	require.Len(t, p.Children(), 1)
	child := p.Children()[0].(*paper.Path)
	assert.Equal(t, 3, child.SegmentCount())
	assert.True(t, child.IsClosed())
	assert.Equal(t, math32.Vec2(20, 0), child.SegmentData()[0].Position)
}

func TestParsePathDataArc(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreatePath("")
	require.NoError(t, ParsePathData(doc, p, "M0 0 A50 50 0 0 1 100 0"))
	tolassert.EqualTol(t, math32.Pi*50, p.Length(), 1)
}

func assertVec2(t *testing.T, want, have math32.Vector2, tols ...float32) {
	t.Helper()
	tol := float32(1e-4)
	if len(tols) == 1 {
		tol = tols[0]
	}
	assert.InDelta(t, want.X, have.X, float64(tol))
	assert.InDelta(t, want.Y, have.Y, float64(tol))
}

func TestParseColors(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, paper.RGBA(1, 0, 0, 1), c)

	c, err = ParseColor("#f00")
	require.NoError(t, err)
	assert.Equal(t, paper.RGBA(1, 0, 0, 1), c)

	c, err = ParseColor("rgb(255, 0, 0)")
	require.NoError(t, err)
	assert.Equal(t, paper.RGBA(1, 0, 0, 1), c)

	c, err = ParseColor("rgb(100%, 0%, 0%)")
	require.NoError(t, err)
	assert.Equal(t, paper.RGBA(1, 0, 0, 1), c)

	c, err = ParseColor("red")
	require.NoError(t, err)
	assert.Equal(t, paper.RGBA(1, 0, 0, 1), c)

	c, err = ParseColor("steelblue")
	require.NoError(t, err)
	assert.InDelta(t, 70.0/255, c.R, 1e-4)

	_, err = ParseColor("notacolor")
	assert.ErrorIs(t, err, paper.ErrParseFailed)
}

func TestParseTransform(t *testing.T) {
	m, err := ParseTransform("translate(10, 20)")
	require.NoError(t, err)
	assert.Equal(t, math32.Translate2D(10, 20), m)

	m, err = ParseTransform("matrix(1, 2, 3, 4, 5, 6)")
	require.NoError(t, err)
	assert.Equal(t, math32.Matrix2{XX: 1, YX: 2, XY: 3, YY: 4, X0: 5, Y0: 6}, m)

	m, err = ParseTransform("scale(2)")
	require.NoError(t, err)
	assert.Equal(t, math32.Scale2D(2, 2), m)

	m, err = ParseTransform("translate(10, 10) rotate(90)")
	require.NoError(t, err)
	pt := m.MulPoint(math32.Vec2(1, 0))
	assertVec2(t, math32.Vec2(10, 11), pt, 1e-4)

	_, err = ParseTransform("invalid(1, 2)")
	assert.ErrorIs(t, err, paper.ErrParseFailed)
}

func TestParseCoordinateUnits(t *testing.T) {
	assert.Equal(t, float32(10), parseCoordinate("10px").toPixels(72, 0, 1))
	assert.Equal(t, float32(72), parseCoordinate("1in").toPixels(72, 0, 1))
	assert.Equal(t, float32(10), parseCoordinate("10").toPixels(72, 0, 1))
	assert.InDelta(t, 72.0/2.54, parseCoordinate("1cm").toPixels(72, 0, 1), 1e-3)
	assert.InDelta(t, 1, parseCoordinate("1pt").toPixels(72, 0, 1), 1e-3)
	assert.InDelta(t, 50, parseCoordinate("50%").toPixels(72, 0, 100), 1e-3)
}

func TestImportBasicDocument(t *testing.T) {
	svg := `<svg width="100px" height="50px"><path d="M10 20 L100 20 100 120 Z"/></svg>`
	doc := paper.NewDocument()
	res, err := Import(doc, []byte(svg), 0)
	require.NoError(t, err)
	assert.Equal(t, float32(100), res.Width)
	assert.Equal(t, float32(50), res.Height)
	require.NotNil(t, res.Root)
	require.Len(t, res.Root.Children(), 1)

	p, ok := res.Root.Children()[0].(*paper.Path)
	require.True(t, ok)
	require.Equal(t, 3, p.SegmentCount())
	assertVec2(t, math32.Vec2(10, 20), p.SegmentData()[0].Position)
	assertVec2(t, math32.Vec2(100, 20), p.SegmentData()[1].Position)
	assertVec2(t, math32.Vec2(100, 120), p.SegmentData()[2].Position)
	assert.True(t, p.IsClosed())
}

func TestImportAttributes(t *testing.T) {
	svg := `<svg>
		<path d="M10 20 L100 20" fill="red" style="stroke: #333; stroke-width: 2px"/>
		<circle cx="100" cy="200" r="20" fill="#4286f4" fill-rule="nonzero"
			stroke="black" stroke-miterlimit="33.5" stroke-dasharray="1, 2,3 4 5"
			stroke-dashoffset="20.33" vector-effect="non-scaling-stroke"
			stroke-linejoin="miter" stroke-linecap="round"/>
	</svg>`
	doc := paper.NewDocument()
	res, err := Import(doc, []byte(svg), 0)
	require.NoError(t, err)
	require.Len(t, res.Root.Children(), 2)

	p := res.Root.Children()[0].(*paper.Path)
	assert.Equal(t, paper.RGBA(1, 0, 0, 1), p.Fill().Color)
	s := p.Stroke().Color
	assert.InDelta(t, 51.0/255, s.R, 1e-4)
	assert.InDelta(t, 51.0/255, s.G, 1e-4)
	assert.InDelta(t, 51.0/255, s.B, 1e-4)
	assert.Equal(t, float32(2), p.StrokeWidth())

	c := res.Root.Children()[1].(*paper.Path)
	f := c.Fill().Color
	assert.InDelta(t, 66.0/255, f.R, 1e-4)
	assert.InDelta(t, 134.0/255, f.G, 1e-4)
	assert.InDelta(t, 244.0/255, f.B, 1e-4)
	assert.Equal(t, paper.RGBA(0, 0, 0, 1), c.Stroke().Color)
	assert.False(t, c.ScaleStroke())
	assert.InDelta(t, 33.5, c.MiterLimit(), 1e-4)
	assert.InDelta(t, 20.33, c.DashOffset(), 1e-3)
	assert.Equal(t, paper.NonZero, c.WindingRule())
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, c.DashArray())
	assert.Equal(t, paper.CapRound, c.StrokeCap())
	assert.Equal(t, paper.JoinMiter, c.StrokeJoin())
}

func TestImportGroupTransform(t *testing.T) {
	svg := `<svg><g transform="translate(10, 10) rotate(30)">
		<path d="M10 20 L100 20"/><path d="M-30 30.0e4 L100 20"/>
	</g></svg>`
	doc := paper.NewDocument()
	res, err := Import(doc, []byte(svg), 0)
	require.NoError(t, err)
	require.Len(t, res.Root.Children(), 1)

	grp, ok := res.Root.Children()[0].(*paper.Group)
	require.True(t, ok)
	assert.Len(t, grp.Children(), 2)
	assert.True(t, grp.HasTransform())
}

func TestImportShapes(t *testing.T) {
	svg := `<svg>
		<rect x="10" y="20" width="100" height="50"/>
		<circle cx="5" cy="5" r="10"/>
		<ellipse cx="0" cy="0" rx="10" ry="20"/>
		<line x1="0" y1="0" x2="10" y2="10"/>
		<polyline points="0,0 10,0 10,10"/>
		<polygon points="0,0 10,0 10,10"/>
	</svg>`
	doc := paper.NewDocument()
	res, err := Import(doc, []byte(svg), 0)
	require.NoError(t, err)
	require.Len(t, res.Root.Children(), 6)

	rect := res.Root.Children()[0].(*paper.Path)
	assert.True(t, rect.IsClosed())
	b := rect.Bounds()
	assertVec2(t, math32.Vec2(10, 20), b.Min)
	assertVec2(t, math32.Vec2(110, 70), b.Max)

	circle := res.Root.Children()[1].(*paper.Path)
	assert.Equal(t, paper.ShapeCircle, paper.MatchShape(circle).Type)

	ellipse := res.Root.Children()[2].(*paper.Path)
	assert.Equal(t, paper.ShapeEllipse, paper.MatchShape(ellipse).Type)

	line := res.Root.Children()[3].(*paper.Path)
	assert.Equal(t, 2, line.SegmentCount())
	assert.False(t, line.IsClosed())

	polyline := res.Root.Children()[4].(*paper.Path)
	assert.Equal(t, 3, polyline.SegmentCount())
	assert.False(t, polyline.IsClosed())

	polygon := res.Root.Children()[5].(*paper.Path)
	assert.True(t, polygon.IsClosed())
}

func TestImportGradients(t *testing.T) {
	svg := `<svg>
		<defs>
			<linearGradient id="lg" x1="0" y1="0" x2="100" y2="0">
				<stop offset="0%" stop-color="#ff0000"/>
				<stop offset="100%" stop-color="#0000ff" stop-opacity="0.5"/>
			</linearGradient>
		</defs>
		<rect x="0" y="0" width="10" height="10" fill="url(#lg)"/>
		<circle cx="0" cy="0" r="5" fill="url(#lg)"/>
	</svg>`
	doc := paper.NewDocument()
	res, err := Import(doc, []byte(svg), 0)
	require.NoError(t, err)

	// the defs group was removed after parsing
	require.Len(t, res.Root.Children(), 2)

	fa := res.Root.Children()[0].AsItem().Fill()
	fb := res.Root.Children()[1].AsItem().Fill()
	require.Equal(t, paper.PaintGradient, fa.Kind)
	assert.Same(t, fa.Gradient, fb.Gradient)
	assert.Equal(t, paper.GradientLinear, fa.Gradient.Type())
	assertVec2(t, math32.Vec2(100, 0), fa.Gradient.Destination())
	require.Len(t, fa.Gradient.Stops(), 2)
	assert.InDelta(t, 0.5, fa.Gradient.Stops()[1].Color.A, 1e-4)
}

func TestImportClipPath(t *testing.T) {
	svg := `<svg>
		<defs><clipPath id="c"><rect x="0" y="0" width="50" height="50"/></clipPath></defs>
		<g clip-path="url(#c)"><circle cx="25" cy="25" r="40"/></g>
	</svg>`
	doc := paper.NewDocument()
	res, err := Import(doc, []byte(svg), 0)
	require.NoError(t, err)
	require.Len(t, res.Root.Children(), 1)

	grp, ok := res.Root.Children()[0].(*paper.Group)
	require.True(t, ok)
	assert.True(t, grp.IsClipped())
	require.Len(t, grp.Children(), 2)
	// the mask is the first child
	mask, ok := grp.Children()[0].(*paper.Path)
	require.True(t, ok)
	b := mask.Bounds()
	assertVec2(t, math32.Vec2(0, 0), b.Min)
	assertVec2(t, math32.Vec2(50, 50), b.Max)
}

func TestExportBasics(t *testing.T) {
	doc := paper.NewDocument()
	doc.SetSize(300, 200)
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(10, 10))
	p.CubicCurveTo(math32.Vec2(20, 0), math32.Vec2(30, 20), math32.Vec2(40, 10))
	p.SetFill(paper.RGBA(1, 0, 0, 1))
	p.SetStrokeWidth(2)

	out, err := Export(doc, false)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `xmlns="http://www.w3.org/2000/svg"`)
	assert.Contains(t, s, `viewBox="0 0 300 200"`)
	assert.Contains(t, s, `<path`)
	assert.Contains(t, s, `fill="#ff0000"`)
	assert.Contains(t, s, `stroke="none"`)
	assert.Contains(t, s, `stroke-width="2"`)
	assert.Contains(t, s, `fill-rule="evenodd"`)
}

func TestExportShapeMatching(t *testing.T) {
	doc := paper.NewDocument()
	doc.SetSize(200, 200)
	doc.CreateCircle(math32.Vec2(50, 50), 25, "")
	doc.CreateRectangle(math32.Vec2(0, 0), math32.Vec2(10, 10), "")

	out, err := Export(doc, true)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<circle`)
	assert.Contains(t, s, `cx="50"`)
	assert.Contains(t, s, `r="25"`)
	assert.Contains(t, s, `<rect`)
}

func TestExportPolygons(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(10, 0))
	p.AddPoint(math32.Vec2(10, 10))
	p.ClosePath()

	line := doc.CreatePath("")
	line.AddPoint(math32.Vec2(0, 0))
	line.AddPoint(math32.Vec2(5, 5))

	out, err := Export(doc, false)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<polygon`)
	assert.Contains(t, s, `<line`)
}

func TestExportNonScalingStroke(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(0, 0))
	p.AddPoint(math32.Vec2(10, 0))
	p.AddPoint(math32.Vec2(10, 7))
	p.SetScaleStroke(false)
	p.SetStroke(paper.RGBA(0, 0, 0, 0.5))

	out, err := Export(doc, false)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `vector-effect="non-scaling-stroke"`)
	assert.Contains(t, s, `stroke="#000000"`)
	assert.Contains(t, s, `stroke-opacity="0.5"`)
}

func TestPathRoundTrip(t *testing.T) {
	// a path written as SVG and read back is the same path within
	// floating point tolerance
	doc := paper.NewDocument()
	doc.SetSize(400, 400)
	p := doc.CreatePath("")
	p.AddPoint(math32.Vec2(10.5, 20.25))
	p.CubicCurveTo(math32.Vec2(50, -10), math32.Vec2(90, 50), math32.Vec2(130.75, 20))
	p.AddPoint(math32.Vec2(200, 200))
	p.QuadraticCurveTo(math32.Vec2(250, 250), math32.Vec2(300, 200))
	p.ClosePath()

	out, err := Export(doc, false)
	require.NoError(t, err)

	doc2 := paper.NewDocument()
	res, err := Import(doc2, out, 0)
	require.NoError(t, err)
	require.Len(t, res.Root.Children(), 1)
	p2, ok := res.Root.Children()[0].(*paper.Path)
	require.True(t, ok)

	require.Equal(t, p.SegmentCount(), p2.SegmentCount())
	assert.Equal(t, p.IsClosed(), p2.IsClosed())
	for i, seg := range p.SegmentData() {
		have := p2.SegmentData()[i]
		assertVec2(t, seg.Position, have.Position, 1e-3)
		assertVec2(t, seg.HandleIn, have.HandleIn, 1e-3)
		assertVec2(t, seg.HandleOut, have.HandleOut, 1e-3)
	}
	tolassert.EqualTol(t, p.Length(), p2.Length(), 0.01)
}

func TestGradientRoundTrip(t *testing.T) {
	doc := paper.NewDocument()
	doc.SetSize(100, 100)
	grad := doc.NewLinearGradient(math32.Vec2(0, 0), math32.Vec2(100, 0))
	grad.AddStop(paper.RGBA(1, 0, 0, 1), 0)
	grad.AddStop(paper.RGBA(0, 0, 1, 1), 1)

	a := doc.CreateRectangle(math32.Vec2(0, 0), math32.Vec2(50, 50), "")
	b := doc.CreateRectangle(math32.Vec2(50, 0), math32.Vec2(100, 50), "")
	a.SetFillGradient(grad)
	b.SetFillGradient(grad)

	out, err := Export(doc, false)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<linearGradient`)
	assert.Contains(t, string(out), `url(#grad0)`)

	doc2 := paper.NewDocument()
	res, err := Import(doc2, out, 0)
	require.NoError(t, err)
	require.Len(t, res.Root.Children(), 2)
	fa := res.Root.Children()[0].AsItem().Fill()
	fb := res.Root.Children()[1].AsItem().Fill()
	require.Equal(t, paper.PaintGradient, fa.Kind)
	assert.Same(t, fa.Gradient, fb.Gradient)
	assertVec2(t, math32.Vec2(100, 0), fa.Gradient.Destination())
}

func TestExportClippedGroup(t *testing.T) {
	doc := paper.NewDocument()
	doc.SetSize(100, 100)
	grp := doc.CreateGroup("")
	grp.SetClipped(true)
	mask := doc.CreatePath("")
	mask.AddPoint(math32.Vec2(0, 0))
	mask.AddPoint(math32.Vec2(50, 0))
	mask.AddPoint(math32.Vec2(50, 50))
	mask.ClosePath()
	body := doc.CreateCircle(math32.Vec2(25, 25), 40, "")
	grp.AddChild(mask)
	grp.AddChild(body)

	out, err := Export(doc, false)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<clipPath id="clip-0"`)
	assert.Contains(t, s, `clip-path="url(#clip-0)"`)

	// and it reads back as a clipped group
	doc2 := paper.NewDocument()
	res, err := Import(doc2, out, 0)
	require.NoError(t, err)
	require.Len(t, res.Root.Children(), 1)
	grp2, ok := res.Root.Children()[0].(*paper.Group)
	require.True(t, ok)
	assert.True(t, grp2.IsClipped())
	assert.Len(t, grp2.Children(), 2)
}
