// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// ShapeTypes are the primitive shapes that [MatchShape] can classify a
// path as.
type ShapeTypes int32

const (
	// ShapeNone means the path matches no primitive shape.
	ShapeNone ShapeTypes = iota

	// ShapeCircle is a four-arc path with equal diagonals.
	ShapeCircle

	// ShapeEllipse is a four-arc path with unequal diagonals.
	ShapeEllipse

	// ShapeRectangle is a polygonal quad with collinear and orthogonal
	// opposite sides, or an eight-curve rounded rectangle.
	ShapeRectangle
)

// Shape is the result of classifying a path as a primitive shape,
// used by the SVG writer to emit primitive elements.
type Shape struct {
	Type ShapeTypes

	// center of the matched shape
	Position math32.Vector2

	// circle only
	Radius float32

	// ellipse and rectangle
	Size math32.Vector2

	// rounded rectangle corner radii; zero for sharp corners
	CornerRadius math32.Vector2
}

// MatchShape classifies a 4- or 8-curve path as a circle, ellipse,
// rectangle, or rounded rectangle.
func MatchShape(p *Path) Shape {
	sh := Shape{}
	curveCount := p.CurveCount()
	segPos := func(i int) math32.Vector2 { return p.segments[i].Position }

	switch {
	case curveCount == 4 &&
		p.Curve(0).IsArc() && p.Curve(1).IsArc() &&
		p.Curve(2).IsArc() && p.Curve(3).IsArc():
		d1 := segPos(0).Sub(segPos(2)).Length()
		d2 := segPos(1).Sub(segPos(3)).Length()
		sh.Position = segPos(2).Add(segPos(0).Sub(segPos(2)).MulScalar(0.5))
		if math32.IsClose(d1, d2, Tolerance) {
			sh.Type = ShapeCircle
			sh.Radius = d1 * 0.5
		} else {
			sh.Type = ShapeEllipse
			sh.Size = math32.Vec2(d1, d2)
		}

	case curveCount == 4 && p.IsPolygon() &&
		p.Curve(0).IsCollinear(p.Curve(2)) &&
		p.Curve(1).IsCollinear(p.Curve(3)) &&
		p.Curve(1).IsOrthogonal(p.Curve(0)):
		sh.Type = ShapeRectangle
		w := segPos(0).X - segPos(3).X
		h := segPos(2).Y - segPos(3).Y
		sh.Position = math32.Vec2(segPos(3).X+w*0.5, segPos(3).Y+h*0.5)
		sh.Size = math32.Vec2(w, h)

	case curveCount == 8 &&
		p.Curve(1).IsArc() && p.Curve(3).IsArc() &&
		p.Curve(5).IsArc() && p.Curve(7).IsArc() &&
		p.Curve(0).IsCollinear(p.Curve(4)) &&
		p.Curve(2).IsCollinear(p.Curve(6)):
		sh.Type = ShapeRectangle
		sh.Position = p.Bounds().Center()
		sh.Size = math32.Vec2(
			segPos(7).Sub(segPos(2)).Length(),
			segPos(0).Sub(segPos(5)).Length(),
		)
		sh.CornerRadius = sh.Size.Sub(math32.Vec2(
			segPos(0).Sub(segPos(1)).Length(),
			segPos(2).Sub(segPos(3)).Length(),
		)).MulScalar(0.5)
	}
	return sh
}
