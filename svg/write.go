// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svg reads and writes scenes as SVG documents.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/tobiasvend/paper"
	"github.com/tobiasvend/paper/math32"
)

// element is one node of the XML tree being built by the writer, with
// attribute order preserved.
type element struct {
	name     string
	attrs    []xml.Attr
	children []*element
}

func newElement(name string) *element {
	return &element{name: name}
}

func (e *element) attr(name, value string) *element {
	e.attrs = append(e.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return e
}

func (e *element) child(name string) *element {
	c := newElement(name)
	e.children = append(e.children, c)
	return c
}

func (e *element) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: e.name}, Attr: e.attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range e.children {
		if err := c.encode(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// ftoa formats a float32 with the shortest representation that
// round-trips.
func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

type exportSession struct {
	root      *element
	defs      *element
	gradients map[*paper.Gradient]string
	clipID    int
}

func (es *exportSession) ensureDefs() *element {
	if es.defs == nil {
		es.defs = &element{name: "defs"}
		// defs lead the child list so references resolve on re-read
		es.root.children = append([]*element{es.defs}, es.root.children...)
	}
	return es.defs
}

func transformAttr(node *element, ib *paper.ItemBase) {
	if !ib.HasTransform() {
		return
	}
	m := ib.Transform()
	node.attr("transform", fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)",
		ftoa(m.XX), ftoa(m.YX), ftoa(m.XY), ftoa(m.YY), ftoa(m.X0), ftoa(m.Y0)))
}

// gradientID interns the gradient into defs, returning its id.
func (es *exportSession) gradientID(g *paper.Gradient) string {
	if id, ok := es.gradients[g]; ok {
		return id
	}
	id := fmt.Sprintf("grad%d", len(es.gradients))
	es.gradients[g] = id

	defs := es.ensureDefs()
	var node *element
	if g.Type() == paper.GradientLinear {
		node = defs.child("linearGradient")
		node.attr("id", id)
		node.attr("gradientUnits", "userSpaceOnUse")
		node.attr("x1", ftoa(g.Origin().X))
		node.attr("y1", ftoa(g.Origin().Y))
		node.attr("x2", ftoa(g.Destination().X))
		node.attr("y2", ftoa(g.Destination().Y))
	} else {
		node = defs.child("radialGradient")
		node.attr("id", id)
		node.attr("gradientUnits", "userSpaceOnUse")
		node.attr("cx", ftoa(g.Origin().X))
		node.attr("cy", ftoa(g.Origin().Y))
		node.attr("r", ftoa(g.Destination().Sub(g.Origin()).Length()))
		if fp, ok := g.FocalPointOffset(); ok {
			node.attr("fx", ftoa(g.Origin().X+fp.X))
			node.attr("fy", ftoa(g.Origin().Y+fp.Y))
		}
	}
	for _, stop := range g.Stops() {
		sn := node.child("stop")
		sn.attr("offset", fmt.Sprintf("%d%%", int(stop.Offset*100)))
		sn.attr("stop-color", colorToHex(stop.Color))
		if stop.Color.A != 1 {
			sn.attr("stop-opacity", ftoa(stop.Color.A))
		}
	}
	g.CleanDirtyStops()
	g.CleanDirtyPositions()
	return id
}

func (es *exportSession) paintAttr(node *element, name string, p paper.Paint) {
	switch p.Kind {
	case paper.PaintColor:
		node.attr(name, colorToHex(p.Color))
		if p.Color.A < 1 {
			node.attr(name+"-opacity", ftoa(p.Color.A))
		}
	case paper.PaintGradient:
		node.attr(name, "url(#"+es.gradientID(p.Gradient)+")")
	default:
		node.attr(name, "none")
	}
}

func (es *exportSession) addStyle(item paper.Item, node *element) {
	ib := item.AsItem()
	if !ib.Visible() {
		node.attr("visibility", "hidden")
	}

	es.paintAttr(node, "fill", ib.Fill())
	node.attr("fill-rule", ib.WindingRule().String())
	es.paintAttr(node, "stroke", ib.Stroke())

	if ib.HasStrokeWidth() {
		node.attr("stroke-width", ftoa(ib.StrokeWidth()))
	}
	if ib.HasStrokeCap() {
		node.attr("stroke-linecap", ib.StrokeCap().String())
	}
	if ib.HasStrokeJoin() {
		node.attr("stroke-linejoin", ib.StrokeJoin().String())
	}
	if ib.HasMiterLimit() {
		node.attr("stroke-miterlimit", ftoa(ib.MiterLimit()))
	}
	if ib.HasDashArray() && len(ib.DashArray()) > 0 {
		parts := make([]string, len(ib.DashArray()))
		for i, d := range ib.DashArray() {
			parts[i] = ftoa(d)
		}
		node.attr("stroke-dasharray", strings.Join(parts, ", "))
	}
	if ib.HasDashOffset() {
		node.attr("stroke-dashoffset", ftoa(ib.DashOffset()))
	}
	if ib.HasScaleStroke() && !ib.ScaleStroke() {
		node.attr("vector-effect", "non-scaling-stroke")
	}
}

// curveToPathData appends one curve as a relative l or c command. For
// compound children the segment positions are transformed into the
// parent path's space.
func curveToPathData(c paper.Curve, d *strings.Builder, transform *math32.Matrix2) {
	sop := c.PositionOne()
	stp := c.PositionTwo()
	if c.IsLinear() {
		if transform != nil {
			sop = transform.MulPoint(sop)
			stp = transform.MulPoint(stp)
		}
		rel := stp.Sub(sop)
		fmt.Fprintf(d, " l%s,%s", ftoa(rel.X), ftoa(rel.Y))
		return
	}
	ho := c.HandleOneAbsolute()
	ht := c.HandleTwoAbsolute()
	if transform != nil {
		sop = transform.MulPoint(sop)
		stp = transform.MulPoint(stp)
		ho = transform.MulPoint(ho)
		ht = transform.MulPoint(ht)
	}
	a := ho.Sub(sop)
	b := ht.Sub(sop)
	cc := stp.Sub(sop)
	fmt.Fprintf(d, " c%s,%s %s,%s %s,%s",
		ftoa(a.X), ftoa(a.Y), ftoa(b.X), ftoa(b.Y), ftoa(cc.X), ftoa(cc.Y))
}

func pathToPathData(p *paper.Path, d *strings.Builder, compoundChild bool) {
	if p.CurveCount() == 0 {
		return
	}
	to := p.Curve(0).PositionOne()
	var transform *math32.Matrix2
	if p.HasTransform() && compoundChild {
		m := p.Transform()
		transform = &m
		to = m.MulPoint(to)
	}
	fmt.Fprintf(d, "M%s,%s", ftoa(to.X), ftoa(to.Y))
	for i := 0; i < p.CurveCount(); i++ {
		curveToPathData(p.Curve(i), d, transform)
	}
	if p.IsClosed() {
		d.WriteString("z")
	}
}

func compoundPathData(p *paper.Path) string {
	var d strings.Builder
	pathToPathData(p, &d, false)
	for _, c := range p.Children() {
		if cp, ok := c.(*paper.Path); ok {
			d.WriteString(" ")
			pathToPathData(cp, &d, true)
		}
	}
	return d.String()
}

// pathGeometry emits the geometry of a childless path: polygons become
// polygon/polyline/line elements, everything else a path element.
func pathGeometry(p *paper.Path, parent *element) *element {
	if p.IsPolygon() {
		if p.SegmentCount() > 2 {
			var points strings.Builder
			for i, seg := range p.SegmentData() {
				if i > 0 {
					points.WriteString(" ")
				}
				fmt.Fprintf(&points, "%s,%s", ftoa(seg.Position.X), ftoa(seg.Position.Y))
			}
			name := "polyline"
			if p.IsClosed() {
				name = "polygon"
			}
			return parent.child(name).attr("points", points.String())
		}
		if p.SegmentCount() == 2 {
			segs := p.SegmentData()
			return parent.child("line").
				attr("x1", ftoa(segs[0].Position.X)).
				attr("y1", ftoa(segs[0].Position.Y)).
				attr("x2", ftoa(segs[1].Position.X)).
				attr("y2", ftoa(segs[1].Position.Y))
		}
	}
	var d strings.Builder
	pathToPathData(p, &d, false)
	return parent.child("path").attr("d", d.String())
}

func (es *exportSession) addPath(p *paper.Path, parent *element, matchShapes bool) *element {
	var node *element
	switch {
	case len(p.Children()) > 0:
		node = parent.child("path").attr("d", compoundPathData(p))
	case matchShapes:
		sh := paper.MatchShape(p)
		switch sh.Type {
		case paper.ShapeCircle:
			node = parent.child("circle").
				attr("cx", ftoa(sh.Position.X)).
				attr("cy", ftoa(sh.Position.Y)).
				attr("r", ftoa(sh.Radius))
		case paper.ShapeEllipse:
			node = parent.child("ellipse").
				attr("cx", ftoa(sh.Position.X)).
				attr("cy", ftoa(sh.Position.Y)).
				attr("rx", ftoa(sh.Size.X*0.5)).
				attr("ry", ftoa(sh.Size.Y*0.5))
		case paper.ShapeRectangle:
			node = parent.child("rect").
				attr("x", ftoa(sh.Position.X-sh.Size.X*0.5)).
				attr("y", ftoa(sh.Position.Y-sh.Size.Y*0.5)).
				attr("width", ftoa(sh.Size.X)).
				attr("height", ftoa(sh.Size.Y))
			if sh.CornerRadius.X != 0 {
				node.attr("rx", ftoa(sh.CornerRadius.X))
			}
			if sh.CornerRadius.Y != 0 {
				node.attr("ry", ftoa(sh.CornerRadius.Y))
			}
		default:
			node = pathGeometry(p, parent)
		}
	default:
		node = pathGeometry(p, parent)
	}
	transformAttr(node, p.AsItem())
	return node
}

func (es *exportSession) addGroup(g *paper.Group, parent *element, matchShapes bool) *element {
	if len(g.Children()) == 0 {
		return nil
	}
	grp := parent.child("g")
	kids := g.Children()
	if g.IsClipped() {
		if mask, ok := kids[0].(*paper.Path); ok {
			id := fmt.Sprintf("clip-%d", es.clipID)
			es.clipID++
			clip := es.ensureDefs().child("clipPath").attr("id", id)
			cp := es.addPath(mask, clip, matchShapes)
			cp.attr("fill-rule", mask.WindingRule().String())
			grp.attr("clip-path", "url(#"+id+")")
			kids = kids[1:]
		}
	}
	for _, c := range kids {
		es.addItem(c, grp, matchShapes)
	}
	transformAttr(grp, g.AsItem())
	return grp
}

func (es *exportSession) addDocument(doc *paper.Document, parent *element, matchShapes bool) *element {
	svg := parent.child("svg")
	svg.attr("xmlns", "http://www.w3.org/2000/svg")
	svg.attr("xmlns:xlink", "http://www.w3.org/1999/xlink")
	svg.attr("width", ftoa(doc.Width()))
	svg.attr("height", ftoa(doc.Height()))
	svg.attr("viewBox", fmt.Sprintf("0 0 %s %s", ftoa(doc.Width()), ftoa(doc.Height())))
	es.root = svg

	target := svg
	if doc.HasTransform() {
		target = svg.child("g")
		transformAttr(target, doc.AsItem())
	}
	for _, c := range doc.Children() {
		es.addItem(c, target, matchShapes)
	}
	return svg
}

func (es *exportSession) addItem(item paper.Item, parent *element, matchShapes bool) *element {
	var node *element
	switch it := item.(type) {
	case *paper.Document:
		node = es.addDocument(it, parent, matchShapes)
	case *paper.Path:
		node = es.addPath(it, parent, matchShapes)
	case *paper.Group:
		node = es.addGroup(it, parent, matchShapes)
	}
	if node != nil && node.name != "svg" {
		es.addStyle(item, node)
	}
	return node
}

// Export serializes the given item as an SVG document. With
// matchShapes, paths classifying as primitive shapes are emitted as
// circle, ellipse, and rect elements.
func Export(item paper.Item, matchShapes bool) ([]byte, error) {
	es := &exportSession{gradients: map[*paper.Gradient]string{}}

	var top *element
	if doc, ok := item.(*paper.Document); ok {
		root := &element{name: "root"}
		top = es.addDocument(doc, root, matchShapes)
	} else {
		// wrap non-document items in a bare svg element
		root := &element{name: "root"}
		svg := root.child("svg")
		svg.attr("xmlns", "http://www.w3.org/2000/svg")
		es.root = svg
		es.addItem(item, svg, matchShapes)
		top = svg
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := top.encode(enc); err != nil {
		return nil, fmt.Errorf("%w: %v", paper.ErrParseFailed, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("%w: %v", paper.ErrParseFailed, err)
	}
	return buf.Bytes(), nil
}
