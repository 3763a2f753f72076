// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/tdewolff/parse/v2/strconv"

	"github.com/tobiasvend/paper"
	"github.com/tobiasvend/paper/math32"
)

// DefaultDPI is the resolution coordinates with physical units resolve
// against when the caller does not supply one.
const DefaultDPI = 72

// node is one element of the parsed XML tree.
type node struct {
	name     string
	attrs    []xml.Attr
	children []*node
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func parseTree(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var stack []*node
	var root *node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: could not parse xml document: %v", paper.ErrParseFailed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", paper.ErrParseFailed)
	}
	return root, nil
}

// ImportResult is the outcome of parsing an SVG document: the group
// holding the imported items and the document size declared by the
// svg element.
type ImportResult struct {
	Root   *paper.Group
	Width  float32
	Height float32
}

type importSession struct {
	doc       *paper.Document
	dpi       float32
	gradients map[string]*paper.Gradient
	clipPaths map[string]*node
	named     map[string]paper.Item
	tmp       []paper.Item
}

// Import parses an SVG document into the given paper document,
// returning the imported root group. Coordinates with units resolve
// against the given DPI (0 uses [DefaultDPI]).
func Import(doc *paper.Document, data []byte, dpi float32) (ImportResult, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	root, err := parseTree(data)
	if err != nil {
		return ImportResult{}, err
	}
	if root.name != "svg" {
		return ImportResult{}, fmt.Errorf("%w: root element is %q, want svg", paper.ErrParseFailed, root.name)
	}

	is := &importSession{
		doc:       doc,
		dpi:       dpi,
		gradients: map[string]*paper.Gradient{},
		clipPaths: map[string]*node{},
		named:     map[string]paper.Item{},
	}
	is.collectDefs(root)

	grp, err := is.importGroup(root)
	if err != nil {
		return ImportResult{}, err
	}

	// temporary items (defs contents, standalone clip paths) leave the
	// tree after parsing
	for _, t := range is.tmp {
		t.AsItem().Remove()
	}
	is.tmp = nil

	res := ImportResult{Root: grp}
	if w, ok := root.attr("width"); ok {
		res.Width = parseCoordinate(w).toPixels(dpi, 0, 1)
	}
	if h, ok := root.attr("height"); ok {
		res.Height = parseCoordinate(h).toPixels(dpi, 0, 1)
	}
	return res, nil
}

// collectDefs walks the whole tree up front so gradients and clip
// paths can be referenced before their definition in document order.
func (is *importSession) collectDefs(n *node) {
	switch n.name {
	case "linearGradient", "radialGradient":
		is.importGradient(n)
	case "clipPath":
		if id, ok := n.attr("id"); ok {
			is.clipPaths[id] = n
		}
	}
	for _, c := range n.children {
		is.collectDefs(c)
	}
}

func (is *importSession) importGradient(n *node) {
	id, ok := n.attr("id")
	if !ok {
		return
	}
	coord := func(name string, def float32) float32 {
		if v, ok := n.attr(name); ok {
			return parseCoordinate(v).toPixels(is.dpi, 0, 1)
		}
		return def
	}
	var grad *paper.Gradient
	if n.name == "linearGradient" {
		origin := math32.Vec2(coord("x1", 0), coord("y1", 0))
		dest := math32.Vec2(coord("x2", 0), coord("y2", 0))
		grad = is.doc.NewLinearGradient(origin, dest)
	} else {
		origin := math32.Vec2(coord("cx", 0), coord("cy", 0))
		r := coord("r", 0)
		grad = is.doc.NewRadialGradient(origin, origin.Add(math32.Vec2(r, 0)))
		if fx, ok := n.attr("fx"); ok {
			fy, _ := n.attr("fy")
			focal := math32.Vec2(
				parseCoordinate(fx).toPixels(is.dpi, 0, 1),
				parseCoordinate(fy).toPixels(is.dpi, 0, 1),
			)
			grad.SetFocalPointOffset(focal.Sub(origin))
		}
	}
	for _, sn := range n.children {
		if sn.name != "stop" {
			continue
		}
		offset := float32(0)
		if v, ok := sn.attr("offset"); ok {
			c := parseCoordinate(v)
			if c.units == unitPercent {
				offset = c.value / 100
			} else {
				offset = c.value
			}
		}
		color := paper.RGBA(0, 0, 0, 1)
		if v, ok := sn.attr("stop-color"); ok {
			if c, err := ParseColor(v); err == nil {
				color = c
			}
		}
		if v, ok := sn.attr("stop-opacity"); ok {
			color.A = parseCoordinate(v).value
		}
		grad.AddStop(color, offset)
	}
	is.gradients[id] = grad
}

func (is *importSession) importNode(n *node, parent paper.Item) (paper.Item, error) {
	var item paper.Item
	var err error
	switch n.name {
	case "svg", "g":
		item, err = is.importGroup(n)
	case "defs":
		var grp *paper.Group
		grp, err = is.importGroup(n)
		if err == nil && grp != nil {
			is.tmp = append(is.tmp, grp)
		}
		item = grp
	case "clipPath":
		var grp *paper.Group
		grp, err = is.importGroup(n)
		if err == nil && grp != nil {
			is.tmp = append(is.tmp, grp)
		}
		item = grp
	case "rect":
		item, err = is.importRect(n)
	case "circle":
		item, err = is.importCircle(n)
	case "ellipse":
		item, err = is.importEllipse(n)
	case "line":
		item, err = is.importLine(n)
	case "polyline":
		item, err = is.importPoly(n, false)
	case "polygon":
		item, err = is.importPoly(n, true)
	case "path":
		item, err = is.importPath(n)
	case "linearGradient", "radialGradient":
		// handled by collectDefs
		return nil, nil
	default:
		// unknown elements are skipped
		return nil, nil
	}
	if err != nil || item == nil {
		return nil, err
	}
	if parent != nil {
		parent.AsItem().AddChild(item)
	}
	return item, nil
}

func (is *importSession) importGroup(n *node) (*paper.Group, error) {
	grp := is.doc.CreateGroup("")
	if err := is.applyAttributes(n, grp); err != nil {
		return nil, err
	}
	for _, c := range n.children {
		if _, err := is.importNode(c, grp); err != nil {
			return nil, err
		}
	}
	// a clip-path reference turns the group into a clipped group with
	// the mask as its first child
	if ref, ok := n.attr("clip-path"); ok {
		if clip := is.resolveClipPath(ref); clip != nil {
			grp.AddChild(clip)
			clip.AsItem().SendToBack()
			grp.SetClipped(true)
		}
	}
	return grp, nil
}

// resolveClipPath imports a fresh copy of the referenced clipPath's
// first path child.
func (is *importSession) resolveClipPath(ref string) paper.Item {
	id := parseURLRef(ref)
	if id == "" {
		return nil
	}
	cn, ok := is.clipPaths[id]
	if !ok {
		return nil
	}
	for _, c := range cn.children {
		item, err := is.importNode(c, nil)
		if err == nil && item != nil {
			return item
		}
	}
	return nil
}

func parseURLRef(s string) string {
	open := strings.IndexByte(s, '#')
	if open < 0 {
		return ""
	}
	rest := s[open+1:]
	if end := strings.IndexByte(rest, ')'); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func (is *importSession) importRect(n *node) (paper.Item, error) {
	x := is.coordAttr(n, "x", 0)
	y := is.coordAttr(n, "y", 0)
	w := is.coordAttr(n, "width", 0)
	h := is.coordAttr(n, "height", 0)
	rx, hasRx := n.attr("rx")
	ry, hasRy := n.attr("ry")

	p := is.doc.CreatePath("")
	min := math32.Vec2(x, y)
	max := min.Add(math32.Vec2(w, h))
	if hasRx || hasRy {
		rxv := parseCoordinate(rx).toPixels(is.dpi, 0, 1)
		ryv := parseCoordinate(ry).toPixels(is.dpi, 0, 1)
		if !hasRx {
			rxv = ryv
		}
		if !hasRy {
			ryv = rxv
		}
		p.MakeRoundedRectangle(min, max, math32.Vec2(rxv, ryv))
	} else {
		p.MakeRectangle(min, max)
	}
	return p, is.applyAttributes(n, p)
}

func (is *importSession) importCircle(n *node) (paper.Item, error) {
	cx := is.coordAttr(n, "cx", 0)
	cy := is.coordAttr(n, "cy", 0)
	r := is.coordAttr(n, "r", 0)
	p := is.doc.CreatePath("").MakeCircle(math32.Vec2(cx, cy), r)
	return p, is.applyAttributes(n, p)
}

func (is *importSession) importEllipse(n *node) (paper.Item, error) {
	cx := is.coordAttr(n, "cx", 0)
	cy := is.coordAttr(n, "cy", 0)
	rx := is.coordAttr(n, "rx", 0)
	ry := is.coordAttr(n, "ry", 0)
	p := is.doc.CreatePath("").MakeEllipse(math32.Vec2(cx, cy), math32.Vec2(rx*2, ry*2))
	return p, is.applyAttributes(n, p)
}

func (is *importSession) importLine(n *node) (paper.Item, error) {
	p := is.doc.CreatePath("")
	p.AddPoint(math32.Vec2(is.coordAttr(n, "x1", 0), is.coordAttr(n, "y1", 0)))
	p.AddPoint(math32.Vec2(is.coordAttr(n, "x2", 0), is.coordAttr(n, "y2", 0)))
	return p, is.applyAttributes(n, p)
}

func (is *importSession) importPoly(n *node, closed bool) (paper.Item, error) {
	points, _ := n.attr("points")
	p := is.doc.CreatePath("")
	raw := []byte(points)
	i := skipCommaWhitespace(raw, 0)
	var nums []float32
	for i < len(raw) {
		f, adv := strconv.ParseFloat(raw[i:])
		if adv == 0 {
			return nil, fmt.Errorf("%w: malformed points list", paper.ErrParseFailed)
		}
		nums = append(nums, float32(f))
		i = skipCommaWhitespace(raw, i+adv)
	}
	for k := 0; k+1 < len(nums); k += 2 {
		p.AddPoint(math32.Vec2(nums[k], nums[k+1]))
	}
	if closed {
		p.ClosePath()
	}
	return p, is.applyAttributes(n, p)
}

func (is *importSession) importPath(n *node) (paper.Item, error) {
	d, ok := n.attr("d")
	if !ok {
		return nil, fmt.Errorf("%w: path element without d attribute", paper.ErrParseFailed)
	}
	p := is.doc.CreatePath("")
	if err := ParsePathData(is.doc, p, d); err != nil {
		return nil, err
	}
	return p, is.applyAttributes(n, p)
}

func (is *importSession) coordAttr(n *node, name string, def float32) float32 {
	if v, ok := n.attr(name); ok {
		return parseCoordinate(v).toPixels(is.dpi, 0, 1)
	}
	return def
}

// applyAttributes applies the presentation attributes and the style
// attribute of the node onto the item, style declarations last.
func (is *importSession) applyAttributes(n *node, item paper.Item) error {
	// apply the paints first so the -opacity attributes always find
	// the color they modify, regardless of attribute order
	for _, pass := range []bool{true, false} {
		for _, a := range n.attrs {
			name := a.Name.Local
			if name == "style" {
				continue
			}
			isPaint := name == "fill" || name == "stroke"
			if isPaint != pass {
				continue
			}
			if err := is.applyAttribute(name, a.Value, item); err != nil {
				return err
			}
		}
	}
	if style, ok := n.attr("style"); ok {
		decls, err := parser.ParseDeclarations(style)
		if err != nil {
			return fmt.Errorf("%w: malformed style attribute: %v", paper.ErrParseFailed, err)
		}
		for _, d := range decls {
			if err := is.applyAttribute(d.Property, d.Value, item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (is *importSession) applyAttribute(name, value string, item paper.Item) error {
	ib := item.AsItem()
	value = strings.TrimSpace(value)
	switch name {
	case "fill":
		return is.applyPaint(value, item, false)
	case "fill-opacity":
		if p := ib.Fill(); ib.HasFill() && p.Kind == paper.PaintColor {
			c := p.Color
			c.A = parseCoordinate(value).value
			ib.SetFill(c)
		}
	case "fill-rule":
		switch value {
		case "nonzero":
			ib.SetWindingRule(paper.NonZero)
		case "evenodd":
			ib.SetWindingRule(paper.EvenOdd)
		}
	case "stroke":
		return is.applyPaint(value, item, true)
	case "stroke-opacity":
		if p := ib.Stroke(); ib.HasStroke() && p.Kind == paper.PaintColor {
			c := p.Color
			c.A = parseCoordinate(value).value
			ib.SetStroke(c)
		}
	case "stroke-width":
		ib.SetStrokeWidth(parseCoordinate(value).toPixels(is.dpi, 0, 1))
	case "stroke-linecap":
		switch value {
		case "butt":
			ib.SetStrokeCap(paper.CapButt)
		case "round":
			ib.SetStrokeCap(paper.CapRound)
		case "square":
			ib.SetStrokeCap(paper.CapSquare)
		}
	case "stroke-linejoin":
		switch value {
		case "miter":
			ib.SetStrokeJoin(paper.JoinMiter)
		case "round":
			ib.SetStrokeJoin(paper.JoinRound)
		case "bevel":
			ib.SetStrokeJoin(paper.JoinBevel)
		}
	case "stroke-miterlimit":
		ib.SetMiterLimit(parseCoordinate(value).value)
	case "stroke-dasharray":
		if value == "none" {
			ib.SetDashArray(nil)
			return nil
		}
		var dashes []float32
		raw := []byte(value)
		i := skipCommaWhitespace(raw, 0)
		for i < len(raw) {
			c := parseCoordinate(string(raw[i:]))
			dashes = append(dashes, c.toPixels(is.dpi, 0, 1))
			for i < len(raw) && raw[i] != ' ' && raw[i] != '\t' && raw[i] != ',' {
				i++
			}
			i = skipCommaWhitespace(raw, i)
		}
		ib.SetDashArray(dashes)
	case "stroke-dashoffset":
		ib.SetDashOffset(parseCoordinate(value).toPixels(is.dpi, 0, 1))
	case "vector-effect":
		ib.SetScaleStroke(value != "non-scaling-stroke")
	case "visibility":
		ib.SetVisible(value != "hidden")
	case "transform":
		m, err := ParseTransform(value)
		if err != nil {
			return err
		}
		ib.SetTransform(m)
	case "id":
		ib.SetName(value)
		is.named[value] = item
	}
	return nil
}

func (is *importSession) applyPaint(value string, item paper.Item, stroke bool) error {
	ib := item.AsItem()
	switch {
	case value == "none":
		if stroke {
			ib.RemoveStroke()
		} else {
			ib.RemoveFill()
		}
	case strings.HasPrefix(value, "url("):
		id := parseURLRef(value)
		grad, ok := is.gradients[id]
		if !ok {
			return fmt.Errorf("%w: reference to unknown paint %q", paper.ErrParseFailed, id)
		}
		if stroke {
			ib.SetStrokeGradient(grad)
		} else {
			ib.SetFillGradient(grad)
		}
	default:
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		// keep an opacity that was applied before the color
		if stroke {
			if p := ib.Stroke(); ib.HasStroke() && p.Kind == paper.PaintColor {
				c.A = p.Color.A
			}
			ib.SetStroke(c)
		} else {
			if p := ib.Fill(); ib.HasFill() && p.Kind == paper.PaintColor {
				c.A = p.Color.A
			}
			ib.SetFill(c)
		}
	}
	return nil
}

// ParseTransform parses an SVG transform list (matrix, translate,
// scale, rotate, skewX, skewY), composing the operations left to
// right.
func ParseTransform(s string) (math32.Matrix2, error) {
	ret := math32.Identity2()
	raw := []byte(s)
	i := 0
	for i < len(raw) {
		i = skipCommaWhitespace(raw, i)
		if i >= len(raw) {
			break
		}
		start := i
		for i < len(raw) && raw[i] != '(' {
			i++
		}
		if i >= len(raw) {
			return ret, fmt.Errorf("%w: malformed transform %q", paper.ErrParseFailed, s)
		}
		op := strings.TrimSpace(string(raw[start:i]))
		i++ // skip '('
		var nums []float32
		for i < len(raw) && raw[i] != ')' {
			i = skipCommaWhitespace(raw, i)
			if i < len(raw) && raw[i] == ')' {
				break
			}
			f, n := strconv.ParseFloat(raw[i:])
			if n == 0 {
				return ret, fmt.Errorf("%w: malformed transform argument in %q", paper.ErrParseFailed, s)
			}
			nums = append(nums, float32(f))
			i += n
		}
		if i >= len(raw) {
			return ret, fmt.Errorf("%w: unterminated transform %q", paper.ErrParseFailed, s)
		}
		i++ // skip ')'

		var tmp math32.Matrix2
		switch {
		case op == "matrix" && len(nums) == 6:
			tmp = math32.Matrix2{
				XX: nums[0], YX: nums[1],
				XY: nums[2], YY: nums[3],
				X0: nums[4], Y0: nums[5],
			}
		case op == "translate" && len(nums) >= 1:
			ty := float32(0)
			if len(nums) > 1 {
				ty = nums[1]
			}
			tmp = math32.Translate2D(nums[0], ty)
		case op == "scale" && len(nums) >= 1:
			sy := nums[0]
			if len(nums) > 1 {
				sy = nums[1]
			}
			tmp = math32.Scale2D(nums[0], sy)
		case op == "rotate" && len(nums) == 3:
			tmp = math32.Identity2().
				RotateAbout(math32.DegToRad(nums[0]), nums[1], nums[2])
		case op == "rotate" && len(nums) >= 1:
			tmp = math32.Rotate2D(math32.DegToRad(nums[0]))
		case op == "skewX" && len(nums) == 1:
			tmp = math32.Skew2D(math32.DegToRad(nums[0]), 0)
		case op == "skewY" && len(nums) == 1:
			tmp = math32.Skew2D(0, math32.DegToRad(nums[0]))
		default:
			return ret, fmt.Errorf("%w: unknown transform operation %q", paper.ErrParseFailed, op)
		}
		ret = ret.Mul(tmp)
	}
	return ret, nil
}
