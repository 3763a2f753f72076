// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binfmt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tobiasvend/paper"
	"github.com/tobiasvend/paper/math32"
)

// reader is a cursor over the file bytes with a sticky error; all
// accessors return zero values once an error occurred.
type reader struct {
	data []byte
	pos  int
	err  error
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]any{paper.ErrParseFailed}, args...)...)
	}
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.data) {
		r.fail("unexpected end of file at offset %d", r.pos)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) seek(off uint64) {
	if r.err != nil {
		return
	}
	if off > uint64(len(r.data)) {
		r.fail("section offset %d beyond end of file", off)
		return
	}
	r.pos = int(off)
}

func (r *reader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) boolean() bool { return r.u8() != 0 }

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *reader) vec2() math32.Vector2 {
	return math32.Vec2(r.f32(), r.f32())
}

func (r *reader) color() paper.ColorRGBA {
	return paper.RGBA(r.f32(), r.f32(), r.f32(), r.f32())
}

func (r *reader) matrix() math32.Matrix2 {
	return math32.Matrix2{
		XX: r.f32(), YX: r.f32(),
		XY: r.f32(), YY: r.f32(),
		X0: r.f32(), Y0: r.f32(),
	}
}

func (r *reader) cstring() string {
	if r.err != nil {
		return ""
	}
	idx := bytes.IndexByte(r.data[r.pos:], 0)
	if idx < 0 {
		r.fail("unterminated string at offset %d", r.pos)
		return ""
	}
	s := string(r.data[r.pos : r.pos+idx])
	r.pos += idx + 1
	return s
}

func (r *reader) tag(want string) {
	b := r.take(len(want))
	if r.err == nil && string(b) != want {
		r.fail("bad section tag %q, want %q", b, want)
	}
}

type importSession struct {
	gradients []*paper.Gradient
}

func (is *importSession) importPaint(r *reader, item paper.Item, stroke bool) {
	if !r.boolean() || r.err != nil {
		return
	}
	ib := item.AsItem()
	kind := r.u8()
	switch kind {
	case paintRefColor:
		c := r.color()
		if stroke {
			ib.SetStroke(c)
		} else {
			ib.SetFill(c)
		}
	case paintRefLinear, paintRefRadial:
		idx := r.u32()
		if int(idx) >= len(is.gradients) {
			r.fail("gradient index %d out of range", idx)
			return
		}
		if stroke {
			ib.SetStrokeGradient(is.gradients[idx])
		} else {
			ib.SetFillGradient(is.gradients[idx])
		}
	default:
		r.fail("unknown paint kind %d", kind)
	}
}

func (is *importSession) importItem(doc *paper.Document, parent paper.Item, r *reader, segs []paper.SegmentData) paper.Item {
	itemType := paper.ItemTypes(r.u64())
	if r.err != nil {
		return nil
	}

	var ret paper.Item
	switch itemType {
	case paper.ItemDocument:
		w := r.f32()
		h := r.f32()
		doc.SetSize(w, h)
		ret = doc
	case paper.ItemGroup:
		grp := doc.CreateGroup("")
		grp.SetClipped(r.boolean())
		ret = grp
	case paper.ItemPath:
		path := doc.CreatePath("")
		closed := r.boolean()
		firstSeg := r.u64()
		segCount := r.u64()
		if firstSeg+segCount > uint64(len(segs)) {
			r.fail("segment range [%d, %d) out of range", firstSeg, firstSeg+segCount)
			return nil
		}
		path.AddSegments(segs[firstSeg : firstSeg+segCount])
		if closed {
			path.ClosePath()
		}
		ret = path
	default:
		// ItemSymbol is reserved and currently unsupported
		r.fail("unsupported item type %d", itemType)
		return nil
	}

	ib := ret.AsItem()
	ib.SetName(r.cstring())
	ib.SetVisible(r.boolean())

	if r.boolean() {
		ib.SetTransform(r.matrix())
	}
	if r.boolean() {
		ib.SetPivot(r.vec2())
	}

	is.importPaint(r, ret, false)
	is.importPaint(r, ret, true)

	if r.boolean() {
		ib.SetStrokeWidth(r.f32())
	}
	if r.boolean() {
		ib.SetStrokeJoin(paper.StrokeJoins(r.u64()))
	}
	if r.boolean() {
		ib.SetStrokeCap(paper.StrokeCaps(r.u64()))
	}
	if r.boolean() {
		ib.SetScaleStroke(r.boolean())
	}
	if r.boolean() {
		ib.SetMiterLimit(r.f32())
	}

	dashCount := r.u64()
	if dashCount > 0 {
		if dashCount > uint64(len(r.data)) {
			r.fail("implausible dash count %d", dashCount)
			return nil
		}
		dashes := make([]float32, dashCount)
		for i := range dashes {
			dashes[i] = r.f32()
		}
		ib.SetDashArray(dashes)
	}

	if r.boolean() {
		ib.SetDashOffset(r.f32())
	}
	if r.boolean() {
		ib.SetWindingRule(paper.WindingRules(r.u64()))
	}

	childCount := r.u64()
	if childCount > uint64(len(r.data)) {
		r.fail("implausible child count %d", childCount)
		return nil
	}
	for i := uint64(0); i < childCount; i++ {
		is.importItem(doc, ret, r, segs)
		if r.err != nil {
			return nil
		}
	}

	if parent != nil {
		parent.AsItem().AddChild(ret)
	}
	return ret
}

// Import parses a binary scene file into the given document, returning
// the imported root item. Shared gradients are reconstructed by index,
// so paints that shared a gradient before export share one instance
// again.
func Import(doc *paper.Document, data []byte) (paper.Item, error) {
	r := &reader{data: data}
	is := &importSession{}

	if string(r.take(len(magic))) != magic {
		return nil, fmt.Errorf("%w: invalid header", paper.ErrParseFailed)
	}
	_ = r.u32() // format version, currently always 0
	segOff := r.u64()
	paintOff := r.u64()
	if r.err != nil {
		return nil, r.err
	}

	hierarchyPos := uint64(r.pos)

	// segment data section
	r.seek(segOff)
	r.tag(tagSegs)
	segCount := r.u64()
	if r.err != nil {
		return nil, r.err
	}
	if segCount > uint64(len(data))/24 {
		return nil, fmt.Errorf("%w: implausible segment count %d", paper.ErrParseFailed, segCount)
	}
	segs := make([]paper.SegmentData, segCount)
	for i := range segs {
		segs[i].HandleIn = r.vec2()
		segs[i].Position = r.vec2()
		segs[i].HandleOut = r.vec2()
	}

	// paint/gradient data section
	r.seek(paintOff)
	r.tag(tagPaints)
	gradCount := r.u64()
	if r.err != nil {
		return nil, r.err
	}
	for i := uint64(0); i < gradCount && r.err == nil; i++ {
		typ := paper.GradientTypes(r.u64())
		origin := r.vec2()
		dest := r.vec2()
		var grad *paper.Gradient
		switch typ {
		case paper.GradientLinear:
			grad = doc.NewLinearGradient(origin, dest)
		case paper.GradientRadial:
			grad = doc.NewRadialGradient(origin, dest)
			if r.boolean() {
				grad.SetFocalPointOffset(r.vec2())
			}
			if r.boolean() {
				grad.SetRatio(r.f32())
			}
		default:
			return nil, fmt.Errorf("%w: unknown gradient type %d", paper.ErrParseFailed, typ)
		}
		stopCount := r.u64()
		if stopCount > uint64(len(data))/20 {
			return nil, fmt.Errorf("%w: implausible stop count %d", paper.ErrParseFailed, stopCount)
		}
		for j := uint64(0); j < stopCount; j++ {
			c := r.color()
			grad.AddStop(c, r.f32())
		}
		is.gradients = append(is.gradients, grad)
	}
	if r.err != nil {
		return nil, r.err
	}

	// hierarchy section
	r.seek(hierarchyPos)
	r.tag(tagHier)
	root := is.importItem(doc, nil, r, segs)
	if r.err != nil {
		return nil, r.err
	}
	return root, nil
}
