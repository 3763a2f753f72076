// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binfmt implements the compact binary serialization of a
// scene: a little-endian, length-prefixed three-section file holding
// the item hierarchy, the segment data of all paths, and the
// reference-shared gradients.
package binfmt

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tobiasvend/paper"
	"github.com/tobiasvend/paper/math32"
)

// file magic and section tags
const (
	magic      = "paper"
	version    = uint32(0)
	tagHier    = "hr"
	tagSegs    = "sd"
	tagPaints  = "pd"
	headerSize = len(magic) + 4 + 8 + 8
)

// paint-ref kinds
const (
	paintRefColor  = uint8(0)
	paintRefLinear = uint8(1)
	paintRefRadial = uint8(2)
)

type writer struct {
	buf bytes.Buffer
}

func (w *writer) bytes(b []byte)    { w.buf.Write(b) }
func (w *writer) str(s string)      { w.buf.WriteString(s) }
func (w *writer) u8(v uint8)        { w.buf.WriteByte(v) }
func (w *writer) u32(v uint32)      { binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) u64(v uint64)      { binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) f32(v float32)     { binary.Write(&w.buf, binary.LittleEndian, v) }
func (w *writer) boolean(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}
func (w *writer) cstring(s string)  { w.buf.WriteString(s); w.buf.WriteByte(0) }
func (w *writer) vec2(v math32.Vector2) {
	w.f32(v.X)
	w.f32(v.Y)
}
func (w *writer) color(c paper.ColorRGBA) {
	w.f32(c.R)
	w.f32(c.G)
	w.f32(c.B)
	w.f32(c.A)
}
func (w *writer) matrix(m math32.Matrix2) {
	// column-major 3×2
	w.f32(m.XX)
	w.f32(m.YX)
	w.f32(m.XY)
	w.f32(m.YY)
	w.f32(m.X0)
	w.f32(m.Y0)
}

type exportSession struct {
	gradients []*paper.Gradient
}

// gradientIndex interns the gradient, returning its index in the paint
// section. Each distinct gradient pointer is written exactly once.
func (es *exportSession) gradientIndex(g *paper.Gradient) uint32 {
	for i, have := range es.gradients {
		if have == g {
			return uint32(i)
		}
	}
	es.gradients = append(es.gradients, g)
	return uint32(len(es.gradients) - 1)
}

func (es *exportSession) exportPaint(w *writer, p paper.Paint) error {
	switch p.Kind {
	case paper.PaintColor:
		w.boolean(true)
		w.u8(paintRefColor)
		w.color(p.Color)
	case paper.PaintGradient:
		w.boolean(true)
		if p.Gradient == nil {
			return fmt.Errorf("%w: gradient paint without gradient", paper.ErrInvalidOperation)
		}
		if p.Gradient.Type() == paper.GradientLinear {
			w.u8(paintRefLinear)
		} else {
			w.u8(paintRefRadial)
		}
		w.u32(es.gradientIndex(p.Gradient))
	default:
		// an explicit no-paint has no paint-ref encoding; it comes
		// back as an absent (inherited) paint
		w.boolean(false)
	}
	return nil
}

func (es *exportSession) exportItem(w *writer, item paper.Item, segs *[]paper.SegmentData) error {
	ib := item.AsItem()
	w.u64(uint64(item.ItemType()))

	switch it := item.(type) {
	case *paper.Document:
		w.f32(it.Width())
		w.f32(it.Height())
	case *paper.Group:
		w.boolean(it.IsClipped())
	case *paper.Path:
		w.boolean(it.IsClosed())
		w.u64(uint64(len(*segs)))
		w.u64(uint64(it.SegmentCount()))
		*segs = append(*segs, it.SegmentData()...)
	default:
		return fmt.Errorf("%w: cannot serialize item type %s",
			paper.ErrInvalidOperation, item.ItemType())
	}

	w.cstring(ib.Name())
	w.boolean(ib.Visible())

	w.boolean(ib.HasTransform())
	if ib.HasTransform() {
		w.matrix(ib.Transform())
	}
	w.boolean(ib.HasPivot())
	if ib.HasPivot() {
		pv, _ := ib.Pivot()
		w.vec2(pv)
	}

	if ib.HasFill() {
		if err := es.exportPaint(w, ib.Fill()); err != nil {
			return err
		}
	} else {
		w.boolean(false)
	}
	if ib.HasStroke() {
		if err := es.exportPaint(w, ib.Stroke()); err != nil {
			return err
		}
	} else {
		w.boolean(false)
	}

	w.boolean(ib.HasStrokeWidth())
	if ib.HasStrokeWidth() {
		w.f32(ib.StrokeWidth())
	}
	w.boolean(ib.HasStrokeJoin())
	if ib.HasStrokeJoin() {
		w.u64(uint64(ib.StrokeJoin()))
	}
	w.boolean(ib.HasStrokeCap())
	if ib.HasStrokeCap() {
		w.u64(uint64(ib.StrokeCap()))
	}
	w.boolean(ib.HasScaleStroke())
	if ib.HasScaleStroke() {
		w.boolean(ib.ScaleStroke())
	}
	w.boolean(ib.HasMiterLimit())
	if ib.HasMiterLimit() {
		w.f32(ib.MiterLimit())
	}

	var dashes []float32
	if ib.HasDashArray() {
		dashes = ib.DashArray()
	}
	w.u64(uint64(len(dashes)))
	for _, d := range dashes {
		w.f32(d)
	}

	w.boolean(ib.HasDashOffset())
	if ib.HasDashOffset() {
		w.f32(ib.DashOffset())
	}
	w.boolean(ib.HasWindingRule())
	if ib.HasWindingRule() {
		w.u64(uint64(ib.WindingRule()))
	}

	w.u64(uint64(len(ib.Children())))
	for _, c := range ib.Children() {
		if err := es.exportItem(w, c, segs); err != nil {
			return err
		}
	}
	return nil
}

// Export serializes the given item and its subtree into the binary
// format, interning each distinct gradient exactly once.
func Export(item paper.Item) ([]byte, error) {
	var body writer
	var segs []paper.SegmentData
	es := &exportSession{}

	// 01. hierarchy
	body.str(tagHier)
	if err := es.exportItem(&body, item, &segs); err != nil {
		return nil, err
	}

	// 02. segment data
	segOff := body.buf.Len()
	body.str(tagSegs)
	body.u64(uint64(len(segs)))
	for _, seg := range segs {
		body.vec2(seg.HandleIn)
		body.vec2(seg.Position)
		body.vec2(seg.HandleOut)
	}

	// 03. gradient/paint data
	paintOff := body.buf.Len()
	body.str(tagPaints)
	body.u64(uint64(len(es.gradients)))
	for _, g := range es.gradients {
		body.u64(uint64(g.Type()))
		body.vec2(g.Origin())
		body.vec2(g.Destination())
		if g.Type() == paper.GradientRadial {
			fp, hasFP := g.FocalPointOffset()
			body.boolean(hasFP)
			if hasFP {
				body.vec2(fp)
			}
			ratio, hasRatio := g.Ratio()
			body.boolean(hasRatio)
			if hasRatio {
				body.f32(ratio)
			}
		}
		body.u64(uint64(len(g.Stops())))
		for _, stop := range g.Stops() {
			body.color(stop.Color)
			body.f32(stop.Offset)
		}
	}

	var out writer
	out.str(magic)
	out.u32(version)
	out.u64(uint64(segOff + headerSize))
	out.u64(uint64(paintOff + headerSize))
	out.bytes(body.buf.Bytes())
	return out.buf.Bytes(), nil
}
