// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"fmt"

	"github.com/tobiasvend/paper/math32"
)

// Renderer is the interface a rendering backend satisfies. The
// traversal over the document is supplied by [Draw]; the backend only
// draws individual paths and manages clipping state.
type Renderer interface {
	// Init prepares the backend for the given document.
	Init(doc *Document) error

	// SetViewport sets the drawing area in pixels.
	SetViewport(x, y, widthPx, heightPx float32)

	// SetSize sets the width and height of the render area in
	// document units.
	SetSize(width, height float32)

	// DrawPath draws the given path with the given absolute transform.
	DrawPath(p *Path, transform math32.Matrix2) error

	// BeginClipping pushes the given path as a clipping mask.
	BeginClipping(p *Path, transform math32.Matrix2) error

	// EndClipping pops the most recent clipping mask.
	EndClipping() error

	// PrepareDrawing is called before a traversal starts.
	PrepareDrawing() error

	// FinishDrawing is called after a traversal completed.
	FinishDrawing() error
}

// Draw runs the depth-first draw traversal of the renderer's document:
// invisible items are skipped, clipped groups clip against their first
// child, paths with at least two segments are drawn, and symbols draw
// their referenced item under the symbol's absolute transform.
func Draw(r Renderer, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: draw without document", ErrInvalidOperation)
	}
	if err := r.PrepareDrawing(); err != nil {
		return err
	}
	if err := drawChildren(r, doc, nil, false); err != nil {
		return err
	}
	return r.FinishDrawing()
}

func drawChildren(r Renderer, item Item, transform *math32.Matrix2, skipFirst bool) error {
	kids := item.AsItem().Children()
	if skipFirst && len(kids) > 0 {
		kids = kids[1:]
	}
	for _, c := range kids {
		var tr *math32.Matrix2
		if transform != nil {
			m := transform.Mul(c.AsItem().Transform())
			tr = &m
		}
		if err := drawItem(r, c, tr); err != nil {
			return err
		}
	}
	return nil
}

func drawItem(r Renderer, item Item, transform *math32.Matrix2) error {
	if !item.AsItem().Visible() {
		return nil
	}
	switch it := item.(type) {
	case *Group:
		if it.IsClipped() && len(it.Children()) > 0 {
			mask, ok := it.Children()[0].(*Path)
			if !ok {
				return fmt.Errorf("%w: clipping mask must be a path", ErrInvalidOperation)
			}
			maskTr := mask.AbsoluteTransform()
			if transform != nil {
				maskTr = transform.Mul(mask.Transform())
			}
			if err := r.BeginClipping(mask, maskTr); err != nil {
				return err
			}
			if err := drawChildren(r, it, transform, true); err != nil {
				return err
			}
			return r.EndClipping()
		}
		return drawChildren(r, it, transform, false)
	case *Path:
		if len(it.segments) > 1 {
			tr := it.AbsoluteTransform()
			if transform != nil {
				tr = *transform
			}
			return r.DrawPath(it, tr)
		}
	case *Symbol:
		if it.Item() != nil {
			tr := transform
			if tr == nil {
				m := it.absoluteTransform()
				tr = &m
			}
			return drawItem(r, it.Item(), tr)
		}
	}
	return nil
}
