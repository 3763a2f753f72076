// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// Document is the root item of a scene. It owns every item created
// through its factory methods and all gradients created through it.
// A document has a width and height in document units.
type Document struct {
	ItemBase

	size math32.Vector2

	// all items created through the document, keeping them reachable
	// and findable independent of their place in the hierarchy
	items []Item
}

// NewDocument returns a new empty document.
func NewDocument() *Document {
	doc := &Document{}
	doc.init(doc, doc, "Document")
	return doc
}

// ItemType returns [ItemDocument].
func (doc *Document) ItemType() ItemTypes { return ItemDocument }

// Clone is not supported on documents and returns nil.
func (doc *Document) Clone() Item { return nil }

// SetSize sets the document width and height in document units.
func (doc *Document) SetSize(width, height float32) {
	doc.size = math32.Vec2(width, height)
}

// Width returns the document width in document units.
func (doc *Document) Width() float32 { return doc.size.X }

// Height returns the document height in document units.
func (doc *Document) Height() float32 { return doc.size.Y }

// Size returns the document size in document units.
func (doc *Document) Size() math32.Vector2 { return doc.size }

func (doc *Document) canAddChild(child Item) bool {
	return child.ItemType() != ItemDocument
}

func (doc *Document) register(it Item) {
	doc.items = append(doc.items, it)
}

func (doc *Document) destroyItem(it Item) {
	for i, have := range doc.items {
		if have == it {
			doc.items = append(doc.items[:i], doc.items[i+1:]...)
			return
		}
	}
}

// CreatePath creates a new empty path owned by the document and adds
// it as a child of the document.
func (doc *Document) CreatePath(name string) *Path {
	p := &Path{}
	p.init(p, doc, name)
	doc.register(p)
	doc.AddChild(p)
	return p
}

// CreateGroup creates a new empty group owned by the document and adds
// it as a child of the document.
func (doc *Document) CreateGroup(name string) *Group {
	g := &Group{}
	g.init(g, doc, name)
	doc.register(g)
	doc.AddChild(g)
	return g
}

// CreateSymbol creates a new symbol referencing the given item. The
// item must not be a document.
func (doc *Document) CreateSymbol(item Item, name string) *Symbol {
	s := &Symbol{}
	s.init(s, doc, name)
	s.setItem(item)
	doc.register(s)
	doc.AddChild(s)
	return s
}

// CreateEllipse creates a closed four-segment kappa-approximated
// ellipse path with the given center and size.
func (doc *Document) CreateEllipse(center, size math32.Vector2, name string) *Path {
	return doc.CreatePath(name).MakeEllipse(center, size)
}

// CreateCircle creates a closed four-segment kappa-approximated circle
// path with the given center and radius.
func (doc *Document) CreateCircle(center math32.Vector2, radius float32, name string) *Path {
	return doc.CreateEllipse(center, math32.Vector2Scalar(radius).MulScalar(2), name)
}

// CreateRectangle creates a closed four-point rectangle path between
// the two given corners.
func (doc *Document) CreateRectangle(from, to math32.Vector2, name string) *Path {
	return doc.CreatePath(name).MakeRectangle(from, to)
}

// CreateRoundedRectangle creates a closed eight-segment rounded
// rectangle path between the two given corners with the given corner
// radii.
func (doc *Document) CreateRoundedRectangle(min, max, radius math32.Vector2, name string) *Path {
	return doc.CreatePath(name).MakeRoundedRectangle(min, max, radius)
}

// NewLinearGradient creates a new linear gradient running from origin
// to destination, owned by the document and shareable between paints.
func (doc *Document) NewLinearGradient(origin, destination math32.Vector2) *Gradient {
	return &Gradient{typ: GradientLinear, origin: origin, destination: destination}
}

// NewRadialGradient creates a new radial gradient running from origin
// to destination, owned by the document and shareable between paints.
func (doc *Document) NewRadialGradient(origin, destination math32.Vector2) *Gradient {
	return &Gradient{typ: GradientRadial, origin: origin, destination: destination}
}
