// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import "github.com/tobiasvend/paper/math32"

// Symbol is an item referencing another (non-document) item. It
// applies its own transform on top of the referenced item's transform
// when composing absolute transforms, and its bounds pass through to
// the referenced item unless the symbol itself is transformed.
type Symbol struct {
	ItemBase

	item Item
}

// ItemType returns [ItemSymbol].
func (s *Symbol) ItemType() ItemTypes { return ItemSymbol }

// Item returns the referenced item.
func (s *Symbol) Item() Item { return s.item }

func (s *Symbol) setItem(item Item) {
	if item == nil || item.ItemType() == ItemDocument {
		return
	}
	s.item = item
	ib := item.AsItem()
	ib.symbols = append(ib.symbols, s)
}

// Clone copies the symbol (sharing the referenced item), inserting the
// copy immediately above the symbol in its parent.
func (s *Symbol) Clone() Item {
	ret := s.doc.CreateSymbol(s.item, s.name)
	s.cloneItemTo(ret)
	return ret
}

func (s *Symbol) absoluteTransform() math32.Matrix2 {
	if !s.absTransform.Valid {
		if s.IsTransformed() && s.parent != nil {
			s.absTransform.Set(s.parent.absoluteTransform().
				Mul(s.Transform()).
				Mul(s.item.AsItem().Transform()))
		} else {
			s.absTransform.Set(s.item.AsItem().Transform())
		}
	}
	return s.absTransform.Value
}

func (s *Symbol) computeBounds(tr *math32.Matrix2, kind BoundsKinds) (math32.Box2, bool) {
	if s.item == nil {
		return math32.Box2{}, false
	}
	if s.IsTransformed() {
		m := s.absoluteTransform()
		if tr != nil {
			m = *tr
		}
		return s.item.computeBounds(&m, kind)
	}
	// grab the possibly cached bounds straight from the item
	var b math32.Box2
	switch kind {
	case BoundsStroke:
		b = s.item.AsItem().StrokeBounds()
	case BoundsHandle:
		b = s.item.AsItem().HandleBounds()
	default:
		b = s.item.AsItem().Bounds()
	}
	if b == noBounds {
		return math32.Box2{}, false
	}
	return b, true
}
