// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import "github.com/tobiasvend/paper/math32"

// Group is an item grouping an ordered list of children. When marked
// clipped, the first child acts as a clipping mask for the remaining
// children.
type Group struct {
	ItemBase

	clipped bool
}

// ItemType returns [ItemGroup].
func (g *Group) ItemType() ItemTypes { return ItemGroup }

// IsClipped returns whether the first child clips the remaining ones.
func (g *Group) IsClipped() bool { return g.clipped }

// SetClipped sets whether the first child clips the remaining ones.
func (g *Group) SetClipped(b bool) {
	g.clipped = b
	g.markBoundsDirty(true)
}

// Clone deep-copies the group and its subtree, inserting the copy
// immediately above the group in its parent.
func (g *Group) Clone() Item {
	ret := g.doc.CreateGroup(g.name)
	ret.clipped = g.clipped
	g.cloneItemTo(ret)
	return ret
}

func (g *Group) canAddChild(child Item) bool {
	return child.ItemType() != ItemDocument
}

func (g *Group) computeBounds(tr *math32.Matrix2, kind BoundsKinds) (math32.Box2, bool) {
	if g.clipped && len(g.children) > 0 {
		mask := g.children[0]
		if tr != nil {
			m := tr.Mul(mask.AsItem().Transform())
			return mask.computeBounds(&m, kind)
		}
		return mask.computeBounds(nil, kind)
	}
	return g.mergeWithChildrenBounds(math32.Box2{}, false, tr, kind, false)
}
