// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/base/option"
	"github.com/tobiasvend/paper/math32"
)

// Item is the interface satisfied by everything living in a document:
// the [Document] itself, [Group], [Path], and [Symbol]. Concrete items
// embed [ItemBase], which implements the shared tree, transform, style,
// and bounds machinery; the interface carries the per-type dispatch
// points.
type Item interface {
	// AsItem returns the underlying [ItemBase] of the item.
	AsItem() *ItemBase

	// ItemType returns the concrete type of the item.
	ItemType() ItemTypes

	// Clone deep-copies the item and its subtree, inserting the copy
	// immediately above the item in its parent.
	Clone() Item

	// canAddChild reports whether the given item may become a child.
	canAddChild(child Item) bool

	// addedChild is called after a child was inserted.
	addedChild(child Item)

	// computeBounds computes the bounds of the given kind. The
	// transform is only non-nil when it differs from the item's own
	// cached transform stack (e.g. for symbol instances).
	computeBounds(tr *math32.Matrix2, kind BoundsKinds) (math32.Box2, bool)

	// transformChanged is called when the local or an ancestor
	// transform changed.
	transformChanged(fromParent bool)

	// applyTransform bakes the given transform into the item geometry.
	applyTransform(m math32.Matrix2, markParentsBoundsDirty bool)

	// absoluteTransform returns the product of the ancestor transforms
	// and the local transform. Symbols substitute their own stack.
	absoluteTransform() math32.Matrix2
}

// Decomposed holds the decomposition of an affine transform.
type Decomposed struct {
	Rotation    float32
	Scaling     math32.Vector2
	Translation math32.Vector2
	Skew        float32
}

// ItemBase holds the state shared by all item types: the tree links,
// the optional local transform with its caches, the optional style
// properties with their resolved-value caches, and the bounds caches.
type ItemBase struct {
	this     Item
	doc      *Document
	parent   Item
	children []Item
	name     string
	visible  bool

	transform     option.Option[math32.Matrix2]
	absTransform  option.Option[math32.Matrix2]
	decomposed    option.Option[Decomposed]
	absDecomposed option.Option[Decomposed]
	pivot         option.Option[math32.Vector2]

	// symbols referencing this item
	symbols []*Symbol

	// optional local style values; absent means inherit from parent
	fill        option.Option[Paint]
	stroke      option.Option[Paint]
	strokeWidth option.Option[float32]
	strokeJoin  option.Option[StrokeJoins]
	strokeCap   option.Option[StrokeCaps]
	scaleStroke option.Option[bool]
	miterLimit  option.Option[float32]
	dashArray   option.Option[[]float32]
	dashOffset  option.Option[float32]
	windingRule option.Option[WindingRules]

	// cached resolved style values, cleared down the subtree by setters
	rFill        option.Option[Paint]
	rStroke      option.Option[Paint]
	rStrokeWidth option.Option[float32]
	rStrokeJoin  option.Option[StrokeJoins]
	rStrokeCap   option.Option[StrokeCaps]
	rScaleStroke option.Option[bool]
	rMiterLimit  option.Option[float32]
	rDashArray   option.Option[[]float32]
	rDashOffset  option.Option[float32]
	rWindingRule option.Option[WindingRules]

	// bounds caches; absent means dirty
	fillBounds   option.Option[math32.Box2]
	strokeBounds option.Option[math32.Box2]
	handleBounds option.Option[math32.Box2]
}

func (ib *ItemBase) init(this Item, doc *Document, name string) {
	ib.this = this
	ib.doc = doc
	ib.name = name
	ib.visible = true
}

// AsItem returns the underlying [ItemBase].
func (ib *ItemBase) AsItem() *ItemBase { return ib }

// Document returns the owning document.
func (ib *ItemBase) Document() *Document { return ib.doc }

// Name returns the item name.
func (ib *ItemBase) Name() string { return ib.name }

// SetName sets the item name.
func (ib *ItemBase) SetName(name string) { ib.name = name }

// Parent returns the parent item, or nil for a detached item or the
// document root.
func (ib *ItemBase) Parent() Item { return ib.parent }

// Children returns the ordered child list. The order is the draw
// order, back to front.
func (ib *ItemBase) Children() []Item { return ib.children }

// Visible returns whether the item is visible.
func (ib *ItemBase) Visible() bool { return ib.visible }

// SetVisible sets whether the item is visible.
func (ib *ItemBase) SetVisible(v bool) { ib.visible = v }

// FindChild returns the first direct child with the given name, or nil.
func (ib *ItemBase) FindChild(name string) Item {
	for _, c := range ib.children {
		if c.AsItem().name == name {
			return c
		}
	}
	return nil
}

// AddChild appends the given item to the child list, detaching it from
// any previous parent first. It returns false if the parenting is not
// legal for the item types involved.
func (ib *ItemBase) AddChild(child Item) bool {
	if !ib.this.canAddChild(child) {
		return false
	}
	cb := child.AsItem()
	cb.removeFromParent()
	cb.markAbsoluteTransformDirty()
	cb.clearAllResolvedStyles()
	ib.children = append(ib.children, child)
	ib.markBoundsDirty(true)
	cb.parent = ib.this
	ib.this.addedChild(child)
	return true
}

// clearAllResolvedStyles clears every cached resolved style value on
// the item and its descendants; used when the item moves to a new
// parent and must re-inherit.
func (ib *ItemBase) clearAllResolvedStyles() {
	clearResolved(ib, rFillAcc)
	clearResolved(ib, rStrokeAcc)
	clearResolved(ib, rStrokeWidthAcc)
	clearResolved(ib, rStrokeJoinAcc)
	clearResolved(ib, rStrokeCapAcc)
	clearResolved(ib, rScaleStrokeAcc)
	clearResolved(ib, rMiterLimitAcc)
	clearResolved(ib, rDashArrayAcc)
	clearResolved(ib, rDashOffsetAcc)
	clearResolved(ib, rWindingRuleAcc)
}

// InsertAbove inserts this item immediately after the given sibling in
// the sibling's parent's child list. It returns false if the parenting
// is not legal.
func (ib *ItemBase) InsertAbove(sibling Item) bool {
	return ib.insertHelper(sibling, true)
}

// InsertBelow inserts this item immediately before the given sibling in
// the sibling's parent's child list. It returns false if the parenting
// is not legal.
func (ib *ItemBase) InsertBelow(sibling Item) bool {
	return ib.insertHelper(sibling, false)
}

func (ib *ItemBase) insertHelper(sibling Item, above bool) bool {
	sparent := sibling.AsItem().parent
	if sparent == nil || !sparent.canAddChild(ib.this) {
		return false
	}
	ib.removeFromParent()
	ib.markAbsoluteTransformDirty()
	ib.clearAllResolvedStyles()
	pb := sparent.AsItem()
	idx := pb.childIndex(sibling)
	if idx < 0 {
		return false
	}
	if above {
		idx++
	}
	pb.children = append(pb.children, nil)
	copy(pb.children[idx+1:], pb.children[idx:])
	pb.children[idx] = ib.this
	ib.parent = sparent
	pb.markBoundsDirty(true)
	sparent.addedChild(ib.this)
	return true
}

// SendToFront moves this item to the end of its parent's child list,
// drawing it on top of its siblings.
func (ib *ItemBase) SendToFront() bool {
	if ib.parent == nil {
		return false
	}
	pb := ib.parent.AsItem()
	idx := pb.childIndex(ib.this)
	pb.children = append(pb.children[:idx], pb.children[idx+1:]...)
	pb.children = append(pb.children, ib.this)
	return true
}

// SendToBack moves this item to the start of its parent's child list,
// drawing it behind its siblings.
func (ib *ItemBase) SendToBack() bool {
	if ib.parent == nil {
		return false
	}
	pb := ib.parent.AsItem()
	idx := pb.childIndex(ib.this)
	pb.children = append(pb.children[:idx], pb.children[idx+1:]...)
	pb.children = append([]Item{ib.this}, pb.children...)
	return true
}

// ReverseChildren reverses the draw order of the children.
func (ib *ItemBase) ReverseChildren() {
	for i, j := 0, len(ib.children)-1; i < j; i, j = i+1, j-1 {
		ib.children[i], ib.children[j] = ib.children[j], ib.children[i]
	}
}

// Remove destroys this item and its subtree, detaching it from its
// parent first.
func (ib *ItemBase) Remove() {
	ib.removeHelper(true)
}

// RemoveChildren destroys all children and their subtrees.
func (ib *ItemBase) RemoveChildren() {
	for _, c := range ib.children {
		c.AsItem().removeHelper(false)
	}
	ib.children = nil
}

func (ib *ItemBase) removeHelper(detach bool) {
	ib.RemoveChildren()
	if detach {
		ib.removeFromParent()
	}
	if ib.doc != nil {
		ib.doc.destroyItem(ib.this)
	}
}

func (ib *ItemBase) removeFromParent() {
	if ib.parent == nil {
		return
	}
	pb := ib.parent.AsItem()
	idx := pb.childIndex(ib.this)
	if idx >= 0 {
		pb.children = append(pb.children[:idx], pb.children[idx+1:]...)
	}
	pb.markBoundsDirty(true)
	ib.parent = nil
}

func (ib *ItemBase) childIndex(child Item) int {
	for i, c := range ib.children {
		if c == child {
			return i
		}
	}
	return -1
}

// default dispatch implementations, overridden by the concrete types

func (ib *ItemBase) canAddChild(child Item) bool { return false }

func (ib *ItemBase) addedChild(child Item) {}

func (ib *ItemBase) computeBounds(tr *math32.Matrix2, kind BoundsKinds) (math32.Box2, bool) {
	return math32.Box2{}, false
}

func (ib *ItemBase) applyTransform(m math32.Matrix2, markParentsBoundsDirty bool) {
	// an item has no geometry of its own by default
	ib.applyTransformToChildrenAndPivot(m)
}

func (ib *ItemBase) applyTransformToChildrenAndPivot(m math32.Matrix2) {
	if ib.pivot.Valid {
		ib.pivot.Set(m.MulPoint(ib.pivot.Value))
	}
	for _, c := range ib.children {
		c.applyTransform(m, false)
	}
}

// transform related

// HasTransform returns whether a local transform is set on this item.
func (ib *ItemBase) HasTransform() bool { return ib.transform.Valid }

// IsTransformed returns whether any transform in the document
// hierarchy affects this item.
func (ib *ItemBase) IsTransformed() bool {
	if ib.transform.Valid {
		return true
	}
	if ib.parent != nil {
		return ib.parent.AsItem().IsTransformed()
	}
	return false
}

// Transform returns the local transform, or identity when absent.
func (ib *ItemBase) Transform() math32.Matrix2 {
	return ib.transform.Or(math32.Identity2())
}

// AbsoluteTransform returns the product of the ancestor transforms and
// the local transform, cached until invalidated.
func (ib *ItemBase) AbsoluteTransform() math32.Matrix2 {
	return ib.this.absoluteTransform()
}

func (ib *ItemBase) absoluteTransform() math32.Matrix2 {
	if !ib.absTransform.Valid {
		switch {
		case ib.parent != nil && ib.transform.Valid:
			ib.absTransform.Set(ib.parent.absoluteTransform().Mul(ib.transform.Value))
		case ib.parent != nil:
			ib.absTransform.Set(ib.parent.absoluteTransform())
		default:
			ib.absTransform.Set(ib.Transform())
		}
	}
	return ib.absTransform.Value
}

// SetTransform replaces the local transform.
func (ib *ItemBase) SetTransform(m math32.Matrix2) {
	ib.transform.Set(m)
	ib.decomposed.Clear()
	ib.this.transformChanged(false)
}

// RemoveTransform removes the local transform (reverting to identity).
func (ib *ItemBase) RemoveTransform() {
	ib.transform.Clear()
	ib.decomposed.Clear()
	ib.this.transformChanged(false)
}

func (ib *ItemBase) transformChanged(fromParent bool) {
	ib.markBoundsDirty(!fromParent)
	ib.absTransform.Clear()
	ib.absDecomposed.Clear()
	for _, s := range ib.symbols {
		s.markAbsoluteTransformDirty()
	}
	for _, c := range ib.children {
		c.transformChanged(true)
	}
}

func (ib *ItemBase) markAbsoluteTransformDirty() {
	ib.absTransform.Clear()
	ib.absDecomposed.Clear()
	for _, c := range ib.children {
		c.AsItem().markAbsoluteTransformDirty()
	}
}

// mulTransform pre-multiplies the local transform with m.
func (ib *ItemBase) mulTransform(m math32.Matrix2) {
	ib.SetTransform(m.Mul(ib.Transform()))
}

// Translate translates the local transform by the given offset.
func (ib *ItemBase) Translate(offset math32.Vector2) {
	ib.mulTransform(math32.Translate2D(offset.X, offset.Y))
}

// Scale scales the local transform by the given factors about the pivot.
func (ib *ItemBase) Scale(sx, sy float32) {
	pv, _ := ib.Pivot()
	ib.ScaleAbout(sx, sy, pv)
}

// ScaleAbout scales the local transform by the given factors about the
// given center point.
func (ib *ItemBase) ScaleAbout(sx, sy float32, center math32.Vector2) {
	ib.mulTransform(math32.Identity2().ScaleAbout(sx, sy, center.X, center.Y))
}

// Rotate rotates the local transform by the given angle in radians
// about the pivot.
func (ib *ItemBase) Rotate(radians float32) {
	pv, _ := ib.Pivot()
	ib.RotateAbout(radians, pv)
}

// RotateAbout rotates the local transform by the given angle in
// radians about the given center point.
func (ib *ItemBase) RotateAbout(radians float32, center math32.Vector2) {
	ib.mulTransform(math32.Identity2().RotateAbout(radians, center.X, center.Y))
}

// Skew skews the local transform by the given angles in radians about
// the pivot.
func (ib *ItemBase) Skew(angles math32.Vector2) {
	pv, _ := ib.Pivot()
	ib.SkewAbout(angles, pv)
}

// SkewAbout skews the local transform by the given angles in radians
// about the given center point.
func (ib *ItemBase) SkewAbout(angles math32.Vector2, center math32.Vector2) {
	ib.mulTransform(math32.Identity2().SkewAbout(angles.X, angles.Y, center.X, center.Y))
}

// ApplyTransform bakes the given transform into the item geometry
// (segments of paths) instead of storing it on the item.
func (ib *ItemBase) ApplyTransform(m math32.Matrix2) {
	ib.this.applyTransform(m, true)
}

// ApplyTranslate bakes a translation into the item geometry.
func (ib *ItemBase) ApplyTranslate(offset math32.Vector2) {
	ib.ApplyTransform(math32.Translate2D(offset.X, offset.Y))
}

func (ib *ItemBase) decomposeIfNeeded(dec *option.Option[Decomposed], m math32.Matrix2) Decomposed {
	if !dec.Valid {
		tx, ty, phi, sx, sy, _ := m.Decompose()
		dec.Set(Decomposed{
			Rotation:    phi,
			Scaling:     math32.Vec2(sx, sy),
			Translation: math32.Vec2(tx, ty),
		})
	}
	return dec.Value
}

// Rotation returns the rotation component of the local transform.
func (ib *ItemBase) Rotation() float32 {
	return ib.decomposeIfNeeded(&ib.decomposed, ib.Transform()).Rotation
}

// Scaling returns the scaling component of the local transform.
func (ib *ItemBase) Scaling() math32.Vector2 {
	return ib.decomposeIfNeeded(&ib.decomposed, ib.Transform()).Scaling
}

// Translation returns the translation component of the local transform.
func (ib *ItemBase) Translation() math32.Vector2 {
	x, y := ib.Transform().Pos()
	return math32.Vec2(x, y)
}

// AbsoluteRotation returns the rotation component of the absolute transform.
func (ib *ItemBase) AbsoluteRotation() float32 {
	return ib.decomposeIfNeeded(&ib.absDecomposed, ib.AbsoluteTransform()).Rotation
}

// AbsoluteScaling returns the scaling component of the absolute transform.
func (ib *ItemBase) AbsoluteScaling() math32.Vector2 {
	return ib.decomposeIfNeeded(&ib.absDecomposed, ib.AbsoluteTransform()).Scaling
}

// AbsoluteTranslation returns the translation component of the
// absolute transform.
func (ib *ItemBase) AbsoluteTranslation() math32.Vector2 {
	x, y := ib.AbsoluteTransform().Pos()
	return math32.Vec2(x, y)
}

// position / pivot

// Position returns the center of the fill bounds. The second return is
// false when the item has no bounds (e.g. an empty path).
func (ib *ItemBase) Position() (math32.Vector2, bool) {
	b := ib.Bounds()
	if b == noBounds || b.IsEmpty() {
		return math32.Vector2{}, false
	}
	return b.Center(), true
}

// SetPosition translates the item so that its pivot lands on the given
// position.
func (ib *ItemBase) SetPosition(pos math32.Vector2) {
	pv, ok := ib.Pivot()
	if !ok {
		return
	}
	ib.Translate(pos.Sub(pv))
}

// Pivot returns the explicit pivot if set, or the position otherwise.
// The second return is false when neither is available.
func (ib *ItemBase) Pivot() (math32.Vector2, bool) {
	if ib.pivot.Valid {
		return ib.pivot.Value, true
	}
	return ib.Position()
}

// HasPivot returns whether an explicit pivot is set.
func (ib *ItemBase) HasPivot() bool { return ib.pivot.Valid }

// SetPivot sets an explicit pivot point.
func (ib *ItemBase) SetPivot(p math32.Vector2) { ib.pivot.Set(p) }

// RemovePivot removes the explicit pivot point.
func (ib *ItemBase) RemovePivot() { ib.pivot.Clear() }

// bounds

var noBounds = math32.Box2{
	Min: math32.Vec2(math32.Infinity, math32.Infinity),
	Max: math32.Vec2(math32.Infinity, math32.Infinity),
}

// Bounds returns the fill bounds of the item, cached until geometry or
// transforms change. An item without geometry returns the all-infinity
// no-bounds sentinel.
func (ib *ItemBase) Bounds() math32.Box2 {
	if !ib.fillBounds.Valid {
		if b, ok := ib.this.computeBounds(nil, BoundsFill); ok {
			ib.fillBounds.Set(b)
		} else {
			ib.fillBounds.Set(noBounds)
		}
	}
	return ib.fillBounds.Value
}

// StrokeBounds returns the stroke bounds of the item, folding in caps,
// joins, and the miter limit.
func (ib *ItemBase) StrokeBounds() math32.Box2 {
	if !ib.strokeBounds.Valid {
		if b, ok := ib.this.computeBounds(nil, BoundsStroke); ok {
			ib.strokeBounds.Set(b)
		} else {
			ib.strokeBounds.Set(noBounds)
		}
	}
	return ib.strokeBounds.Value
}

// HandleBounds returns the stroke bounds extended by all segment
// handle positions.
func (ib *ItemBase) HandleBounds() math32.Box2 {
	if !ib.handleBounds.Valid {
		if b, ok := ib.this.computeBounds(nil, BoundsHandle); ok {
			ib.handleBounds.Set(b)
		} else {
			ib.handleBounds.Set(noBounds)
		}
	}
	return ib.handleBounds.Value
}

func (ib *ItemBase) markBoundsDirty(notifyParent bool) {
	ib.fillBounds.Clear()
	ib.strokeBounds.Clear()
	ib.handleBounds.Clear()
	if notifyParent && ib.parent != nil {
		ib.parent.AsItem().markBoundsDirty(true)
	}
}

func (ib *ItemBase) markSymbolsDirty() {
	for _, s := range ib.symbols {
		s.markBoundsDirty(true)
	}
}

// mergeWithChildrenBounds merges the given bounds with the bounds of
// all children (optionally skipping the first, for clip masks).
func (ib *ItemBase) mergeWithChildrenBounds(bounds math32.Box2, haveBounds bool, tr *math32.Matrix2, kind BoundsKinds, skipFirstChild bool) (math32.Box2, bool) {
	kids := ib.children
	if skipFirstChild && len(kids) > 0 {
		kids = kids[1:]
	}
	for _, c := range kids {
		var cb math32.Box2
		var ok bool
		if tr != nil {
			// a custom transform was passed along; extend it by the
			// child's local transform
			m := tr.Mul(c.AsItem().Transform())
			cb, ok = c.computeBounds(&m, kind)
		} else {
			cb, ok = c.computeBounds(nil, kind)
		}
		if !ok {
			continue
		}
		if haveBounds {
			bounds.ExpandByBox(cb)
		} else {
			bounds = cb
			haveBounds = true
		}
	}
	return bounds, haveBounds
}

// style resolution

// resolveStyle resolves a style property by walking up the parent
// chain to the first present local value, caching the result.
func resolveStyle[T any](ib *ItemBase, local, cache func(*ItemBase) *option.Option[T], def T) T {
	c := cache(ib)
	if c.Valid {
		return c.Value
	}
	var v T
	switch {
	case local(ib).Valid:
		v = local(ib).Value
	case ib.parent != nil:
		v = resolveStyle(ib.parent.AsItem(), local, cache, def)
	default:
		v = def
	}
	c.Set(v)
	return v
}

// setStyle stores a local style value and clears the corresponding
// resolved cache on the item and all descendants, so that queries
// re-inherit.
func setStyle[T any](ib *ItemBase, local, cache func(*ItemBase) *option.Option[T], v T) {
	local(ib).Set(v)
	clearResolved(ib, cache)
}

func clearResolved[T any](ib *ItemBase, cache func(*ItemBase) *option.Option[T]) {
	cache(ib).Clear()
	for _, c := range ib.children {
		clearResolved(c.AsItem(), cache)
	}
}

func fillAcc(ib *ItemBase) *option.Option[Paint]          { return &ib.fill }
func rFillAcc(ib *ItemBase) *option.Option[Paint]         { return &ib.rFill }
func strokeAcc(ib *ItemBase) *option.Option[Paint]        { return &ib.stroke }
func rStrokeAcc(ib *ItemBase) *option.Option[Paint]       { return &ib.rStroke }
func strokeWidthAcc(ib *ItemBase) *option.Option[float32] { return &ib.strokeWidth }
func rStrokeWidthAcc(ib *ItemBase) *option.Option[float32] {
	return &ib.rStrokeWidth
}
func strokeJoinAcc(ib *ItemBase) *option.Option[StrokeJoins] { return &ib.strokeJoin }
func rStrokeJoinAcc(ib *ItemBase) *option.Option[StrokeJoins] {
	return &ib.rStrokeJoin
}
func strokeCapAcc(ib *ItemBase) *option.Option[StrokeCaps]  { return &ib.strokeCap }
func rStrokeCapAcc(ib *ItemBase) *option.Option[StrokeCaps] { return &ib.rStrokeCap }
func scaleStrokeAcc(ib *ItemBase) *option.Option[bool]      { return &ib.scaleStroke }
func rScaleStrokeAcc(ib *ItemBase) *option.Option[bool]     { return &ib.rScaleStroke }
func miterLimitAcc(ib *ItemBase) *option.Option[float32]    { return &ib.miterLimit }
func rMiterLimitAcc(ib *ItemBase) *option.Option[float32]   { return &ib.rMiterLimit }
func dashArrayAcc(ib *ItemBase) *option.Option[[]float32]   { return &ib.dashArray }
func rDashArrayAcc(ib *ItemBase) *option.Option[[]float32]  { return &ib.rDashArray }
func dashOffsetAcc(ib *ItemBase) *option.Option[float32]    { return &ib.dashOffset }
func rDashOffsetAcc(ib *ItemBase) *option.Option[float32]   { return &ib.rDashOffset }
func windingRuleAcc(ib *ItemBase) *option.Option[WindingRules] {
	return &ib.windingRule
}
func rWindingRuleAcc(ib *ItemBase) *option.Option[WindingRules] {
	return &ib.rWindingRule
}

// Fill returns the effective fill paint, inheriting from the parent
// chain; the default is no paint.
func (ib *ItemBase) Fill() Paint {
	return resolveStyle(ib, fillAcc, rFillAcc, NoPaint())
}

// HasFill returns whether a local fill override is present on this item.
func (ib *ItemBase) HasFill() bool { return ib.fill.Valid }

// SetFill sets the fill to a solid color.
func (ib *ItemBase) SetFill(c ColorRGBA) {
	setStyle(ib, fillAcc, rFillAcc, SolidColor(c))
	ib.markFillDirty()
}

// SetFillPaint sets the fill to the given paint (color or gradient).
func (ib *ItemBase) SetFillPaint(p Paint) {
	setStyle(ib, fillAcc, rFillAcc, p)
	ib.markFillDirty()
}

// SetFillGradient sets the fill to the given shared gradient.
func (ib *ItemBase) SetFillGradient(g *Gradient) {
	ib.SetFillPaint(GradientPaint(g))
}

// RemoveFill sets the local fill to an explicit no-paint, which still
// shadows any inherited fill.
func (ib *ItemBase) RemoveFill() {
	setStyle(ib, fillAcc, rFillAcc, NoPaint())
	ib.markFillDirty()
}

func (ib *ItemBase) markFillDirty() {
	ib.fillBounds.Clear()
	ib.markSymbolsDirty()
}

// Stroke returns the effective stroke paint, inheriting from the
// parent chain; the default is no paint.
func (ib *ItemBase) Stroke() Paint {
	return resolveStyle(ib, strokeAcc, rStrokeAcc, NoPaint())
}

// HasStroke returns whether a local stroke override is present on this item.
func (ib *ItemBase) HasStroke() bool { return ib.stroke.Valid }

// SetStroke sets the stroke to a solid color.
func (ib *ItemBase) SetStroke(c ColorRGBA) {
	setStyle(ib, strokeAcc, rStrokeAcc, SolidColor(c))
	ib.markStrokeDirty()
}

// SetStrokePaint sets the stroke to the given paint (color or gradient).
func (ib *ItemBase) SetStrokePaint(p Paint) {
	setStyle(ib, strokeAcc, rStrokeAcc, p)
	ib.markStrokeDirty()
}

// SetStrokeGradient sets the stroke to the given shared gradient.
func (ib *ItemBase) SetStrokeGradient(g *Gradient) {
	ib.SetStrokePaint(GradientPaint(g))
}

// RemoveStroke sets the local stroke to an explicit no-paint, which
// still shadows any inherited stroke.
func (ib *ItemBase) RemoveStroke() {
	setStyle(ib, strokeAcc, rStrokeAcc, NoPaint())
	ib.markStrokeDirty()
}

func (ib *ItemBase) markStrokeDirty() {
	ib.strokeBounds.Clear()
	ib.handleBounds.Clear()
	ib.markSymbolsDirty()
}

// StrokeWidth returns the effective stroke width; the default is 1.
func (ib *ItemBase) StrokeWidth() float32 {
	return resolveStyle(ib, strokeWidthAcc, rStrokeWidthAcc, 1)
}

// HasStrokeWidth returns whether a local stroke width is present.
func (ib *ItemBase) HasStrokeWidth() bool { return ib.strokeWidth.Valid }

// SetStrokeWidth sets the local stroke width.
func (ib *ItemBase) SetStrokeWidth(w float32) {
	setStyle(ib, strokeWidthAcc, rStrokeWidthAcc, w)
	ib.markStrokeDirty()
}

// StrokeJoin returns the effective stroke join; the default is
// [JoinBevel].
func (ib *ItemBase) StrokeJoin() StrokeJoins {
	return resolveStyle(ib, strokeJoinAcc, rStrokeJoinAcc, JoinBevel)
}

// HasStrokeJoin returns whether a local stroke join is present.
func (ib *ItemBase) HasStrokeJoin() bool { return ib.strokeJoin.Valid }

// SetStrokeJoin sets the local stroke join.
func (ib *ItemBase) SetStrokeJoin(j StrokeJoins) {
	setStyle(ib, strokeJoinAcc, rStrokeJoinAcc, j)
	ib.markStrokeDirty()
}

// StrokeCap returns the effective stroke cap; the default is [CapButt].
func (ib *ItemBase) StrokeCap() StrokeCaps {
	return resolveStyle(ib, strokeCapAcc, rStrokeCapAcc, CapButt)
}

// HasStrokeCap returns whether a local stroke cap is present.
func (ib *ItemBase) HasStrokeCap() bool { return ib.strokeCap.Valid }

// SetStrokeCap sets the local stroke cap.
func (ib *ItemBase) SetStrokeCap(c StrokeCaps) {
	setStyle(ib, strokeCapAcc, rStrokeCapAcc, c)
	ib.markStrokeDirty()
}

// ScaleStroke returns whether the stroke scales with the item
// transform; the default is true.
func (ib *ItemBase) ScaleStroke() bool {
	return resolveStyle(ib, scaleStrokeAcc, rScaleStrokeAcc, true)
}

// HasScaleStroke returns whether a local scale-stroke setting is present.
func (ib *ItemBase) HasScaleStroke() bool { return ib.scaleStroke.Valid }

// SetScaleStroke sets whether the stroke scales with the item transform.
func (ib *ItemBase) SetScaleStroke(b bool) {
	setStyle(ib, scaleStrokeAcc, rScaleStrokeAcc, b)
	ib.markStrokeDirty()
}

// MiterLimit returns the effective miter limit; the default is 4.
func (ib *ItemBase) MiterLimit() float32 {
	return resolveStyle(ib, miterLimitAcc, rMiterLimitAcc, 4)
}

// HasMiterLimit returns whether a local miter limit is present.
func (ib *ItemBase) HasMiterLimit() bool { return ib.miterLimit.Valid }

// SetMiterLimit sets the local miter limit.
func (ib *ItemBase) SetMiterLimit(l float32) {
	setStyle(ib, miterLimitAcc, rMiterLimitAcc, l)
	ib.markStrokeDirty()
}

// DashArray returns the effective dash array; the default is empty.
func (ib *ItemBase) DashArray() []float32 {
	return resolveStyle(ib, dashArrayAcc, rDashArrayAcc, nil)
}

// HasDashArray returns whether a local dash array is present.
func (ib *ItemBase) HasDashArray() bool { return ib.dashArray.Valid }

// SetDashArray sets the local dash array.
func (ib *ItemBase) SetDashArray(arr []float32) {
	setStyle(ib, dashArrayAcc, rDashArrayAcc, arr)
}

// DashOffset returns the effective dash offset; the default is 0.
func (ib *ItemBase) DashOffset() float32 {
	return resolveStyle(ib, dashOffsetAcc, rDashOffsetAcc, 0)
}

// HasDashOffset returns whether a local dash offset is present.
func (ib *ItemBase) HasDashOffset() bool { return ib.dashOffset.Valid }

// SetDashOffset sets the local dash offset.
func (ib *ItemBase) SetDashOffset(off float32) {
	setStyle(ib, dashOffsetAcc, rDashOffsetAcc, off)
}

// WindingRule returns the effective winding rule; the default is
// [EvenOdd].
func (ib *ItemBase) WindingRule() WindingRules {
	return resolveStyle(ib, windingRuleAcc, rWindingRuleAcc, EvenOdd)
}

// HasWindingRule returns whether a local winding rule is present.
func (ib *ItemBase) HasWindingRule() bool { return ib.windingRule.Valid }

// SetWindingRule sets the local winding rule.
func (ib *ItemBase) SetWindingRule(r WindingRules) {
	setStyle(ib, windingRuleAcc, rWindingRuleAcc, r)
}

// cloneItemTo copies the shared item state onto the clone and deep
// copies the children, then inserts the clone immediately above the
// source.
func (ib *ItemBase) cloneItemTo(dst Item) {
	db := dst.AsItem()
	db.visible = ib.visible
	db.transform = ib.transform
	db.absTransform = ib.absTransform
	db.pivot = ib.pivot

	db.fill = ib.fill
	db.stroke = ib.stroke
	db.strokeWidth = ib.strokeWidth
	db.strokeJoin = ib.strokeJoin
	db.strokeCap = ib.strokeCap
	db.scaleStroke = ib.scaleStroke
	db.miterLimit = ib.miterLimit
	db.dashArray = ib.dashArray
	db.dashOffset = ib.dashOffset
	db.windingRule = ib.windingRule

	db.fillBounds = ib.fillBounds
	db.strokeBounds = ib.strokeBounds
	db.handleBounds = ib.handleBounds

	// snapshot the child list; cloning inserts the copies next to the
	// originals before they are moved over
	kids := append([]Item(nil), ib.children...)
	for _, c := range kids {
		db.AddChild(c.Clone())
	}

	dst.AsItem().InsertAbove(ib.this)
}
