// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/base/option"
	"github.com/tobiasvend/paper/math32"
)

// PaintKinds are the kinds of paint an item can carry.
type PaintKinds int32

const (
	// PaintNone paints nothing. An explicitly set PaintNone still
	// shadows an inherited paint.
	PaintNone PaintKinds = iota

	// PaintColor is a solid [ColorRGBA].
	PaintColor

	// PaintGradient is a reference-shared [Gradient].
	PaintGradient
)

// Paint is a tagged union of no paint, a solid color, or a shared
// gradient reference.
type Paint struct {
	Kind     PaintKinds
	Color    ColorRGBA
	Gradient *Gradient
}

// NoPaint returns a [Paint] that paints nothing.
func NoPaint() Paint {
	return Paint{}
}

// SolidColor returns a [Paint] with the given solid color.
func SolidColor(c ColorRGBA) Paint {
	return Paint{Kind: PaintColor, Color: c}
}

// GradientPaint returns a [Paint] referencing the given gradient.
func GradientPaint(g *Gradient) Paint {
	return Paint{Kind: PaintGradient, Gradient: g}
}

// IsNone returns whether the paint paints nothing.
func (p Paint) IsNone() bool {
	return p.Kind == PaintNone
}

// ColorStop is a single color stop of a gradient, at the normalized
// offset in [0, 1] along the gradient.
type ColorStop struct {
	Color  ColorRGBA
	Offset float32
}

// Gradient is a linear or radial color gradient shared by reference
// between paints. Gradients are created through the owning
// [Document]'s NewLinearGradient and NewRadialGradient so that
// exporters can intern shared instances.
type Gradient struct {
	typ         GradientTypes
	origin      math32.Vector2
	destination math32.Vector2
	stops       []ColorStop

	// radial only
	focalPointOffset option.Option[math32.Vector2]
	ratio            option.Option[float32]

	// consumed by renderers/exporters
	stopsDirty     bool
	positionsDirty bool
}

// Type returns the gradient geometry type.
func (g *Gradient) Type() GradientTypes { return g.typ }

// Origin returns the gradient origin point.
func (g *Gradient) Origin() math32.Vector2 { return g.origin }

// Destination returns the gradient destination point.
func (g *Gradient) Destination() math32.Vector2 { return g.destination }

// Stops returns the ordered color stops of the gradient.
func (g *Gradient) Stops() []ColorStop { return g.stops }

// SetOrigin sets the gradient origin point and marks positions dirty.
func (g *Gradient) SetOrigin(p math32.Vector2) {
	g.origin = p
	g.MarkPositionsDirty()
}

// SetDestination sets the gradient destination point and marks
// positions dirty.
func (g *Gradient) SetDestination(p math32.Vector2) {
	g.destination = p
	g.MarkPositionsDirty()
}

// SetOriginAndDestination sets both gradient endpoints and marks
// positions dirty.
func (g *Gradient) SetOriginAndDestination(origin, dest math32.Vector2) {
	g.origin = origin
	g.destination = dest
	g.MarkPositionsDirty()
}

// AddStop appends a color stop at the given offset in [0, 1].
func (g *Gradient) AddStop(c ColorRGBA, offset float32) {
	g.stops = append(g.stops, ColorStop{c, offset})
	g.MarkStopsDirty()
}

// FocalPointOffset returns the radial focal point offset if set.
func (g *Gradient) FocalPointOffset() (math32.Vector2, bool) {
	return g.focalPointOffset.Value, g.focalPointOffset.Valid
}

// SetFocalPointOffset sets the radial focal point offset.
func (g *Gradient) SetFocalPointOffset(p math32.Vector2) {
	g.focalPointOffset.Set(p)
	g.MarkPositionsDirty()
}

// Ratio returns the radial ratio if set.
func (g *Gradient) Ratio() (float32, bool) {
	return g.ratio.Value, g.ratio.Valid
}

// SetRatio sets the radial ratio.
func (g *Gradient) SetRatio(r float32) {
	g.ratio.Set(r)
	g.MarkPositionsDirty()
}

// MarkStopsDirty marks the stop list as changed since the last time a
// consumer cleaned it.
func (g *Gradient) MarkStopsDirty() { g.stopsDirty = true }

// MarkPositionsDirty marks the gradient geometry as changed since the
// last time a consumer cleaned it.
func (g *Gradient) MarkPositionsDirty() { g.positionsDirty = true }

// CleanDirtyStops returns whether the stops were dirty and resets the flag.
func (g *Gradient) CleanDirtyStops() bool {
	d := g.stopsDirty
	g.stopsDirty = false
	return d
}

// CleanDirtyPositions returns whether the positions were dirty and
// resets the flag.
func (g *Gradient) CleanDirtyPositions() bool {
	d := g.positionsDirty
	g.positionsDirty = false
	return d
}
