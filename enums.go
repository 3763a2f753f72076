// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

// ItemTypes are the types of items in a document.
type ItemTypes int32

const (
	// ItemDocument is the root item owning all others.
	ItemDocument ItemTypes = iota

	// ItemGroup is a plain or clipped grouping of items.
	ItemGroup

	// ItemPath is a sequence of cubic Bézier segments.
	ItemPath

	// ItemSymbol is a reference to another item.
	ItemSymbol
)

func (it ItemTypes) String() string {
	switch it {
	case ItemDocument:
		return "Document"
	case ItemGroup:
		return "Group"
	case ItemPath:
		return "Path"
	case ItemSymbol:
		return "Symbol"
	}
	return "Unknown"
}

// StrokeCaps are the shapes at the open ends of a stroked path.
type StrokeCaps int32

const (
	// CapButt ends the stroke flat at the endpoint.
	CapButt StrokeCaps = iota

	// CapRound ends the stroke with a half circle.
	CapRound

	// CapSquare ends the stroke with a half square extending past the
	// endpoint by the stroke radius.
	CapSquare
)

func (sc StrokeCaps) String() string {
	switch sc {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return "butt"
}

// StrokeJoins are the shapes at the joints between stroked segments.
type StrokeJoins int32

const (
	// JoinBevel cuts the joint flat.
	JoinBevel StrokeJoins = iota

	// JoinMiter extends the joint to a point, limited by the miter limit.
	JoinMiter

	// JoinRound rounds the joint with a circular arc.
	JoinRound
)

func (sj StrokeJoins) String() string {
	switch sj {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	}
	return "bevel"
}

// WindingRules determine how the interior of a path is resolved from
// the winding number.
type WindingRules int32

const (
	// EvenOdd fills points with an odd winding number.
	EvenOdd WindingRules = iota

	// NonZero fills points with a non-zero winding number.
	NonZero
)

func (wr WindingRules) String() string {
	if wr == NonZero {
		return "nonzero"
	}
	return "evenodd"
}

// GradientTypes are the supported gradient geometries.
type GradientTypes int32

const (
	// GradientLinear interpolates along the origin-destination segment.
	GradientLinear GradientTypes = iota

	// GradientRadial interpolates outward from the origin circle.
	GradientRadial
)

func (gt GradientTypes) String() string {
	if gt == GradientRadial {
		return "radial"
	}
	return "linear"
}

// BoundsKinds select which bounds of an item to compute.
type BoundsKinds int32

const (
	// BoundsFill is the geometric bounds of the fill.
	BoundsFill BoundsKinds = iota

	// BoundsStroke is the fill bounds extended by the stroke with its
	// caps and joins.
	BoundsStroke

	// BoundsHandle additionally includes all segment handles.
	BoundsHandle
)

// Smoothings are the available segment-handle smoothing algorithms.
type Smoothings int32

const (
	// SmoothAsymmetric is the classic paper smoothing.
	SmoothAsymmetric Smoothings = iota

	// SmoothContinuous enforces continuity across the boundary segments.
	SmoothContinuous
)
