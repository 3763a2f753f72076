// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paper provides a 2D vector graphics scene model and geometry
// kernel: a [Document] holds a hierarchical tree of drawable items
// (groups, paths, symbols), each [Path] being a sequence of cubic
// Bézier segments supporting construction, transformation, hit
// testing, intersections, length and bounds computation, flattening,
// fitting, and slicing.
//
// Style properties are optional per item and inherit from the parent
// chain; transforms compose down the tree with cached absolute
// transforms. Derived data (curve beziers, lengths, bounds, monotone
// decompositions) is computed lazily and invalidated by exactly the
// mutations that affect it.
//
// Rendering backends implement [Renderer] and receive the document
// traversal through [Draw]. Serialization lives in the svg and binfmt
// subpackages.
package paper
