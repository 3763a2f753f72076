// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import "errors"

// Error kinds carried by the public fallible operations. Wrap them
// with fmt.Errorf and %w; test with errors.Is.
var (
	// ErrInvalidArgument indicates geometrically impossible input,
	// such as an arc through colinear points or an elliptical arc with
	// unusable radii.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrParseFailed indicates a grammar violation in an SVG document
	// or a malformed binary file.
	ErrParseFailed = errors.New("parse failed")

	// ErrInvalidOperation indicates a renderer backend failure or an
	// unsupported item type.
	ErrInvalidOperation = errors.New("invalid operation")
)
