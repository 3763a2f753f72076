// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import "github.com/tobiasvend/paper/math32"

// Geometric tolerances used throughout the kernel. All values are in
// float32 document units or curve time.
const (
	// Tolerance is the general geometric tolerance for construction
	// operations such as closePath endpoint merging.
	Tolerance = 1e-4

	// CurveTimeEpsilon is the tolerance on curve-time parameters.
	CurveTimeEpsilon = 4e-4

	// GeometricEpsilon is the tolerance for comparing positions and
	// arc-length offsets.
	GeometricEpsilon = 2e-4

	// WindingEpsilon is the tolerance used by the winding ray casts.
	WindingEpsilon = 2e-4

	// TrigEpsilon is the tolerance for trigonometric degeneracy checks.
	TrigEpsilon = 1e-5

	// ClippingEpsilon is the tolerance used by intersection clipping.
	ClippingEpsilon = 1e-7

	// Epsilon is the float32 machine epsilon.
	Epsilon = 1.1920929e-7
)

// Kappa is the handle length, as a fraction of the radius, that best
// approximates a quarter circle with a cubic Bézier.
// See http://www.whizkidtech.redprince.net/bezier/circle/kappa/
var Kappa = float32(4 * (math32.Sqrt(2) - 1) / 3)
