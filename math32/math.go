// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 provides float32 2D vector, matrix, bounding box, and
// cubic Bézier types for the scene kernel, along with float32 versions
// of the standard math functions, backed by chewxy/math32.
package math32

import (
	"math"

	"github.com/chewxy/math32"
)

// Mathematical constants.
const (
	Pi = math.Pi

	DegToRadFactor = Pi / 180
	RadToDegFactor = 180 / Pi
)

// Infinity is positive infinity.
var Infinity = float32(math.Inf(1))

// Abs returns the absolute value of x.
func Abs(x float32) float32 { return math32.Abs(x) }

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 { return math32.Sqrt(x) }

// Cbrt returns the cube root of x.
func Cbrt(x float32) float32 { return math32.Cbrt(x) }

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 { return math32.Sin(x) }

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 { return math32.Cos(x) }

// Tan returns the tangent of the radian argument x.
func Tan(x float32) float32 { return math32.Tan(x) }

// Acos returns the arccosine, in radians, of x.
func Acos(x float32) float32 { return math32.Acos(x) }

// Atan2 returns the arc tangent of y/x, using the signs of the two to
// determine the quadrant of the return value.
func Atan2(y, x float32) float32 { return math32.Atan2(y, x) }

// Hypot returns Sqrt(p*p + q*q), avoiding unnecessary overflow and underflow.
func Hypot(p, q float32) float32 { return math32.Hypot(p, q) }

// Ceil returns the least integer value greater than or equal to x.
func Ceil(x float32) float32 { return math32.Ceil(x) }

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float32) float32 { return math32.Floor(x) }

// Round returns the nearest integer, rounding half away from zero.
func Round(x float32) float32 { return math32.Round(x) }

// Mod returns the floating-point remainder of x/y.
func Mod(x, y float32) float32 { return math32.Mod(x, y) }

// Pow returns x**y, the base-x exponential of y.
func Pow(x, y float32) float32 { return math32.Pow(x, y) }

// IsNaN reports whether f is a "not-a-number" value.
func IsNaN(x float32) bool { return math32.IsNaN(x) }

// IsInf reports whether f is an infinity, according to sign.
func IsInf(x float32, sign int) bool { return math32.IsInf(x, sign) }

// NaN returns a "not-a-number" value.
func NaN() float32 { return math32.NaN() }

// Min returns the smaller of x or y.
func Min(x, y float32) float32 { return math32.Min(x, y) }

// Max returns the larger of x or y.
func Max(x, y float32) float32 { return math32.Max(x, y) }

// Clamp clamps x to the provided closed interval [a, b].
func Clamp(x, a, b float32) float32 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// DegToRad converts a number from degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * DegToRadFactor
}

// RadToDeg converts a number from radians to degrees.
func RadToDeg(radians float32) float32 {
	return radians * RadToDegFactor
}

// IsClose returns whether a and b are within tol of each other.
func IsClose(a, b, tol float32) bool {
	return Abs(a-b) <= tol
}
