// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Vector2 is a 2D vector/point with X and Y components.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 returns a new [Vector2] with the given x and y components.
func Vec2(x, y float32) Vector2 {
	return Vector2{x, y}
}

// Vector2Scalar returns a new [Vector2] with all components set to the
// given scalar value.
func Vector2Scalar(s float32) Vector2 {
	return Vector2{s, s}
}

// Set sets this vector's X and Y components.
func (v *Vector2) Set(x, y float32) {
	v.X = x
	v.Y = y
}

// SetScalar sets all vector components to the same scalar value.
func (v *Vector2) SetScalar(s float32) {
	v.X = s
	v.Y = s
}

// Add adds the other given vector to this one and returns the result as a new vector.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vec2(v.X+other.X, v.Y+other.Y)
}

// AddScalar adds the given scalar to each component of this vector and
// returns the result as a new vector.
func (v Vector2) AddScalar(s float32) Vector2 {
	return Vec2(v.X+s, v.Y+s)
}

// SetAdd sets this to addition with the other vector (i.e., += or plus-equals).
func (v *Vector2) SetAdd(other Vector2) {
	v.X += other.X
	v.Y += other.Y
}

// Sub subtracts the other given vector from this one and returns the result as a new vector.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vec2(v.X-other.X, v.Y-other.Y)
}

// SubScalar subtracts the given scalar from each component of this vector and
// returns the result as a new vector.
func (v Vector2) SubScalar(s float32) Vector2 {
	return Vec2(v.X-s, v.Y-s)
}

// SetSub sets this to subtraction with the other vector (i.e., -= or minus-equals).
func (v *Vector2) SetSub(other Vector2) {
	v.X -= other.X
	v.Y -= other.Y
}

// SetAddScalar adds the scalar to each component of the vector.
func (v *Vector2) SetAddScalar(s float32) {
	v.X += s
	v.Y += s
}

// SetSubScalar subtracts the scalar from each component of the vector.
func (v *Vector2) SetSubScalar(s float32) {
	v.X -= s
	v.Y -= s
}

// Mul multiplies each component of this vector by the corresponding one of the
// other vector and returns the result as a new vector.
func (v Vector2) Mul(other Vector2) Vector2 {
	return Vec2(v.X*other.X, v.Y*other.Y)
}

// MulScalar multiplies each component of this vector by the given scalar and
// returns the result as a new vector.
func (v Vector2) MulScalar(s float32) Vector2 {
	return Vec2(v.X*s, v.Y*s)
}

// Div divides each component of this vector by the corresponding one of the
// other vector and returns the result as a new vector.
func (v Vector2) Div(other Vector2) Vector2 {
	return Vec2(v.X/other.X, v.Y/other.Y)
}

// DivScalar divides each component of this vector by the given scalar and
// returns the result as a new vector.
func (v Vector2) DivScalar(s float32) Vector2 {
	if s != 0 {
		return v.MulScalar(1 / s)
	}
	return Vector2{}
}

// Negate returns the vector with each component negated.
func (v Vector2) Negate() Vector2 {
	return Vec2(-v.X, -v.Y)
}

// Abs returns the vector with [Abs] applied to each component.
func (v Vector2) Abs() Vector2 {
	return Vec2(Abs(v.X), Abs(v.Y))
}

// Min returns a vector with the minimum components of this vector and the other.
func (v Vector2) Min(other Vector2) Vector2 {
	return Vec2(Min(v.X, other.X), Min(v.Y, other.Y))
}

// SetMin sets this vector's components to the minimum of itself and the other vector.
func (v *Vector2) SetMin(other Vector2) {
	v.X = Min(v.X, other.X)
	v.Y = Min(v.Y, other.Y)
}

// Max returns a vector with the maximum components of this vector and the other.
func (v Vector2) Max(other Vector2) Vector2 {
	return Vec2(Max(v.X, other.X), Max(v.Y, other.Y))
}

// SetMax sets this vector's components to the maximum of itself and the other vector.
func (v *Vector2) SetMax(other Vector2) {
	v.X = Max(v.X, other.X)
	v.Y = Max(v.Y, other.Y)
}

// Clamp sets this vector's components to be no less than the corresponding
// components of min and no greater than the corresponding component of max.
// Assumes min < max; if this assumption isn't met, it will not operate correctly.
func (v *Vector2) Clamp(min, max Vector2) {
	if v.X < min.X {
		v.X = min.X
	} else if v.X > max.X {
		v.X = max.X
	}
	if v.Y < min.Y {
		v.Y = min.Y
	} else if v.Y > max.Y {
		v.Y = max.Y
	}
}

// Dot returns the dot product of this vector with the other.
func (v Vector2) Dot(other Vector2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the 2D cross product (perp-dot product) of this vector
// with the other.
func (v Vector2) Cross(other Vector2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the length (magnitude) of this vector.
func (v Vector2) Length() float32 {
	return Sqrt(v.LengthSquared())
}

// LengthSquared returns the length squared of this vector.
// LengthSquared can be used to compare the lengths of vectors
// without the need to perform a square root.
func (v Vector2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normal returns this vector divided by its length (its unit vector).
// It returns the zero vector for the zero vector.
func (v Vector2) Normal() Vector2 {
	l := v.Length()
	if l > 0 {
		return v.DivScalar(l)
	}
	return v
}

// DistanceTo returns the distance between these two vectors as points.
func (v Vector2) DistanceTo(other Vector2) float32 {
	return Sqrt(v.DistanceToSquared(other))
}

// DistanceToSquared returns the squared distance between these two
// vectors as points.
func (v Vector2) DistanceToSquared(other Vector2) float32 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return dx*dx + dy*dy
}

// Lerp returns the vector that is the linear interpolation between this
// vector and the other one, with t in [0, 1] the interpolation factor.
func (v Vector2) Lerp(other Vector2, t float32) Vector2 {
	return Vec2(v.X+(other.X-v.X)*t, v.Y+(other.Y-v.Y)*t)
}

// Rot90CCW returns the vector rotated by 90 degrees counter-clockwise
// (in a y-up coordinate system).
func (v Vector2) Rot90CCW() Vector2 {
	return Vec2(-v.Y, v.X)
}

// Rot90CW returns the vector rotated by 90 degrees clockwise
// (in a y-up coordinate system).
func (v Vector2) Rot90CW() Vector2 {
	return Vec2(v.Y, -v.X)
}

// Rot returns the vector rotated by the given angle in radians about the
// given origin point.
func (v Vector2) Rot(angle float32, origin Vector2) Vector2 {
	s := Sin(angle)
	c := Cos(angle)
	d := v.Sub(origin)
	return Vec2(origin.X+d.X*c-d.Y*s, origin.Y+d.X*s+d.Y*c)
}

// Angle returns the angle in radians of this vector relative to the
// positive x axis, in (-π, π].
func (v Vector2) Angle() float32 {
	return Atan2(v.Y, v.X)
}

// AngleTo returns the signed angle in radians from this vector to the
// other, in (-π, π].
func (v Vector2) AngleTo(other Vector2) float32 {
	a := Atan2(v.Cross(other), v.Dot(other))
	return a
}

// IsClose returns whether each component of this vector is within tol of
// the corresponding component of the other vector.
func (v Vector2) IsClose(other Vector2, tol float32) bool {
	return IsClose(v.X, other.X, tol) && IsClose(v.Y, other.Y, tol)
}

// IsZero returns whether both components are exactly zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Collinear returns whether this vector and the other are collinear
// (parallel up to sign), within the given tolerance.
func (v Vector2) Collinear(other Vector2, tol float32) bool {
	return Abs(v.Cross(other)) <= tol*v.Length()*other.Length()
}

// Orthogonal returns whether this vector and the other are orthogonal,
// within the given tolerance.
func (v Vector2) Orthogonal(other Vector2, tol float32) bool {
	return Abs(v.Dot(other)) <= tol*v.Length()*other.Length()
}
