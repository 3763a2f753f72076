// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix2 is a 2×3 affine transform matrix for 2D points and vectors.
// The column-vector convention is used: a point p transforms as
//
//	x' = XX*x + XY*y + X0
//	y' = YX*x + YY*y + Y0
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns a new identity [Matrix2].
func Identity2() Matrix2 {
	return Matrix2{
		XX: 1,
		YY: 1,
	}
}

// Translate2D returns a new [Matrix2] that translates by the given offsets.
func Translate2D(x, y float32) Matrix2 {
	return Matrix2{1, 0, 0, 1, x, y}
}

// Scale2D returns a new [Matrix2] that scales by the given factors.
func Scale2D(x, y float32) Matrix2 {
	return Matrix2{x, 0, 0, y, 0, 0}
}

// Rotate2D returns a new [Matrix2] that rotates by the given angle in
// radians, counter-clockwise in a y-up coordinate system.
func Rotate2D(angle float32) Matrix2 {
	c := Cos(angle)
	s := Sin(angle)
	return Matrix2{c, s, -s, c, 0, 0}
}

// Shear2D returns a new [Matrix2] that shears by the given x and y factors.
func Shear2D(x, y float32) Matrix2 {
	return Matrix2{1, y, x, 1, 0, 0}
}

// Skew2D returns a new [Matrix2] that skews by the given x and y angles
// in radians.
func Skew2D(x, y float32) Matrix2 {
	return Shear2D(Tan(x), Tan(y))
}

// Mul returns the matrix product a * b, i.e. the transform that applies
// b first and then a.
func (a Matrix2) Mul(b Matrix2) Matrix2 {
	return Matrix2{
		XX: a.XX*b.XX + a.XY*b.YX,
		YX: a.YX*b.XX + a.YY*b.YX,
		XY: a.XX*b.XY + a.XY*b.YY,
		YY: a.YX*b.XY + a.YY*b.YY,
		X0: a.XX*b.X0 + a.XY*b.Y0 + a.X0,
		Y0: a.YX*b.X0 + a.YY*b.Y0 + a.Y0,
	}
}

// SetMul sets the matrix to the product a * b.
func (a *Matrix2) SetMul(b Matrix2) {
	*a = a.Mul(b)
}

// MulPoint returns the given point transformed by this matrix,
// including the translation component.
func (a Matrix2) MulPoint(v Vector2) Vector2 {
	return Vec2(a.XX*v.X+a.XY*v.Y+a.X0, a.YX*v.X+a.YY*v.Y+a.Y0)
}

// MulVector returns the given vector transformed by this matrix,
// excluding the translation component.
func (a Matrix2) MulVector(v Vector2) Vector2 {
	return Vec2(a.XX*v.X+a.XY*v.Y, a.YX*v.X+a.YY*v.Y)
}

// Translate returns the matrix translated by the given offsets
// (applied after the existing transform).
func (a Matrix2) Translate(x, y float32) Matrix2 {
	return a.Mul(Translate2D(x, y))
}

// Scale returns the matrix scaled by the given factors
// (applied after the existing transform).
func (a Matrix2) Scale(x, y float32) Matrix2 {
	return a.Mul(Scale2D(x, y))
}

// ScaleAbout returns the matrix scaled by the given factors about the
// given center point.
func (a Matrix2) ScaleAbout(sx, sy, x, y float32) Matrix2 {
	return a.Mul(Translate2D(x, y).Scale(sx, sy).Translate(-x, -y))
}

// Rotate returns the matrix rotated by the given angle in radians
// (applied after the existing transform).
func (a Matrix2) Rotate(angle float32) Matrix2 {
	return a.Mul(Rotate2D(angle))
}

// RotateAbout returns the matrix rotated by the given angle in radians
// about the given center point.
func (a Matrix2) RotateAbout(angle, x, y float32) Matrix2 {
	return a.Mul(Translate2D(x, y).Rotate(angle).Translate(-x, -y))
}

// Shear returns the matrix sheared by the given factors
// (applied after the existing transform).
func (a Matrix2) Shear(x, y float32) Matrix2 {
	return a.Mul(Shear2D(x, y))
}

// Skew returns the matrix skewed by the given angles in radians
// (applied after the existing transform).
func (a Matrix2) Skew(x, y float32) Matrix2 {
	return a.Mul(Skew2D(x, y))
}

// SkewAbout returns the matrix skewed by the given angles in radians
// about the given center point.
func (a Matrix2) SkewAbout(x, y, cx, cy float32) Matrix2 {
	return a.Mul(Translate2D(cx, cy).Skew(x, y).Translate(-cx, -cy))
}

// Det returns the determinant of the linear part of the matrix.
func (a Matrix2) Det() float32 {
	return a.XX*a.YY - a.XY*a.YX
}

// Inverse returns the inverse of the matrix. A singular matrix returns
// the identity.
func (a Matrix2) Inverse() Matrix2 {
	det := a.Det()
	if det == 0 {
		return Identity2()
	}
	id := 1 / det
	return Matrix2{
		XX: a.YY * id,
		YX: -a.YX * id,
		XY: -a.XY * id,
		YY: a.XX * id,
		X0: (a.XY*a.Y0 - a.YY*a.X0) * id,
		Y0: (a.YX*a.X0 - a.XX*a.Y0) * id,
	}
}

// Transpose returns the matrix with its linear part transposed and the
// translation kept.
func (a Matrix2) Transpose() Matrix2 {
	a.YX, a.XY = a.XY, a.YX
	return a
}

// Pos returns the translation components of the matrix.
func (a Matrix2) Pos() (float32, float32) {
	return a.X0, a.Y0
}

// IsIdentity returns whether the matrix is the identity.
func (a Matrix2) IsIdentity() bool {
	return a == Identity2()
}

// ExtractRot extracts the rotation component of the matrix in radians.
func (a Matrix2) ExtractRot() float32 {
	return Atan2(a.YX, a.XX)
}

// ExtractScale extracts the x and y scale factors of the matrix.
func (a Matrix2) ExtractScale() (scx, scy float32) {
	scx = Sqrt(a.XX*a.XX + a.YX*a.YX)
	det := a.Det()
	if scx != 0 {
		scy = det / scx
	}
	return
}

// Decompose extracts the translation, rotation, scaling, and skew
// (rotation of the scale axes) components of the matrix, following the
// order tx/ty · rot(phi) · scale(sx, sy) · rot(theta).
func (a Matrix2) Decompose() (tx, ty, phi, sx, sy, theta float32) {
	tx = a.X0
	ty = a.Y0

	// singular value decomposition of the 2x2 linear part
	e := (a.XX + a.YY) / 2
	f := (a.XX - a.YY) / 2
	g := (a.YX + a.XY) / 2
	h := (a.YX - a.XY) / 2

	q := Sqrt(e*e + h*h)
	r := Sqrt(f*f + g*g)
	sx = q + r
	sy = q - r

	a1 := Atan2(g, f)
	a2 := Atan2(h, e)
	theta = (a2 - a1) / 2
	phi = (a2 + a1) / 2
	return
}
