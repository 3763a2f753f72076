// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality of
// numbers with tolerance (in other words, near equality).
package tolassert

import (
	"github.com/stretchr/testify/assert"
)

// Equal asserts that the two numbers are within a standard tolerance
// (0.001) of each other. It returns whether they are.
func Equal[T float32 | float64](t assert.TestingT, expected T, actual T, msgAndArgs ...any) bool {
	return EqualTol(t, expected, actual, 0.001, msgAndArgs...)
}

// EqualTol asserts that the two numbers are within the given tolerance
// of each other. It returns whether they are.
func EqualTol[T float32 | float64](t assert.TestingT, expected T, actual T, tol T, msgAndArgs ...any) bool {
	if assert.ObjectsAreEqual(expected, actual) {
		return true
	}
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	if diff <= tol {
		return true
	}
	return assert.InDelta(t, expected, actual, float64(tol), msgAndArgs...)
}
