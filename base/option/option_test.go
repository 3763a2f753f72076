// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOption(t *testing.T) {
	var o Option[int]
	assert.False(t, o.Valid)
	assert.Equal(t, 3, o.Or(3))

	o.Set(5)
	assert.True(t, o.Valid)
	assert.Equal(t, 5, o.Or(3))

	o.Clear()
	assert.False(t, o.Valid)
	assert.Equal(t, 0, o.Value)

	n := New("hi")
	assert.True(t, n.Valid)
	assert.Equal(t, "hi", n.Or("bye"))
}
