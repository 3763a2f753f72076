// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// units in which SVG coordinates may be specified
type units int32

const (
	unitUser units = iota
	unitEm
	unitEx
	unitPx
	unitPt
	unitPc
	unitCm
	unitMm
	unitIn
	unitPercent
)

// coordinate is a number together with its unit.
type coordinate struct {
	value float32
	units units
}

// parseCoordinate splits a coordinate value into number and unit.
func parseCoordinate(s string) coordinate {
	s = strings.TrimSpace(s)
	f, n := strconv.ParseFloat([]byte(s))
	c := coordinate{value: float32(f)}
	switch strings.TrimSpace(s[n:]) {
	case "em":
		c.units = unitEm
	case "ex":
		c.units = unitEx
	case "px":
		c.units = unitPx
	case "pt":
		c.units = unitPt
	case "pc":
		c.units = unitPc
	case "cm":
		c.units = unitCm
	case "mm":
		c.units = unitMm
	case "in":
		c.units = unitIn
	case "%":
		c.units = unitPercent
	default:
		c.units = unitUser
	}
	return c
}

// toPixels resolves the coordinate against the given DPI; percent
// values resolve against the given start and length.
func (c coordinate) toPixels(dpi, start, length float32) float32 {
	switch c.units {
	case unitPt:
		return c.value / 72 * dpi
	case unitPc:
		return c.value / 6 * dpi
	case unitEm, unitEx:
		return c.value / 6 * dpi
	case unitCm:
		return c.value / 2.54 * dpi
	case unitMm:
		return c.value / 25.4 * dpi
	case unitIn:
		return c.value * dpi
	case unitPercent:
		return start + c.value/100*length
	default: // px, user
		return c.value
	}
}
