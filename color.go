// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import "image/color"

// ColorRGBA is a color with normalized float32 red, green, blue, and
// alpha components (not alpha-premultiplied).
type ColorRGBA struct {
	R, G, B, A float32
}

// RGBA returns a new [ColorRGBA] with the given components.
func RGBA(r, g, b, a float32) ColorRGBA {
	return ColorRGBA{r, g, b, a}
}

// ColorFromStd returns a [ColorRGBA] from a standard library color.
func ColorFromStd(c color.Color) ColorRGBA {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ColorRGBA{
		float32(nc.R) / 255,
		float32(nc.G) / 255,
		float32(nc.B) / 255,
		float32(nc.A) / 255,
	}
}

// AsStd returns the color as a standard library non-premultiplied color.
func (c ColorRGBA) AsStd() color.NRGBA {
	return color.NRGBA{
		clampByte(c.R),
		clampByte(c.G),
		clampByte(c.B),
		clampByte(c.A),
	}
}

func clampByte(v float32) uint8 {
	x := v * 255
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x + 0.5)
}
