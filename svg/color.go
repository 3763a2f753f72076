// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/tobiasvend/paper"
)

// ParseColor parses an SVG color value: #rgb, #rrggbb, rgb(r, g, b)
// with or without percent signs, or a named SVG color. The alpha is
// always 1; opacity comes through the separate -opacity attributes.
func ParseColor(s string) (paper.ColorRGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return paper.ColorRGBA{}, fmt.Errorf("%w: empty color", paper.ErrParseFailed)

	case s[0] == '#':
		return parseHexColor(s[1:])

	case strings.HasPrefix(s, "rgb"):
		open := strings.IndexByte(s, '(')
		close := strings.IndexByte(s, ')')
		if open < 0 || close < open {
			return paper.ColorRGBA{}, fmt.Errorf("%w: malformed rgb() color %q", paper.ErrParseFailed, s)
		}
		fields := strings.FieldsFunc(s[open+1:close], func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 3 {
			return paper.ColorRGBA{}, fmt.Errorf("%w: malformed rgb() color %q", paper.ErrParseFailed, s)
		}
		var ch [3]float32
		for i, f := range fields {
			percent := strings.HasSuffix(f, "%")
			f = strings.TrimSuffix(f, "%")
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return paper.ColorRGBA{}, fmt.Errorf("%w: malformed rgb() channel %q", paper.ErrParseFailed, f)
			}
			if percent {
				ch[i] = float32(v) / 100
			} else {
				ch[i] = float32(v) / 255
			}
		}
		return paper.RGBA(ch[0], ch[1], ch[2], 1), nil

	default:
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return paper.ColorFromStd(c), nil
		}
		return paper.ColorRGBA{}, fmt.Errorf("%w: unknown color %q", paper.ErrParseFailed, s)
	}
}

func parseHexColor(hex string) (paper.ColorRGBA, error) {
	var r, g, b uint64
	var err error
	switch len(hex) {
	case 3:
		r, err = strconv.ParseUint(strings.Repeat(hex[0:1], 2), 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(strings.Repeat(hex[1:2], 2), 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(strings.Repeat(hex[2:3], 2), 16, 8)
		}
	case 6:
		r, err = strconv.ParseUint(hex[0:2], 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(hex[2:4], 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(hex[4:6], 16, 8)
		}
	default:
		err = fmt.Errorf("bad length %d", len(hex))
	}
	if err != nil {
		return paper.ColorRGBA{}, fmt.Errorf("%w: malformed hex color #%s", paper.ErrParseFailed, hex)
	}
	return paper.RGBA(float32(r)/255, float32(g)/255, float32(b)/255, 1), nil
}

// colorToHex formats the color as a #rrggbb hex string, dropping alpha
// (which is emitted through the -opacity attributes).
func colorToHex(c paper.ColorRGBA) string {
	std := c.AsStd()
	return fmt.Sprintf("#%02x%02x%02x", std.R, std.G, std.B)
}
