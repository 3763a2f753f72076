// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
	"github.com/tobiasvend/paper"
	"github.com/tobiasvend/paper/math32"
)

func isPathCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func skipCommaWhitespace(data []byte, i int) int {
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			i++
		default:
			return i
		}
	}
	return i
}

// parseNumbers scans numbers until the next path command, appending
// them to nums.
func parseNumbers(data []byte, i int, nums []float32) ([]float32, int, error) {
	i = skipCommaWhitespace(data, i)
	for i < len(data) && !isPathCommand(data[i]) {
		f, n := strconv.ParseFloat(data[i:])
		if n == 0 {
			return nums, i, fmt.Errorf("%w: expected number at offset %d", paper.ErrParseFailed, i)
		}
		nums = append(nums, float32(f))
		i = skipCommaWhitespace(data, i+n)
	}
	return nums, i, nil
}

// parseArcArguments scans the seven arguments of one elliptical arc
// command; the two flags are single digits that may run into the
// following number without separators.
func parseArcArguments(data []byte, i int) ([7]float32, int, bool, error) {
	var args [7]float32
	i = skipCommaWhitespace(data, i)
	if i >= len(data) || isPathCommand(data[i]) {
		return args, i, false, nil
	}
	for k := 0; k < 7; k++ {
		if k == 3 || k == 4 {
			// flag: exactly one 0 or 1 digit
			if i >= len(data) || (data[i] != '0' && data[i] != '1') {
				return args, i, false, fmt.Errorf("%w: expected arc flag at offset %d", paper.ErrParseFailed, i)
			}
			args[k] = float32(data[i] - '0')
			i = skipCommaWhitespace(data, i+1)
			continue
		}
		f, n := strconv.ParseFloat(data[i:])
		if n == 0 {
			return args, i, false, fmt.Errorf("%w: expected number at offset %d", paper.ErrParseFailed, i)
		}
		args[k] = float32(f)
		i = skipCommaWhitespace(data, i+n)
	}
	return args, i, true, nil
}

func reflect(position, around math32.Vector2) math32.Vector2 {
	return around.Add(around.Sub(position))
}

// ParsePathData parses an SVG path d-grammar string into the given
// path. Additional M/m runs become children paths, forming a compound
// path.
func ParsePathData(doc *paper.Document, p *paper.Path, data string) error {
	raw := []byte(data)
	i := skipCommaWhitespace(raw, 0)

	currentPath := p
	pathUsed := false
	seeded := false
	var sb paper.SegmentBuilder
	var nums []float32
	var last, lastHandle math32.Vector2
	var err error

	// every M run after the first becomes a child of the root path,
	// forming a flat compound path
	flush := func(closed bool) {
		if sb.Len() == 0 || (seeded && sb.Len() == 1) {
			sb.Take()
			seeded = false
			return
		}
		seeded = false
		if pathUsed {
			child := doc.CreatePath("")
			p.AddChild(child)
			currentPath = child
		}
		currentPath.SwapSegments(sb.Take(), false)
		if closed {
			// close through the path API so coincident endpoints merge
			currentPath.ClosePath()
		}
		pathUsed = true
	}

	for i < len(raw) {
		cmd := raw[i]
		i++
		if cmd != 'A' && cmd != 'a' {
			nums, i, err = parseNumbers(raw, i, nums[:0])
			if err != nil {
				return err
			}
		}

		switch cmd {
		case 'M', 'm':
			flush(false)
			relative := cmd == 'm'
			for k := 0; k+1 < len(nums); k += 2 {
				pt := math32.Vec2(nums[k], nums[k+1])
				if relative {
					last = last.Add(pt)
				} else {
					last = pt
				}
				sb.AddPoint(last)
			}
			lastHandle = last

		case 'L', 'l':
			relative := cmd == 'l'
			for k := 0; k+1 < len(nums); k += 2 {
				pt := math32.Vec2(nums[k], nums[k+1])
				if relative {
					last = last.Add(pt)
				} else {
					last = pt
				}
				sb.AddPoint(last)
			}
			lastHandle = last

		case 'H', 'h', 'V', 'v':
			relative := cmd == 'h' || cmd == 'v'
			vertical := cmd == 'V' || cmd == 'v'
			for _, n := range nums {
				if vertical {
					if relative {
						last.Y += n
					} else {
						last.Y = n
					}
				} else {
					if relative {
						last.X += n
					} else {
						last.X = n
					}
				}
				sb.AddPoint(last)
			}
			lastHandle = last

		case 'C', 'c':
			relative := cmd == 'c'
			for k := 0; k+5 < len(nums); k += 6 {
				start := last
				h1 := math32.Vec2(nums[k], nums[k+1])
				h2 := math32.Vec2(nums[k+2], nums[k+3])
				to := math32.Vec2(nums[k+4], nums[k+5])
				if relative {
					h1 = start.Add(h1)
					h2 = start.Add(h2)
					to = start.Add(to)
				}
				sb.CubicCurveTo(h1, h2, to)
				lastHandle = h2
				last = to
			}

		case 'S', 's':
			relative := cmd == 's'
			for k := 0; k+3 < len(nums); k += 4 {
				start := last
				h2 := math32.Vec2(nums[k], nums[k+1])
				to := math32.Vec2(nums[k+2], nums[k+3])
				if relative {
					h2 = start.Add(h2)
					to = start.Add(to)
				}
				sb.CubicCurveTo(reflect(lastHandle, last), h2, to)
				lastHandle = h2
				last = to
			}

		case 'Q', 'q':
			relative := cmd == 'q'
			for k := 0; k+3 < len(nums); k += 4 {
				start := last
				h := math32.Vec2(nums[k], nums[k+1])
				to := math32.Vec2(nums[k+2], nums[k+3])
				if relative {
					h = start.Add(h)
					to = start.Add(to)
				}
				sb.QuadraticCurveTo(h, to)
				lastHandle = h
				last = to
			}

		case 'T', 't':
			relative := cmd == 't'
			for k := 0; k+1 < len(nums); k += 2 {
				to := math32.Vec2(nums[k], nums[k+1])
				if relative {
					to = last.Add(to)
				}
				lastHandle = reflect(lastHandle, last)
				sb.QuadraticCurveTo(lastHandle, to)
				last = to
			}

		case 'A', 'a':
			relative := cmd == 'a'
			for {
				var args [7]float32
				var more bool
				args, i, more, err = parseArcArguments(raw, i)
				if err != nil {
					return err
				}
				if !more {
					break
				}
				to := math32.Vec2(args[5], args[6])
				if relative {
					to = last.Add(to)
				}
				if err := sb.ArcSVG(to,
					math32.Vec2(args[0], args[1]),
					math32.DegToRad(args[2]),
					args[4] != 0, args[3] != 0); err != nil {
					return err
				}
				last = to
				lastHandle = sb.Last().HandleOut
			}

		case 'Z', 'z':
			flush(true)
			if segs := currentPath.SegmentData(); len(segs) > 0 {
				last = segs[0].Position
				lastHandle = segs[len(segs)-1].HandleOut
			}
			// a drawing command after a closepath continues from the
			// subpath start
			sb.AddPoint(last)
			seeded = true

		default:
			return fmt.Errorf("%w: unknown path command %q", paper.ErrParseFailed, cmd)
		}
	}
	flush(false)
	return nil
}
