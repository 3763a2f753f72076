// Copyright (c) 2024, The Paper Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paper

import (
	"github.com/tobiasvend/paper/math32"
)

// Intersection is one intersection of a path with itself or with
// another path: the curve location on the receiver path and the
// position of the crossing.
type Intersection struct {
	Location CurveLocation
	Position math32.Vector2
}

// Intersections returns the self-intersections of the path, including
// all pairings of nested compound-path leaves.
func (p *Path) Intersections() []Intersection {
	var ret []Intersection
	p.intersectionsImpl(p, &ret)
	return ret
}

// IntersectionsWith returns the intersections between this path (and
// its compound children) and the other path (and its children).
func (p *Path) IntersectionsWith(other *Path) []Intersection {
	if p == other {
		return p.Intersections()
	}
	pb := p.Bounds()
	ob := other.Bounds()
	if pb == noBounds || ob == noBounds || !pb.IntersectsBox(ob) {
		return nil
	}
	var ret []Intersection
	p.intersectionsImpl(other, &ret)
	return ret
}

func (p *Path) intersectionsImpl(other *Path, out *[]Intersection) {
	if p != other {
		recursivelyIntersect(p, other, out)
		for _, c := range p.children {
			if cp, ok := c.(*Path); ok {
				recursivelyIntersect(cp, other, out)
			}
		}
		return
	}
	// for self-intersection, flatten all nested paths to avoid double
	// comparisons
	var paths []*Path
	flattenPathChildren(p, &paths)
	for i := 0; i < len(paths); i++ {
		intersectPaths(paths[i], paths[i], out)
		for j := i + 1; j < len(paths); j++ {
			intersectPaths(paths[i], paths[j], out)
		}
	}
}

func recursivelyIntersect(self, other *Path, out *[]Intersection) {
	intersectPaths(self, other, out)
	for _, c := range other.children {
		if cp, ok := c.(*Path); ok {
			recursivelyIntersect(self, cp, out)
		}
	}
}

func flattenPathChildren(p *Path, out *[]*Path) {
	*out = append(*out, p)
	for _, c := range p.children {
		if cp, ok := c.(*Path); ok {
			flattenPathChildren(cp, out)
		}
	}
}

func isAdjacentCurve(a, b, curveCount int, closed bool) bool {
	return b == a+1 || (closed && a == 0 && b == curveCount-1)
}

// intersectPaths intersects all curve pairs of the two paths (or of
// the path against itself), discarding shared-endpoint hits of
// adjacent curves and synonymous repeats.
func intersectPaths(self, other *Path, out *[]Intersection) {
	selfIntersect := self == other

	for i := 0; i < self.CurveCount(); i++ {
		a := self.Curve(i)
		jStart := 0
		if selfIntersect {
			jStart = i + 1
		}
		for j := jStart; j < other.CurveCount(); j++ {
			b := other.Curve(j)
			for _, isec := range a.Bezier().Intersections(b.Bezier()) {
				if selfIntersect && isAdjacentCurve(i, j, self.CurveCount(), self.closed) {
					// drop hits at the shared endpoint of adjacent
					// curves, including the closed-path wraparound
					if (math32.IsClose(isec.T1, 1, CurveTimeEpsilon) &&
						math32.IsClose(isec.T2, 0, CurveTimeEpsilon)) ||
						(self.closed &&
							math32.IsClose(isec.T1, 0, CurveTimeEpsilon) &&
							math32.IsClose(isec.T2, 1, CurveTimeEpsilon)) {
						continue
					}
				}
				loc := a.CurveLocationAtParameter(isec.T1)
				synonymous := false
				for _, have := range *out {
					if loc.IsSynonymous(have.Location) {
						synonymous = true
						break
					}
				}
				if !synonymous {
					*out = append(*out, Intersection{loc, isec.Position})
				}
			}
		}
	}
}
