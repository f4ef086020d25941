// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"github.com/golang/geo/r2"
)

// segment is a ridge with both ends made finite. FarA and FarB mark ends
// synthesized from rays or lines rather than taken from tessellation vertices.
type segment struct {
	A, B       r2.Point
	FarA, FarB bool
}

// rayResolver turns unbounded ridges into segments whose synthetic ends lie
// far outside the bounding box.
//
// Every point of the box lies within reach+|s-center| of a site s. A far point
// is placed at least RaySafety times that radius away from both sites of its
// ridge, which keeps any closing edge between two far points of a cell outside
// the box as long as the angle they span at the site is at most a right angle.
type rayResolver struct {
	center r2.Point
	reach  float64
	safety float64
	tol    float64
}

func newRayResolver(bounds r2.Rect, safety, tol float64) rayResolver {
	return rayResolver{
		center: bounds.Center(),
		reach:  bounds.Size().Norm() / 2,
		safety: safety,
		tol:    tol,
	}
}

// farPoint moves from anchor along dir far past the box as seen from sites.
func (rr rayResolver) farPoint(anchor, dir r2.Point, sites ...r2.Point) (r2.Point, bool) {
	n := dir.Norm()
	if !(n > rr.tol) || !isFinite(dir) || !isFinite(anchor) {
		return r2.Point{}, false
	}
	var siteReach float64
	for _, s := range sites {
		siteReach = max(siteReach, s.Sub(rr.center).Norm())
	}
	length := anchor.Sub(rr.center).Norm() + siteReach + rr.safety*(rr.reach+siteReach)
	return anchor.Add(dir.Mul(length / n)), true
}

// resolve returns the finite segment of ridge r, or false when the ridge is
// numerically degenerate and must be skipped.
func (rr rayResolver) resolve(t *Tessellation, r Ridge) (segment, bool) {
	s0, s1 := t.Sites[r.Sites[0]], t.Sites[r.Sites[1]]
	switch {
	case r.IsFinite():
		a, b := t.Vertices[r.Vertices[0]], t.Vertices[r.Vertices[1]]
		if !isFinite(a) || !isFinite(b) {
			return segment{}, false
		}
		return segment{A: a, B: b}, true
	case r.IsRay():
		a := t.Vertices[r.Vertices[0]]
		b, ok := rr.farPoint(a, r.Direction, s0, s1)
		if !ok {
			return segment{}, false
		}
		return segment{A: a, B: b, FarB: true}, true
	default:
		a, okA := rr.farPoint(r.Anchor, r.Direction.Mul(-1), s0, s1)
		b, okB := rr.farPoint(r.Anchor, r.Direction, s0, s1)
		if !okA || !okB {
			return segment{}, false
		}
		return segment{A: a, B: b, FarA: true, FarB: true}, true
	}
}
