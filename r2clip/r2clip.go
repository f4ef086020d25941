// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2clip provides planar clipping primitives: Sutherland-Hodgman
// clipping of polygons against half-planes and rectangles, and Cohen-Sutherland
// clipping of segments against rectangles.
//
// Every comparison against a clip boundary uses an absolute tolerance; a point
// within tolerance of a boundary is treated as inside.
package r2clip

import (
	"math"

	"github.com/golang/geo/r2"
)

const (
	DefaultTolerance = 1e-9
)

// HalfPlane is the set of points p with Normal·p <= Offset.
type HalfPlane struct {
	Normal r2.Point
	Offset float64
}

// Contains reports whether p lies in h, allowing p to be up to tol outside
// along the (unnormalized) normal.
func (h HalfPlane) Contains(p r2.Point, tol float64) bool {
	return h.Normal.Dot(p) <= h.Offset+tol
}

// crossing returns the point where segment a-b meets the boundary of h.
func (h HalfPlane) crossing(a, b r2.Point) r2.Point {
	da := h.Normal.Dot(a) - h.Offset
	db := h.Normal.Dot(b) - h.Offset
	den := da - db
	if den == 0 {
		return a
	}
	t := math.Max(0, math.Min(1, da/den))
	return a.Add(b.Sub(a).Mul(t))
}

// RectHalfPlanes returns the half-planes whose intersection is r, in the
// order left, right, bottom, top.
func RectHalfPlanes(r r2.Rect) [4]HalfPlane {
	return [4]HalfPlane{
		{Normal: r2.Point{X: -1}, Offset: -r.X.Lo},
		{Normal: r2.Point{X: 1}, Offset: r.X.Hi},
		{Normal: r2.Point{Y: -1}, Offset: -r.Y.Lo},
		{Normal: r2.Point{Y: 1}, Offset: r.Y.Hi},
	}
}

// ClipHalfPlane clips the closed polygon poly against h.
//
// Every edge is classified by its endpoints; the crossing point is emitted on
// both inside→outside and outside→inside transitions, so polygons with several
// vertices outside h are handled. The input is not modified.
func ClipHalfPlane(poly []r2.Point, h HalfPlane, tol float64) []r2.Point {
	if len(poly) == 0 {
		return nil
	}

	out := make([]r2.Point, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevIn := h.Contains(prev, tol)
	for _, cur := range poly {
		curIn := h.Contains(cur, tol)
		switch {
		case curIn && !prevIn:
			out = append(out, h.crossing(prev, cur), cur)
		case curIn:
			out = append(out, cur)
		case prevIn:
			out = append(out, h.crossing(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// ClipRect intersects the convex polygon poly with r.
//
// The result is clamped onto r and has consecutive near-duplicate vertices
// removed. It may hold fewer than three vertices when poly misses r or only
// touches it.
func ClipRect(poly []r2.Point, r r2.Rect, tol float64) []r2.Point {
	out := poly
	for _, h := range RectHalfPlanes(r) {
		out = ClipHalfPlane(out, h, tol)
		if len(out) == 0 {
			return nil
		}
	}
	for i, p := range out {
		out[i] = r.ClampPoint(p)
	}
	return Dedup(out, tol)
}

type outcode uint8

const (
	inside outcode = 0
	left   outcode = 1
	right  outcode = 2
	bottom outcode = 4
	top    outcode = 8
)

func computeOutcode(p r2.Point, r r2.Rect) outcode {
	var c outcode
	if p.X < r.X.Lo {
		c |= left
	} else if p.X > r.X.Hi {
		c |= right
	}
	if p.Y < r.Y.Lo {
		c |= bottom
	} else if p.Y > r.Y.Hi {
		c |= top
	}
	return c
}

// ClipSegment clips segment a-b to r using Cohen-Sutherland. It reports false
// when the segment lies outside r (beyond tolerance). Returned endpoints are
// clamped onto r.
func ClipSegment(a, b r2.Point, r r2.Rect, tol float64) (r2.Point, r2.Point, bool) {
	er := r.ExpandedByMargin(tol)
	ca := computeOutcode(a, er)
	cb := computeOutcode(b, er)
	for {
		if ca == inside && cb == inside {
			return r.ClampPoint(a), r.ClampPoint(b), true
		}
		if ca&cb != 0 {
			return a, b, false
		}

		out := ca
		if cb > ca {
			out = cb
		}

		var p r2.Point
		switch {
		case out&top != 0:
			p = r2.Point{X: a.X + (b.X-a.X)*(er.Y.Hi-a.Y)/(b.Y-a.Y), Y: er.Y.Hi}
		case out&bottom != 0:
			p = r2.Point{X: a.X + (b.X-a.X)*(er.Y.Lo-a.Y)/(b.Y-a.Y), Y: er.Y.Lo}
		case out&right != 0:
			p = r2.Point{X: er.X.Hi, Y: a.Y + (b.Y-a.Y)*(er.X.Hi-a.X)/(b.X-a.X)}
		case out&left != 0:
			p = r2.Point{X: er.X.Lo, Y: a.Y + (b.Y-a.Y)*(er.X.Lo-a.X)/(b.X-a.X)}
		}

		if out == ca {
			a = p
			ca = computeOutcode(a, er)
		} else {
			b = p
			cb = computeOutcode(b, er)
		}
	}
}

// InRect reports whether p lies in r expanded by tol on every side.
func InRect(p r2.Point, r r2.Rect, tol float64) bool {
	return r.ExpandedByMargin(tol).ContainsPoint(p)
}

// Dedup removes consecutive vertices closer than tol, including the pair
// formed by the last and first vertex. It works in place and returns the
// shortened slice.
func Dedup(poly []r2.Point, tol float64) []r2.Point {
	if len(poly) == 0 {
		return poly
	}
	tol2 := tol * tol
	out := poly[:1]
	for _, p := range poly[1:] {
		if dist2(p, out[len(out)-1]) > tol2 {
			out = append(out, p)
		}
	}
	for len(out) > 1 && dist2(out[0], out[len(out)-1]) <= tol2 {
		out = out[:len(out)-1]
	}
	return out
}

// PolygonArea returns the signed area of poly; positive for counter-clockwise
// vertex order.
func PolygonArea(poly []r2.Point) float64 {
	var a float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.Cross(q)
	}
	return a / 2
}

// Centroid returns the area centroid of poly. Degenerate polygons fall back
// to the vertex mean.
func Centroid(poly []r2.Point) r2.Point {
	if len(poly) == 0 {
		return r2.Point{}
	}
	a := PolygonArea(poly)
	if math.Abs(a) < 1e-300 {
		var s r2.Point
		for _, p := range poly {
			s = s.Add(p)
		}
		return s.Mul(1 / float64(len(poly)))
	}
	var c r2.Point
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		c = c.Add(p.Add(q).Mul(p.Cross(q)))
	}
	return c.Mul(1 / (6 * a))
}

// ConvexContains reports whether p lies inside the counter-clockwise convex
// polygon poly, boundary included within tol.
func ConvexContains(poly []r2.Point, p r2.Point, tol float64) bool {
	if len(poly) < 3 {
		return false
	}
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		e := b.Sub(a)
		n := e.Norm()
		if n == 0 {
			continue
		}
		if e.Cross(p.Sub(a))/n < -tol {
			return false
		}
	}
	return true
}

func dist2(a, b r2.Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
