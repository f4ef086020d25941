// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"cmp"
	"math"
	"slices"

	"github.com/2dChan/r2voronoi/r2clip"
	"github.com/golang/geo/r2"
)

// maxFarGap is the widest angle, seen from the site, that two consecutive far
// points of a cell may span before bridge points are inserted between them.
const maxFarGap = math.Pi / 2

type cellVertex struct {
	p     r2.Point
	far   bool
	angle float64
}

// assembleCell builds the counter-clockwise polygon of site from the resolved
// ridges bordering it. neighbors are the sites on the other side of those
// ridges.
//
// Voronoi cells are convex and contain their site, so sorting the ridge ends
// by angle around the site yields the boundary order. Consecutive far points
// are joined by a chord unless the gap between them is wide, in which case the
// gap is filled with bridge points that lie inside the cell.
func assembleCell(site r2.Point, neighbors []r2.Point, segs []segment, tol float64) []r2.Point {
	verts := make([]cellVertex, 0, 2*len(segs))
	add := func(p r2.Point, far bool) {
		d := p.Sub(site)
		verts = append(verts, cellVertex{p: p, far: far, angle: math.Atan2(d.Y, d.X)})
	}
	for _, s := range segs {
		add(s.A, s.FarA)
		add(s.B, s.FarB)
	}
	slices.SortStableFunc(verts, func(a, b cellVertex) int {
		return cmp.Compare(a.angle, b.angle)
	})

	verts = mergeCoincident(verts, tol)
	verts = bridgeFarGaps(site, neighbors, verts)

	poly := make([]r2.Point, len(verts))
	for i, v := range verts {
		poly[i] = v.p
	}
	return r2clip.Dedup(poly, tol)
}

// mergeCoincident collapses runs of vertices closer than tol. A merged vertex
// is far only if all of its copies are.
func mergeCoincident(verts []cellVertex, tol float64) []cellVertex {
	if len(verts) == 0 {
		return verts
	}
	out := verts[:1]
	for _, v := range verts[1:] {
		last := &out[len(out)-1]
		if v.p.Sub(last.p).Norm() <= tol {
			last.far = last.far && v.far
			continue
		}
		out = append(out, v)
	}
	if len(out) > 1 {
		first, last := &out[0], out[len(out)-1]
		if last.p.Sub(first.p).Norm() <= tol {
			first.far = first.far && last.far
			out = out[:len(out)-1]
		}
	}
	return out
}

// bridgeFarGaps inserts points between consecutive far vertices spanning more
// than maxFarGap. Bridge points lie on a circle around the site through the
// farther of the two vertices and are kept only if they are strictly closer to
// the site than to every neighbor, so a gap crossed by a real edge stays
// unbridged.
func bridgeFarGaps(site r2.Point, neighbors []r2.Point, verts []cellVertex) []cellVertex {
	n := len(verts)
	if n == 0 {
		return verts
	}
	out := make([]cellVertex, 0, n+4)
	for i, a := range verts {
		out = append(out, a)
		b := verts[(i+1)%n]
		if !a.far || !b.far {
			continue
		}
		gap := b.angle - a.angle
		if i == n-1 {
			gap += 2 * math.Pi
		}
		if gap <= maxFarGap {
			continue
		}

		steps := int(math.Ceil(gap / maxFarGap))
		radius := max(a.p.Sub(site).Norm(), b.p.Sub(site).Norm())
		for k := 1; k < steps; k++ {
			angle := a.angle + gap*float64(k)/float64(steps)
			p := site.Add(r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(radius))
			if !closestTo(p, site, neighbors) {
				continue
			}
			out = append(out, cellVertex{p: p, far: true, angle: angle})
		}
	}
	return out
}

func closestTo(p, site r2.Point, others []r2.Point) bool {
	d := p.Sub(site).Norm()
	for _, o := range others {
		if p.Sub(o).Norm() <= d {
			return false
		}
	}
	return true
}
