// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/golang/geo/r2"
)

// Ridge is an edge of the raw Voronoi tessellation separating Sites[0] and
// Sites[1].
//
// A vertex index of -1 marks an end at infinity. A ray keeps its finite end in
// Vertices[0] and points along Direction. A line, with both ends at infinity,
// passes through Anchor along ±Direction.
type Ridge struct {
	Sites     [2]int
	Vertices  [2]int
	Direction r2.Point
	Anchor    r2.Point
}

func (r Ridge) IsFinite() bool {
	return r.Vertices[0] >= 0 && r.Vertices[1] >= 0
}

func (r Ridge) IsRay() bool {
	return (r.Vertices[0] >= 0) != (r.Vertices[1] >= 0)
}

func (r Ridge) IsLine() bool {
	return r.Vertices[0] < 0 && r.Vertices[1] < 0
}

// Tessellation is the unclipped Voronoi diagram of Sites.
type Tessellation struct {
	Sites    []r2.Point
	Vertices []r2.Point
	Ridges   []Ridge
	// Regions[i] lists the indices of the ridges bordering site i.
	Regions [][]int
}

func newTessellation(sites []r2.Point) *Tessellation {
	return &Tessellation{
		Sites:   sites,
		Regions: make([][]int, len(sites)),
	}
}

func (t *Tessellation) addRidge(r Ridge) {
	if r.Vertices[0] < 0 && r.Vertices[1] >= 0 {
		r.Vertices[0], r.Vertices[1] = r.Vertices[1], r.Vertices[0]
	}
	idx := len(t.Ridges)
	t.Ridges = append(t.Ridges, r)
	t.Regions[r.Sites[0]] = append(t.Regions[r.Sites[0]], idx)
	t.Regions[r.Sites[1]] = append(t.Regions[r.Sites[1]], idx)
}

func (t *Tessellation) validate() error {
	if len(t.Sites) != len(t.Regions) {
		return fmt.Errorf("r2voronoi: tessellation has %d regions for %d sites", len(t.Regions), len(t.Sites))
	}
	for i, r := range t.Ridges {
		for _, s := range r.Sites {
			if s < 0 || s >= len(t.Sites) {
				return fmt.Errorf("r2voronoi: ridge %d references site %d out of range [0 %d)", i, s, len(t.Sites))
			}
		}
		for _, v := range r.Vertices {
			if v >= len(t.Vertices) {
				return fmt.Errorf("r2voronoi: ridge %d references vertex %d out of range [0 %d)", i, v, len(t.Vertices))
			}
		}
	}
	for s, region := range t.Regions {
		for _, rIdx := range region {
			if rIdx < 0 || rIdx >= len(t.Ridges) {
				return fmt.Errorf("r2voronoi: region %d references ridge %d out of range [0 %d)", s, rIdx, len(t.Ridges))
			}
		}
	}
	return nil
}

// Tessellator computes the unclipped Voronoi tessellation of distinct sites
// that are not all collinear.
type Tessellator interface {
	Tessellate(sites []r2.Point) (*Tessellation, error)
}

// DelaunayTessellator derives the tessellation from the Delaunay
// triangulation: circumcenters become vertices, interior edges finite ridges
// and hull edges rays.
type DelaunayTessellator struct {
	// Eps is passed to the convex hull; zero keeps the r2delaunay default.
	Eps float64
}

func (t DelaunayTessellator) Tessellate(sites []r2.Point) (*Tessellation, error) {
	var setters []r2delaunay.TriangulationOption
	if t.Eps != 0 {
		setters = append(setters, r2delaunay.WithEps(t.Eps))
	}
	dt, err := r2delaunay.NewTriangulation(sites, setters...)
	if err != nil {
		return nil, err
	}

	tess := newTessellation(sites)
	tess.Vertices = make([]r2.Point, len(dt.Triangles))
	for i := range dt.Triangles {
		tess.Vertices[i] = triangleCircumcenter(dt.TriangleVertices(i))
	}

	for _, e := range dt.Edges() {
		r := Ridge{Sites: e.V, Vertices: e.Triangles}
		if e.IsHull() {
			tri := dt.Triangles[e.Triangles[0]]
			a, b := sites[e.V[0]], sites[e.V[1]]
			opposite := sites[oppositeVertex(tri, e.V)]
			dir := b.Sub(a).Ortho()
			if dir.Dot(opposite.Sub(a)) > 0 {
				dir = dir.Mul(-1)
			}
			r.Direction = dir
		}
		tess.addRidge(r)
	}
	return tess, nil
}

func oppositeVertex(t [3]int, e [2]int) int {
	for _, v := range t {
		if v != e[0] && v != e[1] {
			return v
		}
	}
	return t[0]
}

// triangleCircumcenter returns the center of the circle through a, b and c.
func triangleCircumcenter(a, b, c r2.Point) r2.Point {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	hb := bx*bx + by*by
	hc := cx*cx + cy*cy
	return r2.Point{X: (cy*hb-by*hc)/d + a.X, Y: (bx*hc-cx*hb)/d + a.Y}
}

// collinearTessellation partitions the plane of collinear sites into strips
// bounded by the bisector lines of consecutive sites.
func collinearTessellation(sites []r2.Point) *Tessellation {
	origin := sites[0]
	far := farthestFrom(origin, sites)
	axis := far.Sub(origin).Normalize()

	order := make([]int, len(sites))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		return cmp.Compare(axis.Dot(sites[i].Sub(origin)), axis.Dot(sites[j].Sub(origin)))
	})

	tess := newTessellation(sites)
	for k := 1; k < len(order); k++ {
		i, j := order[k-1], order[k]
		tess.addRidge(Ridge{
			Sites:     [2]int{i, j},
			Vertices:  [2]int{-1, -1},
			Direction: axis.Ortho(),
			Anchor:    sites[i].Add(sites[j]).Mul(0.5),
		})
	}
	return tess
}

// isCollinear reports whether every site lies within tol of the line through
// sites[0] and the site farthest from it.
func isCollinear(sites []r2.Point, tol float64) bool {
	origin := sites[0]
	far := farthestFrom(origin, sites)
	d := far.Sub(origin)
	n := d.Norm()
	if n <= tol {
		return true
	}
	for _, p := range sites {
		if abs(d.Cross(p.Sub(origin)))/n > tol {
			return false
		}
	}
	return true
}

func farthestFrom(origin r2.Point, sites []r2.Point) r2.Point {
	far := origin
	var best float64
	for _, p := range sites {
		if d := p.Sub(origin).Norm(); d > best {
			best = d
			far = p
		}
	}
	return far
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
