// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2delaunay computes planar Delaunay triangulations as the lower
// convex hull of the sites lifted onto the paraboloid z = x² + y².
package r2delaunay

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
)

var (
	ErrInsufficientVertices = errors.New("r2delaunay: insufficient vertices for triangulation (minimum 3 required)")
	ErrCollinear            = errors.New("r2delaunay: vertices are collinear")
)

type Triangulation struct {
	Vertices []r2.Point
	// NOTE: Sorted in CCW.
	Triangles [][3]int
}

// TriangleVertices returns the corner points of triangle tIdx.
func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

// Edge is an undirected triangulation edge with V[0] < V[1]. Triangles holds
// the indices of the adjacent triangles; Triangles[1] is -1 on the convex hull.
type Edge struct {
	V         [2]int
	Triangles [2]int
}

// IsHull reports whether e lies on the convex hull.
func (e Edge) IsHull() bool {
	return e.Triangles[1] < 0
}

// Edges returns every edge of dt in order of first appearance.
func (dt *Triangulation) Edges() []Edge {
	index := make(map[[2]int]int, len(dt.Triangles)*3/2+1)
	edges := make([]Edge, 0, len(dt.Triangles)*3/2+1)
	for tIdx, t := range dt.Triangles {
		for _, v := range t {
			key := [2]int{v, NextVertex(t, v)}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if i, ok := index[key]; ok {
				edges[i].Triangles[1] = tIdx
				continue
			}
			index[key] = len(edges)
			edges = append(edges, Edge{V: key, Triangles: [2]int{tIdx, -1}})
		}
	}
	return edges
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return fmt.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation triangulates vertices. Vertices must be distinct and not
// all collinear.
func NewTriangulation(vertices []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(vertices)
	if numVertices < 3 {
		return nil, ErrInsufficientVertices
	}

	lifted, err := liftVertices(vertices)
	if err != nil {
		return nil, err
	}

	dt := &Triangulation{
		Vertices:  vertices,
		Triangles: make([][3]int, 0, 2*numVertices),
	}
	// Cocircular sites lift onto one plane and every triangulation of their
	// convex polygon is Delaunay.
	if isPlanar(lifted, opts.Eps) {
		dt.Triangles = fanTriangles(lifted)
		return dt, nil
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, opts.Eps)
	// Every lifted vertex lies on the strictly convex paraboloid, so each one
	// is a hull vertex and the triangulated hull has 2V-4 faces.
	if len(ch.Indices) != 3*(2*numVertices-4) {
		return nil, errors.New("r2delaunay: inconsistent number of indices returned from QuickHull")
	}

	interior := meanVector(lifted)
	for i := 0; i < len(ch.Indices); i += 3 {
		t := [3]int{ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]}
		// Vertical facets come from collinear hull vertices and carry no area.
		if math.Abs(orientation(t, lifted)) <= opts.Eps {
			continue
		}
		if !isLowerFacet(t, lifted, interior) {
			continue
		}
		sortTriangleVerticesCCW(&t, lifted)
		dt.Triangles = append(dt.Triangles, t)
	}
	if len(dt.Triangles) == 0 {
		return nil, ErrCollinear
	}

	return dt, nil
}

// liftVertices maps vertices to the unit disk around their centroid and lifts
// them onto the paraboloid.
func liftVertices(vertices []r2.Point) ([]r3.Vector, error) {
	var c r2.Point
	for _, p := range vertices {
		c = c.Add(p)
	}
	c = c.Mul(1 / float64(len(vertices)))

	var scale float64
	far := c
	for _, p := range vertices {
		if d := p.Sub(c).Norm(); d > scale {
			scale = d
			far = p
		}
	}
	if scale == 0 {
		return nil, ErrCollinear
	}

	axis := far.Sub(c).Normalize()
	collinear := true
	lifted := make([]r3.Vector, len(vertices))
	for i, p := range vertices {
		q := p.Sub(c).Mul(1 / scale)
		if math.Abs(axis.Cross(q)) > defaultEps {
			collinear = false
		}
		lifted[i] = r3.Vector{X: q.X, Y: q.Y, Z: q.Dot(q)}
	}
	if collinear {
		return nil, ErrCollinear
	}

	return lifted, nil
}

// isLowerFacet reports whether the outward normal of facet t points down.
// The normal is oriented away from interior, a point strictly inside the hull,
// so the result does not depend on the winding quickhull emits.
func isLowerFacet(t [3]int, v []r3.Vector, interior r3.Vector) bool {
	a, b, c := v[t[0]], v[t[1]], v[t[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Dot(a.Sub(interior)) < 0 {
		n = n.Mul(-1)
	}
	return n.Z < 0
}

// isPlanar reports whether every lifted vertex lies within eps of the plane
// through the widest triangle of v.
func isPlanar(v []r3.Vector, eps float64) bool {
	i0 := 0
	i1 := farthestVector(v, v[i0])
	i2, best := -1, 0.0
	for i, p := range v {
		if a := v[i1].Sub(v[i0]).Cross(p.Sub(v[i0])).Norm(); a > best {
			i2, best = i, a
		}
	}
	if i2 < 0 {
		return true
	}
	n := v[i1].Sub(v[i0]).Cross(v[i2].Sub(v[i0])).Normalize()
	for _, p := range v {
		if math.Abs(n.Dot(p.Sub(v[i0]))) > eps {
			return false
		}
	}
	return true
}

// fanTriangles triangulates vertices in convex position by a fan from the
// first vertex in angular order around their centroid.
func fanTriangles(v []r3.Vector) [][3]int {
	c := meanVector(v)
	order := make([]int, len(v))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(i, j int) int {
		ai := math.Atan2(v[i].Y-c.Y, v[i].X-c.X)
		aj := math.Atan2(v[j].Y-c.Y, v[j].X-c.X)
		switch {
		case ai < aj:
			return -1
		case ai > aj:
			return 1
		}
		return 0
	})

	tris := make([][3]int, 0, len(v)-2)
	for k := 1; k+1 < len(order); k++ {
		t := [3]int{order[0], order[k], order[k+1]}
		sortTriangleVerticesCCW(&t, v)
		tris = append(tris, t)
	}
	return tris
}

func meanVector(v []r3.Vector) r3.Vector {
	var m r3.Vector
	for _, p := range v {
		m = m.Add(p)
	}
	return m.Mul(1 / float64(len(v)))
}

func farthestVector(v []r3.Vector, from r3.Vector) int {
	idx, best := 0, -1.0
	for i, p := range v {
		if d := p.Sub(from).Norm2(); d > best {
			idx, best = i, d
		}
	}
	return idx
}

// orientation returns twice the signed area of t projected onto the plane.
func orientation(t [3]int, v []r3.Vector) float64 {
	a, b, c := v[t[0]], v[t[1]], v[t[2]]
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func sortTriangleVerticesCCW(t *[3]int, v []r3.Vector) {
	if orientation(*t, v) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
