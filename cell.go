// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2voronoi implements bounded Voronoi diagrams in the plane, built on
// Delaunay triangulation and clipped to a rectangle.
package r2voronoi

import (
	"fmt"

	"github.com/2dChan/r2voronoi/r2clip"
	"github.com/golang/geo/r2"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// NumVertices returns the number of vertices of the clipped cell polygon.
// It is zero for a dropped site.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// Vertices returns the polygon of the cell in counter-clockwise order.
// The slice aliases the Diagram and must not be modified.
func (c Cell) Vertices() []r2.Point {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.CellVertices[start+i], nil
}

// NumNeighbors returns the number of Voronoi neighbors. Neighbors whose
// shared ridge lies outside the bounds are counted too, so this may differ
// from the number of vertices.
func (c Cell) NumNeighbors() int {
	return c.d.NeighborOffsets[c.idx+1] - c.d.NeighborOffsets[c.idx]
}

// NeighborIndices returns the site indices of the neighboring cells,
// sorted counter-clockwise by their direction from the site.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.NeighborOffsets[c.idx]:c.d.NeighborOffsets[c.idx+1]]
}

// Neighbor returns the neighboring cell at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.NeighborOffsets[c.idx]
	end := c.d.NeighborOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	nc, err := c.d.Cell(c.d.CellNeighbors[start+i])
	if err != nil {
		return Cell{}, err
	}
	return nc, nil
}

// IsEmpty reports whether the site was dropped and has no polygon.
func (c Cell) IsEmpty() bool {
	return c.NumVertices() == 0
}

func (c Cell) Area() float64 {
	return r2clip.PolygonArea(c.Vertices())
}

func (c Cell) Centroid() r2.Point {
	return r2clip.Centroid(c.Vertices())
}

// ContainsPoint reports whether p lies in the cell, boundary included.
func (c Cell) ContainsPoint(p r2.Point) bool {
	return r2clip.ConvexContains(c.Vertices(), p, r2clip.DefaultTolerance)
}
