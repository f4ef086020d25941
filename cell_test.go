// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

// Cell

func TestCell_SiteIndex(t *testing.T) {
	d := mustNewDiagram(t, 100)
	for i := range d.Sites {
		c, err := d.Cell(i)
		if err != nil {
			t.Fatalf("d.Cell(%d) error = %v, want nil", i, err)
		}
		if got := c.SiteIndex(); got != i {
			t.Errorf("c.SiteIndex() = %v, want %v", got, i)
		}
	}
}

func TestCell_Site(t *testing.T) {
	d := mustNewDiagram(t, 100)
	for i, want := range d.Sites {
		c := mustCell(t, d, i)
		if got := c.Site(); got != want {
			t.Errorf("c.Site() = %v, want %v", got, want)
		}
	}
}

func TestCell_Vertices(t *testing.T) {
	d := mustNewDiagram(t, 100)
	for i := range d.Sites {
		c := mustCell(t, d, i)
		want := d.CellVertices[d.CellOffsets[i]:d.CellOffsets[i+1]]
		if diff := cmp.Diff(want, c.Vertices()); diff != "" {
			t.Errorf("c.Vertices() mismatch (-want +got, cell %d):\n%s", i, diff)
		}
		if got := c.NumVertices(); got != len(want) {
			t.Errorf("c.NumVertices() = %v, want %v", got, len(want))
		}
	}
}

func TestCell_Vertex(t *testing.T) {
	d := mustNewDiagram(t, 100)
	for i := range d.Sites {
		c := mustCell(t, d, i)
		for j, want := range c.Vertices() {
			got, err := c.Vertex(j)
			if err != nil {
				t.Fatalf("c.Vertex(%d) error = %v, want nil", j, err)
			}
			if got != want {
				t.Errorf("c.Vertex(%d) = %v, want %v", j, got, want)
			}
		}

		if _, err := c.Vertex(-1); err == nil {
			t.Errorf("c.Vertex(-1) error = nil, want non-nil")
		}
		if _, err := c.Vertex(c.NumVertices()); err == nil {
			t.Errorf("c.Vertex(%d) error = nil, want non-nil", c.NumVertices())
		}
	}
}

func TestCell_NeighborIndices(t *testing.T) {
	d := mustNewDiagram(t, 100)
	for i := range d.Sites {
		c := mustCell(t, d, i)
		want := d.CellNeighbors[d.NeighborOffsets[i]:d.NeighborOffsets[i+1]]
		if diff := cmp.Diff(want, c.NeighborIndices()); diff != "" {
			t.Errorf("c.NeighborIndices() mismatch (-want +got, cell %d):\n%s", i, diff)
		}
		if got := c.NumNeighbors(); got != len(want) {
			t.Errorf("c.NumNeighbors() = %v, want %v", got, len(want))
		}
	}
}

func TestCell_Neighbor(t *testing.T) {
	d := mustNewDiagram(t, 100)
	for i := range d.Sites {
		c := mustCell(t, d, i)
		for j, nIdx := range c.NeighborIndices() {
			got, err := c.Neighbor(j)
			if err != nil {
				t.Fatal(err)
			}
			if got.SiteIndex() != nIdx {
				t.Errorf("c.Neighbor(%d).SiteIndex() = %v, want %v", j, got.SiteIndex(), nIdx)
			}
		}
		if _, err := c.Neighbor(-1); err == nil {
			t.Errorf("c.Neighbor(-1) error = nil, want non-nil")
		}
		if _, err := c.Neighbor(c.NumNeighbors()); err == nil {
			t.Errorf("c.Neighbor(%d) error = nil, want non-nil", c.NumNeighbors())
		}
	}
}

func TestCell_NeighborsSymmetric(t *testing.T) {
	d := mustNewDiagram(t, 200)
	for i := range d.Sites {
		for _, j := range mustCell(t, d, i).NeighborIndices() {
			back := mustCell(t, d, j).NeighborIndices()
			found := false
			for _, k := range back {
				if k == i {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("cell %d lists neighbor %d, but not the reverse", i, j)
			}
		}
	}
}

func TestCell_VerifyCCW(t *testing.T) {
	d := mustNewDiagram(t, 100)

	for i := range d.NumCells() {
		cell := mustCell(t, d, i)
		center := cell.Site()
		for k := 0; k < cell.NumVertices(); k++ {
			c, _ := cell.Vertex(k)
			n, _ := cell.Vertex((k + 1) % cell.NumVertices())
			if turn := c.Sub(center).Cross(n.Sub(center)); turn <= 0 {
				t.Errorf("d.Cell(%d) Vertices %d,%d not sorted in CCW", i, k, (k+1)%cell.NumVertices())
			}
		}

		var total float64
		for k := 0; k < cell.NumNeighbors(); k++ {
			a, _ := cell.Neighbor(k)
			b, _ := cell.Neighbor((k + 1) % cell.NumNeighbors())
			total += computeAngleCCW(a.Site().Sub(center), b.Site().Sub(center))
		}
		// Sorted neighbors wind around the site exactly once.
		if cell.NumNeighbors() > 2 && math.Abs(total-2*math.Pi) > 1e-9 {
			t.Errorf("d.Cell(%d) neighbors wind %v radians, want 2π", i, total)
		}
	}
}

func TestCell_Geometry(t *testing.T) {
	sites := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	d, err := NewDiagram(sites, WithBounds(rect(-5, -5, 15, 5)))
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	c := mustCell(t, d, 1)

	if got := c.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("c.Area() = %v, want 100", got)
	}
	if got, want := c.Centroid(), (r2.Point{X: 10, Y: 0}); got.Sub(want).Norm() > 1e-9 {
		t.Errorf("c.Centroid() = %v, want %v", got, want)
	}
	if c.IsEmpty() {
		t.Errorf("c.IsEmpty() = true, want false")
	}

	tests := []struct {
		p    r2.Point
		want bool
	}{
		{r2.Point{X: 10, Y: 0}, true},
		{r2.Point{X: 5, Y: 0}, true},
		{r2.Point{X: 15, Y: 5}, true},
		{r2.Point{X: 4.9, Y: 0}, false},
		{r2.Point{X: 16, Y: 0}, false},
	}
	for _, tt := range tests {
		if got := c.ContainsPoint(tt.p); got != tt.want {
			t.Errorf("c.ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestCell_Empty(t *testing.T) {
	sites := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	d, err := NewDiagram(sites)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	c := mustCell(t, d, 2)
	if !c.IsEmpty() {
		t.Errorf("c.IsEmpty() = false, want true")
	}
	if got := c.Area(); got != 0 {
		t.Errorf("c.Area() = %v, want 0", got)
	}
	if c.ContainsPoint(c.Site()) {
		t.Errorf("c.ContainsPoint(site) = true, want false")
	}
	if got := c.NumNeighbors(); got != 0 {
		t.Errorf("c.NumNeighbors() = %v, want 0", got)
	}
}

// Helpers

func computeAngleCCW(a, b r2.Point) float64 {
	angle := math.Atan2(a.Cross(b), a.Dot(b))
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
