// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/2dChan/r2voronoi/r2clip"
	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/2dChan/r2voronoi/utils"
	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Ridge

func TestRidge_Kind(t *testing.T) {
	tests := []struct {
		name                   string
		vertices               [2]int
		finite, isRay, isLine bool
	}{
		{"finite", [2]int{0, 1}, true, false, false},
		{"ray", [2]int{3, -1}, false, true, false},
		{"ray reversed", [2]int{-1, 3}, false, true, false},
		{"line", [2]int{-1, -1}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Ridge{Vertices: tt.vertices}
			if got := r.IsFinite(); got != tt.finite {
				t.Errorf("r.IsFinite() = %v, want %v", got, tt.finite)
			}
			if got := r.IsRay(); got != tt.isRay {
				t.Errorf("r.IsRay() = %v, want %v", got, tt.isRay)
			}
			if got := r.IsLine(); got != tt.isLine {
				t.Errorf("r.IsLine() = %v, want %v", got, tt.isLine)
			}
		})
	}
}

func TestTessellation_AddRidge(t *testing.T) {
	tess := newTessellation(make([]r2.Point, 3))
	tess.addRidge(Ridge{Sites: [2]int{0, 1}, Vertices: [2]int{-1, 2}})
	tess.addRidge(Ridge{Sites: [2]int{1, 2}, Vertices: [2]int{-1, -1}})

	if got, want := tess.Ridges[0].Vertices, [2]int{2, -1}; got != want {
		t.Errorf("ray vertices = %v, want %v", got, want)
	}
	want := [][]int{{0}, {0, 1}, {1}}
	if diff := cmp.Diff(want, tess.Regions); diff != "" {
		t.Errorf("tess.Regions mismatch (-want +got):\n%s", diff)
	}
}

func TestTessellation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tess    *Tessellation
		wantErr bool
	}{
		{
			"valid",
			&Tessellation{
				Sites:    make([]r2.Point, 2),
				Vertices: make([]r2.Point, 1),
				Ridges:   []Ridge{{Sites: [2]int{0, 1}, Vertices: [2]int{0, -1}}},
				Regions:  [][]int{{0}, {0}},
			},
			false,
		},
		{
			"regions count",
			&Tessellation{Sites: make([]r2.Point, 2), Regions: [][]int{{}}},
			true,
		},
		{
			"site out of range",
			&Tessellation{
				Sites:   make([]r2.Point, 2),
				Ridges:  []Ridge{{Sites: [2]int{0, 2}, Vertices: [2]int{-1, -1}}},
				Regions: [][]int{{0}, {}},
			},
			true,
		},
		{
			"vertex out of range",
			&Tessellation{
				Sites:   make([]r2.Point, 2),
				Ridges:  []Ridge{{Sites: [2]int{0, 1}, Vertices: [2]int{0, -1}}},
				Regions: [][]int{{0}, {0}},
			},
			true,
		},
		{
			"ridge out of range",
			&Tessellation{
				Sites:   make([]r2.Point, 2),
				Regions: [][]int{{0}, {}},
			},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tess.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// DelaunayTessellator

func TestDelaunayTessellator_Square(t *testing.T) {
	sites := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	tess, err := DelaunayTessellator{}.Tessellate(sites)
	if err != nil {
		t.Fatalf("Tessellate(...) error = %v, want nil", err)
	}

	center := r2.Point{X: 0.5, Y: 0.5}
	for i, v := range tess.Vertices {
		if v.Sub(center).Norm() > 1e-9 {
			t.Errorf("tess.Vertices[%d] = %v, want %v", i, v, center)
		}
	}
	var rays int
	for i, r := range tess.Ridges {
		if !r.IsRay() {
			continue
		}
		rays++
		mid := sites[r.Sites[0]].Add(sites[r.Sites[1]]).Mul(0.5)
		if r.Direction.Dot(mid.Sub(center)) <= 0 {
			t.Errorf("ridge %d direction %v points inward", i, r.Direction)
		}
	}
	if rays != 4 {
		t.Errorf("ray count = %d, want 4", rays)
	}
	if len(tess.Ridges) != 5 {
		t.Errorf("len(tess.Ridges) = %d, want 5", len(tess.Ridges))
	}
}

func TestDelaunayTessellator_RaysPointOutward(t *testing.T) {
	sites := utils.GenerateRandomPoints(200, 5)
	tess, err := DelaunayTessellator{}.Tessellate(sites)
	if err != nil {
		t.Fatalf("Tessellate(...) error = %v, want nil", err)
	}

	for i, r := range tess.Ridges {
		if !r.IsRay() {
			continue
		}
		// Moving along an outward ray keeps both sites equidistant and
		// every other site farther away.
		v := tess.Vertices[r.Vertices[0]]
		p := v.Add(r.Direction.Normalize().Mul(10))
		d := p.Sub(tess.Sites[r.Sites[0]]).Norm()
		for j, s := range tess.Sites {
			if j == r.Sites[0] || j == r.Sites[1] {
				continue
			}
			if p.Sub(s).Norm() < d-1e-9 {
				t.Errorf("ridge %d: point %v on ray is closer to site %d", i, p, j)
				break
			}
		}
	}
	if err := tess.validate(); err != nil {
		t.Errorf("validate() error = %v, want nil", err)
	}
}

func TestDelaunayTessellator_Errors(t *testing.T) {
	tests := []struct {
		name  string
		tess  DelaunayTessellator
		sites []r2.Point
		want  error
	}{
		{"collinear", DelaunayTessellator{}, []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}, r2delaunay.ErrCollinear},
		{"two sites", DelaunayTessellator{}, []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, r2delaunay.ErrInsufficientVertices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.tess.Tessellate(tt.sites); !errors.Is(err, tt.want) {
				t.Errorf("Tessellate(...) error = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := (DelaunayTessellator{Eps: -1}).Tessellate(utils.GenerateRandomPoints(5, 0)); err == nil {
		t.Errorf("Tessellate(...) with negative eps error = nil, want non-nil")
	}
}

func TestTriangleCircumcenter(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
		want    r2.Point
	}{
		{"right angle", r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 0, Y: 2}, r2.Point{X: 1, Y: 1}},
		{"clockwise", r2.Point{X: 0, Y: 2}, r2.Point{X: 2, Y: 0}, r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}},
		{"obtuse", r2.Point{X: -2, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 0, Y: 1}, r2.Point{X: 0, Y: -1.5}},
		{"translated", r2.Point{X: 10, Y: 10}, r2.Point{X: 12, Y: 10}, r2.Point{X: 10, Y: 12}, r2.Point{X: 11, Y: 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := triangleCircumcenter(tt.a, tt.b, tt.c)
			if got.Sub(tt.want).Norm() > 1e-9 {
				t.Errorf("triangleCircumcenter(...) = %v, want %v", got, tt.want)
			}
		})
	}
}

// Collinear sites

func TestIsCollinear(t *testing.T) {
	tests := []struct {
		name  string
		sites []r2.Point
		want  bool
	}{
		{"two sites", []r2.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}, true},
		{"horizontal", []r2.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 2, Y: 0}}, true},
		{"diagonal", []r2.Point{{X: 1, Y: 1}, {X: -1, Y: -1}, {X: 3, Y: 3}}, true},
		{"within tolerance", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1e-12}, {X: 2, Y: 0}}, true},
		{"triangle", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, false},
		{"slight bend", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1e-6}, {X: 2, Y: 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCollinear(tt.sites, 1e-9); got != tt.want {
				t.Errorf("isCollinear(%v) = %v, want %v", tt.sites, got, tt.want)
			}
		})
	}
}

func TestCollinearTessellation(t *testing.T) {
	sites := []r2.Point{{X: 10, Y: 0}, {X: 0, Y: 0}, {X: 5, Y: 0}}
	tess := collinearTessellation(sites)

	// Sites are ordered along the axis from sites[0] to the farthest site.
	want := []Ridge{
		{Sites: [2]int{0, 2}, Vertices: [2]int{-1, -1}, Direction: r2.Point{X: 0, Y: -1}, Anchor: r2.Point{X: 7.5, Y: 0}},
		{Sites: [2]int{2, 1}, Vertices: [2]int{-1, -1}, Direction: r2.Point{X: 0, Y: -1}, Anchor: r2.Point{X: 2.5, Y: 0}},
	}
	if diff := cmp.Diff(want, tess.Ridges, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("tess.Ridges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]int{{0}, {1}, {0, 1}}, tess.Regions); diff != "" {
		t.Errorf("tess.Regions mismatch (-want +got):\n%s", diff)
	}
}

// Rays

func TestRayResolver_FarPoint(t *testing.T) {
	bounds := rect(-5, -5, 15, 5)
	sites := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	tests := []struct {
		name   string
		safety float64
		anchor r2.Point
		dir    r2.Point
		wantOK bool
	}{
		{"up", 2, r2.Point{X: 5, Y: 0}, r2.Point{X: 0, Y: 1}, true},
		{"long direction", 2, r2.Point{X: 5, Y: 0}, r2.Point{X: 0, Y: -1000}, true},
		{"anchor outside", 3, r2.Point{X: 5, Y: 100}, r2.Point{X: 0, Y: 1}, true},
		{"zero direction", 2, r2.Point{X: 5, Y: 0}, r2.Point{}, false},
		{"NaN direction", 2, r2.Point{X: 5, Y: 0}, r2.Point{X: math.NaN(), Y: 1}, false},
		{"infinite anchor", 2, r2.Point{X: math.Inf(1), Y: 0}, r2.Point{X: 0, Y: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := newRayResolver(bounds, tt.safety, 1e-9)
			got, ok := rr.farPoint(tt.anchor, tt.dir, sites...)
			if ok != tt.wantOK {
				t.Fatalf("farPoint(...) ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if along := got.Sub(tt.anchor).Dot(tt.dir); along <= 0 {
				t.Errorf("farPoint(...) = %v, not along %v", got, tt.dir)
			}
			for _, s := range sites {
				reach := bounds.Size().Norm()/2 + s.Sub(bounds.Center()).Norm()
				if d := got.Sub(s).Norm(); d < tt.safety*reach {
					t.Errorf("farPoint(...) = %v is %v from site %v, want at least %v", got, d, s, tt.safety*reach)
				}
			}
		})
	}
}

func TestRayResolver_Resolve(t *testing.T) {
	tess := &Tessellation{
		Sites:    []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Vertices: []r2.Point{{X: 5, Y: 0}, {X: 5, Y: 3}, {X: math.NaN(), Y: 0}},
	}
	rr := newRayResolver(rect(-5, -5, 15, 5), 2, 1e-9)
	tests := []struct {
		name               string
		ridge              Ridge
		wantOK, farA, farB bool
	}{
		{"finite", Ridge{Sites: [2]int{0, 1}, Vertices: [2]int{0, 1}}, true, false, false},
		{"finite NaN", Ridge{Sites: [2]int{0, 1}, Vertices: [2]int{0, 2}}, false, false, false},
		{"ray", Ridge{Sites: [2]int{0, 1}, Vertices: [2]int{0, -1}, Direction: r2.Point{X: 0, Y: 1}}, true, false, true},
		{"ray zero direction", Ridge{Sites: [2]int{0, 1}, Vertices: [2]int{0, -1}}, false, false, false},
		{"line", Ridge{Sites: [2]int{0, 1}, Vertices: [2]int{-1, -1}, Direction: r2.Point{X: 0, Y: 1}, Anchor: r2.Point{X: 5, Y: 0}}, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rr.resolve(tess, tt.ridge)
			if ok != tt.wantOK {
				t.Fatalf("resolve(...) ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.FarA != tt.farA || got.FarB != tt.farB {
				t.Errorf("resolve(...) far = %v,%v, want %v,%v", got.FarA, got.FarB, tt.farA, tt.farB)
			}
			if math.Abs(got.A.X-5) > 1e-9 || math.Abs(got.B.X-5) > 1e-9 {
				t.Errorf("resolve(...) = %v, want both ends on x=5", got)
			}
		})
	}
}

// Assembly

func TestAssembleCell_Strip(t *testing.T) {
	bounds := rect(-5, -5, 15, 5)
	sites := []r2.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	tess := collinearTessellation(sites)
	rr := newRayResolver(bounds, 2, 1e-9)

	var segs []segment
	for _, r := range tess.Ridges {
		s, ok := rr.resolve(tess, r)
		if !ok {
			t.Fatalf("resolve(%v) ok = false, want true", r)
		}
		segs = append(segs, s)
	}

	poly := assembleCell(sites[1], []r2.Point{sites[0], sites[2]}, segs, 1e-9)
	if len(poly) != 4 {
		t.Fatalf("assembleCell(...) = %v, want 4 vertices", poly)
	}
	for _, p := range poly {
		if p.X < 2.5-1e-9 || p.X > 7.5+1e-9 {
			t.Errorf("assembleCell(...) vertex %v outside strip 2.5 <= x <= 7.5", p)
		}
	}
}

func TestAssembleCell_HalfPlane(t *testing.T) {
	bounds := rect(-5, -5, 15, 5)
	sites := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	tess := collinearTessellation(sites)
	rr := newRayResolver(bounds, 2, 1e-9)
	seg, ok := rr.resolve(tess, tess.Ridges[0])
	if !ok {
		t.Fatalf("resolve(...) ok = false, want true")
	}

	poly := assembleCell(sites[0], sites[1:], []segment{seg}, 1e-9)
	if len(poly) < 4 {
		t.Fatalf("assembleCell(...) = %v, want at least 4 vertices", poly)
	}
	if a := r2clip.PolygonArea(poly); a <= bounds.Size().X*bounds.Size().Y {
		t.Errorf("assembleCell(...) area = %v, want to cover the half box", a)
	}
}

func TestMergeCoincident(t *testing.T) {
	verts := []cellVertex{
		{p: r2.Point{X: 0, Y: 0}, far: true},
		{p: r2.Point{X: 0, Y: 1e-12}, far: false},
		{p: r2.Point{X: 1, Y: 0}, far: true},
		{p: r2.Point{X: 1, Y: 1}, far: true},
		{p: r2.Point{X: 1e-12, Y: 0}, far: true},
	}
	got := mergeCoincident(verts, 1e-9)
	want := []bool{false, true, true}
	if len(got) != len(want) {
		t.Fatalf("mergeCoincident(...) = %v, want %d vertices", got, len(want))
	}
	for i, v := range got {
		if v.far != want[i] {
			t.Errorf("vertex %d far = %v, want %v", i, v.far, want[i])
		}
	}
}

func TestIsSolid(t *testing.T) {
	tests := []struct {
		name string
		poly []r2.Point
		want bool
	}{
		{"square", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, true},
		{"tiny square", []r2.Point{{X: 0, Y: 0}, {X: 1e-6, Y: 0}, {X: 1e-6, Y: 1e-6}, {X: 0, Y: 1e-6}}, true},
		{"sliver", []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 1e-12}}, false},
		{"two vertices", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSolid(tt.poly, 1e-9); got != tt.want {
				t.Errorf("isSolid(%v) = %v, want %v", tt.poly, got, tt.want)
			}
		})
	}
}

func TestForEach(t *testing.T) {
	for _, workers := range []int{1, 3, 8, 20} {
		var calls atomic.Int64
		seen := make([]int, 10)
		forEach(len(seen), workers, func(i int) {
			calls.Add(1)
			seen[i]++
		})
		if got := calls.Load(); got != 10 {
			t.Errorf("forEach(10, %d) calls = %d, want 10", workers, got)
		}
		for i, n := range seen {
			if n != 1 {
				t.Errorf("forEach(10, %d) visited %d %d times, want 1", workers, i, n)
			}
		}
	}
}
