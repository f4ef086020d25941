// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/2dChan/r2voronoi/r2clip"
	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// Diagram is a Voronoi diagram clipped to a rectangle. Cells are indexed by
// the position of their site in Sites; a dropped site has an empty cell and a
// matching entry in Dropped.
type Diagram struct {
	Sites  []r2.Point
	Bounds r2.Rect

	// NOTE: Sorted in CCW per Cell.
	CellVertices []r2.Point
	CellOffsets  []int
	// NOTE: Sorted in CCW per Cell by the direction from the site.
	CellNeighbors   []int
	NeighborOffsets []int

	// Edges are the ridges shared by two cells, clipped to Bounds.
	Edges []Edge
	// Dropped is sorted by Index.
	Dropped []DroppedSite
}

// Edge is a clipped ridge between the cells of Sites[0] and Sites[1].
type Edge struct {
	A, B  r2.Point
	Sites [2]int
}

func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

// Cell returns the cell of site i.
// It returns an error if the index is out of range.
func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= d.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, d.NumCells())
	}
	return Cell{idx: i, d: d}, nil
}

// Cells returns the non-empty cells in site order.
func (d *Diagram) Cells() []Cell {
	cells := make([]Cell, 0, d.NumRendered())
	for i := range d.NumCells() {
		c := Cell{idx: i, d: d}
		if !c.IsEmpty() {
			cells = append(cells, c)
		}
	}
	return cells
}

// NumRendered returns the number of non-empty cells.
func (d *Diagram) NumRendered() int {
	return d.NumCells() - len(d.Dropped)
}

// Locate returns the index of the site whose cell contains p. Duplicate sites
// are skipped in favor of their first occurrence. It reports false when p
// lies outside Bounds.
func (d *Diagram) Locate(p r2.Point) (int, bool) {
	if !d.Bounds.ContainsPoint(p) {
		return -1, false
	}
	dup := make(map[int]bool, len(d.Dropped))
	for _, ds := range d.Dropped {
		if ds.Reason == DropDuplicate {
			dup[ds.Index] = true
		}
	}
	best, bestDist := -1, math.Inf(1)
	for i, s := range d.Sites {
		if dup[i] {
			continue
		}
		if dist := p.Sub(s).Norm(); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best, best >= 0
}

// NewDiagram computes the Voronoi diagram of sites clipped to a bounding box.
//
// Sites with the exact coordinates of an earlier site are dropped as
// duplicates. Cells that cannot be assembled or vanish under clipping are
// dropped as well and reported in Diagram.Dropped; neither is an error.
func NewDiagram(sites []r2.Point, setters ...DiagramOption) (*Diagram, error) {
	opts := defaultOptions()
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	log := opts.Logger

	if len(sites) < opts.MinSites {
		return nil, fmt.Errorf("%w: need at least %d, got %d", ErrInsufficientSites, opts.MinSites, len(sites))
	}
	for i, p := range sites {
		if !isFinite(p) {
			return nil, fmt.Errorf("%w: site %d %v is not finite", ErrInvalidSite, i, p)
		}
	}

	reasons := make([]DropReason, len(sites))
	distinct := uniqueSites(sites, reasons)
	if len(distinct) == 1 {
		return nil, fmt.Errorf("%w: all %d sites coincide", ErrDegenerateGeometry, len(sites))
	}
	if len(distinct) < opts.MinSites {
		return nil, fmt.Errorf("%w: need at least %d distinct, got %d", ErrInsufficientSites, opts.MinSites, len(distinct))
	}

	points := make([]r2.Point, len(distinct))
	for k, i := range distinct {
		points[k] = sites[i]
	}
	if coincident(points, opts.Tolerance) {
		return nil, fmt.Errorf("%w: all sites lie within %v of each other", ErrDegenerateGeometry, opts.Tolerance)
	}

	bounds := opts.Bounds
	if bounds.IsEmpty() {
		bounds = boundingBox(points, opts)
	}

	tess, err := tessellate(points, opts)
	if err != nil {
		return nil, err
	}
	log.Debug("tessellation computed",
		zap.Int("sites", len(points)),
		zap.Int("vertices", len(tess.Vertices)),
		zap.Int("ridges", len(tess.Ridges)),
	)

	rr := newRayResolver(bounds, opts.RaySafety, opts.Tolerance)
	segs := make([]segment, len(tess.Ridges))
	valid := make([]bool, len(tess.Ridges))
	for i, r := range tess.Ridges {
		segs[i], valid[i] = rr.resolve(tess, r)
		if !valid[i] {
			log.Warn("degenerate ridge skipped",
				zap.Int("site_a", distinct[r.Sites[0]]),
				zap.Int("site_b", distinct[r.Sites[1]]),
			)
		}
	}

	polys := make([][]r2.Point, len(points))
	drops := make([]DropReason, len(points))
	forEach(len(points), opts.Parallelism, func(k int) {
		polys[k], drops[k] = buildCell(tess, k, segs, valid, bounds, opts.Tolerance)
	})

	d := &Diagram{
		Sites:           slices.Clone(sites),
		Bounds:          bounds,
		CellOffsets:     make([]int, 0, len(sites)+1),
		NeighborOffsets: make([]int, 0, len(sites)+1),
	}
	local := make([]int, len(sites))
	for i := range local {
		local[i] = -1
	}
	for k, i := range distinct {
		local[i] = k
		reasons[i] = drops[k]
	}

	for i := range sites {
		d.CellOffsets = append(d.CellOffsets, len(d.CellVertices))
		d.NeighborOffsets = append(d.NeighborOffsets, len(d.CellNeighbors))
		if reasons[i] != 0 {
			d.Dropped = append(d.Dropped, DroppedSite{Index: i, Reason: reasons[i]})
			log.Warn("site dropped",
				zap.Int("site", i),
				zap.Stringer("reason", reasons[i]),
			)
			continue
		}
		k := local[i]
		d.CellVertices = append(d.CellVertices, polys[k]...)
		d.CellNeighbors = append(d.CellNeighbors, cellNeighbors(tess, k, distinct)...)
	}
	d.CellOffsets = append(d.CellOffsets, len(d.CellVertices))
	d.NeighborOffsets = append(d.NeighborOffsets, len(d.CellNeighbors))

	for i, r := range tess.Ridges {
		if !valid[i] {
			continue
		}
		a, b, ok := r2clip.ClipSegment(segs[i].A, segs[i].B, bounds, opts.Tolerance)
		if !ok || a.Sub(b).Norm() <= opts.Tolerance {
			continue
		}
		d.Edges = append(d.Edges, Edge{A: a, B: b, Sites: [2]int{distinct[r.Sites[0]], distinct[r.Sites[1]]}})
	}

	log.Debug("diagram computed",
		zap.Int("sites", len(sites)),
		zap.Int("rendered", d.NumRendered()),
		zap.Int("dropped", len(d.Dropped)),
		zap.Int("edges", len(d.Edges)),
	)
	return d, nil
}

// uniqueSites returns the indices of the first occurrence of every distinct
// site and marks later copies in reasons.
func uniqueSites(sites []r2.Point, reasons []DropReason) []int {
	seen := make(map[r2.Point]bool, len(sites))
	distinct := make([]int, 0, len(sites))
	for i, p := range sites {
		if seen[p] {
			reasons[i] = DropDuplicate
			continue
		}
		seen[p] = true
		distinct = append(distinct, i)
	}
	return distinct
}

func coincident(points []r2.Point, tol float64) bool {
	for _, p := range points[1:] {
		if p.Sub(points[0]).Norm() > tol {
			return false
		}
	}
	return true
}

func tessellate(points []r2.Point, opts DiagramOptions) (*Tessellation, error) {
	if isCollinear(points, opts.Tolerance) {
		opts.Logger.Debug("sites are collinear, using strip tessellation", zap.Int("sites", len(points)))
		return collinearTessellation(points), nil
	}

	t := opts.Tessellator
	if t == nil {
		t = DelaunayTessellator{}
	}
	tess, err := t.Tessellate(points)
	if errors.Is(err, r2delaunay.ErrCollinear) {
		opts.Logger.Debug("triangulation found collinear sites, using strip tessellation", zap.Int("sites", len(points)))
		return collinearTessellation(points), nil
	}
	if err != nil {
		return nil, fmt.Errorf("r2voronoi: tessellate: %w", err)
	}
	if err := tess.validate(); err != nil {
		return nil, err
	}
	return tess, nil
}

// buildCell assembles and clips the cell of local site k. A non-zero reason
// tells why the cell has no polygon.
func buildCell(t *Tessellation, k int, segs []segment, valid []bool, bounds r2.Rect, tol float64) ([]r2.Point, DropReason) {
	site := t.Sites[k]
	region := t.Regions[k]
	cellSegs := make([]segment, 0, len(region))
	neighbors := make([]r2.Point, 0, len(region))
	for _, rIdx := range region {
		r := t.Ridges[rIdx]
		other := r.Sites[0]
		if other == k {
			other = r.Sites[1]
		}
		neighbors = append(neighbors, t.Sites[other])
		if valid[rIdx] {
			cellSegs = append(cellSegs, segs[rIdx])
		}
	}

	poly := assembleCell(site, neighbors, cellSegs, tol)
	if len(poly) < 3 {
		return nil, DropUnassembled
	}
	poly = r2clip.ClipRect(poly, bounds, tol)
	if !isSolid(poly, tol) {
		return nil, DropClipped
	}
	return poly, 0
}

// isSolid reports whether poly has at least three vertices and an average
// width above tol.
func isSolid(poly []r2.Point, tol float64) bool {
	if len(poly) < 3 {
		return false
	}
	var perimeter float64
	for i, p := range poly {
		perimeter += poly[(i+1)%len(poly)].Sub(p).Norm()
	}
	return math.Abs(r2clip.PolygonArea(poly)) > tol*perimeter/2
}

// cellNeighbors returns the original indices of the Voronoi neighbors of local
// site k, sorted counter-clockwise by direction from the site.
func cellNeighbors(t *Tessellation, k int, distinct []int) []int {
	site := t.Sites[k]
	local := make([]int, 0, len(t.Regions[k]))
	for _, rIdx := range t.Regions[k] {
		r := t.Ridges[rIdx]
		other := r.Sites[0]
		if other == k {
			other = r.Sites[1]
		}
		if !slices.Contains(local, other) {
			local = append(local, other)
		}
	}
	angle := func(j int) float64 {
		v := t.Sites[j].Sub(site)
		return math.Atan2(v.Y, v.X)
	}
	slices.SortStableFunc(local, func(a, b int) int {
		return cmp.Compare(angle(a), angle(b))
	})

	neighbors := make([]int, len(local))
	for i, j := range local {
		neighbors[i] = distinct[j]
	}
	return neighbors
}

// forEach calls fn for every index in [0, n) on up to workers goroutines.
func forEach(n, workers int, fn func(i int)) {
	if workers <= 1 || n < 2 {
		for i := range n {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}()
	}
	wg.Wait()
}
