// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"
	"slices"
)

// Relaxed returns the diagram after steps rounds of Lloyd relaxation. Every
// site moves to the centroid of its cell and the diagram is recomputed inside
// the same bounds; sites with empty cells stay where they are. setters are
// applied after WithBounds(d.Bounds), so they may override it.
//
// d is left untouched. Zero steps return d itself.
func (d *Diagram) Relaxed(steps int, setters ...DiagramOption) (*Diagram, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: Relaxed: steps must be non-negative, got %d", ErrInvalidOption, steps)
	}
	cur := d
	for range steps {
		sites := slices.Clone(cur.Sites)
		for _, c := range cur.Cells() {
			sites[c.SiteIndex()] = c.Centroid()
		}

		opts := append([]DiagramOption{WithBounds(cur.Bounds)}, setters...)
		next, err := NewDiagram(sites, opts...)
		if err != nil {
			return nil, fmt.Errorf("Relaxed: %w", err)
		}
		cur = next
	}
	return cur, nil
}
