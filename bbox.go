// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// NewBoundingBox returns the rectangle enclosing sites, widened by the
// configured margin fraction of its larger side. An axis on which all sites
// agree within tolerance is first widened to the configured minimum span, so
// the result always has positive width and height.
//
// Only WithMargin, WithMinSpan and WithTolerance affect the result.
func NewBoundingBox(sites []r2.Point, setters ...DiagramOption) (r2.Rect, error) {
	opts := defaultOptions()
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return r2.EmptyRect(), err
		}
	}
	if len(sites) == 0 {
		return r2.EmptyRect(), fmt.Errorf("%w: bounding box of no sites", ErrInsufficientSites)
	}
	for i, p := range sites {
		if !isFinite(p) {
			return r2.EmptyRect(), fmt.Errorf("%w: site %d %v is not finite", ErrInvalidSite, i, p)
		}
	}
	return boundingBox(sites, opts), nil
}

func boundingBox(sites []r2.Point, opts DiagramOptions) r2.Rect {
	r := r2.RectFromPoints(sites...)
	r.X = widen(r.X, opts.MinSpan, opts.Tolerance)
	r.Y = widen(r.Y, opts.MinSpan, opts.Tolerance)

	margin := opts.Margin * math.Max(r.X.Length(), r.Y.Length())
	return r.ExpandedByMargin(margin)
}

func widen(i r1.Interval, span, tol float64) r1.Interval {
	if i.Length() > tol {
		return i
	}
	c := i.Center()
	return r1.Interval{Lo: c - span/2, Hi: c + span/2}
}

func isFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
