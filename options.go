// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

const (
	defaultMargin      = 0.1
	defaultMinSpan     = 1.0
	defaultTolerance   = 1e-9
	defaultMinSites    = 2
	defaultRaySafety   = 2.0
	defaultParallelism = 1
)

// DiagramOptions holds the knobs of a single diagram computation. The zero
// value is not usable; NewDiagram starts from the defaults.
type DiagramOptions struct {
	// Margin is the fraction of the larger side of the tight site bounds
	// added on every side of the bounding box.
	Margin float64
	// MinSpan replaces a zero width or height of the tight site bounds.
	MinSpan float64
	// Tolerance is the absolute tolerance used for duplicate collapsing and
	// half-plane classification.
	Tolerance float64
	// MinSites is the minimum number of sites accepted.
	MinSites int
	// RaySafety scales how far rays are extended past the bounding box.
	RaySafety float64
	// Bounds, when non-empty, replaces the computed bounding box.
	Bounds r2.Rect
	// Tessellator produces the raw tessellation; nil selects Delaunay.
	Tessellator Tessellator
	// Parallelism is the number of goroutines used for cell construction.
	Parallelism int
	Logger      *zap.Logger
}

func defaultOptions() DiagramOptions {
	return DiagramOptions{
		Margin:      defaultMargin,
		MinSpan:     defaultMinSpan,
		Tolerance:   defaultTolerance,
		MinSites:    defaultMinSites,
		RaySafety:   defaultRaySafety,
		Bounds:      r2.EmptyRect(),
		Parallelism: defaultParallelism,
		Logger:      zap.NewNop(),
	}
}

type DiagramOption func(*DiagramOptions) error

func WithMargin(margin float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if margin < 0 || math.IsNaN(margin) || math.IsInf(margin, 0) {
			return fmt.Errorf("%w: WithMargin: margin must be finite and non-negative, got %v", ErrInvalidOption, margin)
		}
		o.Margin = margin
		return nil
	}
}

func WithMinSpan(span float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
			return fmt.Errorf("%w: WithMinSpan: span must be finite and positive, got %v", ErrInvalidOption, span)
		}
		o.MinSpan = span
		return nil
	}
}

func WithTolerance(tol float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			return fmt.Errorf("%w: WithTolerance: tolerance must be finite and positive, got %v", ErrInvalidOption, tol)
		}
		o.Tolerance = tol
		return nil
	}
}

func WithMinSites(n int) DiagramOption {
	return func(o *DiagramOptions) error {
		if n < 2 {
			return fmt.Errorf("%w: WithMinSites: at least 2 sites are needed for a partition, got %d", ErrInvalidOption, n)
		}
		o.MinSites = n
		return nil
	}
}

// WithRaySafety sets the multiplier applied to the bounding box reach when
// rays are extended to finite far points. Values below 2 cannot guarantee
// that the synthetic closing edges stay outside the box.
func WithRaySafety(k float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if k < 2 || math.IsNaN(k) || math.IsInf(k, 0) {
			return fmt.Errorf("%w: WithRaySafety: multiplier must be finite and at least 2, got %v", ErrInvalidOption, k)
		}
		o.RaySafety = k
		return nil
	}
}

// WithBounds clips the diagram to r instead of the box computed from the sites.
func WithBounds(r r2.Rect) DiagramOption {
	return func(o *DiagramOptions) error {
		if !r.IsValid() || r.IsEmpty() || r.X.Length() <= 0 || r.Y.Length() <= 0 {
			return fmt.Errorf("%w: WithBounds: bounds must have positive width and height, got %v", ErrInvalidOption, r)
		}
		o.Bounds = r
		return nil
	}
}

func WithTessellator(t Tessellator) DiagramOption {
	return func(o *DiagramOptions) error {
		if t == nil {
			return fmt.Errorf("%w: WithTessellator: tessellator is nil", ErrInvalidOption)
		}
		o.Tessellator = t
		return nil
	}
}

func WithParallelism(n int) DiagramOption {
	return func(o *DiagramOptions) error {
		if n < 1 {
			return fmt.Errorf("%w: WithParallelism: need at least one worker, got %d", ErrInvalidOption, n)
		}
		o.Parallelism = n
		return nil
	}
}

func WithLogger(l *zap.Logger) DiagramOption {
	return func(o *DiagramOptions) error {
		if l == nil {
			return fmt.Errorf("%w: WithLogger: logger is nil", ErrInvalidOption)
		}
		o.Logger = l
		return nil
	}
}
