// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Viewport maps diagram coordinates onto an image whose y axis points down.
// Bounds is scaled uniformly so its larger side spans the image minus
// Padding pixels on every side.
type Viewport struct {
	Bounds  r2.Rect
	Scale   float64
	Padding float64
	Width   int
	Height  int
}

func NewViewport(bounds r2.Rect, size int, padding float64) (Viewport, error) {
	inner := float64(size) - 2*padding
	side := math.Max(bounds.X.Length(), bounds.Y.Length())
	if inner <= 0 || padding < 0 {
		return Viewport{}, fmt.Errorf("%w: size %d with padding %v", ErrInvalidSize, size, padding)
	}
	if !(side > 0) {
		return Viewport{}, fmt.Errorf("%w: bounds %v", ErrInvalidSize, bounds)
	}
	scale := inner / side
	return Viewport{
		Bounds:  bounds,
		Scale:   scale,
		Padding: padding,
		Width:   pixels(bounds.X.Length()*scale + 2*padding),
		Height:  pixels(bounds.Y.Length()*scale + 2*padding),
	}, nil
}

// pixels rounds an image extent up, ignoring float noise so that the larger
// side comes out at exactly the requested size.
func pixels(v float64) int {
	return int(math.Ceil(v - 1e-6))
}

// Project maps p to image coordinates.
func (v Viewport) Project(p r2.Point) r2.Point {
	return r2.Point{
		X: (p.X-v.Bounds.X.Lo)*v.Scale + v.Padding,
		Y: (v.Bounds.Y.Hi-p.Y)*v.Scale + v.Padding,
	}
}

// Unproject is the inverse of Project.
func (v Viewport) Unproject(q r2.Point) r2.Point {
	return r2.Point{
		X: (q.X-v.Padding)/v.Scale + v.Bounds.X.Lo,
		Y: v.Bounds.Y.Hi - (q.Y-v.Padding)/v.Scale,
	}
}

func (v Viewport) projectInts(poly []r2.Point) ([]int, []int) {
	xs := make([]int, len(poly))
	ys := make([]int, len(poly))
	for i, p := range poly {
		xs[i], ys[i] = v.projectInt(p)
	}
	return xs, ys
}

func (v Viewport) projectInt(p r2.Point) (int, int) {
	q := v.Project(p)
	return int(math.Round(q.X)), int(math.Round(q.Y))
}
