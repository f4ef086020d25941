// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating planar sites for Voronoi diagrams.
package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates random points in the unit square [0,1)x[0,1).
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64) []r2.Point {
	return GenerateRandomPointsInRect(cnt, seed, r2.RectFromPoints(r2.Point{}, r2.Point{X: 1, Y: 1}))
}

// GenerateRandomPointsInRect generates random points uniformly inside r.
// The seed parameter ensures reproducibility.
func GenerateRandomPointsInRect(cnt int, seed int64, r r2.Rect) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	sites := make([]r2.Point, cnt)

	for i := range cnt {
		sites[i] = r2.Point{
			X: r.X.Lo + random.Float64()*r.X.Length(),
			Y: r.Y.Lo + random.Float64()*r.Y.Length(),
		}
	}

	return sites
}

// GenerateGridPoints places cnt points on the centers of a near-square grid
// covering r, row by row from the bottom.
func GenerateGridPoints(cnt int, r r2.Rect) []r2.Point {
	if cnt <= 0 {
		return nil
	}
	rows := 1
	for rows*rows < cnt {
		rows++
	}
	cols := (cnt + rows - 1) / rows

	xStep := r.X.Length() / float64(cols)
	yStep := r.Y.Length() / float64(rows)
	sites := make([]r2.Point, 0, cnt)
	for i := 0; i < rows && len(sites) < cnt; i++ {
		for j := 0; j < cols && len(sites) < cnt; j++ {
			sites = append(sites, r2.Point{
				X: r.X.Lo + xStep/2 + float64(j)*xStep,
				Y: r.Y.Lo + yStep/2 + float64(i)*yStep,
			})
		}
	}
	return sites
}
