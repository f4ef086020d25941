// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package export writes Voronoi diagrams as SVG, PNG, interactive HTML or
// GeoJSON.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2dChan/r2voronoi"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"
)

const (
	defaultSize    = 1000
	defaultPadding = 5.0

	goldenRatio    = 0.61803398875
	cellSaturation = 0.45
	cellValue      = 0.85
)

var (
	ErrUnknownFormat = errors.New("export: unknown format")
	ErrInvalidSize   = errors.New("export: invalid size")
)

// Exporter writes a diagram to w.
type Exporter interface {
	Export(w io.Writer, d *r2voronoi.Diagram) error
}

// ForPath returns the default exporter for the extension of path.
func ForPath(path string) (Exporter, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		return NewSVG(), nil
	case ".png":
		return NewPNG(), nil
	case ".html", ".htm":
		return NewHTML(), nil
	case ".geojson", ".json":
		return NewGeoJSON(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, ext)
	}
}

// WriteFile exports d to path in the format picked by ForPath.
func WriteFile(path string, d *r2voronoi.Diagram) error {
	e, err := ForPath(path)
	if err != nil {
		return err
	}
	return WriteWith(e, path, d)
}

// WriteWith exports d to path with e, replacing any existing file.
func WriteWith(e Exporter, path string, d *r2voronoi.Diagram) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return e.Export(f, d)
}

type Style struct {
	Background color.RGBA
	Edge       color.RGBA
	EdgeWidth  float64
	Site       color.RGBA
	SiteRadius float64
	ShowSites  bool
	FillCells  bool
}

func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{R: 0xfb, G: 0xfc, B: 0xff, A: 0xff},
		Edge:       color.RGBA{R: 0x22, G: 0x30, B: 0x47, A: 0xff},
		EdgeWidth:  1,
		Site:       color.RGBA{R: 0xd7, G: 0x26, B: 0x3d, A: 0xff},
		SiteRadius: 3,
		ShowSites:  true,
		FillCells:  true,
	}
}

// CellColor returns the fill color of the cell of site i. Hues advance by the
// golden ratio so neighboring indices get well separated colors.
func CellColor(i int) color.RGBA {
	hue := float64(i) * goldenRatio
	hue -= float64(int(hue))
	r, g, b := colorful.Hsv(hue*360, cellSaturation, cellValue).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// errWriter keeps the first write error of writers that do not report one.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
