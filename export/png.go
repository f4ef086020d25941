// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/2dChan/r2voronoi"
	"github.com/golang/geo/r2"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const siteSegments = 24

// PNG rasterizes filled cells, clipped edges and sites with anti-aliasing.
type PNG struct {
	Size    int
	Padding float64
	Style   Style
}

func NewPNG() *PNG {
	return &PNG{Size: defaultSize, Padding: 4 * defaultPadding, Style: DefaultStyle()}
}

func (e *PNG) Export(w io.Writer, d *r2voronoi.Diagram) error {
	img, err := e.Render(d)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Render draws d onto a new image.
func (e *PNG) Render(d *r2voronoi.Diagram) (*image.RGBA, error) {
	vp, err := NewViewport(d.Bounds, e.Size, e.Padding)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(e.Style.Background), image.Point{}, draw.Src)
	p := painter{img: img, z: vector.NewRasterizer(vp.Width, vp.Height)}

	if e.Style.FillCells {
		for _, c := range d.Cells() {
			poly := make([]r2.Point, c.NumVertices())
			for i, v := range c.Vertices() {
				poly[i] = vp.Project(v)
			}
			p.fill(poly, CellColor(c.SiteIndex()))
		}
	}
	for _, edge := range d.Edges {
		p.fill(strokeQuad(vp.Project(edge.A), vp.Project(edge.B), e.Style.EdgeWidth), e.Style.Edge)
	}
	if e.Style.ShowSites {
		for _, s := range d.Sites {
			p.fill(disc(vp.Project(s), e.Style.SiteRadius), e.Style.Site)
		}
	}
	return img, nil
}

type painter struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// fill paints the polygon poly, given in pixel coordinates. Only the pixels
// under the bounding box of poly are rasterized.
func (p painter) fill(poly []r2.Point, c color.Color) {
	if len(poly) < 3 {
		return
	}
	r := pixelBounds(poly).Intersect(p.img.Bounds())
	if r.Empty() {
		return
	}
	p.z.Reset(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for i, q := range poly {
		if i == 0 {
			p.z.MoveTo(float32(q.X-ox), float32(q.Y-oy))
		} else {
			p.z.LineTo(float32(q.X-ox), float32(q.Y-oy))
		}
	}
	p.z.ClosePath()
	p.z.Draw(p.img, r, image.NewUniform(c), image.Point{})
}

// pixelBounds returns the smallest pixel rectangle covering poly.
func pixelBounds(poly []r2.Point) image.Rectangle {
	b := r2.RectFromPoints(poly...)
	return image.Rect(
		int(math.Floor(b.X.Lo)), int(math.Floor(b.Y.Lo)),
		int(math.Ceil(b.X.Hi)), int(math.Ceil(b.Y.Hi)),
	)
}

// strokeQuad returns the rectangle of the given width around segment ab.
func strokeQuad(a, b r2.Point, width float64) []r2.Point {
	d := b.Sub(a)
	if d.Norm() == 0 {
		return nil
	}
	n := d.Ortho().Normalize().Mul(width / 2)
	return []r2.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

func disc(c r2.Point, r float64) []r2.Point {
	poly := make([]r2.Point, siteSegments)
	for i := range poly {
		angle := 2 * math.Pi * float64(i) / siteSegments
		poly[i] = c.Add(r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(r))
	}
	return poly
}
