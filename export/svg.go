// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"fmt"
	"io"
	"math"

	"github.com/2dChan/r2voronoi"
	svg "github.com/ajstarks/svgo"
)

// SVG renders filled cells, clipped edges and sites as an SVG document.
type SVG struct {
	Size    int
	Padding float64
	Style   Style
}

func NewSVG() *SVG {
	return &SVG{Size: defaultSize, Padding: defaultPadding, Style: DefaultStyle()}
}

func (e *SVG) Export(w io.Writer, d *r2voronoi.Diagram) error {
	vp, err := NewViewport(d.Bounds, e.Size, e.Padding)
	if err != nil {
		return err
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(vp.Width, vp.Height)
	canvas.Title(fmt.Sprintf("Voronoi diagram of %d sites", d.NumCells()))
	canvas.Rect(0, 0, vp.Width, vp.Height, "fill:"+hexColor(e.Style.Background))

	if e.Style.FillCells {
		for _, c := range d.Cells() {
			xs, ys := vp.projectInts(c.Vertices())
			canvas.Polygon(xs, ys, "fill:"+hexColor(CellColor(c.SiteIndex())))
		}
	}

	edgeStyle := fmt.Sprintf("stroke:%s;stroke-width:%g", hexColor(e.Style.Edge), e.Style.EdgeWidth)
	canvas.Gstyle(edgeStyle)
	for _, edge := range d.Edges {
		x1, y1 := vp.projectInt(edge.A)
		x2, y2 := vp.projectInt(edge.B)
		canvas.Line(x1, y1, x2, y2)
	}
	canvas.Gend()

	if e.Style.ShowSites {
		r := max(1, int(math.Round(e.Style.SiteRadius)))
		canvas.Gstyle("fill:" + hexColor(e.Style.Site))
		for _, s := range d.Sites {
			x, y := vp.projectInt(s)
			canvas.Circle(x, y, r)
		}
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}
