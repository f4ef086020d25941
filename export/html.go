// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"fmt"
	"io"

	"github.com/2dChan/r2voronoi"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTML renders an interactive echarts page with sites as a scatter series
// and every clipped edge as a line.
type HTML struct {
	Title  string
	Width  string
	Height string
}

func NewHTML() *HTML {
	return &HTML{Title: "Voronoi diagram", Width: "1000px", Height: "1000px"}
}

func (e *HTML) Export(w io.Writer, d *r2voronoi.Diagram) error {
	return e.Chart(d).Render(w)
}

// Chart builds the chart without rendering it, so callers can embed it in
// their own page.
func (e *HTML) Chart(d *r2voronoi.Diagram) *charts.Scatter {
	style := DefaultStyle()

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: e.Title,
			Width:     e.Width,
			Height:    e.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    e.Title,
			Subtitle: fmt.Sprintf("%d of %d sites rendered", d.NumRendered(), d.NumCells()),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Min:  d.Bounds.X.Lo,
			Max:  d.Bounds.X.Hi,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Min:  d.Bounds.Y.Lo,
			Max:  d.Bounds.Y.Hi,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)

	points := make([]opts.ScatterData, 0, d.NumCells())
	for i, s := range d.Sites {
		points = append(points, opts.ScatterData{
			Name:       fmt.Sprintf("site %d", i),
			Value:      []float64{s.X, s.Y},
			SymbolSize: 6,
		})
	}
	scatter.AddSeries("Sites", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: hexColor(style.Site),
			}),
		)

	line := charts.NewLine()
	for _, edge := range d.Edges {
		line.AddSeries("Edges", []opts.LineData{
			{Value: []float64{edge.A.X, edge.A.Y}},
			{Value: []float64{edge.B.X, edge.B.Y}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: hexColor(style.Edge),
				Width: 1,
			}),
		)
	}
	scatter.Overlap(line)

	return scatter
}
