// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tui

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/2dChan/r2voronoi/r2clip"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := titleStyle.Render(" r2voronoi ─ " + filepath.Base(m.path) + " ")

	status := dimStyle.Render(" " + m.status + " ")
	if m.failed {
		status = errorStyle.Render(" " + m.status + " ")
	}
	footer := lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))

	mapWidth := max(10, m.width)
	mapHeight := max(4, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	body := lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.renderMap(mapWidth, mapHeight))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(mapWidth).Height(m.height).Render(ui)
}

// renderMap draws the clipped edges and the bounding box in braille, with
// site dots highlighted.
func (m Model) renderMap(w, h int) string {
	if m.diagram == nil {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render("no diagram"))
	}
	view := m.visibleRect(w, h)

	edges := newBrailleBuf(w, h)
	corners := m.diagram.Bounds.Vertices()
	for k := range corners {
		m.drawSegment(edges, corners[k], corners[(k+1)%len(corners)], view, w, h)
	}
	for _, e := range m.diagram.Edges {
		m.drawSegment(edges, e.A, e.B, view, w, h)
	}

	sites := newBrailleBuf(w, h)
	if m.showSites {
		for _, c := range m.diagram.Cells() {
			if !view.ContainsPoint(c.Site()) {
				continue
			}
			x, y := m.screenXYMicro(c.Site(), w, h)
			sites.setPixel(x, y)
			sites.setPixel(x-1, y)
			sites.setPixel(x+1, y)
			sites.setPixel(x, y-1)
			sites.setPixel(x, y+1)
		}
	}
	return compose(edges, sites)
}

func (m Model) drawSegment(b *brailleBuf, p, q r2.Point, view r2.Rect, w, h int) {
	p, q, ok := r2clip.ClipSegment(p, q, view, 0)
	if !ok {
		return
	}
	x0, y0 := m.screenXYMicro(p, w, h)
	x1, y1 := m.screenXYMicro(q, w, h)
	b.drawLine(x0, y0, x1, y1)
}

// compose overlays the site buffer on the edge buffer, coloring every cell
// that holds a site dot.
func compose(edges, sites *brailleBuf) string {
	var sb strings.Builder
	for y := range edges.h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range edges.w {
			if sites.m[y][x] == 0 {
				sb.WriteRune(edges.rune(x, y))
				continue
			}
			mask := edges.m[y][x] | sites.m[y][x]
			sb.WriteString(siteStyle.Render(string(rune(0x2800 + int(mask)))))
		}
	}
	return sb.String()
}

// microScale returns micro pixels per world unit. The bounds are fitted into
// the canvas keeping their aspect ratio, then zoomed around the center.
func (m Model) microScale(w, h int) float64 {
	b := m.diagram.Bounds
	sx := float64(w*2-1) / b.X.Length()
	sy := float64(h*4-1) / b.Y.Length()
	return math.Min(sx, sy) * m.zoom
}

// screenXYMicro maps p onto the 2x4 micro grid of a w*h cell canvas.
func (m Model) screenXYMicro(p r2.Point, w, h int) (int, int) {
	c := m.diagram.Bounds.Center()
	s := m.microScale(w, h)
	x := float64(w*2-1)/2 + (p.X-c.X)*s
	y := float64(h*4-1)/2 - (p.Y-c.Y)*s
	return int(math.Round(x)) + m.offsetX*2, int(math.Round(y)) + m.offsetY*4
}

func (m Model) microToWorld(mx, my, w, h int) r2.Point {
	c := m.diagram.Bounds.Center()
	s := m.microScale(w, h)
	x := float64(mx-m.offsetX*2) - float64(w*2-1)/2
	y := float64(my-m.offsetY*4) - float64(h*4-1)/2
	return r2.Point{X: c.X + x/s, Y: c.Y - y/s}
}

// visibleRect is the world rectangle covered by the canvas plus one micro
// pixel on every side.
func (m Model) visibleRect(w, h int) r2.Rect {
	return r2.RectFromPoints(m.microToWorld(-1, -1, w, h), m.microToWorld(w*2, h*4, w, h))
}
