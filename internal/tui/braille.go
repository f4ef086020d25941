// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tui

// brailleBuf is a canvas of w*h terminal cells, each holding a 2x4 grid of
// micro pixels encoded as a braille pattern.
type brailleBuf struct {
	w, h int
	m    [][]uint8
}

// Dot bits indexed by [column][row] within a cell.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// setPixel sets the micro pixel at (mx, my). Pixels off the canvas are
// ignored.
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= b.w || cy >= b.h {
		return
	}
	b.m[cy][cx] |= brailleBits[mx%2][my%4]
}

// drawLine draws a line on the micro grid using Bresenham.
func (b *brailleBuf) drawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) rune(x, y int) rune {
	if b.m[y][x] == 0 {
		return ' '
	}
	return rune(0x2800 + int(b.m[y][x]))
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := range b.h {
		row := make([]rune, b.w)
		for x := range b.w {
			row[x] = b.rune(x, y)
		}
		out[y] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
