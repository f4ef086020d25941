// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case loadedMsg:
		if msg.err != nil {
			// Keep showing the last good diagram.
			m.failed = true
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.failed = false
		m.diagram = msg.d
		m.status = fmt.Sprintf("%d of %d sites rendered", msg.d.NumRendered(), msg.d.NumCells())
	case exportedMsg:
		if msg.err != nil {
			m.failed = true
			m.status = "export failed: " + msg.err.Error()
			return m, nil
		}
		m.failed = false
		m.status = "exported " + msg.path
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.offsetY -= 1
	case key.Matches(msg, m.keys.Down):
		m.offsetY += 1
	case key.Matches(msg, m.keys.Left):
		m.offsetX -= 2
	case key.Matches(msg, m.keys.Right):
		m.offsetX += 2
	case key.Matches(msg, m.keys.ZoomIn):
		if m.zoom < maxZoom {
			m.zoom *= zoomStep
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case key.Matches(msg, m.keys.ZoomOut):
		if m.zoom > minZoom {
			m.zoom /= zoomStep
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case key.Matches(msg, m.keys.Reload):
		m.status = "reloading " + m.path
		return m, m.load()
	case key.Matches(msg, m.keys.Export):
		if m.diagram == nil {
			m.status = "nothing to export"
			return m, nil
		}
		m.status = "exporting " + svgPath(m.path)
		return m, m.export()
	case key.Matches(msg, m.keys.Sites):
		m.showSites = !m.showSites
		m.status = fmt.Sprintf("sites: %v", m.showSites)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}
