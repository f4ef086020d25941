// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package tui is a terminal viewer for Voronoi diagrams of point files.
package tui

import (
	"path/filepath"
	"strings"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/export"
	"github.com/2dChan/r2voronoi/pointfile"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	minZoom  = 0.05
	maxZoom  = 64
	zoomStep = 1.2
)

type Model struct {
	width  int
	height int

	path    string
	opts    []r2voronoi.DiagramOption
	diagram *r2voronoi.Diagram

	zoom    float64
	offsetX int
	offsetY int

	showSites bool

	status string
	failed bool

	keys keyMap
	help help.Model
}

// New returns a viewer for the point file at path. The diagram is computed
// with opts when the program starts and on every reload.
func New(path string, opts ...r2voronoi.DiagramOption) Model {
	return Model{
		path:      path,
		opts:      opts,
		zoom:      1.0,
		showSites: true,
		status:    "loading " + path,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

// Run starts the viewer on the alternate screen and blocks until it quits.
func Run(path string, opts ...r2voronoi.DiagramOption) error {
	_, err := tea.NewProgram(New(path, opts...), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return m.load() }

type loadedMsg struct {
	d   *r2voronoi.Diagram
	err error
}

type exportedMsg struct {
	path string
	err  error
}

func (m Model) load() tea.Cmd {
	path, opts := m.path, m.opts
	return func() tea.Msg {
		points, err := pointfile.ReadFile(path)
		if err != nil {
			return loadedMsg{err: err}
		}
		d, err := r2voronoi.NewDiagram(points, opts...)
		return loadedMsg{d: d, err: err}
	}
}

func (m Model) export() tea.Cmd {
	d, path := m.diagram, svgPath(m.path)
	return func() tea.Msg {
		return exportedMsg{path: path, err: export.WriteFile(path, d)}
	}
}

// svgPath places the export next to the input, never on top of it.
func svgPath(path string) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".svg") {
		return path + ".svg"
	}
	return strings.TrimSuffix(path, ext) + ".svg"
}
