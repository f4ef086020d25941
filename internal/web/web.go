// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package web serves an interactive page that builds a Voronoi diagram from
// pasted or random points and shows it next to the computation logs.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/export"
	"github.com/2dChan/r2voronoi/internal/logger"
	"github.com/2dChan/r2voronoi/pointfile"
	"github.com/2dChan/r2voronoi/utils"
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultCount  = 50
	defaultSeed   = 1
	defaultWidth  = 1000
	defaultHeight = 1000

	maxCount = 5000
	maxRelax = 20
	maxSide  = 1e6
)

var ErrBadRequest = errors.New("web: bad request")

// Request holds the form values of one diagram page.
type Request struct {
	Points string
	Count  int
	Seed   int64
	Width  float64
	Height float64
	Relax  int
}

func DefaultRequest() Request {
	return Request{
		Count:  defaultCount,
		Seed:   defaultSeed,
		Width:  defaultWidth,
		Height: defaultHeight,
	}
}

// ParseRequest reads the form of r on top of the defaults. Empty fields keep
// their default.
func ParseRequest(r *http.Request) (Request, error) {
	req := DefaultRequest()
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	req.Points = r.FormValue("points")

	var err error
	if req.Count, err = formInt(r, "count", req.Count); err != nil {
		return req, err
	}
	seed, err := formInt(r, "seed", int(req.Seed))
	if err != nil {
		return req, err
	}
	req.Seed = int64(seed)
	if req.Width, err = formFloat(r, "width", req.Width); err != nil {
		return req, err
	}
	if req.Height, err = formFloat(r, "height", req.Height); err != nil {
		return req, err
	}
	if req.Relax, err = formInt(r, "relax", req.Relax); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (req Request) validate() error {
	switch {
	case req.Count < 1 || req.Count > maxCount:
		return fmt.Errorf("%w: count must be in [1, %d], got %d", ErrBadRequest, maxCount, req.Count)
	case !(req.Width > 0 && req.Width <= maxSide):
		return fmt.Errorf("%w: width must be in (0, %g], got %g", ErrBadRequest, maxSide, req.Width)
	case !(req.Height > 0 && req.Height <= maxSide):
		return fmt.Errorf("%w: height must be in (0, %g], got %g", ErrBadRequest, maxSide, req.Height)
	case req.Relax < 0 || req.Relax > maxRelax:
		return fmt.Errorf("%w: relax must be in [0, %d], got %d", ErrBadRequest, maxRelax, req.Relax)
	}
	return nil
}

func formInt(r *http.Request, name string, def int) (int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%w: %s: %v", ErrBadRequest, name, err)
	}
	return n, nil
}

func formFloat(r *http.Request, name string, def float64) (float64, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def, fmt.Errorf("%w: %s: not a finite number: %q", ErrBadRequest, name, v)
	}
	return f, nil
}

// Diagram computes the diagram described by req, logging to log. Pasted
// points get computed bounds; random points are clipped to the W x H field
// they were drawn from.
func (req Request) Diagram(log *zap.Logger) (*r2voronoi.Diagram, error) {
	setters := []r2voronoi.DiagramOption{r2voronoi.WithLogger(log)}

	var sites []r2.Point
	if strings.TrimSpace(req.Points) != "" {
		var err error
		if sites, err = pointfile.Read(strings.NewReader(req.Points)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	} else {
		field := r2.RectFromPoints(r2.Point{}, r2.Point{X: req.Width, Y: req.Height})
		sites = utils.GenerateRandomPointsInRect(req.Count, req.Seed, field)
		setters = append(setters, r2voronoi.WithBounds(field))
	}

	d, err := r2voronoi.NewDiagram(sites, setters...)
	if err != nil {
		return nil, err
	}
	return d.Relaxed(req.Relax, r2voronoi.WithLogger(log))
}

// Handler serves the diagram page on GET and rebuilds it from the form on
// POST.
type Handler struct {
	log   *zap.Logger
	chart *export.HTML
}

func NewHandler(log *zap.Logger) *Handler {
	chart := export.NewHTML()
	chart.Width, chart.Height = "900px", "900px"
	return &Handler{log: log, chart: chart}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req := DefaultRequest()
	var err error
	if r.Method == http.MethodPost {
		req, err = ParseRequest(r)
	}

	logs := logger.NewBuffered(zapcore.DebugLevel)
	var d *r2voronoi.Diagram
	if err == nil {
		d, err = req.Diagram(logs.Logger)
	}

	var chart bytes.Buffer
	if err == nil {
		err = h.chart.Chart(d).Render(&chart)
	}

	status := http.StatusOK
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, r2voronoi.ErrInsufficientSites),
		errors.Is(err, r2voronoi.ErrInvalidSite), errors.Is(err, r2voronoi.ErrDegenerateGeometry):
		status = http.StatusBadRequest
	case err != nil:
		status = http.StatusInternalServerError
	}
	if err != nil {
		h.log.Warn("diagram request failed", zap.String("method", r.Method), zap.Error(err))
	} else {
		h.log.Info("diagram served",
			zap.String("method", r.Method),
			zap.Int("sites", d.NumCells()),
			zap.Int("rendered", d.NumRendered()),
		)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	h.writePage(w, req, chart.Bytes(), logs, err)
}

func (h *Handler) writePage(w http.ResponseWriter, req Request, chart []byte, logs *logger.Buffered, failure error) {
	fmt.Fprint(w, pageHead)
	fmt.Fprintf(w, pageForm,
		html.EscapeString(req.Points),
		req.Count, maxCount, req.Seed,
		req.Width, req.Height,
		req.Relax, maxRelax,
	)
	if failure != nil {
		fmt.Fprintf(w, "\t\t\t<p class=\"error\">%s</p>\n", html.EscapeString(failure.Error()))
	}
	_, _ = w.Write(chart)
	fmt.Fprint(w, pageLogs)
	fmt.Fprint(w, logs.HTML())
	fmt.Fprint(w, pageTail)
}
