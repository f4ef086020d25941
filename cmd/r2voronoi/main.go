// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command r2voronoi renders, views, serves and generates planar Voronoi
// diagrams of point files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/export"
	"github.com/2dChan/r2voronoi/internal/logger"
	"github.com/2dChan/r2voronoi/internal/tui"
	"github.com/2dChan/r2voronoi/internal/web"
	"github.com/2dChan/r2voronoi/pointfile"
	"github.com/2dChan/r2voronoi/utils"
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errUsage = errors.New("usage")

const usage = `Usage: r2voronoi <command> [flags]

Commands:
  render [-margin f] [-tol t] [-relax n] [-o out.svg|.png|.html|.geojson] points.txt
  view   [-margin f] [-tol t] points.txt
  serve  [-addr :8080]
  gen    [-n 50] [-seed 0] [-w 100] [-h 100] [-grid] [-relax n] [-o file]

Run "r2voronoi <command> -help" for the flags of a command.
`

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "r2voronoi:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "render":
		return runRender(args, stdout, stderr)
	case "view":
		return runView(args, stderr)
	case "serve":
		return runServe(args, stderr)
	case "gen":
		return runGen(args, stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// diagramFlags are the diagram knobs shared by render and view.
type diagramFlags struct {
	margin float64
	tol    float64
}

func (f *diagramFlags) register(fs *flag.FlagSet) {
	fs.Float64Var(&f.margin, "margin", 0.1, "bounding box margin as a fraction of the larger side")
	fs.Float64Var(&f.tol, "tol", 1e-9, "geometric tolerance")
}

func (f *diagramFlags) options() []r2voronoi.DiagramOption {
	return []r2voronoi.DiagramOption{
		r2voronoi.WithMargin(f.margin),
		r2voronoi.WithTolerance(f.tol),
		r2voronoi.WithParallelism(runtime.GOMAXPROCS(0)),
	}
}

// pointsArg returns the single positional point file argument.
func pointsArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s needs exactly one point file, got %d arguments", errUsage, fs.Name(), fs.NArg())
	}
	return fs.Arg(0), nil
}

func runRender(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var df diagramFlags
	df.register(fs)
	out := fs.String("o", "", "output file; the extension picks svg, png, html or geojson (default: input with .svg)")
	relax := fs.Int("relax", 0, "Lloyd relaxation steps")
	level := fs.String("level", "info", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := pointsArg(fs)
	if err != nil {
		return err
	}
	lvl, err := zapcore.ParseLevel(*level)
	if err != nil {
		return fmt.Errorf("%w: -level: %v", errUsage, err)
	}
	if *out == "" {
		*out = strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
	}
	if _, err := export.ForPath(*out); err != nil {
		return err
	}

	log := logger.New(stderr, lvl)
	defer func() { _ = log.Sync() }()

	points, err := pointfile.ReadFile(path)
	if err != nil {
		return err
	}
	opts := append(df.options(), r2voronoi.WithLogger(log))
	d, err := r2voronoi.NewDiagram(points, opts...)
	if err != nil {
		return err
	}
	d, err = d.Relaxed(*relax, opts...)
	if err != nil {
		return err
	}
	if err := export.WriteFile(*out, d); err != nil {
		return err
	}
	log.Debug("diagram exported", zap.String("path", *out))

	fmt.Fprintf(stdout, "%d of %d sites rendered\n", d.NumRendered(), d.NumCells())
	return nil
}

func runView(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var df diagramFlags
	df.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := pointsArg(fs)
	if err != nil {
		return err
	}
	return tui.Run(path, df.options()...)
}

func runServe(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", ":8080", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logger.New(stderr, zapcore.InfoLevel)
	defer func() { _ = log.Sync() }()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           web.NewHandler(log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", *addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runGen(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", 50, "number of points")
	seed := fs.Int64("seed", 0, "random seed")
	w := fs.Float64("w", 100, "field width")
	h := fs.Float64("h", 100, "field height")
	grid := fs.Bool("grid", false, "place points on a grid instead of at random")
	relax := fs.Int("relax", 0, "Lloyd relaxation steps applied to the points")
	out := fs.String("o", "", "output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("%w: gen takes no arguments, got %q", errUsage, fs.Args())
	}
	if *n < 1 {
		return fmt.Errorf("%w: -n must be positive, got %d", errUsage, *n)
	}
	if !(*w > 0) || !(*h > 0) {
		return fmt.Errorf("%w: -w and -h must be positive, got %g and %g", errUsage, *w, *h)
	}

	field := r2.RectFromPoints(r2.Point{}, r2.Point{X: *w, Y: *h})
	var points []r2.Point
	if *grid {
		points = utils.GenerateGridPoints(*n, field)
	} else {
		points = utils.GenerateRandomPointsInRect(*n, *seed, field)
	}

	if *relax > 0 {
		d, err := r2voronoi.NewDiagram(points, r2voronoi.WithBounds(field))
		if err != nil {
			return err
		}
		relaxed, err := d.Relaxed(*relax)
		if err != nil {
			return err
		}
		points = relaxed.Sites
	}

	if *out == "" {
		return pointfile.Write(stdout, points)
	}
	return pointfile.WriteFile(*out, points)
}
