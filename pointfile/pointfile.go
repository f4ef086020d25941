// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package pointfile reads and writes site files holding one "x,y" pair per line.
//
// Blank lines and lines starting with '#' are skipped, and whitespace around
// the coordinates is ignored.
package pointfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"go.uber.org/multierr"
)

const commentPrefix = "#"

var (
	ErrNoPoints   = errors.New("pointfile: no points")
	ErrFieldCount = errors.New("want two comma-separated fields")
	ErrNotFinite  = errors.New("coordinate is not finite")
)

// ParseError describes a malformed line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pointfile: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read parses points from r. Every malformed line is reported; the returned
// error combines one *ParseError per line and can be split with
// multierr.Errors. A file without points yields ErrNoPoints.
func Read(r io.Reader) ([]r2.Point, error) {
	var (
		points []r2.Point
		errs   error
	)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, commentPrefix) {
			continue
		}
		p, err := ParseLine(text)
		if err != nil {
			errs = multierr.Append(errs, &ParseError{Line: line, Text: text, Err: err})
			continue
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pointfile: read: %w", err)
	}
	if errs != nil {
		return nil, errs
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) ([]r2.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// ParseLine parses a single "x,y" pair.
func ParseLine(text string) (r2.Point, error) {
	fields := strings.Split(text, ",")
	if len(fields) != 2 {
		return r2.Point{}, fmt.Errorf("%w, got %d", ErrFieldCount, len(fields))
	}
	var coords [2]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return r2.Point{}, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return r2.Point{}, fmt.Errorf("%w: %v", ErrNotFinite, v)
		}
		coords[i] = v
	}
	return r2.Point{X: coords[0], Y: coords[1]}, nil
}

// Write writes points to w, one pair per line, in a form Read parses back
// exactly.
func Write(w io.Writer, points []r2.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		bw.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		bw.WriteByte(',')
		bw.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes points to path, replacing any existing file.
func WriteFile(path string, points []r2.Point) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return Write(f, points)
}
