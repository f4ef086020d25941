// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientSites is returned when fewer sites than the configured
	// minimum are supplied.
	ErrInsufficientSites = errors.New("r2voronoi: insufficient sites")
	// ErrDegenerateGeometry is returned when the sites coincide so that no
	// partition of the plane exists.
	ErrDegenerateGeometry = errors.New("r2voronoi: degenerate geometry")
	ErrInvalidSite        = errors.New("r2voronoi: invalid site")
	ErrInvalidOption      = errors.New("r2voronoi: invalid option")
)

// DropReason tells why a site has no cell in a Diagram.
type DropReason int

const (
	// DropDuplicate marks a site with the exact coordinates of an earlier site.
	DropDuplicate DropReason = iota + 1
	// DropUnassembled marks a site whose ridges gave fewer than three vertices.
	DropUnassembled
	// DropClipped marks a site whose cell vanished when clipped to the bounds.
	DropClipped
)

func (r DropReason) String() string {
	switch r {
	case DropDuplicate:
		return "duplicate"
	case DropUnassembled:
		return "unassembled"
	case DropClipped:
		return "clipped"
	}
	return fmt.Sprintf("DropReason(%d)", int(r))
}

// DroppedSite records a site that is not rendered.
type DroppedSite struct {
	Index  int
	Reason DropReason
}
