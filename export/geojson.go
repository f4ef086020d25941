// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"encoding/json"
	"io"

	"github.com/2dChan/r2voronoi"
	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON writes every rendered cell as a polygon feature. The feature id is
// the site index; properties carry the site, the cell area and the indices
// of the neighboring cells.
type GeoJSON struct {
	// Indent, when set, pretty-prints the output.
	Indent string
}

func NewGeoJSON() *GeoJSON {
	return &GeoJSON{}
}

func (e *GeoJSON) Export(w io.Writer, d *r2voronoi.Diagram) error {
	fc := FeatureCollection(d)
	var (
		data []byte
		err  error
	)
	if e.Indent == "" {
		data, err = json.Marshal(fc)
	} else {
		data, err = json.MarshalIndent(fc, "", e.Indent)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// FeatureCollection converts the rendered cells of d to GeoJSON features.
func FeatureCollection(d *r2voronoi.Diagram) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.BBox = geojson.NewBBox(orb.Bound{
		Min: orbPoint(d.Bounds.Lo()),
		Max: orbPoint(d.Bounds.Hi()),
	})
	for _, c := range d.Cells() {
		verts := c.Vertices()
		ring := make(orb.Ring, 0, len(verts)+1)
		for _, v := range verts {
			ring = append(ring, orbPoint(v))
		}
		ring = append(ring, ring[0])

		f := geojson.NewFeature(orb.Polygon{ring})
		f.ID = c.SiteIndex()
		f.Properties["site"] = c.SiteIndex()
		f.Properties["x"] = c.Site().X
		f.Properties["y"] = c.Site().Y
		f.Properties["area"] = c.Area()
		f.Properties["neighbors"] = c.NeighborIndices()
		fc.Append(f)
	}
	return fc
}

func orbPoint(p r2.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}
