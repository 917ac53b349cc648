// Package mapfeature loads coastline and land polygons for map backdrops
// from Natural Earth style shapefiles. Features are optional everywhere:
// a nil Set renders maps without a backdrop.
package mapfeature

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
)

// Set holds land polygons in geographic (lon, lat) coordinates.
type Set struct {
	Land []geom.Polygon
}

// LoadLand reads every polygon from a shapefile. Multi-polygons are
// flattened into their member polygons; non-polygonal shapes are skipped.
func LoadLand(path string) (*Set, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("load land polygons %s: %w", path, err)
	}
	defer d.Close()

	var land []geom.Polygon
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		switch p := g.(type) {
		case geom.Polygon:
			land = append(land, p)
		case geom.MultiPolygon:
			land = append(land, p...)
		}
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("load land polygons %s: %w", path, err)
	}
	if len(land) == 0 {
		return nil, fmt.Errorf("load land polygons %s: no polygons in file", path)
	}
	return &Set{Land: land}, nil
}
