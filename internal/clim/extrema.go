package clim

import (
	"fmt"
	"math"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

// gradientTol is the magnitude below which a discrete derivative counts as
// a zero when hunting for pressure minima.
const gradientTol = 0.1

// GeoPoint is a geographic coordinate in degrees with the field value
// observed there.
type GeoPoint struct {
	Lat   float64
	Lon   float64
	Value float64
}

// Gradient2D returns the discrete gradient of a 2-D field along each axis:
// central differences in the interior, one-sided differences at the edges,
// assuming unit spacing.
func Gradient2D(z [][]float64) (dRow, dCol [][]float64) {
	nr := len(z)
	nc := len(z[0])
	dRow = make([][]float64, nr)
	dCol = make([][]float64, nr)
	for r := 0; r < nr; r++ {
		dRow[r] = make([]float64, nc)
		dCol[r] = make([]float64, nc)
		for c := 0; c < nc; c++ {
			switch {
			case nr == 1:
				dRow[r][c] = 0
			case r == 0:
				dRow[r][c] = z[1][c] - z[0][c]
			case r == nr-1:
				dRow[r][c] = z[nr-1][c] - z[nr-2][c]
			default:
				dRow[r][c] = (z[r+1][c] - z[r-1][c]) / 2
			}
			switch {
			case nc == 1:
				dCol[r][c] = 0
			case c == 0:
				dCol[r][c] = z[r][1] - z[r][0]
			case c == nc-1:
				dCol[r][c] = z[r][nc-1] - z[r][nc-2]
			default:
				dCol[r][c] = (z[r][c+1] - z[r][c-1]) / 2
			}
		}
	}
	return dRow, dCol
}

// LocalMinima finds grid cells of a 2-D pressure field that sit near a zero
// of the gradient and below maxValue. The gradient is evaluated on the
// cyclic-extended field so minima straddling the longitude seam are not
// missed; the value test and the reported coordinates use the unextended
// field, one column to the west of the flagged cell. Index order maps to
// geographic coordinates with the satellite-view convention lat' = -lat,
// lon' = lon - 180. Ties are not broken: every qualifying cell is
// returned, in row-major scan order.
func LocalMinima(field, cyclic *grid.Grid, maxValue float64) ([]GeoPoint, error) {
	z, err := cyclic.Values2D()
	if err != nil {
		return nil, fmt.Errorf("local minima: %w", err)
	}
	base, err := field.Values2D()
	if err != nil {
		return nil, fmt.Errorf("local minima: %w", err)
	}
	if len(z) != len(base) {
		return nil, fmt.Errorf("local minima: row mismatch between %q and %q", field.Name, cyclic.Name)
	}

	lats := field.Coords[field.Dims[0]]
	lons := field.Coords[field.Dims[1]]
	ncBase := len(base[0])

	dRow, dCol := Gradient2D(z)

	var pts []GeoPoint
	for r := range z {
		for c := range z[r] {
			if math.Abs(dRow[r][c]) > gradientTol || math.Abs(dCol[r][c]) > gradientTol {
				continue
			}
			// Step one column west, wrapping at the seam.
			cw := ((c-1)%ncBase + ncBase) % ncBase
			if base[r][cw] >= maxValue {
				continue
			}
			pts = append(pts, GeoPoint{Lat: -lats[r], Lon: lons[cw] - 180, Value: base[r][cw]})
		}
	}
	return pts, nil
}
