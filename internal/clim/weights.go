package clim

import (
	"math"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

// SqrtCosLat returns sqrt(cos(lat)) area weights for latitudes in degrees.
// Negative cosines from rounding at the poles clamp to zero.
func SqrtCosLat(lats []float64) []float64 {
	w := make([]float64, len(lats))
	for i, lat := range lats {
		c := math.Cos(lat * math.Pi / 180)
		if c < 0 {
			c = 0
		}
		w[i] = math.Sqrt(c)
	}
	return w
}

// ApplyLatWeights multiplies a grid by sqrt(cos(lat)) along its latitude
// dimension, broadcasting over all other axes. The long_name attribute
// gains a "Wgt: " prefix to mark the field as weighted.
func ApplyLatWeights(g *grid.Grid, latDim string) (*grid.Grid, error) {
	axis, err := g.Axis(latDim)
	if err != nil {
		return nil, err
	}
	w := SqrtCosLat(g.Coords[latDim])

	out := g.Clone()
	shape := out.Shape()
	idx := make([]int, len(shape))
	for {
		out.SetAt(out.At(idx...)*w[idx[axis]], idx...)
		k := len(shape) - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < shape[k] {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			break
		}
	}
	if ln, ok := out.Attrs["long_name"]; ok {
		out.Attrs["long_name"] = "Wgt: " + ln
	}
	return out, nil
}
