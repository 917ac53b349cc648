package clim

import (
	"fmt"
	"math"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

// HybridToPressure interpolates a (time, lev, lat, lon) field on hybrid
// sigma-pressure model levels onto fixed pressure surfaces. The pressure at
// model level k is hyam[k]*p0 + hybm[k]*ps; interpolation is linear in
// log pressure. ps, p0, and newLevels share one pressure unit (the gallery
// uses millibars). Target levels outside a column's pressure range are NaN.
func HybridToPressure(data, ps *grid.Grid, hyam, hybm []float64, p0 float64, newLevels []float64) (*grid.Grid, error) {
	if len(data.Dims) != 4 {
		return nil, fmt.Errorf("hybrid to pressure: %q must be (time, lev, lat, lon), have %v", data.Name, data.Dims)
	}
	levAxis, err := data.Axis("lev")
	if err != nil {
		return nil, err
	}
	if levAxis != 1 {
		return nil, fmt.Errorf("hybrid to pressure: lev must be the second dimension of %q", data.Name)
	}
	nlev := data.Shape()[1]
	if len(hyam) != nlev || len(hybm) != nlev {
		return nil, fmt.Errorf("hybrid to pressure: %d levels but %d/%d coefficients", nlev, len(hyam), len(hybm))
	}
	if len(ps.Dims) != 3 {
		return nil, fmt.Errorf("hybrid to pressure: surface pressure %q must be (time, lat, lon), have %v", ps.Name, ps.Dims)
	}

	nt, ny, nx := data.Shape()[0], data.Shape()[2], data.Shape()[3]
	coords := map[string][]float64{
		"time": data.Coords["time"],
		"plev": newLevels,
		"lat":  data.Coords["lat"],
		"lon":  data.Coords["lon"],
	}
	out, err := grid.New(data.Name, []string{"time", "plev", "lat", "lon"}, coords)
	if err != nil {
		return nil, err
	}
	for k, v := range data.Attrs {
		out.Attrs[k] = v
	}

	col := make([]float64, nlev)
	logp := make([]float64, nlev)
	for t := 0; t < nt; t++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				sp := ps.At(t, y, x)
				for k := 0; k < nlev; k++ {
					col[k] = data.At(t, k, y, x)
					logp[k] = math.Log(hyam[k]*p0 + hybm[k]*sp)
				}
				for j, target := range newLevels {
					out.SetAt(interpLog(logp, col, math.Log(target)), t, j, y, x)
				}
			}
		}
	}
	return out, nil
}

// interpLog linearly interpolates v(logp) at lt. logp must be strictly
// increasing (hybrid coefficients order levels top-down, so pressure
// increases with the level index).
func interpLog(logp, v []float64, lt float64) float64 {
	n := len(logp)
	if lt < logp[0] || lt > logp[n-1] {
		return math.NaN()
	}
	// Locate the bracketing interval.
	lo := 0
	for lo+1 < n && logp[lo+1] < lt {
		lo++
	}
	if logp[lo+1] == logp[lo] {
		return v[lo]
	}
	f := (lt - logp[lo]) / (logp[lo+1] - logp[lo])
	return v[lo] + f*(v[lo+1]-v[lo])
}
