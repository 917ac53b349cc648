package clim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

// EOFResult holds the leading mode of an EOF decomposition.
type EOFResult struct {
	// Pattern is the leading spatial mode on the input's (lat, lon) grid,
	// unit-norm up to the sign convention applied by the caller.
	Pattern *grid.Grid
	// PC is the principal-component time series: the anomaly field
	// projected onto Pattern, one value per input timestep.
	PC []float64
	// VarFrac is the fraction of total variance the mode explains.
	VarFrac float64
}

// LeadingEOF computes the first empirical orthogonal function of a
// (time, lat, lon) field. Each grid point is treated as a variable and each
// timestep as a sample; the time mean is removed per point before the
// decomposition.
func LeadingEOF(g *grid.Grid) (*EOFResult, error) {
	if len(g.Dims) != 3 || g.Dims[0] != "time" {
		return nil, fmt.Errorf("eof: %q must be (time, lat, lon), have %v", g.Name, g.Dims)
	}
	nt, ny, nx := g.Shape()[0], g.Shape()[1], g.Shape()[2]
	ns := ny * nx
	if nt < 2 {
		return nil, fmt.Errorf("eof: %q has %d timesteps, need at least 2", g.Name, nt)
	}

	// Anomaly matrix: rows are timesteps, columns are grid points.
	m := mat.NewDense(nt, ns, nil)
	for j := 0; j < ns; j++ {
		var mean float64
		for t := 0; t < nt; t++ {
			mean += g.Data.Elements[t*ns+j]
		}
		mean /= float64(nt)
		for t := 0; t < nt; t++ {
			m.Set(t, j, g.Data.Elements[t*ns+j]-mean)
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, fmt.Errorf("eof: decomposition failed for %q", g.Name)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	var total float64
	for _, v := range vars {
		total += v
	}
	varFrac := 0.0
	if total > 0 {
		varFrac = vars[0] / total
	}

	pattern, err := grid.New(g.Name+"_eof1", []string{"lat", "lon"}, map[string][]float64{
		"lat": g.Coords["lat"],
		"lon": g.Coords["lon"],
	})
	if err != nil {
		return nil, err
	}
	for j := 0; j < ns; j++ {
		pattern.Data.Elements[j] = vecs.At(j, 0)
	}

	series := make([]float64, nt)
	for t := 0; t < nt; t++ {
		var dot float64
		for j := 0; j < ns; j++ {
			dot += m.At(t, j) * pattern.Data.Elements[j]
		}
		series[t] = dot
	}

	return &EOFResult{Pattern: pattern, PC: series, VarFrac: varFrac}, nil
}

// OrientNegative flips the mode's sign so the pattern mean over the given
// latitude/longitude box is negative. SVD signs are arbitrary; fixing the
// box keeps figure colors stable between runs.
func (r *EOFResult) OrientNegative(latMin, latMax, lonMin, lonMax float64) error {
	box, err := r.Pattern.Sel("lat", latMin, latMax)
	if err != nil {
		return err
	}
	box, err = box.Sel("lon", lonMin, lonMax)
	if err != nil {
		return err
	}
	if box.Mean() > 0 {
		r.Pattern.Scale(-1)
		for i := range r.PC {
			r.PC[i] = -r.PC[i]
		}
	}
	return nil
}

// NormalizePC rescales the PC series to unit standard deviation and
// returns the scale that was applied to it.
func (r *EOFResult) NormalizePC() float64 {
	var sum, sumsq float64
	n := float64(len(r.PC))
	for _, v := range r.PC {
		sum += v
	}
	mean := sum / n
	for _, v := range r.PC {
		d := v - mean
		sumsq += d * d
	}
	sd := math.Sqrt(sumsq / n)
	if sd == 0 {
		return 1
	}
	for i := range r.PC {
		r.PC[i] /= sd
	}
	return 1 / sd
}
