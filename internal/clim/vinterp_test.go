package clim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

// hybridFixture builds a one-column atmosphere whose value at model level k
// equals the level's own pressure, so interpolation targets are exact.
func hybridFixture(t *testing.T) (data, ps *grid.Grid, hyam, hybm []float64) {
	t.Helper()
	const nlev = 5
	hyam = []float64{0, 0, 0, 0, 0}
	hybm = []float64{0.2, 0.4, 0.6, 0.8, 1.0}

	levs := make([]float64, nlev)
	for i := range levs {
		levs[i] = float64(i)
	}
	var err error
	data, err = grid.New("T", []string{"time", "lev", "lat", "lon"}, map[string][]float64{
		"time": {0}, "lev": levs, "lat": {0}, "lon": {0},
	})
	require.NoError(t, err)
	ps, err = grid.New("PS", []string{"time", "lat", "lon"}, map[string][]float64{
		"time": {0}, "lat": {0}, "lon": {0},
	})
	require.NoError(t, err)
	ps.SetAt(1000, 0, 0, 0) // mb

	for k := 0; k < nlev; k++ {
		p := hyam[k]*1000 + hybm[k]*1000
		data.SetAt(p, 0, k, 0, 0)
	}
	return data, ps, hyam, hybm
}

func TestHybridToPressure(t *testing.T) {
	data, ps, hyam, hybm := hybridFixture(t)

	out, err := HybridToPressure(data, ps, hyam, hybm, 1000, []float64{200, 300, 500, 1000})
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "plev", "lat", "lon"}, out.Dims)
	assert.Equal(t, []float64{200, 300, 500, 1000}, out.Coords["plev"])

	// Model levels are at 200, 400, ..., 1000 mb; the field equals pressure.
	assert.InDelta(t, 200, out.At(0, 0, 0, 0), 1e-9)
	assert.InDelta(t, 500, out.At(0, 2, 0, 0), 1e-9)
	assert.InDelta(t, 1000, out.At(0, 3, 0, 0), 1e-9)

	// 300 mb has no co-located model level: log-linear between 200 and 400.
	got := out.At(0, 1, 0, 0)
	f := (math.Log(300) - math.Log(200)) / (math.Log(400) - math.Log(200))
	assert.InDelta(t, 200+f*200, got, 1e-9)
}

func TestHybridToPressureOutOfRange(t *testing.T) {
	data, ps, hyam, hybm := hybridFixture(t)

	out, err := HybridToPressure(data, ps, hyam, hybm, 1000, []float64{50})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.At(0, 0, 0, 0)))
}

func TestHybridToPressureShapeErrors(t *testing.T) {
	data, ps, hyam, hybm := hybridFixture(t)

	_, err := HybridToPressure(ps, ps, hyam, hybm, 1000, []float64{500})
	require.Error(t, err)

	_, err = HybridToPressure(data, ps, hyam[:2], hybm, 1000, []float64{500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coefficients")
}

func TestBilinear(t *testing.T) {
	b, err := NewBilinear(
		[]float64{0, 1},
		[]float64{0, 2},
		[][]float64{{0, 1}, {2, 3}},
	)
	require.NoError(t, err)

	assert.InDelta(t, 0, b.At(0, 0), 1e-12)
	assert.InDelta(t, 3, b.At(1, 2), 1e-12)
	assert.InDelta(t, 1.5, b.At(0.5, 1), 1e-12)
	assert.True(t, math.IsNaN(b.At(-1, 0)))

	_, err = NewBilinear([]float64{0, 1}, []float64{0}, [][]float64{{0, 1}})
	require.Error(t, err)
}
