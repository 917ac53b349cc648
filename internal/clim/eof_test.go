package clim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

// oneModeField builds a field that is exactly pattern(y,x) * amplitude(t),
// so the leading EOF should recover the pattern and explain nearly all
// variance.
func oneModeField(t *testing.T) *grid.Grid {
	t.Helper()
	nt, ny, nx := 12, 4, 5
	times := make([]float64, nt)
	for i := range times {
		times[i] = float64(i)
	}
	lats := []float64{20, 30, 40, 50}
	lons := []float64{-40, -20, 0, 20, 40}

	g, err := grid.New("slp", []string{"time", "lat", "lon"}, map[string][]float64{
		"time": times, "lat": lats, "lon": lons,
	})
	require.NoError(t, err)

	for tt := 0; tt < nt; tt++ {
		amp := math.Sin(float64(tt) * 2 * math.Pi / float64(nt))
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				pat := math.Sin(float64(y+1)) * math.Cos(float64(x))
				g.SetAt(1000+amp*pat, tt, y, x)
			}
		}
	}
	return g
}

func TestLeadingEOF(t *testing.T) {
	g := oneModeField(t)

	res, err := LeadingEOF(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"lat", "lon"}, res.Pattern.Dims)
	assert.Len(t, res.PC, 12)
	assert.Greater(t, res.VarFrac, 0.99)

	// The spatial mode is unit-norm.
	var norm float64
	for _, v := range res.Pattern.Data.Elements {
		norm += v * v
	}
	assert.InDelta(t, 1, norm, 1e-9)

	// PC amplitude tracks the sinusoid up to a common scale and sign.
	ratio := res.PC[1] / math.Sin(2*math.Pi/12)
	for i, v := range res.PC {
		amp := math.Sin(float64(i) * 2 * math.Pi / 12)
		assert.InDelta(t, amp*ratio, v, 1e-6)
	}
}

func TestLeadingEOFErrors(t *testing.T) {
	g, err := grid.New("x", []string{"lat", "lon"}, map[string][]float64{
		"lat": {0, 1}, "lon": {0, 1},
	})
	require.NoError(t, err)
	_, err = LeadingEOF(g)
	require.Error(t, err)

	one, err := grid.New("x", []string{"time", "lat", "lon"}, map[string][]float64{
		"time": {0}, "lat": {0, 1}, "lon": {0, 1},
	})
	require.NoError(t, err)
	_, err = LeadingEOF(one)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")
}

func TestOrientNegative(t *testing.T) {
	g := oneModeField(t)
	res, err := LeadingEOF(g)
	require.NoError(t, err)

	require.NoError(t, res.OrientNegative(20, 50, -40, 40))
	box := res.Pattern
	assert.LessOrEqual(t, box.Mean(), 0.0)

	// Orienting twice is a no-op.
	before := res.PC[0]
	require.NoError(t, res.OrientNegative(20, 50, -40, 40))
	assert.Equal(t, before, res.PC[0])
}

func TestNormalizePC(t *testing.T) {
	res := &EOFResult{PC: []float64{2, -2, 2, -2}}
	res.NormalizePC()

	var sumsq float64
	for _, v := range res.PC {
		sumsq += v * v
	}
	assert.InDelta(t, 1, math.Sqrt(sumsq/4), 1e-12)
}
