package fixture

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteAll(dir))

	for _, name := range []string{MonthlySLP, DailySLP, Winds, Atmos, SurfDev} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestMonthlySLP(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteMonthlySLP(filepath.Join(dir, MonthlySLP)))

	g, err := grid.LoadVar(filepath.Join(dir, MonthlySLP), "slp")
	require.NoError(t, err)

	assert.Equal(t, []string{"time", "lat", "lon"}, g.Dims)
	assert.Equal(t, "millibars", g.Attrs["units"])
	assert.Equal(t, "Sea Level Pressure", g.Attrs["long_name"])

	first := grid.Time(g.Coords["time"][0])
	assert.Equal(t, 1978, first.Year())
	assert.Equal(t, time.December, first.Month())
	last := grid.Time(g.Coords["time"][len(g.Coords["time"])-1])
	assert.Equal(t, 2003, last.Year())

	min, max := g.MinMax()
	assert.Greater(t, min, 950.0)
	assert.Less(t, max, 1070.0)
}

func TestDailySLP_DeepLows(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDailySLP(filepath.Join(dir, DailySLP)))

	g, err := grid.LoadVar(filepath.Join(dir, DailySLP), "slp")
	require.NoError(t, err)
	require.Len(t, g.Coords["time"], 31)

	day24, err := g.ISel("time", 24)
	require.NoError(t, err)
	day24.Scale(0.01)

	min, _ := day24.MinMax()
	assert.Less(t, min, 980.0, "the Jan 24th field must contain a deep low")

	day0, err := g.ISel("time", 0)
	require.NoError(t, err)
	day0.Scale(0.01)
	min0, _ := day0.MinMax()
	assert.Greater(t, min0, min, "lows deepen toward the 24th")
}

func TestAtmos_HybridCoefficients(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Atmos)
	require.NoError(t, WriteAtmos(path))

	f, err := grid.Open(path)
	require.NoError(t, err)
	defer f.Close()

	hyam, err := f.Load1D("hyam")
	require.NoError(t, err)
	hybm, err := f.Load1D("hybm")
	require.NoError(t, err)
	require.Len(t, hyam, 20)
	require.Len(t, hybm, 20)

	// Mid-level pressures at ps = 1000 mb must bracket the 200..900 mb
	// interpolation targets and increase monotonically.
	prev := 0.0
	for k := range hyam {
		p := hyam[k]*1000 + hybm[k]*1000
		assert.Greater(t, p, prev)
		prev = p
	}
	assert.Less(t, hyam[0]*1000+hybm[0]*1000, 200.0)
	assert.Greater(t, prev, 900.0)

	ps, err := f.Load("PS")
	require.NoError(t, err)
	min, max := ps.MinMax()
	assert.Greater(t, min, 99000.0)
	assert.Less(t, max, 101000.0)
}

func TestSurfDev_Range(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteSurfDev(filepath.Join(dir, SurfDev)))

	g, err := grid.LoadVar(filepath.Join(dir, SurfDev), "FSD")
	require.NoError(t, err)

	min, max := g.MinMax()
	assert.GreaterOrEqual(t, min, 0.0)
	assert.LessOrEqual(t, max, 70.0)
}
