package clim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

func TestGradient2D(t *testing.T) {
	z := [][]float64{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	}
	dRow, dCol := Gradient2D(z)

	// Rows increase by 3 everywhere.
	assert.Equal(t, 3.0, dRow[0][0]) // one-sided
	assert.Equal(t, 3.0, dRow[1][1]) // central
	assert.Equal(t, 3.0, dRow[2][2]) // one-sided

	// Columns increase by 1 everywhere.
	assert.Equal(t, 1.0, dCol[0][0])
	assert.Equal(t, 1.0, dCol[1][1])
	assert.Equal(t, 1.0, dCol[2][2])
}

// pressureField builds a flat 1000 hPa field with a parabolic low centered
// at the given cell, plus its cyclic extension.
func pressureField(t *testing.T, lowR, lowC int, depth float64) (field, cyclic *grid.Grid) {
	t.Helper()
	nLat, nLon := 9, 12
	lats := make([]float64, nLat)
	for i := range lats {
		lats[i] = 90 - float64(i)*20 // 90 .. -70, satellite-file order
	}
	lons := make([]float64, nLon)
	for i := range lons {
		lons[i] = float64(i) * 30 // 0 .. 330
	}
	var err error
	field, err = grid.New("slp", []string{"lat", "lon"}, map[string][]float64{"lat": lats, "lon": lons})
	require.NoError(t, err)
	for r := 0; r < nLat; r++ {
		for c := 0; c < nLon; c++ {
			dr := float64(r - lowR)
			dc := float64(c - lowC)
			v := 1000 - depth + 0.001*(dr*dr+dc*dc)
			field.SetAt(v, r, c)
		}
	}
	cyclic, err = field.CyclicLon("lon")
	require.NoError(t, err)
	return field, cyclic
}

func TestLocalMinima(t *testing.T) {
	t.Run("finds a deep low", func(t *testing.T) {
		field, cyclic := pressureField(t, 4, 6, 40) // 960 hPa at (4, 6)
		pts, err := LocalMinima(field, cyclic, 980)
		require.NoError(t, err)
		require.NotEmpty(t, pts)

		// Reported with the satellite mapping: lat negated, lon shifted west
		// one column and offset by -180.
		lat := field.Coords["lat"][4]
		lon := field.Coords["lon"][5]
		var found *GeoPoint
		for i := range pts {
			if pts[i].Lat == -lat && pts[i].Lon == lon-180 {
				found = &pts[i]
				break
			}
		}
		require.NotNil(t, found)
		assert.Less(t, found.Value, 980.0)
	})

	t.Run("shallow low is rejected", func(t *testing.T) {
		field, cyclic := pressureField(t, 4, 6, 5) // 995 hPa minimum
		pts, err := LocalMinima(field, cyclic, 980)
		require.NoError(t, err)
		assert.Empty(t, pts)
	})

	t.Run("ties all returned", func(t *testing.T) {
		field, err := grid.New("slp", []string{"lat", "lon"}, map[string][]float64{
			"lat": {30, 10, -10},
			"lon": {0, 90, 180, 270},
		})
		require.NoError(t, err)
		// Uniform 970 hPa: every cell has zero gradient and is below threshold.
		for i := range field.Data.Elements {
			field.Data.Elements[i] = 970
		}
		cyclic, err := field.CyclicLon("lon")
		require.NoError(t, err)

		pts, err := LocalMinima(field, cyclic, 980)
		require.NoError(t, err)
		assert.Len(t, pts, 3*5) // every cell of the extended field qualifies
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		field, cyclic := pressureField(t, 4, 6, 40)
		bad, err := cyclic.ISel("lat", 0)
		require.NoError(t, err)
		_, err = LocalMinima(field, bad, 980)
		require.Error(t, err)
	})
}
