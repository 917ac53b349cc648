package grid

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt.nc")

	g, err := New("t2m", []string{"time", "lat", "lon"}, map[string][]float64{
		"time": {
			TimeCoord(time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)),
			TimeCoord(time.Date(2001, time.February, 1, 0, 0, 0, 0, time.UTC)),
		},
		"lat": {-30, 0, 30},
		"lon": {0, 120, 240},
	})
	require.NoError(t, err)
	for i := range g.Data.Elements {
		g.Data.Elements[i] = float64(i) / 4
	}
	g.Attrs["units"] = "K"
	g.Attrs["long_name"] = "2 metre temperature"

	require.NoError(t, WriteFile(path, []*Grid{g}, map[string]string{"title": "roundtrip fixture"}))

	got, err := LoadVar(path, "t2m")
	require.NoError(t, err)

	assert.Equal(t, []string{"time", "lat", "lon"}, got.Dims)
	assert.Equal(t, []int{2, 3, 3}, got.Shape())
	assert.Equal(t, g.Coords["lat"], got.Coords["lat"])
	assert.Equal(t, g.Coords["lon"], got.Coords["lon"])
	assert.Equal(t, "K", got.Attrs["units"])
	assert.Equal(t, "2 metre temperature", got.Attrs["long_name"])

	// Time decoded back to Unix seconds.
	require.Len(t, got.Coords["time"], 2)
	assert.Equal(t, time.Date(2001, time.February, 1, 0, 0, 0, 0, time.UTC), Time(got.Coords["time"][1]))

	// Values survive the float32 narrowing.
	for i := range g.Data.Elements {
		assert.InDelta(t, g.Data.Elements[i], got.Data.Elements[i], 1e-5)
	}
}

func TestWriteFileConflictingDims(t *testing.T) {
	a, err := New("a", []string{"lat"}, map[string][]float64{"lat": {1, 2}})
	require.NoError(t, err)
	b, err := New("b", []string{"lat"}, map[string][]float64{"lat": {1, 2, 3}})
	require.NoError(t, err)

	err = WriteFile(filepath.Join(t.TempDir(), "bad.nc"), []*Grid{a, b}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting lengths")
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.nc"))
	require.Error(t, err)
}

func TestLoadUnknownVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.nc")
	g, err := New("x", []string{"lat"}, map[string][]float64{"lat": {0, 1}})
	require.NoError(t, err)
	require.NoError(t, WriteFile(path, []*Grid{g}, nil))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Load("nope")
	require.Error(t, err)
}
