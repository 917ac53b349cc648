package entries

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-plot-gallery/internal/fixture"
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery"
	"github.com/couchcryptid/climate-plot-gallery/internal/observability"
)

func testEnv(t *testing.T) *gallery.Env {
	t.Helper()
	dataDir := t.TempDir()
	require.NoError(t, fixture.WriteAll(dataDir))
	return &gallery.Env{
		DataDir: dataDir,
		OutDir:  t.TempDir(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestAll_CatalogShape(t *testing.T) {
	catalog := All()
	require.Len(t, catalog, 6)

	seen := map[string]bool{}
	for _, e := range catalog {
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Title)
		assert.NotNil(t, e.Render)
		assert.False(t, seen[e.Name], "duplicate entry %s", e.Name)
		seen[e.Name] = true
	}
	assert.True(t, seen["maponly"])
	assert.True(t, seen["eofslp"])
}

func TestEntries_RenderAgainstFixtures(t *testing.T) {
	env := testEnv(t)

	for _, e := range All() {
		t.Run(e.Name, func(t *testing.T) {
			path, err := e.Render(context.Background(), env)
			require.NoError(t, err)
			assert.FileExists(t, path)
			assert.Equal(t, ".png", filepath.Ext(path))
		})
	}
}

func TestEntries_CancelledContext(t *testing.T) {
	env := testEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := renderEOFSLP(ctx, env)
	assert.Error(t, err)
}

func TestRenderer_EndToEnd(t *testing.T) {
	env := testEnv(t)
	r := gallery.NewRenderer(All(), env, env.Logger, observability.NewMetricsForTesting())

	require.NoError(t, r.CheckInputs())
	require.NoError(t, r.CheckReadiness(context.Background()))

	path, err := r.Render(context.Background(), "maponly")
	require.NoError(t, err)
	assert.FileExists(t, path)
}
