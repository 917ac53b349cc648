package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "out", cfg.OutDir)
	assert.Empty(t, cfg.LandShapefile)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Minute, cfg.RenderTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("GALLERY_DATA_DIR", "/srv/fixtures")
	t.Setenv("GALLERY_OUT_DIR", "/srv/plots")
	t.Setenv("GALLERY_LAND_SHAPEFILE", "/srv/ne/land.shp")
	t.Setenv("GALLERY_HTTP_ADDR", ":9090")
	t.Setenv("GALLERY_LOG_LEVEL", "debug")
	t.Setenv("GALLERY_LOG_FORMAT", "text")
	t.Setenv("GALLERY_SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("GALLERY_RENDER_TIMEOUT", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/fixtures", cfg.DataDir)
	assert.Equal(t, "/srv/plots", cfg.OutDir)
	assert.Equal(t, "/srv/ne/land.shp", cfg.LandShapefile)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RenderTimeout)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("GALLERY_SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("GALLERY_SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GALLERY_SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("GALLERY_LOG_LEVEL", "verbose")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GALLERY_LOG_LEVEL")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("GALLERY_LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GALLERY_LOG_FORMAT")
}

func TestLoad_EmptyDataDir(t *testing.T) {
	t.Setenv("GALLERY_DATA_DIR", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GALLERY_DATA_DIR")
}

func TestLoad_NegativeRenderTimeout(t *testing.T) {
	t.Setenv("GALLERY_RENDER_TIMEOUT", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GALLERY_RENDER_TIMEOUT")
}
