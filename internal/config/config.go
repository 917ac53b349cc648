package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces all environment variables, e.g. GALLERY_DATA_DIR.
const envPrefix = "GALLERY_"

// Config holds all settings, populated from environment variables.
type Config struct {
	DataDir       string `koanf:"data.dir"`
	OutDir        string `koanf:"out.dir"`
	LandShapefile string `koanf:"land.shapefile"`

	HTTPAddr  string `koanf:"http.addr"`
	LogLevel  string `koanf:"log.level"`
	LogFormat string `koanf:"log.format"`

	ShutdownTimeout time.Duration `koanf:"shutdown.timeout"`
	RenderTimeout   time.Duration `koanf:"render.timeout"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data.dir":         "data",
		"out.dir":          "out",
		"land.shapefile":   "",
		"http.addr":        ":8080",
		"log.level":        "info",
		"log.format":       "json",
		"shutdown.timeout": "10s",
		"render.timeout":   "2m",
	}
}

// Load reads configuration from GALLERY_* environment variables, applying
// defaults where unset.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return errors.New("GALLERY_DATA_DIR is required")
	}
	if c.OutDir == "" {
		return errors.New("GALLERY_OUT_DIR is required")
	}
	if c.HTTPAddr == "" {
		return errors.New("GALLERY_HTTP_ADDR is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid GALLERY_LOG_LEVEL %q (want debug, info, warn or error)", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid GALLERY_LOG_FORMAT %q (want json or text)", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("GALLERY_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.RenderTimeout <= 0 {
		return errors.New("GALLERY_RENDER_TIMEOUT must be positive")
	}
	return nil
}
