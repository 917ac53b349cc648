package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-plot-gallery/internal/mapfeature"
	"github.com/couchcryptid/climate-plot-gallery/internal/observability"
)

// Env carries the shared resources an entry needs to render.
type Env struct {
	DataDir  string
	OutDir   string
	Features *mapfeature.Set
	Logger   *slog.Logger
}

// DataPath resolves an input filename inside the data directory.
func (e *Env) DataPath(name string) string { return filepath.Join(e.DataDir, name) }

// OutPath resolves an output filename inside the output directory.
func (e *Env) OutPath(name string) string { return filepath.Join(e.OutDir, name) }

// Entry is one figure in the catalog.
type Entry struct {
	Name    string
	Title   string
	Summary string
	Inputs  []string

	// Render reads the entry's inputs, computes the derived fields, draws
	// the figure, and returns the path of the written PNG.
	Render func(ctx context.Context, env *Env) (string, error)
}

// Renderer runs catalog entries with logging, metrics, and timing.
type Renderer struct {
	entries []Entry
	byName  map[string]int
	env     *Env
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	ready   atomic.Bool
}

// NewRenderer creates a Renderer over the given catalog.
func NewRenderer(entries []Entry, env *Env, logger *slog.Logger, metrics *observability.Metrics) *Renderer {
	byName := make(map[string]int, len(entries))
	for i, e := range entries {
		byName[e.Name] = i
	}
	return &Renderer{
		entries: entries,
		byName:  byName,
		env:     env,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
}

// SetClock swaps the time source used for render timing. Pass nil to reset
// to real time.
func (r *Renderer) SetClock(c clockwork.Clock) {
	if c == nil {
		r.clock = clockwork.NewRealClock()
		return
	}
	r.clock = c
}

// List returns the catalog in registration order.
func (r *Renderer) List() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup finds an entry by name.
func (r *Renderer) Lookup(name string) (Entry, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Render runs one entry by name and returns the path of the written PNG.
func (r *Renderer) Render(ctx context.Context, name string) (string, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown gallery entry %q", name)
	}

	if err := os.MkdirAll(r.env.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	start := r.clock.Now()
	path, err := e.Render(ctx, r.env)
	elapsed := r.clock.Since(start)

	if err != nil {
		r.metrics.RendersTotal.WithLabelValues(name, "error").Inc()
		r.logger.Error("render failed", "entry", name, "error", err)
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	r.metrics.RendersTotal.WithLabelValues(name, "success").Inc()
	r.metrics.RenderDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	r.logger.Info("render complete", "entry", name, "path", path, "duration", elapsed)
	return path, nil
}

// RenderAll runs every entry in order, stopping at the first failure.
func (r *Renderer) RenderAll(ctx context.Context) error {
	for _, e := range r.entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.Render(ctx, e.Name); err != nil {
			return err
		}
	}
	return nil
}

// CheckInputs verifies that every input file the catalog declares exists in
// the data directory, and marks the renderer ready when they all do.
func (r *Renderer) CheckInputs() error {
	seen := map[string]bool{}
	for _, e := range r.entries {
		for _, f := range e.Inputs {
			if seen[f] {
				continue
			}
			seen[f] = true
			if _, err := os.Stat(r.env.DataPath(f)); err != nil {
				r.metrics.GalleryReady.Set(0)
				r.ready.Store(false)
				return fmt.Errorf("input %s: %w", f, err)
			}
		}
	}
	r.metrics.GalleryReady.Set(1)
	r.ready.Store(true)
	return nil
}

// CheckReadiness returns nil once CheckInputs has seen all input files, or
// an error describing why the service is not yet ready.
func (r *Renderer) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return fmt.Errorf("input files have not been verified yet")
	}
	return nil
}
