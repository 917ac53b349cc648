package gallery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-plot-gallery/internal/observability"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRenderer(t *testing.T, entries []Entry) *Renderer {
	t.Helper()
	env := &Env{
		DataDir: t.TempDir(),
		OutDir:  filepath.Join(t.TempDir(), "out"),
		Logger:  testLogger(),
	}
	return NewRenderer(entries, env, testLogger(), observability.NewMetricsForTesting())
}

func okEntry(name string) Entry {
	return Entry{
		Name:  name,
		Title: name,
		Render: func(_ context.Context, env *Env) (string, error) {
			p := env.OutPath(name + ".png")
			if err := os.WriteFile(p, []byte("png"), 0o644); err != nil {
				return "", err
			}
			return p, nil
		},
	}
}

func TestRender(t *testing.T) {
	r := testRenderer(t, []Entry{okEntry("alpha")})

	path, err := r.Render(context.Background(), "alpha")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRender_UnknownEntry(t *testing.T) {
	r := testRenderer(t, []Entry{okEntry("alpha")})

	_, err := r.Render(context.Background(), "beta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown gallery entry")
}

func TestRender_EntryFailure(t *testing.T) {
	boom := errors.New("bad file")
	r := testRenderer(t, []Entry{{
		Name: "broken",
		Render: func(context.Context, *Env) (string, error) {
			return "", boom
		},
	}})

	_, err := r.Render(context.Background(), "broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRender_TimingUsesClock(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC))
	r := testRenderer(t, []Entry{{
		Name: "slow",
		Render: func(_ context.Context, env *Env) (string, error) {
			fake.Advance(3 * time.Second)
			return env.OutPath("slow.png"), nil
		},
	}})
	r.SetClock(fake)

	_, err := r.Render(context.Background(), "slow")
	require.NoError(t, err)
}

func TestRenderAll_Order(t *testing.T) {
	var order []string
	mk := func(name string) Entry {
		return Entry{
			Name: name,
			Render: func(_ context.Context, env *Env) (string, error) {
				order = append(order, name)
				return env.OutPath(name + ".png"), nil
			},
		}
	}
	r := testRenderer(t, []Entry{mk("a"), mk("b"), mk("c")})

	require.NoError(t, r.RenderAll(context.Background()))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRenderAll_StopsOnFailure(t *testing.T) {
	var ran []string
	r := testRenderer(t, []Entry{
		{Name: "a", Render: func(_ context.Context, env *Env) (string, error) {
			ran = append(ran, "a")
			return env.OutPath("a.png"), nil
		}},
		{Name: "b", Render: func(context.Context, *Env) (string, error) {
			return "", errors.New("nope")
		}},
		{Name: "c", Render: func(_ context.Context, env *Env) (string, error) {
			ran = append(ran, "c")
			return env.OutPath("c.png"), nil
		}},
	})

	err := r.RenderAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, ran)
}

func TestCheckInputsAndReadiness(t *testing.T) {
	r := testRenderer(t, []Entry{{
		Name:   "needsdata",
		Inputs: []string{"slp.mon.mean.nc"},
		Render: func(_ context.Context, env *Env) (string, error) {
			return env.OutPath("x.png"), nil
		},
	}})

	require.Error(t, r.CheckReadiness(context.Background()))

	err := r.CheckInputs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slp.mon.mean.nc")

	require.NoError(t, os.WriteFile(r.env.DataPath("slp.mon.mean.nc"), []byte("x"), 0o644))
	require.NoError(t, r.CheckInputs())
	assert.NoError(t, r.CheckReadiness(context.Background()))
}

func TestListAndLookup(t *testing.T) {
	r := testRenderer(t, []Entry{okEntry("alpha"), okEntry("beta")})

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)

	_, ok := r.Lookup("beta")
	assert.True(t, ok)
	_, ok = r.Lookup("gamma")
	assert.False(t, ok)
}
