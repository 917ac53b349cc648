package clim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	got := Span(948, 1060, 4)
	assert.Equal(t, 948.0, got[0])
	assert.Equal(t, 1060.0, got[len(got)-1])
	assert.Len(t, got, 29)
}

func TestLinspace(t *testing.T) {
	got := Linspace(200, 300, 11)
	assert.Len(t, got, 11)
	assert.Equal(t, 200.0, got[0])
	assert.InDelta(t, 250, got[5], 1e-12)
	assert.Equal(t, 300.0, got[10])
}

func TestWithInserted(t *testing.T) {
	got := WithInserted([]float64{948, 952, 976, 980}, 975)
	assert.Equal(t, []float64{948, 952, 975, 976, 980}, got)

	// Duplicates collapse.
	got = WithInserted([]float64{1, 2}, 2)
	assert.Equal(t, []float64{1, 2}, got)
}

func TestSymmetricLevels(t *testing.T) {
	levels := SymmetricLevels([]float64{-3.7, 1.2, 0.4}, 4)
	assert.Len(t, levels, 9)
	assert.Equal(t, levels[4], 0.0)
	assert.Equal(t, -levels[0], levels[len(levels)-1])
	assert.GreaterOrEqual(t, levels[len(levels)-1], 3.7)
}

func TestNiceStep(t *testing.T) {
	assert.Equal(t, 1.0, niceStep(0.9))
	assert.Equal(t, 2.0, niceStep(1.4))
	assert.Equal(t, 5.0, niceStep(3.3))
	assert.Equal(t, 10.0, niceStep(7.2))
	assert.Equal(t, 0.5, niceStep(0.33))
	assert.Equal(t, 1.0, niceStep(0))
}
