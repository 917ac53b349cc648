package mapproj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlateCarree(t *testing.T) {
	x, y, vis := PlateCarree{}.Project(45, -120)
	assert.True(t, vis)
	assert.Equal(t, -120.0, x)
	assert.Equal(t, 45.0, y)
}

func TestMercator(t *testing.T) {
	m := Mercator{}

	x, y, vis := m.Project(0, 30)
	assert.True(t, vis)
	assert.Equal(t, 30.0, x)
	assert.InDelta(t, 0, y, 1e-12)

	// Symmetric about the equator.
	_, yn, _ := m.Project(40, 0)
	_, ys, _ := m.Project(-40, 0)
	assert.InDelta(t, yn, -ys, 1e-12)

	// Stretches poleward.
	assert.Greater(t, m.Y(60)-m.Y(40), m.Y(40)-m.Y(20))

	// Clipped, not infinite, at the poles.
	_, yp, _ := m.Project(90, 0)
	assert.False(t, math.IsInf(yp, 1))
}

func TestOrthographic(t *testing.T) {
	o := Orthographic{CenterLat: 45, CenterLon: 270}

	t.Run("center maps to origin", func(t *testing.T) {
		x, y, vis := o.Project(45, 270)
		assert.True(t, vis)
		assert.InDelta(t, 0, x, 1e-12)
		assert.InDelta(t, 0, y, 1e-12)
	})

	t.Run("antipode is hidden", func(t *testing.T) {
		_, _, vis := o.Project(-45, 90)
		assert.False(t, vis)
	})

	t.Run("limb radius is one", func(t *testing.T) {
		// 90 degrees of arc from the center along the central meridian.
		x, y, vis := o.Project(-45, 270)
		assert.True(t, vis)
		assert.InDelta(t, 1, math.Hypot(x, y), 1e-12)
	})

	t.Run("north pole above center", func(t *testing.T) {
		x, y, vis := o.Project(90, 0)
		assert.True(t, vis)
		assert.InDelta(t, 0, x, 1e-12)
		assert.Greater(t, y, 0.0)
	})
}
