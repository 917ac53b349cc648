package render

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

// solid is a single-color palette, used to draw contour lines in one color
// through plotters that expect a palette per level.
type solid struct {
	c color.Color
	n int
}

func (s solid) Colors() []color.Color {
	out := make([]color.Color, s.n)
	for i := range out {
		out[i] = s.c
	}
	return out
}

// Solid returns a palette of n copies of one color.
func Solid(c color.Color, n int) palette.Palette {
	if n < 1 {
		n = 1
	}
	return solid{c: c, n: n}
}

// Ranged fixes a color map's value range and returns it with a discrete
// palette of n colors, the usual pair needed for a heat map plus its
// color bar.
func Ranged(cm palette.ColorMap, min, max float64, n int) (palette.ColorMap, palette.Palette) {
	cm.SetMin(min)
	cm.SetMax(max)
	return cm, cm.Palette(n)
}
