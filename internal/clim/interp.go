package clim

import (
	"fmt"
	"math"
)

// Bilinear interpolates a 2-D field z[row][col] over ascending coordinate
// vectors y (rows) and x (columns). Queries outside the domain return NaN.
type Bilinear struct {
	X, Y []float64
	Z    [][]float64
}

// NewBilinear validates the coordinate/field shapes.
func NewBilinear(x, y []float64, z [][]float64) (*Bilinear, error) {
	if len(z) != len(y) {
		return nil, fmt.Errorf("bilinear: %d rows but %d y coordinates", len(z), len(y))
	}
	for _, row := range z {
		if len(row) != len(x) {
			return nil, fmt.Errorf("bilinear: %d columns but %d x coordinates", len(row), len(x))
		}
	}
	if len(x) < 2 || len(y) < 2 {
		return nil, fmt.Errorf("bilinear: domain must be at least 2x2, have %dx%d", len(y), len(x))
	}
	return &Bilinear{X: x, Y: y, Z: z}, nil
}

// At evaluates the interpolant.
func (b *Bilinear) At(x, y float64) float64 {
	i := bracket(b.X, x)
	j := bracket(b.Y, y)
	if i < 0 || j < 0 {
		return math.NaN()
	}
	fx := frac(b.X[i], b.X[i+1], x)
	fy := frac(b.Y[j], b.Y[j+1], y)
	z00 := b.Z[j][i]
	z01 := b.Z[j][i+1]
	z10 := b.Z[j+1][i]
	z11 := b.Z[j+1][i+1]
	return z00*(1-fx)*(1-fy) + z01*fx*(1-fy) + z10*(1-fx)*fy + z11*fx*fy
}

// bracket returns i with c[i] <= v <= c[i+1], or -1 when out of range.
func bracket(c []float64, v float64) int {
	if v < c[0] || v > c[len(c)-1] {
		return -1
	}
	lo, hi := 0, len(c)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if c[mid] <= v {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func frac(a, b, v float64) float64 {
	if b == a {
		return 0
	}
	return (v - a) / (b - a)
}
