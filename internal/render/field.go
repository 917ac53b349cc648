package render

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
)

// windField adapts coordinate vectors plus u/v components (indexed
// [row=y][col=x]) to plotter.FieldXY.
type windField struct {
	x, y []float64
	u, v [][]float64
}

func (f windField) Dims() (c, r int) { return len(f.x), len(f.y) }

func (f windField) Vector(c, r int) plotter.XY {
	return plotter.XY{X: f.u[r][c], Y: f.v[r][c]}
}

func (f windField) X(c int) float64 { return f.x[c] }

func (f windField) Y(r int) float64 { return f.y[r] }

// NewWindField builds a vector-field plotter from u/v component grids.
func NewWindField(x, y []float64, u, v [][]float64) (*plotter.Field, error) {
	if len(u) != len(y) || len(v) != len(y) {
		return nil, fmt.Errorf("wind field: %d rows of u, %d of v, want %d", len(u), len(v), len(y))
	}
	for _, row := range u {
		if len(row) != len(x) {
			return nil, fmt.Errorf("wind field: u row has %d columns, want %d", len(row), len(x))
		}
	}
	for _, row := range v {
		if len(row) != len(x) {
			return nil, fmt.Errorf("wind field: v row has %d columns, want %d", len(row), len(x))
		}
	}
	return plotter.NewField(windField{x: x, y: y, u: u, v: v}), nil
}

// Subsample thins coordinate and component grids by the given stride so
// dense model output does not turn the vector plot solid black.
func Subsample(x, y []float64, u, v [][]float64, stride int) ([]float64, []float64, [][]float64, [][]float64) {
	if stride <= 1 {
		return x, y, u, v
	}
	xs := thin(x, stride)
	ys := thin(y, stride)
	us := make([][]float64, 0, len(ys))
	vs := make([][]float64, 0, len(ys))
	for r := 0; r < len(y); r += stride {
		us = append(us, thin(u[r], stride))
		vs = append(vs, thin(v[r], stride))
	}
	return xs, ys, us, vs
}

func thin(s []float64, stride int) []float64 {
	out := make([]float64, 0, (len(s)+stride-1)/stride)
	for i := 0; i < len(s); i += stride {
		out = append(out, s[i])
	}
	return out
}
