package render

import (
	"fmt"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

// XYZGrid adapts a 2-D labeled grid to gonum/plot's GridXYZ interface.
// Rows index y, columns index x.
type XYZGrid struct {
	x, y []float64
	z    [][]float64
}

// Dims implements plotter.GridXYZ.
func (g XYZGrid) Dims() (c, r int) { return len(g.x), len(g.y) }

// Z implements plotter.GridXYZ.
func (g XYZGrid) Z(c, r int) float64 { return g.z[r][c] }

// X implements plotter.GridXYZ.
func (g XYZGrid) X(c int) float64 { return g.x[c] }

// Y implements plotter.GridXYZ.
func (g XYZGrid) Y(r int) float64 { return g.y[r] }

// Coords exposes the adapter's axes and values for plotters that need raw
// slices (contour extraction, streamlines).
func (g XYZGrid) Coords() (x, y []float64, z [][]float64) { return g.x, g.y, g.z }

// FromGrid adapts a 2-D grid with the named x and y dimensions, transposing
// if the grid stores y first. The y axis may be remapped (for example into
// Mercator-projected coordinates); pass nil for identity.
func FromGrid(g *grid.Grid, xDim, yDim string, yMap func(float64) float64) (XYZGrid, error) {
	if len(g.Dims) != 2 {
		return XYZGrid{}, fmt.Errorf("plot grid %q: want 2 dimensions, have %v", g.Name, g.Dims)
	}
	vals, err := g.Values2D()
	if err != nil {
		return XYZGrid{}, err
	}

	var z [][]float64
	switch {
	case g.Dims[0] == yDim && g.Dims[1] == xDim:
		z = vals
	case g.Dims[0] == xDim && g.Dims[1] == yDim:
		z = transpose(vals)
	default:
		return XYZGrid{}, fmt.Errorf("plot grid %q: dimensions %v do not match x=%q y=%q", g.Name, g.Dims, xDim, yDim)
	}

	y := make([]float64, len(g.Coords[yDim]))
	copy(y, g.Coords[yDim])
	if yMap != nil {
		for i, v := range y {
			y[i] = yMap(v)
		}
	}
	x := make([]float64, len(g.Coords[xDim]))
	copy(x, g.Coords[xDim])

	return XYZGrid{x: x, y: y, z: z}, nil
}

func transpose(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([][]float64, len(m[0]))
	for i := range out {
		out[i] = make([]float64, len(m))
		for j := range m {
			out[i][j] = m[j][i]
		}
	}
	return out
}
