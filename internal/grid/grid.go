package grid

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/ctessum/sparse"
)

// Grid is a labeled multidimensional array: a dense value block plus one
// named coordinate vector per axis, outermost axis first.
type Grid struct {
	Name   string
	Dims   []string
	Coords map[string][]float64
	Attrs  map[string]string
	Data   *sparse.DenseArray
}

// New creates a zero-filled grid with the given dimension names and
// coordinate vectors. Every dimension must have a coordinate vector and the
// implied shape must be non-empty.
func New(name string, dims []string, coords map[string][]float64) (*Grid, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("grid %q: no dimensions", name)
	}
	shape := make([]int, len(dims))
	for i, d := range dims {
		c, ok := coords[d]
		if !ok {
			return nil, fmt.Errorf("grid %q: missing coordinates for dimension %q", name, d)
		}
		if len(c) == 0 {
			return nil, fmt.Errorf("grid %q: empty coordinates for dimension %q", name, d)
		}
		shape[i] = len(c)
	}
	cc := make(map[string][]float64, len(coords))
	for _, d := range dims {
		cc[d] = slices.Clone(coords[d])
	}
	return &Grid{
		Name:   name,
		Dims:   slices.Clone(dims),
		Coords: cc,
		Attrs:  map[string]string{},
		Data:   sparse.ZerosDense(shape...),
	}, nil
}

// Axis returns the position of the named dimension.
func (g *Grid) Axis(dim string) (int, error) {
	for i, d := range g.Dims {
		if d == dim {
			return i, nil
		}
	}
	return 0, fmt.Errorf("grid %q: no dimension %q (have %v)", g.Name, dim, g.Dims)
}

// At returns the value at the given index, one entry per dimension.
func (g *Grid) At(index ...int) float64 { return g.Data.Get(index...) }

// SetAt stores a value at the given index.
func (g *Grid) SetAt(v float64, index ...int) { g.Data.Set(v, index...) }

// Shape returns the length of each axis.
func (g *Grid) Shape() []int { return g.Data.Shape }

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	data := sparse.ZerosDense(g.Data.Shape...)
	copy(data.Elements, g.Data.Elements)
	out := &Grid{
		Name:   g.Name,
		Dims:   slices.Clone(g.Dims),
		Coords: make(map[string][]float64, len(g.Coords)),
		Attrs:  make(map[string]string, len(g.Attrs)),
		Data:   data,
	}
	for d, c := range g.Coords {
		out.Coords[d] = slices.Clone(c)
	}
	for k, v := range g.Attrs {
		out.Attrs[k] = v
	}
	return out
}

// take builds a new grid keeping only the given positions along one axis.
func (g *Grid) take(axis int, idx []int) *Grid {
	dim := g.Dims[axis]
	shape := slices.Clone(g.Data.Shape)
	shape[axis] = len(idx)
	out := g.Clone()
	out.Data = sparse.ZerosDense(shape...)
	coords := make([]float64, len(idx))
	for i, j := range idx {
		coords[i] = g.Coords[dim][j]
	}
	out.Coords[dim] = coords

	src := make([]int, len(shape))
	forEachIndex(shape, func(dst []int) {
		copy(src, dst)
		src[axis] = idx[dst[axis]]
		out.Data.Set(g.Data.Get(src...), dst...)
	})
	return out
}

// Sel returns the subset where the named dimension's coordinate lies in
// [min, max], preserving stored order.
func (g *Grid) Sel(dim string, min, max float64) (*Grid, error) {
	axis, err := g.Axis(dim)
	if err != nil {
		return nil, err
	}
	var idx []int
	for i, c := range g.Coords[dim] {
		if c >= min && c <= max {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil, fmt.Errorf("grid %q: empty selection on %q in [%g, %g]", g.Name, dim, min, max)
	}
	return g.take(axis, idx), nil
}

// SelNearest drops the named dimension, keeping the slice whose coordinate
// is closest to target.
func (g *Grid) SelNearest(dim string, target float64) (*Grid, error) {
	_, err := g.Axis(dim)
	if err != nil {
		return nil, err
	}
	best, bestDist := 0, math.Inf(1)
	for i, c := range g.Coords[dim] {
		if d := math.Abs(c - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return g.ISel(dim, best)
}

// ISel drops the named dimension, keeping the slice at position i.
func (g *Grid) ISel(dim string, i int) (*Grid, error) {
	axis, err := g.Axis(dim)
	if err != nil {
		return nil, err
	}
	n := g.Data.Shape[axis]
	if i < 0 || i >= n {
		return nil, fmt.Errorf("grid %q: index %d out of range for %q (length %d)", g.Name, i, dim, n)
	}
	kept := g.take(axis, []int{i})

	shape := slices.Delete(slices.Clone(kept.Data.Shape), axis, axis+1)
	out := kept.Clone()
	out.Dims = slices.Delete(out.Dims, axis, axis+1)
	delete(out.Coords, dim)
	out.Data = sparse.ZerosDense(shape...)
	copy(out.Data.Elements, kept.Data.Elements)
	return out, nil
}

// SortBy reorders the grid along the named dimension so its coordinates are
// ascending (or descending).
func (g *Grid) SortBy(dim string, ascending bool) (*Grid, error) {
	axis, err := g.Axis(dim)
	if err != nil {
		return nil, err
	}
	coords := g.Coords[dim]
	idx := make([]int, len(coords))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if ascending {
			return coords[idx[a]] < coords[idx[b]]
		}
		return coords[idx[a]] > coords[idx[b]]
	})
	return g.take(axis, idx), nil
}

// RotateLon remaps the named longitude dimension from [0, 360) to
// [-180, 180) and sorts it ascending, so subsets can straddle Greenwich.
func (g *Grid) RotateLon(dim string) (*Grid, error) {
	axis, err := g.Axis(dim)
	if err != nil {
		return nil, err
	}
	out := g.take(axis, identity(g.Data.Shape[axis]))
	c := out.Coords[dim]
	for i, v := range c {
		c[i] = math.Mod(v+180, 360) - 180
	}
	return out.SortBy(dim, true)
}

// CyclicLon appends a copy of the first longitude column at lon+360 so
// contour lines close across the seam.
func (g *Grid) CyclicLon(dim string) (*Grid, error) {
	axis, err := g.Axis(dim)
	if err != nil {
		return nil, err
	}
	n := g.Data.Shape[axis]
	idx := append(identity(n), 0)
	out := g.take(axis, idx)
	c := out.Coords[dim]
	c[len(c)-1] = c[0] + 360
	return out, nil
}

// Scale multiplies every value in place and returns the grid.
func (g *Grid) Scale(f float64) *Grid {
	for i := range g.Data.Elements {
		g.Data.Elements[i] *= f
	}
	return g
}

// Apply replaces every value with fn(value) in place and returns the grid.
func (g *Grid) Apply(fn func(float64) float64) *Grid {
	for i := range g.Data.Elements {
		g.Data.Elements[i] = fn(g.Data.Elements[i])
	}
	return g
}

// Mean returns the arithmetic mean of all values, ignoring NaNs.
func (g *Grid) Mean() float64 {
	var sum float64
	var n int
	for _, v := range g.Data.Elements {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// MinMax returns the smallest and largest values, ignoring NaNs.
func (g *Grid) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range g.Data.Elements {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Values2D returns the grid contents as rows × columns for a 2-D grid,
// rows indexed by the first dimension.
func (g *Grid) Values2D() ([][]float64, error) {
	if len(g.Dims) != 2 {
		return nil, fmt.Errorf("grid %q: want 2 dimensions, have %d", g.Name, len(g.Dims))
	}
	nr, nc := g.Data.Shape[0], g.Data.Shape[1]
	out := make([][]float64, nr)
	for r := 0; r < nr; r++ {
		out[r] = make([]float64, nc)
		for c := 0; c < nc; c++ {
			out[r][c] = g.Data.Get(r, c)
		}
	}
	return out, nil
}

// Time converts a time-axis coordinate (Unix seconds) to a UTC time.
func Time(coord float64) time.Time {
	return time.Unix(int64(coord), 0).UTC()
}

// TimeCoord converts a UTC time to a time-axis coordinate.
func TimeCoord(t time.Time) float64 {
	return float64(t.Unix())
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// forEachIndex walks every index tuple of the given shape in row-major order.
func forEachIndex(shape []int, fn func(index []int)) {
	index := make([]int, len(shape))
	for {
		fn(index)
		axis := len(shape) - 1
		for axis >= 0 {
			index[axis]++
			if index[axis] < shape[axis] {
				break
			}
			index[axis] = 0
			axis--
		}
		if axis < 0 {
			return
		}
	}
}
