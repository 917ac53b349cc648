package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/climate-plot-gallery/internal/mapproj"
)

// Segment is one contour line piece in data coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// ContourSegments extracts iso-line segments of z at the given level by
// marching squares with linear edge interpolation. x are column
// coordinates, y row coordinates, both ascending or descending but
// monotonic. The built-in contour plotter draws only on the plot's own
// rectilinear axes; this extraction exists so contours can be pushed
// through a map projection first.
func ContourSegments(x, y []float64, z [][]float64, level float64) []Segment {
	var segs []Segment
	for r := 0; r+1 < len(y); r++ {
		for c := 0; c+1 < len(x); c++ {
			segs = appendCellSegments(segs, x, y, z, r, c, level)
		}
	}
	return segs
}

// appendCellSegments handles one marching-squares cell. Corner order:
// 0=(r,c) 1=(r,c+1) 2=(r+1,c+1) 3=(r+1,c). The ambiguous saddle cases use
// the cell-center average to pick a diagonal.
func appendCellSegments(segs []Segment, x, y []float64, z [][]float64, r, c int, level float64) []Segment {
	v0 := z[r][c]
	v1 := z[r][c+1]
	v2 := z[r+1][c+1]
	v3 := z[r+1][c]

	idx := 0
	if v0 >= level {
		idx |= 1
	}
	if v1 >= level {
		idx |= 2
	}
	if v2 >= level {
		idx |= 4
	}
	if v3 >= level {
		idx |= 8
	}
	if idx == 0 || idx == 15 {
		return segs
	}

	// Edge midpoints by crossing interpolation.
	top := func() (float64, float64) { return lerp(x[c], x[c+1], v0, v1, level), y[r] }
	right := func() (float64, float64) { return x[c+1], lerp(y[r], y[r+1], v1, v2, level) }
	bottom := func() (float64, float64) { return lerp(x[c], x[c+1], v3, v2, level), y[r+1] }
	left := func() (float64, float64) { return x[c], lerp(y[r], y[r+1], v0, v3, level) }

	add := func(ax, ay, bx, by float64) {
		segs = append(segs, Segment{X1: ax, Y1: ay, X2: bx, Y2: by})
	}

	switch idx {
	case 1, 14:
		x1, y1 := top()
		x2, y2 := left()
		add(x1, y1, x2, y2)
	case 2, 13:
		x1, y1 := top()
		x2, y2 := right()
		add(x1, y1, x2, y2)
	case 4, 11:
		x1, y1 := right()
		x2, y2 := bottom()
		add(x1, y1, x2, y2)
	case 8, 7:
		x1, y1 := left()
		x2, y2 := bottom()
		add(x1, y1, x2, y2)
	case 3, 12:
		x1, y1 := left()
		x2, y2 := right()
		add(x1, y1, x2, y2)
	case 6, 9:
		x1, y1 := top()
		x2, y2 := bottom()
		add(x1, y1, x2, y2)
	case 5, 10:
		center := (v0 + v1 + v2 + v3) / 4
		sameAsCorner0 := (center >= level) == (idx == 5)
		tx, ty := top()
		rx, ry := right()
		bx, by := bottom()
		lx, ly := left()
		if sameAsCorner0 {
			add(tx, ty, rx, ry)
			add(bx, by, lx, ly)
		} else {
			add(tx, ty, lx, ly)
			add(bx, by, rx, ry)
		}
	}
	return segs
}

func lerp(a, b, va, vb, level float64) float64 {
	if vb == va {
		return (a + b) / 2
	}
	return a + (b-a)*(level-va)/(vb-va)
}

// AddProjectedContours draws contour segments through a projection,
// dropping segments with an invisible endpoint.
func AddProjectedContours(p *plot.Plot, g XYZGrid, levels []float64, proj mapproj.Projection, sty draw.LineStyle) error {
	x, y, z := g.Coords()
	for _, level := range levels {
		for _, s := range ContourSegments(x, y, z, level) {
			x1, y1, v1 := proj.Project(s.Y1, s.X1)
			x2, y2, v2 := proj.Project(s.Y2, s.X2)
			if !v1 || !v2 {
				continue
			}
			ln, err := plotter.NewLine(plotter.XYs{{X: x1, Y: y1}, {X: x2, Y: y2}})
			if err != nil {
				return err
			}
			ln.LineStyle = sty
			p.Add(ln)
		}
	}
	return nil
}
