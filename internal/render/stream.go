package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/climate-plot-gallery/internal/clim"
)

// StreamOptions tunes the streamline tracer.
type StreamOptions struct {
	// Density controls how many lines fill the domain; the occupancy mask
	// has 30*Density cells per axis, as in the reference figures' plotting
	// library. Zero means 1.
	Density int
	// MaxSteps bounds each half-trace. Zero means 600.
	MaxSteps int
	// MinPoints drops stub lines shorter than this. Zero means 10.
	MinPoints int
}

// Streamlines traces field lines of (u, v) over the coordinate vectors
// x and y (both ascending), seeding on a coarse mask so line spacing stays
// near-uniform. u and v are indexed [row=y][col=x]. The integrator is
// midpoint RK2 on the direction field, so line geometry depends on flow
// direction, not speed.
func Streamlines(x, y []float64, u, v [][]float64, opt StreamOptions) ([]plotter.XYs, error) {
	ui, err := clim.NewBilinear(x, y, u)
	if err != nil {
		return nil, fmt.Errorf("streamlines: %w", err)
	}
	vi, err := clim.NewBilinear(x, y, v)
	if err != nil {
		return nil, fmt.Errorf("streamlines: %w", err)
	}

	density := opt.Density
	if density <= 0 {
		density = 1
	}
	maxSteps := opt.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 600
	}
	minPoints := opt.MinPoints
	if minPoints <= 0 {
		minPoints = 10
	}

	nMask := 30 * density
	x0, x1 := x[0], x[len(x)-1]
	y0, y1 := y[0], y[len(y)-1]
	mask := newOccupancy(nMask, x0, x1, y0, y1)

	// Step size: a fraction of a mask cell in data units.
	h := math.Min((x1-x0)/float64(nMask), (y1-y0)/float64(nMask)) / 2

	dir := func(px, py float64) (float64, float64, bool) {
		du := ui.At(px, py)
		dv := vi.At(px, py)
		if math.IsNaN(du) || math.IsNaN(dv) {
			return 0, 0, false
		}
		// Normalize x and y rates to comparable units so anisotropic
		// domains (degrees vs millibars) trace smoothly.
		du /= (x1 - x0)
		dv /= (y1 - y0)
		n := math.Hypot(du, dv)
		if n == 0 {
			return 0, 0, false
		}
		return du / n * (x1 - x0), dv / n * (y1 - y0), true
	}

	var lines []plotter.XYs
	for j := 0; j < nMask; j++ {
		for i := 0; i < nMask; i++ {
			sx, sy := mask.center(i, j)
			if mask.taken(sx, sy) {
				continue
			}
			fwd := trace(sx, sy, h, maxSteps, dir, mask)
			bwd := trace(sx, sy, -h, maxSteps, dir, mask)
			line := make(plotter.XYs, 0, len(fwd)+len(bwd))
			for k := len(bwd) - 1; k >= 1; k-- {
				line = append(line, bwd[k])
			}
			line = append(line, fwd...)
			if len(line) < minPoints {
				mask.pending = map[int]bool{}
				continue
			}
			mask.claim(line)
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func trace(px, py, h float64, maxSteps int, dir func(float64, float64) (float64, float64, bool), m *occupancy) plotter.XYs {
	pts := plotter.XYs{{X: px, Y: py}}
	for s := 0; s < maxSteps; s++ {
		dx, dy, ok := dir(px, py)
		if !ok {
			break
		}
		// Midpoint step.
		mx, my := px+dx*h/2, py+dy*h/2
		dx, dy, ok = dir(mx, my)
		if !ok {
			break
		}
		px += dx * h
		py += dy * h
		if !m.inside(px, py) {
			break
		}
		if m.takenByOther(px, py, pts) {
			break
		}
		pts = append(pts, plotter.XY{X: px, Y: py})
	}
	return pts
}

// occupancy is the coarse cell mask that keeps streamlines spaced apart.
type occupancy struct {
	n              int
	x0, x1, y0, y1 float64
	used           []bool
	pending        map[int]bool
}

func newOccupancy(n int, x0, x1, y0, y1 float64) *occupancy {
	return &occupancy{
		n: n, x0: x0, x1: x1, y0: y0, y1: y1,
		used:    make([]bool, n*n),
		pending: map[int]bool{},
	}
}

func (o *occupancy) cell(x, y float64) (int, bool) {
	if !o.inside(x, y) {
		return 0, false
	}
	i := int((x - o.x0) / (o.x1 - o.x0) * float64(o.n))
	j := int((y - o.y0) / (o.y1 - o.y0) * float64(o.n))
	if i >= o.n {
		i = o.n - 1
	}
	if j >= o.n {
		j = o.n - 1
	}
	return j*o.n + i, true
}

func (o *occupancy) inside(x, y float64) bool {
	return x >= o.x0 && x <= o.x1 && y >= o.y0 && y <= o.y1
}

func (o *occupancy) center(i, j int) (float64, float64) {
	return o.x0 + (float64(i)+0.5)/float64(o.n)*(o.x1-o.x0),
		o.y0 + (float64(j)+0.5)/float64(o.n)*(o.y1-o.y0)
}

func (o *occupancy) taken(x, y float64) bool {
	c, ok := o.cell(x, y)
	return ok && o.used[c]
}

// takenByOther reports whether the cell is already used by a committed
// line; the line being traced may revisit its own most recent cells.
func (o *occupancy) takenByOther(x, y float64, pts plotter.XYs) bool {
	c, ok := o.cell(x, y)
	if !ok {
		return false
	}
	if !o.used[c] {
		o.pending[c] = true
		return false
	}
	if o.pending[c] {
		return false
	}
	return true
}

func (o *occupancy) claim(line plotter.XYs) {
	for _, pt := range line {
		if c, ok := o.cell(pt.X, pt.Y); ok {
			o.used[c] = true
		}
	}
	o.pending = map[int]bool{}
}

// AddStreamlines draws traced lines with a small arrowhead at the midpoint
// of each, the "curly vector" treatment.
func AddStreamlines(p *plot.Plot, lines []plotter.XYs, sty draw.LineStyle, arrow float64) error {
	for _, line := range lines {
		ln, err := plotter.NewLine(line)
		if err != nil {
			return err
		}
		ln.LineStyle = sty
		p.Add(ln)

		if arrow <= 0 || len(line) < 2 {
			continue
		}
		mid := len(line) / 2
		a, b := line[mid-1], line[mid]
		if err := addArrowhead(p, a, b, sty, arrow); err != nil {
			return err
		}
	}
	return nil
}

func addArrowhead(p *plot.Plot, a, b plotter.XY, sty draw.LineStyle, size float64) error {
	dx, dy := b.X-a.X, b.Y-a.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return nil
	}
	dx, dy = dx/n, dy/n
	// Two barbs swept back from the tip.
	const spread = 0.35
	left := plotter.XY{
		X: b.X - size*(dx*math.Cos(spread)-dy*math.Sin(spread)),
		Y: b.Y - size*(dy*math.Cos(spread)+dx*math.Sin(spread)),
	}
	right := plotter.XY{
		X: b.X - size*(dx*math.Cos(spread)+dy*math.Sin(spread)),
		Y: b.Y - size*(dy*math.Cos(spread)-dx*math.Sin(spread)),
	}
	ln, err := plotter.NewLine(plotter.XYs{left, b, right})
	if err != nil {
		return err
	}
	ln.LineStyle = sty
	p.Add(ln)
	return nil
}
