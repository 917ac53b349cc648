package render

import (
	"image/color"
	"math"

	"github.com/ctessum/geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/climate-plot-gallery/internal/mapfeature"
	"github.com/couchcryptid/climate-plot-gallery/internal/mapproj"
)

// AddLand draws filled land polygons through the projection. Rings that
// cross the projection horizon are drawn as outline segments instead of
// fills, so an orthographic view does not smear far-side coastlines across
// the disk. A nil feature set is a no-op.
func AddLand(p *plot.Plot, set *mapfeature.Set, proj mapproj.Projection, fill color.Color) error {
	if set == nil {
		return nil
	}
	outline := draw.LineStyle{Color: color.Gray{0x55}, Width: vg.Points(0.5)}
	for _, poly := range set.Land {
		for _, ring := range poly {
			xys, allVisible := projectRing(ring, proj)
			if len(xys) < 3 {
				continue
			}
			if allVisible {
				pg, err := plotter.NewPolygon(xys)
				if err != nil {
					return err
				}
				pg.Color = fill
				pg.LineStyle.Color = color.Transparent
				p.Add(pg)
				continue
			}
			for _, run := range visibleRuns(ring, proj) {
				ln, err := plotter.NewLine(run)
				if err != nil {
					return err
				}
				ln.LineStyle = outline
				p.Add(ln)
			}
		}
	}
	return nil
}

// AddCoastlines draws ring outlines through the projection, splitting at
// horizon crossings.
func AddCoastlines(p *plot.Plot, set *mapfeature.Set, proj mapproj.Projection, sty draw.LineStyle) error {
	if set == nil {
		return nil
	}
	for _, poly := range set.Land {
		for _, ring := range poly {
			for _, run := range visibleRuns(ring, proj) {
				if len(run) < 2 {
					continue
				}
				ln, err := plotter.NewLine(run)
				if err != nil {
					return err
				}
				ln.LineStyle = sty
				p.Add(ln)
			}
		}
	}
	return nil
}

// AddGlobeOutline draws the unit-circle limb of an orthographic view.
func AddGlobeOutline(p *plot.Plot, sty draw.LineStyle) error {
	const n = 256
	xys := make(plotter.XYs, n+1)
	for i := 0; i <= n; i++ {
		th := 2 * math.Pi * float64(i) / n
		xys[i] = plotter.XY{X: math.Cos(th), Y: math.Sin(th)}
	}
	ln, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	ln.LineStyle = sty
	p.Add(ln)
	return nil
}

// FillGlobe paints the visible disk of an orthographic view, the ocean
// backdrop under land fills.
func FillGlobe(p *plot.Plot, fill color.Color) error {
	const n = 256
	xys := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / n
		xys[i] = plotter.XY{X: math.Cos(th), Y: math.Sin(th)}
	}
	pg, err := plotter.NewPolygon(xys)
	if err != nil {
		return err
	}
	pg.Color = fill
	pg.LineStyle.Color = color.Transparent
	p.Add(pg)
	return nil
}

func projectRing(ring []geom.Point, proj mapproj.Projection) (plotter.XYs, bool) {
	xys := make(plotter.XYs, 0, len(ring))
	all := true
	for _, pt := range ring {
		x, y, vis := proj.Project(pt.Y, pt.X)
		if !vis {
			all = false
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: y})
	}
	return xys, all
}

// visibleRuns splits a ring into consecutive visible stretches.
func visibleRuns(ring []geom.Point, proj mapproj.Projection) []plotter.XYs {
	var runs []plotter.XYs
	var cur plotter.XYs
	for _, pt := range ring {
		x, y, vis := proj.Project(pt.Y, pt.X)
		if !vis {
			if len(cur) > 1 {
				runs = append(runs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, plotter.XY{X: x, Y: y})
	}
	if len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}
