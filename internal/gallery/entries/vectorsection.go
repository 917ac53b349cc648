package entries

import (
	"context"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/climate-plot-gallery/internal/clim"
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery"
	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
	"github.com/couchcryptid/climate-plot-gallery/internal/render"
)

// sectionP0 is the reference pressure for the hybrid coordinate, in mb.
const sectionP0 = 1000.0

// renderVectorSection draws a pressure/height section at 170E: temperature
// interpolated from hybrid model levels to fixed pressure surfaces, with
// streamlines of (V, scaled OMEGA) resembling curly vectors.
func renderVectorSection(ctx context.Context, env *gallery.Env) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := grid.Open(env.DataPath(fileAtmos))
	if err != nil {
		return "", err
	}
	defer f.Close()

	ps, err := f.Load("PS")
	if err != nil {
		return "", err
	}
	ps.Scale(0.01) // Pa to mb
	hyam, err := f.Load1D("hyam")
	if err != nil {
		return "", err
	}
	hybm, err := f.Load1D("hybm")
	if err != nil {
		return "", err
	}

	pnew := clim.Span(200, 900, 50)
	section := func(name string) (*grid.Grid, error) {
		g, err := f.Load(name)
		if err != nil {
			return nil, err
		}
		g, err = clim.HybridToPressure(g, ps, hyam, hybm, sectionP0, pnew)
		if err != nil {
			return nil, err
		}
		g, err = g.ISel("time", 0)
		if err != nil {
			return nil, err
		}
		return g.SelNearest("lon", 170)
	}

	tSec, err := section("T")
	if err != nil {
		return "", err
	}
	wSec, err := section("OMEGA")
	if err != nil {
		return "", err
	}
	vSec, err := section("V")
	if err != nil {
		return "", err
	}

	// Vertical velocity is orders of magnitude smaller than V; scale it so
	// the streamline slopes are readable.
	scale := math.Abs(vSec.Mean() / wSec.Mean())
	wSec.Scale(scale)

	tXYZ, err := render.FromGrid(tSec, "lat", "plev", nil)
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	levels := clim.Linspace(200, 300, 11)
	cm, pal := render.Ranged(moreland.Kindlmann(), 200, 300, 10)
	p.Add(plotter.NewHeatMap(tXYZ, pal))
	p.Add(plotter.NewContour(tXYZ, levels, render.Solid(color.Black, len(levels))))

	vXYZ, err := render.FromGrid(vSec, "lat", "plev", nil)
	if err != nil {
		return "", err
	}
	wXYZ, err := render.FromGrid(wSec, "lat", "plev", nil)
	if err != nil {
		return "", err
	}
	x, y, vz := vXYZ.Coords()
	_, _, wz := wXYZ.Coords()
	lines, err := render.Streamlines(x, y, vz, wz, render.StreamOptions{Density: 2})
	if err != nil {
		return "", err
	}
	if err := render.AddStreamlines(p, lines, draw.LineStyle{
		Color: color.Black,
		Width: vg.Points(0.5),
	}, 0.7); err != nil {
		return "", err
	}

	p.X.Tick.Marker = render.LabeledTicks(
		[]float64{-60, -30, 0, 30, 60},
		[]string{"60S", "30S", "0", "30N", "60N"},
	)
	p.Y.Tick.Marker = render.ValueTicks([]float64{200, 250, 300, 400, 500, 700, 850})
	p.Y.Label.Text = "Pressure (mb)"
	render.SetExtent(p, -88, 88, 200, 900)

	fig := render.NewFigure(&render.Panel{Plot: p})
	fig.Main = "Pressure/Height Vector"
	fig.Bar = &render.ColorBarSpec{
		ColorMap: cm,
		Ticks:    []float64{200, 220, 240, 260, 280},
	}

	out := env.OutPath("vectorsection.png")
	if err := fig.Save(out, vg.Points(520), vg.Points(620)); err != nil {
		return "", err
	}
	return out, nil
}
