package entries

import (
	"context"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/climate-plot-gallery/internal/clim"
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery"
	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
	"github.com/couchcryptid/climate-plot-gallery/internal/mapproj"
	"github.com/couchcryptid/climate-plot-gallery/internal/render"
)

// renderMercator draws surface-deviation contours over a native Mercator
// map zoomed to the Sea of Japan (128-144E, 34-52N).
func renderMercator(ctx context.Context, env *gallery.Env) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fsd, err := grid.LoadVar(env.DataPath(fileSurfDev), "FSD")
	if err != nil {
		return "", err
	}
	fsd, err = fsd.ISel("time", 0)
	if err != nil {
		return "", err
	}

	merc := mapproj.Mercator{}
	xyz, err := render.FromGrid(fsd, "lon", "lat", merc.Y)
	if err != nil {
		return "", err
	}

	p := plot.New()

	cm, pal := render.Ranged(moreland.ExtendedBlackBody(), 0, 70, 14)
	p.Add(plotter.NewHeatMap(xyz, pal))

	lineLevels := clim.Span(0, 70, 5)
	p.Add(plotter.NewContour(xyz, lineLevels, render.Solid(color.Black, len(lineLevels))))

	if env.Features != nil {
		if err := render.AddLand(p, env.Features, merc, color.Gray{0xd3}); err != nil {
			return "", err
		}
		if err := render.AddCoastlines(p, env.Features, merc, draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(0.5),
		}); err != nil {
			return "", err
		}
	}

	p.X.Tick.Marker = render.LonTicks([]float64{130, 134, 138, 142})
	latTicks := make([]plot.Tick, 0, 8)
	for _, lat := range clim.Span(36, 50, 2) {
		latTicks = append(latTicks, plot.Tick{Value: merc.Y(lat), Label: render.DegreeLabel(lat, 'N')})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(latTicks)
	render.SetExtent(p, 128, 144, merc.Y(34), merc.Y(52))

	fig := render.NewFigure(&render.Panel{
		Plot:  p,
		Left:  "Sfree surface deviation",
		Right: "m",
	})
	fig.Main = "Native Mercator Projection"
	fig.Bar = &render.ColorBarSpec{ColorMap: cm, Ticks: clim.Span(0, 70, 10)}

	out := env.OutPath("mercator.png")
	if err := fig.Save(out, vg.Points(520), vg.Points(640)); err != nil {
		return "", err
	}
	return out, nil
}
