package entries

import (
	"context"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/climate-plot-gallery/internal/clim"
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery"
	"github.com/couchcryptid/climate-plot-gallery/internal/mapproj"
	"github.com/couchcryptid/climate-plot-gallery/internal/render"
)

// renderMapOnly draws a bare cylindrical-equidistant world map: silver land
// fill and degree-labeled major ticks with unlabeled minors between them.
func renderMapOnly(ctx context.Context, env *gallery.Env) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p := plot.New()
	proj := mapproj.PlateCarree{}

	if env.Features != nil {
		if err := render.AddLand(p, env.Features, proj, color.Gray{0xc0}); err != nil {
			return "", err
		}
		if err := render.AddCoastlines(p, env.Features, proj, draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(0.5),
		}); err != nil {
			return "", err
		}
	}

	p.X.Tick.Marker = render.AddMinor(render.LonTicks(clim.Span(-180, 180, 30)), 3)
	p.Y.Tick.Marker = render.AddMinor(render.LatTicks(clim.Span(-90, 90, 30)), 3)
	render.SetExtent(p, -180, 180, -90, 90)

	out := env.OutPath("maponly.png")
	if err := render.SavePlot(p, out, vg.Points(720), vg.Points(400)); err != nil {
		return "", err
	}
	return out, nil
}
