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
	"github.com/couchcryptid/climate-plot-gallery/internal/mapproj"
	"github.com/couchcryptid/climate-plot-gallery/internal/render"
)

// renderWindPanel stacks two world maps from the second timestep of the
// wind dataset: wind speed as filled contours on top, the vector field
// below.
func renderWindPanel(ctx context.Context, env *gallery.Env) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := grid.Open(env.DataPath(fileWinds))
	if err != nil {
		return "", err
	}
	defer f.Close()

	u, err := f.Load("U")
	if err != nil {
		return "", err
	}
	v, err := f.Load("V")
	if err != nil {
		return "", err
	}
	u, err = u.ISel("time", 1)
	if err != nil {
		return "", err
	}
	v, err = v.ISel("time", 1)
	if err != nil {
		return "", err
	}

	speed := u.Clone()
	speed.Name = "speed"
	for i, uv := range u.Data.Elements {
		speed.Data.Elements[i] = math.Hypot(uv, v.Data.Elements[i])
	}

	proj := mapproj.PlateCarree{}
	decorate := func(p *plot.Plot) error {
		if env.Features != nil {
			if err := render.AddCoastlines(p, env.Features, proj, draw.LineStyle{
				Color: color.Black,
				Width: vg.Points(0.5),
			}); err != nil {
				return err
			}
		}
		p.X.Tick.Marker = render.AddMinor(render.LonTicks(clim.Span(-180, 180, 30)), 3)
		p.Y.Tick.Marker = render.AddMinor(render.LatTicks(clim.Span(-90, 90, 30)), 3)
		render.SetExtent(p, -180, 180, -90, 90)
		return nil
	}

	speedXYZ, err := render.FromGrid(speed, "lon", "lat", nil)
	if err != nil {
		return "", err
	}
	_, maxSpeed := speed.MinMax()

	top := plot.New()
	cm, pal := render.Ranged(moreland.Kindlmann(), 0, maxSpeed, 12)
	top.Add(plotter.NewHeatMap(speedXYZ, pal))
	if err := decorate(top); err != nil {
		return "", err
	}

	bottom := plot.New()
	uXYZ, err := render.FromGrid(u, "lon", "lat", nil)
	if err != nil {
		return "", err
	}
	vXYZ, err := render.FromGrid(v, "lon", "lat", nil)
	if err != nil {
		return "", err
	}
	ux, uy, uz := uXYZ.Coords()
	_, _, vz := vXYZ.Coords()
	sx, sy, su, sv := render.Subsample(ux, uy, uz, vz, 3)
	field, err := render.NewWindField(sx, sy, su, sv)
	if err != nil {
		return "", err
	}
	bottom.Add(field)
	if err := decorate(bottom); err != nil {
		return "", err
	}

	units := u.Attrs["units"]
	fig := render.NewFigure(
		&render.Panel{Plot: top, Left: "Speed", Right: units},
		&render.Panel{Plot: bottom, Left: "Wind", Right: units},
	)
	fig.Bar = &render.ColorBarSpec{ColorMap: cm}

	out := env.OutPath("windpanel.png")
	if err := fig.Save(out, vg.Points(560), vg.Points(620)); err != nil {
		return "", err
	}
	return out, nil
}
