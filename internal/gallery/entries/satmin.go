package entries

import (
	"context"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/climate-plot-gallery/internal/clim"
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery"
	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
	"github.com/couchcryptid/climate-plot-gallery/internal/mapproj"
	"github.com/couchcryptid/climate-plot-gallery/internal/render"
)

// satMinTimestep selects January 24th from the daily 1963 record.
const satMinTimestep = 24

// renderSatMin draws sea level pressure on an orthographic view centered on
// North America and labels every detected low with an "L" and its value.
func renderSatMin(ctx context.Context, env *gallery.Env) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	slp, err := grid.LoadVar(env.DataPath(fileDailySLP), "slp")
	if err != nil {
		return "", err
	}
	slp, err = slp.ISel("time", satMinTimestep)
	if err != nil {
		return "", err
	}
	slp.Scale(0.01) // Pa to hPa

	cyclic, err := slp.CyclicLon("lon")
	if err != nil {
		return "", err
	}

	lows, err := clim.LocalMinima(slp, cyclic, 980)
	if err != nil {
		return "", err
	}

	proj := mapproj.Orthographic{CenterLat: 45, CenterLon: 270}
	thin := draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}

	p := plot.New()
	p.HideAxes()
	if err := render.FillGlobe(p, color.RGBA{R: 0xe0, G: 0xff, B: 0xff, A: 0xff}); err != nil {
		return "", err
	}
	if env.Features != nil {
		if err := render.AddLand(p, env.Features, proj, color.Gray{0xd3}); err != nil {
			return "", err
		}
		if err := render.AddCoastlines(p, env.Features, proj, thin); err != nil {
			return "", err
		}
	}

	xyz, err := render.FromGrid(cyclic, "lon", "lat", nil)
	if err != nil {
		return "", err
	}
	levels := clim.WithInserted(clim.Span(948, 1060, 4), 975)
	if err := render.AddProjectedContours(p, xyz, levels, proj, thin); err != nil {
		return "", err
	}

	var marks plotter.XYLabels
	for _, low := range lows {
		x, y, visible := proj.Project(low.Lat, low.Lon)
		if !visible {
			continue
		}
		marks.XYs = append(marks.XYs, plotter.XY{X: x, Y: y})
		marks.Labels = append(marks.Labels, fmt.Sprintf("L%.0f", low.Value))
	}
	if len(marks.XYs) > 0 {
		labels, err := plotter.NewLabels(marks)
		if err != nil {
			return "", err
		}
		p.Add(labels)
	}

	if err := render.AddGlobeOutline(p, thin); err != nil {
		return "", err
	}
	render.SetExtent(p, -1.05, 1.05, -1.05, 1.05)

	fig := render.NewFigure(&render.Panel{
		Plot:  p,
		Left:  "mean Daily Sea Level Pressure",
		Right: "hPa",
	})
	fig.Main = "SLP 1963, January 24th"
	fig.Caption = "CONTOUR FROM 948 TO 1060 BY 4"

	out := env.OutPath("satmin.png")
	if err := fig.Save(out, vg.Points(520), vg.Points(600)); err != nil {
		return "", err
	}
	return out, nil
}
