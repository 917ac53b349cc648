package entries

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
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

// North Atlantic analysis region.
const (
	eofLatMin = 25.0
	eofLatMax = 80.0
	eofLonMin = -80.0
	eofLonMax = 40.0
)

// renderEOFSLP computes the leading EOF of winter (DJF) North Atlantic sea
// level pressure for 1979-2003 and draws the spatial pattern above the
// principal-component bar series.
func renderEOFSLP(ctx context.Context, env *gallery.Env) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	slp, err := grid.LoadVar(env.DataPath(fileMonthlySLP), "slp")
	if err != nil {
		return "", err
	}
	slp, err = slp.RotateLon("lon")
	if err != nil {
		return "", err
	}
	slp, err = slp.SortBy("lat", true)
	if err != nil {
		return "", err
	}
	slp, err = slp.Sel("time",
		grid.TimeCoord(time.Date(1979, time.January, 1, 0, 0, 0, 0, time.UTC)),
		grid.TimeCoord(time.Date(2003, time.December, 31, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		return "", err
	}

	djf, err := clim.MonthToSeason(slp, "DJF")
	if err != nil {
		return "", err
	}
	weighted, err := clim.ApplyLatWeights(djf, "lat")
	if err != nil {
		return "", err
	}
	weighted, err = weighted.Sel("lat", eofLatMin, eofLatMax)
	if err != nil {
		return "", err
	}
	weighted, err = weighted.Sel("lon", eofLonMin, eofLonMax)
	if err != nil {
		return "", err
	}

	eof, err := clim.LeadingEOF(weighted)
	if err != nil {
		return "", err
	}
	// Fix the mode's sign so the Icelandic low comes out negative.
	if err := eof.OrientNegative(60, 70, -30, -10); err != nil {
		return "", err
	}
	eof.NormalizePC()

	patternPanel, cm, err := eofPatternPlot(eof, env)
	if err != nil {
		return "", err
	}
	pcPanel, err := eofSeriesPlot(eof, weighted.Coords["time"])
	if err != nil {
		return "", err
	}

	fig := render.NewFigure(
		&render.Panel{
			Plot:  patternPanel,
			Left:  "SLP: DJF: 1979-2003",
			Right: fmt.Sprintf("%.1f%%", eof.VarFrac*100),
		},
		&render.Panel{Plot: pcPanel, Left: "PC 1 (normalized)"},
	)
	fig.Main = "SLP Leading EOF"
	fig.Bar = &render.ColorBarSpec{ColorMap: cm}

	out := env.OutPath("eofslp.png")
	if err := fig.Save(out, vg.Points(540), vg.Points(680)); err != nil {
		return "", err
	}
	return out, nil
}

// eofPatternPlot draws the leading spatial mode as filled and line contours
// with levels symmetric about zero.
func eofPatternPlot(eof *clim.EOFResult, env *gallery.Env) (*plot.Plot, palette.ColorMap, error) {
	levels := clim.SymmetricLevels(eof.Pattern.Data.Elements, 12)
	bound := levels[len(levels)-1]

	xyz, err := render.FromGrid(eof.Pattern, "lon", "lat", nil)
	if err != nil {
		return nil, nil, err
	}

	p := plot.New()
	cm, pal := render.Ranged(moreland.SmoothBlueRed(), -bound, bound, len(levels)-1)
	p.Add(plotter.NewHeatMap(xyz, pal))
	p.Add(plotter.NewContour(xyz, levels, render.Solid(color.Black, len(levels))))

	if env.Features != nil {
		if err := render.AddCoastlines(p, env.Features, mapproj.PlateCarree{}, draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(0.5),
		}); err != nil {
			return nil, nil, err
		}
	}

	p.X.Tick.Marker = render.LonTicks(clim.Span(-80, 40, 20))
	p.Y.Tick.Marker = render.LatTicks(clim.Span(30, 80, 10))
	render.SetExtent(p, eofLonMin, eofLonMax, eofLatMin, eofLatMax)
	return p, cm, nil
}

// eofSeriesPlot draws the principal component as bars about a zero line,
// colored by sign.
func eofSeriesPlot(eof *clim.EOFResult, timeCoords []float64) (*plot.Plot, error) {
	n := len(eof.PC)
	pos := make(plotter.Values, n)
	neg := make(plotter.Values, n)
	for i, v := range eof.PC {
		if v >= 0 {
			pos[i] = v
		} else {
			neg[i] = v
		}
	}

	p := plot.New()

	posBars, err := plotter.NewBarChart(pos, vg.Points(4))
	if err != nil {
		return nil, err
	}
	posBars.Color = color.RGBA{R: 0xc8, G: 0x32, B: 0x32, A: 0xff}
	posBars.LineStyle.Width = 0

	negBars, err := plotter.NewBarChart(neg, vg.Points(4))
	if err != nil {
		return nil, err
	}
	negBars.Color = color.RGBA{R: 0x32, G: 0x50, B: 0xc8, A: 0xff}
	negBars.LineStyle.Width = 0

	zero, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: 0},
		{X: float64(n) - 0.5, Y: 0},
	})
	if err != nil {
		return nil, err
	}
	p.Add(posBars, negBars, zero)

	var ticks []plot.Tick
	for i, c := range timeCoords {
		if i >= n {
			break
		}
		year := grid.Time(c).Year()
		tk := plot.Tick{Value: float64(i)}
		if year%5 == 0 {
			tk.Label = fmt.Sprintf("%d", year)
		}
		ticks = append(ticks, tk)
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Label.Text = "Amplitude"
	return p, nil
}
