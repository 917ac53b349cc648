package render

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Panel is one plot with the reference figures' left/right subtitle pair
// drawn above its axes.
type Panel struct {
	Plot  *plot.Plot
	Left  string
	Right string
}

// Figure lays out one or more panels vertically, with an optional main
// title, an optional horizontal color bar strip, and an optional boxed
// caption below everything.
type Figure struct {
	Main     string
	Panels   []*Panel
	Bar      *ColorBarSpec
	Caption  string
	MainSize vg.Length
}

// ColorBarSpec describes the horizontal color bar strip.
type ColorBarSpec struct {
	ColorMap palette.ColorMap
	Ticks    []float64
}

// NewFigure builds a figure from panels in top-to-bottom order.
func NewFigure(panels ...*Panel) *Figure {
	return &Figure{Panels: panels}
}

// Save renders the figure to a PNG file of the given size.
func (f *Figure) Save(path string, w, h vg.Length) error {
	if len(f.Panels) == 0 {
		return fmt.Errorf("figure %s: no panels", path)
	}

	img := vgimg.New(w, h)
	dc := draw.New(img)

	// Opaque background.
	dc.FillPolygon(color.White, rectPoints(dc.Rectangle))

	top := dc.Max.Y
	bottom := dc.Min.Y

	if f.Caption != "" {
		band := vg.Length(0.06) * h
		f.drawCaption(subCanvas(dc, dc.Min.X, bottom, dc.Max.X, bottom+band))
		bottom += band
	}
	if f.Bar != nil {
		band := vg.Length(0.10) * h
		if err := f.drawColorBar(subCanvas(dc, dc.Min.X+w/12, bottom, dc.Max.X-w/12, bottom+band)); err != nil {
			return fmt.Errorf("figure %s: color bar: %w", path, err)
		}
		bottom += band
	}
	if f.Main != "" {
		band := vg.Length(0.06) * h
		f.drawMain(subCanvas(dc, dc.Min.X, top-band, dc.Max.X, top))
		top -= band
	}

	panelH := (top - bottom) / vg.Length(len(f.Panels))
	for i, panel := range f.Panels {
		py1 := top - vg.Length(i)*panelH
		py0 := py1 - panelH
		c := subCanvas(dc, dc.Min.X, py0, dc.Max.X, py1)
		if panel.Left != "" || panel.Right != "" {
			band := vg.Length(16)
			sub := subCanvas(dc, c.Min.X, c.Max.Y-band, c.Max.X, c.Max.Y)
			drawSubtitles(sub, panel.Left, panel.Right)
			c = subCanvas(dc, c.Min.X, c.Min.Y, c.Max.X, c.Max.Y-band)
		}
		panel.Plot.Draw(c)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("figure %s: %w", path, err)
	}
	defer out.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(out); err != nil {
		return fmt.Errorf("figure %s: encode: %w", path, err)
	}
	return nil
}

func (f *Figure) drawMain(c draw.Canvas) {
	size := f.MainSize
	if size == 0 {
		size = vg.Points(16)
	}
	sty := textStyle(size, text.XCenter, text.YCenter)
	mid := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	c.FillText(sty, mid, f.Main)
}

func drawSubtitles(c draw.Canvas, left, right string) {
	// Indent to roughly the plot frame, past the y-axis labels.
	indent := vg.Points(40)
	if left != "" {
		sty := textStyle(vg.Points(11), text.XLeft, text.YBottom)
		c.FillText(sty, vg.Point{X: c.Min.X + indent, Y: c.Min.Y + vg.Points(2)}, left)
	}
	if right != "" {
		sty := textStyle(vg.Points(11), text.XRight, text.YBottom)
		c.FillText(sty, vg.Point{X: c.Max.X - vg.Points(8), Y: c.Min.Y + vg.Points(2)}, right)
	}
}

func (f *Figure) drawColorBar(c draw.Canvas) error {
	p := plot.New()
	p.HideY()
	p.Add(&plotter.ColorBar{ColorMap: f.Bar.ColorMap})
	if len(f.Bar.Ticks) > 0 {
		p.X.Tick.Marker = ValueTicks(f.Bar.Ticks)
	}
	p.Draw(c)
	return nil
}

func (f *Figure) drawCaption(c draw.Canvas) {
	pad := vg.Points(4)
	sty := textStyle(vg.Points(11), text.XCenter, text.YCenter)
	mid := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}

	wid := sty.Width(f.Caption)
	box := vg.Rectangle{
		Min: vg.Point{X: mid.X - wid/2 - pad, Y: c.Min.Y + pad},
		Max: vg.Point{X: mid.X + wid/2 + pad, Y: c.Max.Y - pad},
	}
	c.FillPolygon(color.White, rectPoints(box))
	outline := rectPoints(box)
	outline = append(outline, outline[0])
	c.StrokeLines(draw.LineStyle{Color: color.Black, Width: vg.Points(0.75)}, outline)
	c.FillText(sty, mid, f.Caption)
}

func textStyle(size vg.Length, xa text.XAlignment, ya text.YAlignment) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		XAlign:  xa,
		YAlign:  ya,
		Handler: text.Plain{Fonts: font.DefaultCache},
	}
}

func subCanvas(dc draw.Canvas, x0, y0, x1, y1 vg.Length) draw.Canvas {
	return draw.Canvas{
		Canvas: dc.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: x0, Y: y0},
			Max: vg.Point{X: x1, Y: y1},
		},
	}
}

func rectPoints(r vg.Rectangle) []vg.Point {
	return []vg.Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// SavePlot writes a single-panel figure, the common case.
func SavePlot(p *plot.Plot, path string, w, h vg.Length) error {
	return NewFigure(&Panel{Plot: p}).Save(path, w, h)
}
