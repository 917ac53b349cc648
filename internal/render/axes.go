package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
)

// DegreeLabel formats a coordinate value with a hemisphere suffix.
// kind is 'N' for latitude (suffix N/S) or 'E' for longitude (suffix E/W).
func DegreeLabel(v float64, kind byte) string {
	a := math.Abs(v)
	s := fmt.Sprintf("%g", a)
	switch {
	case v == 0:
		return "0"
	case kind == 'N' && v > 0:
		return s + "N"
	case kind == 'N':
		return s + "S"
	case v > 0 && a == 180:
		return s
	case v > 0:
		return s + "E"
	default:
		return s + "W"
	}
}

// LatTicks builds latitude axis ticks with S/N labels.
func LatTicks(vals []float64) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: v, Label: DegreeLabel(v, 'N')}
	}
	return plot.ConstantTicks(ticks)
}

// LonTicks builds longitude axis ticks with W/E labels.
func LonTicks(vals []float64) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: v, Label: DegreeLabel(v, 'E')}
	}
	return plot.ConstantTicks(ticks)
}

// ValueTicks builds plain numeric ticks at the given positions.
func ValueTicks(vals []float64) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: v, Label: fmt.Sprintf("%g", v)}
	}
	return plot.ConstantTicks(ticks)
}

// LabeledTicks pairs explicit positions with explicit labels, for axes like
// the section plot's 60S..60N with custom strings.
func LabeledTicks(vals []float64, labels []string) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		lbl := ""
		if i < len(labels) {
			lbl = labels[i]
		}
		ticks[i] = plot.Tick{Value: v, Label: lbl}
	}
	return plot.ConstantTicks(ticks)
}

// WithMinor interleaves unlabeled minor ticks between labeled major ones.
// gonum/plot draws ticks with empty labels at minor length, which gives the
// major/minor look of the reference figures.
func WithMinor(major []float64, minorPerMajor int) []plot.Tick {
	var ticks []plot.Tick
	for i, v := range major {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%g", v)})
		if i == len(major)-1 {
			break
		}
		step := (major[i+1] - v) / float64(minorPerMajor+1)
		for m := 1; m <= minorPerMajor; m++ {
			ticks = append(ticks, plot.Tick{Value: v + float64(m)*step})
		}
	}
	return ticks
}

// AddMinor appends unlabeled minor ticks between the major ticks of an
// existing set.
func AddMinor(ticks plot.ConstantTicks, minorPerMajor int) plot.ConstantTicks {
	var out []plot.Tick
	for i, tk := range ticks {
		out = append(out, tk)
		if i == len(ticks)-1 {
			break
		}
		step := (ticks[i+1].Value - tk.Value) / float64(minorPerMajor+1)
		for m := 1; m <= minorPerMajor; m++ {
			out = append(out, plot.Tick{Value: tk.Value + float64(m)*step})
		}
	}
	return out
}

// SetExtent fixes the axis ranges of a map plot.
func SetExtent(p *plot.Plot, xMin, xMax, yMin, yMax float64) {
	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax
}
