package clim

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Span returns levels from start to stop inclusive with the given step.
func Span(start, stop, step float64) []float64 {
	var out []float64
	for v := start; v <= stop+step/1e6; v += step {
		out = append(out, v)
	}
	return out
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	dst := make([]float64, n)
	return floats.Span(dst, start, stop)
}

// WithInserted returns the levels with extra values merged in, sorted and
// deduplicated.
func WithInserted(levels []float64, extra ...float64) []float64 {
	out := slices.Clone(levels)
	out = append(out, extra...)
	slices.Sort(out)
	return slices.Compact(out)
}

// SymmetricLevels returns levels centered on zero covering the data's
// magnitude range: n steps on each side of zero, step chosen so the largest
// magnitude fits. Contour plots of anomaly fields use this so positive and
// negative intervals match.
func SymmetricLevels(data []float64, n int) []float64 {
	m := 0.0
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	if m == 0 {
		m = 1
	}
	step := niceStep(m / float64(n))
	out := make([]float64, 0, 2*n+1)
	for i := -n; i <= n; i++ {
		out = append(out, float64(i)*step)
	}
	return out
}

// niceStep rounds a raw step up to 1, 2, or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch {
	case raw/mag <= 1:
		return mag
	case raw/mag <= 2:
		return 2 * mag
	case raw/mag <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
