package grid

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// epochUnits is the time encoding written for "time" coordinates, matching
// what the reader decodes.
const epochUnits = "seconds since 1970-01-01 00:00:00"

// WriteFile writes grids to a netCDF classic file. Dimensions shared
// between grids must have identical coordinate vectors; each dimension also
// gets a float64 coordinate variable. Data values are written as float32.
func WriteFile(path string, grids []*Grid, globalAttrs map[string]string) error {
	var dimNames []string
	dimLens := map[string]int{}
	for _, g := range grids {
		for i, d := range g.Dims {
			n := g.Data.Shape[i]
			if have, ok := dimLens[d]; ok {
				if have != n {
					return fmt.Errorf("write %s: dimension %q has conflicting lengths %d and %d", path, d, have, n)
				}
				continue
			}
			dimLens[d] = n
			dimNames = append(dimNames, d)
		}
	}
	lens := make([]int, len(dimNames))
	for i, d := range dimNames {
		lens[i] = dimLens[d]
	}

	h := cdf.NewHeader(dimNames, lens)
	for k, v := range globalAttrs {
		h.AddAttribute("", k, v)
	}
	for _, d := range dimNames {
		h.AddVariable(d, []string{d}, []float64{0})
		if d == "time" {
			h.AddAttribute(d, "units", epochUnits)
		}
	}
	for _, g := range grids {
		h.AddVariable(g.Name, g.Dims, []float32{0})
		for k, v := range g.Attrs {
			h.AddAttribute(g.Name, k, v)
		}
	}
	h.Define()

	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer ff.Close()

	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("write %s: create header: %w", path, err)
	}

	written := map[string]bool{}
	for _, g := range grids {
		for _, d := range g.Dims {
			if written[d] {
				continue
			}
			written[d] = true
			if err := writeVar(f, d, g.Coords[d]); err != nil {
				return fmt.Errorf("write %s: coordinate %q: %w", path, d, err)
			}
		}
		vals := make([]float32, len(g.Data.Elements))
		for i, v := range g.Data.Elements {
			vals[i] = float32(v)
		}
		if err := writeVar(f, g.Name, vals); err != nil {
			return fmt.Errorf("write %s: variable %q: %w", path, g.Name, err)
		}
	}

	if err := cdf.UpdateNumRecs(ff); err != nil {
		return fmt.Errorf("write %s: finalize: %w", path, err)
	}
	return nil
}

func writeVar[T float32 | float64](f *cdf.File, name string, vals []T) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	if _, err := w.Write(vals); err != nil {
		return err
	}
	return nil
}
