package grid

import (
	"fmt"
	"reflect"
	"regexp"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// File is an open netCDF dataset.
type File struct {
	path string
	nc   api.Group
}

// Open opens a netCDF file for whole-variable reads.
func Open(path string) (*File, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &File{path: path, nc: nc}, nil
}

// Close releases the underlying file.
func (f *File) Close() { f.nc.Close() }

// Load reads a whole variable and its coordinate vectors into a Grid.
// Dimensions without a coordinate variable get 0..n-1 index coordinates.
// Time axes with "<unit> since <epoch>" units are decoded to Unix seconds.
func (f *File) Load(name string) (*Grid, error) {
	vg, err := f.nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("%s: variable %q: %w", f.path, name, err)
	}
	dims := vg.Dimensions()
	if len(dims) == 0 {
		return nil, fmt.Errorf("%s: variable %q is a scalar", f.path, name)
	}

	coords := make(map[string][]float64, len(dims))
	for _, d := range dims {
		c, err := f.loadCoord(d)
		if err != nil {
			return nil, err
		}
		coords[d] = c
	}

	vals, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("%s: reading %q: %w", f.path, name, err)
	}
	flat, shape, err := flatten(vals)
	if err != nil {
		return nil, fmt.Errorf("%s: variable %q: %w", f.path, name, err)
	}
	if len(shape) != len(dims) {
		return nil, fmt.Errorf("%s: variable %q: %d dimensions but rank-%d values", f.path, name, len(dims), len(shape))
	}
	for i, d := range dims {
		if want := shape[i]; len(coords[d]) != want {
			// Coordinate variable disagrees with the data block; trust the data.
			coords[d] = indexCoords(want)
		}
	}

	g, err := New(name, dims, coords)
	if err != nil {
		return nil, err
	}
	copy(g.Data.Elements, flat)
	g.Attrs = attrStrings(vg.Attributes())
	return g, nil
}

// LoadVar opens path, loads one variable, and closes the file.
func LoadVar(path, name string) (*Grid, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Load(name)
}

// Load1D reads a one-dimensional variable as a plain vector (for hybrid
// level coefficients and similar per-level metadata).
func (f *File) Load1D(name string) ([]float64, error) {
	g, err := f.Load(name)
	if err != nil {
		return nil, err
	}
	if len(g.Dims) != 1 {
		return nil, fmt.Errorf("%s: variable %q: want 1 dimension, have %d", f.path, name, len(g.Dims))
	}
	return g.Data.Elements, nil
}

var sinceRe = regexp.MustCompile(`^(seconds|hours|days)\s+since\s+(\d{4}-\d{1,2}-\d{1,2})(?:[T ](\d{1,2}:\d{2}(?::\d{2})?))?`)

// loadCoord reads a coordinate variable, decoding time units when present.
func (f *File) loadCoord(dim string) ([]float64, error) {
	vg, err := f.nc.GetVarGetter(dim)
	if err != nil {
		// No coordinate variable for this dimension.
		return nil, nil
	}
	vals, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("%s: reading coordinate %q: %w", f.path, dim, err)
	}
	flat, shape, err := flatten(vals)
	if err != nil || len(shape) != 1 {
		return nil, fmt.Errorf("%s: coordinate %q is not a vector", f.path, dim)
	}

	attrs := attrStrings(vg.Attributes())
	if m := sinceRe.FindStringSubmatch(attrs["units"]); m != nil {
		scale := map[string]float64{"seconds": 1, "hours": 3600, "days": 86400}[m[1]]
		stamp := m[2]
		layout := "2006-1-2"
		if m[3] != "" {
			stamp += " " + m[3]
			layout = "2006-1-2 15:04:05"
			if len(m[3]) == 5 {
				layout = "2006-1-2 15:04"
			}
		}
		epoch, err := time.Parse(layout, stamp)
		if err != nil {
			return nil, fmt.Errorf("%s: coordinate %q: bad time units %q: %w", f.path, dim, attrs["units"], err)
		}
		base := float64(epoch.Unix())
		for i, v := range flat {
			flat[i] = base + v*scale
		}
	}
	return flat, nil
}

// flatten converts the nested typed slices returned by the netCDF reader
// (for example [][][]float32) into a flat float64 slice plus a shape.
func flatten(v any) ([]float64, []int, error) {
	var shape []int
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Slice {
		shape = append(shape, rv.Len())
		if rv.Len() == 0 {
			return nil, nil, fmt.Errorf("empty dimension in values")
		}
		rv = rv.Index(0)
	}
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, nil, fmt.Errorf("unsupported element kind %s", rv.Kind())
	}

	n := 1
	for _, s := range shape {
		n *= s
	}
	flat := make([]float64, 0, n)
	var walk func(reflect.Value, int) error
	walk = func(v reflect.Value, depth int) error {
		if depth == len(shape) {
			switch v.Kind() {
			case reflect.Float32, reflect.Float64:
				flat = append(flat, v.Float())
			case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				flat = append(flat, float64(v.Int()))
			default:
				flat = append(flat, float64(v.Uint()))
			}
			return nil
		}
		if v.Len() != shape[depth] {
			return fmt.Errorf("ragged values at depth %d", depth)
		}
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(reflect.ValueOf(v), 0); err != nil {
		return nil, nil, err
	}
	return flat, shape, nil
}

func attrStrings(am api.AttributeMap) map[string]string {
	out := map[string]string{}
	if am == nil {
		return out
	}
	for _, k := range am.Keys() {
		v, has := am.Get(k)
		if !has {
			continue
		}
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

func indexCoords(n int) []float64 {
	c := make([]float64, n)
	for i := range c {
		c[i] = float64(i)
	}
	return c
}
