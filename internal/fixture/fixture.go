// Package fixture writes small synthetic netCDF datasets shaped like the
// gallery's five inputs, so rendering and tests need no external downloads.
// All fields are deterministic analytic functions of the coordinates.
package fixture

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

// Filenames match what the gallery entries expect in the data directory.
const (
	MonthlySLP = "slp.mon.mean.nc"
	DailySLP   = "slp.1963.nc"
	Winds      = "uv300.nc"
	Atmos      = "atmos.nc"
	SurfDev    = "fsd.nc"
)

// WriteAll writes every fixture into dir.
func WriteAll(dir string) error {
	writers := []struct {
		name  string
		write func(string) error
	}{
		{MonthlySLP, WriteMonthlySLP},
		{DailySLP, WriteDailySLP},
		{Winds, WriteWinds},
		{Atmos, WriteAtmos},
		{SurfDev, WriteSurfDev},
	}
	for _, w := range writers {
		if err := w.write(filepath.Join(dir, w.name)); err != nil {
			return fmt.Errorf("fixture %s: %w", w.name, err)
		}
	}
	return nil
}

func span(start, stop, step float64) []float64 {
	var out []float64
	for v := start; (step > 0 && v <= stop+1e-9) || (step < 0 && v >= stop-1e-9); v += step {
		out = append(out, v)
	}
	return out
}

func monthlyTimes(from time.Time, n int) []float64 {
	out := make([]float64, n)
	t := from
	for i := range out {
		out[i] = grid.TimeCoord(t)
		t = t.AddDate(0, 1, 0)
	}
	return out
}

func dailyTimes(from time.Time, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = grid.TimeCoord(from.AddDate(0, 0, i))
	}
	return out
}

// WriteMonthlySLP writes a monthly sea-level-pressure record from December
// 1978 through December 2003 whose dominant winter variability is a North
// Atlantic dipole, so an EOF of the DJF means recovers a stable leading
// mode.
func WriteMonthlySLP(path string) error {
	lats := span(90, -90, -5)
	lons := span(0, 355, 5)
	start := time.Date(1978, time.December, 1, 0, 0, 0, 0, time.UTC)
	nt := 12*25 + 1 // Dec 1978 .. Dec 2003
	times := monthlyTimes(start, nt)

	g, err := grid.New("slp", []string{"time", "lat", "lon"}, map[string][]float64{
		"time": times,
		"lat":  lats,
		"lon":  lons,
	})
	if err != nil {
		return err
	}
	g.Attrs["units"] = "millibars"
	g.Attrs["long_name"] = "Sea Level Pressure"

	// Dipole centers: Icelandic low (65N, 340E) and Azores high (38N, 332E).
	dipole := func(lat, lon float64) float64 {
		return bump(lat, lon, 38, 332, 12, 25) - bump(lat, lon, 65, 340, 12, 25)
	}
	i := 0
	for ti := 0; ti < nt; ti++ {
		t := start.AddDate(0, ti, 0)
		phase := 2 * math.Pi * float64(t.Month()-1) / 12
		// Multi-year oscillation drives the mode amplitude; winter months
		// carry most of it.
		amp := 8 * math.Sin(2*math.Pi*float64(t.Year()-1979)/7.3) * (1 + math.Cos(phase))
		for _, lat := range lats {
			for _, lon := range lons {
				v := 1012 + amp*dipole(lat, lon) +
					2*math.Sin(deg2rad(3*lon))*math.Cos(deg2rad(2*lat)) +
					1.5*math.Cos(phase+deg2rad(lon))
				g.Data.Elements[i] = v
				i++
			}
		}
	}

	return grid.WriteFile(path, []*grid.Grid{g}, map[string]string{
		"title": "synthetic monthly mean sea level pressure",
	})
}

// WriteDailySLP writes a daily January 1963 sea-level-pressure record in
// pascals. Two deep, smooth lows sit at coordinate positions that the
// satellite view's index mapping carries into its visible hemisphere.
func WriteDailySLP(path string) error {
	lats := span(90, -90, -2.5)
	lons := span(0, 357.5, 2.5)
	start := time.Date(1963, time.January, 1, 0, 0, 0, 0, time.UTC)
	nt := 31
	times := dailyTimes(start, nt)

	g, err := grid.New("slp", []string{"time", "lat", "lon"}, map[string][]float64{
		"time": times,
		"lat":  lats,
		"lon":  lons,
	})
	if err != nil {
		return err
	}
	g.Attrs["units"] = "Pascals"
	g.Attrs["long_name"] = "Daily Sea Level Pressure"

	i := 0
	for ti := 0; ti < nt; ti++ {
		// Lows deepen toward the 24th and fill afterwards.
		depth := 55 * math.Exp(-math.Abs(float64(ti-24))/6)
		for _, lat := range lats {
			for _, lon := range lons {
				// Each low is paired with its mirror under the satellite
				// view's (lat, lon) -> (-lat, lon-180) mapping, so the
				// labeled positions coincide with contoured lows.
				hPa := 1016 -
					depth*(bump(lat, lon, -45, 90, 8, 12)+bump(lat, lon, 45, 270, 8, 12)) -
					depth*0.8*(bump(lat, lon, -60, 130, 8, 12)+bump(lat, lon, 60, 310, 8, 12)) +
					1.2*math.Cos(deg2rad(2*lon))*math.Sin(deg2rad(lat))
				g.Data.Elements[i] = hPa * 100
				i++
			}
		}
	}

	return grid.WriteFile(path, []*grid.Grid{g}, map[string]string{
		"title": "synthetic daily sea level pressure, January 1963",
	})
}

// WriteWinds writes a three-timestep 300 mb wind dataset with a zonal jet
// in U and a weaker wave pattern in V.
func WriteWinds(path string) error {
	lats := span(-90, 90, 5)
	lons := span(-180, 175, 5)
	times := dailyTimes(time.Date(1992, time.January, 1, 0, 0, 0, 0, time.UTC), 3)
	coords := map[string][]float64{"time": times, "lat": lats, "lon": lons}

	u, err := grid.New("U", []string{"time", "lat", "lon"}, coords)
	if err != nil {
		return err
	}
	u.Attrs["units"] = "m/s"
	u.Attrs["long_name"] = "zonal wind"
	v, err := grid.New("V", []string{"time", "lat", "lon"}, coords)
	if err != nil {
		return err
	}
	v.Attrs["units"] = "m/s"
	v.Attrs["long_name"] = "meridional wind"

	i := 0
	for ti := 0; ti < len(times); ti++ {
		shift := 15 * float64(ti)
		for _, lat := range lats {
			for _, lon := range lons {
				jet := math.Cos(deg2rad(lat - 40))
				u.Data.Elements[i] = 8 + 30*jet*jet*math.Cos(deg2rad(lat/2))
				v.Data.Elements[i] = 12 * math.Sin(deg2rad(3*(lon+shift))) * math.Cos(deg2rad(lat))
				i++
			}
		}
	}

	return grid.WriteFile(path, []*grid.Grid{u, v}, map[string]string{
		"title": "synthetic 300 mb winds",
	})
}

// WriteAtmos writes a single-timestep hybrid-level atmosphere: temperature,
// vertical velocity, and meridional wind on 20 model levels plus the
// surface pressure and hybrid coefficients needed for pressure
// interpolation.
func WriteAtmos(path string) error {
	lats := span(-90, 90, 5)
	lons := span(0, 355, 5)
	times := dailyTimes(time.Date(1995, time.July, 1, 0, 0, 0, 0, time.UTC), 1)

	nlev := 20
	levs := make([]float64, nlev)
	hyam := make([]float64, nlev)
	hybm := make([]float64, nlev)
	for k := 0; k < nlev; k++ {
		eta := (float64(k) + 0.5) / float64(nlev)
		levs[k] = eta * 1000
		hybm[k] = eta * eta
		hyam[k] = eta - eta*eta
	}

	coords := map[string][]float64{"time": times, "lev": levs, "lat": lats, "lon": lons}
	mk := func(name, units, long string) (*grid.Grid, error) {
		g, err := grid.New(name, []string{"time", "lev", "lat", "lon"}, coords)
		if err != nil {
			return nil, err
		}
		g.Attrs["units"] = units
		g.Attrs["long_name"] = long
		return g, nil
	}

	tg, err := mk("T", "K", "temperature")
	if err != nil {
		return err
	}
	wg, err := mk("OMEGA", "Pa/s", "vertical pressure velocity")
	if err != nil {
		return err
	}
	vg, err := mk("V", "m/s", "meridional wind")
	if err != nil {
		return err
	}

	ps, err := grid.New("PS", []string{"time", "lat", "lon"}, map[string][]float64{
		"time": times, "lat": lats, "lon": lons,
	})
	if err != nil {
		return err
	}
	ps.Attrs["units"] = "Pa"
	ps.Attrs["long_name"] = "surface pressure"

	i := 0
	for _, lat := range lats {
		for _, lon := range lons {
			ps.Data.Elements[i] = 100000 + 800*math.Cos(deg2rad(lat))*math.Sin(deg2rad(2*lon))
			i++
		}
	}

	i = 0
	for k := 0; k < nlev; k++ {
		for _, lat := range lats {
			for _, lon := range lons {
				p := hyam[k]*1000 + hybm[k]*ps.Data.Elements[latLonIndex(lats, lons, lat, lon)]/100
				tg.Data.Elements[i] = 302 - 0.09*(1000-p) - 0.25*math.Abs(lat) + 2*math.Sin(deg2rad(lon))
				wg.Data.Elements[i] = 0.05 * math.Sin(deg2rad(2*lat)) * math.Cos(deg2rad(lon+p/10))
				vg.Data.Elements[i] = 15 * math.Sin(deg2rad(3*lat)) * math.Cos(deg2rad(lon/2))
				i++
			}
		}
	}

	hya, err := grid.New("hyam", []string{"lev"}, map[string][]float64{"lev": levs})
	if err != nil {
		return err
	}
	copy(hya.Data.Elements, hyam)
	hyb, err := grid.New("hybm", []string{"lev"}, map[string][]float64{"lev": levs})
	if err != nil {
		return err
	}
	copy(hyb.Data.Elements, hybm)

	return grid.WriteFile(path, []*grid.Grid{tg, wg, vg, ps, hya, hyb}, map[string]string{
		"title": "synthetic hybrid-level atmosphere",
	})
}

// WriteSurfDev writes a free-surface-deviation field over the Sea of Japan
// spanning the 0..70 range the Mercator entry contours.
func WriteSurfDev(path string) error {
	lats := span(33, 53, 0.5)
	lons := span(127, 145, 0.5)
	times := dailyTimes(time.Date(1994, time.September, 13, 0, 0, 0, 0, time.UTC), 1)

	g, err := grid.New("FSD", []string{"time", "lat", "lon"}, map[string][]float64{
		"time": times, "lat": lats, "lon": lons,
	})
	if err != nil {
		return err
	}
	g.Attrs["units"] = "m"
	g.Attrs["long_name"] = "free surface deviation"

	i := 0
	for _, lat := range lats {
		for _, lon := range lons {
			v := 35 +
				30*math.Sin(deg2rad(12*(lon-127)))*math.Cos(deg2rad(10*(lat-33))) +
				5*math.Sin(deg2rad(25*(lat+lon)))
			g.Data.Elements[i] = clamp(v, 0, 70)
			i++
		}
	}

	return grid.WriteFile(path, []*grid.Grid{g}, map[string]string{
		"title": "synthetic free surface deviation",
	})
}

func bump(lat, lon, clat, clon, latScale, lonScale float64) float64 {
	dlon := math.Mod(lon-clon+540, 360) - 180
	dlat := lat - clat
	return math.Exp(-(dlat*dlat)/(2*latScale*latScale) - (dlon*dlon)/(2*lonScale*lonScale))
}

func latLonIndex(lats, lons []float64, lat, lon float64) int {
	li := int(math.Round((lat - lats[0]) / (lats[1] - lats[0])))
	lo := int(math.Round((lon - lons[0]) / (lons[1] - lons[0])))
	return li*len(lons) + lo
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
