// Command validate performs integrity checks on a gallery data directory:
// every expected dataset exists, carries the dimensions and coordinates its
// entry depends on, and holds values in physically plausible ranges.
//
// Usage:
//
//	go run ./cmd/validate -data data
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/couchcryptid/climate-plot-gallery/internal/fixture"
	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dataDir := flag.String("data", "data", "directory holding the netCDF datasets")
	flag.Parse()

	checks := []struct {
		file  string
		check func(string) error
	}{
		{fixture.MonthlySLP, checkMonthlySLP},
		{fixture.DailySLP, checkDailySLP},
		{fixture.Winds, checkWinds},
		{fixture.Atmos, checkAtmos},
		{fixture.SurfDev, checkSurfDev},
	}

	var failed int
	for _, c := range checks {
		path := filepath.Join(*dataDir, c.file)
		if err := c.check(path); err != nil {
			log.Printf("FAIL %s: %v", c.file, err)
			failed++
			continue
		}
		log.Printf("ok   %s", c.file)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d datasets failed validation", failed, len(checks))
	}
	return nil
}

func checkMonthlySLP(path string) error {
	g, err := grid.LoadVar(path, "slp")
	if err != nil {
		return err
	}
	if err := wantDims(g, "time", "lat", "lon"); err != nil {
		return err
	}
	if err := wantRange(g, 900, 1100); err != nil {
		return err
	}
	// The EOF entry needs complete DJF seasons across 1979-2003.
	first := grid.Time(g.Coords["time"][0])
	last := grid.Time(g.Coords["time"][len(g.Coords["time"])-1])
	if first.After(time.Date(1978, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		return fmt.Errorf("record starts %s, need December 1978 or earlier", first.Format("2006-01"))
	}
	if last.Before(time.Date(2003, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		return fmt.Errorf("record ends %s, need February 2003 or later", last.Format("2006-01"))
	}
	return nil
}

func checkDailySLP(path string) error {
	g, err := grid.LoadVar(path, "slp")
	if err != nil {
		return err
	}
	if err := wantDims(g, "time", "lat", "lon"); err != nil {
		return err
	}
	if len(g.Coords["time"]) < 25 {
		return fmt.Errorf("have %d timesteps, the satellite entry reads index 24", len(g.Coords["time"]))
	}
	day, err := g.ISel("time", 24)
	if err != nil {
		return err
	}
	day.Scale(0.01)
	min, _ := day.MinMax()
	if min >= 980 {
		return fmt.Errorf("no pressure below 980 hPa on index 24, minimum detection would find nothing")
	}
	return nil
}

func checkWinds(path string) error {
	f, err := grid.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, name := range []string{"U", "V"} {
		g, err := f.Load(name)
		if err != nil {
			return err
		}
		if err := wantDims(g, "time", "lat", "lon"); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := wantRange(g, -150, 150); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if len(g.Coords["time"]) < 2 {
			return fmt.Errorf("%s: have %d timesteps, the wind panel reads index 1", name, len(g.Coords["time"]))
		}
	}
	return nil
}

func checkAtmos(path string) error {
	f, err := grid.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, name := range []string{"T", "OMEGA", "V"} {
		g, err := f.Load(name)
		if err != nil {
			return err
		}
		if err := wantDims(g, "time", "lev", "lat", "lon"); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	ps, err := f.Load("PS")
	if err != nil {
		return err
	}
	if err := wantRange(ps, 40000, 110000); err != nil {
		return fmt.Errorf("PS: %w", err)
	}

	hyam, err := f.Load1D("hyam")
	if err != nil {
		return err
	}
	hybm, err := f.Load1D("hybm")
	if err != nil {
		return err
	}
	if len(hyam) != len(hybm) {
		return fmt.Errorf("hyam has %d levels, hybm %d", len(hyam), len(hybm))
	}
	// Midpoint pressures at a 1000 mb surface must cover the 200..900 mb
	// interpolation targets.
	lo := hyam[0]*1000 + hybm[0]*1000
	hi := hyam[len(hyam)-1]*1000 + hybm[len(hybm)-1]*1000
	if lo > 200 || hi < 900 {
		return fmt.Errorf("hybrid levels span %.0f..%.0f mb, need to cover 200..900", lo, hi)
	}
	return nil
}

func checkSurfDev(path string) error {
	g, err := grid.LoadVar(path, "FSD")
	if err != nil {
		return err
	}
	if err := wantDims(g, "time", "lat", "lon"); err != nil {
		return err
	}
	return wantRange(g, -10, 80)
}

func wantDims(g *grid.Grid, dims ...string) error {
	if len(g.Dims) != len(dims) {
		return fmt.Errorf("dimensions %v, want %v", g.Dims, dims)
	}
	for i, d := range dims {
		if g.Dims[i] != d {
			return fmt.Errorf("dimensions %v, want %v", g.Dims, dims)
		}
	}
	return nil
}

func wantRange(g *grid.Grid, lo, hi float64) error {
	min, max := g.MinMax()
	if min < lo || max > hi {
		return fmt.Errorf("values span %.2f..%.2f, want within %.0f..%.0f", min, max, lo, hi)
	}
	return nil
}
