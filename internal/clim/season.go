package clim

import (
	"fmt"
	"time"

	"github.com/couchcryptid/climate-plot-gallery/internal/grid"
)

// seasonStart maps a three-month season key to its starting month.
// Labels land on the middle month, so DJF means are stamped in January.
var seasonStart = map[string]time.Month{
	"DJF": time.December, "JFM": time.January, "FMA": time.February,
	"MAM": time.March, "AMJ": time.April, "MJJ": time.May,
	"JJA": time.June, "JAS": time.July, "ASO": time.August,
	"SON": time.September, "OND": time.October, "NDJ": time.November,
}

// MonthToSeason reduces monthly data to one value per year for the given
// three-month season. The time axis must hold monthly timestamps in
// chronological order; each complete run of the season's three months is
// averaged and stamped with the middle month. Incomplete runs at the ends
// of the record are dropped.
func MonthToSeason(g *grid.Grid, season string) (*grid.Grid, error) {
	start, ok := seasonStart[season]
	if !ok {
		return nil, fmt.Errorf("month to season: bad season key %q (want DJF, JFM, ... NDJ)", season)
	}
	axis, err := g.Axis("time")
	if err != nil {
		return nil, err
	}
	if axis != 0 {
		return nil, fmt.Errorf("month to season: time must be the leading dimension of %q", g.Name)
	}

	times := g.Coords["time"]
	var firsts []int
	for i := 0; i+2 < len(times); i++ {
		t0 := grid.Time(times[i])
		t1 := grid.Time(times[i+1])
		t2 := grid.Time(times[i+2])
		if t0.Month() != start {
			continue
		}
		if t1.Month() != nextMonth(start) || t2.Month() != nextMonth(nextMonth(start)) {
			continue
		}
		firsts = append(firsts, i)
	}
	if len(firsts) == 0 {
		return nil, fmt.Errorf("month to season: no complete %s season in %q", season, g.Name)
	}

	coords := make(map[string][]float64, len(g.Coords))
	for _, d := range g.Dims {
		coords[d] = g.Coords[d]
	}
	labels := make([]float64, len(firsts))
	for i, f := range firsts {
		labels[i] = times[f+1]
	}
	coords["time"] = labels

	out, err := grid.New(g.Name, g.Dims, coords)
	if err != nil {
		return nil, err
	}
	for k, v := range g.Attrs {
		out.Attrs[k] = v
	}

	// Average each season's three consecutive time slabs.
	slab := len(g.Data.Elements) / len(times)
	for i, f := range firsts {
		dst := out.Data.Elements[i*slab : (i+1)*slab]
		for m := 0; m < 3; m++ {
			src := g.Data.Elements[(f+m)*slab : (f+m+1)*slab]
			for j, v := range src {
				dst[j] += v / 3
			}
		}
	}
	return out, nil
}

func nextMonth(m time.Month) time.Month {
	if m == time.December {
		return time.January
	}
	return m + 1
}
