// Package entries holds the figure catalog: each file builds one plot from
// one input dataset.
package entries

import (
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery"
)

// Input dataset filenames, resolved against the configured data directory.
const (
	fileMonthlySLP = "slp.mon.mean.nc"
	fileDailySLP   = "slp.1963.nc"
	fileWinds      = "uv300.nc"
	fileAtmos      = "atmos.nc"
	fileSurfDev    = "fsd.nc"
)

// All returns the catalog in display order.
func All() []gallery.Entry {
	return []gallery.Entry{
		{
			Name:    "maponly",
			Title:   "Cylindrical Equidistant Map",
			Summary: "World map with land fill and labeled major/minor geographic ticks.",
			Render:  renderMapOnly,
		},
		{
			Name:    "mercator",
			Title:   "Native Mercator Projection",
			Summary: "Surface deviation contours over a Mercator map of the Sea of Japan.",
			Inputs:  []string{fileSurfDev},
			Render:  renderMercator,
		},
		{
			Name:    "windpanel",
			Title:   "Wind Speed and Vectors",
			Summary: "Two stacked world maps: wind speed fill and the vector field.",
			Inputs:  []string{fileWinds},
			Render:  renderWindPanel,
		},
		{
			Name:    "vectorsection",
			Title:   "Pressure/Height Vector",
			Summary: "Temperature section at 170E with streamlines of (V, scaled OMEGA).",
			Inputs:  []string{fileAtmos},
			Render:  renderVectorSection,
		},
		{
			Name:    "satmin",
			Title:   "SLP 1963, January 24th",
			Summary: "Orthographic view of sea level pressure with detected lows.",
			Inputs:  []string{fileDailySLP},
			Render:  renderSatMin,
		},
		{
			Name:    "eofslp",
			Title:   "SLP Leading EOF",
			Summary: "Leading EOF of winter North Atlantic sea level pressure with its PC series.",
			Inputs:  []string{fileMonthlySLP},
			Render:  renderEOFSLP,
		},
	}
}
