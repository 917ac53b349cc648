// Package mapproj provides the forward map projections the gallery draws
// with: plate carrée, Mercator, and the orthographic "satellite" view.
// Inputs are degrees; outputs are planar coordinates scaled so plate
// carrée and Mercator x match longitude in degrees.
package mapproj

import "math"

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi

	// mercatorMaxLat clips Mercator input where the projection diverges.
	mercatorMaxLat = 85.051
)

// Projection maps geographic coordinates onto the plane. visible is false
// for points the projection cannot show (the far hemisphere of an
// orthographic view).
type Projection interface {
	Project(lat, lon float64) (x, y float64, visible bool)
	Name() string
}

// PlateCarree is the identity cylindrical-equidistant projection.
type PlateCarree struct{}

func (PlateCarree) Name() string { return "plate carree" }

func (PlateCarree) Project(lat, lon float64) (float64, float64, bool) {
	return lon, lat, true
}

// Mercator is the conformal cylindrical projection, y scaled so one degree
// of longitude and one unit of y are comparable near the equator.
type Mercator struct{}

func (Mercator) Name() string { return "mercator" }

func (Mercator) Project(lat, lon float64) (float64, float64, bool) {
	if lat > mercatorMaxLat {
		lat = mercatorMaxLat
	}
	if lat < -mercatorMaxLat {
		lat = -mercatorMaxLat
	}
	y := rad2deg * math.Log(math.Tan(math.Pi/4+lat*deg2rad/2))
	return lon, y, true
}

// Y is the projected latitude alone, for axis tick placement.
func (m Mercator) Y(lat float64) float64 {
	_, y, _ := m.Project(lat, 0)
	return y
}

// Orthographic projects onto a unit sphere viewed from infinity, centered
// on (CenterLat, CenterLon). Points on the far hemisphere are invisible.
type Orthographic struct {
	CenterLat float64
	CenterLon float64
}

func (Orthographic) Name() string { return "orthographic" }

func (o Orthographic) Project(lat, lon float64) (float64, float64, bool) {
	phi := lat * deg2rad
	phi0 := o.CenterLat * deg2rad
	dlam := (lon - o.CenterLon) * deg2rad

	cosc := math.Sin(phi0)*math.Sin(phi) + math.Cos(phi0)*math.Cos(phi)*math.Cos(dlam)
	x := math.Cos(phi) * math.Sin(dlam)
	y := math.Cos(phi0)*math.Sin(phi) - math.Sin(phi0)*math.Cos(phi)*math.Cos(dlam)
	return x, y, cosc >= 0
}
