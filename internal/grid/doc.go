// Package grid provides a labeled multidimensional array for gridded
// geophysical data, plus netCDF input and output.
//
// # Data Model
//
// A Grid couples a dense value array with ordered, named dimensions and a
// coordinate vector per dimension. Typical dimension names are "time",
// "lev", "lat", and "lon", stored outermost first, matching the layout of
// the netCDF files the gallery reads. String attributes carry units and
// descriptive names through transformations.
//
// # Coordinate Conventions
//
// Latitudes are degrees north and may be stored ascending or descending;
// longitudes may span [0, 360) or [-180, 180). RotateLon and SortBy exist
// to normalize either convention before subsetting. Time coordinates are
// Unix seconds as float64; the netCDF reader decodes "hours since" and
// "days since" unit strings into this representation.
//
// # File Access
//
// Files are read wholesale through the pure-Go netCDF reader; there is no
// partial or streaming access. Writing (used by the fixture generator)
// produces netCDF classic files.
package grid
