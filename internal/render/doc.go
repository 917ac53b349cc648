// Package render composes gallery figures on top of gonum/plot: geographic
// tick and title conventions, grid adapters for contour and heat-map
// plotters, map backdrops drawn through a projection, contour-line
// extraction for projected axes, streamline tracing, and multi-panel PNG
// layout.
package render
