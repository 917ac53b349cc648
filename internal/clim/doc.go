// Package clim implements the numeric transforms behind the gallery
// figures: seasonal averaging, latitude weighting, hybrid-to-pressure
// vertical interpolation, gradient-based minimum detection, EOF
// decomposition, and contour-level selection.
//
// All routines are single-pass and purely functional: inputs are never
// mutated and outputs are freshly allocated grids or slices.
package clim
