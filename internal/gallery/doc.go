// Package gallery holds the plot catalog and the renderer that drives it.
//
// # Entries
//
// Each figure in the catalog is an Entry: a name, a short description, the
// input files it reads, and a Render function that produces one PNG. Entries
// are self-contained so the CLI and the HTTP server can run any subset.
//
// # Renderer
//
// Renderer wraps the catalog with logging, metrics, and render timing. It
// reports readiness once every input file an entry declares is present in
// the data directory.
package gallery
