// Command gendata writes the synthetic netCDF datasets the gallery entries
// read, so rendering and tests need no external downloads.
//
// Usage:
//
//	go run ./cmd/gendata -out data
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/climate-plot-gallery/internal/fixture"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data", "directory to write the datasets into")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := fixture.WriteAll(*out); err != nil {
		return err
	}
	log.Printf("wrote %s, %s, %s, %s, %s to %s",
		fixture.MonthlySLP, fixture.DailySLP, fixture.Winds, fixture.Atmos, fixture.SurfDev, *out)
	return nil
}
