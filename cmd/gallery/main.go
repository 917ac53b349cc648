// Command gallery renders catalog entries from the command line.
//
// Usage:
//
//	gallery list
//	gallery render maponly satmin
//	gallery render --all
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-plot-gallery/internal/config"
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery"
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery/entries"
	"github.com/couchcryptid/climate-plot-gallery/internal/mapfeature"
	"github.com/couchcryptid/climate-plot-gallery/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gallery",
		Short:         "Render reproductions of classic climate figures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd(), newRenderCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, e := range entries.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", e.Name, e.Summary)
			}
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "render [entry...]",
		Short: "Render entries to PNG files in the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("name at least one entry or pass --all")
			}

			renderer, err := buildRenderer()
			if err != nil {
				return err
			}

			if all {
				return renderer.RenderAll(cmd.Context())
			}
			for _, name := range args {
				path, err := renderer.Render(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "render every catalog entry")
	return cmd
}

func buildRenderer() (*gallery.Renderer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := observability.NewLogger(cfg)

	var features *mapfeature.Set
	if cfg.LandShapefile != "" {
		features, err = mapfeature.LoadLand(cfg.LandShapefile)
		if err != nil {
			return nil, fmt.Errorf("load land shapefile: %w", err)
		}
	}

	env := &gallery.Env{
		DataDir:  cfg.DataDir,
		OutDir:   cfg.OutDir,
		Features: features,
		Logger:   logger,
	}
	return gallery.NewRenderer(entries.All(), env, logger, observability.NewMetrics()), nil
}
