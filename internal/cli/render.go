package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"charterm/internal/chartfile"
	"charterm/pkg/render"
	"charterm/pkg/scene"
)

const (
	defaultWidth  = 1200 // default PNG width in pixels
	defaultHeight = 800  // default PNG height in pixels
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output PNG path; derived from the chart name when empty
	width  int    // image width in pixels
	height int    // image height in pixels
	theme  string // palette: "dark" or "light"
}

// newRenderCmd creates the render command, which rasterizes a chart
// file straight to PNG without opening a terminal session.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		width:  defaultWidth,
		height: defaultHeight,
		theme:  "light",
	}

	cmd := &cobra.Command{
		Use:   "render [chart.toml]",
		Short: "Render a chart file to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.theme != "dark" && opts.theme != "light" {
				return fmt.Errorf("unknown theme %q (want dark or light)", opts.theme)
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default chart name with .png)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "image height in pixels")
	cmd.Flags().StringVar(&opts.theme, "theme", opts.theme, "palette: light (default), dark")

	return cmd
}

func runRender(ctx context.Context, chartPath string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := chartfile.Load(chartPath)
	if err != nil {
		return err
	}

	surf, err := render.NewRaster(opts.width, opts.height)
	if err != nil {
		return err
	}

	palette := scene.LightPalette()
	if opts.theme == "dark" {
		palette = scene.DarkPalette()
	}

	s, err := scene.New(surf, scene.WithLogger(logger), scene.WithPalette(palette))
	if err != nil {
		return err
	}
	doc.Sync(s)
	s.Draw()

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(chartPath, filepath.Ext(chartPath)) + ".png"
	}
	if err := surf.SavePNG(out); err != nil {
		return err
	}
	logger.Info("chart rendered",
		"entities", len(s.EntityIDs()),
		"connections", len(s.Connections()),
		"output", out)
	return nil
}
