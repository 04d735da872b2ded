package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"charterm/internal/chartfile"
	"charterm/internal/config"
	"charterm/internal/tui"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// Values are injected by the main package via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the charterm CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:          "charterm [chart.toml]",
		Short:        "Charterm is an interactive diagram canvas for the terminal",
		Long:         `Charterm renders entity-relationship style charts as draggable, resizable boxes connected by curves. Boxes are moved with the mouse, the view pans and zooms, and the result can be exported as PNG.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			chartPath := ""
			if len(args) == 1 {
				chartPath = args[0]
			}
			return runTUI(cmd.Context(), chartPath, configPath, verbose)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("charterm %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.charterm.toml)")

	root.AddCommand(newRenderCmd())

	return root.ExecuteContext(context.Background())
}

// runTUI opens the interactive canvas. While the alternate screen is
// active stderr is unusable, so the session logs to the configured log
// file instead, or nowhere.
func runTUI(ctx context.Context, chartPath, configPath string, verbose bool) error {
	cfg := loadConfig(configPath)

	var doc *chartfile.Document
	if chartPath != "" {
		d, err := chartfile.Load(chartPath)
		if err != nil {
			return err
		}
		doc = d
	}

	logger, closeLog := sessionLogger(cfg, verbose)
	defer closeLog()

	m, err := tui.New(doc, cfg, logger)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("starting canvas", "chart", chartPath)
	return m.Run()
}

func loadConfig(path string) *config.Config {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// sessionLogger returns the logger used during an interactive session
// and a cleanup func. Without a configured log file it discards output.
func sessionLogger(cfg *config.Config, verbose bool) (*charmlog.Logger, func()) {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	if cfg.LogFile == "" {
		return newLogger(io.Discard, level), func() {}
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard, level), func() {}
	}
	return newLogger(f, level), func() { f.Close() }
}
