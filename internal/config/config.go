// Package config loads user preferences from ~/.charterm.toml. A missing or
// unreadable file yields the defaults; configuration is never a fatal error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = ".charterm.toml"

// Config holds the user-tunable settings.
type Config struct {
	// ExportDir is where PNG snapshots are written. Empty means the
	// current directory.
	ExportDir string `toml:"export_dir"`

	// LogFile receives debug logs while the TUI owns the terminal. Empty
	// disables logging.
	LogFile string `toml:"log_file"`

	// Theme selects the color palette: "dark" or "light".
	Theme string `toml:"theme"`

	// ZoomStep is the wheel-delta magnitude applied per keyboard zoom
	// keystroke.
	ZoomStep float64 `toml:"zoom_step"`
}

func defaults() *Config {
	return &Config{
		Theme:    "dark",
		ZoomStep: 120,
	}
}

// Load reads the config from the user's home directory, falling back to
// defaults on any failure.
func Load() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaults()
	}
	return LoadFile(filepath.Join(home, fileName))
}

// LoadFile reads a config file from an explicit path. Missing files and
// parse errors fall back to defaults; fields absent from the file keep
// their default values.
func LoadFile(path string) *Config {
	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return defaults()
	}
	if cfg.ZoomStep <= 0 {
		cfg.ZoomStep = defaults().ZoomStep
	}
	if cfg.Theme != "dark" && cfg.Theme != "light" {
		cfg.Theme = defaults().Theme
	}
	return cfg
}

// ExportPath resolves a snapshot filename against the export directory,
// creating the directory if needed.
func (c *Config) ExportPath(name string) (string, error) {
	if c.ExportDir == "" {
		return name, nil
	}
	if err := os.MkdirAll(c.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("config: create export dir: %w", err)
	}
	return filepath.Join(c.ExportDir, name), nil
}
