// Package config loads editor settings from TOML. A missing config file
// yields the defaults; a malformed one is an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/pixelstorm/internal/engine/grid"
)

// Config is the full editor configuration.
type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Autosave AutosaveConfig `toml:"autosave"`
	Dirs     DirsConfig     `toml:"directories"`
	Theme    string         `toml:"theme"`
	LogLevel string         `toml:"log_level"`
	LogFile  string         `toml:"log_file"`
}

// CanvasConfig sets new-canvas defaults.
type CanvasConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// AutosaveConfig controls crash-recovery snapshots.
type AutosaveConfig struct {
	Enabled  bool `toml:"enabled"`
	Interval int  `toml:"interval_seconds"`
}

// DirsConfig locates user content.
type DirsConfig struct {
	Projects string `toml:"projects"`
	Palettes string `toml:"palettes"`
	Brushes  string `toml:"brushes"`
}

// Default returns the built-in configuration. User content lives under the
// data directory (~/.local/share/pixelstorm or platform equivalent).
func Default() Config {
	data := dataDir()
	return Config{
		Canvas:   CanvasConfig{Width: grid.DefaultWidth, Height: grid.DefaultHeight},
		Autosave: AutosaveConfig{Enabled: true, Interval: 60},
		Dirs: DirsConfig{
			Projects: filepath.Join(data, "projects"),
			Palettes: filepath.Join(data, "palettes"),
			Brushes:  filepath.Join(data, "brushes"),
		},
		Theme:    "default",
		LogLevel: "info",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pixelstorm", "config.toml")
	}
	return filepath.Join(dataDir(), "config.toml")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "pixelstorm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pixelstorm"
	}
	return filepath.Join(home, ".local", "share", "pixelstorm")
}

// Load reads the config at path over the defaults. A missing file returns
// the defaults with no error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize clamps out-of-range values back to safe ones rather than
// refusing to start.
func (c *Config) normalize() {
	if c.Canvas.Width < grid.MinDimension || c.Canvas.Width > grid.MaxDimension {
		c.Canvas.Width = grid.DefaultWidth
	}
	if c.Canvas.Height < grid.MinDimension || c.Canvas.Height > grid.MaxDimension {
		c.Canvas.Height = grid.DefaultHeight
	}
	if c.Autosave.Interval <= 0 {
		c.Autosave.Interval = 60
	}
	if c.Theme == "" {
		c.Theme = "default"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	def := Default()
	if c.Dirs.Projects == "" {
		c.Dirs.Projects = def.Dirs.Projects
	}
	if c.Dirs.Palettes == "" {
		c.Dirs.Palettes = def.Dirs.Palettes
	}
	if c.Dirs.Brushes == "" {
		c.Dirs.Brushes = def.Dirs.Brushes
	}
}

// AutosaveInterval returns the snapshot cadence as a duration.
func (c *Config) AutosaveInterval() time.Duration {
	return time.Duration(c.Autosave.Interval) * time.Second
}
