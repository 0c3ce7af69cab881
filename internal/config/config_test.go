package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/pixelstorm/internal/engine/grid"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.Width != grid.DefaultWidth || cfg.Canvas.Height != grid.DefaultHeight {
		t.Errorf("canvas = %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if !cfg.Autosave.Enabled || cfg.Autosave.Interval != 60 {
		t.Errorf("autosave = %+v", cfg.Autosave)
	}
	if cfg.Theme != "default" {
		t.Errorf("theme = %q", cfg.Theme)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
theme = "midnight"
log_level = "debug"

[canvas]
width = 64
height = 48

[autosave]
enabled = false
interval_seconds = 30

[directories]
projects = "/tmp/art"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.Width != 64 || cfg.Canvas.Height != 48 {
		t.Errorf("canvas = %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Autosave.Enabled {
		t.Error("autosave should be disabled")
	}
	if cfg.AutosaveInterval() != 30*time.Second {
		t.Errorf("interval = %v", cfg.AutosaveInterval())
	}
	if cfg.Theme != "midnight" || cfg.LogLevel != "debug" {
		t.Errorf("theme = %q, log_level = %q", cfg.Theme, cfg.LogLevel)
	}
	if cfg.Dirs.Projects != "/tmp/art" {
		t.Errorf("projects dir = %q", cfg.Dirs.Projects)
	}
	if cfg.Dirs.Palettes == "" {
		t.Error("unset palettes dir must fall back to default")
	}
}

func TestLoadMalformedTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("canvas = {width"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed config must fail")
	}
}

func TestNormalizeClampsCanvas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[canvas]
width = 4000
height = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.Width != grid.DefaultWidth || cfg.Canvas.Height != grid.DefaultHeight {
		t.Errorf("canvas = %dx%d, want defaults", cfg.Canvas.Width, cfg.Canvas.Height)
	}
}
