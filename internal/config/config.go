// Package config loads glyphfield settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds glyphfield configuration.
type Config struct {
	Seed     uint64         `toml:"seed"`
	Window   WindowConfig   `toml:"window"`
	Headless HeadlessConfig `toml:"headless"`
	Term     TermConfig     `toml:"term"`
	Title    TitleConfig    `toml:"title"`
	HUD      bool           `toml:"hud"`
	Log      LogConfig      `toml:"log"`
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	TPS    int `toml:"tps"`
}

// HeadlessConfig controls offscreen rendering.
type HeadlessConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	DPR    float64 `toml:"dpr"`
	Hz     int     `toml:"hz"`
	Frames uint64  `toml:"frames"` // 0 = until interrupted
	Every  uint64  `toml:"every"`  // save every Nth frame, 0 = never
	Out    string  `toml:"out"`    // empty = glyphfield-<run id>
	Check  bool    `toml:"check"`  // validate the field and projection after every frame
}

// TermConfig controls the terminal renderer.
type TermConfig struct {
	FPS int `toml:"fps"`
}

// TitleConfig controls the typing title.
type TitleConfig struct {
	Enabled bool   `toml:"enabled"`
	First   string `toml:"first"`
	Final   string `toml:"final"`
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	Color bool   `toml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Seed:     0,
		Window:   WindowConfig{Width: 1280, Height: 720, TPS: 60},
		Headless: HeadlessConfig{Width: 1280, Height: 720, DPR: 1, Hz: 60, Frames: 300, Every: 60},
		Term:     TermConfig{FPS: 30},
		Title:    TitleConfig{Enabled: true, First: "GLYPH", Final: "GLYPHFIELD"},
		Log:      LogConfig{Level: "info", Color: true},
	}
}

// Dir returns the glyphfield config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "glyphfield")
}

// DefaultPath is the file Load reads when no path is given.
func DefaultPath() string { return filepath.Join(Dir(), "config.toml") }

// Load reads path over the defaults. An empty path means DefaultPath, which may be
// missing; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: window tps %d", ErrInvalid, c.Window.TPS)
	case c.Headless.Width <= 0 || c.Headless.Height <= 0:
		return fmt.Errorf("%w: headless size %dx%d", ErrInvalid, c.Headless.Width, c.Headless.Height)
	case !(c.Headless.DPR > 0) || math.IsInf(c.Headless.DPR, 0):
		return fmt.Errorf("%w: headless dpr %v (want > 0)", ErrInvalid, c.Headless.DPR)
	case c.Headless.Hz <= 0:
		return fmt.Errorf("%w: headless hz %d", ErrInvalid, c.Headless.Hz)
	case c.Term.FPS <= 0:
		return fmt.Errorf("%w: term fps %d", ErrInvalid, c.Term.FPS)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Save writes cfg to path, creating the directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return encode(f, cfg)
}

// encode writes cfg to w and closes it; a failed Close on a completed write is reported.
func encode(w io.WriteCloser, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
