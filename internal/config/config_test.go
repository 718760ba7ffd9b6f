package config

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Title.First != "GLYPH" || cfg.Title.Final != "GLYPHFIELD" {
		t.Fatalf("title defaults = %+v", cfg.Title)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphfield.toml")
	data := `
seed = 42
hud = true

[window]
width = 800

[headless]
frames = 10
out = "shots"

[title]
enabled = false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 || !cfg.HUD || cfg.Window.Width != 800 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Window.Height != 720 || cfg.Headless.Hz != 60 {
		t.Fatalf("defaults lost: window=%+v headless=%+v", cfg.Window, cfg.Headless)
	}
	if cfg.Headless.Frames != 10 || cfg.Headless.Out != "shots" || cfg.Title.Enabled {
		t.Fatalf("nested overrides: %+v %+v", cfg.Headless, cfg.Title)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[headless]\nhz = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load err = %v, want ErrInvalid", err)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("missing explicit file accepted")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil || cfg.Window.TPS != 60 {
		t.Fatalf("Load(\"\") = %+v, %v", cfg, err)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("seed = = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("syntax error = %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Seed = 7
	cfg.Log.Level = "debug"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Seed != 7 || got.Log.Level != "debug" {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestValidateDPR(t *testing.T) {
	for _, dpr := range []float64{0.5, 1, 2.25, 4} {
		cfg := Default()
		cfg.Headless.DPR = dpr
		if err := cfg.Validate(); err != nil {
			t.Fatalf("dpr %v rejected: %v", dpr, err)
		}
	}
	for _, dpr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		cfg := Default()
		cfg.Headless.DPR = dpr
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Fatalf("dpr %v: err = %v, want ErrInvalid", dpr, err)
		}
	}
}

type failingCloser struct {
	bytes.Buffer
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestEncodeReportsCloseError(t *testing.T) {
	w := &failingCloser{}
	if err := encode(w, Default()); err == nil || err.Error() != "disk full" {
		t.Fatalf("encode err = %v, want close error", err)
	}
	if !w.closed || w.Len() == 0 {
		t.Fatalf("closed=%v wrote=%d", w.closed, w.Len())
	}
	if err := Save(Default(), t.TempDir()); err == nil {
		t.Fatalf("Save over a directory succeeded")
	}
}
