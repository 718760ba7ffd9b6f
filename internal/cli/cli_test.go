package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("version output = %q", out)
	}
}

func TestHeadlessWritesFrames(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "headless", "--seed", "3", "--width", "160", "--height", "100",
		"--hz", "500", "--frames", "4", "--every", "2", "--out", dir, "--hud", "--no-color")
	if err != nil {
		t.Fatalf("headless: %v\n%s", err, out)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "frame-*.png"))
	if len(files) != 2 {
		t.Fatalf("wrote %d frames, want 2\n%s", len(files), out)
	}
	if !strings.Contains(out, "4 frames, 2 saved") {
		t.Fatalf("summary = %q", out)
	}
}

func TestHeadlessRejectsBadDPR(t *testing.T) {
	if _, err := run(t, "headless", "--dpr", "0", "--frames", "1"); err == nil {
		t.Fatalf("dpr 0 accepted")
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glyphfield.toml")
	data := "seed = 5\n[headless]\nframes = 2\nevery = 1\nhz = 500\nwidth = 120\nheight = 80\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")
	out, err := run(t, "--config", path, "headless", "--out", outDir, "--title=false")
	if err != nil {
		t.Fatalf("headless: %v\n%s", err, out)
	}
	files, _ := filepath.Glob(filepath.Join(outDir, "frame-*.png"))
	if len(files) != 2 {
		t.Fatalf("wrote %d frames, want 2", len(files))
	}
}

func TestMissingConfig(t *testing.T) {
	if _, err := run(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "headless"); err == nil {
		t.Fatalf("missing config accepted")
	}
}

func TestHeadlessCheck(t *testing.T) {
	out, err := run(t, "headless", "--seed", "9", "--width", "375", "--height", "812",
		"--hz", "500", "--frames", "5", "--every", "0", "--check", "--title=false")
	if err != nil {
		t.Fatalf("headless --check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "5 frames, 0 saved, all frames checked") {
		t.Fatalf("summary = %q", out)
	}
}
