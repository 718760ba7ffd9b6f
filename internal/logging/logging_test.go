package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNopDisabled(t *testing.T) {
	if Nop().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("nop logger reports enabled")
	}
}

func TestHandlerPlain(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, false)
	log.Debug("hidden")
	log.With("host", "headless").Info("frame saved", "n", 3, "path", "a b.png")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Fatalf("debug record written at info level: %q", got)
	}
	want := `INF frame saved host=headless n=3 path="a b.png"` + "\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, false).WithGroup("surface")
	log.Warn("resize", "w", 10, slog.Group("dev", "dpr", 2))
	if got, want := buf.String(), "WRN resize surface.w=10 surface.dev.dpr=2\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "": slog.LevelInfo,
		"warning": slog.LevelWarn, "error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel accepted an unknown level")
	}
}
