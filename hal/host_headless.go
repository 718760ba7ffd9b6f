package hal

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"glyphfield/internal/logging"
)

// HeadlessConfig controls the offscreen runner.
type HeadlessConfig struct {
	Width, Height float64
	DPR           float64
	Hz            int
	Frames        uint64 // stop after N frames, 0 = until ctx is done
	Every         uint64 // save every Nth drawn frame, 0 = never
	Out           string // output directory, empty = glyphfield-<run id>

	// ScrollRate is the scripted scroll speed in px per frame.
	ScrollRate float64
	// OrbitPeriod is how many frames the scripted pointer takes to circle the center.
	OrbitPeriod float64

	// Check, when set, runs after every drawn frame; an error stops the run.
	Check func() error

	Logger *slog.Logger
}

// HeadlessResult summarizes a finished offscreen run.
type HeadlessResult struct {
	RunID  string
	Dir    string
	Frames uint64
	Saved  []string
}

const (
	defaultScrollRate  = 8
	defaultOrbitPeriod = 240
	orbitRadius        = 0.3
)

// RunHeadless drives the scene from a ticker without opening a window. Scroll and pointer
// follow a fixed script and frame times advance in fixed steps, so two runs with the same
// seed write identical images.
func RunHeadless(ctx context.Context, sc Scene, cfg HeadlessConfig) (HeadlessResult, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.DPR <= 0 {
		cfg.DPR = 1
	}
	if cfg.ScrollRate == 0 {
		cfg.ScrollRate = defaultScrollRate
	}
	if cfg.OrbitPeriod <= 0 {
		cfg.OrbitPeriod = defaultOrbitPeriod
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return HeadlessResult{}, fmt.Errorf("invalid headless size: %vx%v", cfg.Width, cfg.Height)
	}

	res := HeadlessResult{RunID: uuid.NewString()}
	if cfg.Every > 0 {
		res.Dir = cfg.Out
		if res.Dir == "" {
			res.Dir = "glyphfield-" + res.RunID
		}
		if err := os.MkdirAll(res.Dir, 0o755); err != nil {
			return res, fmt.Errorf("headless output: %w", err)
		}
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return res, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	sc.Resize(cfg.Width, cfg.Height, cfg.DPR)
	clock := newFrameClock(cfg.Hz)
	log.Info("headless: start", "run", res.RunID, "hz", cfg.Hz, "frames", cfg.Frames, "out", res.Dir)

	for {
		select {
		case <-ctx.Done():
			log.Info("headless: stopped", "run", res.RunID, "frames", res.Frames)
			return res, ctx.Err()
		case <-t.C:
			n := float64(clock.n)
			sc.SetScroll(n * cfg.ScrollRate)
			a := 2 * math.Pi * n / cfg.OrbitPeriod
			sc.PointerAt(0.5+orbitRadius*math.Cos(a), 0.5+orbitRadius*math.Sin(a))

			if !sc.Step(clock.next()) {
				log.Debug("headless: frame skipped", "frame", clock.n)
				continue
			}
			res.Frames++
			if cfg.Check != nil {
				if err := cfg.Check(); err != nil {
					return res, fmt.Errorf("headless check, frame %d: %w", res.Frames, err)
				}
			}
			if cfg.Every > 0 && res.Frames%cfg.Every == 0 {
				path := filepath.Join(res.Dir, fmt.Sprintf("frame-%05d.png", res.Frames))
				if err := sc.SavePNG(path); err != nil {
					return res, fmt.Errorf("headless save: %w", err)
				}
				res.Saved = append(res.Saved, path)
				log.Debug("headless: frame saved", "path", path)
			}
			if cfg.Frames > 0 && res.Frames >= cfg.Frames {
				log.Info("headless: done", "run", res.RunID, "frames", res.Frames, "saved", len(res.Saved))
				return res, nil
			}
		}
	}
}
