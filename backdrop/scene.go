package backdrop

import (
	"fmt"
	"log/slog"
	"math"

	"glyphfield/backdrop/geom"
	"glyphfield/backdrop/render"
	"glyphfield/backdrop/surface"
	"glyphfield/internal/logging"
)

// Config configures a Scene.
type Config struct {
	Seed     uint64
	Logger   *slog.Logger
	Overlays []render.Overlay
	// Font replaces the built-in glyph font when set.
	Font []byte
}

// Scene is a ready-to-drive backdrop: input listeners, state, surface and renderer.
// Hosts call the input methods from their event handling and Step once per frame,
// all from the same goroutine.
type Scene struct {
	*Input

	state State
	surf  *surface.Surface
	rend  *render.Renderer
	log   *slog.Logger

	configure func(geom.Viewport) error

	fps    float64
	closed bool
}

func NewScene(cfg Config) (*Scene, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	opts := []render.Option{render.WithLogger(log)}
	if len(cfg.Font) > 0 {
		opts = append(opts, render.WithFont(cfg.Font))
	}
	for _, ov := range cfg.Overlays {
		opts = append(opts, render.WithOverlay(ov))
	}
	rend, err := render.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("backdrop: %w", err)
	}
	sc := &Scene{
		Input: NewInput(),
		state: NewState(cfg.Seed),
		surf:  surface.New(),
		rend:  rend,
		log:   log,
	}
	sc.configure = sc.surf.Configure
	return sc, nil
}

// AddOverlay appends an overlay after construction, e.g. one that reports the scene's stats.
func (sc *Scene) AddOverlay(ov render.Overlay) { sc.rend.AddOverlay(ov) }

// Step advances the animation to t (ms) and draws it. It reports whether a frame was
// drawn; a false return is not an error and the next Step simply tries again.
func (sc *Scene) Step(t float64) bool {
	if sc.closed {
		return false
	}
	prevTime := sc.state.Time
	next := Tick(sc.state, sc.Input.Snapshot(), t)

	if next.Resized {
		if err := sc.configure(next.Viewport); err != nil {
			sc.log.Warn("backdrop: surface configure failed", "err", err)
			// Keep the old viewport so the next step sees the change again and retries.
			next.Viewport = sc.state.Viewport
			sc.state = next
			return false
		}
		w, h := sc.surf.Size()
		sc.log.Debug("backdrop: surface configured",
			"width", next.Viewport.Width, "height", next.Viewport.Height,
			"dpr", next.Viewport.DPR, "device", fmt.Sprintf("%dx%d", w, h))
	}
	if next.Regenerated {
		sc.log.Info("backdrop: field generated", "aspect", next.Field.Aspect.String(), "nodes", next.Field.Len())
	}
	sc.state = next
	if next.Frames == 0 {
		return false
	}

	if dt := t - prevTime; dt > 0 && next.Frames > 1 {
		inst := 1000 / dt
		if sc.fps == 0 {
			sc.fps = inst
		} else {
			sc.fps += (inst - sc.fps) * 0.05
		}
	}
	return sc.rend.Draw(sc.surf, next.RenderFrame())
}

// State returns the current animation state.
func (sc *Scene) State() State { return sc.state }

// Surface returns the raster surface frames are drawn into.
func (sc *Scene) Surface() *surface.Surface { return sc.surf }

// Snapshot copies the last drawn pixels (RGBA, device size).
func (sc *Scene) Snapshot(dst []byte) ([]byte, int, int) { return sc.surf.Snapshot(dst) }

// SavePNG writes the last drawn frame to path.
func (sc *Scene) SavePNG(path string) error { return sc.surf.SavePNG(path) }

// FPS is a smoothed estimate of the step rate.
func (sc *Scene) FPS() float64 { return sc.fps }

// StatusLines summarizes the scene for the diagnostics overlay.
func (sc *Scene) StatusLines() []string {
	s := sc.state
	rs := sc.rend.Stats()
	return []string{
		fmt.Sprintf("fps %5.1f  frame %d", sc.fps, s.Frames),
		fmt.Sprintf("scroll %6.0f -> %6.0f", s.Raw, s.Scroll),
		fmt.Sprintf("hue %5.1f  rot %5.2f  dolly %5.0f", s.Camera.Hue(1), math.Mod(s.Camera.Rotation, 2*math.Pi), s.Camera.DepthOffset),
		fmt.Sprintf("%s %.0fx%.0f@%.1f", s.Field.Aspect, s.Viewport.Width, s.Viewport.Height, s.Viewport.DPR),
		fmt.Sprintf("links %d  glow %d", rs.Lines, rs.Glowing),
	}
}

// Close releases the renderer and the surface. Step is a no-op afterwards.
func (sc *Scene) Close() error {
	if sc.closed {
		return nil
	}
	sc.closed = true
	rerr := sc.rend.Close()
	serr := sc.surf.Close()
	if rerr != nil {
		return rerr
	}
	return serr
}
