package backdrop

import (
	"math"

	"glyphfield/backdrop/geom"
)

// Input records the latest scroll, pointer and viewport reported by a host.
//
// Handlers only store values; nothing is drawn until the next Tick reads a Snapshot.
// Input is not safe for concurrent use: hosts call it from their loop goroutine.
type Input struct {
	scroll  float64
	pointer geom.Vec2
	vp      geom.Viewport
}

// Snapshot is the input state a tick consumes.
type Snapshot struct {
	Scroll   float64
	Pointer  geom.Vec2 // normalized
	Viewport geom.Viewport
}

func NewInput() *Input {
	return &Input{pointer: geom.V2(0.5, 0.5)}
}

// SetScroll records an absolute scroll offset in pixels. Negative offsets clamp to 0.
func (in *Input) SetScroll(px float64) {
	if math.IsNaN(px) || px < 0 {
		px = 0
	}
	in.scroll = px
}

// ScrollBy moves the scroll offset by dy pixels, never above the top of the page.
func (in *Input) ScrollBy(dy float64) { in.SetScroll(in.scroll + dy) }

// PointerMove records the pointer in logical pixels of the current viewport.
func (in *Input) PointerMove(x, y float64) {
	in.pointer = in.vp.Normalize(geom.V2(x, y))
}

// PointerAt records an already normalized pointer position.
func (in *Input) PointerAt(nx, ny float64) {
	in.pointer = geom.V2(geom.Clamp01(nx), geom.Clamp01(ny))
}

// Resize records a new logical viewport and device pixel ratio.
func (in *Input) Resize(width, height, dpr float64) {
	in.vp = geom.NewViewport(width, height, dpr)
}

func (in *Input) Scroll() float64         { return in.scroll }
func (in *Input) Viewport() geom.Viewport { return in.vp }

func (in *Input) Snapshot() Snapshot {
	return Snapshot{Scroll: in.scroll, Pointer: in.pointer, Viewport: in.vp}
}
