// Package hal runs a backdrop scene on a concrete host: a desktop window, an offscreen
// PNG writer or a terminal. Hosts own the loop, the clock and cancellation; the scene
// only sees input calls and Step.
package hal

// Scene is the part of backdrop.Scene a host drives. All calls come from the host's
// loop goroutine.
type Scene interface {
	// Step advances to t milliseconds and draws; false means the frame was skipped.
	Step(t float64) bool
	// Snapshot copies the last frame's RGBA pixels into dst.
	Snapshot(dst []byte) (pix []byte, w, h int)
	SavePNG(path string) error

	SetScroll(px float64)
	ScrollBy(dy float64)
	PointerMove(x, y float64)
	PointerAt(nx, ny float64)
	Resize(width, height, dpr float64)
}
