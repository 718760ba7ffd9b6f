// Package surface owns the raster target the backdrop is drawn into.
//
// A Surface is a gg drawing context whose backing store is sized to the viewport times
// the device pixel ratio. Reconfiguration and drawing are serialized by one lock, so a
// frame never sees a backing store and a scale factor from different viewports.
package surface

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gg"

	"glyphfield/backdrop/geom"
)

// ErrInvalidSize is returned when a viewport has no drawable device pixels.
var ErrInvalidSize = errors.New("surface: invalid size")

// Surface is a DPR-aware raster target.
type Surface struct {
	mu     sync.Mutex
	dc     *gg.Context
	vp     geom.Viewport
	width  int
	height int
}

// New returns an unconfigured surface. Frames are skipped until Configure succeeds.
func New() *Surface { return &Surface{} }

// Configure resizes the backing store to the viewport's device size and records its
// scale. The old contents are discarded.
func (s *Surface) Configure(v geom.Viewport) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %.0fx%.0f@%.2f", ErrInvalidSize, v.Width, v.Height, v.DPR)
	}
	w, h := v.DeviceSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d device pixels", ErrInvalidSize, w, h)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dc == nil {
		s.dc = gg.NewContext(w, h)
	} else if err := s.dc.Resize(w, h); err != nil {
		return fmt.Errorf("surface: resize: %w", err)
	}
	s.dc.Identity()
	s.vp = v
	s.width = w
	s.height = h
	return nil
}

// Ready reports whether the surface has a backing store.
func (s *Surface) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dc != nil
}

// Size returns the backing store size in device pixels.
func (s *Surface) Size() (w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Viewport returns the viewport the surface was last configured for.
func (s *Surface) Viewport() geom.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp
}

// Canvas is what a draw callback receives: the context plus the logical → device scale.
type Canvas struct {
	DC     *gg.Context
	Scale  float64
	Width  int
	Height int
}

// Dev converts logical pixels to device pixels.
func (c Canvas) Dev(v float64) float64 { return v * c.Scale }

// DevPoint converts a logical point to device pixels.
func (c Canvas) DevPoint(p geom.Vec2) (x, y float64) { return p.X * c.Scale, p.Y * c.Scale }

// Draw runs fn against the configured context while holding the surface lock.
// It returns false without calling fn when the surface is not configured.
func (s *Surface) Draw(fn func(c Canvas)) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dc == nil {
		return false
	}
	fn(Canvas{DC: s.dc, Scale: s.vp.DPR, Width: s.width, Height: s.height})
	return true
}

// Snapshot copies the RGBA pixels into dst (grown as needed) and returns it with the size.
func (s *Surface) Snapshot(dst []byte) (pix []byte, w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dc == nil {
		return dst[:0], 0, 0
	}
	_ = s.dc.FlushGPU()
	data := s.dc.ResizeTarget().Data()
	if cap(dst) < len(data) {
		dst = make([]byte, len(data))
	}
	dst = dst[:len(data)]
	copy(dst, data)
	return dst, s.width, s.height
}

// Image returns a copy of the current pixels.
func (s *Surface) Image() *image.RGBA {
	pix, w, h := s.Snapshot(nil)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return img
}

// SavePNG writes the current pixels to path.
func (s *Surface) SavePNG(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dc == nil {
		return fmt.Errorf("surface: save %s: not configured", path)
	}
	return s.dc.SavePNG(path)
}

// Close releases the backing store. The surface can be configured again afterwards.
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dc == nil {
		return nil
	}
	err := s.dc.Close()
	s.dc = nil
	s.width, s.height = 0, 0
	return err
}
