package geom

import "math"

// MobileBreakpoint is the logical width below which a viewport counts as narrow.
const MobileBreakpoint = 768

// Viewport is the logical size of the drawing area plus its device pixel ratio.
type Viewport struct {
	Width  float64
	Height float64
	DPR    float64
}

// NewViewport builds a viewport. Any positive finite device pixel ratio is kept as
// given; others leave the viewport invalid.
func NewViewport(width, height, dpr float64) Viewport {
	return Viewport{Width: width, Height: height, DPR: dpr}
}

// Valid reports whether the viewport has a drawable area.
func (v Viewport) Valid() bool {
	return v.Width >= 1 && v.Height >= 1 && v.DPR > 0 &&
		finite(v.Width) && finite(v.Height) && finite(v.DPR)
}

// Portrait reports whether the viewport is taller than wide.
func (v Viewport) Portrait() bool { return v.Height > v.Width }

// Narrow reports whether the viewport is below the mobile breakpoint.
func (v Viewport) Narrow() bool { return v.Width < MobileBreakpoint }

// DeviceSize returns the backing store size in device pixels.
func (v Viewport) DeviceSize() (w, h int) {
	return int(math.Round(v.Width * v.DPR)), int(math.Round(v.Height * v.DPR))
}

// Center returns the middle of the viewport in logical pixels.
func (v Viewport) Center() Vec2 { return Vec2{X: v.Width / 2, Y: v.Height / 2} }

// Denormalize maps a point in [0,1]x[0,1] onto the viewport.
func (v Viewport) Denormalize(p Vec2) Vec2 { return Vec2{X: p.X * v.Width, Y: p.Y * v.Height} }

// Normalize maps logical pixels into [0,1]x[0,1], clamping points outside the viewport.
func (v Viewport) Normalize(p Vec2) Vec2 {
	if v.Width <= 0 || v.Height <= 0 {
		return Vec2{X: 0.5, Y: 0.5}
	}
	return Vec2{X: Clamp01(p.X / v.Width), Y: Clamp01(p.Y / v.Height)}
}
