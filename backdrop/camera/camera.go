// Package camera maps scroll offset to the animation's camera parameters.
//
// Everything here is a pure function of the smoothed scroll offset (and the viewport width
// for the dolly rate), so a stationary page yields a stationary camera.
package camera

import (
	"math"

	"glyphfield/backdrop/geom"
)

const (
	// Smoothing is the per-frame gain of the scroll follower. It assumes ~60 Hz ticks.
	Smoothing = 0.1
	// BaseHue is the hue, in degrees, that the scroll-linked drift is added to.
	BaseHue = 220.0

	depthRate       = 0.2
	narrowDepthRate = 0.3
	rotationRate    = 0.0003
	hueRate         = 0.02
)

// State is the derived camera for one frame.
type State struct {
	Scroll      float64 // smoothed scroll offset in pixels
	DepthOffset float64
	Rotation    float64 // radians
	HueOffset   float64 // degrees in [0, 360)
}

// New derives the camera from a smoothed scroll offset and the logical viewport width.
func New(scroll, width float64) State {
	return State{
		Scroll:      scroll,
		DepthOffset: DepthOffset(scroll, width),
		Rotation:    Rotation(scroll),
		HueOffset:   HueOffset(scroll),
	}
}

// Follow advances the smoothed scroll one frame toward raw.
func Follow(smoothed, raw float64) float64 {
	return smoothed + (raw-smoothed)*Smoothing
}

// DepthOffset is how far the camera has dollied into the field.
func DepthOffset(scroll, width float64) float64 {
	if width < geom.MobileBreakpoint {
		return scroll * narrowDepthRate
	}
	return scroll * depthRate
}

func Rotation(scroll float64) float64 { return scroll * rotationRate }

func HueOffset(scroll float64) float64 {
	h := math.Mod(scroll*hueRate, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Hue returns the base hue shifted by the camera drift, scaled by k.
// The background bottom stop uses k=0.5; everything else uses k=1.
func (s State) Hue(k float64) float64 { return BaseHue + s.HueOffset*k }
