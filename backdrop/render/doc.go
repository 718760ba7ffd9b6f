// Package render draws a projected frame onto a surface.
//
// Layers (fixed, back to front):
//
//	Background gradient → Connections and pulses → Glyphs with pointer glow →
//	Pointer highlight → Overlays.
//
// Every frame is a full repaint. Colors share one hue that drifts with scroll.
package render
