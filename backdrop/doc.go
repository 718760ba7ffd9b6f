// Package backdrop ties the glyph field pipeline together.
//
// Pipeline (fixed, once per frame):
//
//	Input snapshot → Tick (resize, scroll follow, camera, motion, projection) → Draw.
//
// The animation state is a plain value owned by whoever drives the loop. Tick takes the
// previous state and returns the next one; the only side effect a host has to perform is
// reconfiguring the surface when the returned state reports a resize, which Scene does.
package backdrop
