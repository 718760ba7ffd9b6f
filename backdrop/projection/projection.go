// Package projection advances the field each frame and projects it onto the screen.
//
// Pipeline (fixed):
//
//	Local motion → Centroid → Rotation about centroid → Perspective.
//
// There is no real 3D rotation: the field turns in 2D around its own centroid while each
// node keeps an independent depth. The perspective scale focal/depth is applied to both
// the offset from the centroid and the glyph size.
package projection

import (
	"math"

	"glyphfield/backdrop/camera"
	"glyphfield/backdrop/field"
	"glyphfield/backdrop/geom"
)

const (
	// FocalLength is the distance from the eye to the projection plane.
	FocalLength = 300.0
	// MinDepth is the effective depth floor applied before dividing.
	MinDepth = 50.0
	// MobileScale shrinks glyphs on narrow viewports.
	MobileScale = 0.6

	timeRate     = 0.001
	bobAmplitude = 12.0
	scrollLift   = 0.03
)

// Point is a projected node.
type Point struct {
	Pos   geom.Vec2 // screen position in logical pixels
	Size  float64   // glyph size in logical pixels
	Scale float64   // perspective scale
	Depth float64   // effective (clamped) depth
}

func (p Point) Finite() bool {
	return p.Pos.Finite() && !math.IsNaN(p.Size) && !math.IsInf(p.Size, 0)
}

// Frame is the projection output for one tick.
type Frame struct {
	Centroid geom.Vec2
	Points   []Point
}

// Advance applies the per-node local motion for time t (ms) in place.
func Advance(nodes []field.Node, t, scroll float64) {
	sway := math.Sin(t * timeRate)
	bob := math.Cos(t * timeRate)
	lift := scroll * scrollLift
	for i := range nodes {
		n := &nodes[i]
		n.Pos.X += sway * n.Speed
		n.Pos.Y = n.BaseY + bob*n.Speed*bobAmplitude - lift
	}
}

// Centroid is the arithmetic mean of the current node positions.
func Centroid(nodes []field.Node) geom.Vec2 {
	if len(nodes) == 0 {
		return geom.Vec2{}
	}
	var sum geom.Vec2
	for i := range nodes {
		sum = sum.Add(nodes[i].Pos)
	}
	return sum.Mul(1 / float64(len(nodes)))
}

// EffectiveDepth clamps the camera-relative depth so the perspective divide stays bounded.
func EffectiveDepth(depth, offset float64) float64 {
	d := depth - offset
	if d < MinDepth || math.IsNaN(d) {
		return MinDepth
	}
	return d
}

// Project maps the (already advanced) nodes to screen space. dst is reused when it has room.
func Project(nodes []field.Node, cam camera.State, v geom.Viewport, dst []Point) Frame {
	if cap(dst) < len(nodes) {
		dst = make([]Point, len(nodes))
	}
	dst = dst[:len(nodes)]

	sizeScale := 1.0
	if v.Narrow() {
		sizeScale = MobileScale
	}

	c := Centroid(nodes)
	for i := range nodes {
		n := &nodes[i]
		off := n.Pos.Sub(c).Rotate(cam.Rotation)
		depth := EffectiveDepth(n.Depth, cam.DepthOffset)
		scale := FocalLength / depth
		dst[i] = Point{
			Pos:   c.Add(off.Mul(scale)),
			Size:  n.Size * scale * sizeScale,
			Scale: scale,
			Depth: depth,
		}
	}
	return Frame{Centroid: c, Points: dst}
}
