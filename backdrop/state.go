package backdrop

import (
	"fmt"
	"math/rand/v2"

	"glyphfield/backdrop/camera"
	"glyphfield/backdrop/field"
	"glyphfield/backdrop/geom"
	"glyphfield/backdrop/projection"
	"glyphfield/backdrop/render"
)

// State is the animation state carried from one frame to the next.
type State struct {
	Viewport geom.Viewport
	Field    field.Field
	Camera   camera.State
	Frame    projection.Frame

	Scroll  float64 // smoothed
	Raw     float64
	Pointer geom.Vec2
	Time    float64 // ms of the last tick
	Frames  uint64

	// Resized is set when this tick switched viewports; the surface must be
	// reconfigured before the frame is drawn.
	Resized bool
	// Regenerated is set when this tick laid out a new field.
	Regenerated bool

	rng *rand.Rand
}

// NewState returns an empty state. The field is generated on the first tick that
// carries a valid viewport.
func NewState(seed uint64) State {
	return State{
		Pointer: geom.V2(0.5, 0.5),
		rng:     rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d)),
	}
}

// Tick advances s to time t (ms) using the given input. The nodes of s are not
// modified; only the shared random source moves when a field is regenerated.
func Tick(s State, in Snapshot, t float64) State {
	next := s
	next.Resized = false
	next.Regenerated = false
	next.Time = t
	next.Raw = in.Scroll
	next.Pointer = in.Pointer
	if next.rng == nil {
		next.rng = rand.New(rand.NewPCG(0, 0))
	}

	if in.Viewport.Valid() && in.Viewport != s.Viewport {
		next.Viewport = in.Viewport
		next.Resized = true
		if s.Field.Empty() || field.AspectOf(in.Viewport) != s.Field.Aspect {
			next.Field = field.Generate(field.Count, in.Viewport, next.rng)
			next.Regenerated = true
		}
	}
	if !next.Viewport.Valid() || next.Field.Empty() {
		return next
	}

	next.Scroll = camera.Follow(s.Scroll, in.Scroll)
	next.Camera = camera.New(next.Scroll, next.Viewport.Width)
	next.Field = next.Field.Clone()
	projection.Advance(next.Field.Nodes, t, next.Scroll)
	next.Frame = projection.Project(next.Field.Nodes, next.Camera, next.Viewport, nil)
	next.Frames++
	return next
}

// RenderFrame is the renderer input for the state's last projection.
func (s State) RenderFrame() render.Frame {
	return render.Frame{
		Nodes:    s.Field.Nodes,
		Points:   s.Frame.Points,
		Camera:   s.Camera,
		Viewport: s.Viewport,
		Pointer:  s.Pointer,
		Time:     s.Time,
	}
}

// Check reports the first broken field invariant or unusable projected point.
func (s State) Check() error {
	if err := s.Field.Validate(); err != nil {
		return err
	}
	for i, p := range s.Frame.Points {
		if !p.Finite() {
			return fmt.Errorf("backdrop: node %d projected to %v size %v", i, p.Pos, p.Size)
		}
		if p.Depth < projection.MinDepth {
			return fmt.Errorf("backdrop: node %d effective depth %v below %v", i, p.Depth, projection.MinDepth)
		}
	}
	return nil
}
