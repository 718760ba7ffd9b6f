// Package field generates the glyph particles of the backdrop.
//
// A field is placed on a golden-angle spiral around the viewport center, then jittered.
// Each node carries its rest depth, glyph, size, oscillation speed and up to three
// directed links to other nodes.
package field

import (
	"fmt"
	"math"
	"math/rand/v2"

	"glyphfield/backdrop/geom"
)

// Count is the fixed number of nodes in a field.
const Count = 30

// Alphabet is the fixed glyph set, assigned round-robin by node index.
var Alphabet = [10]string{"$", "€", "£", "¥", "Ξ", "Ω", "λ", "π", "Σ", "∞"}

const (
	goldenRatio = 1.618033988749895
	spiralReach = 1.2
	jitterSpan  = 0.1

	minDepth = 400.0
	maxDepth = 800.0
	minSize  = 35.0
	maxSize  = 55.0
	minSpeed = 0.1
	maxSpeed = 0.4

	linksPerNode = 3
)

// Aspect is the orientation class a field was generated for.
type Aspect uint8

const (
	Landscape Aspect = iota
	Portrait
)

func (a Aspect) String() string {
	if a == Portrait {
		return "portrait"
	}
	return "landscape"
}

// AspectOf classifies a viewport.
func AspectOf(v geom.Viewport) Aspect {
	if v.Portrait() {
		return Portrait
	}
	return Landscape
}

// spread returns the horizontal and vertical spiral multipliers for an aspect class.
func (a Aspect) spread() (x, y float64) {
	if a == Portrait {
		return 0.8, 0.4
	}
	return 0.6, 0.6
}

// Node is a single glyph particle.
type Node struct {
	Pos       geom.Vec2
	BaseY     float64
	Depth     float64
	BaseDepth float64
	Symbol    string
	Size      float64
	Speed     float64
	// Connections are directed links; node A may list B without B listing A.
	Connections []int
	// Opacity is reserved for fades and is always 1 today.
	Opacity float64
}

// Field is the full set of nodes plus the aspect class it was laid out for.
type Field struct {
	Nodes  []Node
	Aspect Aspect
}

func (f Field) Len() int    { return len(f.Nodes) }
func (f Field) Empty() bool { return len(f.Nodes) == 0 }

// Clone copies the node slice so that per-frame motion does not touch f.
// Connection slices are shared; they are never modified after generation.
func (f Field) Clone() Field {
	out := Field{Aspect: f.Aspect}
	if f.Nodes != nil {
		out.Nodes = make([]Node, len(f.Nodes))
		copy(out.Nodes, f.Nodes)
	}
	return out
}

// Positions returns the current node positions.
func (f Field) Positions() []geom.Vec2 {
	pts := make([]geom.Vec2, len(f.Nodes))
	for i := range f.Nodes {
		pts[i] = f.Nodes[i].Pos
	}
	return pts
}

// Generate lays out n nodes for the viewport. Randomized detail comes from rng.
func Generate(n int, v geom.Viewport, rng *rand.Rand) Field {
	aspect := AspectOf(v)
	f := Field{Aspect: aspect}
	if n <= 0 {
		return f
	}

	mx, my := aspect.spread()
	f.Nodes = make([]Node, n)
	for i := range f.Nodes {
		p := spiralPoint(i, n, mx, my)
		p.X += (rng.Float64() - 0.5) * jitterSpan
		p.Y += (rng.Float64() - 0.5) * jitterSpan
		pos := p.Scale(v.Width, v.Height)

		depth := uniform(rng, minDepth, maxDepth)
		nd := Node{
			Pos:       pos,
			BaseY:     pos.Y,
			Depth:     depth,
			BaseDepth: depth,
			Symbol:    Alphabet[i%len(Alphabet)],
			Size:      uniform(rng, minSize, maxSize),
			Speed:     uniform(rng, minSpeed, maxSpeed),
			Opacity:   1,
		}
		nd.Connections = links(i, n, rng)
		f.Nodes[i] = nd
	}
	return f
}

// spiralPoint returns the normalized golden-angle spiral position of index i.
func spiralPoint(i, n int, mx, my float64) geom.Vec2 {
	angle := float64(i) * goldenRatio * 2 * math.Pi
	radius := math.Sqrt(float64(i)/float64(n)) * spiralReach
	return geom.V2(0.5+math.Cos(angle)*radius*mx, 0.5+math.Sin(angle)*radius*my)
}

// links draws linksPerNode targets and drops self-references.
func links(i, n int, rng *rand.Rand) []int {
	out := make([]int, 0, linksPerNode)
	for k := 0; k < linksPerNode; k++ {
		j := rng.IntN(n)
		if j == i {
			continue
		}
		out = append(out, j)
	}
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Validate checks the structural invariants of a field.
func (f Field) Validate() error {
	n := len(f.Nodes)
	for i, nd := range f.Nodes {
		for _, j := range nd.Connections {
			if j == i {
				return fmt.Errorf("field: node %d links to itself", i)
			}
			if j < 0 || j >= n {
				return fmt.Errorf("field: node %d links to %d outside [0,%d)", i, j, n)
			}
		}
		if nd.Opacity < 0 || nd.Opacity > 1 {
			return fmt.Errorf("field: node %d opacity %v outside [0,1]", i, nd.Opacity)
		}
		if nd.Depth <= 0 {
			return fmt.Errorf("field: node %d has non-positive depth %v", i, nd.Depth)
		}
	}
	return nil
}
