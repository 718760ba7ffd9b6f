package render

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"glyphfield/backdrop/camera"
	"glyphfield/backdrop/field"
	"glyphfield/backdrop/geom"
	"glyphfield/backdrop/projection"
	"glyphfield/backdrop/surface"
	"glyphfield/internal/logging"
)

const (
	// GlowRadius is the pointer distance, in logical pixels, at which glow reaches zero.
	GlowRadius = 200.0

	lineAlpha     = 0.15
	lineWidth     = 1.0
	pulseRadius   = 2.0
	pulseAlpha    = 0.8
	glyphAlpha    = 0.6
	haloAlpha     = 0.45
	highlightSway = 30.0
	highlightRate = 0.01
	highlightSpan = 0.6
	highlightPeak = 0.12

	// The highlight breathes between breathLow and breathHigh and back every breathPeriod ms.
	breathLow    = 0.5
	breathHigh   = 0.7
	breathPeriod = 5000.0

	maxFaceSize = 1024
)

// Frame is everything the renderer needs for one repaint.
type Frame struct {
	Nodes    []field.Node
	Points   []projection.Point
	Camera   camera.State
	Viewport geom.Viewport
	Pointer  geom.Vec2 // normalized to [0,1]x[0,1]
	Time     float64   // milliseconds
}

// Overlay is content composited above the backdrop, such as a title.
type Overlay interface {
	DrawOverlay(c surface.Canvas)
}

// Stats counts what the last frame drew.
type Stats struct {
	Frames  uint64
	Skipped uint64
	Lines   int
	Pulses  int
	Glyphs  int
	Glowing int
}

// Renderer paints frames. It caches glyph faces by device size and is not safe for
// concurrent use; a host drives it from one loop.
type Renderer struct {
	glyphs   *text.FontSource
	faces    map[int]text.Face
	overlays []Overlay
	log      *slog.Logger
	stats    Stats
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	font     []byte
	overlays []Overlay
	log      *slog.Logger
}

// WithFont replaces the embedded Go Regular glyph font with TrueType/OpenType data.
func WithFont(data []byte) Option { return func(o *options) { o.font = data } }

// WithOverlay appends an overlay drawn after the backdrop layers.
func WithOverlay(ov Overlay) Option {
	return func(o *options) {
		if ov != nil {
			o.overlays = append(o.overlays, ov)
		}
	}
}

// WithLogger sets the logger used for skipped draw operations.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.log = l } }

// New creates a renderer.
func New(opts ...Option) (*Renderer, error) {
	o := options{font: goregular.TTF}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.Nop()
	}
	src, err := text.NewFontSource(o.font)
	if err != nil {
		return nil, fmt.Errorf("render: glyph font: %w", err)
	}
	return &Renderer{
		glyphs:   src,
		faces:    make(map[int]text.Face),
		overlays: o.overlays,
		log:      o.log,
	}, nil
}

// Close releases the glyph font.
func (r *Renderer) Close() error {
	r.faces = nil
	if r.glyphs == nil {
		return nil
	}
	err := r.glyphs.Close()
	r.glyphs = nil
	return err
}

// AddOverlay appends an overlay drawn after the backdrop layers.
func (r *Renderer) AddOverlay(ov Overlay) {
	if ov != nil {
		r.overlays = append(r.overlays, ov)
	}
}

// Stats returns counters for the most recent frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Draw repaints the surface. It returns false when the surface is not ready; the caller
// simply tries again next frame.
func (r *Renderer) Draw(s *surface.Surface, f Frame) bool {
	ok := s.Draw(func(c surface.Canvas) {
		r.stats.Lines, r.stats.Pulses, r.stats.Glyphs, r.stats.Glowing = 0, 0, 0, 0
		r.background(c, f.Camera)
		r.connections(c, f)
		r.nodes(c, f)
		r.highlight(c, f)
		for _, ov := range r.overlays {
			ov.DrawOverlay(c)
		}
	})
	if ok {
		r.stats.Frames++
	} else {
		r.stats.Skipped++
	}
	return ok
}

func (r *Renderer) background(c surface.Canvas, cam camera.State) {
	top := hsla(cam.Hue(1), 1, 0.06, 1)
	bottom := hsla(cam.Hue(0.5), 1, 0.02, 1)
	g := gg.NewLinearGradientBrush(0, 0, 0, float64(c.Height)).
		AddColorStop(0, top).
		AddColorStop(1, bottom)
	c.DC.SetFillBrush(g)
	c.DC.DrawRectangle(0, 0, float64(c.Width), float64(c.Height))
	r.fill(c.DC, "background")
}

func (r *Renderer) connections(c surface.Canvas, f Frame) {
	n := len(f.Points)
	if len(f.Nodes) < n {
		n = len(f.Nodes)
	}
	hue := f.Camera.Hue(1)
	line := hsla(hue, 1, 0.7, 1)
	pulse := hsla(hue, 1, 0.8, 1)
	c.DC.SetLineWidth(c.Dev(lineWidth))

	for i := 0; i < n; i++ {
		a := f.Points[i].Pos
		for _, j := range f.Nodes[i].Connections {
			if j < 0 || j >= n || j == i {
				continue
			}
			b := f.Points[j].Pos
			vis := math.Min(f.Nodes[i].Opacity, f.Nodes[j].Opacity)

			ax, ay := c.DevPoint(a)
			bx, by := c.DevPoint(b)
			c.DC.SetRGBA(line.R, line.G, line.B, lineAlpha*vis)
			c.DC.DrawLine(ax, ay, bx, by)
			r.stroke(c.DC, "connection")
			r.stats.Lines++

			at := geom.Lerp(a, b, PulseProgress(i, j, f.Time, f.Camera.Scroll))
			px, py := c.DevPoint(at)
			c.DC.SetRGBA(pulse.R, pulse.G, pulse.B, pulseAlpha*vis)
			c.DC.DrawCircle(px, py, c.Dev(pulseRadius))
			r.fill(c.DC, "pulse")
			r.stats.Pulses++
		}
	}
}

// Glow is the pointer proximity intensity in [0, 1] for a projected position.
func Glow(p, pointer geom.Vec2) float64 {
	return math.Max(0, 1-p.Dist(pointer)/GlowRadius)
}

func (r *Renderer) nodes(c surface.Canvas, f Frame) {
	n := len(f.Points)
	if len(f.Nodes) < n {
		n = len(f.Nodes)
	}
	hue := f.Camera.Hue(1)
	ptr := f.Viewport.Denormalize(f.Pointer)

	for i := 0; i < n; i++ {
		p := f.Points[i]
		nd := f.Nodes[i]
		glow := Glow(p.Pos, ptr)
		x, y := c.DevPoint(p.Pos)

		if glow > 0 {
			radius := c.Dev(p.Size * (0.6 + glow))
			halo := gg.NewRadialGradientBrush(x, y, 0, radius).
				AddColorStop(0, hsla(hue, 1, 0.6, haloAlpha*glow*nd.Opacity)).
				AddColorStop(1, transparent(hsla(hue, 1, 0.6, 0)))
			c.DC.SetFillBrush(halo)
			c.DC.DrawCircle(x, y, radius)
			r.fill(c.DC, "glow")
			r.stats.Glowing++
		}

		face := r.face(c.Dev(p.Size))
		if face == nil {
			continue
		}
		col := hsla(hue, 1, 0.75, geom.Clamp01(glyphAlpha+(1-glyphAlpha)*glow)*nd.Opacity)
		c.DC.SetFont(face)
		c.DC.SetRGBA(col.R, col.G, col.B, col.A)
		c.DC.DrawStringAnchored(nd.Symbol, x, y, 0.5, 0.5)
		r.stats.Glyphs++
	}
}

func (r *Renderer) highlight(c surface.Canvas, f Frame) {
	center := f.Viewport.Denormalize(f.Pointer)
	center.X += math.Sin(f.Camera.Scroll*highlightRate) * highlightSway
	x, y := c.DevPoint(center)
	radius := c.Dev(highlightSpan * math.Max(f.Viewport.Width, f.Viewport.Height))
	if radius <= 0 {
		return
	}
	peak := hsla(f.Camera.Hue(1), 1, 0.6, highlightPeak*Breath(f.Time))
	g := gg.NewRadialGradientBrush(x, y, 0, radius).
		AddColorStop(0, peak).
		AddColorStop(1, transparent(peak))
	c.DC.SetFillBrush(g)
	c.DC.DrawRectangle(0, 0, float64(c.Width), float64(c.Height))
	r.fill(c.DC, "highlight")
}

// Breath is the highlight opacity factor at t ms: breathLow at the start of each period,
// breathHigh half way through.
func Breath(t float64) float64 {
	mid := (breathLow + breathHigh) / 2
	return mid - (breathHigh-breathLow)/2*math.Cos(2*math.Pi*t/breathPeriod)
}

// face returns a cached glyph face for a device pixel size.
func (r *Renderer) face(px float64) text.Face {
	if r.glyphs == nil || math.IsNaN(px) {
		return nil
	}
	size := int(math.Round(px))
	if size < 1 {
		size = 1
	}
	if size > maxFaceSize {
		size = maxFaceSize
	}
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := r.glyphs.Face(float64(size))
	r.faces[size] = f
	return f
}

func (r *Renderer) fill(dc *gg.Context, what string) {
	if err := dc.Fill(); err != nil {
		r.log.Debug("render: fill skipped", "layer", what, "err", err)
	}
}

func (r *Renderer) stroke(dc *gg.Context, what string) {
	if err := dc.Stroke(); err != nil {
		r.log.Debug("render: stroke skipped", "layer", what, "err", err)
	}
}
