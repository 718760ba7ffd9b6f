package title

import (
	"image/color"
	"math"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	"glyphfield/backdrop/surface"
)

var colorNeon = color.RGBA{R: 0x39, G: 0xff, B: 0x14, A: 0xff}

const (
	glowRamp   = 2000.0 // ms from dim to bright
	glowSpread = 2
	cursorGap  = 4
	cursorW    = 3
)

// Overlay draws a Machine onto the backdrop surface using a bitmap font.
type Overlay struct {
	m     *Machine
	clock func() float64
	font  tinyfont.Fonter
	lineH int16
	// Y is the baseline position as a fraction of the logical height.
	Y float64
}

// NewOverlay wires a machine to its own clock (milliseconds).
func NewOverlay(m *Machine, clock func() float64) *Overlay {
	return &Overlay{
		m:     m,
		clock: clock,
		font:  &freemono.Bold24pt7b,
		lineH: 34,
		Y:     0.38,
	}
}

func (o *Overlay) Machine() *Machine { return o.m }

// DrawOverlay advances the machine on its own clock and draws the text centered.
func (o *Overlay) DrawOverlay(c surface.Canvas) {
	if o == nil || o.m == nil {
		return
	}
	now := 0.0
	if o.clock != nil {
		now = o.clock()
	}
	o.m.Advance(now)

	d := surface.NewDisplay(c)
	w, h := d.Size()
	s := o.m.Text()
	_, tw := tinyfont.LineWidth(o.font, s)
	x := int16((int(w) - int(tw) - cursorGap - cursorW) / 2)
	y := int16(float64(h) * o.Y)

	if s != "" {
		glow := GlowStrength(now)
		halo := colorNeon
		halo.A = uint8(40 + 60*glow)
		for dy := -glowSpread; dy <= glowSpread; dy += glowSpread {
			for dx := -glowSpread; dx <= glowSpread; dx += glowSpread {
				if dx == 0 && dy == 0 {
					continue
				}
				tinyfont.WriteLine(d, o.font, x+int16(dx), y+int16(dy), s, halo)
			}
		}
		tinyfont.WriteLine(d, o.font, x, y, s, colorNeon)
	}

	if o.m.CursorVisible() {
		cx := x + int16(tw) + cursorGap
		_ = d.FillRectangle(cx, y-o.lineH+6, cursorW, o.lineH, colorNeon)
	}
}

// GlowStrength is the text glow level in [0, 1]. It eases up over glowRamp and back down.
func GlowStrength(now float64) float64 {
	return 0.5 - 0.5*math.Cos(now/glowRamp*math.Pi)
}
