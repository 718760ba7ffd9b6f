package render

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// hsla converts CSS-style hue (degrees), saturation and lightness (0..1) plus alpha.
func hsla(h, s, l, a float64) gg.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, s, l).Clamped()
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func transparent(c gg.RGBA) gg.RGBA {
	c.A = 0
	return c
}
