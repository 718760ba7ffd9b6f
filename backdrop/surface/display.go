package surface

import (
	"image/color"

	"github.com/gogpu/gg"
	"tinygo.org/x/drivers"
)

// Display adapts a canvas to the tinyfont/drivers pixel interface.
//
// Every logical pixel is drawn as a Scale×Scale block of device pixels at (OX, OY)
// and alpha-blended over what is already there.
type Display struct {
	pm     *gg.Pixmap
	scale  int
	width  int16
	height int16
}

var _ drivers.Displayer = (*Display)(nil)

// NewDisplay wraps the canvas. The logical size is the device size divided by the scale.
// Pending accelerated shapes are flushed first so pixel writes land on top of them.
func NewDisplay(c Canvas) *Display {
	_ = c.DC.FlushGPU()
	scale := int(c.Scale + 0.5)
	if scale < 1 {
		scale = 1
	}
	return &Display{
		pm:     c.DC.ResizeTarget(),
		scale:  scale,
		width:  int16(clampInt(c.Width/scale, 0, 1<<15-1)),
		height: int16(clampInt(c.Height/scale, 0, 1<<15-1)),
	}
}

func (d *Display) Size() (x, y int16) { return d.width, d.height }
func (d *Display) Display() error     { return nil }
func (d *Display) Scale() int         { return d.scale }

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if d.pm == nil || c.A == 0 {
		return
	}
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return
	}
	x0 := int(x) * d.scale
	y0 := int(y) * d.scale
	for py := y0; py < y0+d.scale; py++ {
		for px := x0; px < x0+d.scale; px++ {
			d.pm.SetPixel(px, py, blend(d.pm.GetPixel(px, py), c))
		}
	}
}

// FillRectangle fills a logical rectangle, clipped to the display.
func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, int(d.width))
	y0 := clampInt(int(y), 0, int(d.height))
	x1 := clampInt(int(x)+int(width), 0, int(d.width))
	y1 := clampInt(int(y)+int(height), 0, int(d.height))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d.SetPixel(int16(px), int16(py), c)
		}
	}
	return nil
}

func (d *Display) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// blend composites src over dst (straight alpha).
func blend(dst gg.RGBA, src color.RGBA) gg.RGBA {
	a := float64(src.A) / 255
	return gg.RGBA{
		R: dst.R + (float64(src.R)/255-dst.R)*a,
		G: dst.G + (float64(src.G)/255-dst.G)*a,
		B: dst.B + (float64(src.B)/255-dst.B)*a,
		A: dst.A + (1-dst.A)*a,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
