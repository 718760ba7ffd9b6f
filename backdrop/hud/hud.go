// Package hud draws a small diagnostics block in the top-left corner of the surface.
package hud

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"glyphfield/backdrop/surface"
)

var colorText = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xb0}

const (
	marginX = 8
	marginY = 14
	lineH   = 12
)

// Overlay prints whatever lines returns, one per row.
type Overlay struct {
	lines func() []string
	font  tinyfont.Fonter
}

func New(lines func() []string) *Overlay {
	return &Overlay{lines: lines, font: &proggy.TinySZ8pt7b}
}

func (o *Overlay) DrawOverlay(c surface.Canvas) {
	if o == nil || o.lines == nil {
		return
	}
	d := surface.NewDisplay(c)
	for i, s := range o.lines() {
		tinyfont.WriteLine(d, o.font, marginX, int16(marginY+i*lineH), s, colorText)
	}
}
