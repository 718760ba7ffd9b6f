package hal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"glyphfield/internal/logging"
)

// Each terminal cell stands for cellW×cellH logical pixels; the upper and lower halves
// become the foreground and background of a half-block rune.
const (
	cellW     = 10
	cellH     = 20
	halfBlock = '▀'
)

// TermConfig controls the terminal renderer.
type TermConfig struct {
	FPS    int
	Frames uint64 // stop after N drawn frames, 0 = until quit
	// Screen defaults to tcell.NewScreen. The host initializes and finalizes it.
	Screen tcell.Screen
	Clock  func() float64
	Logger *slog.Logger
}

// RunTerm draws the scene into the terminal with half-block cells until the user quits
// (Esc, q, Ctrl-C) or ctx is done.
func RunTerm(ctx context.Context, sc Scene, cfg TermConfig) error {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Clock == nil {
		cfg.Clock = NewClock().Millis
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	screen := cfg.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("term: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	h := &termHost{sc: sc, screen: screen, log: cfg.Logger}
	h.resize(screen.Size())

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	t := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer t.Stop()

	var frames uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}
		case <-t.C:
			if !sc.Step(cfg.Clock()) {
				continue
			}
			h.draw()
			frames++
			if cfg.Frames > 0 && frames >= cfg.Frames {
				return nil
			}
		}
	}
}

type termHost struct {
	sc     Scene
	screen tcell.Screen
	log    *slog.Logger

	cols, rows int
	pix        []byte
	cells      []halfCell
}

// handle applies one terminal event and reports whether to keep running.
func (h *termHost) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		case ev.Key() == tcell.KeyDown, ev.Key() == tcell.KeyPgDn:
			h.sc.ScrollBy(wheelStepTerm)
		case ev.Key() == tcell.KeyUp, ev.Key() == tcell.KeyPgUp:
			h.sc.ScrollBy(-wheelStepTerm)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		if h.cols > 0 && h.rows > 0 {
			h.sc.PointerAt((float64(x)+0.5)/float64(h.cols), (float64(y)+0.5)/float64(h.rows))
		}
		b := ev.Buttons()
		if b&tcell.WheelUp != 0 {
			h.sc.ScrollBy(-wheelStepTerm)
		}
		if b&tcell.WheelDown != 0 {
			h.sc.ScrollBy(wheelStepTerm)
		}
	case *tcell.EventResize:
		h.resize(ev.Size())
		h.screen.Sync()
	}
	return true
}

const wheelStepTerm = 60

func (h *termHost) resize(cols, rows int) {
	if cols == h.cols && rows == h.rows {
		return
	}
	h.cols, h.rows = cols, rows
	h.sc.Resize(float64(cols*cellW), float64(rows*cellH), 1)
	h.log.Debug("term: resize", "cols", cols, "rows", rows)
}

func (h *termHost) draw() {
	pix, w, ht := h.sc.Snapshot(h.pix)
	h.pix = pix
	h.cells = downsample(pix, w, ht, h.cols, h.rows, h.cells)
	for i, c := range h.cells {
		st := tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(c.Top[0]), int32(c.Top[1]), int32(c.Top[2]))).
			Background(tcell.NewRGBColor(int32(c.Bottom[0]), int32(c.Bottom[1]), int32(c.Bottom[2])))
		h.screen.SetContent(i%h.cols, i/h.cols, halfBlock, nil, st)
	}
	h.screen.Show()
}

// halfCell is the average color of the upper and lower half of one terminal cell.
type halfCell struct {
	Top, Bottom [3]uint8
}

// downsample averages an RGBA image of w×h pixels into cols×rows half-block cells,
// reusing dst. Cells past the image edge are black.
func downsample(pix []byte, w, h, cols, rows int, dst []halfCell) []halfCell {
	n := cols * rows
	if n <= 0 {
		return dst[:0]
	}
	if cap(dst) < n {
		dst = make([]halfCell, n)
	}
	dst = dst[:n]
	if w <= 0 || h <= 0 || len(pix) < w*h*4 {
		clear(dst)
		return dst
	}
	halves := rows * 2
	for cy := 0; cy < halves; cy++ {
		y0, y1 := cy*h/halves, (cy+1)*h/halves
		for cx := 0; cx < cols; cx++ {
			x0, x1 := cx*w/cols, (cx+1)*w/cols
			var sum [3]int
			cnt := 0
			for y := y0; y < y1; y++ {
				row := y * w * 4
				for x := x0; x < x1; x++ {
					p := row + x*4
					sum[0] += int(pix[p])
					sum[1] += int(pix[p+1])
					sum[2] += int(pix[p+2])
					cnt++
				}
			}
			var avg [3]uint8
			if cnt > 0 {
				for k := range avg {
					avg[k] = uint8(sum[k] / cnt)
				}
			}
			c := &dst[(cy/2)*cols+cx]
			if cy%2 == 0 {
				c.Top = avg
			} else {
				c.Bottom = avg
			}
		}
	}
	return dst
}
