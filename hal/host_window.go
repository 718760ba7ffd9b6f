//go:build cgo

package hal

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"glyphfield/internal/buildinfo"
	"glyphfield/internal/logging"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Width, Height int // logical size
	TPS           int
	Title         string
	// Clock supplies frame time in ms; a wall clock started with the window by default.
	Clock  func() float64
	Logger *slog.Logger
}

// wheelStep is the page scroll, in logical px, for one wheel notch.
const wheelStep = 60

// RunWindow opens a resizable window showing the scene. It blocks until the window is
// closed or Escape is pressed.
func RunWindow(sc Scene, cfg WindowConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "glyphfield (" + buildinfo.Short() + ")"
	}
	if cfg.Clock == nil {
		cfg.Clock = NewClock().Millis
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}

	g := &hostGame{sc: sc, clock: cfg.Clock, log: cfg.Logger}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	cfg.Logger.Info("window: start", "size", [2]int{cfg.Width, cfg.Height}, "tps", cfg.TPS)
	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type hostGame struct {
	sc    Scene
	clock func() float64
	log   *slog.Logger

	scale   float64
	outW    int
	outH    int
	img     *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.sc.ScrollBy(-dy * wheelStep)
	}
	if g.scale > 0 {
		x, y := ebiten.CursorPosition()
		g.sc.PointerMove(float64(x)/g.scale, float64(y)/g.scale)
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if !g.sc.Step(g.clock()) {
		return
	}
	pix, w, h := g.sc.Snapshot(g.scratch)
	g.scratch = pix
	if w == 0 || h == 0 {
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
	}
	g.img.WritePixels(pix)
	screen.DrawImage(g.img, nil)
}

// Layout renders at device resolution and reports size changes to the scene.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	if outsideWidth != g.outW || outsideHeight != g.outH || scale != g.scale {
		g.outW, g.outH, g.scale = outsideWidth, outsideHeight, scale
		g.sc.Resize(float64(outsideWidth), float64(outsideHeight), scale)
		g.log.Debug("window: layout", "width", outsideWidth, "height", outsideHeight, "scale", scale)
	}
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}
