// Package cli wires configuration, logging and the backdrop scene to the hosts.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"glyphfield/backdrop"
	"glyphfield/backdrop/hud"
	"glyphfield/backdrop/title"
	"glyphfield/hal"
	"glyphfield/internal/buildinfo"
	"glyphfield/internal/config"
	"glyphfield/internal/logging"
)

var (
	brand  = color.New(color.FgHiCyan, color.Bold)
	subtle = color.New(color.FgHiBlack)
	bad    = color.New(color.FgRed)
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string
	noColor    bool
	seed       uint64
	title      bool
	titleFirst string
	titleFinal string
	hud        bool
	fontPath   string
}

// NewRootCmd builds the glyphfield command tree. Without a subcommand it opens a window.
func NewRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "glyphfield",
		Short: "glyphfield: an animated glyph network backdrop",
		Long: brand.Sprint("glyphfield") + " draws a drifting field of currency glyphs linked by pulsing lines\n" +
			subtle.Sprint("Scroll to fly through it, move the pointer to light it up"),
		Version:       buildinfo.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("glyphfield {{ .Version }}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&g.noColor, "no-color", false, "Disable colored log output")
	pf.Uint64Var(&g.seed, "seed", 0, "Layout seed (0 = random)")
	pf.BoolVar(&g.title, "title", true, "Draw the typing title")
	pf.StringVar(&g.titleFirst, "title-first", "", "First title word")
	pf.StringVar(&g.titleFinal, "title-final", "", "Final title word")
	pf.BoolVar(&g.hud, "hud", false, "Draw the diagnostics overlay")
	pf.StringVar(&g.fontPath, "font", "", "TrueType/OpenType font for the glyphs")

	win := windowCmd(g)
	root.RunE = win.RunE
	root.Flags().AddFlagSet(win.Flags())

	root.AddCommand(
		win,
		headlessCmd(g),
		termCmd(g),
		versionCmd(),
	)
	return root
}

// Execute runs the root command and prints any error.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, bad.Sprint("glyphfield: ")+err.Error())
	}
	return err
}

// setup loads the config, applies flag overrides and installs the logger.
func (g *globals) setup(cmd *cobra.Command, logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	fl := cmd.Flags()
	override(fl, "log-level", &cfg.Log.Level, g.logLevel)
	override(fl, "no-color", &cfg.Log.Color, !g.noColor)
	override(fl, "seed", &cfg.Seed, g.seed)
	override(fl, "title", &cfg.Title.Enabled, g.title)
	override(fl, "title-first", &cfg.Title.First, g.titleFirst)
	override(fl, "title-final", &cfg.Title.Final, g.titleFinal)
	override(fl, "hud", &cfg.HUD, g.hud)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(logOut, level, cfg.Log.Color)
	gg.SetLogger(log)

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	log.Debug("config loaded", "path", g.configPath, "seed", cfg.Seed, "version", buildinfo.Long())
	return cfg, log, nil
}

// override copies a flag value over the config only when the flag was given, so the
// precedence is defaults < config file < command line.
func override[T any](fl *pflag.FlagSet, name string, dst *T, v T) {
	if fl.Changed(name) {
		*dst = v
	}
}

// newScene builds the scene and its overlays. titleClock drives the typing title;
// nil means a wall clock.
func (g *globals) newScene(cfg *config.Config, log *slog.Logger, titleClock func() float64) (*backdrop.Scene, error) {
	bc := backdrop.Config{Seed: cfg.Seed, Logger: log}
	if g.fontPath != "" {
		data, err := os.ReadFile(g.fontPath)
		if err != nil {
			return nil, fmt.Errorf("font: %w", err)
		}
		bc.Font = data
	}
	sc, err := backdrop.NewScene(bc)
	if err != nil {
		return nil, err
	}
	if cfg.Title.Enabled {
		rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1|1))
		m := title.New(cfg.Title.First, cfg.Title.Final, title.DefaultTiming, rng)
		if titleClock == nil {
			titleClock = hal.NewClock().Millis
		}
		sc.AddOverlay(title.NewOverlay(m, titleClock))
	}
	if cfg.HUD {
		sc.AddOverlay(hud.New(sc.StatusLines))
	}
	return sc, nil
}
