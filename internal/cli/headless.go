package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"glyphfield/backdrop"
	"glyphfield/hal"
)

func headlessCmd(g *globals) *cobra.Command {
	var (
		width, height int
		dpr           float64
		hz            int
		frames, every uint64
		out           string
		check         bool
	)

	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Render frames offscreen and save them as PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.setup(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			h := &cfg.Headless
			override(fl, "width", &h.Width, width)
			override(fl, "height", &h.Height, height)
			override(fl, "dpr", &h.DPR, dpr)
			override(fl, "hz", &h.Hz, hz)
			override(fl, "frames", &h.Frames, frames)
			override(fl, "every", &h.Every, every)
			override(fl, "out", &h.Out, out)
			override(fl, "check", &h.Check, check)
			if err := cfg.Validate(); err != nil {
				return err
			}

			var sc *backdrop.Scene
			sc, err = g.newScene(cfg, log, func() float64 { return sc.State().Time })
			if err != nil {
				return err
			}
			defer sc.Close()

			var checkFn func() error
			if h.Check {
				checkFn = func() error { return sc.State().Check() }
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			res, err := hal.RunHeadless(ctx, sc, hal.HeadlessConfig{
				Width:  float64(h.Width),
				Height: float64(h.Height),
				DPR:    h.DPR,
				Hz:     h.Hz,
				Frames: h.Frames,
				Every:  h.Every,
				Out:    h.Out,
				Check:  checkFn,
				Logger: log,
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d frames, %d saved", brand.Sprint("glyphfield"), res.Frames, len(res.Saved))
			if res.Dir != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " in %s", res.Dir)
			}
			if h.Check {
				fmt.Fprint(cmd.OutOrStdout(), ", all frames checked")
			}
			fmt.Fprintln(cmd.OutOrStdout(), subtle.Sprint(" (run "+res.RunID+")"))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&width, "width", 1280, "Viewport width in logical pixels")
	f.IntVar(&height, "height", 720, "Viewport height in logical pixels")
	f.Float64Var(&dpr, "dpr", 1, "Device pixel ratio (> 0)")
	f.IntVar(&hz, "hz", 60, "Frames per second")
	f.Uint64Var(&frames, "frames", 300, "Stop after N frames (0 = until interrupted)")
	f.Uint64Var(&every, "every", 60, "Save every Nth frame (0 = never)")
	f.StringVar(&out, "out", "", "Output directory (default glyphfield-<run id>)")
	f.BoolVar(&check, "check", false, "Validate the field and projected points after every frame")
	return cmd
}
