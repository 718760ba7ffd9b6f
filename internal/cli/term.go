package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"glyphfield/hal"
)

func termCmd(g *globals) *cobra.Command {
	var (
		fps    int
		frames uint64
	)

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Draw the backdrop in the terminal with half-block cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns the terminal; log lines would tear it.
			cfg, log, err := g.setup(cmd, io.Discard)
			if err != nil {
				return err
			}
			override(cmd.Flags(), "fps", &cfg.Term.FPS, fps)
			if err := cfg.Validate(); err != nil {
				return err
			}
			// Title text does not survive half-block downsampling.
			cfg.Title.Enabled = false

			sc, err := g.newScene(cfg, log, nil)
			if err != nil {
				return err
			}
			defer sc.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			err = hal.RunTerm(ctx, sc, hal.TermConfig{FPS: cfg.Term.FPS, Frames: frames, Logger: log})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "Frames per second")
	cmd.Flags().Uint64Var(&frames, "frames", 0, "Stop after N frames (0 = until quit)")
	return cmd
}
