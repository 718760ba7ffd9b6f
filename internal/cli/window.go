package cli

import (
	"github.com/spf13/cobra"

	"glyphfield/hal"
	"glyphfield/internal/buildinfo"
)

func windowCmd(g *globals) *cobra.Command {
	var width, height, tps int

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the backdrop in a desktop window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.setup(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			override(fl, "width", &cfg.Window.Width, width)
			override(fl, "height", &cfg.Window.Height, height)
			override(fl, "tps", &cfg.Window.TPS, tps)
			if err := cfg.Validate(); err != nil {
				return err
			}

			sc, err := g.newScene(cfg, log, nil)
			if err != nil {
				return err
			}
			defer sc.Close()
			return hal.RunWindow(sc, hal.WindowConfig{
				Width:  cfg.Window.Width,
				Height: cfg.Window.Height,
				TPS:    cfg.Window.TPS,
				Title:  "glyphfield (" + buildinfo.Short() + ")",
				Logger: log,
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 1280, "Window width in logical pixels")
	cmd.Flags().IntVar(&height, "height", 720, "Window height in logical pixels")
	cmd.Flags().IntVar(&tps, "tps", 60, "Updates per second")
	return cmd
}
