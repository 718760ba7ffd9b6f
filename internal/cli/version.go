package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"glyphfield/internal/buildinfo"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", brand.Sprint("glyphfield"), buildinfo.Long())
		},
	}
}
