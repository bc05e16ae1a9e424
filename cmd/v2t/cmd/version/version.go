package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X ...version=vX.Y.Z".
var version = "v0.1.0"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of v2t",
	Long:  `All software has versions. This is v2t's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersion(cmd.OutOrStdout())
		return nil
	},
}

func printVersion(w io.Writer) {
	fmt.Fprintln(w, version)
}
