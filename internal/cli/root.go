// Package cli provides the command-line interface for palex.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/palex/internal/logging"
	"github.com/jmylchreest/palex/internal/version"
)

// NewRootCmd builds the palex command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "palex",
		Short: "Build colour palettes from images and palette files",
		Long: `palex reduces the colours of one or more images and JASC-PAL palette files
to a small representative palette using k-means clustering.

Palettes can be printed as hex, rgb, JSON or JASC-PAL, previewed in the
terminal, rendered as a PNG swatch, or served over HTTP.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// verbosity reads the global verbose and quiet flags.
func verbosity(cmd *cobra.Command) (verbose, quiet bool) {
	verbose, _ = cmd.Flags().GetBool("verbose")
	quiet, _ = cmd.Flags().GetBool("quiet")
	return verbose, quiet
}

// commandLogger returns a stderr logger honouring the global flags.
func commandLogger(cmd *cobra.Command) hclog.Logger {
	verbose, quiet := verbosity(cmd)
	return logging.NewWithOutput("palex", cmd.ErrOrStderr(), verbose, quiet)
}
