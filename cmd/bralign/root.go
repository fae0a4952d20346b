package main

import (
	"github.com/spf13/cobra"

	"bralign/internal/version"
)

var (
	// formatFlag is the CLI --format flag value
	formatFlag string
	// verboseFlag enables debug logging regardless of config
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "bralign",
	Short: "bralign - build report alignment tool",
	Long: `bralign reads two firmware build reports and rewrites the second so its
module blocks (and optionally the library records inside each module) follow
the order of the first. Aligned reports diff cleanly line-by-line.

Every rewrite is self-verified: the output is re-parsed and its module and
per-module library counts are compared against the input before the run is
reported as clean.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("bralign version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human",
		"Output format: human, json, or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging")
}
