package main

import (
	"os"

	"github.com/spf13/cobra"

	"bralign/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats <reportA> <reportB>",
	Short: "Show module set differences between two reports",
	Long: `Parse both reports and print their module counts and set differences
without writing any output files.

Examples:
  bralign stats build-a.txt build-b.txt
  bralign stats --format json build-a.txt build-b.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	_, logger, err := setup()
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	human := format == output.HumanFormat

	pathA, pathB := args[0], args[1]
	if err := requireFiles(pathA, pathB); err != nil {
		return err
	}

	reportA, err := parseReport(pathA, human, logger)
	if err != nil {
		return err
	}
	reportB, err := parseReport(pathB, human, logger)
	if err != nil {
		return err
	}

	summary := &output.RunSummary{
		Reference: output.FileStats{Path: pathA, Modules: reportA.ModuleCount()},
		Target:    output.FileStats{Path: pathB, Modules: reportB.ModuleCount()},
		Diff:      output.BuildDiff(reportA.Order, reportB.Order),
	}
	return summary.Encode(os.Stdout, format)
}
