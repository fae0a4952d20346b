package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bralign/internal/errors"
	"bralign/internal/output"
	"bralign/internal/report"
	"bralign/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report> <output>",
	Short: "Check that a rewritten report preserves the original's structure",
	Long: `Re-parse a rewritten report and compare its module count and per-module
library counts against the original report. Exits non-zero on any mismatch.

Examples:
  bralign verify build-b.txt ` + driverLibOutputName,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(); err != nil {
		return err
	}
	format, err := output.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	originalPath, outputPath := args[0], args[1]
	if err := requireFiles(originalPath, outputPath); err != nil {
		return err
	}

	original, err := report.ParseFile(originalPath)
	if err != nil {
		return err
	}

	result, err := verify.Check(original, outputPath)
	if err != nil {
		return err
	}

	switch format {
	case output.JSONFormat:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	case output.YAMLFormat:
		enc := yaml.NewEncoder(os.Stdout)
		if err := enc.Encode(result); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		output.WriteVerifyHuman(os.Stdout, result)
	}

	if !result.Pass() {
		return errors.Errorf(errors.StructuralMismatch,
			"%s does not preserve the structure of %s", outputPath, originalPath)
	}
	return nil
}
