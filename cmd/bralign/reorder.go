package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bralign/internal/config"
	"bralign/internal/errors"
	"bralign/internal/history"
	"bralign/internal/logging"
	"bralign/internal/output"
	"bralign/internal/reorder"
	"bralign/internal/report"
	"bralign/internal/verify"
)

// Output file names are fixed; scripts downstream depend on them.
const (
	driverOutputName    = "BuildReport-reorder_driver.txt"
	driverLibOutputName = "BuildReport-reorder_driver_and_lib.txt"
)

var (
	reorderStrict    bool
	reorderNoHistory bool
)

var reorderCmd = &cobra.Command{
	Use:   "reorder <reference> <target>",
	Short: "Reorder a build report to match a reference report",
	Long: `Reorder the target report's modules (and libraries within each module) to
follow the reference report's order, then verify the rewrite.

Writes two files to the working directory:
  ` + driverOutputName + `          modules reordered only
  ` + driverLibOutputName + `  modules and libraries reordered

Examples:
  # Align build-b.txt against build-a.txt
  bralign reorder build-a.txt build-b.txt

  # Gzip-compressed reports are read transparently
  bralign reorder build-a.txt.gz build-b.txt.gz

  # Fail the process when verification fails
  bralign reorder --strict build-a.txt build-b.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runReorder,
}

func init() {
	reorderCmd.Flags().BoolVar(&reorderStrict, "strict", false,
		"Exit non-zero when verification fails")
	reorderCmd.Flags().BoolVar(&reorderNoHistory, "no-history", false,
		"Do not record this run in the history ledger")
	rootCmd.AddCommand(reorderCmd)
}

func runReorder(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	human := format == output.HumanFormat

	refPath, targetPath := args[0], args[1]
	if err := requireFiles(refPath, targetPath); err != nil {
		return err
	}

	ref, err := parseReport(refPath, human, logger)
	if err != nil {
		return err
	}
	target, err := parseReport(targetPath, human, logger)
	if err != nil {
		return err
	}

	// Set differences are computed before the reorder so the only-in lists
	// reflect each file's original order.
	diff := output.BuildDiff(ref.Order, target.Order)

	if human {
		fmt.Printf("\nReordering modules based on %s...\n", refPath)
	}
	reorder.Modules(ref.Order, target)

	if human {
		fmt.Println("\nSaving reordered report (driver only)...")
	}
	if err := report.WriteFile(driverOutputName, target, report.WriteOptions{}); err != nil {
		return err
	}
	logger.Info("Saved reordered report", map[string]interface{}{
		"path": driverOutputName,
	})

	if human {
		fmt.Println("Saving reordered report (driver and library)...")
	}
	opts := report.WriteOptions{Libraries: reorder.LibraryPlan(ref, target)}
	if interval := cfg.Reorder.ProgressInterval; interval > 0 {
		opts.Progress = func(done, total int) {
			if done%interval == 0 {
				logger.Info("Reordering libraries", map[string]interface{}{
					"module": done,
					"total":  total,
				})
			}
		}
	}
	if err := report.WriteFile(driverLibOutputName, target, opts); err != nil {
		return err
	}
	logger.Info("Saved reordered report", map[string]interface{}{
		"path": driverLibOutputName,
	})

	// Closed-loop check: both outputs must round-trip against the target
	// model before this run may claim success.
	driverResult, err := verify.Check(target, driverOutputName)
	if err != nil {
		return err
	}
	driverLibResult, err := verify.Check(target, driverLibOutputName)
	if err != nil {
		return err
	}

	summary := &output.RunSummary{
		Reference: output.FileStats{Path: refPath, Modules: ref.ModuleCount()},
		Target:    output.FileStats{Path: targetPath, Modules: target.ModuleCount()},
		Diff:      diff,
		Outputs:   []*verify.Result{driverResult, driverLibResult},
	}
	if err := summary.Encode(os.Stdout, format); err != nil {
		return err
	}

	recordRun(cfg, logger, ref, target, summary)

	if (reorderStrict || cfg.Verification.Strict) && !summary.Pass() {
		return errors.New(errors.StructuralMismatch,
			"output failed structural verification", nil)
	}
	return nil
}

func parseReport(path string, human bool, logger *logging.Logger) (*report.Report, error) {
	if human {
		fmt.Printf("Parsing %s...\n", path)
	}
	r, err := report.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if human {
		fmt.Printf("Parsed %s: %d modules found\n", path, r.ModuleCount())
	}
	logger.Debug("Parsed report", map[string]interface{}{
		"path":    path,
		"modules": r.ModuleCount(),
	})
	return r, nil
}

// recordRun appends the run to the history ledger. Ledger problems are
// warnings; they never fail the pipeline.
func recordRun(cfg *config.Config, logger *logging.Logger, ref, target *report.Report, summary *output.RunSummary) {
	if reorderNoHistory || !cfg.History.Enabled {
		return
	}

	store, err := history.OpenStore(config.ConfigDirName, logger)
	if err != nil {
		logger.Warn("History ledger unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer func() { _ = store.Close() }()

	refDigest, _ := history.FileDigest(ref.Path)
	targetDigest, _ := history.FileDigest(target.Path)

	run := &history.Run{
		ReferencePath:   ref.Path,
		TargetPath:      target.Path,
		ReferenceDigest: refDigest,
		TargetDigest:    targetDigest,
		ReferenceCount:  ref.ModuleCount(),
		TargetCount:     target.ModuleCount(),
		CommonCount:     summary.Diff.Common,
		DriverPass:      summary.Outputs[0].Pass(),
		DriverLibPass:   summary.Outputs[1].Pass(),
	}
	if err := store.RecordRun(run); err != nil {
		logger.Warn("Failed to record run", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
