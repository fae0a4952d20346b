package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bralign/internal/config"
	"bralign/internal/history"
	"bralign/internal/output"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent reorder runs",
	Long: `List recent runs from the history ledger in .bralign/history.db.

Examples:
  bralign history          # last 20 runs
  bralign history -n 5     # last 5 runs`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, logger, err := setup()
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	store, err := history.OpenStore(config.ConfigDirName, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.RecentRuns(historyLimit)
	if err != nil {
		return err
	}

	switch format {
	case output.JSONFormat:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	case output.YAMLFormat:
		enc := yaml.NewEncoder(os.Stdout)
		if err := enc.Encode(runs); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	for _, run := range runs {
		status := "ok"
		if !run.DriverPass || !run.DriverLibPass {
			status = "FAILED"
		}
		id := run.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("%s  %s  %s -> %s  (%d/%d modules, %d common)  %s\n",
			run.CreatedAt.Local().Format(time.DateTime),
			id,
			run.ReferencePath,
			run.TargetPath,
			run.ReferenceCount,
			run.TargetCount,
			run.CommonCount,
			status,
		)
	}
	return nil
}
