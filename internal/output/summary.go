// Package output defines the run summary surface of bralign: the statistics
// and verification results a run prints, with deterministic ordering of every
// list field, and encoders for the supported formats.
package output

import (
	"fmt"
	"io"

	"bralign/internal/verify"
)

// MaxListed bounds the only-in module lists shown in human output.
const MaxListed = 10

// FileStats describes one parsed input report.
type FileStats struct {
	Path    string `json:"path" yaml:"path"`
	Modules int    `json:"modules" yaml:"modules"`
}

// DiffStats is the set difference between the two reports' module keys.
// The only-in lists preserve the owning report's module order, which keeps
// them deterministic across runs.
type DiffStats struct {
	Common          int      `json:"common" yaml:"common"`
	OnlyInReference []string `json:"onlyInReference,omitempty" yaml:"onlyInReference,omitempty"`
	OnlyInTarget    []string `json:"onlyInTarget,omitempty" yaml:"onlyInTarget,omitempty"`
}

// RunSummary is the complete result surface of one reorder (or stats) run.
type RunSummary struct {
	Reference FileStats        `json:"reference" yaml:"reference"`
	Target    FileStats        `json:"target" yaml:"target"`
	Diff      DiffStats        `json:"diff" yaml:"diff"`
	Outputs   []*verify.Result `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// Pass reports whether every verified output round-tripped cleanly.
func (s *RunSummary) Pass() bool {
	for _, r := range s.Outputs {
		if !r.Pass() {
			return false
		}
	}
	return true
}

// BuildDiff computes set-difference statistics from the two key orders.
func BuildDiff(refOrder, targetOrder []string) DiffStats {
	inRef := make(map[string]bool, len(refOrder))
	for _, key := range refOrder {
		inRef[key] = true
	}
	inTarget := make(map[string]bool, len(targetOrder))
	for _, key := range targetOrder {
		inTarget[key] = true
	}

	var stats DiffStats
	for _, key := range refOrder {
		if inTarget[key] {
			stats.Common++
		} else {
			stats.OnlyInReference = append(stats.OnlyInReference, key)
		}
	}
	for _, key := range targetOrder {
		if !inRef[key] {
			stats.OnlyInTarget = append(stats.OnlyInTarget, key)
		}
	}
	return stats
}

// WriteHuman renders the summary as console text, mirroring the layout users
// diff against in CI logs.
func (s *RunSummary) WriteHuman(w io.Writer) {
	fmt.Fprintf(w, "\nStatistics:\n")
	fmt.Fprintf(w, "  Common modules: %d\n", s.Diff.Common)
	fmt.Fprintf(w, "  Only in %s: %d\n", s.Reference.Path, len(s.Diff.OnlyInReference))
	fmt.Fprintf(w, "  Only in %s: %d\n", s.Target.Path, len(s.Diff.OnlyInTarget))

	writeOnlyList(w, s.Reference.Path, s.Diff.OnlyInReference)
	writeOnlyList(w, s.Target.Path, s.Diff.OnlyInTarget)

	if len(s.Outputs) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\nVERIFICATION\n%s\n", rule(), rule())
	for _, result := range s.Outputs {
		WriteVerifyHuman(w, result)
	}

	fmt.Fprintf(w, "\n%s\n", rule())
	if s.Pass() {
		fmt.Fprintln(w, "All verifications passed.")
	} else {
		fmt.Fprintln(w, "Verification FAILED. Check the output files.")
	}
	fmt.Fprintln(w, rule())
}

func writeOnlyList(w io.Writer, path string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  Modules only in %s (first %d):\n", path, MaxListed)
	for i, key := range keys {
		if i == MaxListed {
			break
		}
		fmt.Fprintf(w, "    - %s\n", key)
	}
}

// WriteVerifyHuman renders one verification result as console text.
func WriteVerifyHuman(w io.Writer, r *verify.Result) {
	fmt.Fprintf(w, "\nVerifying %s...\n", r.Output)
	fmt.Fprintf(w, "  Module count: %d (expected: %d)", r.ActualModules, r.ExpectedModules)
	if r.ActualModules != r.ExpectedModules {
		fmt.Fprintln(w, " MISMATCH")
		return
	}
	fmt.Fprintln(w, " OK")

	if r.MismatchTotal == 0 {
		fmt.Fprintf(w, "  Library counts: all %d modules verified OK\n", r.ExpectedModules)
		return
	}

	fmt.Fprintf(w, "  Library count mismatches: %d modules FAILED\n", r.MismatchTotal)
	fmt.Fprintf(w, "  First %d mismatches:\n", verify.MaxListedMismatches)
	for _, m := range r.Mismatches {
		fmt.Fprintf(w, "    - %s: %d (expected: %d)\n", m.Module, m.Actual, m.Expected)
	}
}

func rule() string {
	return "================================================================================"
}
