// Package verify implements the closed-loop structural self-check: a
// serialized output is re-parsed with the same extractor that parsed the
// inputs and compared, count for count, against the pre-reorder model.
// The tool never reports success when its own output fails to round-trip.
package verify

import (
	"bralign/internal/report"
)

// MaxListedMismatches bounds the mismatch detail list in a Result.
const MaxListedMismatches = 10

// Mismatch records one module whose library count changed.
type Mismatch struct {
	Module   string `json:"module" yaml:"module"`
	Expected int    `json:"expected" yaml:"expected"`
	Actual   int    `json:"actual" yaml:"actual"`
}

// Result is the outcome of verifying one output file.
type Result struct {
	Output          string     `json:"output" yaml:"output"`
	ExpectedModules int        `json:"expectedModules" yaml:"expectedModules"`
	ActualModules   int        `json:"actualModules" yaml:"actualModules"`
	Mismatches      []Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
	MismatchTotal   int        `json:"mismatchTotal" yaml:"mismatchTotal"`
}

// Pass reports whether the output round-tripped to the same structural shape.
func (r *Result) Pass() bool {
	return r.ExpectedModules == r.ActualModules && r.MismatchTotal == 0
}

// Check re-parses the serialized output at outputPath and compares its module
// count, and per-module library counts, against the pre-transformation model.
// When the module counts already differ the per-module comparison is skipped.
// At most MaxListedMismatches mismatches are listed; MismatchTotal carries
// the full count.
func Check(pre *report.Report, outputPath string) (*Result, error) {
	out, err := report.ParseFile(outputPath)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Output:          outputPath,
		ExpectedModules: pre.ModuleCount(),
		ActualModules:   out.ModuleCount(),
	}

	if result.ExpectedModules != result.ActualModules {
		return result, nil
	}

	for _, key := range pre.Order {
		expected := pre.LibraryCount(key)
		actual := out.LibraryCount(key)
		if expected == actual {
			continue
		}

		result.MismatchTotal++
		if len(result.Mismatches) < MaxListedMismatches {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Module:   key,
				Expected: expected,
				Actual:   actual,
			})
		}
	}

	return result, nil
}
