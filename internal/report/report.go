// Package report parses firmware build reports into a structural model and
// re-emits them. A report is a free-form header followed by a sequence of
// module blocks; each block may carry a nested library sub-section.
//
// Block keys are module names, de-duplicated in file order: the first
// occurrence of a name keeps the bare name, later occurrences become
// "name#2", "name#3", and so on. The suffix is positional per file, so when
// two reports duplicate the same name a different number of times, "name#2"
// may denote structurally different modules across them. Matching between
// reports relies on these keys regardless; that limitation is inherent to the
// format, which carries no stronger module identity.
package report

import (
	"strings"
)

// Report is the parsed structural model of one build report.
type Report struct {
	// Path is the source file the report was parsed from, if any
	Path string

	// Header is the text preamble before the first module delimiter
	Header string

	// Blocks maps block key to raw block text
	Blocks map[string]string

	// Order lists block keys in order of appearance. It is always a
	// permutation of the keys of Blocks.
	Order []string
}

// Delimiters of the build report format. The rules are fixed-width lines;
// the format never varies them.
var (
	// ModuleRule is the horizontal rule opening every module block
	ModuleRule = ">" + strings.Repeat("=", 198) + "<"

	// ModuleMarker is the full block-start delimiter: rule plus section title
	ModuleMarker = ModuleRule + "\nModule Summary"

	// LibraryOpenMarker bounds the start of a module's library sub-section
	LibraryOpenMarker = ">" + strings.Repeat("-", 198) + "<" + "\nLibrary\n" + strings.Repeat("-", 200)

	// LibraryCloseRule bounds the end of a module's library sub-section
	LibraryCloseRule = "<" + strings.Repeat("-", 198) + ">"
)

// ModuleCount returns the number of module blocks.
func (r *Report) ModuleCount() int {
	return len(r.Order)
}

// HasModule reports whether the report contains a block for key.
func (r *Report) HasModule(key string) bool {
	_, ok := r.Blocks[key]
	return ok
}

// LibraryCount returns the number of library records in the named module,
// or zero when the module does not exist or has no library sub-section.
func (r *Report) LibraryCount(key string) int {
	block, ok := r.Blocks[key]
	if !ok {
		return 0
	}
	return len(Libraries(block))
}
