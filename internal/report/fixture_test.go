package report

import "strings"

// Fixture builders assembling minimal but structurally faithful report text.

// fixtureLib renders one library record: declaration line plus attribute
// block.
func fixtureLib(path, name string) string {
	return path + "\n{" + name + ": " + path + "}"
}

// fixtureModule renders one module block. libs are pre-rendered records;
// pass none for a module without a library sub-section.
func fixtureModule(name string, libs ...string) string {
	var b strings.Builder
	b.WriteString(ModuleMarker)
	b.WriteString("\n")
	b.WriteString("Module Name:          " + name + "\n")
	b.WriteString("Module Arch:          X64\n")
	b.WriteString("Driver Type:          0x7 (DRIVER)\n")

	if len(libs) > 0 {
		b.WriteString(LibraryOpenMarker)
		b.WriteString("\n")
		for _, lib := range libs {
			b.WriteString(lib)
			b.WriteString("\n")
		}
		b.WriteString(LibraryCloseRule)
		b.WriteString("\n")
	}

	return b.String()
}

// fixtureReport concatenates a header and module blocks into report text.
func fixtureReport(header string, blocks ...string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, block := range blocks {
		b.WriteString(block)
	}
	return b.String()
}
