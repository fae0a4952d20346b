package report

import (
	"strings"
)

// LibraryRecord is one dependency reference inside a module's library
// sub-section: a declaration line ending in .inf plus the brace-delimited
// attribute block that immediately follows it.
type LibraryRecord struct {
	// Path is the declaration line, verbatim
	Path string

	// NormPath is the matching key: Path lower-cased with backslashes
	// normalized to forward slashes
	NormPath string

	// Name is the short library name from the attribute block (text before
	// the first colon). Diagnostic only; matching uses NormPath.
	Name string

	// Info is the attribute block including both braces; may span lines
	Info string

	// Raw is Path + "\n" + Info, the exact reconstructable record text
	Raw string
}

// NormalizePath derives the case- and separator-insensitive matching key
// for a library declaration line.
func NormalizePath(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, `\`, "/"))
}

// Libraries extracts the ordered library records from one module block.
// A block without a library sub-section has zero records; that is not an
// error.
func Libraries(block string) []LibraryRecord {
	section, ok := librarySection(block)
	if !ok {
		return nil
	}
	return scanRecords(section)
}

// librarySection bounds the nested library sub-section: opening rule +
// "Library" title + underline, up to the closing rule.
func librarySection(block string) (string, bool) {
	i := strings.Index(block, LibraryOpenMarker)
	if i < 0 {
		return "", false
	}
	rest := block[i+len(LibraryOpenMarker):]
	j := strings.Index(rest, LibraryCloseRule)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// scanRecords walks the sub-section line by line looking for a .inf line
// immediately followed by a brace block. The brace block may contain
// newlines; the format never nests braces, so the scan stops at the first
// closing brace. An explicit scanner avoids pathological regex backtracking
// on malformed input.
func scanRecords(section string) []LibraryRecord {
	var records []LibraryRecord

	pos := 0
	for pos < len(section) {
		lineEnd := strings.IndexByte(section[pos:], '\n')
		if lineEnd < 0 {
			break
		}
		lineEnd += pos
		line := section[pos:lineEnd]

		if !strings.HasSuffix(line, ".inf") {
			pos = lineEnd + 1
			continue
		}

		// The attribute block must start on the very next line.
		braceStart := lineEnd + 1
		if braceStart >= len(section) || section[braceStart] != '{' {
			pos = lineEnd + 1
			continue
		}

		braceEnd := strings.IndexByte(section[braceStart:], '}')
		if braceEnd < 2 {
			// No closing brace, or an empty {} block: not a record.
			pos = lineEnd + 1
			continue
		}
		braceEnd += braceStart

		info := section[braceStart : braceEnd+1]
		records = append(records, LibraryRecord{
			Path:     line,
			NormPath: NormalizePath(line),
			Name:     libraryName(info),
			Info:     info,
			Raw:      line + "\n" + info,
		})

		// Resume at the next line boundary; path lines only match at the
		// start of a line.
		pos = braceEnd + 1
		if nl := strings.IndexByte(section[pos:], '\n'); nl >= 0 {
			pos += nl + 1
		} else {
			pos = len(section)
		}
	}

	return records
}

// libraryName extracts the short name from "{Name: ...}" attribute text.
func libraryName(info string) string {
	inner := strings.TrimPrefix(info, "{")
	if i := strings.IndexByte(inner, ':'); i >= 0 {
		return strings.TrimSpace(inner[:i])
	}
	return ""
}
