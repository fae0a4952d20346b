package report

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/klauspost/compress/gzip"

	"bralign/internal/errors"
)

// moduleNameRe extracts the declared name from a module block.
var moduleNameRe = regexp.MustCompile(`Module Name:\s+(\S+)`)

// Parse parses raw report text into a Report.
//
// The text before the first module delimiter becomes the header, with
// trailing newlines stripped. Each delimiter occurrence starts one block that
// runs to the next occurrence or end of input. A block without a
// "Module Name:" token is a MALFORMED_REPORT error carrying the byte offset
// of the offending block; an input without any delimiter is NO_MODULES_FOUND.
func Parse(text string) (*Report, error) {
	first := strings.Index(text, ModuleMarker)
	if first < 0 {
		return nil, errors.New(errors.NoModulesFound, "no module delimiter found", nil)
	}

	r := &Report{
		Header: strings.TrimRight(text[:first], "\n"),
		Blocks: make(map[string]string),
	}

	body := text[first:]
	starts := markerOffsets(body)

	// Per-call counter map keeps duplicate suffixing a pure function of the
	// input text.
	nameCount := make(map[string]int)

	for i, start := range starts {
		end := len(body)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		block := body[start:end]

		m := moduleNameRe.FindStringSubmatch(block)
		if m == nil {
			return nil, errors.Errorf(errors.MalformedReport,
				"module block at byte offset %d has no 'Module Name:' token", first+start)
		}
		name := m[1]

		nameCount[name]++
		key := name
		if nameCount[name] > 1 {
			key = fmt.Sprintf("%s#%d", name, nameCount[name])
		}

		r.Blocks[key] = block
		r.Order = append(r.Order, key)
	}

	return r, nil
}

// markerOffsets returns the offset of every module delimiter in body.
func markerOffsets(body string) []int {
	var offsets []int
	pos := 0
	for {
		i := strings.Index(body[pos:], ModuleMarker)
		if i < 0 {
			return offsets
		}
		offsets = append(offsets, pos+i)
		pos += i + len(ModuleMarker)
	}
}

// ParseFile reads and parses a report file. Files ending in .gz are
// decompressed transparently, so compressed CI artifacts can be fed directly.
func ParseFile(path string) (*Report, error) {
	text, err := readReportFile(path)
	if err != nil {
		return nil, err
	}

	r, err := Parse(text)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, errors.Errorf(e.Code, "%s: %s", path, e.Message)
		}
		return nil, err
	}
	r.Path = path
	return r, nil
}

func readReportFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf(errors.FileNotFound, "file not found: %s", path)
		}
		return "", errors.New(errors.InternalError, "cannot open "+path, err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return "", errors.New(errors.InternalError, "cannot decompress "+path, err)
		}
		defer func() { _ = zr.Close() }()
		reader = zr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.New(errors.InternalError, "cannot read "+path, err)
	}
	return string(data), nil
}
