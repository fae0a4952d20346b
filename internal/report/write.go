package report

import (
	"bufio"
	"io"
	"os"
	"strings"

	"bralign/internal/errors"
)

// WriteOptions controls serialization.
type WriteOptions struct {
	// Libraries maps block keys to replacement library records. A block with
	// an entry here gets its library sub-section spliced with the records in
	// the given order; every other byte of the block passes through
	// unchanged.
	Libraries map[string][]LibraryRecord

	// Progress, when set, is called once per emitted module with the number
	// written so far and the total.
	Progress func(done, total int)
}

// Write emits the report: header first, then every block in Order separated
// by a blank line. In-memory models are not mutated.
func Write(w io.Writer, r *Report, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(r.Header); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	total := len(r.Order)
	for i, key := range r.Order {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}

		block := r.Blocks[key]
		if records, ok := opts.Libraries[key]; ok {
			block = SpliceLibraries(block, records)
		}
		if _, err := bw.WriteString(block); err != nil {
			return err
		}

		if opts.Progress != nil {
			opts.Progress(i+1, total)
		}
	}

	return bw.Flush()
}

// WriteFile serializes the report to path.
func WriteFile(path string, r *Report, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(errors.InternalError, "cannot create "+path, err)
	}

	if err := Write(f, r, opts); err != nil {
		_ = f.Close()
		return errors.New(errors.InternalError, "cannot write "+path, err)
	}
	return f.Close()
}

// SpliceLibraries replaces the library sub-section of a block with the given
// records, joined by single newlines inside the original opening and closing
// delimiters. A block without a complete sub-section is returned unchanged.
func SpliceLibraries(block string, records []LibraryRecord) string {
	i := strings.Index(block, LibraryOpenMarker)
	if i < 0 {
		return block
	}
	head := block[:i+len(LibraryOpenMarker)]

	rest := block[i+len(LibraryOpenMarker):]
	j := strings.Index(rest, LibraryCloseRule)
	if j < 0 {
		return block
	}
	tail := rest[j:]

	body := "\n"
	if len(records) > 0 {
		raws := make([]string, len(records))
		for k, rec := range records {
			raws[k] = rec.Raw
		}
		body = "\n" + strings.Join(raws, "\n") + "\n"
	}

	return head + body + tail
}
