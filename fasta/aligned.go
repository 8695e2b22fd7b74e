package fasta

import (
	"fmt"
	"io"

	"github.com/TuftsBCB/seq"
)

// An AlignedWriter writes entries to an aligned FASTA encoded file.
//
// The aligned format follows immediately from the format of a regular FASTA
// file: all sequences must be the same length, '-' indicate gaps, and the
// n'th letter of any sequence is the n'th column in the alignment. Aligned
// files can be read back with a Reader.
//
// See the exported fields of Writer for options that can be set.
type AlignedWriter struct {
	*Writer
	seqLen int
}

// NewAlignedWriter creates a new aligned FASTA writer that can write FASTA
// entries to an io.Writer.
func NewAlignedWriter(w io.Writer) *AlignedWriter {
	return &AlignedWriter{
		Writer: NewWriter(w),
		seqLen: -1,
	}
}

// Write writes a single alignment entry to the underlying io.Writer.
//
// An error is returned if the length of the sequence is not the same length
// as other sequences that have already been written.
//
// You may need to call Flush in order for the changes to be written.
func (w *AlignedWriter) Write(entry seq.Sequence) error {
	if w.seqLen == -1 {
		w.seqLen = len(entry.Residues)
	} else if w.seqLen != len(entry.Residues) {
		return fmt.Errorf("Sequence '%s' has length %d, but other sequences "+
			"have length %d.", entry.Name, len(entry.Residues), w.seqLen)
	}
	return w.Writer.Write(entry)
}

// WriteAll writes a slice of aligned FASTA entries to the underyling
// io.Writer, and calls Flush.
func (w *AlignedWriter) WriteAll(entries []seq.Sequence) error {
	for _, entry := range entries {
		if err := w.Write(entry); err != nil {
			return err
		}
	}
	return w.Flush()
}
