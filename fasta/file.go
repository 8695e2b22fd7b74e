package fasta

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/TuftsBCB/seq"
)

// ReadFile reads every entry of the FASTA file at the path given, in file
// order. If the file name ends with ".gz", gzip decompression will be used.
//
// A file without a single entry is an error wrapping ErrNoRecords.
func ReadFile(fp string) ([]seq.Sequence, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if path.Ext(fp) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	entries, err := NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Could not read FASTA file '%s': %s", fp, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w in '%s'", ErrNoRecords, fp)
	}
	return entries, nil
}

// ReadFirst returns the first entry of the FASTA file at the path given.
func ReadFirst(fp string) (seq.Sequence, error) {
	entries, err := ReadFile(fp)
	if err != nil {
		return seq.Sequence{}, err
	}
	return entries[0], nil
}

// WriteFile writes the entries given to a new FASTA file at the path given,
// overwriting any existing file. Each entry gets a header line and a single
// (unwrapped) sequence line.
func WriteFile(fp string, entries []seq.Sequence) error {
	return WriteFuncFile(fp, len(entries),
		func(i int) string { return entries[i].Name },
		func(i int) string { return residuesString(entries[i].Residues) })
}

// WriteFunc writes n FASTA entries to w. The header and sequence of the i'th
// entry are given by the header and sequence functions, which lets any table
// of rows be written as FASTA by picking the fields to use.
//
// Sequences are not wrapped.
func WriteFunc(w io.Writer, n int, header, sequence func(i int) string) error {
	fw := NewWriter(w)
	fw.Columns = 0
	for i := 0; i < n; i++ {
		if err := fw.write(header(i), sequence(i)); err != nil {
			return err
		}
	}
	return fw.Flush()
}

// WriteFuncFile is like WriteFunc, but writes to a new file at the path given.
func WriteFuncFile(fp string, n int, header, sequence func(i int) string) error {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	if err := WriteFunc(f, n, header, sequence); err != nil {
		f.Close()
		return fmt.Errorf("Could not write FASTA file '%s': %s", fp, err)
	}
	return f.Close()
}
