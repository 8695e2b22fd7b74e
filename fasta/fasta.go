package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/TuftsBCB/seq"
)

// ErrNoRecords is returned by ReadFile when the input holds no FASTA
// entries at all.
var ErrNoRecords = errors.New("no FASTA records found")

// String returns the FASTA string corresponding to the sequence given with
// the sequence wrapped at the number of columns given.
//
// If cols is <= 0, then no wrapping is done.
func String(s seq.Sequence, cols int) string {
	return format(s.Name, residuesString(s.Residues), cols)
}

func format(header, sequence string, cols int) string {
	if cols <= 0 || len(sequence) == 0 {
		return fmt.Sprintf(">%s\n%s", header, sequence)
	}

	wrapped := make([]string, 1+((len(sequence)-1)/cols))
	for i := range wrapped {
		start := cols * i
		end := start + cols
		if end > len(sequence) {
			end = len(sequence)
		}
		wrapped[i] = sequence[start:end]
	}
	return fmt.Sprintf(">%s\n%s", header, strings.Join(wrapped, "\n"))
}

func residuesString(rs []seq.Residue) string {
	bs := make([]byte, len(rs))
	for i, r := range rs {
		bs[i] = byte(r)
	}
	return string(bs)
}

func isNull(s seq.Sequence) bool {
	return len(s.Name) == 0 && s.Residues == nil
}

// A Reader reads entries from FASTA encoded input.
//
// If TrustSequences is true, then sequence data will not be checked to make
// sure that it conforms to the NCBI spec. (See the Read method for details.)
// By default, TrustSequences is false.
type Reader struct {
	// When set to true, the sequences will not be checked for errors.
	// If you trust the data, this may improve performance.
	// This may be set at any time.
	TrustSequences bool

	// Translate checks and optionally rewrites every sequence character.
	// It defaults to TranslateNormal, which keeps the case of letters.
	Translate Translator

	buf        *bufio.Reader
	line       int
	nextHeader []byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{
		TrustSequences: false,
		Translate:      TranslateNormal,
		buf:            bufio.NewReader(r),
		line:           1,
		nextHeader:     nil,
	}
}

// ReadAll will read all entries in the FASTA input and return them as a slice.
// If an error is encountered, processing is stopped, and the error is
// returned.
func (r *Reader) ReadAll() ([]seq.Sequence, error) {
	entries := make([]seq.Sequence, 0, 100)
	for {
		entry, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Read will read the next entry in the FASTA input.
// The format roughly corresponds to that described by NCBI:
// http://blast.ncbi.nlm.nih.gov/blastcgihelp.shtml
//
// In particular, the only characters allowed in the sequence section
// are a-z, A-Z, *, - and '.'. Any other character will result in an error.
//
// Blank lines, leading and trailing whitespace are always ignored (regardless
// of where they are).
//
// It is NOT safe to call this function from multiple goroutines.
func (r *Reader) Read() (seq.Sequence, error) {
	translate := r.Translate
	if translate == nil {
		translate = TranslateNormal
	}
	entry, err := r.ReadEntry(translate)
	if !isNull(entry) {
		return entry, nil
	}
	if err == io.EOF {
		return seq.Sequence{}, err
	}
	return seq.Sequence{}, fmt.Errorf("Error on line %d: %s", r.line, err)
}

// ReadEntry is exported for use in other packages that read FASTA-like files.
//
// The 'translate' function is used when sequences are checked for valid
// characters.
//
// If you're just reading FASTA files, this method SHOULD NOT be used.
func (r *Reader) ReadEntry(translate Translator) (seq.Sequence, error) {
	entry := seq.Sequence{}
	seenHeader := false

	// Before entering the main loop, we have to check to see if we've
	// already read this entry's header.
	if r.nextHeader != nil {
		entry.Name = trimHeader(r.nextHeader)
		entry.Residues = make([]seq.Residue, 0, 50)
		r.nextHeader = nil
		seenHeader = true
	}
	for {
		line, err := r.buf.ReadBytes('\n')
		if err == io.EOF {
			if len(line) == 0 {
				return entry, io.EOF
			}
		} else if err != nil {
			return seq.Sequence{}, err
		}
		line = bytes.TrimSpace(line)

		// If it's empty, increment the counter and skip ahead.
		if len(line) == 0 {
			r.line++
			continue
		}

		// If we haven't seen the header yet, this better be it.
		if !seenHeader {
			if line[0] != '>' {
				return seq.Sequence{},
					fmt.Errorf("Expected '>', got '%c'.", line[0])
			}

			// Trim the '>' and load this line into the header.
			entry.Name = trimHeader(line)
			entry.Residues = make([]seq.Residue, 0, 50)
			seenHeader = true

			r.line++
			continue
		} else if line[0] == '>' {
			// This means we've begun reading the next entry.
			// So slap this line into 'nextHeader' and return the current entry.
			r.nextHeader = line

			r.line++
			return entry, nil
		}

		for _, b := range line {
			if !r.TrustSequences {
				bNew, ok := translate(b)
				if !ok {
					return seq.Sequence{},
						fmt.Errorf("Invalid character '%c' on line %d.",
							b, r.line)
				}
				b = bNew
			}
			entry.Residues = append(entry.Residues, seq.Residue(b))
		}

		r.line++
	}
}

// A Translator is a function that accepts a single character, checks whether
// it's valid, and optionally maps it to a new character.
//
// Translators are ONLY applicable to developers writing their own parsers for
// FASTA-like files. They should not be used to read regular FASTA files.
type Translator func(b byte) (byte, bool)

// TranslateNormal is the default translator for regular (and aligned) FASTA
// files. It accepts letters, '*', '-' and '.' and leaves them untouched.
func TranslateNormal(b byte) (byte, bool) {
	switch {
	case b >= 'a' && b <= 'z':
	case b >= 'A' && b <= 'Z':
	case b == '*':
	case b == '-':
	case b == '.':
	default:
		return 0, false
	}
	return b, true
}

// TranslateUpper is like TranslateNormal, except lower case letters are
// translated to their upper case equivalent.
func TranslateUpper(b byte) (byte, bool) {
	b, ok := TranslateNormal(b)
	if ok && b >= 'a' && b <= 'z' {
		b = byte(unicode.ToUpper(rune(b)))
	}
	return b, ok
}

func trimHeader(line []byte) string {
	return string(bytes.TrimSpace(bytes.TrimLeft(line, ">")))
}

// A Writer writes entries to a FASTA encoded file.
//
// The 'Columns' corresponds to the number of columns at which a sequence is
// wrapped. If it's <= 0, then no wrapping will be used.
//
// The header text is never wrapped.
type Writer struct {
	// The number of columns to wrap a sequence at. By default, this
	// is set to 60. A value <= 0 will result in no wrapping.
	Columns int
	buf     *bufio.Writer
}

// NewWriter createa a new FASTA writer that can write FASTA entries to
// an io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Columns: 60,
		buf:     bufio.NewWriter(w),
	}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write writes a single FASTA entry to the underlying io.Writer.
//
// You may need to call Flush in order for the changes to be written.
func (w *Writer) Write(entry seq.Sequence) error {
	return w.write(entry.Name, residuesString(entry.Residues))
}

func (w *Writer) write(header, sequence string) error {
	if strings.ContainsAny(header, "\n\r") {
		return fmt.Errorf("The header '%s' spans more than one line.",
			strings.TrimSpace(header))
	}
	_, err := w.buf.WriteString(format(header, sequence, w.Columns) + "\n")
	return err
}

// WriteAll writes a slice of FASTA entries to the underyling io.Writer, and
// calls Flush.
func (w *Writer) WriteAll(entries []seq.Sequence) error {
	for _, entry := range entries {
		if err := w.Write(entry); err != nil {
			return err
		}
	}
	return w.Flush()
}
