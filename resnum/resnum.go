// Package resnum decodes the residue position labels found in structure
// files, like "11", "11A" or "-3", into values that sort in chain order.
//
// Insertion codes are ordered after the plain residue number they decorate
// and before the next number: 11 < 11A < 11B < 12.
package resnum

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoDigit is returned when a residue label has no residue number.
	ErrNoDigit = errors.New("residue label has no digits")

	// ErrMalformed is returned when a residue label has characters other
	// than a residue number and a single insertion code.
	ErrMalformed = errors.New("malformed residue label")
)

// insertionOffsets maps insertion codes 'A'..'Z' to the fraction added to
// the residue number. The offsets stay below 1 so that insertions never
// collide with the next residue number.
var insertionOffsets = func() [26]float64 {
	var offsets [26]float64
	for i := range offsets {
		offsets[i] = float64(i+1) / 100
	}
	return offsets
}()

// Label is a residue position in a structure file: a residue sequence number
// and an optional insertion code. An insertion code of 0 means none.
type Label struct {
	Num       int
	Insertion byte
}

// Parse reads a label made of an optional '-', one or more digits and at
// most one letter. Lower case insertion codes are upper-cased.
func Parse(s string) (Label, error) {
	t := strings.TrimSpace(s)
	digits := strings.TrimLeft(t, "-")
	if len(t)-len(digits) > 1 {
		return Label{}, fmt.Errorf("Could not parse residue label '%s': %w",
			s, ErrMalformed)
	}

	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	if end == 0 {
		kind := ErrNoDigit
		if strings.ContainsAny(digits, "0123456789") {
			kind = ErrMalformed
		}
		return Label{}, fmt.Errorf("Could not parse residue label '%s': %w",
			s, kind)
	}
	num, err := strconv.Atoi(t[:len(t)-len(digits)+end])
	if err != nil {
		return Label{}, fmt.Errorf("Could not parse residue label '%s': %s",
			s, err)
	}

	label := Label{Num: num}
	switch rest := digits[end:]; len(rest) {
	case 0:
	case 1:
		c := rest[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return Label{}, fmt.Errorf("Could not parse residue label '%s': "+
				"%w", s, ErrMalformed)
		}
		label.Insertion = c
	default:
		return Label{}, fmt.Errorf("Could not parse residue label '%s': %w",
			s, ErrMalformed)
	}
	return label, nil
}

// Numeric parses the label given and returns its sortable numeric value.
func Numeric(s string) (float64, error) {
	label, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return label.Numeric(), nil
}

// Numeric returns the residue number plus the offset of the insertion code,
// so that "11" is 11, "11A" is 11.01 and "11B" is 11.02.
func (l Label) Numeric() float64 {
	if l.Insertion == 0 {
		return float64(l.Num)
	}
	return float64(l.Num) + insertionOffsets[l.Insertion-'A']
}

// Less reports whether l comes before o in a chain.
func (l Label) Less(o Label) bool {
	if l.Num != o.Num {
		return l.Num < o.Num
	}
	return l.Insertion < o.Insertion
}

func (l Label) String() string {
	if l.Insertion == 0 {
		return strconv.Itoa(l.Num)
	}
	return fmt.Sprintf("%d%c", l.Num, l.Insertion)
}
