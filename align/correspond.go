package align

import (
	"fmt"

	"github.com/TuftsBCB/seq"
)

// Position is one side of an alignment column. Index is the position of
// Residue in its own sequence numbering and is only meaningful when the
// column is not a gap on this side.
type Position struct {
	Index   int
	Residue seq.Residue
}

// Defined reports whether the position holds a residue.
func (p Position) Defined() bool {
	return !IsGap(p.Residue)
}

// Column is a single column of a correspondence table.
type Column struct {
	A, B Position
}

// Correspond walks two aligned sequences column by column and assigns each
// non-gap residue its index in the original sequence. Sequence a is numbered
// from aStart and must end at aEnd; b likewise with bStart and bEnd.
//
// An error is returned if the aligned sequences differ in length, if a column
// is a gap in both sequences, or if the final indices do not match aEnd and
// bEnd.
func Correspond(
	a []seq.Residue, aStart, aEnd int,
	b []seq.Residue, bStart, bEnd int,
) ([]Column, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("Aligned sequences have different lengths "+
			"(%d != %d).", len(a), len(b))
	}

	cols := make([]Column, len(a))
	ai, bi := aStart, bStart
	for k := range a {
		col := Column{
			A: Position{Residue: a[k]},
			B: Position{Residue: b[k]},
		}
		if col.A.Defined() {
			col.A.Index = ai
			ai++
		}
		if col.B.Defined() {
			col.B.Index = bi
			bi++
		}
		if !col.A.Defined() && !col.B.Defined() {
			return nil, fmt.Errorf("Column %d of the alignment is a gap in "+
				"both sequences.", k)
		}
		cols[k] = col
	}
	if ai-1 != aEnd {
		return nil, fmt.Errorf("First aligned sequence ends at %d, but "+
			"expected %d.", ai-1, aEnd)
	}
	if bi-1 != bEnd {
		return nil, fmt.Errorf("Second aligned sequence ends at %d, but "+
			"expected %d.", bi-1, bEnd)
	}
	return cols, nil
}
