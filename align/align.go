// Package align computes pairwise local alignments of protein sequences and
// turns them into position correspondence tables between the two numbering
// schemes.
package align

import (
	"math"

	"github.com/TuftsBCB/seq"
)

// Gap is the residue written to alignment columns where a sequence has no
// residue.
const Gap seq.Residue = '-'

// IsGap reports whether r is a gap character ('-' or '.').
func IsGap(r seq.Residue) bool {
	return r == '-' || r == '.'
}

// Scoring describes the affine gap penalties used with BLOSUM62. Opening a
// gap costs GapOpen for its first residue and GapExtend for every further
// residue.
type Scoring struct {
	GapOpen   float64
	GapExtend float64
}

// Blosum62 is the default scoring: BLOSUM62 with a gap open penalty of -10
// and a gap extension penalty of -0.5.
var Blosum62 = Scoring{
	GapOpen:   -10,
	GapExtend: -0.5,
}

// Alignment is a pairwise alignment of two complete sequences.
//
// A and B always have the same length and hold every residue of their
// sequence. Columns Begin up to (but not including) End make up the local
// alignment. Residues before Begin and after End are unaligned prefixes and
// suffixes, laid out against each other: prefixes are right justified and
// suffixes are left justified, with the shorter side padded with gaps.
// No column is a gap in both sequences.
type Alignment struct {
	A, B       []seq.Residue
	Score      float64
	Begin, End int
}

// Empty reports whether no local alignment with a positive score exists.
func (aln Alignment) Empty() bool {
	return len(aln.A) == 0
}

// Local aligns a and b with the Blosum62 scoring.
func Local(a, b []seq.Residue) Alignment {
	return Blosum62.Align(a, b)
}

const (
	stateMatch = iota
	stateGapB  // residue of a against a gap
	stateGapA  // gap against a residue of b
)

// Align computes the best local alignment (Smith-Waterman with affine gaps)
// of a and b.
//
// When several cells share the best score, the first one in row major order
// ends the alignment. The traceback prefers a match, then a gap in b, then a
// gap in a. If no alignment has a positive score, the empty Alignment is
// returned.
func (s Scoring) Align(a, b []seq.Residue) Alignment {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return Alignment{}
	}

	// h holds the best score of an alignment ending at (i, j). f and g hold
	// the best score of an alignment ending with a gap in b and in a.
	c := m + 1
	h := make([]float64, (n+1)*c)
	f := make([]float64, (n+1)*c)
	g := make([]float64, (n+1)*c)
	negInf := math.Inf(-1)
	for j := 0; j < c; j++ {
		f[j], g[j] = negInf, negInf
	}
	for i := 0; i <= n; i++ {
		f[i*c], g[i*c] = negInf, negInf
	}

	best, bi, bj := 0.0, 0, 0
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			k := i*c + j
			f[k] = math.Max(h[k-c]+s.GapOpen, f[k-c]+s.GapExtend)
			g[k] = math.Max(h[k-1]+s.GapOpen, g[k-1]+s.GapExtend)

			v := h[k-c-1] + float64(Blosum62Score(a[i-1], b[j-1]))
			v = math.Max(v, f[k])
			v = math.Max(v, g[k])
			h[k] = math.Max(v, 0)
			if h[k] > best {
				best, bi, bj = h[k], i, j
			}
		}
	}
	if best <= 0 {
		return Alignment{}
	}

	var coreA, coreB []seq.Residue
	i, j, state := bi, bj, stateMatch
TRACE:
	for i > 0 && j > 0 {
		k := i*c + j
		switch state {
		case stateMatch:
			switch {
			case h[k] == 0:
				break TRACE
			case h[k] == h[k-c-1]+float64(Blosum62Score(a[i-1], b[j-1])):
				coreA = append(coreA, a[i-1])
				coreB = append(coreB, b[j-1])
				i, j = i-1, j-1
			case h[k] == f[k]:
				state = stateGapB
			default:
				state = stateGapA
			}
		case stateGapB:
			coreA = append(coreA, a[i-1])
			coreB = append(coreB, Gap)
			if f[k] == h[k-c]+s.GapOpen {
				state = stateMatch
			}
			i--
		case stateGapA:
			coreA = append(coreA, Gap)
			coreB = append(coreB, b[j-1])
			if g[k] == h[k-1]+s.GapOpen {
				state = stateMatch
			}
			j--
		}
	}
	reverse(coreA)
	reverse(coreB)

	pre := imax(i, j)
	suf := imax(n-bi, m-bj)
	aln := Alignment{
		A:     make([]seq.Residue, 0, pre+len(coreA)+suf),
		B:     make([]seq.Residue, 0, pre+len(coreB)+suf),
		Score: best,
		Begin: pre,
		End:   pre + len(coreA),
	}
	aln.A = append(gaps(aln.A, pre-i), a[:i]...)
	aln.B = append(gaps(aln.B, pre-j), b[:j]...)
	aln.A = append(aln.A, coreA...)
	aln.B = append(aln.B, coreB...)
	aln.A = gaps(append(aln.A, a[bi:]...), suf-(n-bi))
	aln.B = gaps(append(aln.B, b[bj:]...), suf-(m-bj))
	return aln
}

func gaps(rs []seq.Residue, n int) []seq.Residue {
	for ; n > 0; n-- {
		rs = append(rs, Gap)
	}
	return rs
}

func reverse(rs []seq.Residue) {
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
