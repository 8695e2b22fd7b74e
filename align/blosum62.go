package align

import "github.com/TuftsBCB/seq"

// The library alphabet has no stop residue. Its last row is a gap row that
// scores -4 against everything, which is also what NCBI gives '*' against
// any other residue. A stop aligned with a stop scores stopStop.
const stopStop = 1

// resTrans translates ASCII residues to indices of seq.SubstBlosum62. Lower
// case letters share the index of their upper case form, '*' shares the gap
// row and anything else not in the alphabet is scored as 'X'.
var resTrans [256]int

func init() {
	idx := seq.SubstBlosum62.Alphabet.Index()
	for i := range resTrans {
		resTrans[i] = idx['X']
	}
	for _, r := range seq.SubstBlosum62.Alphabet {
		resTrans[r] = idx[r]
		if r >= 'A' && r <= 'Z' {
			resTrans[r+('a'-'A')] = idx[r]
		}
	}
	resTrans['*'] = idx['-']
}

// Blosum62Score returns the BLOSUM62 substitution score of two residues.
func Blosum62Score(a, b seq.Residue) int {
	if a == '*' && b == '*' {
		return stopStop
	}
	return seq.SubstBlosum62.Scores[resTrans[a]][resTrans[b]]
}
