// Package mutate enumerates every single point substitution of a protein
// sequence.
package mutate

import (
	"fmt"

	"github.com/TuftsBCB/seq"

	"github.com/TimothyStiles/EVEscape/fasta"
)

// Alphabet is the twenty standard amino acids.
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// Mutation is a substitution at a 1-based position of a sequence.
type Mutation struct {
	Pos      int
	WildType seq.Residue
	Mutant   seq.Residue
}

// String returns the mutation in the usual shorthand, e.g., "M1A".
func (m Mutation) String() string {
	return fmt.Sprintf("%c%d%c", m.WildType, m.Pos, m.Mutant)
}

// Enumerate returns every substitution of every residue in s by a letter
// of alphabet. The alphabet is upper-cased and letters after the first
// occurrence of a duplicate are ignored. Mutations are ordered by position
// and then by the order of the alphabet. A letter equal to the (upper-cased)
// wild type is never a mutation.
func Enumerate(s []seq.Residue, alphabet string) []Mutation {
	letters := normalize(alphabet)
	muts := make([]Mutation, 0, len(s)*len(letters))
	for i, r := range s {
		wt := upper(r)
		for _, mut := range letters {
			if mut == wt {
				continue
			}
			muts = append(muts, Mutation{
				Pos:      i + 1,
				WildType: wt,
				Mutant:   mut,
			})
		}
	}
	return muts
}

// EnumerateFile enumerates the mutations of the first sequence in a FASTA
// file.
func EnumerateFile(fp string, alphabet string) ([]Mutation, error) {
	s, err := fasta.ReadFirst(fp)
	if err != nil {
		return nil, err
	}
	return Enumerate(s.Residues, alphabet), nil
}

func normalize(alphabet string) []seq.Residue {
	var seen [256]bool
	letters := make([]seq.Residue, 0, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		r := upper(seq.Residue(alphabet[i]))
		if seen[r] {
			continue
		}
		seen[r] = true
		letters = append(letters, r)
	}
	return letters
}

func upper(r seq.Residue) seq.Residue {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
