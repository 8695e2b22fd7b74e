package remap

import (
	"fmt"

	"github.com/TuftsBCB/seq"

	"github.com/TimothyStiles/EVEscape/pdb"
	"github.com/TimothyStiles/EVEscape/resnum"
)

// Site is a per-residue structural annotation, like a DSSP line or a
// residue extracted from a PDB file.
type Site interface {
	ChainIdent() byte
	Position() resnum.Label
	WildType() seq.Residue
}

// Mapped is an annotation together with its position in the target
// sequence. When Mapped is false, Target and TargetResidue are zero.
type Mapped struct {
	Site Site

	// Index is the 1-based rank of the annotation within its chain.
	Index int

	Target        int
	TargetResidue seq.Residue
	Mapped        bool
}

type rowKey struct {
	chain byte
	index int
}

// Annotations carries a table of annotations over to the target numbering
// described by rows (usually the output of AllChains).
//
// Annotations of chains not in chains are dropped; an empty chains keeps
// every chain. The rest are ranked within their chain in input order and
// matched against rows on (chain, rank, residue). Annotations without a
// matching row are kept with Mapped set to false. Two rows with the same
// chain and index result in ErrAmbiguousKey.
func Annotations(sites []Site, chains []byte, rows []Row) ([]Mapped, error) {
	byKey := make(map[rowKey]Row, len(rows))
	for _, r := range rows {
		key := rowKey{r.Chain, r.Index}
		if _, ok := byKey[key]; ok {
			return nil, fmt.Errorf("Index %d in chain %c: %w",
				r.Index, r.Chain, ErrAmbiguousKey)
		}
		byKey[key] = r
	}

	keep := make(map[byte]bool, len(chains))
	for _, c := range chains {
		keep[c] = true
	}
	ranks := make(map[byte]int, 4)

	mapped := make([]Mapped, 0, len(sites))
	for _, s := range sites {
		chain := s.ChainIdent()
		if len(keep) > 0 && !keep[chain] {
			continue
		}
		ranks[chain]++

		m := Mapped{Site: s, Index: ranks[chain]}
		r, ok := byKey[rowKey{chain, m.Index}]
		if ok && upperResidue(r.Residue) == upperResidue(s.WildType()) {
			m.Target = r.Target
			m.TargetResidue = r.TargetResidue
			m.Mapped = true
		}
		mapped = append(mapped, m)
	}
	return mapped, nil
}

// CountMismatch is a chain whose annotations and structure residues differ
// in number. Ranks of such a chain drift apart after the first residue that
// only one side has (e.g., a HETATM MSE that DSSP lists as 'M').
type CountMismatch struct {
	Chain       byte
	Annotations int
	Structure   int
}

// CountMismatches compares the number of annotations in every chain of
// structure with the number of structure residues in it. Chains are
// reported in the order they first appear in structure.
func CountMismatches(sites []Site, structure []pdb.Site) []CountMismatch {
	counts := make(map[byte]int, 4)
	for _, s := range sites {
		counts[s.ChainIdent()]++
	}

	var chains []byte
	structCounts := make(map[byte]int, 4)
	for _, s := range structure {
		if structCounts[s.Chain] == 0 {
			chains = append(chains, s.Chain)
		}
		structCounts[s.Chain]++
	}

	var mismatches []CountMismatch
	for _, c := range chains {
		if counts[c] != structCounts[c] {
			mismatches = append(mismatches, CountMismatch{
				Chain:       c,
				Annotations: counts[c],
				Structure:   structCounts[c],
			})
		}
	}
	return mismatches
}

func upperResidue(r seq.Residue) seq.Residue {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
