package pdb

import (
	"github.com/TuftsBCB/seq"
	"github.com/TuftsBCB/structure"

	"github.com/TimothyStiles/EVEscape/resnum"
)

// Site is an amino acid residue of a chain, ready to be aligned.
type Site struct {
	Chain   byte
	Label   resnum.Label
	Residue seq.Residue

	// Order is the residue's position among all residues of the entry.
	Order int

	// Index is the 1-based rank of the residue within its chain. Unlike the
	// label, it has no holes where density is missing.
	Index int

	// Ca is the position of the residue's alpha-carbon, or nil if it has
	// none.
	Ca *structure.Coords
}

// Sites returns the amino acid residues of the chains given. Sites are
// grouped by chain in the order requested, and ordered by their position in
// the file within each chain. Chains that do not exist contribute nothing,
// and a chain requested twice is only extracted once.
//
// Residues from HETATM records, waters, and residues whose names are not
// three letters long (nucleotides) are skipped. A remaining residue without
// a one letter code results in an *UnknownResidueError.
func (e *Entry) Sites(chains []byte) ([]Site, error) {
	sites := make([]Site, 0, len(e.Residues))
	seen := make(map[byte]bool, len(chains))
	for _, ident := range chains {
		if seen[ident] {
			continue
		}
		seen[ident] = true

		chain := e.Chain(ident)
		if chain == nil {
			continue
		}
		index := 0
		for _, r := range chain.Residues {
			if !r.isAmino() {
				continue
			}
			one, ok := OneLetter(r.Name)
			if !ok {
				return nil, &UnknownResidueError{
					Name:  r.Name,
					Chain: r.Chain,
					Label: r.Label,
				}
			}
			index++
			sites = append(sites, Site{
				Chain:   r.Chain,
				Label:   r.Label,
				Residue: one,
				Order:   r.Order,
				Index:   index,
				Ca:      r.Ca(),
			})
		}
	}
	return sites, nil
}

func (s Site) ChainIdent() byte       { return s.Chain }
func (s Site) Position() resnum.Label { return s.Label }
func (s Site) WildType() seq.Residue  { return s.Residue }

// Sequence returns the one letter residues of the sites given, in order.
func Sequence(sites []Site) []seq.Residue {
	rs := make([]seq.Residue, len(sites))
	for i, s := range sites {
		rs[i] = s.Residue
	}
	return rs
}

// ExtractFile reads the PDB file at fp and returns the sites of the chains
// given.
func ExtractFile(fp string, chains []byte) ([]Site, error) {
	entry, err := ReadPDB(fp)
	if err != nil {
		return nil, err
	}
	return entry.Sites(chains)
}
