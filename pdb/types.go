package pdb

import (
	"path"

	"github.com/TuftsBCB/structure"

	"github.com/TimothyStiles/EVEscape/resnum"
)

// Entry represents the first model of a PDB file.
type Entry struct {
	Path   string
	IdCode string
	Chains []*Chain

	// Residues holds every residue of every chain in the order they were
	// read from the file.
	Residues []*Residue
}

// Chain is a single chain in a PDB entry. Its residues are in file order.
type Chain struct {
	Entry    *Entry
	Ident    byte
	Residues []*Residue
}

// Residue is a group of atoms that share a chain, residue sequence number
// and insertion code.
type Residue struct {
	Chain byte

	// Name is the residue name exactly as written in the file with
	// surrounding whitespace removed (e.g., "LYS", "HOH" or "DA").
	Name  string
	Label resnum.Label

	// Het is true when the residue came from HETATM records.
	Het bool

	// Order is the 0-based position of this residue among all residues in
	// the entry.
	Order int
	Atoms []Atom
}

// Atom is a single ATOM or HETATM record.
type Atom struct {
	Name string
	Het  bool
	structure.Coords
}

// Chain looks for the chain with identifier ident and returns it. 'nil' is
// returned if the chain could not be found.
func (e *Entry) Chain(ident byte) *Chain {
	for _, chain := range e.Chains {
		if chain.Ident == ident {
			return chain
		}
	}
	return nil
}

// Name returns the base name of the path of this PDB entry.
func (e *Entry) Name() string {
	return path.Base(e.Path)
}

// ProteinChains returns the identifiers of every chain that has at least one
// ATOM residue with a three letter name.
func (e *Entry) ProteinChains() []byte {
	idents := make([]byte, 0, len(e.Chains))
	for _, chain := range e.Chains {
		for _, r := range chain.Residues {
			if r.isAmino() {
				idents = append(idents, chain.Ident)
				break
			}
		}
	}
	return idents
}

// Ca returns the alpha-carbon atom in this residue.
// If one does not exist, nil is returned.
func (r *Residue) Ca() *structure.Coords {
	for i := range r.Atoms {
		if r.Atoms[i].Name == "CA" {
			return &r.Atoms[i].Coords
		}
	}
	return nil
}

func (r *Residue) isAmino() bool {
	return !r.Het && len(r.Name) == 3 && !waters[r.Name]
}
