package pdb

import (
	"fmt"

	"github.com/TuftsBCB/seq"

	"github.com/TimothyStiles/EVEscape/resnum"
)

var aminoMap = map[string]seq.Residue{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
	"UNK": 'X', "ACE": 'X', "NH2": 'X',
	"ASX": 'X', "GLX": 'X',
	"MSE": 'M', "CSA": 'C', "LLP": 'K', "CSW": 'C', "STE": 'X',
}

var waters = map[string]bool{
	"HOH": true, "WAT": true, "DOD": true,
}

// OneLetter returns the one letter code of a three letter amino acid name.
// The boolean is false when the name has no known code.
func OneLetter(threeAbbrev string) (seq.Residue, bool) {
	r, ok := aminoMap[threeAbbrev]
	return r, ok
}

// UnknownResidueError is returned when an amino acid residue has a three
// letter name without a one letter code.
type UnknownResidueError struct {
	Name  string
	Chain byte
	Label resnum.Label
}

func (e *UnknownResidueError) Error() string {
	return fmt.Sprintf("Unknown residue '%s' at position %s in chain %c.",
		e.Name, e.Label, e.Chain)
}
