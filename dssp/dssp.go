// Package dssp reads the residue table of classic DSSP output, so that
// secondary structure and solvent accessibility can be carried over to a
// target sequence with the remap package.
package dssp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/TuftsBCB/seq"

	"github.com/TimothyStiles/EVEscape/resnum"
)

// Theoretical maximum accessible surface areas in square angstroms.
// From Tien et al. (2013), PLoS ONE 8(11): e80635.
var maxAccessibility = map[seq.Residue]float64{
	'A': 129, 'R': 274, 'N': 195, 'D': 193, 'C': 167,
	'E': 223, 'Q': 225, 'G': 104, 'H': 224, 'I': 197,
	'L': 201, 'K': 236, 'M': 224, 'F': 240, 'P': 159,
	'S': 155, 'T': 172, 'W': 285, 'Y': 263, 'V': 174,
}

// Residue is a single line of the DSSP residue table.
type Residue struct {
	// Number is DSSP's own sequential residue number.
	Number int
	Chain  byte
	Label  resnum.Label

	// AA is the one letter amino acid code. Bridged cysteines, which DSSP
	// writes in lower case, are reported as 'C'.
	AA seq.Residue

	// Structure is the DSSP secondary structure code (H, B, E, G, I, T, S)
	// or '-' for none.
	Structure byte

	// Accessibility is the solvent accessible surface area in square
	// angstroms.
	Accessibility float64
}

func (r Residue) ChainIdent() byte       { return r.Chain }
func (r Residue) Position() resnum.Label { return r.Label }
func (r Residue) WildType() seq.Residue  { return r.AA }

// RelativeAccessibility returns the accessibility divided by the maximum
// accessibility of the residue type. The boolean is false for residues
// without a known maximum (e.g., 'X').
func (r Residue) RelativeAccessibility() (float64, bool) {
	max, ok := maxAccessibility[r.AA]
	if !ok {
		return 0, false
	}
	return r.Accessibility / max, true
}

// ReadFile reads the DSSP file at the path given.
func ReadFile(fp string) ([]Residue, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	residues, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("Error reading DSSP file '%s': %s", fp, err)
	}
	return residues, nil
}

// Read reads DSSP output from r and returns its residues in order. Chain
// break lines are skipped and chain ' ' is reported as '_'.
func Read(r io.Reader) ([]Residue, error) {
	breader := bufio.NewReader(r)
	residues := make([]Residue, 0, 100)
	inTable := false
	for lineNum := 1; ; lineNum++ {
		line, err := breader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(line) == 0 && err == io.EOF {
			break
		}
		line = bytes.TrimRight(line, "\r\n")

		switch {
		case !inTable:
			inTable = bytes.HasPrefix(line, []byte("  #  RESIDUE"))
		case len(bytes.TrimSpace(line)) == 0:
		case len(line) > 13 && line[13] == '!':
		default:
			residue, err := parseResidue(line)
			if err != nil {
				return nil, fmt.Errorf("Line %d: %s", lineNum, err)
			}
			residues = append(residues, residue)
		}
		if err == io.EOF {
			break
		}
	}
	if !inTable {
		return nil, fmt.Errorf("Could not find the DSSP residue table.")
	}
	return residues, nil
}

func parseResidue(line []byte) (Residue, error) {
	if len(line) < 38 {
		return Residue{}, fmt.Errorf("Residue line is too short (%d < 38).",
			len(line))
	}

	var r Residue
	var err error
	if r.Number, err = strconv.Atoi(string(bytes.TrimSpace(line[0:5]))); err != nil {
		return Residue{}, fmt.Errorf("Could not parse DSSP number: %s", err)
	}
	if r.Label, err = resnum.Parse(string(line[5:11])); err != nil {
		return Residue{}, err
	}

	r.Chain = line[11]
	if r.Chain == ' ' {
		r.Chain = '_'
	}
	r.AA = seq.Residue(line[13])
	if r.AA >= 'a' && r.AA <= 'z' {
		r.AA = 'C'
	}
	r.Structure = line[16]
	if r.Structure == ' ' {
		r.Structure = '-'
	}

	acc := string(bytes.TrimSpace(line[34:38]))
	if r.Accessibility, err = strconv.ParseFloat(acc, 64); err != nil {
		return Residue{}, fmt.Errorf("Could not parse accessibility: %s", err)
	}
	return r, nil
}
