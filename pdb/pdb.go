package pdb

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"

	"github.com/TimothyStiles/EVEscape/resnum"
)

type pdbParser struct {
	entry    *Entry
	line     []byte
	lineNum  int
	models   int
	residues map[residueKey]*Residue
}

type residueKey struct {
	chain byte
	label resnum.Label
}

// ReadPDB reads the PDB file at the path given. If the file name ends with
// ".gz", gzip decompression is used.
func ReadPDB(fp string) (*Entry, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fp) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return Read(reader, fp)
}

// Read parses PDB formatted text from r. The path is only used to name the
// entry and to guess its id code when there is no HEADER record.
func Read(r io.Reader, fp string) (*Entry, error) {
	entry := &Entry{
		Path:   fp,
		Chains: make([]*Chain, 0),
	}

	// Now traverse each line, and process it according to the record name.
	// The order of ATOM records is preserved, since residues are ranked by
	// the order in which they appear.
	breader := bufio.NewReaderSize(r, 1000)
	parser := pdbParser{
		entry:    entry,
		residues: make(map[residueKey]*Residue, 100),
	}
	for {
		// We ignore 'isPrefix' here, since we never care about lines longer
		// than 1000 characters, which is the size of our buffer.
		line, _, err := breader.ReadLine()
		if err == io.EOF && len(line) == 0 {
			break
		} else if err != io.EOF && err != nil {
			return nil, err
		}
		parser.line = line
		parser.lineNum++

		done, err := parser.parseLine()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}

	// If we didn't pick up any residues, this probably isn't a valid PDB file.
	if len(entry.Residues) == 0 {
		return nil, fmt.Errorf("The file '%s' does not appear to be a valid "+
			"PDB file.", entry.Path)
	}

	// If we couldn't find an Id code, inspect the base name of the file path.
	if len(entry.IdCode) == 0 {
		name := path.Base(entry.Path)
		switch {
		case len(name) >= 7 && name[0:3] == "pdb":
			entry.IdCode = name[3:7]
		case len(name) == 7: // cath
			entry.IdCode = name[0:4]
		}
	}
	return entry, nil
}

// parseLine handles a single record. It reports true once the first model
// has been read completely.
func (p *pdbParser) parseLine() (bool, error) {
	switch p.cols(1, 6) {
	case "HEADER":
		p.entry.IdCode = p.cols(63, 66)
	case "MODEL":
		p.models++
		if p.models > 1 {
			return true, nil
		}
	case "ENDMDL":
		return true, nil
	case "ATOM":
		return false, p.parseAtom(false)
	case "HETATM":
		return false, p.parseAtom(true)
	}
	return false, nil
}

func (p *pdbParser) parseAtom(het bool) error {
	num, err := p.atoi(23, 26)
	if err != nil {
		return err
	}
	label := resnum.Label{Num: num}
	if icode := p.at(27); icode >= 'A' && icode <= 'Z' {
		label.Insertion = icode
	} else if icode >= 'a' && icode <= 'z' {
		label.Insertion = icode - ('a' - 'A')
	}

	residue := p.getResidue(p.at(22), p.cols(18, 20), label, het)
	atom := Atom{
		Name: p.cols(13, 16),
		Het:  het,
	}
	if atom.X, err = p.atof(31, 38); err != nil {
		return err
	}
	if atom.Y, err = p.atof(39, 46); err != nil {
		return err
	}
	if atom.Z, err = p.atof(47, 54); err != nil {
		return err
	}
	residue.Atoms = append(residue.Atoms, atom)
	return nil
}

// getChain looks for a chain in the 'Chains' slice corresponding to the
// chain indentifier. If one doesn't exist, it is created.
func (p *pdbParser) getChain(ident byte) *Chain {
	if chain := p.entry.Chain(ident); chain != nil {
		return chain
	}
	chain := &Chain{
		Entry:    p.entry,
		Ident:    ident,
		Residues: make([]*Residue, 0, 25),
	}
	p.entry.Chains = append(p.entry.Chains, chain)
	return chain
}

// getResidue returns the residue with the chain and label given, creating
// it if this is the first atom seen for it. Alternate residue names at the
// same position are folded into the first one.
func (p *pdbParser) getResidue(
	ident byte,
	name string,
	label resnum.Label,
	het bool,
) *Residue {
	if ident == ' ' || ident == 0 {
		ident = '_'
	}
	key := residueKey{ident, label}
	if residue, ok := p.residues[key]; ok {
		return residue
	}

	chain := p.getChain(ident)
	residue := &Residue{
		Chain: ident,
		Name:  name,
		Label: label,
		Het:   het,
		Order: len(p.entry.Residues),
		Atoms: make([]Atom, 0, 8),
	}
	p.residues[key] = residue
	chain.Residues = append(chain.Residues, residue)
	p.entry.Residues = append(p.entry.Residues, residue)
	return residue
}

func (p *pdbParser) atoi(start, end int) (int, error) {
	n, err := strconv.Atoi(p.cols(start, end))
	if err != nil {
		return 0, fmt.Errorf("Could not parse integer in columns %d-%d on "+
			"line %d of '%s': %s", start, end, p.lineNum, p.entry.Path, err)
	}
	return n, nil
}

func (p *pdbParser) atof(start, end int) (float64, error) {
	f, err := strconv.ParseFloat(p.cols(start, end), 64)
	if err != nil {
		return 0, fmt.Errorf("Could not parse number in columns %d-%d on "+
			"line %d of '%s': %s", start, end, p.lineNum, p.entry.Path, err)
	}
	return f, nil
}

// cols returns the trimmed text in the 1-based, inclusive column range.
func (p *pdbParser) cols(start, end int) string {
	rs, re := start-1, end
	if rs >= len(p.line) || rs < 0 {
		return ""
	}
	if re > len(p.line) {
		re = len(p.line)
	}
	if re < rs {
		return ""
	}
	return string(bytes.TrimSpace(p.line[rs:re]))
}

func (p *pdbParser) at(column int) byte {
	i := column - 1
	if i < 0 || i >= len(p.line) {
		return 0
	}
	return p.line[i]
}
