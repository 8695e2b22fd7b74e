package pdb

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TimothyStiles/EVEscape/resnum"
)

// Two models. Chain A has a hole in its numbering, an insertion code, a
// ligand and a water. Chain C is DNA and chain D has a residue without a
// one letter code.
var testPDB = `HEADER    TRANSFERASE                             01-JAN-00   1ABC
MODEL        1
ATOM      1  N   MET A   1       1.000   2.000   3.000  1.00 20.00           N
ATOM      2  CA  MET A   1       1.500   2.500  -3.500  1.00 20.00           C
ATOM      3  N   LYS A   2       2.000   2.000   3.000  1.00 20.00           N
ATOM      4  CA  LYS A   2       3.000   2.500  -3.500  1.00 20.00           C
ATOM      5  N   VAL A   4       4.000   2.000   3.000  1.00 20.00           N
ATOM      6  CA  VAL A   4       6.000   2.500  -3.500  1.00 20.00           C
ATOM      7  N   LEU A   4A      4.000   2.000   3.000  1.00 20.00           N
ATOM      8  CA  LEU A   4A      6.000   2.500  -3.500  1.00 20.00           C
HETATM    9  S   SO4 A 201       9.000   9.000   9.000  1.00 20.00           S
HETATM   10  O   HOH A 301       8.000   8.000   8.000  1.00 20.00           O
ATOM     11  CA  GLY B  -1       0.000   0.000  -1.000  1.00 20.00           C
ATOM     12  CA  ALA B   0       0.000   0.000   0.000  1.00 20.00           C
ATOM     13  CA  SER B   1       0.000   0.000   1.000  1.00 20.00           C
ATOM     14  P    DA C   1       1.000   1.000   1.000  1.00 20.00           P
ATOM     15  P    DC C   2       1.000   1.000   1.000  1.00 20.00           P
ATOM     16  CA  XYZ D   7       1.000   1.000   1.000  1.00 20.00           C
ENDMDL
MODEL        2
ATOM     17  CA  TRP A   5       0.000   0.000   0.000  1.00 20.00           C
ATOM     18  CA  CYS E   1       0.000   0.000   0.000  1.00 20.00           C
ENDMDL
END
`

func readTestPDB(t *testing.T) *Entry {
	entry, err := Read(strings.NewReader(testPDB), "test.pdb")
	if err != nil {
		t.Fatalf("%s", err)
	}
	return entry
}

func TestRead(t *testing.T) {
	entry := readTestPDB(t)
	if entry.IdCode != "1ABC" {
		t.Fatalf("Expected id code '1ABC' but got '%s'.", entry.IdCode)
	}

	var idents []byte
	for _, chain := range entry.Chains {
		idents = append(idents, chain.Ident)
	}
	if string(idents) != "ABCD" {
		t.Fatalf("Expected chains 'ABCD' (first model only) but got '%s'.",
			idents)
	}
	if len(entry.Residues) != 12 {
		t.Fatalf("Expected 12 residues but got %d.", len(entry.Residues))
	}
	for i, r := range entry.Residues {
		if r.Order != i {
			t.Fatalf("Residue %d has order %d.", i, r.Order)
		}
	}
	if got := string(entry.ProteinChains()); got != "ABD" {
		t.Fatalf("Expected protein chains 'ABD' but got '%s'.", got)
	}

	chainA := entry.Chain('A')
	if len(chainA.Residues) != 6 {
		t.Fatalf("Expected 6 residues in chain A but got %d.",
			len(chainA.Residues))
	}
	if !chainA.Residues[4].Het || chainA.Residues[4].Name != "SO4" {
		t.Fatalf("Expected a SO4 hetero residue but got %#v.",
			chainA.Residues[4])
	}
	if chainA.Residues[3].Label != (resnum.Label{Num: 4, Insertion: 'A'}) {
		t.Fatalf("Expected label 4A but got %s.", chainA.Residues[3].Label)
	}
}

func TestCa(t *testing.T) {
	entry := readTestPDB(t)
	first := entry.Residues[0]
	ca := first.Ca()
	if ca == nil {
		t.Fatalf("Expected an alpha carbon in %s.", first.Name)
	}
	if ca.X != 1.5 || ca.Y != 2.5 || ca.Z != -3.5 {
		t.Fatalf("Unexpected alpha carbon coordinates %v.", *ca)
	}
	if len(first.Atoms) != 2 || first.Atoms[0].Name != "N" {
		t.Fatalf("Unexpected atoms %v.", first.Atoms)
	}
	if entry.Chain('A').Residues[4].Ca() != nil {
		t.Fatalf("A ligand should not have an alpha carbon.")
	}
}

func TestSites(t *testing.T) {
	entry := readTestPDB(t)
	sites, err := entry.Sites([]byte("AB"))
	if err != nil {
		t.Fatalf("%s", err)
	}

	type want struct {
		chain byte
		label string
		res   byte
		index int
	}
	wants := []want{
		{'A', "1", 'M', 1},
		{'A', "2", 'K', 2},
		{'A', "4", 'V', 3},
		{'A', "4A", 'L', 4},
		{'B', "-1", 'G', 1},
		{'B', "0", 'A', 2},
		{'B', "1", 'S', 3},
	}
	if len(sites) != len(wants) {
		t.Fatalf("Expected %d sites but got %d.", len(wants), len(sites))
	}
	for i, w := range wants {
		s := sites[i]
		if s.Chain != w.chain || s.Label.String() != w.label ||
			byte(s.Residue) != w.res || s.Index != w.index {
			t.Fatalf("Site %d: expected %c %s %c %d but got %c %s %c %d.",
				i, w.chain, w.label, w.res, w.index,
				s.Chain, s.Label, s.Residue, s.Index)
		}
	}
	if ca := sites[0].Ca; ca == nil || ca.X != 1.5 || ca.Z != -3.5 {
		t.Fatalf("Expected the first site to carry its alpha carbon, got %v.",
			ca)
	}
	if got := string(Sequence(sites[:4])); got != "MKVL" {
		t.Fatalf("Expected sequence 'MKVL' but got '%s'.", got)
	}
}

func TestSitesChainOrder(t *testing.T) {
	entry := readTestPDB(t)
	sites, err := entry.Sites([]byte("BAZB"))
	if err != nil {
		t.Fatalf("%s", err)
	}
	if len(sites) != 7 {
		t.Fatalf("Expected 7 sites but got %d.", len(sites))
	}
	if sites[0].Chain != 'B' || sites[3].Chain != 'A' {
		t.Fatalf("Expected chain B before chain A.")
	}
	if sites[3].Index != 1 || sites[6].Index != 4 {
		t.Fatalf("Indices of chain A should start at 1 and be contiguous.")
	}
}

func TestSitesSkipsNucleotides(t *testing.T) {
	entry := readTestPDB(t)
	sites, err := entry.Sites([]byte("C"))
	if err != nil {
		t.Fatalf("%s", err)
	}
	if len(sites) != 0 {
		t.Fatalf("Expected no sites for a DNA chain but got %d.", len(sites))
	}
}

func TestSitesUnknownResidue(t *testing.T) {
	entry := readTestPDB(t)
	_, err := entry.Sites([]byte("AD"))
	var unknown *UnknownResidueError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected an UnknownResidueError but got %v.", err)
	}
	if unknown.Name != "XYZ" || unknown.Chain != 'D' || unknown.Label.Num != 7 {
		t.Fatalf("Unexpected error contents: %#v", unknown)
	}
}

func TestReadPDB(t *testing.T) {
	dir := t.TempDir()

	buf := new(bytes.Buffer)
	gz := gzip.NewWriter(buf)
	if _, err := gz.Write([]byte(testPDB)); err != nil {
		t.Fatalf("%s", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("%s", err)
	}
	gzPath := filepath.Join(dir, "test.pdb.gz")
	if err := os.WriteFile(gzPath, buf.Bytes(), 0666); err != nil {
		t.Fatalf("%s", err)
	}
	sites, err := ExtractFile(gzPath, []byte("A"))
	if err != nil {
		t.Fatalf("%s", err)
	}
	if len(sites) != 4 {
		t.Fatalf("Expected 4 sites but got %d.", len(sites))
	}

	// Without a HEADER record, the id code comes from the file name.
	noHeader := testPDB[strings.Index(testPDB, "\n")+1:]
	plainPath := filepath.Join(dir, "pdb2xyz.ent")
	if err := os.WriteFile(plainPath, []byte(noHeader), 0666); err != nil {
		t.Fatalf("%s", err)
	}
	entry, err := ReadPDB(plainPath)
	if err != nil {
		t.Fatalf("%s", err)
	}
	if entry.IdCode != "2xyz" {
		t.Fatalf("Expected id code '2xyz' but got '%s'.", entry.IdCode)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name, input string
	}{
		{"empty", ""},
		{"no atoms", "HEADER    NOTHING\nEND\n"},
		{"bad coordinate",
			"ATOM      1  CA  MET A   1       1.000   x.000   3.000\n"},
		{"bad number",
			"ATOM      1  CA  MET A   x       1.000   2.000   3.000\n"},
	}
	for _, test := range tests {
		if _, err := Read(strings.NewReader(test.input), "bad.pdb"); err == nil {
			t.Fatalf("%s: expected an error", test.name)
		}
	}
}
