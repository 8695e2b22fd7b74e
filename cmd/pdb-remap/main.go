// Command pdb-remap maps the residue numbering of chains in a PDB file onto
// the numbering of a target sequence, and writes the correspondence as a
// tab separated table.
//
// With -dssp, the residues of a DSSP file are mapped instead, so that
// secondary structure and accessibility can be read in target numbering.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/TuftsBCB/seq"

	"github.com/TimothyStiles/EVEscape/align"
	"github.com/TimothyStiles/EVEscape/dssp"
	"github.com/TimothyStiles/EVEscape/fasta"
	"github.com/TimothyStiles/EVEscape/pdb"
	"github.com/TimothyStiles/EVEscape/remap"
)

var (
	flagChains = ""
	flagDSSP   = ""
	flagAln    = ""
)

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}
	structPath, targetPath := flag.Arg(0), flag.Arg(1)

	entry, err := pdb.ReadPDB(structPath)
	if err != nil {
		fatalf("Could not read PDB file '%s': %s", structPath, err)
	}
	target, err := fasta.ReadFirst(targetPath)
	if err != nil {
		fatalf("Could not read target sequence: %s", err)
	}
	target = seq.NewSequenceString(target.Name,
		strings.ToUpper(string(target.Residues)))

	chains := []byte(flagChains)
	if len(chains) == 0 {
		chains = entry.ProteinChains()
	}
	if len(chains) == 0 {
		fatalf("Could not find any protein chains in '%s'.", structPath)
	}

	if len(flagAln) > 0 {
		if err := writeAlignments(entry, chains, target); err != nil {
			fatalf("Could not write alignments to '%s': %s", flagAln, err)
		}
	}

	rows, err := remap.AllChains(entry, chains, target.Residues)
	if err != nil {
		fatalf("Could not remap '%s': %s", structPath, err)
	}
	if len(rows) == 0 {
		log.Printf("No residue of chains '%s' aligned to '%s'.",
			chains, target.Name)
	}

	w := csv.NewWriter(os.Stdout)
	w.Comma = '\t'
	if len(flagDSSP) > 0 {
		mapped := remapDSSP(entry, chains, rows)
		err = writeAnnotations(w, mapped)
	} else {
		err = writeRows(w, rows)
	}
	if err == nil {
		w.Flush()
		err = w.Error()
	}
	if err != nil {
		fatalf("Could not write table: %s", err)
	}
}

func remapDSSP(entry *pdb.Entry, chains []byte, rows []remap.Row) []remap.Mapped {
	residues, err := dssp.ReadFile(flagDSSP)
	if err != nil {
		fatalf("%s", err)
	}
	annotations := make([]remap.Site, len(residues))
	for i := range residues {
		annotations[i] = residues[i]
	}
	warnCounts(entry, chains, annotations)

	mapped, err := remap.Annotations(annotations, chains, rows)
	if err != nil {
		fatalf("Could not remap '%s': %s", flagDSSP, err)
	}
	return mapped
}

// warnCounts logs every chain whose DSSP residues and structure residues
// differ in number, since their ranks no longer line up.
func warnCounts(entry *pdb.Entry, chains []byte, annotations []remap.Site) {
	sites, err := entry.Sites(chains)
	if err != nil {
		fatalf("%s", err)
	}
	for _, m := range remap.CountMismatches(annotations, sites) {
		log.Printf("WARNING: Chain %c has %d residues in '%s' but %d in "+
			"'%s'. Annotations after the first difference may be "+
			"unmapped or misplaced.",
			m.Chain, m.Annotations, flagDSSP, m.Structure, entry.Path)
	}
}

func writeRows(w *csv.Writer, rows []remap.Row) error {
	err := w.Write([]string{
		"chain", "pdb_position", "pdb_i", "pdb_res", "target_i", "target_res",
		"x", "y", "z",
	})
	if err != nil {
		return err
	}
	for _, r := range rows {
		x, y, z := "", "", ""
		if r.Ca != nil {
			x, y, z = coord(r.Ca.X), coord(r.Ca.Y), coord(r.Ca.Z)
		}
		err := w.Write([]string{
			str(r.Chain),
			r.Label.String(),
			strconv.Itoa(r.Index),
			str(byte(r.Residue)),
			strconv.Itoa(r.Target),
			str(byte(r.TargetResidue)),
			x, y, z,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeAnnotations(w *csv.Writer, mapped []remap.Mapped) error {
	err := w.Write([]string{
		"chain", "pdb_position", "pdb_res", "ss", "acc", "rsa", "i", "wt",
	})
	if err != nil {
		return err
	}
	for _, m := range mapped {
		r := m.Site.(dssp.Residue)
		rsa := ""
		if rel, ok := r.RelativeAccessibility(); ok {
			rsa = strconv.FormatFloat(rel, 'f', 3, 64)
		}
		i, wt := "", ""
		if m.Mapped {
			i, wt = strconv.Itoa(m.Target), str(byte(m.TargetResidue))
		}
		err := w.Write([]string{
			str(r.Chain),
			r.Label.String(),
			str(byte(r.AA)),
			str(r.Structure),
			strconv.FormatFloat(r.Accessibility, 'f', -1, 64),
			rsa,
			i,
			wt,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// writeAlignments writes the pairwise alignment of each chain against the
// target to its own aligned FASTA file in the -aln directory.
func writeAlignments(entry *pdb.Entry, chains []byte, target seq.Sequence) error {
	if err := os.MkdirAll(flagAln, 0777); err != nil {
		return err
	}
	for _, c := range chains {
		sites, err := entry.Sites([]byte{c})
		if err != nil {
			return err
		}
		aln := align.Local(pdb.Sequence(sites), target.Residues)
		if aln.Empty() {
			log.Printf("Chain %c does not align to '%s'.", c, target.Name)
			continue
		}

		chainName := fmt.Sprintf("%s%c", strings.ToLower(entry.IdCode), c)
		err = writeAlignment(
			filepath.Join(flagAln, chainName+".aln.fasta"),
			seq.Sequence{
				Name:     fmt.Sprintf("%s score=%.1f", chainName, aln.Score),
				Residues: aln.A,
			},
			seq.Sequence{Name: target.Name, Residues: aln.B})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeAlignment(fp string, a, b seq.Sequence) error {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := fasta.NewAlignedWriter(f).WriteAll([]seq.Sequence{a, b}); err != nil {
		return err
	}
	return f.Close()
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func str(c byte) string {
	return string([]byte{c})
}

func fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

func init() {
	log.SetFlags(0)

	flag.StringVar(&flagChains, "chains", flagChains,
		"One or more chain identifiers to remap. By default, every chain "+
			"with amino acids is used.")
	flag.StringVar(&flagDSSP, "dssp", flagDSSP,
		"When set, the residues of this DSSP file are remapped and written "+
			"with their secondary structure and accessibility.")
	flag.StringVar(&flagAln, "aln", flagAln,
		"When set, the pairwise alignment of each chain against the target "+
			"is written to an aligned FASTA file in this directory.")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage: %s [flags] pdb-file target-fasta-file\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(1)
}
