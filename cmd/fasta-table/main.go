// Command fasta-table converts a FASTA file to a tab separated table with
// header and sequence columns, or, with -to-fasta, a table back to FASTA.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"

	"github.com/TimothyStiles/EVEscape/fasta"
)

var (
	flagToFasta   = false
	flagHeaderCol = "header"
	flagSeqCol    = "sequence"
)

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}
	in, out := flag.Arg(0), flag.Arg(1)

	var err error
	if flagToFasta {
		err = tableToFasta(in, out)
	} else {
		err = fastaToTable(in, out)
	}
	if err != nil {
		fatalf("%s", err)
	}
}

func fastaToTable(in, out string) error {
	entries, err := fasta.ReadFile(in)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	w.Write([]string{flagHeaderCol, flagSeqCol})
	for _, e := range entries {
		w.Write([]string{e.Name, string(e.Residues)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func tableToFasta(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	columns, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("The table '%s' is empty.", in)
	} else if err != nil {
		return err
	}
	headerCol, seqCol := -1, -1
	for i, name := range columns {
		switch name {
		case flagHeaderCol:
			headerCol = i
		case flagSeqCol:
			seqCol = i
		}
	}
	if headerCol == -1 || seqCol == -1 {
		return fmt.Errorf("The table '%s' must have the columns '%s' and '%s'.",
			in, flagHeaderCol, flagSeqCol)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return err
	}
	return fasta.WriteFuncFile(out, len(rows),
		func(i int) string { return rows[i][headerCol] },
		func(i int) string { return rows[i][seqCol] })
}

func fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

func init() {
	log.SetFlags(0)

	flag.BoolVar(&flagToFasta, "to-fasta", flagToFasta,
		"When set, the input is a table and the output is FASTA.")
	flag.StringVar(&flagHeaderCol, "header-col", flagHeaderCol,
		"The name of the table column holding FASTA headers.")
	flag.StringVar(&flagSeqCol, "seq-col", flagSeqCol,
		"The name of the table column holding sequences.")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage: %s [flags] in-file out-file\n", path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(1)
}
