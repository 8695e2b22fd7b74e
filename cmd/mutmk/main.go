// Command mutmk writes every single point substitution of the first sequence
// in a FASTA file as a tab separated table with columns i, wt and mut.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strconv"

	"github.com/TimothyStiles/EVEscape/mutate"
)

var flagAlphabet = mutate.Alphabet

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	muts, err := mutate.EnumerateFile(flag.Arg(0), flagAlphabet)
	if err != nil {
		fatalf("Could not read sequence: %s", err)
	}

	w := csv.NewWriter(os.Stdout)
	w.Comma = '\t'
	w.Write([]string{"i", "wt", "mut"})
	for _, m := range muts {
		w.Write([]string{
			strconv.Itoa(m.Pos),
			string([]byte{byte(m.WildType)}),
			string([]byte{byte(m.Mutant)}),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fatalf("Could not write table: %s", err)
	}
}

func fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

func init() {
	log.SetFlags(0)

	flag.StringVar(&flagAlphabet, "alphabet", flagAlphabet,
		"The residues to substitute at every position. Case is ignored.")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage: %s [flags] fasta-file\n", path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(1)
}
