package mutate

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/TuftsBCB/seq"
)

func residues(s string) []seq.Residue {
	return seq.NewSequenceString("", s).Residues
}

func TestEnumerateCount(t *testing.T) {
	for _, s := range []string{"M", "MKVL", "ACDEFGHIKLMNPQRSTVWY", "mkvlAAGIV"} {
		muts := Enumerate(residues(s), Alphabet)
		if want := len(s) * (len(Alphabet) - 1); len(muts) != want {
			t.Fatalf("%s: expected %d mutations but got %d.",
				s, want, len(muts))
		}
		for _, m := range muts {
			if m.Mutant == m.WildType {
				t.Fatalf("%s: %s is not a mutation.", s, m)
			}
		}
	}
}

func TestEnumerateOrder(t *testing.T) {
	muts := Enumerate(residues("mK"), "AmK")
	var got []string
	for _, m := range muts {
		got = append(got, m.String())
	}
	want := "[M1A M1K K2A K2M]"
	if fmt.Sprint(got) != want {
		t.Fatalf("Expected %s but got %v.", want, got)
	}
}

func TestEnumerateDuplicates(t *testing.T) {
	muts := Enumerate(residues("G"), "aAcC")
	if len(muts) != 2 || muts[0].Mutant != 'A' || muts[1].Mutant != 'C' {
		t.Fatalf("Expected G1A and G1C but got %v.", muts)
	}
	if len(Enumerate(nil, Alphabet)) != 0 {
		t.Fatalf("An empty sequence has no mutations.")
	}
}

func TestEnumerateFile(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "seq.fasta")
	if err := os.WriteFile(fp, []byte(">wt\nMK\n>other\nWWW\n"), 0666); err != nil {
		t.Fatalf("%s", err)
	}
	muts, err := EnumerateFile(fp, Alphabet)
	if err != nil {
		t.Fatalf("%s", err)
	}
	if len(muts) != 2*19 {
		t.Fatalf("Expected %d mutations but got %d.", 2*19, len(muts))
	}
	if muts[0].String() != "M1A" || muts[len(muts)-1].String() != "K2Y" {
		t.Fatalf("Unexpected first and last mutations %s and %s.",
			muts[0], muts[len(muts)-1])
	}
}

func ExampleEnumerate() {
	for _, m := range Enumerate([]seq.Residue("MK"), "AKM") {
		fmt.Println(m)
	}
	// Output:
	// M1A
	// M1K
	// K2A
	// K2M
}
