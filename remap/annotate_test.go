package remap

import (
	"errors"
	"testing"

	"github.com/TuftsBCB/seq"

	"github.com/TimothyStiles/EVEscape/resnum"
)

type testSite struct {
	chain byte
	label resnum.Label
	wt    seq.Residue
	acc   float64
}

func (s testSite) ChainIdent() byte       { return s.chain }
func (s testSite) Position() resnum.Label { return s.label }
func (s testSite) WildType() seq.Residue  { return s.wt }

func TestAnnotations(t *testing.T) {
	// Structure A has no density for V, so its correspondence skips it.
	entry := testEntry(t,
		testResidue{'A', "MET", 1, 0},
		testResidue{'A', "LYS", 2, 0},
		testResidue{'A', "LEU", 4, 0},
	)
	rows, err := AllChains(entry, []byte("A"), residues("MKVL"))
	if err != nil {
		t.Fatalf("%s", err)
	}

	// Annotations from a structure that did resolve V.
	sites := []Site{
		testSite{'A', resnum.Label{Num: 1}, 'M', 0.5},
		testSite{'B', resnum.Label{Num: 1}, 'M', 0.1},
		testSite{'A', resnum.Label{Num: 2}, 'k', 0.4},
		testSite{'A', resnum.Label{Num: 3}, 'V', 0.3},
		testSite{'A', resnum.Label{Num: 4}, 'L', 0.2},
	}
	mapped, err := Annotations(sites, []byte("A"), rows)
	if err != nil {
		t.Fatalf("%s", err)
	}
	if len(mapped) != 4 {
		t.Fatalf("Expected 4 annotations but got %d.", len(mapped))
	}

	wants := []struct {
		index, target int
		ok            bool
	}{
		{1, 1, true},
		{2, 2, true},
		{3, 0, false},
		{4, 0, false},
	}
	for i, w := range wants {
		m := mapped[i]
		if m.Index != w.index || m.Target != w.target || m.Mapped != w.ok {
			t.Fatalf("Annotation %d: expected (%d, %d, %v) but got "+
				"(%d, %d, %v).", i, w.index, w.target, w.ok,
				m.Index, m.Target, m.Mapped)
		}
		if c := m.Site.ChainIdent(); c != 'A' {
			t.Fatalf("Annotation %d is from chain %c.", i, c)
		}
	}
	if mapped[1].TargetResidue != 'K' || mapped[3].TargetResidue != 0 {
		t.Fatalf("Unexpected target residues %c and %c.",
			mapped[1].TargetResidue, mapped[3].TargetResidue)
	}
	if s := mapped[2].Site.(testSite); s.acc != 0.3 || s.label.Num != 3 {
		t.Fatalf("The annotation's own fields must be kept.")
	}
}

func TestAnnotationsAllChains(t *testing.T) {
	sites := []Site{
		testSite{'A', resnum.Label{Num: 1}, 'M', 0},
		testSite{'B', resnum.Label{Num: 9}, 'K', 0},
		testSite{'B', resnum.Label{Num: 10}, 'V', 0},
	}
	rows := []Row{
		{Chain: 'B', Index: 2, Residue: 'V', Target: 3, TargetResidue: 'V'},
	}
	mapped, err := Annotations(sites, nil, rows)
	if err != nil {
		t.Fatalf("%s", err)
	}
	if len(mapped) != 3 {
		t.Fatalf("Expected every chain to be kept, but got %d annotations.",
			len(mapped))
	}
	if mapped[2].Index != 2 || !mapped[2].Mapped || mapped[2].Target != 3 {
		t.Fatalf("Expected the second residue of chain B to map to 3.")
	}
	if mapped[0].Mapped || mapped[1].Mapped {
		t.Fatalf("Only one annotation should be mapped.")
	}
}

func TestAnnotationsAmbiguous(t *testing.T) {
	sites := []Site{testSite{'A', resnum.Label{Num: 1}, 'M', 0}}
	rows := []Row{
		{Chain: 'A', Index: 1, Residue: 'M', Target: 1, TargetResidue: 'M'},
		{Chain: 'A', Index: 1, Residue: 'M', Target: 2, TargetResidue: 'K'},
	}
	if _, err := Annotations(sites, []byte("A"), rows); !errors.Is(err, ErrAmbiguousKey) {
		t.Fatalf("Expected ErrAmbiguousKey but got %v.", err)
	}
}

func TestCountMismatches(t *testing.T) {
	// Chain A has a HETATM MSE that only the annotations list.
	entry := testEntry(t,
		testResidue{'A', "MET", 1, 0},
		testResidue{'A', "MSE", 2, 0},
		testResidue{'A', "LYS", 3, 0},
		testResidue{'B', "GLY", 1, 0},
	)
	entry.Chains[0].Residues[1].Het = true
	structure, err := entry.Sites([]byte("AB"))
	if err != nil {
		t.Fatalf("%s", err)
	}
	sites := []Site{
		testSite{'A', resnum.Label{Num: 1}, 'M', 0},
		testSite{'A', resnum.Label{Num: 2}, 'M', 0},
		testSite{'A', resnum.Label{Num: 3}, 'K', 0},
		testSite{'B', resnum.Label{Num: 1}, 'G', 0},
		testSite{'C', resnum.Label{Num: 1}, 'A', 0},
	}

	got := CountMismatches(sites, structure)
	want := CountMismatch{Chain: 'A', Annotations: 3, Structure: 2}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("Expected %v but got %v.", []CountMismatch{want}, got)
	}
	if got := CountMismatches(sites[3:4], structure[2:]); len(got) != 0 {
		t.Fatalf("Expected no mismatches but got %v.", got)
	}
}
