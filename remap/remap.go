// Package remap translates the residue numbering of structure chains onto
// the numbering of a target sequence, and carries per-residue structural
// annotations along with it.
//
// Structure residues are identified by their chain, their 1-based rank in
// the chain (Index) and their one letter code. Ranks are used instead of the
// structure's own labels because labels can skip numbers where density is
// missing and can carry insertion codes.
package remap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/TuftsBCB/seq"
	"github.com/TuftsBCB/structure"

	"github.com/TimothyStiles/EVEscape/align"
	"github.com/TimothyStiles/EVEscape/fasta"
	"github.com/TimothyStiles/EVEscape/pdb"
	"github.com/TimothyStiles/EVEscape/resnum"
)

var (
	// ErrAmbiguousKey is returned when two rows share a join key.
	ErrAmbiguousKey = errors.New("ambiguous join key")

	// ErrUnmatched is returned when a correspondence row does not match any
	// structure residue.
	ErrUnmatched = errors.New("no structure residue for correspondence row")
)

// Row maps one structure residue onto one target residue.
type Row struct {
	Chain         byte
	Index         int
	Residue       seq.Residue
	Target        int
	TargetResidue seq.Residue

	// Label is the structure's own position label and Ca the position of
	// its alpha-carbon (nil when the residue has none). Both are only set
	// by AllChains.
	Label resnum.Label
	Ca    *structure.Coords
}

// ChainToTarget aligns the ungapped residues of a chain (in Index order)
// against the target sequence and returns a row for every alignment column
// where both sequences have a residue. Indices are 1-based. The Chain and
// Label of the rows are left zero.
//
// If the chain and the target share no positively scoring local alignment,
// no rows are returned.
func ChainToTarget(chain, target []seq.Residue) ([]Row, error) {
	aln := align.Local(chain, target)
	if aln.Empty() {
		return nil, nil
	}
	cols, err := align.Correspond(aln.A, 1, len(chain), aln.B, 1, len(target))
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(cols))
	for _, col := range cols {
		if !col.A.Defined() || !col.B.Defined() {
			continue
		}
		rows = append(rows, Row{
			Index:         col.A.Index,
			Residue:       col.A.Residue,
			Target:        col.B.Index,
			TargetResidue: col.B.Residue,
		})
	}
	return rows, nil
}

// AllChains maps every requested chain of the entry onto the target and
// concatenates the rows in chain order. Every row is then matched back to
// its structure residue on (chain, index, residue) to fill in its Label and
// Ca.
func AllChains(
	entry *pdb.Entry,
	chains []byte,
	target []seq.Residue,
) ([]Row, error) {
	sites, err := entry.Sites(chains)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(sites))
	for _, group := range groupChains(sites) {
		chainRows, err := ChainToTarget(pdb.Sequence(group), target)
		if err != nil {
			return nil, fmt.Errorf("Could not map chain %c of '%s': %s",
				group[0].Chain, entry.Path, err)
		}
		for i := range chainRows {
			chainRows[i].Chain = group[0].Chain
		}
		rows = append(rows, chainRows...)
	}
	if err := joinSites(rows, sites); err != nil {
		return nil, err
	}
	return rows, nil
}

// AllChainsFile reads a PDB file and uses the first record of a FASTA file
// as the target sequence. Target residues are upper-cased. When chains is
// empty, every protein chain of the structure is mapped.
func AllChainsFile(structPath string, chains []byte, targetPath string) (
	[]Row, error,
) {
	entry, err := pdb.ReadPDB(structPath)
	if err != nil {
		return nil, err
	}
	target, err := fasta.ReadFirst(targetPath)
	if err != nil {
		return nil, err
	}
	if len(chains) == 0 {
		chains = entry.ProteinChains()
	}
	return AllChains(entry, chains, upper(target.Residues))
}

type siteKey struct {
	chain   byte
	index   int
	residue seq.Residue
}

func joinSites(rows []Row, sites []pdb.Site) error {
	byKey := make(map[siteKey]pdb.Site, len(sites))
	for _, s := range sites {
		key := siteKey{s.Chain, s.Index, s.Residue}
		if _, ok := byKey[key]; ok {
			return fmt.Errorf("Residue %c%d in chain %c: %w",
				s.Residue, s.Index, s.Chain, ErrAmbiguousKey)
		}
		byKey[key] = s
	}
	for i := range rows {
		r := &rows[i]
		s, ok := byKey[siteKey{r.Chain, r.Index, r.Residue}]
		if !ok {
			return fmt.Errorf("Residue %c%d in chain %c: %w",
				r.Residue, r.Index, r.Chain, ErrUnmatched)
		}
		r.Label, r.Ca = s.Label, s.Ca
	}
	return nil
}

// groupChains splits sites into runs of the same chain. Sites must already
// be grouped by chain.
func groupChains(sites []pdb.Site) [][]pdb.Site {
	var groups [][]pdb.Site
	start := 0
	for i := 1; i <= len(sites); i++ {
		if i == len(sites) || sites[i].Chain != sites[start].Chain {
			groups = append(groups, sites[start:i])
			start = i
		}
	}
	return groups
}

// SortByStructure sorts rows by chain and then by structure position label.
func SortByStructure(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Chain != rows[j].Chain {
			return rows[i].Chain < rows[j].Chain
		}
		return rows[i].Label.Less(rows[j].Label)
	})
}

func upper(rs []seq.Residue) []seq.Residue {
	up := make([]seq.Residue, len(rs))
	for i, r := range rs {
		up[i] = upperResidue(r)
	}
	return up
}
