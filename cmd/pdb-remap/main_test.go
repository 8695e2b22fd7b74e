package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/TuftsBCB/structure"

	"github.com/TimothyStiles/EVEscape/dssp"
	"github.com/TimothyStiles/EVEscape/remap"
	"github.com/TimothyStiles/EVEscape/resnum"
)

func tsvWriter(buf *bytes.Buffer) *csv.Writer {
	w := csv.NewWriter(buf)
	w.Comma = '\t'
	return w
}

func TestWriteRows(t *testing.T) {
	rows := []remap.Row{
		{
			Chain: 'A', Index: 3, Residue: 'L', Target: 3, TargetResidue: 'V',
			Label: resnum.Label{Num: 4, Insertion: 'A'},
			Ca:    &structure.Coords{X: 1, Y: -2.5, Z: 0.125},
		},
		{
			Chain: 'A', Index: 4, Residue: 'K', Target: 4, TargetResidue: 'K',
			Label: resnum.Label{Num: 5},
		},
	}
	buf := new(bytes.Buffer)
	w := tsvWriter(buf)
	if err := writeRows(w, rows); err != nil {
		t.Fatalf("%s", err)
	}
	w.Flush()

	want := "chain\tpdb_position\tpdb_i\tpdb_res\ttarget_i\ttarget_res\tx\ty\tz\n" +
		"A\t4A\t3\tL\t3\tV\t1.000\t-2.500\t0.125\n" +
		"A\t5\t4\tK\t4\tK\t\t\t\n"
	if got := buf.String(); got != want {
		t.Fatalf("Expected\n%s\nbut got\n%s", want, got)
	}
}

func TestWriteAnnotations(t *testing.T) {
	res := dssp.Residue{
		Number:        1,
		Chain:         'A',
		Label:         resnum.Label{Num: 1},
		AA:            'M',
		Structure:     'H',
		Accessibility: 112,
	}
	mapped := []remap.Mapped{
		{Site: res, Index: 1, Target: 1, TargetResidue: 'M', Mapped: true},
		{Site: res, Index: 2},
	}
	buf := new(bytes.Buffer)
	w := tsvWriter(buf)
	if err := writeAnnotations(w, mapped); err != nil {
		t.Fatalf("%s", err)
	}
	w.Flush()

	want := "chain\tpdb_position\tpdb_res\tss\tacc\trsa\ti\twt\n" +
		"A\t1\tM\tH\t112\t0.500\t1\tM\n" +
		"A\t1\tM\tH\t112\t0.500\t\t\n"
	if got := buf.String(); got != want {
		t.Fatalf("Expected\n%s\nbut got\n%s", want, got)
	}
}

type failWriter struct{}

var errFull = errors.New("device full")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errFull
}

// Writes fail as soon as the table outgrows the csv writer's buffer, well
// before the final flush.
func TestWriteRowsError(t *testing.T) {
	rows := make([]remap.Row, 1000)
	for i := range rows {
		rows[i] = remap.Row{
			Chain: 'A', Index: i + 1, Residue: 'M',
			Target: i + 1, TargetResidue: 'M',
			Label: resnum.Label{Num: i + 1},
		}
	}
	w := csv.NewWriter(failWriter{})
	w.Comma = '\t'
	if err := writeRows(w, rows); !errors.Is(err, errFull) {
		t.Fatalf("Expected a write error but got %v.", err)
	}
}
