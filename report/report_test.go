package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dentledger-backend/models"
)

func newPatient(t *testing.T, seqs *models.Sequences, name string, cost float64, age time.Duration, now time.Time) *models.Patient {
	t.Helper()
	p := models.NewPatient(seqs, name, "1 Main St", "555-0100", "Dr. Roe")
	idx := p.AddInvoice(seqs)
	if err := p.AddProcedure(idx, seqs, "Filling", cost); err != nil {
		t.Fatal(err)
	}
	if err := p.SetInvoiceDate(idx, now.Add(-age)); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRenderByNameSortsAscending(t *testing.T) {
	now := time.Now()
	seqs := models.NewSequences()
	patients := []*models.Patient{
		newPatient(t, seqs, "Zoe", 50, 0, now),
		newPatient(t, seqs, "Ann", 80, 0, now),
	}

	out := Render(patients, ByName, now)
	if !strings.HasPrefix(out, "Report of patients sorted by name.\n\n") {
		t.Fatalf("header missing: %q", out)
	}
	ann := strings.Index(out, "Ann")
	zoe := strings.Index(out, "Zoe")
	if ann < 0 || zoe < 0 || ann > zoe {
		t.Fatalf("name order wrong: ann=%d zoe=%d", ann, zoe)
	}
	// Input order is preserved; sorting happens on a copy.
	if patients[0].Name != "Zoe" {
		t.Error("input slice was reordered")
	}
}

func TestRenderOverdueFiltersAndSortsByOutstanding(t *testing.T) {
	now := time.Now()
	seqs := models.NewSequences()
	old := 7 * 2629743000 * time.Millisecond

	small := newPatient(t, seqs, "Small", 50, old, now)
	big := newPatient(t, seqs, "Big", 500, old, now)
	recent := newPatient(t, seqs, "Recent", 999, 0, now)
	settled := newPatient(t, seqs, "Settled", 50, old, now)
	if err := settled.AddPayment(0, seqs, 50); err != nil {
		t.Fatal(err)
	}

	out := Render([]*models.Patient{small, recent, big, settled}, Overdue, now)
	if !strings.HasPrefix(out, "Report of patients sorted by unpaid over 6 months.\n\n") {
		t.Fatalf("header missing: %q", out)
	}
	if strings.Contains(out, "Recent") {
		t.Error("recent invoice included in overdue report")
	}
	if strings.Contains(out, "Settled") {
		t.Error("settled patient included in overdue report")
	}
	bigAt := strings.Index(out, "Big")
	smallAt := strings.Index(out, "Small")
	if bigAt < 0 || smallAt < 0 || bigAt > smallAt {
		t.Fatalf("outstanding order wrong: big=%d small=%d", bigAt, smallAt)
	}
}

func TestRenderIncludesInvoiceDetail(t *testing.T) {
	now := time.Now()
	seqs := models.NewSequences()
	p := newPatient(t, seqs, "Ann", 80, 0, now)
	if err := p.AddPayment(0, seqs, 30); err != nil {
		t.Fatal(err)
	}

	out := Render([]*models.Patient{p}, ByName, now)
	for _, want := range []string{
		"Patient: \tAnn",
		"Invoice number \t1",
		"outstanding \t€50",
		"Procedures:",
		"€80 \tFilling",
		"Payments:",
		"€30",
		"***",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteZeroPatients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := Write(nil, Overdue, path, time.Now()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "Report of patients sorted by unpaid over 6 months.\n\n" {
		t.Fatalf("report = %q", raw)
	}
}
