package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"dentledger-backend/codec"
	"dentledger-backend/models"
	"dentledger-backend/report"
)

// memSink records every status message for assertions.
type memSink struct {
	msgs []string
}

func (s *memSink) SetLog(message string) {
	s.msgs = append(s.msgs, message)
}

func (s *memSink) last() string {
	if len(s.msgs) == 0 {
		return ""
	}
	return s.msgs[len(s.msgs)-1]
}

func newTestLedger(t *testing.T) (*Ledger, *memSink, codec.Paths) {
	t.Helper()
	dir := t.TempDir()
	paths := codec.Paths{
		Procedures: filepath.Join(dir, "Procedures.txt"),
		Patients:   filepath.Join(dir, "Patients.txt"),
		Dentists:   filepath.Join(dir, "Dentists.txt"),
	}
	sink := &memSink{}
	l := New(codec.LineCodec{}, paths, sink, zerolog.Nop())
	l.Load()
	return l, sink, paths
}

func TestAddProcedureDuplicate(t *testing.T) {
	l, sink, _ := newTestLedger(t)

	if err := l.AddProcedure("Filling", "120.0"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := l.AddProcedure("Filling", "50.0")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second add err = %v, want ErrDuplicate", err)
	}
	if sink.last() != "This procedure already exists. " {
		t.Errorf("sink = %q", sink.last())
	}

	procs := l.Procedures()
	if len(procs) != 1 || procs[0].Cost != 120 {
		t.Fatalf("catalog changed by rejected add: %+v", procs)
	}

	// Case-different names are distinct entries.
	if err := l.AddProcedure("filling", "50.0"); err != nil {
		t.Fatalf("case-different add: %v", err)
	}
	if len(l.Procedures()) != 2 {
		t.Fatal("case-different name not accepted as distinct")
	}
}

func TestAddProcedureInvalidInput(t *testing.T) {
	l, sink, _ := newTestLedger(t)

	err := l.AddProcedure("", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if sink.last() != "Name is mandatory. Enter 0 for a free procedure. " {
		t.Errorf("sink = %q", sink.last())
	}

	if err := l.AddProcedure("Crown", "abc"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unparsable cost err = %v", err)
	}
	if err := l.AddProcedure("Crown", "-5"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative cost err = %v", err)
	}
	if len(l.Procedures()) != 0 {
		t.Fatal("rejected adds changed the catalog")
	}
}

func TestEditProcedureSkipsDuplicateCheck(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.AddProcedure("Filling", "120")
	l.AddProcedure("Cleaning", "80")

	// Edit has no duplicate check against other entries; renaming
	// Cleaning to Filling is accepted.
	if err := l.EditProcedure(1, "Filling", "90"); err != nil {
		t.Fatalf("EditProcedure: %v", err)
	}
	procs := l.Procedures()
	if procs[1].Name != "Filling" || procs[1].Cost != 90 {
		t.Fatalf("edit did not apply: %+v", procs[1])
	}

	if err := l.EditProcedure(9, "X", "1"); !errors.Is(err, models.ErrOutOfRange) {
		t.Errorf("out-of-range edit err = %v", err)
	}
}

func TestCatalogWritesFile(t *testing.T) {
	l, _, paths := newTestLedger(t)
	l.AddProcedure("Filling", "120")
	l.AddProcedure("Cleaning", "80.5")
	if err := l.RemoveProcedure(0); err != nil {
		t.Fatalf("RemoveProcedure: %v", err)
	}

	raw, err := os.ReadFile(paths.Procedures)
	if err != nil {
		t.Fatalf("catalog file not written: %v", err)
	}
	if string(raw) != "Cleaning\n80.5" {
		t.Fatalf("catalog file = %q", raw)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	l, sink, paths := newTestLedger(t)

	err := l.Register("", "", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty register err = %v", err)
	}
	if sink.last() != "Name is mandatory. Address is mandatory. Password is mandatory. " {
		t.Errorf("sink = %q", sink.last())
	}

	if err := l.Register("Dr. Roe", "4 Clinic Way", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if sink.msgs[len(sink.msgs)-1] != "Dentist Dr. Roe registered successfully." {
		t.Errorf("sink = %q", sink.last())
	}
	if _, err := os.Stat(paths.Dentists); err != nil {
		t.Errorf("roster file not written: %v", err)
	}

	if err := l.Register("Dr. Roe", "elsewhere", "x"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate register err = %v", err)
	}

	if _, err := l.Login("Dr. Noone", "hunter2"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("unknown name err = %v", err)
	}
	if sink.last() != "This dentist is not registered." {
		t.Errorf("sink = %q", sink.last())
	}

	if _, err := l.Login("Dr. Roe", "wrong"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("wrong password err = %v", err)
	}
	if sink.last() != "Incorrect Password." {
		t.Errorf("sink = %q", sink.last())
	}

	d, err := l.Login("Dr. Roe", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if d.Name != "Dr. Roe" {
		t.Errorf("logged in as %q", d.Name)
	}
	if sink.last() != "Logged in as Dr. Roe." {
		t.Errorf("sink = %q", sink.last())
	}
	if !l.HasDentist("Dr. Roe") || l.HasDentist("Dr. Noone") {
		t.Error("HasDentist mismatch")
	}
}

func TestAddPatientValidation(t *testing.T) {
	l, sink, _ := newTestLedger(t)

	err := l.AddPatient("", "", "", "Dr. Roe")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if sink.last() != "Name is mandatory. Address is mandatory. Phone number is mandatory. " {
		t.Errorf("sink = %q", sink.last())
	}

	if err := l.AddPatient("Ann", "1 Main St", "555-0100", "Dr. Roe"); err != nil {
		t.Fatalf("AddPatient: %v", err)
	}
	pats := l.Patients()
	if len(pats) != 1 || pats[0].Dentist != "Dr. Roe" {
		t.Fatalf("patients = %+v", pats)
	}

	if err := l.RemovePatient(5); !errors.Is(err, models.ErrOutOfRange) {
		t.Errorf("out-of-range remove err = %v", err)
	}
}

func TestAddInvoiceSeedsCatalogCopy(t *testing.T) {
	l, _, _ := newTestLedger(t)
	l.AddProcedure("Filling", "120")
	l.AddPatient("Ann", "1 Main St", "555-0100", "Dr. Roe")

	if err := l.AddInvoice(0, 0); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}

	// Editing the catalog afterwards must not touch the issued line.
	l.EditProcedure(0, "Filling", "999")

	pat, err := l.PatientAt(0)
	if err != nil {
		t.Fatalf("PatientAt: %v", err)
	}
	if len(pat.Invoices) != 1 {
		t.Fatalf("invoices = %d, want 1", len(pat.Invoices))
	}
	inv := pat.Invoices[0]
	if len(inv.Procedures) != 1 || inv.Procedures[0].Cost != 120 {
		t.Fatalf("seeded line = %+v", inv.Procedures)
	}
	if inv.Outstanding != 120 || inv.Paid {
		t.Fatalf("invoice state = %+v", inv)
	}

	if err := l.AddInvoice(0, 7); !errors.Is(err, models.ErrOutOfRange) {
		t.Errorf("bad catalog index err = %v", err)
	}
}

func TestPaymentFlow(t *testing.T) {
	l, sink, _ := newTestLedger(t)
	l.AddProcedure("Filling", "120")
	l.AddPatient("Ann", "1 Main St", "555-0100", "Dr. Roe")
	l.AddInvoice(0, 0)

	if err := l.AddPayment(0, 0, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty amount err = %v", err)
	}
	if sink.last() != "Payment cannot be 0. " {
		t.Errorf("sink = %q", sink.last())
	}
	if err := l.AddPayment(0, 0, "12x"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad amount err = %v", err)
	}

	if err := l.AddPayment(0, 0, "120"); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	pat, _ := l.PatientAt(0)
	if !pat.Invoices[0].Paid || pat.Invoices[0].Outstanding != 0 {
		t.Fatalf("invoice after settling payment = %+v", pat.Invoices[0])
	}

	if err := l.RemovePayment(0, 0, 0); err != nil {
		t.Fatalf("RemovePayment: %v", err)
	}
	pat, _ = l.PatientAt(0)
	if pat.Invoices[0].Paid || pat.Invoices[0].Outstanding != 120 {
		t.Fatalf("invoice after payment removal = %+v", pat.Invoices[0])
	}
}

func TestSaveAndReload(t *testing.T) {
	l, sink, paths := newTestLedger(t)
	l.Register("Dr. Roe", "4 Clinic Way", "hunter2")
	l.AddProcedure("Filling", "120")
	l.AddPatient("Ann", "1 Main St", "555-0100", "Dr. Roe")
	l.AddInvoice(0, 0)
	l.AddPayment(0, 0, "20")

	if err := l.SavePatients(); err != nil {
		t.Fatalf("SavePatients: %v", err)
	}
	if sink.last() != "Patients saved." {
		t.Errorf("sink = %q", sink.last())
	}

	fresh := New(codec.LineCodec{}, paths, &memSink{}, zerolog.Nop())
	fresh.Load()

	pats := fresh.Patients()
	if len(pats) != 1 {
		t.Fatalf("reloaded %d patients", len(pats))
	}
	got := pats[0]
	if got.Name != "Ann" || got.Address != "1 Main St" || got.Phone != "555-0100" || got.Dentist != "Dr. Roe" {
		t.Errorf("reloaded patient = %+v", got)
	}
	if len(got.Invoices) != 1 || got.Invoices[0].Outstanding != 100 {
		t.Fatalf("reloaded invoices = %+v", got.Invoices)
	}
	if len(fresh.Procedures()) != 1 {
		t.Errorf("reloaded catalog = %+v", fresh.Procedures())
	}
	if !fresh.HasDentist("Dr. Roe") {
		t.Error("reloaded roster missing dentist")
	}
}

// Invoice numbers are not persisted; on reload they come from the fresh
// counter, so they are stable across restarts only if no invoice was ever
// removed before the last save.
func TestInvoiceNumbersReassignedOnReload(t *testing.T) {
	l, _, paths := newTestLedger(t)
	l.AddProcedure("Filling", "120")
	l.AddPatient("Ann", "1 Main St", "555-0100", "Dr. Roe")
	l.AddInvoice(0, 0)
	l.AddInvoice(0, 0)
	if err := l.RemoveInvoice(0, 0); err != nil {
		t.Fatalf("RemoveInvoice: %v", err)
	}

	before, _ := l.PatientAt(0)
	if before.Invoices[0].No != 2 {
		t.Fatalf("surviving invoice number = %d, want 2", before.Invoices[0].No)
	}
	if err := l.SavePatients(); err != nil {
		t.Fatalf("SavePatients: %v", err)
	}

	fresh := New(codec.LineCodec{}, paths, &memSink{}, zerolog.Nop())
	fresh.Load()
	after, _ := fresh.PatientAt(0)
	if after.Invoices[0].No != 1 {
		t.Fatalf("reloaded invoice number = %d, want 1 (reassigned)", after.Invoices[0].No)
	}
}

func TestLoadKeepsPartialData(t *testing.T) {
	dir := t.TempDir()
	paths := codec.Paths{
		Procedures: filepath.Join(dir, "Procedures.txt"),
		Patients:   filepath.Join(dir, "Patients.txt"),
		Dentists:   filepath.Join(dir, "Dentists.txt"),
	}
	// One complete entry, then a dangling name line.
	os.WriteFile(paths.Procedures, []byte("Filling\n120\nCleaning"), 0o644)

	l := New(codec.LineCodec{}, paths, &memSink{}, zerolog.Nop())
	l.Load()

	procs := l.Procedures()
	if len(procs) != 1 || procs[0].Name != "Filling" {
		t.Fatalf("partial load kept %+v", procs)
	}
}

func TestWriteReport(t *testing.T) {
	l, sink, _ := newTestLedger(t)

	err := l.WriteReport(report.ByName, "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty filename err = %v", err)
	}
	if sink.last() != "Enter file name." {
		t.Errorf("sink = %q", sink.last())
	}

	out := filepath.Join(t.TempDir(), "report.txt")
	if err := l.WriteReport(report.ByName, out); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	// No patients: the file holds only the mode header.
	if string(raw) != "Report of patients sorted by name.\n\n" {
		t.Fatalf("empty report = %q", raw)
	}
}
