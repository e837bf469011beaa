package codec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dentledger-backend/models"
)

func TestProceduresRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Procedures.txt")
	seqs := models.NewSequences()

	procs := []*models.Procedure{
		models.NewProcedure(seqs, "Filling", 120),
		models.NewProcedure(seqs, "Cleaning", 80.5),
	}

	c := LineCodec{}
	if err := c.WriteProcedures(path, procs); err != nil {
		t.Fatalf("WriteProcedures: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "Filling\n120\nCleaning\n80.5"
	if string(raw) != want {
		t.Fatalf("file = %q, want %q", raw, want)
	}

	got, err := c.ReadProcedures(path, models.NewSequences())
	if err != nil {
		t.Fatalf("ReadProcedures: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d procedures, want 2", len(got))
	}
	if got[0].Name != "Filling" || got[0].Cost != 120 {
		t.Errorf("first entry = %q/%v", got[0].Name, got[0].Cost)
	}
	if got[1].Name != "Cleaning" || got[1].Cost != 80.5 {
		t.Errorf("second entry = %q/%v", got[1].Name, got[1].Cost)
	}
}

func TestDentistsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dentists.txt")

	dentists := []*models.Dentist{
		models.NewDentist("Dr. Roe", "4 Clinic Way", "hunter2"),
		models.NewDentist("Dr. Lee", "5 Clinic Way", "swordfish"),
	}

	c := LineCodec{}
	if err := c.WriteDentists(path, dentists); err != nil {
		t.Fatalf("WriteDentists: %v", err)
	}

	raw, _ := os.ReadFile(path)
	want := "Dr. Roe\n4 Clinic Way\nhunter2\nDr. Lee\n5 Clinic Way\nswordfish"
	if string(raw) != want {
		t.Fatalf("file = %q, want %q", raw, want)
	}

	got, err := c.ReadDentists(path)
	if err != nil {
		t.Fatalf("ReadDentists: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d dentists, want 2", len(got))
	}
	if got[1].Name != "Dr. Lee" || got[1].Password != "swordfish" {
		t.Errorf("second dentist = %+v", got[1])
	}
}

func TestPatientsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Patients.txt")
	seqs := models.NewSequences()

	pat := models.NewPatient(seqs, "Ann", "1 Main St", "555-0100", "Dr. Roe")
	idx := pat.AddInvoice(seqs)
	if err := pat.AddProcedure(idx, seqs, "Cleaning", 80); err != nil {
		t.Fatal(err)
	}
	if err := pat.AddPayment(idx, seqs, 30); err != nil {
		t.Fatal(err)
	}
	invDate := time.UnixMilli(1600000000000)
	payDate := time.UnixMilli(1600000500000)
	pat.SetInvoiceDate(idx, invDate)
	pat.SetPaymentDate(idx, 0, payDate)

	c := LineCodec{}
	if err := c.WritePatients(path, []*models.Patient{pat}); err != nil {
		t.Fatalf("WritePatients: %v", err)
	}

	got, err := c.ReadPatients(path, models.NewSequences())
	if err != nil {
		t.Fatalf("ReadPatients: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("read %d patients, want 1", len(got))
	}
	rp := got[0]
	if rp.Name != "Ann" || rp.Address != "1 Main St" || rp.Phone != "555-0100" || rp.Dentist != "Dr. Roe" {
		t.Errorf("patient fields = %q %q %q %q", rp.Name, rp.Address, rp.Phone, rp.Dentist)
	}
	inv, err := rp.InvoiceAt(0)
	if err != nil {
		t.Fatalf("InvoiceAt: %v", err)
	}
	if inv.Date().UnixMilli() != 1600000000000 {
		t.Errorf("invoice date = %d, want 1600000000000", inv.Date().UnixMilli())
	}
	proc, _ := inv.ProcedureAt(0)
	if proc.Name != "Cleaning" || proc.Cost != 80 {
		t.Errorf("line item = %q/%v", proc.Name, proc.Cost)
	}
	pmt, _ := inv.PaymentAt(0)
	if pmt.Amount != 30 || pmt.Date().UnixMilli() != 1600000500000 {
		t.Errorf("payment = %v at %d", pmt.Amount, pmt.Date().UnixMilli())
	}
	if inv.Outstanding() != 50 {
		t.Errorf("reloaded outstanding = %v, want 50", inv.Outstanding())
	}
}

func TestReadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	c := LineCodec{}

	if _, err := c.ReadProcedures(filepath.Join(dir, "none.txt"), models.NewSequences()); !os.IsNotExist(err) {
		t.Errorf("ReadProcedures missing file err = %v", err)
	}
	if _, err := c.ReadDentists(filepath.Join(dir, "none.txt")); !os.IsNotExist(err) {
		t.Errorf("ReadDentists missing file err = %v", err)
	}
	if _, err := c.ReadPatients(filepath.Join(dir, "none.txt"), models.NewSequences()); !os.IsNotExist(err) {
		t.Errorf("ReadPatients missing file err = %v", err)
	}
}

func TestReadProceduresDanglingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Procedures.txt")
	// A name with no cost line, as a crash mid-write would leave behind.
	os.WriteFile(path, []byte("Filling\n120\nCleaning"), 0o644)

	got, err := LineCodec{}.ReadProcedures(path, models.NewSequences())
	if err == nil {
		t.Fatal("expected error for dangling name line")
	}
	if len(got) != 1 || got[0].Name != "Filling" {
		t.Fatalf("partial result = %v, want the one complete entry", got)
	}
}

func TestReadPatientsTruncated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Patients.txt")

	// Count promises two patients; the file ends inside the first
	// patient's invoice block.
	content := strings.Join([]string{
		"2",
		"Ann", "1 Main St", "555-0100", "Dr. Roe",
		"1",
		"1600000000000",
	}, "\n")
	os.WriteFile(path, []byte(content), 0o644)

	got, err := LineCodec{}.ReadPatients(path, models.NewSequences())
	if err == nil {
		t.Fatal("expected error for truncated file")
	}
	if len(got) != 1 {
		t.Fatalf("kept %d patients, want the 1 decoded before the failure", len(got))
	}
	if got[0].Name != "Ann" {
		t.Errorf("partial patient = %q", got[0].Name)
	}
}

func TestEmptyFilesDecodeEmpty(t *testing.T) {
	dir := t.TempDir()
	c := LineCodec{}

	procPath := filepath.Join(dir, "Procedures.txt")
	os.WriteFile(procPath, nil, 0o644)
	if got, err := c.ReadProcedures(procPath, models.NewSequences()); err != nil || len(got) != 0 {
		t.Errorf("empty procedures file: %v, %v", got, err)
	}

	dentPath := filepath.Join(dir, "Dentists.txt")
	os.WriteFile(dentPath, nil, 0o644)
	if got, err := c.ReadDentists(dentPath); err != nil || len(got) != 0 {
		t.Errorf("empty dentists file: %v, %v", got, err)
	}
}
