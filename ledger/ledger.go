// Package ledger owns the clinic's in-memory state: the patient roster,
// the shared procedure catalog and the dentist roster. Every operation
// the presentation layer can invoke lives here; handlers never touch the
// model types directly.
package ledger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dentledger-backend/codec"
	"dentledger-backend/models"
	"dentledger-backend/report"
	"dentledger-backend/utils"
)

// Ledger is the single state owner. The model types themselves are not
// safe for concurrent mutation, so every exported method serializes
// behind one mutex; the Fiber host calls in from many goroutines.
type Ledger struct {
	mu sync.Mutex

	seqs     *models.Sequences
	patients []*models.Patient
	catalog  []*models.Procedure
	dentists []*models.Dentist

	codec codec.Codec
	paths codec.Paths
	sink  Sink
	log   zerolog.Logger
}

func New(c codec.Codec, paths codec.Paths, sink Sink, log zerolog.Logger) *Ledger {
	return &Ledger{
		seqs:  models.NewSequences(),
		codec: c,
		paths: paths,
		sink:  sink,
		log:   log,
	}
}

// Load reconstructs the in-memory state from the three data files. A
// missing file means start empty; a file that fails partway is kept as
// far as it parsed. Load never fails the process, it only logs.
func (l *Ledger) Load() {
	l.mu.Lock()
	defer l.mu.Unlock()

	procs, err := l.codec.ReadProcedures(l.paths.Procedures, l.seqs)
	l.catalog = procs
	l.reportLoad("procedures", l.paths.Procedures, len(procs), err)

	dentists, err := l.codec.ReadDentists(l.paths.Dentists)
	l.dentists = dentists
	l.reportLoad("dentists", l.paths.Dentists, len(dentists), err)

	patients, err := l.codec.ReadPatients(l.paths.Patients, l.seqs)
	l.patients = patients
	l.reportLoad("patients", l.paths.Patients, len(patients), err)
}

func (l *Ledger) reportLoad(what, path string, n int, err error) {
	switch {
	case err == nil:
		l.log.Info().Str("file", path).Int("count", n).Msgf("loaded %s", what)
	case os.IsNotExist(err):
		l.log.Info().Str("file", path).Msgf("no %s file, starting empty", what)
	default:
		// Keep whatever parsed before the failure.
		l.log.Warn().Err(err).Str("file", path).Int("count", n).Msgf("partial %s load", what)
	}
}

// ---- Dentists

// Login checks the name/password pair against the roster. The password
// comparison is plaintext, matching how the roster file stores it.
func (l *Ledger) Login(name, password string) (*models.Dentist, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, d := range l.dentists {
		if d.Name == name {
			if d.Password != password {
				l.sink.SetLog("Incorrect Password.")
				return nil, fmt.Errorf("%w: incorrect password", ErrNotAuthenticated)
			}
			l.sink.SetLog("Logged in as " + name + ".")
			return d, nil
		}
	}
	l.sink.SetLog("This dentist is not registered.")
	return nil, fmt.Errorf("%w: not registered", ErrNotAuthenticated)
}

// HasDentist reports whether a dentist with the given name is registered.
func (l *Ledger) HasDentist(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range l.dentists {
		if d.Name == name {
			return true
		}
	}
	return false
}

// Register adds a dentist to the roster and rewrites the roster file.
func (l *Ledger) Register(name, address, password string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, d := range l.dentists {
		if d.Name == name {
			msg := "This Dentist already exists. "
			l.sink.SetLog(msg)
			return duplicatef(msg)
		}
	}

	var msg string
	if name == "" {
		msg += "Name is mandatory. "
	}
	if address == "" {
		msg += "Address is mandatory. "
	}
	if password == "" {
		msg += "Password is mandatory. "
	}
	if msg != "" {
		l.sink.SetLog(msg)
		return invalidf(msg)
	}

	l.dentists = append(l.dentists, models.NewDentist(name, address, password))
	l.sink.SetLog("Dentist " + name + " registered successfully.")
	l.writeDentists()
	return nil
}

// writeDentists rewrites the roster file. A failed write is abandoned;
// the in-memory roster keeps the change. Callers hold the mutex.
func (l *Ledger) writeDentists() {
	if err := l.codec.WriteDentists(l.paths.Dentists, l.dentists); err != nil {
		l.log.Error().Err(err).Str("file", l.paths.Dentists).Msg("write dentists")
		l.sink.SetLog("Failed to save dentists.")
	}
}

// ---- Procedure catalog

// AddProcedure validates and appends a catalog entry, then rewrites the
// catalog file. Name matching is case-sensitive, so case-different names
// are distinct entries.
func (l *Ledger) AddProcedure(name, cost string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.catalog {
		if p.Name == name {
			msg := "This procedure already exists. "
			l.sink.SetLog(msg)
			return duplicatef(msg)
		}
	}

	var msg string
	if name == "" {
		msg += "Name is mandatory. "
	}
	if cost == "" {
		msg += "Enter 0 for a free procedure. "
	}
	if msg != "" {
		l.sink.SetLog(msg)
		return invalidf(msg)
	}

	price, err := utils.ParseAmount(cost)
	if err != nil || price < 0 {
		msg = "Enter a non-negative decimal value for cost."
		l.sink.SetLog(msg)
		return invalidf(msg)
	}

	l.catalog = append(l.catalog, models.NewProcedure(l.seqs, name, price))
	l.sink.SetLog("Procedure " + name + " added successfully.")
	l.writeProcedures()
	return nil
}

// EditProcedure overwrites name and cost of the catalog entry at index.
// There is deliberately no duplicate check against other entries here,
// matching the behavior existing data was produced under.
func (l *Ledger) EditProcedure(index int, name, cost string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.catalog) {
		return models.ErrOutOfRange
	}

	var msg string
	if name == "" {
		msg += "Name is mandatory. "
	}
	if cost == "" {
		msg += "Enter 0 for a free procedure. "
	}
	if msg != "" {
		l.sink.SetLog(msg)
		return invalidf(msg)
	}

	price, err := utils.ParseAmount(cost)
	if err != nil {
		msg = "Enter a decimal value for cost."
		l.sink.SetLog(msg)
		return invalidf(msg)
	}

	l.catalog[index].Name = name
	l.catalog[index].Cost = price
	l.sink.SetLog("Procedure " + name + " updated.")
	l.writeProcedures()
	return nil
}

// RemoveProcedure deletes the catalog entry at index and rewrites the
// catalog file.
func (l *Ledger) RemoveProcedure(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.catalog) {
		return models.ErrOutOfRange
	}
	name := l.catalog[index].Name
	l.catalog = append(l.catalog[:index], l.catalog[index+1:]...)
	l.sink.SetLog("Procedure " + name + " removed.")
	l.writeProcedures()
	return nil
}

func (l *Ledger) writeProcedures() {
	if err := l.codec.WriteProcedures(l.paths.Procedures, l.catalog); err != nil {
		l.log.Error().Err(err).Str("file", l.paths.Procedures).Msg("write procedures")
		l.sink.SetLog("Failed to save procedures.")
	}
}

// ---- Patients

// AddPatient validates and appends a patient assigned to the given
// dentist (the active session's identity). The dentist name is a
// reference by name into the roster and is not validated here.
func (l *Ledger) AddPatient(name, address, phone, dentist string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var msg string
	if name == "" {
		msg += "Name is mandatory. "
	}
	if address == "" {
		msg += "Address is mandatory. "
	}
	if phone == "" {
		msg += "Phone number is mandatory. "
	}
	if msg != "" {
		l.sink.SetLog(msg)
		return invalidf(msg)
	}

	l.patients = append(l.patients, models.NewPatient(l.seqs, name, address, phone, dentist))
	l.sink.SetLog("Patient " + name + " added successfully.")
	return nil
}

// RemovePatient deletes the patient at index. Like every patient
// mutation, the change reaches disk only on the explicit save.
func (l *Ledger) RemovePatient(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.patients) {
		return models.ErrOutOfRange
	}
	name := l.patients[index].Name
	l.patients = append(l.patients[:index], l.patients[index+1:]...)
	l.sink.SetLog("Patient " + name + " removed.")
	return nil
}

// ---- Invoices

// AddInvoice creates a new invoice for the patient at index, seeded with
// a copy of the catalog entry at procedure. The invoice line is a copy:
// editing the catalog afterwards does not change it.
func (l *Ledger) AddInvoice(patient, procedure int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if procedure < 0 || procedure >= len(l.catalog) {
		return models.ErrOutOfRange
	}
	pat, err := l.patientAt(patient)
	if err != nil {
		return err
	}
	entry := l.catalog[procedure]
	inv := pat.AddInvoice(l.seqs)
	if err := pat.AddProcedure(inv, l.seqs, entry.Name, entry.Cost); err != nil {
		return err
	}
	l.sink.SetLog("Invoice added for " + pat.Name + ".")
	return nil
}

// RemoveInvoice deletes an invoice from the patient at index.
func (l *Ledger) RemoveInvoice(patient, invoice int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pat, err := l.patientAt(patient)
	if err != nil {
		return err
	}
	if err := pat.RemoveInvoice(invoice); err != nil {
		return err
	}
	l.sink.SetLog("Invoice removed.")
	return nil
}

// AddInvoiceProcedure appends a copy of the catalog entry at procedure to
// an existing invoice.
func (l *Ledger) AddInvoiceProcedure(patient, invoice, procedure int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if procedure < 0 || procedure >= len(l.catalog) {
		return models.ErrOutOfRange
	}
	pat, err := l.patientAt(patient)
	if err != nil {
		return err
	}
	entry := l.catalog[procedure]
	if err := pat.AddProcedure(invoice, l.seqs, entry.Name, entry.Cost); err != nil {
		return err
	}
	l.sink.SetLog("Procedure " + entry.Name + " added to invoice.")
	return nil
}

// RemoveInvoiceProcedure deletes a line item from an invoice.
func (l *Ledger) RemoveInvoiceProcedure(patient, invoice, procedure int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pat, err := l.patientAt(patient)
	if err != nil {
		return err
	}
	if err := pat.RemoveProcedure(invoice, procedure); err != nil {
		return err
	}
	l.sink.SetLog("Procedure removed from invoice.")
	return nil
}

// AddPayment validates the amount text and records a payment against an
// invoice, dated now.
func (l *Ledger) AddPayment(patient, invoice int, amount string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount == "" {
		msg := "Payment cannot be 0. "
		l.sink.SetLog(msg)
		return invalidf(msg)
	}
	value, err := utils.ParseAmount(amount)
	if err != nil {
		msg := "Enter a decimal value for amount."
		l.sink.SetLog(msg)
		return invalidf(msg)
	}
	pat, err := l.patientAt(patient)
	if err != nil {
		return err
	}
	if err := pat.AddPayment(invoice, l.seqs, value); err != nil {
		return err
	}
	l.sink.SetLog("Payment of €" + utils.FormatAmount(value) + " recorded.")
	return nil
}

// RemovePayment deletes a payment from an invoice, restoring its amount
// to the outstanding balance.
func (l *Ledger) RemovePayment(patient, invoice, payment int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pat, err := l.patientAt(patient)
	if err != nil {
		return err
	}
	if err := pat.RemovePayment(invoice, payment); err != nil {
		return err
	}
	l.sink.SetLog("Payment removed.")
	return nil
}

// ---- Persistence and reports

// SavePatients rewrites the patients file with the full in-memory
// roster. A failed write is abandoned and reported; memory is unchanged.
func (l *Ledger) SavePatients() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.codec.WritePatients(l.paths.Patients, l.patients); err != nil {
		l.log.Error().Err(err).Str("file", l.paths.Patients).Msg("write patients")
		l.sink.SetLog("Failed to save patients.")
		return err
	}
	l.sink.SetLog("Patients saved.")
	return nil
}

// WriteReport generates a report file in the given mode. An empty file
// name is refused with a prompt rather than written.
func (l *Ledger) WriteReport(mode report.Mode, filename string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if filename == "" {
		l.sink.SetLog("Enter file name.")
		return invalidf("Enter file name.")
	}
	if err := report.Write(l.patients, mode, filename, time.Now()); err != nil {
		l.log.Error().Err(err).Str("file", filename).Msg("write report")
		l.sink.SetLog("Failed to write report.")
		return err
	}
	l.sink.SetLog("Report written to " + filename + ".")
	return nil
}

func (l *Ledger) patientAt(index int) (*models.Patient, error) {
	if index < 0 || index >= len(l.patients) {
		return nil, models.ErrOutOfRange
	}
	return l.patients[index], nil
}
