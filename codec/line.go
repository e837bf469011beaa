package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"dentledger-backend/models"
	"dentledger-backend/utils"
)

// LineCodec implements the positional line format the clinic's data files
// use: one logical field per line, UTF-8, no quoting or escaping. The
// field order is fixed by the existing files and must not change. A name
// or address containing a newline corrupts the file irrecoverably; the
// codec does not try to escape it.
//
// Writes replace the whole target file with a fresh image of the whole
// collection. There is no temp-file-then-rename step, so a crash mid-write
// can truncate the file.
type LineCodec struct{}

// lineReader yields one line at a time and tracks the line number for
// error reporting.
type lineReader struct {
	sc *bufio.Scanner
	n  int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{sc: bufio.NewScanner(r)}
}

func (lr *lineReader) next() (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("line %d: %w", lr.n+1, io.ErrUnexpectedEOF)
	}
	lr.n++
	return lr.sc.Text(), nil
}

func (lr *lineReader) nextInt() (int, error) {
	s, err := lr.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("line %d: %q is not a count", lr.n, s)
	}
	return v, nil
}

func (lr *lineReader) nextAmount() (float64, error) {
	s, err := lr.next()
	if err != nil {
		return 0, err
	}
	v, err := utils.ParseAmount(s)
	if err != nil {
		return 0, fmt.Errorf("line %d: %q is not an amount", lr.n, s)
	}
	return v, nil
}

func (lr *lineReader) nextMillis() (time.Time, error) {
	s, err := lr.next()
	if err != nil {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("line %d: %q is not a timestamp", lr.n, s)
	}
	return time.UnixMilli(ms), nil
}

// ReadProcedures decodes repeating name/cost line pairs until end of file.
func (c LineCodec) ReadProcedures(path string, seqs *models.Sequences) ([]*models.Procedure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var procs []*models.Procedure
	lr := newLineReader(f)
	for {
		name, err := lr.next()
		if err != nil {
			if errorsIsEOF(err) && lr.n%2 == 0 {
				return procs, nil // clean end of list
			}
			return procs, err
		}
		cost, err := lr.nextAmount()
		if err != nil {
			return procs, err
		}
		procs = append(procs, models.NewProcedure(seqs, name, cost))
	}
}

// WriteProcedures rewrites the catalog file as name/cost line pairs in
// catalog order, no trailing newline.
func (c LineCodec) WriteProcedures(path string, procs []*models.Procedure) error {
	var b strings.Builder
	for i, p := range procs {
		b.WriteString(p.Name)
		b.WriteByte('\n')
		b.WriteString(utils.FormatAmount(p.Cost))
		if i != len(procs)-1 {
			b.WriteByte('\n')
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ReadDentists decodes repeating name/address/password line triples until
// end of file.
func (c LineCodec) ReadDentists(path string) ([]*models.Dentist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var dentists []*models.Dentist
	lr := newLineReader(f)
	for {
		name, err := lr.next()
		if err != nil {
			if errorsIsEOF(err) && lr.n%3 == 0 {
				return dentists, nil
			}
			return dentists, err
		}
		address, err := lr.next()
		if err != nil {
			return dentists, err
		}
		password, err := lr.next()
		if err != nil {
			return dentists, err
		}
		dentists = append(dentists, models.NewDentist(name, address, password))
	}
}

// WriteDentists rewrites the roster file as name/address/password line
// triples in roster order, no trailing newline.
func (c LineCodec) WriteDentists(path string, dentists []*models.Dentist) error {
	var b strings.Builder
	for i, d := range dentists {
		b.WriteString(d.Name)
		b.WriteByte('\n')
		b.WriteString(d.Address)
		b.WriteByte('\n')
		b.WriteString(d.Password)
		if i != len(dentists)-1 {
			b.WriteByte('\n')
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ReadPatients decodes the count-prefixed patient tree. Invoice numbers
// are not stored in the file; they are reassigned from the sequence
// registry as invoices are rebuilt.
func (c LineCodec) ReadPatients(path string, seqs *models.Sequences) ([]*models.Patient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patients []*models.Patient
	lr := newLineReader(f)
	count, err := lr.nextInt()
	if err != nil {
		return patients, err
	}
	for i := 0; i < count; i++ {
		name, err := lr.next()
		if err != nil {
			return patients, err
		}
		address, err := lr.next()
		if err != nil {
			return patients, err
		}
		phone, err := lr.next()
		if err != nil {
			return patients, err
		}
		dentist, err := lr.next()
		if err != nil {
			return patients, err
		}

		pat := models.NewPatient(seqs, name, address, phone, dentist)
		patients = append(patients, pat)

		invoices, err := lr.nextInt()
		if err != nil {
			return patients, err
		}
		for inv := 0; inv < invoices; inv++ {
			pat.AddInvoice(seqs)

			date, err := lr.nextMillis()
			if err != nil {
				return patients, err
			}
			if err := pat.SetInvoiceDate(inv, date); err != nil {
				return patients, err
			}

			lines, err := lr.nextInt()
			if err != nil {
				return patients, err
			}
			for l := 0; l < lines; l++ {
				procName, err := lr.next()
				if err != nil {
					return patients, err
				}
				cost, err := lr.nextAmount()
				if err != nil {
					return patients, err
				}
				if err := pat.AddProcedure(inv, seqs, procName, cost); err != nil {
					return patients, err
				}
			}

			payments, err := lr.nextInt()
			if err != nil {
				return patients, err
			}
			for pay := 0; pay < payments; pay++ {
				amount, err := lr.nextAmount()
				if err != nil {
					return patients, err
				}
				paidAt, err := lr.nextMillis()
				if err != nil {
					return patients, err
				}
				if err := pat.AddPayment(inv, seqs, amount); err != nil {
					return patients, err
				}
				if err := pat.SetPaymentDate(inv, pay, paidAt); err != nil {
					return patients, err
				}
			}
		}
	}
	return patients, nil
}

// WritePatients rewrites the patients file: patient count, then per
// patient the contact fields and invoice count, then per invoice the
// epoch-millis date, line items and payments, each count on its own line.
func (c LineCodec) WritePatients(path string, patients []*models.Patient) error {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(patients)))
	b.WriteByte('\n')
	for _, pat := range patients {
		b.WriteString(pat.Name)
		b.WriteByte('\n')
		b.WriteString(pat.Address)
		b.WriteByte('\n')
		b.WriteString(pat.Phone)
		b.WriteByte('\n')
		b.WriteString(pat.Dentist)
		b.WriteByte('\n')
		b.WriteString(strconv.Itoa(pat.InvoiceCount()))
		b.WriteByte('\n')
		for i := 0; i < pat.InvoiceCount(); i++ {
			inv, _ := pat.InvoiceAt(i)
			b.WriteString(strconv.FormatInt(inv.Date().UnixMilli(), 10))
			b.WriteByte('\n')
			b.WriteString(strconv.Itoa(inv.ProcedureCount()))
			b.WriteByte('\n')
			for l := 0; l < inv.ProcedureCount(); l++ {
				proc, _ := inv.ProcedureAt(l)
				b.WriteString(proc.Name)
				b.WriteByte('\n')
				b.WriteString(utils.FormatAmount(proc.Cost))
				b.WriteByte('\n')
			}
			b.WriteString(strconv.Itoa(inv.PaymentCount()))
			b.WriteByte('\n')
			for pay := 0; pay < inv.PaymentCount(); pay++ {
				pmt, _ := inv.PaymentAt(pay)
				b.WriteString(utils.FormatAmount(pmt.Amount))
				b.WriteByte('\n')
				b.WriteString(strconv.FormatInt(pmt.Date().UnixMilli(), 10))
				b.WriteByte('\n')
			}
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func errorsIsEOF(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
