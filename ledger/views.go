package ledger

import (
	"time"

	"dentledger-backend/models"
)

// Read-only snapshots handed to the presentation layer. Handlers address
// records by position in these listings; the listings are rebuilt under
// the ledger mutex on every call so indices stay consistent with the
// mutating operations.

type ProcedureView struct {
	No   int     `json:"no"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type PaymentView struct {
	No     int       `json:"no"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

type InvoiceView struct {
	No          int             `json:"no"`
	Date        time.Time       `json:"date"`
	Outstanding float64         `json:"outstanding"`
	Paid        bool            `json:"paid"`
	Procedures  []ProcedureView `json:"procedures"`
	Payments    []PaymentView   `json:"payments"`
}

type PatientView struct {
	No          int           `json:"no"`
	Name        string        `json:"name"`
	Address     string        `json:"address"`
	Phone       string        `json:"phone"`
	Dentist     string        `json:"dentist"`
	Outstanding float64       `json:"outstanding"`
	Invoices    []InvoiceView `json:"invoices"`
}

// Procedures returns the catalog in catalog order.
func (l *Ledger) Procedures() []ProcedureView {
	l.mu.Lock()
	defer l.mu.Unlock()

	views := make([]ProcedureView, len(l.catalog))
	for i, p := range l.catalog {
		views[i] = ProcedureView{No: p.No(), Name: p.Name, Cost: p.Cost}
	}
	return views
}

// Patients returns the full roster with nested invoices, in roster order.
func (l *Ledger) Patients() []PatientView {
	l.mu.Lock()
	defer l.mu.Unlock()

	views := make([]PatientView, len(l.patients))
	for i, p := range l.patients {
		views[i] = patientView(p)
	}
	return views
}

// PatientAt returns the patient at index with nested invoices.
func (l *Ledger) PatientAt(index int) (PatientView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.patients) {
		return PatientView{}, models.ErrOutOfRange
	}
	return patientView(l.patients[index]), nil
}

func patientView(p *models.Patient) PatientView {
	view := PatientView{
		No:          p.No(),
		Name:        p.Name,
		Address:     p.Address,
		Phone:       p.Phone,
		Dentist:     p.Dentist,
		Outstanding: p.TotalOutstanding(),
		Invoices:    make([]InvoiceView, p.InvoiceCount()),
	}
	for i := 0; i < p.InvoiceCount(); i++ {
		inv, _ := p.InvoiceAt(i)
		view.Invoices[i] = invoiceView(inv)
	}
	return view
}

func invoiceView(inv *models.Invoice) InvoiceView {
	view := InvoiceView{
		No:          inv.No(),
		Date:        inv.Date(),
		Outstanding: inv.Outstanding(),
		Paid:        inv.Paid(),
		Procedures:  make([]ProcedureView, inv.ProcedureCount()),
		Payments:    make([]PaymentView, inv.PaymentCount()),
	}
	for i := 0; i < inv.ProcedureCount(); i++ {
		p, _ := inv.ProcedureAt(i)
		view.Procedures[i] = ProcedureView{No: p.No(), Name: p.Name, Cost: p.Cost}
	}
	for i := 0; i < inv.PaymentCount(); i++ {
		p, _ := inv.PaymentAt(i)
		view.Payments[i] = PaymentView{No: p.No(), Amount: p.Amount, Date: p.Date()}
	}
	return view
}
