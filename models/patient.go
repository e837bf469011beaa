package models

import "time"

// monthMillis is the fixed month length used by the overdue window.
// It approximates the average Gregorian month; existing data files were
// produced against this exact constant, so it must not change.
const monthMillis int64 = 2629743000

// Patient is one patient's ledger: contact details plus the ordered list
// of invoices issued to them. Invoice-level mutations are addressed
// through the patient so the presentation layer only ever holds integer
// indices into current listings.
type Patient struct {
	no int
	Contact
	Phone   string `json:"phone"`
	Dentist string `json:"dentist"`

	invoices []*Invoice
}

func NewPatient(seqs *Sequences, name, address, phone, dentist string) *Patient {
	return &Patient{
		no:      seqs.NextPatient(),
		Contact: Contact{Name: name, Address: address},
		Phone:   phone,
		Dentist: dentist,
	}
}

// No returns the patient number.
func (p *Patient) No() int {
	return p.no
}

// AddInvoice appends a new empty invoice and returns its index.
func (p *Patient) AddInvoice(seqs *Sequences) int {
	p.invoices = append(p.invoices, NewInvoice(seqs))
	return len(p.invoices) - 1
}

// RemoveInvoice deletes the invoice at index.
func (p *Patient) RemoveInvoice(index int) error {
	if index < 0 || index >= len(p.invoices) {
		return ErrOutOfRange
	}
	p.invoices = append(p.invoices[:index], p.invoices[index+1:]...)
	return nil
}

// InvoiceCount returns the number of invoices.
func (p *Patient) InvoiceCount() int {
	return len(p.invoices)
}

// InvoiceAt returns the invoice at index.
func (p *Patient) InvoiceAt(index int) (*Invoice, error) {
	if index < 0 || index >= len(p.invoices) {
		return nil, ErrOutOfRange
	}
	return p.invoices[index], nil
}

// AddProcedure appends a line item to the invoice at index.
func (p *Patient) AddProcedure(invoice int, seqs *Sequences, name string, cost float64) error {
	inv, err := p.InvoiceAt(invoice)
	if err != nil {
		return err
	}
	inv.AddProcedure(seqs, name, cost)
	return nil
}

// RemoveProcedure deletes a line item from the invoice at index.
func (p *Patient) RemoveProcedure(invoice, index int) error {
	inv, err := p.InvoiceAt(invoice)
	if err != nil {
		return err
	}
	return inv.RemoveProcedure(index)
}

// AddPayment appends a payment to the invoice at index.
func (p *Patient) AddPayment(invoice int, seqs *Sequences, amount float64) error {
	inv, err := p.InvoiceAt(invoice)
	if err != nil {
		return err
	}
	inv.AddPayment(seqs, amount)
	return nil
}

// RemovePayment deletes a payment from the invoice at index.
func (p *Patient) RemovePayment(invoice, index int) error {
	inv, err := p.InvoiceAt(invoice)
	if err != nil {
		return err
	}
	return inv.RemovePayment(index)
}

// SetInvoiceDate overwrites the date of the invoice at index. Used during
// deserialization only.
func (p *Patient) SetInvoiceDate(invoice int, t time.Time) error {
	inv, err := p.InvoiceAt(invoice)
	if err != nil {
		return err
	}
	inv.SetDate(t)
	return nil
}

// SetPaymentDate overwrites a payment date on the invoice at index. Used
// during deserialization only.
func (p *Patient) SetPaymentDate(invoice, payment int, t time.Time) error {
	inv, err := p.InvoiceAt(invoice)
	if err != nil {
		return err
	}
	return inv.SetPaymentDate(payment, t)
}

// TotalOutstanding sums the outstanding balance over all invoices. It is
// computed fresh on every call rather than cached.
func (p *Patient) TotalOutstanding() float64 {
	var total float64
	for _, inv := range p.invoices {
		total += inv.Outstanding()
	}
	return total
}

// IsOverdue reports whether at least one invoice is older than the given
// number of months as of now and still carries a positive balance.
func (p *Patient) IsOverdue(now time.Time, months int) bool {
	cutoff := now.UnixMilli() - monthMillis*int64(months)
	for _, inv := range p.invoices {
		if inv.Date().UnixMilli() < cutoff && inv.Outstanding() > 0 {
			return true
		}
	}
	return false
}
