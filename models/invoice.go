package models

import "time"

// Invoice owns an ordered list of procedure line items and an ordered
// list of payments, and keeps the outstanding balance current across
// every mutation. The balance is maintained incrementally: each add or
// remove adjusts it by the cost or amount involved rather than summing
// the lists from scratch.
type Invoice struct {
	no          int
	date        time.Time
	procedures  []*Procedure
	payments    []*Payment
	outstanding float64
}

func NewInvoice(seqs *Sequences) *Invoice {
	return &Invoice{
		no:   seqs.NextInvoice(),
		date: time.Now(),
	}
}

// AddProcedure appends a line item and raises the outstanding balance by
// its cost.
func (inv *Invoice) AddProcedure(seqs *Sequences, name string, cost float64) {
	inv.procedures = append(inv.procedures, NewProcedure(seqs, name, cost))
	inv.outstanding += cost
}

// RemoveProcedure deletes the line item at index and subtracts its cost
// from the outstanding balance.
func (inv *Invoice) RemoveProcedure(index int) error {
	if index < 0 || index >= len(inv.procedures) {
		return ErrOutOfRange
	}
	inv.outstanding -= inv.procedures[index].Cost
	inv.procedures = append(inv.procedures[:index], inv.procedures[index+1:]...)
	return nil
}

// AddPayment appends a payment dated now and lowers the outstanding
// balance by its amount.
func (inv *Invoice) AddPayment(seqs *Sequences, amount float64) {
	inv.payments = append(inv.payments, NewPayment(seqs, amount))
	inv.outstanding -= amount
}

// RemovePayment deletes the payment at index and adds its amount back to
// the outstanding balance.
func (inv *Invoice) RemovePayment(index int) error {
	if index < 0 || index >= len(inv.payments) {
		return ErrOutOfRange
	}
	inv.outstanding += inv.payments[index].Amount
	inv.payments = append(inv.payments[:index], inv.payments[index+1:]...)
	return nil
}

// No returns the invoice number.
func (inv *Invoice) No() int {
	return inv.no
}

// Date returns the invoice date.
func (inv *Invoice) Date() time.Time {
	return inv.date
}

// Outstanding returns the balance still owed.
func (inv *Invoice) Outstanding() float64 {
	return inv.outstanding
}

// Paid reports whether the invoice is settled. Derived from the balance
// on demand, so it can never drift out of step with it.
func (inv *Invoice) Paid() bool {
	return inv.outstanding <= 0
}

// ProcedureCount returns the number of line items.
func (inv *Invoice) ProcedureCount() int {
	return len(inv.procedures)
}

// PaymentCount returns the number of payments.
func (inv *Invoice) PaymentCount() int {
	return len(inv.payments)
}

// ProcedureAt returns the line item at index.
func (inv *Invoice) ProcedureAt(index int) (*Procedure, error) {
	if index < 0 || index >= len(inv.procedures) {
		return nil, ErrOutOfRange
	}
	return inv.procedures[index], nil
}

// PaymentAt returns the payment at index.
func (inv *Invoice) PaymentAt(index int) (*Payment, error) {
	if index < 0 || index >= len(inv.payments) {
		return nil, ErrOutOfRange
	}
	return inv.payments[index], nil
}

// SetDate overwrites the invoice date. Used during deserialization only.
func (inv *Invoice) SetDate(t time.Time) {
	inv.date = t
}

// SetPaymentDate overwrites the date of the payment at index. Used during
// deserialization only, so restored payments keep their original dates.
func (inv *Invoice) SetPaymentDate(index int, t time.Time) error {
	if index < 0 || index >= len(inv.payments) {
		return ErrOutOfRange
	}
	inv.payments[index].SetDate(t)
	return nil
}
