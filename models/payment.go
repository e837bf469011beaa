package models

import "time"

// Payment records money received against an invoice. The amount is fixed
// at creation; the date defaults to now and is overwritten only when
// restoring a payment from file, to keep the original date instead of the
// reload time.
type Payment struct {
	no     int
	Amount float64
	date   time.Time
}

func NewPayment(seqs *Sequences, amount float64) *Payment {
	return &Payment{
		no:     seqs.NextPayment(),
		Amount: amount,
		date:   time.Now(),
	}
}

// No returns the payment number.
func (p *Payment) No() int {
	return p.no
}

// Date returns when the payment was received.
func (p *Payment) Date() time.Time {
	return p.date
}

// SetDate overwrites the payment date. Used during deserialization only.
func (p *Payment) SetDate(t time.Time) {
	p.date = t
}
