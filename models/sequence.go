package models

// Sequences owns the record counters for every entity kind. Numbers are
// handed out monotonically and never reused, even after the record they
// were assigned to is removed, which is why they are explicit counters
// rather than slice lengths.
//
// A Sequences value is not safe for concurrent use; the owning ledger
// serializes all access behind its mutex.
type Sequences struct {
	patient   int
	invoice   int
	procedure int
	payment   int
}

func NewSequences() *Sequences {
	return &Sequences{}
}

// NextPatient returns the next patient number.
func (s *Sequences) NextPatient() int {
	s.patient++
	return s.patient
}

// NextInvoice returns the next invoice number.
func (s *Sequences) NextInvoice() int {
	s.invoice++
	return s.invoice
}

// NextProcedure returns the next procedure number.
func (s *Sequences) NextProcedure() int {
	s.procedure++
	return s.procedure
}

// NextPayment returns the next payment number.
func (s *Sequences) NextPayment() int {
	s.payment++
	return s.payment
}
