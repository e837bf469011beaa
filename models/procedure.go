package models

// Procedure is a billable procedure type with its price. The same shape
// serves as a clinic catalog entry and as an invoice line item: attaching
// a catalog entry to an invoice copies it (with a fresh number), so later
// catalog edits never rewrite already-issued invoices.
type Procedure struct {
	no   int
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

func NewProcedure(seqs *Sequences, name string, cost float64) *Procedure {
	return &Procedure{
		no:   seqs.NextProcedure(),
		Name: name,
		Cost: cost,
	}
}

// No returns the procedure number.
func (p *Procedure) No() int {
	return p.no
}
