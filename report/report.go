// Package report renders the free-text patient reports and writes them to
// a caller-named file.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"dentledger-backend/models"
	"dentledger-backend/utils"
)

// Mode selects which report is produced.
type Mode int

const (
	// ByName lists every patient sorted ascending by name.
	ByName Mode = iota
	// Overdue lists only patients with at least one invoice unpaid for
	// more than six months, sorted descending by total outstanding.
	Overdue
)

const overdueMonths = 6

const (
	invoiceDateLayout = "02/01/2006 15:04"
	paymentDateLayout = "02/01/2006"
)

// Render builds the report text for the given mode. The input slice is
// not reordered; sorting happens on a copy.
func Render(patients []*models.Patient, mode Mode, now time.Time) string {
	sorted := make([]*models.Patient, len(patients))
	copy(sorted, patients)

	var b strings.Builder
	switch mode {
	case Overdue:
		b.WriteString("Report of patients sorted by unpaid over 6 months.\n\n")
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TotalOutstanding() > sorted[j].TotalOutstanding()
		})
		var blocks []string
		for _, p := range sorted {
			if p.IsOverdue(now, overdueMonths) {
				blocks = append(blocks, patientBlock(p))
			}
		}
		b.WriteString(strings.Join(blocks, "\n"))
	default:
		b.WriteString("Report of patients sorted by name.\n\n")
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
		blocks := make([]string, 0, len(sorted))
		for _, p := range sorted {
			blocks = append(blocks, patientBlock(p))
		}
		b.WriteString(strings.Join(blocks, "\n"))
	}
	return b.String()
}

// Write renders the report and replaces the named file with it.
func Write(patients []*models.Patient, mode Mode, filename string, now time.Time) error {
	return os.WriteFile(filename, []byte(Render(patients, mode, now)), 0o644)
}

func patientBlock(p *models.Patient) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patient: \t%s, address: \t%s, phone number: \t%s, dentist: \t%s.",
		p.Name, p.Address, p.Phone, p.Dentist)
	if p.InvoiceCount() > 0 {
		b.WriteString(", invoices: \n")
		for i := 0; i < p.InvoiceCount(); i++ {
			inv, _ := p.InvoiceAt(i)
			b.WriteString(invoiceBlock(inv))
		}
	}
	b.WriteString("\n***")
	return b.String()
}

func invoiceBlock(inv *models.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invoice number \t%d, date \t%s, outstanding \t€%s:\n",
		inv.No(), inv.Date().Format(invoiceDateLayout), utils.FormatAmount(inv.Outstanding()))
	if inv.ProcedureCount() > 0 {
		b.WriteString("Procedures:\n")
		for i := 0; i < inv.ProcedureCount(); i++ {
			proc, _ := inv.ProcedureAt(i)
			fmt.Fprintf(&b, "€%s \t%s\n", utils.FormatAmount(proc.Cost), proc.Name)
		}
	}
	if inv.PaymentCount() > 0 {
		b.WriteString("Payments:\n")
		for i := 0; i < inv.PaymentCount(); i++ {
			pmt, _ := inv.PaymentAt(i)
			fmt.Fprintf(&b, "%s \t€%s\n", pmt.Date().Format(paymentDateLayout), utils.FormatAmount(pmt.Amount))
		}
	}
	return b.String()
}
