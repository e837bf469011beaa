package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dentledger-backend/report"
)

var reportMode int

var reportCmd = &cobra.Command{
	Use:   "report [output-file]",
	Short: "Write a patient report from the data files",
	Long: `Renders a patient report straight from the data files.

Mode 0 lists every patient sorted ascending by name. Mode 1 lists only
patients with an invoice unpaid for over six months, sorted descending
by total outstanding.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVarP(&reportMode, "mode", "m", 0, "report mode: 0 = by name, 1 = overdue")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportMode != 0 && reportMode != 1 {
		return fmt.Errorf("mode must be 0 or 1, got %d", reportMode)
	}

	l, _ := newLedger()
	if err := l.WriteReport(report.Mode(reportMode), args[0]); err != nil {
		return err
	}
	fmt.Println("Report written to", args[0])
	return nil
}
