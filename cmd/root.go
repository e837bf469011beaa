package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dentledger-backend/codec"
	"dentledger-backend/ledger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "dentledger",
	Short: "Dental practice patient and invoice ledger",
	Long: `dentledger keeps a single clinic's patient roster, procedure price
list and per-patient invoices in plain text data files.

The serve command hosts the HTTP API a form-based frontend talks to;
the report command renders a patient report straight from the data
files without serving.`,
	Version: version,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// newLedger builds the process ledger on the configured data files and
// loads whatever they hold.
func newLedger() (*ledger.Ledger, *ledger.LogSink) {
	sink := ledger.NewLogSink(log.With().Str("component", "ledger").Logger())
	l := ledger.New(codec.LineCodec{}, codec.PathsFromEnv(), sink, log.With().Str("component", "ledger").Logger())
	l.Load()
	return l, sink
}
