package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dentledger-backend/ledger"
)

// The one process-wide ledger and its status sink, set once at startup.
var (
	Ledger *ledger.Ledger
	Sink   *ledger.LogSink
)

// Init wires the controllers to the ledger instance they operate on.
func Init(l *ledger.Ledger, sink *ledger.LogSink) {
	Ledger = l
	Sink = sink
}

// paramIndex parses an integer index route parameter. Indices come from
// the current listings, so a non-numeric value is a malformed request.
func paramIndex(c *fiber.Ctx, name string) (int, error) {
	v, err := strconv.Atoi(c.Params(name))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name+" index")
	}
	return v, nil
}
