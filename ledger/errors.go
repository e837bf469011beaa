package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// Operation failure taxonomy. Handlers match these with errors.Is to pick
// a status code; the wrapped text is the human-readable status message
// that also goes to the log sink.
var (
	// ErrInvalidInput marks an empty required field or unparsable
	// numeric text. The operation is aborted with no state change.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicate marks a name that already exists in the catalog or
	// the dentist roster.
	ErrDuplicate = errors.New("duplicate")

	// ErrNotAuthenticated marks a failed login.
	ErrNotAuthenticated = errors.New("invalid credentials")
)

func invalidf(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.TrimSpace(msg))
}

func duplicatef(msg string) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, strings.TrimSpace(msg))
}
