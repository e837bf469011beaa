package models

import "errors"

// ErrOutOfRange is returned by every index-addressed operation when the
// index falls outside the current bounds of the owning sequence. Callers
// are expected to only pass indices derived from a current listing, so
// hitting this error indicates a caller bug rather than user input.
var ErrOutOfRange = errors.New("index out of range")
