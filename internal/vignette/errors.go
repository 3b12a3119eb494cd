package vignette

import (
	"errors"
	"fmt"
)

// ErrNoCandidates is returned by Select when no unused record of the
// requested category remains. Callers re-prompt without resetting the pool.
var ErrNoCandidates = errors.New("vignette: no candidates remain for category")

// MissingFieldError reports a record that lacks a field composition needs.
// It signals unusable input data and is not meant to be recovered from.
type MissingFieldError struct {
	RecordID string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("vignette: record %q is missing required field %s", e.RecordID, e.Field)
}
