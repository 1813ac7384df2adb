package ingest

import "errors"

// ErrValidation is the kind wrapped by every fatal ingestion error.
var ErrValidation = errors.New("validation failed")

// ValidationError aborts a whole comparison request. It is raised only for
// the conditions the contract marks fatal: a failed top-level payload, an
// empty runner selection, or a failed primary record.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func newValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}
