package services

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of entity ids that do not exist. Wrap it with
// context and check with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError rejects a semantically invalid request. Validation is
// fail-fast: only the first offending field is reported.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
