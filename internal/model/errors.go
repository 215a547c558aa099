package model

import "fmt"

// ValidationError reports malformed required input, rejected before the
// record reaches the store. Missing-record cases are deliberately NOT
// errors: operations targeting an absent primary key resolve as no-ops.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation is shorthand for constructing a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
