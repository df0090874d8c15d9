package user

import "fmt"

// MissingFieldError is returned when a required event field is absent.
type MissingFieldError struct {
	Field string
}

func NewMissingFieldError(field string) error {
	return &MissingFieldError{Field: field}
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
