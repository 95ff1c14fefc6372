package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record exists with the requested id.
var ErrNotFound = errors.New("record not found")

// DuplicateEmailError is returned when a customer create or update would
// collide with an existing customer's email (compared case-insensitively).
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("customer with email %q already exists", e.Email)
}

// ValidationError is returned when a record is missing a required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
