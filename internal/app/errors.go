/**
 * @description
 * Error values and types shared by the application services. The API layer
 * inspects these with errors.Is / errors.As to map each failure category to
 * the right HTTP status, so no service error is ever a bare string the
 * handlers have to parse.
 */
package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClientAlreadyHasAccount is returned when account creation is
	// attempted for a client that already owns one.
	ErrClientAlreadyHasAccount = errors.New("client already has an account")

	// ErrAccountNumberExhausted is returned when a unique account number
	// could not be generated within the retry bound.
	ErrAccountNumberExhausted = errors.New("could not allocate a unique account number")

	// ErrInvalidCredentials is returned on a failed login attempt. It is
	// deliberately identical for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports malformed input. It is always returned before any
// persistence call is attempted.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// newValidationError builds a ValidationError for a single field.
func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
