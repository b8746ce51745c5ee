package domain

import "errors"

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Session errors
var (
	// ErrLookupFailure is returned when no identity is registered for an email
	ErrLookupFailure = errors.New("no identity registered for email")
	ErrValidation    = errors.New("validation failed")
	ErrNoIdentity    = errors.New("no identity in session")
)

// LookupFailureMessage is shown inline on the login screen after a lookup miss
const LookupFailureMessage = "Invalid credentials. Use admin@resqall.com, jane@example.com, or sam@resqall.com"

// ValidationError carries the inline message shown for a rejected form
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
