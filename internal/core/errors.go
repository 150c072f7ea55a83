package core

import "errors"

// Error taxonomy shared by all services. Handlers map these to HTTP status
// codes with errors.Is.
var (
	// ErrInvalidInput is returned when a required field is missing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedPayload is returned when a request body cannot be parsed.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrUnauthorized is returned when a launch payload fails verification.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInternal wraps unexpected failures during processing.
	ErrInternal = errors.New("internal error")
)
