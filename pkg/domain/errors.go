package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ErrorKindValidation       ErrorKind = "validation"
	ErrorKindNotFound         ErrorKind = "not_found"
	ErrorKindVendor           ErrorKind = "vendor"
	ErrorKindNetwork          ErrorKind = "network"
	ErrorKindTimeout          ErrorKind = "timeout"
	ErrorKindMethodNotAllowed ErrorKind = "method_not_allowed"
	ErrorKindSchemaMismatch   ErrorKind = "schema_mismatch"
	ErrorKindConfiguration    ErrorKind = "configuration"
)

// Error is the uniform failure shape surfaced to HTTP callers as {error, details}.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Details    any
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (status: %d): %v", e.Kind, e.Message, e.StatusCode, e.Cause)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.Kind, e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewValidationError(message string) *Error {
	return &Error{Kind: ErrorKindValidation, StatusCode: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrorKindNotFound, StatusCode: http.StatusNotFound, Message: message}
}

func NewVendorError(statusCode int, message string, details any) *Error {
	return &Error{Kind: ErrorKindVendor, StatusCode: statusCode, Message: message, Details: details}
}

func NewNetworkError(cause error) *Error {
	details := ""
	if cause != nil {
		details = cause.Error()
	}

	return &Error{
		Kind:       ErrorKindNetwork,
		StatusCode: http.StatusInternalServerError,
		Message:    "Network error during RunAlloy API request",
		Details:    details,
		Cause:      cause,
	}
}

func NewTimeoutError(cause error, details string) *Error {
	return &Error{
		Kind:       ErrorKindTimeout,
		StatusCode: http.StatusRequestTimeout,
		Message:    "Request timeout to RunAlloy API",
		Details:    details,
		Cause:      cause,
	}
}

func NewMethodNotAllowedError() *Error {
	return &Error{Kind: ErrorKindMethodNotAllowed, StatusCode: http.StatusMethodNotAllowed, Message: "Method not allowed"}
}

func NewSchemaMismatchError(action string, tried []string) *Error {
	return &Error{
		Kind:       ErrorKindSchemaMismatch,
		StatusCode: http.StatusBadGateway,
		Message:    fmt.Sprintf("Unexpected response shape for %s", action),
		Details:    map[string]any{"action": action, "paths": tried},
	}
}

func NewConfigurationError(message string) *Error {
	return &Error{Kind: ErrorKindConfiguration, StatusCode: http.StatusInternalServerError, Message: message}
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)

	return ok && e.Kind == kind
}

func IsNotFound(err error) bool {
	return IsKind(err, ErrorKindNotFound)
}

func IsValidation(err error) bool {
	return IsKind(err, ErrorKindValidation)
}
