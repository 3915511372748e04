package runalloy

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	// ErrorTypeAPI is a non-2xx answer from RunAlloy
	ErrorTypeAPI ErrorType = "api"
	// ErrorTypeInvalidResponse is a body that is not JSON
	ErrorTypeInvalidResponse ErrorType = "invalid_response"
	ErrorTypeNetwork         ErrorType = "network"
	ErrorTypeTimeout         ErrorType = "timeout"
)

const (
	messageAPIError        = "RunAlloy API error"
	messageInvalidResponse = "Invalid response from RunAlloy API"
	messageNetworkError    = "Network error during RunAlloy API request"
	messageTimeout         = "Request timeout to RunAlloy API"
)

// Error represents a failed call to the RunAlloy API
type Error struct {
	Type       ErrorType `json:"type"`
	StatusCode int       `json:"status_code"`
	Message    string    `json:"message"`
	// Details is the parsed error body, or the raw text when it was not JSON
	Details any   `json:"details,omitempty"`
	Cause   error `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("runalloy: %s (status: %d)", e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) IsTimeout() bool {
	return e.Type == ErrorTypeTimeout
}

func (e *Error) IsNetwork() bool {
	return e.Type == ErrorTypeNetwork
}

func (e *Error) IsNotFound() bool {
	return e.Type == ErrorTypeAPI && e.StatusCode == 404
}

// IsRunAlloyError finds a RunAlloy API error anywhere in err's chain
func IsRunAlloyError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
