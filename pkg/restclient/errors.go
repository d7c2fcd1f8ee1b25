package restclient

import (
	"errors"
	"fmt"
)

// Errors are grouped by where the call broke down:
// building the request, reaching the server, or understanding its answer.
var (
	ErrInvalidURL       = errors.New("restclient: invalid URL")
	ErrEncodeRequest    = errors.New("restclient: failed to encode request body")
	ErrRequestFailed    = errors.New("restclient: request failed")
	ErrTimeout          = errors.New("restclient: request timed out")
	ErrUnexpectedStatus = errors.New("restclient: unexpected response status")
	ErrDecodeResponse   = errors.New("restclient: failed to decode response")
)

// StatusError is returned for non-2xx responses.
// Message holds the server's "message" field when the body is JSON, or a
// trimmed copy of the raw body otherwise.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
