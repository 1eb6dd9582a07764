package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers network failures, timeouts and 5xx responses.
	ErrUnavailable = errors.New("server unavailable")
	// ErrRejected means the server refused the request (4xx or success=false).
	ErrRejected = errors.New("request rejected")
	// ErrUnexpectedResponse means the response body could not be understood.
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// APIError carries the server's status and message for a rejected request.
// It matches ErrRejected with errors.Is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request rejected with status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrRejected
}
