package smsprovider

import (
	"errors"
	"fmt"
)

const (
	ErrorCodeRejected      = "REJECTED"       // API-level error response
	ErrorCodeNetworkError  = "NETWORK_ERROR"  // request never got an API answer
	ErrorCodeInvalidClient = "INVALID_CLIENT" // client could not be constructed
)

var (
	ErrMissingCredentials = errors.New("provider credentials not configured")
	ErrInvalidSendAt      = errors.New("send_at is not an ISO-8601 UTC instant")
)

// RejectedError is returned when the provider answers a request with an error document.
type RejectedError struct {
	Status   int
	Code     int
	Message  string
	MoreInfo string
}

func (e *RejectedError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (status %d, code %d)", e.Message, e.Status, e.Code)
	}

	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// ErrorCode classifies err the same way the provider constants do.
func ErrorCode(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return ErrorCodeRejected
	}

	if errors.Is(err, ErrMissingCredentials) {
		return ErrorCodeInvalidClient
	}

	return ErrorCodeNetworkError
}

// ErrorMessage returns the human-readable provider text for err.
func ErrorMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}

	return err.Error()
}
