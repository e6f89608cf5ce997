package service

import (
	"errors"

	"github.com/Behyna/sms-services/smsscheduler/internal/constants"
)

var (
	ErrInvalidPhoneNumber = errors.New(constants.ErrMsgInvalidPhoneNumber)
	ErrInvalidTimezone    = errors.New(constants.ErrMsgInvalidTimezone)
	ErrSendFailed         = errors.New(constants.ErrMsgSendFailed)
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// IsRecipientError reports whether err is confined to a single recipient.
func IsRecipientError(err error) bool {
	var serviceErr Error
	if !errors.As(err, &serviceErr) {
		return false
	}

	switch serviceErr.Code {
	case constants.ErrCodeInvalidPhoneNumber, constants.ErrCodeSendFailed:
		return true
	default:
		return false
	}
}
