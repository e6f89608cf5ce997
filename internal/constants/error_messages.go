package constants

const (
	ErrCodeConfigNotFound      = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse         = "CONFIG_PARSE_ERROR"
	ErrCodeRecipientsNotFound  = "RECIPIENTS_NOT_FOUND"
	ErrCodeRecipientsRead      = "RECIPIENTS_READ_ERROR"
	ErrCodeInvalidPhoneNumber  = "INVALID_PHONE_NUMBER"
	ErrCodeInvalidTimezone     = "INVALID_TIMEZONE"
	ErrCodeSendFailed          = "SEND_FAILED"
	ErrCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	ErrCodeAborted             = "ABORTED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

const (
	ErrMsgConfigNotFound      = "config file not found"
	ErrMsgConfigParse         = "failed to parse config file"
	ErrMsgRecipientsNotFound  = "phone numbers file not found"
	ErrMsgRecipientsRead      = "could not read phone numbers file"
	ErrMsgInvalidPhoneNumber  = "invalid phone number format"
	ErrMsgInvalidTimezone     = "unknown timezone"
	ErrMsgSendFailed          = "failed to send SMS"
	ErrMsgProviderUnavailable = "could not create provider client"
	ErrMsgAborted             = "aborted by operator"
	ErrMsgInternalError       = "internal error"
)

const (
	ExitOK    = 0
	ExitError = 1
)

var errorMessages = map[string]string{
	ErrCodeConfigNotFound:      ErrMsgConfigNotFound,
	ErrCodeConfigParse:         ErrMsgConfigParse,
	ErrCodeRecipientsNotFound:  ErrMsgRecipientsNotFound,
	ErrCodeRecipientsRead:      ErrMsgRecipientsRead,
	ErrCodeInvalidPhoneNumber:  ErrMsgInvalidPhoneNumber,
	ErrCodeInvalidTimezone:     ErrMsgInvalidTimezone,
	ErrCodeSendFailed:          ErrMsgSendFailed,
	ErrCodeProviderUnavailable: ErrMsgProviderUnavailable,
	ErrCodeAborted:             ErrMsgAborted,
	ErrCodeInternalError:       ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

// GetExitCode maps an error code to the process exit status. Per-recipient
// failures are reported in the summary and never change the exit status.
func GetExitCode(code string) int {
	switch code {
	case ErrCodeInvalidPhoneNumber, ErrCodeSendFailed:
		return ExitOK
	case "":
		return ExitOK
	default:
		return ExitError
	}
}
