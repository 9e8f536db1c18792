package models

import "fmt"

// Error codes used for internal error handling and logging.
const (
	ErrCodeInvalidURL         = "INVALID_URL"
	ErrCodeFetchFailed        = "FETCH_FAILED"
	ErrCodeUpstreamStatus     = "UPSTREAM_STATUS"
	ErrCodeUnsupportedContent = "UNSUPPORTED_CONTENT"
	ErrCodeBodyTooLarge       = "BODY_TOO_LARGE"
	ErrCodeParseFailed        = "PARSE_FAILED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// MsgURLRequired is returned to callers that omit the url field.
const MsgURLRequired = "URL is required"

// FetchError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type FetchError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(code, message string, err error) *FetchError {
	return &FetchError{Code: code, Message: message, Err: err}
}

// PublicMessage is the text reported to API callers: the message plus the
// underlying cause when there is one.
func (e *FetchError) PublicMessage() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}
