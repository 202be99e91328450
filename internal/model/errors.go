package model

import (
	"errors"
	"fmt"
)

// Error kinds shared by every backend variant.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("you do not own this item")
	ErrNotFound           = errors.New("not found")
	ErrUnavailable        = errors.New("item is not available for rent")
	ErrValidation         = errors.New("invalid request")
	ErrTransport          = errors.New("transport failure")
)

// Error codes used on the wire.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeUnavailable        = "UNAVAILABLE"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

var codeKinds = map[string]error{
	CodeInvalidCredentials: ErrInvalidCredentials,
	CodeUnauthenticated:    ErrUnauthenticated,
	CodeForbidden:          ErrForbidden,
	CodeNotFound:           ErrNotFound,
	CodeUnavailable:        ErrUnavailable,
	CodeValidation:         ErrValidation,
}

// ErrorCode returns the wire code for err, or CodeInternal.
func ErrorCode(err error) string {
	for code, kind := range codeKinds {
		if errors.Is(err, kind) {
			return code
		}
	}
	return CodeInternal
}

// TransportError is a non-2xx response from the real backend.
type TransportError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *TransportError) Error() string {
	return e.Message
}

// Is matches ErrTransport and the domain kind named by the response code.
func (e *TransportError) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	kind, ok := codeKinds[e.Code]
	return ok && kind == target
}

// NewTransportError builds a TransportError, falling back to a status-coded
// message when the body carried none.
func NewTransportError(status int, code, message string) *TransportError {
	if message == "" {
		message = fmt.Sprintf("API error: %d", status)
	}
	return &TransportError{StatusCode: status, Code: code, Message: message}
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}
