package serverless

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnexpected Kind = iota
	KindSerialization
	KindHTTP
	KindPlatform
	KindFunction
	KindRequirements
)

// Common error kinds, usable as errors.Is targets
var (
	ErrSerialization = errors.New("serialization error")
	ErrHTTP          = errors.New("HTTP error")
	ErrPlatform      = errors.New("platform error")
	ErrFunction      = errors.New("function error")
	ErrRequirements  = errors.New("requirements error")
	ErrUnexpected    = errors.New("unexpected error")
)

var kindSentinels = map[Kind]error{
	KindSerialization: ErrSerialization,
	KindHTTP:          ErrHTTP,
	KindPlatform:      ErrPlatform,
	KindFunction:      ErrFunction,
	KindRequirements:  ErrRequirements,
	KindUnexpected:    ErrUnexpected,
}

// String returns the human readable title of the kind
func (k Kind) String() string {
	switch k {
	case KindSerialization:
		return "Serialization error"
	case KindHTTP:
		return "HTTP error"
	case KindPlatform:
		return "Platform error"
	case KindFunction:
		return "Function error"
	case KindRequirements:
		return "Requirements error"
	default:
		return "Unexpected error"
	}
}

// Error is the error type surfaced by the canonical model, the router and the adapters
type Error struct {
	Kind    Kind   // Category of the failure
	Message string // Human readable detail
	Err     error  // Underlying error, if any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for the error's kind
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

func newErrorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewSerializationError wraps an encode or decode failure
func NewSerializationError(err error) *Error { return newError(KindSerialization, err) }

// NewHTTPError reports a malformed or incomplete request shape
func NewHTTPError(format string, args ...any) *Error { return newErrorf(KindHTTP, format, args...) }

// NewPlatformError reports a native event the adapter did not expect
func NewPlatformError(format string, args ...any) *Error {
	return newErrorf(KindPlatform, format, args...)
}

// NewFunctionError wraps a failure reported by handler code
func NewFunctionError(err error) *Error { return newError(KindFunction, err) }

// NewRequirementsError reports a malformed resource or requirement declaration
func NewRequirementsError(format string, args ...any) *Error {
	return newErrorf(KindRequirements, format, args...)
}

// NewUnexpectedError wraps anything else, including recovered panics
func NewUnexpectedError(err error) *Error { return newError(KindUnexpected, err) }

// KindOf returns the kind of err. Errors outside the taxonomy are KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// IsSerialization returns true if the error is a serialization error
func IsSerialization(err error) bool { return errors.Is(err, ErrSerialization) }

// IsHTTP returns true if the error is an HTTP shape error
func IsHTTP(err error) bool { return errors.Is(err, ErrHTTP) }

// IsPlatform returns true if the error is a platform error
func IsPlatform(err error) bool { return errors.Is(err, ErrPlatform) }

// IsFunction returns true if the error was reported by handler code
func IsFunction(err error) bool { return errors.Is(err, ErrFunction) }

// IsRequirements returns true if the error is a requirements declaration error
func IsRequirements(err error) bool { return errors.Is(err, ErrRequirements) }

// IsUnexpected returns true if the error is an unexpected error
func IsUnexpected(err error) bool { return errors.Is(err, ErrUnexpected) }

// StatusCode maps an error to the HTTP status used in native error replies
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindHTTP, KindPlatform:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
