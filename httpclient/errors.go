package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/kbukum/restmapper/resilience"
)

// ErrorCode classifies transport failures. HTTP statuses are never errors
// at this layer.
type ErrorCode int

const (
	// ErrCodeTimeout indicates the exchange ran out of time.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates the exchange failed on the wire (refused, DNS, reset, TLS).
	ErrCodeConnection
	// ErrCodeValidation indicates the request could not be built.
	ErrCodeValidation
	// ErrCodeUnavailable indicates a resilience guard rejected the exchange.
	ErrCodeUnavailable
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is a classified transport error.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable indicates whether the exchange can be retried.
	Retryable bool
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewValidationError creates a request-building error.
func NewValidationError(msg string, err error) *Error {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &Error{Code: ErrCodeValidation, Message: msg, Err: err}
}

// NewUnavailableError creates an error for an exchange rejected by a guard.
func NewUnavailableError(err error) *Error {
	return &Error{Code: ErrCodeUnavailable, Message: err.Error(), Err: err}
}

// classify turns an error from the exchange or the guards into an *Error.
func classify(ctx context.Context, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen),
		errors.Is(err, resilience.ErrBulkheadFull),
		errors.Is(err, resilience.ErrBulkheadTimeout):
		return NewUnavailableError(err)
	case ctx.Err() != nil,
		errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsValidation checks if an error is a request-building error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeValidation
}

// IsUnavailable checks if an error was raised by a resilience guard.
func IsUnavailable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeUnavailable
}

// IsRetryable checks if an error is marked retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
