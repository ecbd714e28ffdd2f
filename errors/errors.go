package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified error type returned by every mapped operation.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status code the server answered with (0 for local errors).
	HTTPStatus int `json:"-"`
	// Payload is the decoded response body, passed through verbatim.
	Payload any `json:"payload,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Local errors ---

// UnmappedOperation creates an AppError for a type name without a directive.
func UnmappedOperation(kind, typeName string) *AppError {
	return &AppError{
		Code:    ErrCodeUnmappedOperation,
		Message: fmt.Sprintf("Undefined rest mapping for %s %q", kind, typeName),
		Details: map[string]any{"kind": kind, "type": typeName},
	}
}

// InvalidConfig creates an AppError for an invalid configuration.
func InvalidConfig(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: reason,
	}
}

// InvalidInput creates an AppError for an entity that cannot be encoded.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// --- Transport errors ---

// TransportFailed creates an AppError wrapping a transport-level failure.
// The cause is kept unmodified so callers can inspect it with errors.As.
func TransportFailed(cause error) *AppError {
	msg := "transport failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code: ErrCodeTransportFailed, Message: msg,
		Retryable: true, Cause: cause,
	}
}

// Timeout creates an AppError for an exchange that timed out.
func Timeout(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long.",
		Retryable: true, Cause: cause,
	}
}

// --- Response errors ---

// MalformedResponse creates an AppError for a body that could not be decoded.
func MalformedResponse(statusCode int, body []byte, cause error) *AppError {
	return &AppError{
		Code: ErrCodeMalformedResponse, Message: fmt.Sprintf("Unknown REST response format: %s", body),
		HTTPStatus: statusCode, Cause: cause,
		Details: map[string]any{"body": string(body)},
	}
}

// NotFound creates the synthesized not-found AppError.
func NotFound() *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: "Not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// BadRequest creates an AppError carrying the message reported by the server.
func BadRequest(statusCode int, message string) *AppError {
	return &AppError{
		Code: ErrCodeBadRequest, Message: message,
		HTTPStatus: statusCode,
	}
}

// ClientError creates an AppError for a 4xx answer without a message.
// The decoded body is carried verbatim as Payload.
func ClientError(statusCode int, payload any) *AppError {
	return &AppError{
		Code: ErrCodeClientError, Message: fmt.Sprintf("HTTP %d", statusCode),
		HTTPStatus: statusCode, Payload: payload,
	}
}

// ServerError creates an AppError for a 5xx answer. The decoded body is
// carried verbatim as Payload; message is the server's own when it sent one.
func ServerError(statusCode int, message string, payload any) *AppError {
	if message == "" {
		message = fmt.Sprintf("HTTP %d", statusCode)
	}
	return &AppError{
		Code: ErrCodeServerError, Message: message,
		HTTPStatus: statusCode, Retryable: true, Payload: payload,
	}
}

// UnexpectedStatus creates an AppError for a status outside 2xx, 4xx and 5xx.
func UnexpectedStatus(statusCode int, payload any) *AppError {
	return &AppError{
		Code: ErrCodeUnexpectedStatus, Message: fmt.Sprintf("unexpected HTTP status %d", statusCode),
		HTTPStatus: statusCode, Payload: payload,
	}
}
