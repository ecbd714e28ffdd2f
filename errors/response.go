package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure of an AppError when it is serialized.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details.
type ErrorBody struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Retryable bool                   `json:"retryable"`
	Payload   any                    `json:"payload,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Payload:   e.Payload,
			Details:   e.Details,
		},
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsUnmapped checks if an error is an unmapped-operation error.
func IsUnmapped(err error) bool { return HasCode(err, ErrCodeUnmappedOperation) }

// IsTransport checks if an error is a transport failure, timeouts included.
func IsTransport(err error) bool {
	return HasCode(err, ErrCodeTransportFailed) || HasCode(err, ErrCodeTimeout)
}

// IsMalformed checks if an error is a malformed-response error.
func IsMalformed(err error) bool { return HasCode(err, ErrCodeMalformedResponse) }

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool { return HasCode(err, ErrCodeNotFound) }

// IsBadRequest checks if an error is a bad-request error.
func IsBadRequest(err error) bool { return HasCode(err, ErrCodeBadRequest) }

// IsClientError checks if an error is an unclassified client error.
func IsClientError(err error) bool { return HasCode(err, ErrCodeClientError) }

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool { return HasCode(err, ErrCodeServerError) }
