package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Local errors, raised before any network exchange.
const (
	// ErrCodeUnmappedOperation indicates no directive exists for the type name
	// under the requested operation kind.
	ErrCodeUnmappedOperation ErrorCode = "UNMAPPED_OPERATION"
	// ErrCodeInvalidConfig indicates the mapping or client configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeInvalidInput indicates the entity could not be turned into a request.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Transport errors (retryable)
const (
	// ErrCodeTransportFailed indicates the transport could not complete the exchange.
	ErrCodeTransportFailed ErrorCode = "TRANSPORT_FAILED"
	// ErrCodeTimeout indicates the exchange timed out or the context ended.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Response errors
const (
	// ErrCodeMalformedResponse indicates the response body could not be decoded.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	// ErrCodeNotFound indicates the server answered 404.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeBadRequest indicates a 4xx answer carrying a message.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	// ErrCodeClientError indicates a 4xx answer without a recognizable message.
	ErrCodeClientError ErrorCode = "CLIENT_ERROR"
	// ErrCodeServerError indicates a 5xx answer.
	ErrCodeServerError ErrorCode = "SERVER_ERROR"
	// ErrCodeUnexpectedStatus indicates a status outside 2xx, 4xx and 5xx.
	ErrCodeUnexpectedStatus ErrorCode = "UNEXPECTED_STATUS"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransportFailed: true,
	ErrCodeTimeout:         true,
	ErrCodeServerError:     true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
