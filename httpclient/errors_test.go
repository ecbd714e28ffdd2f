package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/kbukum/restmapper/resilience"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeValidation, "validation"},
		{ErrCodeUnavailable, "unavailable"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{Code: ErrCodeConnection, Message: "connection refused"}
	want := "httpclient: connection: connection refused"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	v := NewValidationError("create request", errors.New("bad method"))
	if got := v.Error(); got != "httpclient: validation: create request: bad method" {
		t.Errorf("got %q", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	e := NewConnectionError(inner)
	if !errors.Is(e, inner) {
		t.Error("errors.Is should reach the inner error")
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout", NewTimeoutError(errors.New("t")), true},
		{"connection", NewConnectionError(errors.New("c")), true},
		{"validation", NewValidationError("v", nil), false},
		{"unavailable", NewUnavailableError(resilience.ErrCircuitOpen), false},
		{"wrapped", fmt.Errorf("outer: %w", NewTimeoutError(errors.New("t"))), true},
		{"plain", errors.New("plain"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestClassify(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		is   func(error) bool
	}{
		{"circuit open", context.Background(), resilience.ErrCircuitOpen, IsUnavailable},
		{"bulkhead full", context.Background(), resilience.ErrBulkheadFull, IsUnavailable},
		{"bulkhead timeout", context.Background(), resilience.ErrBulkheadTimeout, IsUnavailable},
		{"context done", canceled, errors.New("dial"), IsTimeout},
		{"deadline", context.Background(), context.DeadlineExceeded, IsTimeout},
		{"net timeout", context.Background(), timeoutErr{}, IsTimeout},
		{"refused", context.Background(), errors.New("connection refused"), IsConnection},
		{"already classified", context.Background(), NewValidationError("v", nil), IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.ctx, tt.err)
			if !tt.is(got) {
				t.Errorf("classify(%v) = %v (%s)", tt.err, got, got.Code)
			}
		})
	}
}
