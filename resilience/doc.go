// Package resilience guards calls to the transport collaborator.
//
// A Policy composes up to four guards around one exchange, outermost first:
//
//	retry -> rate limiter -> bulkhead -> circuit breaker -> call
//
// Every guard is optional and configured from the transport's configuration
// section:
//
//	http:
//	  retry:           { max_attempts: 3, initial_backoff: 100ms }
//	  circuit_breaker: { max_failures: 5, timeout: 30s }
//	  rate_limiter:    { rate: 10, burst: 20 }
//	  bulkhead:        { max_concurrent: 10, max_wait: 1s }
//
// Guards never look at HTTP statuses; they only see transport errors.
package resilience
