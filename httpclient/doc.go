// Package httpclient sends fully built HTTP requests and returns the raw
// responses. It owns the concerns below the REST mapping layer:
// authentication (bearer, basic, API key, self-signed JWT), TLS and the
// resilience guards. Response statuses are never interpreted here; a 404
// is a Response like any other. Errors are always *Error and describe
// transport failures only.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    Timeout: 10 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := adapter.Do(ctx, httpclient.Request{
//	    Method:  http.MethodPost,
//	    URL:     "https://api.example.com/v1/video",
//	    Body:    []byte(`{"title":"intro"}`),
//	    HasBody: true,
//	})
//
// # With Resilience
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    Resilience: resilience.PolicyConfig{
//	        Retry:          httpclient.DefaultRetryConfig(),
//	        CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("catalog"),
//	    },
//	})
package httpclient
