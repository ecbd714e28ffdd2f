package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kbukum/restmapper/resilience"
)

// Adapter sends built requests over HTTP with auth, TLS and resilience.
// It never interprets response statuses. An Adapter is safe for
// concurrent use.
type Adapter struct {
	httpClient *http.Client
	config     Config
	auth       *authenticator
	policy     *resilience.Policy
	maxBody    int64
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithHTTPClient replaces the underlying *http.Client. TLS settings from
// Config are not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) {
		if hc != nil {
			a.httpClient = hc
		}
	}
}

// WithRoundTripper replaces the transport of the underlying *http.Client.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(a *Adapter) {
		if rt != nil {
			a.httpClient.Transport = rt
		}
	}
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		if err := cfg.TLS.Apply(transport); err != nil {
			return nil, err
		}
	}

	auth, err := newAuthenticator(cfg.Auth)
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config:  cfg,
		auth:    auth,
		policy:  resilience.NewPolicy(cfg.policyConfig()),
		maxBody: cfg.maxResponseBytes(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Do sends req through the resilience guards and returns the raw response.
// Every HTTP status yields a Response; errors are always *Error.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := resilience.Execute(ctx, a.policy, func(ctx context.Context) (*Response, error) {
		return a.execute(ctx, req)
	})
	if err != nil {
		return nil, classify(ctx, err)
	}
	return resp, nil
}

// execute builds and sends a single HTTP request.
func (a *Adapter) execute(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBody+1))
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("read response body: %w", err))
	}
	if int64(len(body)) > a.maxBody {
		return nil, NewValidationError(fmt.Sprintf("response body exceeds %d bytes", a.maxBody), nil)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.HasBody {
		if len(req.Body) > 0 {
			body = bytes.NewReader(req.Body)
		} else {
			body = http.NoBody
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, NewValidationError("create request", err)
	}
	if httpReq.URL.Scheme == "" || httpReq.URL.Host == "" {
		return nil, NewValidationError(fmt.Sprintf("request URL %q is not absolute", req.URL), nil)
	}

	for k, v := range mergeHeaders(a.config.Headers, req.Headers) {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", a.config.UserAgent)
	}

	if err := a.auth.apply(httpReq); err != nil {
		return nil, NewValidationError("apply auth", err)
	}
	return httpReq, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// Config returns the effective configuration, defaults applied.
func (a *Adapter) Config() Config {
	return a.config
}

// IsAvailable reports whether the circuit breaker, if any, lets requests through.
func (a *Adapter) IsAvailable(_ context.Context) bool {
	return a.policy.Available()
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}
