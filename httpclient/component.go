package httpclient

import (
	"context"
	"fmt"

	"github.com/kbukum/restmapper/component"
)

// Component wraps an Adapter with lifecycle management. It executes requests
// itself, so one started adapter can serve as the transport of several REST
// clients registered after it.
type Component struct {
	adapter *Adapter
	config  Config
	opts    []Option
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new HTTP adapter component.
// The adapter is created lazily in Start().
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	if c.config.Name == "" {
		return defaultName
	}
	return c.config.Name
}

// Start initializes the HTTP adapter.
func (c *Component) Start(_ context.Context) error {
	a, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.adapter = a
	return nil
}

// Stop closes the HTTP adapter and releases resources.
func (c *Component) Stop(ctx context.Context) error {
	if c.adapter != nil {
		return c.adapter.Close(ctx)
	}
	return nil
}

// Do executes req through the started adapter.
func (c *Component) Do(ctx context.Context, req Request) (*Response, error) {
	if c.adapter == nil {
		return nil, NewUnavailableError(fmt.Errorf("http adapter %s not started", c.Name()))
	}
	return c.adapter.Do(ctx, req)
}

// IsAvailable reports whether the adapter is started and its circuit
// breaker accepts requests.
func (c *Component) IsAvailable(ctx context.Context) bool {
	return c.adapter != nil && c.adapter.IsAvailable(ctx)
}

// Health returns the adapter health status.
func (c *Component) Health(ctx context.Context) component.Health {
	switch {
	case c.adapter == nil:
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	case !c.IsAvailable(ctx):
		return component.Health{Name: c.Name(), Status: component.StatusDegraded, Message: "circuit open"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns component description for the bootstrap summary.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "http-adapter",
		Details: c.details(),
	}
}

// Adapter returns the underlying HTTP adapter. Must be called after Start().
func (c *Component) Adapter() *Adapter {
	return c.adapter
}

func (c *Component) details() string {
	cfg := c.config
	cfg.ApplyDefaults()
	d := fmt.Sprintf("timeout=%s", cfg.Timeout)
	if cfg.Auth != nil && cfg.Auth.Type != AuthNone {
		d += " auth=" + string(cfg.Auth.Type)
	}
	if cfg.TLS.IsEnabled() {
		d += " tls=on"
	}
	if cfg.Resilience.Retry != nil {
		d += fmt.Sprintf(" retry=%d", cfg.Resilience.Retry.MaxAttempts)
	}
	if cfg.Resilience.CircuitBreaker != nil {
		d += " breaker=on"
	}
	return d
}
