package rest

import (
	"context"
	"fmt"

	"github.com/kbukum/restmapper/component"
)

// Component wraps a Client with lifecycle management. The client is created
// in Start, so a bad mapping file fails the startup sequence.
type Component struct {
	config Config
	opts   []Option
	client *Client
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a REST client component.
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

// Start creates the client.
func (c *Component) Start(_ context.Context) error {
	client, err := New(c.config, c.opts...)
	if err != nil {
		return fmt.Errorf("rest client %s: %w", c.Name(), err)
	}
	c.client = client
	return nil
}

// Stop closes the client.
func (c *Component) Stop(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close(ctx)
	c.client = nil
	return err
}

// Health reports degraded while the transport rejects requests.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case c.client == nil:
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case !c.client.IsAvailable(ctx):
		h.Status = component.StatusDegraded
		h.Message = "transport unavailable"
	}
	return h
}

// Describe summarizes the client for startup logs.
func (c *Component) Describe() component.Description {
	d := component.Description{Name: c.Name(), Type: "rest-client", Details: c.config.BaseURL}
	if c.client != nil {
		d.Details = fmt.Sprintf("%s mapped=%d codec=%s", c.client.BaseURL(), c.client.Mapped(), c.client.config.Codec)
	}
	return d
}

// Client returns the client, or nil before Start.
func (c *Component) Client() *Client {
	return c.client
}
