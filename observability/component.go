package observability

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/restmapper/component"
)

// Component installs the exporters on Start and flushes them on Stop.
// Register it before the clients it instruments so it stops after them.
type Component struct {
	config Config

	mu       sync.Mutex
	shutdown func(context.Context) error
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates an exporter component for cfg.
func NewComponent(cfg Config) *Component {
	return &Component{config: cfg}
}

// Name returns the component name.
func (c *Component) Name() string { return "observability" }

// Start installs the tracer and meter providers. Disabled configs start
// without exporters.
func (c *Component) Start(ctx context.Context) error {
	shutdown, err := Init(ctx, c.config)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.shutdown = shutdown
	c.mu.Unlock()
	return nil
}

// Stop flushes pending spans and metrics.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	shutdown := c.shutdown
	c.shutdown = nil
	c.mu.Unlock()
	if shutdown == nil {
		return nil
	}
	return shutdown(ctx)
}

// Health is healthy once started.
func (c *Component) Health(_ context.Context) component.Health {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shutdown == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe summarizes the exporter settings.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.config.Enabled {
		details = fmt.Sprintf("endpoint=%s sample_rate=%v", c.config.Endpoint, c.config.SampleRate)
	}
	return component.Description{Name: c.Name(), Type: "otel", Details: details}
}
