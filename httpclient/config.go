package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/restmapper/errors"
	"github.com/kbukum/restmapper/resilience"
	"github.com/kbukum/restmapper/security"
	"github.com/kbukum/restmapper/util"
	"github.com/kbukum/restmapper/version"
)

const (
	defaultName    = "http"
	defaultTimeout = 30 * time.Second

	defaultMaxResponseSize = "32MB"
)

// Config configures the HTTP transport.
type Config struct {
	// Name identifies the client in logs and component listings. Defaults to "http".
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout bounds one exchange, body read included. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent unless a request sets its own. Defaults to "restmapper/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// MaxResponseSize caps the bytes read from one response body, e.g.
	// "512KB" or "10MB". Defaults to 32MB.
	MaxResponseSize string `yaml:"max_response_size" mapstructure:"max_response_size"`

	// Auth configures authentication applied to all requests.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Resilience selects retry, circuit breaker, rate limiting and bulkhead
	// guards. Nil sections are disabled.
	Resilience resilience.PolicyConfig `yaml:"resilience" mapstructure:"resilience"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
	if c.MaxResponseSize == "" {
		c.MaxResponseSize = defaultMaxResponseSize
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.InvalidConfig("httpclient: timeout must be positive")
	}
	if c.MaxResponseSize != "" {
		if _, err := util.ParseSize(c.MaxResponseSize); err != nil {
			return errors.InvalidConfig(fmt.Sprintf("httpclient: max_response_size: %v", err)).WithCause(err)
		}
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return errors.InvalidConfig(fmt.Sprintf("httpclient: %v", err)).WithCause(err)
	}
	if err := c.Resilience.Validate(); err != nil {
		return errors.InvalidConfig(fmt.Sprintf("httpclient: %v", err)).WithCause(err)
	}
	return nil
}

// DefaultRetryConfig returns a retry config that retries timeouts and
// connection failures only.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

// DefaultCircuitBreakerConfig returns a circuit breaker config that counts
// transport failures only.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	cfg.IsFailure = isTransportFailure
	return &cfg
}

// DefaultRateLimiterConfig returns a default rate limiter config.
func DefaultRateLimiterConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}

// DefaultBulkheadConfig returns a default bulkhead config.
func DefaultBulkheadConfig(name string) *resilience.BulkheadConfig {
	cfg := resilience.DefaultBulkheadConfig(name)
	return &cfg
}

func isTransportFailure(err error) bool {
	return IsTimeout(err) || IsConnection(err)
}

// policyConfig copies the resilience sections, filling transport-aware
// predicates where the caller left them unset. cfg itself is not modified.
func (c *Config) policyConfig() resilience.PolicyConfig {
	pc := resilience.PolicyConfig{}
	if r := c.Resilience.Retry; r != nil {
		cp := *r
		if cp.RetryIf == nil {
			cp.RetryIf = IsRetryable
		}
		pc.Retry = &cp
	}
	if cb := c.Resilience.CircuitBreaker; cb != nil {
		cp := *cb
		if cp.Name == "" {
			cp.Name = c.Name
		}
		if cp.IsFailure == nil {
			cp.IsFailure = isTransportFailure
		}
		pc.CircuitBreaker = &cp
	}
	if rl := c.Resilience.RateLimiter; rl != nil {
		cp := *rl
		pc.RateLimiter = &cp
	}
	if bh := c.Resilience.Bulkhead; bh != nil {
		cp := *bh
		pc.Bulkhead = &cp
	}
	return pc
}

// maxResponseBytes returns the parsed body limit, or the default limit when
// the setting is empty or invalid.
func (c *Config) maxResponseBytes() int64 {
	if n, err := util.ParseSize(c.MaxResponseSize); err == nil {
		return n
	}
	n, _ := util.ParseSize(defaultMaxResponseSize)
	return n
}
