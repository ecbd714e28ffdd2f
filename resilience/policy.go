package resilience

import "context"

// PolicyConfig selects the guards of a Policy. A nil section disables it.
type PolicyConfig struct {
	Retry          *RetryConfig          `yaml:"retry" mapstructure:"retry"`
	CircuitBreaker *CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
	RateLimiter    *RateLimiterConfig    `yaml:"rate_limiter" mapstructure:"rate_limiter"`
	Bulkhead       *BulkheadConfig       `yaml:"bulkhead" mapstructure:"bulkhead"`
}

// Validate checks the enabled sections.
func (c *PolicyConfig) Validate() error {
	if c.Retry != nil {
		r := *c.Retry
		r.ApplyDefaults()
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Policy wraps one exchange in the configured guards. The zero Policy
// calls straight through. A Policy is safe for concurrent use.
type Policy struct {
	retry    *RetryConfig
	breaker  *CircuitBreaker
	limiter  *RateLimiter
	bulkhead *Bulkhead
}

// NewPolicy builds the guards enabled in cfg.
func NewPolicy(cfg PolicyConfig) *Policy {
	p := &Policy{}
	if cfg.Retry != nil {
		r := *cfg.Retry
		r.ApplyDefaults()
		p.retry = &r
	}
	if cfg.CircuitBreaker != nil {
		p.breaker = NewCircuitBreaker(*cfg.CircuitBreaker)
	}
	if cfg.RateLimiter != nil {
		p.limiter = NewRateLimiter(*cfg.RateLimiter)
	}
	if cfg.Bulkhead != nil {
		p.bulkhead = NewBulkhead(*cfg.Bulkhead)
	}
	return p
}

// Breaker returns the circuit breaker, or nil when disabled.
func (p *Policy) Breaker() *CircuitBreaker {
	return p.breaker
}

// Available reports whether the policy would currently let an exchange through.
func (p *Policy) Available() bool {
	return p.breaker == nil || p.breaker.State() != StateOpen
}

// Execute runs fn through the policy. Retries wrap the other guards, so
// every attempt waits for its own token, slot and breaker permission.
func Execute[T any](ctx context.Context, p *Policy, fn func(context.Context) (T, error)) (T, error) {
	attempt := func() (T, error) {
		return guarded(ctx, p, fn)
	}
	if p.retry != nil {
		return Retry(ctx, *p.retry, attempt)
	}
	return attempt()
}

func guarded[T any](ctx context.Context, p *Policy, fn func(context.Context) (T, error)) (T, error) {
	var result T
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return result, err
		}
	}

	call := func() error {
		var err error
		result, err = fn(ctx)
		return err
	}
	if p.breaker != nil {
		inner := call
		call = func() error { return p.breaker.Execute(inner) }
	}

	var err error
	if p.bulkhead != nil {
		err = p.bulkhead.Execute(ctx, call)
	} else {
		err = call()
	}
	return result, err
}
