package resilience

import (
	"fmt"
	"time"
)

// CircuitBreakerConfig describes one breaker guarding an upstream dependency.
// Name labels state-change callbacks; OnStateChange may be nil.
type CircuitBreakerConfig struct {
	Name             string
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	OnStateChange    func(name string, from, to CircuitState)
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// Named returns a copy labelled for one dependency with the given state-change callback.
func (c CircuitBreakerConfig) Named(name string, onChange func(name string, from, to CircuitState)) CircuitBreakerConfig {
	c.Name = name
	c.OnStateChange = onChange
	return c
}

// Validate rejects settings an enabled breaker cannot run with.
func (c CircuitBreakerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch {
	case c.FailureThreshold < 1:
		return fmt.Errorf("circuit %q: failure threshold must be at least 1, got %d", c.Name, c.FailureThreshold)
	case c.OpenTimeout <= 0:
		return fmt.Errorf("circuit %q: open timeout must be positive, got %s", c.Name, c.OpenTimeout)
	case c.HalfOpenMaxReq < 1:
		return fmt.Errorf("circuit %q: half-open probes must be at least 1, got %d", c.Name, c.HalfOpenMaxReq)
	}
	return nil
}

// withDefaults fills zero or negative fields from DefaultCircuitBreakerConfig.
func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	d := DefaultCircuitBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = d.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = d.HalfOpenMaxReq
	}
	return c
}
