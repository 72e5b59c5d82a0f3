package datamanager

import (
	"fmt"
	"time"

	"github.com/c360/semquery/errors"
)

// Config holds datamanager settings.
type Config struct {
	// EndpointTimeout bounds a single request to a remote endpoint.
	EndpointTimeout time.Duration `json:"endpoint_timeout"`

	// Accept is the media type requested from remote endpoints.
	Accept string `json:"accept"`

	// UserAgent identifies the client to remote endpoints.
	UserAgent string `json:"user_agent"`

	// MaxRetries caps attempts against a remote endpoint per query.
	MaxRetries int `json:"max_retries"`

	// RetryInitialDelay is the first backoff delay between attempts.
	RetryInitialDelay time.Duration `json:"retry_initial_delay"`

	// CacheTTL is how long remote results stay cached. Zero disables the
	// endpoint result cache.
	CacheTTL time.Duration `json:"cache_ttl"`
}

// SetDefaults fills in default values for unset fields.
func (c *Config) SetDefaults() {
	if c.EndpointTimeout == 0 {
		c.EndpointTimeout = 30 * time.Second
	}
	if c.Accept == "" {
		c.Accept = "application/n-triples"
	}
	if c.UserAgent == "" {
		c.UserAgent = "semquery/1.0"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.RetryInitialDelay == 0 {
		c.RetryInitialDelay = 100 * time.Millisecond
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.EndpointTimeout < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("endpoint_timeout %v is negative", c.EndpointTimeout))
	}
	if c.MaxRetries < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("max_retries %d is negative", c.MaxRetries))
	}
	if c.RetryInitialDelay < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("retry_initial_delay %v is negative", c.RetryInitialDelay))
	}
	if c.CacheTTL < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("cache_ttl %v is negative", c.CacheTTL))
	}
	return nil
}
