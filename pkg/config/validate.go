package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
//
// Missing upstream credentials are not a validation error: the relay starts
// without them and fails individual chat requests with a configuration
// error instead, so the health endpoint stays reachable.
func (c *Config) Validate() error {
	var errs []error

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// provider must be a known value.
	switch c.Provider {
	case ProviderGroq, ProviderGemini:
		// valid
	default:
		errs = append(errs, fmt.Errorf("provider must be %q or %q, got %q", ProviderGroq, ProviderGemini, c.Provider))
	}

	// The active provider needs a base URL.
	if c.Provider == ProviderGroq && c.Groq.BaseURL == "" {
		errs = append(errs, fmt.Errorf("groq.base_url is required"))
	}
	if c.Provider == ProviderGemini && c.Gemini.BaseURL == "" {
		errs = append(errs, fmt.Errorf("gemini.base_url is required"))
	}

	return errors.Join(errs...)
}
