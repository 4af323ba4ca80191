package config

import (
	"errors"
	"fmt"
)

// ValidationError reports an invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the settings before any API call is made.
// All problems are reported together.
func (c *CreateConfig) Validate() error {
	var errs []error
	invalid := func(field, format string, args ...interface{}) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Required fields
	if c.Name == "" {
		invalid("name", "is required")
	}
	if c.Flavour == "" {
		invalid("flavour", "is required")
	}
	if c.Image == "" {
		invalid("image", "is required")
	}
	if c.Keypair == "" {
		invalid("keypair", "is required")
	}
	if c.HCloudToken == "" {
		invalid("token", "%s environment variable is required", EnvHCloudToken)
	}

	// Ranges
	if c.Count < 1 {
		invalid("count", "must be at least 1, got %d", c.Count)
	}
	if c.Attempts < 1 {
		invalid("attempts", "must be at least 1, got %d", c.Attempts)
	}
	if c.RetryDelay < MinRetryDelay || c.RetryDelay > MaxRetryDelay {
		invalid("retry-delay", "must be between %d and %d seconds, got %d", MinRetryDelay, MaxRetryDelay, c.RetryDelay)
	}
	if c.WaitTime < 1 {
		invalid("wait-time", "must be at least 1 second, got %d", c.WaitTime)
	}

	if len(c.FloatingIPs) > 0 && c.Count > 1 {
		invalid("ips", "can only be assigned when count is 1")
	}

	return errors.Join(errs...)
}
