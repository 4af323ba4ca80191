package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the Hetzner Cloud API call limits.
// These values can be customized via environment variables.
type Timeouts struct {
	ServerCreate      time.Duration // Timeout for submitting a server create request
	Delete            time.Duration // Timeout for submitting a server delete request
	Attach            time.Duration // Timeout for assigning floating IPs
	PollInterval      time.Duration // Interval between action and status polls
	RetryMaxAttempts  int           // Maximum number of retries per API call
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - HCLOUD_TIMEOUT_SERVER_CREATE (default: 2m)
//   - HCLOUD_TIMEOUT_DELETE (default: 2m)
//   - HCLOUD_TIMEOUT_ATTACH (default: 2m)
//   - HCLOUD_POLL_INTERVAL (default: 2s)
//   - HCLOUD_RETRY_MAX_ATTEMPTS (default: 5)
//   - HCLOUD_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ServerCreate:      parseDuration("HCLOUD_TIMEOUT_SERVER_CREATE", 2*time.Minute),
		Delete:            parseDuration("HCLOUD_TIMEOUT_DELETE", 2*time.Minute),
		Attach:            parseDuration("HCLOUD_TIMEOUT_ATTACH", 2*time.Minute),
		PollInterval:      parseDuration("HCLOUD_POLL_INTERVAL", 2*time.Second),
		RetryMaxAttempts:  parseInt("HCLOUD_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("HCLOUD_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set, invalid or not positive, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
