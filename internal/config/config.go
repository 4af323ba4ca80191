package config

import (
	"os"
	"time"
)

// Environment variables read by ApplyEnv.
const (
	EnvHCloudToken    = "HCLOUD_TOKEN"
	EnvHCloudEndpoint = "HCLOUD_ENDPOINT"
)

// Limits of the create settings.
const (
	DefaultCount      = 1
	DefaultAttempts   = 6
	DefaultRetryDelay = 10  // seconds
	DefaultWaitTime   = 120 // seconds
	MinRetryDelay     = 1
	MaxRetryDelay     = 120
)

// CreateConfig holds the settings of one create run.
type CreateConfig struct {
	Name        string   `yaml:"name"`
	Flavour     string   `yaml:"flavour"`
	Image       string   `yaml:"image"`
	Keypair     string   `yaml:"keypair"`
	Network     string   `yaml:"network,omitempty"`
	FloatingIPs []string `yaml:"floating_ips,omitempty"`

	Count      int `yaml:"count"`
	Attempts   int `yaml:"attempts"`
	RetryDelay int `yaml:"retry_delay"` // seconds
	WaitTime   int `yaml:"wait_time"`   // seconds

	// Labels are added to every created server.
	Labels map[string]string `yaml:"labels,omitempty"`

	Verbose     bool   `yaml:"verbose,omitempty"`
	LogJSON     bool   `yaml:"log_json,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`

	HCloudToken    string `yaml:"-"`
	HCloudEndpoint string `yaml:"-"`
}

// DefaultCreateConfig returns a config with the default retry settings.
func DefaultCreateConfig() *CreateConfig {
	return &CreateConfig{
		Count:      DefaultCount,
		Attempts:   DefaultAttempts,
		RetryDelay: DefaultRetryDelay,
		WaitTime:   DefaultWaitTime,
	}
}

// ApplyEnv fills the API token and endpoint from the environment when unset.
func (c *CreateConfig) ApplyEnv() {
	if c.HCloudToken == "" {
		c.HCloudToken = os.Getenv(EnvHCloudToken)
	}
	if c.HCloudEndpoint == "" {
		c.HCloudEndpoint = os.Getenv(EnvHCloudEndpoint)
	}
}

// RetryDelayDuration returns the pause between attempts.
func (c *CreateConfig) RetryDelayDuration() time.Duration {
	return time.Duration(c.RetryDelay) * time.Second
}

// WaitTimeDuration returns the ready and delete wait limit.
func (c *CreateConfig) WaitTimeDuration() time.Duration {
	return time.Duration(c.WaitTime) * time.Second
}
