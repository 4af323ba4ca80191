package hcloud

import (
	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/mkserver/internal/config"
	"github.com/imamik/mkserver/internal/provisioning"
)

var _ provisioning.Provider = (*RealClient)(nil)

// RealClient implements provisioning.Provider using the Hetzner Cloud API.
type RealClient struct {
	client   *hcloud.Client
	timeouts *config.Timeouts

	endpoint   string
	appVersion string
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *RealClient) {
		c.client = hc
	}
}

// WithEndpoint overrides the API endpoint. Ignored when WithHCloudClient is used.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *RealClient) {
		c.endpoint = endpoint
	}
}

// WithApplicationVersion sets the version reported in the User-Agent header.
func WithApplicationVersion(version string) ClientOption {
	return func(c *RealClient) {
		c.appVersion = version
	}
}

// NewRealClient creates a new RealClient with optional configuration.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		hopts := []hcloud.ClientOption{
			hcloud.WithToken(token),
			hcloud.WithApplication("mkserver", c.appVersion),
			hcloud.WithPollOpts(hcloud.PollOpts{
				BackoffFunc: hcloud.ConstantBackoff(c.timeouts.PollInterval),
			}),
		}
		if c.endpoint != "" {
			hopts = append(hopts, hcloud.WithEndpoint(c.endpoint))
		}
		c.client = hcloud.NewClient(hopts...)
	}
	return c
}
