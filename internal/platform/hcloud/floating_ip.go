package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/mkserver/internal/provisioning"
	"github.com/imamik/mkserver/internal/util/retry"
)

// AttachAddresses assigns the floating IPs matching addresses to inst.
// An address matches a floating IP by its IP or its name.
func (c *RealClient) AttachAddresses(ctx context.Context, inst *provisioning.Instance, addresses []string) error {
	if len(addresses) == 0 {
		return nil
	}
	serverID, err := parseID("server", inst.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Attach)
	defer cancel()

	fips, err := c.client.FloatingIP.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list floating IPs: %w", err)
	}

	server := &hcloud.Server{ID: serverID}
	for _, address := range addresses {
		fip := matchFloatingIP(fips, address)
		if fip == nil {
			return fmt.Errorf("floating IP not found: %s", address)
		}
		if err := c.assignFloatingIP(ctx, fip, server); err != nil {
			return fmt.Errorf("failed to assign floating IP %s to %s: %w", address, inst.Name, err)
		}
	}
	return nil
}

// assignFloatingIP assigns fip to server and waits for the action.
func (c *RealClient) assignFloatingIP(ctx context.Context, fip *hcloud.FloatingIP, server *hcloud.Server) error {
	if fip.Server != nil && fip.Server.ID == server.ID {
		return nil
	}

	var action *hcloud.Action
	err := retry.WithExponentialBackoff(ctx, func() error {
		a, _, err := c.client.FloatingIP.Assign(ctx, fip, server)
		if err != nil {
			if isResourceLocked(err) || IsRateLimited(err) {
				return err
			}
			return retry.Fatal(err)
		}
		action = a
		return nil
	}, retry.WithMaxRetries(c.timeouts.RetryMaxAttempts), retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return err
	}

	if action == nil {
		return nil
	}
	return c.client.Action.WaitFor(ctx, action)
}

func matchFloatingIP(fips []*hcloud.FloatingIP, address string) *hcloud.FloatingIP {
	for _, fip := range fips {
		if fip.Name == address || (fip.IP != nil && fip.IP.String() == address) {
			return fip
		}
	}
	return nil
}
