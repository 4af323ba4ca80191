package hcloud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/mkserver/internal/provisioning"
	"github.com/imamik/mkserver/internal/util/retry"
)

// CreateInstance submits a server create request. It does not wait for the
// server; the returned instance carries the IDs of the pending actions.
func (c *RealClient) CreateInstance(ctx context.Context, req provisioning.CreateRequest) (*provisioning.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.ServerCreate)
	defer cancel()

	opts, err := c.buildServerCreateOpts(ctx, req)
	if err != nil {
		return nil, err
	}

	var result hcloud.ServerCreateResult
	err = retry.WithExponentialBackoff(ctx, func() error {
		res, _, err := c.client.Server.Create(ctx, opts)
		if err != nil {
			if IsRateLimited(err) {
				return err
			}
			return retry.Fatal(err)
		}
		result = res
		return nil
	}, retry.WithMaxRetries(c.timeouts.RetryMaxAttempts), retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	if result.Server == nil {
		return nil, errors.New("failed to create server: empty response")
	}

	actions := append([]*hcloud.Action{result.Action}, result.NextActions...)
	return instanceFromServer(result.Server, actions), nil
}

// buildServerCreateOpts maps a create request onto hcloud options.
func (c *RealClient) buildServerCreateOpts(ctx context.Context, req provisioning.CreateRequest) (hcloud.ServerCreateOpts, error) {
	imageID, err := parseID("image", req.ImageID)
	if err != nil {
		return hcloud.ServerCreateOpts{}, err
	}
	serverTypeID, err := parseID("server type", req.FlavorID)
	if err != nil {
		return hcloud.ServerCreateOpts{}, err
	}

	opts := hcloud.ServerCreateOpts{
		Name:       req.Name,
		ServerType: &hcloud.ServerType{ID: serverTypeID},
		Image:      &hcloud.Image{ID: imageID},
		Labels:     req.Labels,
	}

	if req.Keypair != "" {
		key, err := c.resolveSSHKey(ctx, req.Keypair)
		if err != nil {
			return hcloud.ServerCreateOpts{}, err
		}
		opts.SSHKeys = []*hcloud.SSHKey{key}
	}

	for _, id := range req.NetworkIDs {
		networkID, err := parseID("network", id)
		if err != nil {
			return hcloud.ServerCreateOpts{}, err
		}
		opts.Networks = append(opts.Networks, &hcloud.Network{ID: networkID})
	}

	return opts, nil
}

// WaitUntilReady waits for the create actions of inst to finish and for the
// server to report status running.
func (c *RealClient) WaitUntilReady(ctx context.Context, inst *provisioning.Instance, timeout time.Duration) provisioning.WaitResult {
	id, err := parseID("server", inst.ID)
	if err != nil {
		return provisioning.WaitResult{Status: provisioning.WaitTransportError, Err: err}
	}
	actions, err := runningActions(inst.ActionIDs)
	if err != nil {
		return provisioning.WaitResult{Status: provisioning.WaitTransportError, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if len(actions) > 0 {
		if err := c.client.Action.WaitFor(ctx, actions...); err != nil {
			return provisioning.WaitResult{
				Status: waitStatus(err),
				Err:    fmt.Errorf("server %s create action: %w", inst.Name, err),
			}
		}
	}

	var ready *hcloud.Server
	err = c.pollServer(ctx, id, func(server *hcloud.Server) bool {
		ready = server
		return server == nil || server.Status == hcloud.ServerStatusRunning
	})
	if err != nil {
		return provisioning.WaitResult{
			Status: waitStatus(err),
			Err:    fmt.Errorf("server %s status: %w", inst.Name, err),
		}
	}
	if ready == nil {
		return provisioning.WaitResult{
			Status: provisioning.WaitResourceFailure,
			Err:    fmt.Errorf("server %s disappeared while starting", inst.Name),
		}
	}

	return provisioning.WaitResult{
		Status:   provisioning.WaitReady,
		Instance: instanceFromServer(ready, nil),
	}
}

// DeleteInstance requests deletion of inst. A server that is already gone is not an error.
func (c *RealClient) DeleteInstance(ctx context.Context, inst *provisioning.Instance) error {
	id, err := parseID("server", inst.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		_, _, err := c.client.Server.DeleteWithResult(ctx, &hcloud.Server{ID: id})
		switch {
		case err == nil, IsNotFound(err):
			return nil
		case isResourceLocked(err), IsRateLimited(err):
			return err
		default:
			return retry.Fatal(fmt.Errorf("failed to delete server %s: %w", inst.Name, err))
		}
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}

// WaitUntilDeleted polls until inst no longer exists.
func (c *RealClient) WaitUntilDeleted(ctx context.Context, inst *provisioning.Instance, timeout time.Duration) provisioning.WaitResult {
	id, err := parseID("server", inst.ID)
	if err != nil {
		return provisioning.WaitResult{Status: provisioning.WaitTransportError, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = c.pollServer(ctx, id, func(server *hcloud.Server) bool {
		return server == nil
	})
	if err != nil {
		return provisioning.WaitResult{
			Status: waitStatus(err),
			Err:    fmt.Errorf("server %s deletion: %w", inst.Name, err),
		}
	}
	return provisioning.WaitResult{Status: provisioning.WaitReady}
}
