package hcloud

import (
	"context"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// runningActions builds pollable actions from IDs returned by a create call.
func runningActions(ids []string) ([]*hcloud.Action, error) {
	actions := make([]*hcloud.Action, 0, len(ids))
	for _, id := range ids {
		n, err := parseID("action", id)
		if err != nil {
			return nil, err
		}
		actions = append(actions, &hcloud.Action{ID: n, Status: hcloud.ActionStatusRunning})
	}
	return actions, nil
}

// pollServer calls done with the current server (nil once deleted) every poll
// interval until done returns true, an error occurs or ctx ends.
func (c *RealClient) pollServer(ctx context.Context, id int64, done func(*hcloud.Server) bool) error {
	ticker := time.NewTicker(c.timeouts.PollInterval)
	defer ticker.Stop()

	for {
		server, _, err := c.client.Server.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if done(server) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
