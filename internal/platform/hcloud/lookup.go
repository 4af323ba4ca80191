package hcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/mkserver/internal/provisioning"
)

// FindImage returns the ID of the image named name built for architecture,
// or "" when there is none.
func (c *RealClient) FindImage(ctx context.Context, name, architecture string) (string, error) {
	image, _, err := c.client.Image.GetForArchitecture(ctx, name, hcloud.Architecture(architecture))
	if err != nil {
		return "", fmt.Errorf("failed to get image: %w", err)
	}
	if image == nil {
		return "", nil
	}
	return formatID(image.ID), nil
}

// FindFlavor returns the server type named name, or nil when there is none.
func (c *RealClient) FindFlavor(ctx context.Context, name string) (*provisioning.Flavor, error) {
	st, _, err := c.client.ServerType.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get server type: %w", err)
	}
	if st == nil {
		return nil, nil
	}
	return &provisioning.Flavor{
		ID:           formatID(st.ID),
		Name:         st.Name,
		Architecture: string(st.Architecture),
	}, nil
}

// FindNetwork returns the ID of the network named name, or "" when there is none.
func (c *RealClient) FindNetwork(ctx context.Context, name string) (string, error) {
	network, _, err := c.client.Network.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to get network: %w", err)
	}
	if network == nil {
		return "", nil
	}
	return formatID(network.ID), nil
}

// FindInstance returns the server named name, or nil when there is none.
func (c *RealClient) FindInstance(ctx context.Context, name string) (*provisioning.Instance, error) {
	server, _, err := c.client.Server.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	if server == nil {
		return nil, nil
	}
	return instanceFromServer(server, nil), nil
}

// resolveSSHKey resolves an SSH key name or ID.
func (c *RealClient) resolveSSHKey(ctx context.Context, key string) (*hcloud.SSHKey, error) {
	keyObj, _, err := c.client.SSHKey.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get ssh key %s: %w", key, err)
	}
	if keyObj == nil {
		return nil, fmt.Errorf("ssh key not found: %s", key)
	}
	return keyObj, nil
}

func instanceFromServer(server *hcloud.Server, actions []*hcloud.Action) *provisioning.Instance {
	inst := &provisioning.Instance{
		ID:     formatID(server.ID),
		Name:   server.Name,
		Status: string(server.Status),
	}
	for _, a := range actions {
		if a != nil {
			inst.ActionIDs = append(inst.ActionIDs, formatID(a.ID))
		}
	}
	return inst
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseID(kind, id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id: %s", kind, id)
	}
	return n, nil
}
