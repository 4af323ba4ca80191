package provisioning

import (
	"context"
	"fmt"
)

// Resolver turns resource names into provider IDs. It never retries:
// an unknown name is a configuration error.
type Resolver struct {
	provider Provider
	observer Observer
}

// NewResolver creates a Resolver.
func NewResolver(provider Provider, observer Observer) *Resolver {
	return &Resolver{provider: provider, observer: observer}
}

// Resolve looks up the flavor, the image for the flavor's architecture and,
// when named, the network.
func (r *Resolver) Resolve(ctx context.Context, names ResourceNames) (*ResolvedSpec, error) {
	flavor, err := r.provider.FindFlavor(ctx, names.Flavor)
	if err != nil {
		return nil, fmt.Errorf("failed to look up flavor %s: %w", names.Flavor, err)
	}
	if flavor == nil {
		return nil, &NotFoundError{Kind: "flavour", Name: names.Flavor}
	}
	LogResourceResolved(r.observer, "flavour", names.Flavor, flavor.ID)

	imageID, err := r.provider.FindImage(ctx, names.Image, flavor.Architecture)
	if err != nil {
		return nil, fmt.Errorf("failed to look up image %s: %w", names.Image, err)
	}
	if imageID == "" {
		return nil, &NotFoundError{Kind: "image", Name: names.Image}
	}
	LogResourceResolved(r.observer, "image", names.Image, imageID)

	spec := &ResolvedSpec{
		ImageID:  imageID,
		FlavorID: flavor.ID,
		Keypair:  names.Keypair,
	}

	if names.Network != "" {
		networkID, err := r.provider.FindNetwork(ctx, names.Network)
		if err != nil {
			return nil, fmt.Errorf("failed to look up network %s: %w", names.Network, err)
		}
		if networkID == "" {
			return nil, &NotFoundError{Kind: "network", Name: names.Network}
		}
		LogResourceResolved(r.observer, "network", names.Network, networkID)
		spec.NetworkID = networkID
	}

	return spec, nil
}
