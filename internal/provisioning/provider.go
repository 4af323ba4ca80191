package provisioning

import (
	"context"
	"time"
)

// Flavor is a resolved server type.
type Flavor struct {
	ID           string
	Name         string
	Architecture string
}

// Instance is a handle to a server known to the provider.
type Instance struct {
	ID     string
	Name   string
	Status string

	// ActionIDs are provider actions still running when the handle was returned.
	ActionIDs []string
}

// CreateRequest holds everything the provider needs to create one server.
type CreateRequest struct {
	Name     string
	ImageID  string
	FlavorID string
	// NetworkIDs is empty when no network was requested.
	NetworkIDs []string
	Keypair    string
	Labels     map[string]string
}

// WaitStatus is the outcome of waiting on a server.
type WaitStatus int

const (
	// WaitReady means the server reached the requested state.
	WaitReady WaitStatus = iota
	// WaitResourceFailure means the provider reported the server as failed.
	WaitResourceFailure
	// WaitTimeout means the wait ran out of time.
	WaitTimeout
	// WaitTransportError means the provider could not be asked.
	WaitTransportError
)

func (s WaitStatus) String() string {
	switch s {
	case WaitReady:
		return "ready"
	case WaitResourceFailure:
		return "resource-failure"
	case WaitTimeout:
		return "timeout"
	case WaitTransportError:
		return "transport-error"
	default:
		return "unknown"
	}
}

// WaitResult is the tagged result of WaitUntilReady and WaitUntilDeleted.
type WaitResult struct {
	Status WaitStatus
	// Instance is the refreshed handle on WaitReady, if the provider returned one.
	Instance *Instance
	Err      error
}

// Ready reports whether the wait succeeded.
func (r WaitResult) Ready() bool {
	return r.Status == WaitReady
}

// Provider is the slice of the cloud API the provisioner depends on.
//
// Lookups return a zero value and a nil error when nothing matches; an error
// means the provider could not be queried.
type Provider interface {
	FindImage(ctx context.Context, name, architecture string) (string, error)
	FindFlavor(ctx context.Context, name string) (*Flavor, error)
	FindNetwork(ctx context.Context, name string) (string, error)
	FindInstance(ctx context.Context, name string) (*Instance, error)

	// CreateInstance submits a create request. Any error is a submission error.
	CreateInstance(ctx context.Context, req CreateRequest) (*Instance, error)
	WaitUntilReady(ctx context.Context, inst *Instance, timeout time.Duration) WaitResult
	AttachAddresses(ctx context.Context, inst *Instance, addresses []string) error
	DeleteInstance(ctx context.Context, inst *Instance) error
	WaitUntilDeleted(ctx context.Context, inst *Instance, timeout time.Duration) WaitResult
}
