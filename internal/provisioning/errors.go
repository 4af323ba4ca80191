package provisioning

import (
	"errors"
	"fmt"
)

// ErrAddressesWithCount is returned when addresses are supplied for more than one instance.
var ErrAddressesWithCount = errors.New("addresses can only be assigned when count is 1")

// NotFoundError reports a resource name the provider could not resolve.
type NotFoundError struct {
	Kind string // "image", "flavor" or "network"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s (%s)", e.Kind, e.Name)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InstanceError reports the instance that stopped a batch.
type InstanceError struct {
	Index   int
	Name    string
	Outcome Outcome
}

func (e *InstanceError) Error() string {
	msg := fmt.Sprintf("instance %s (index %d) failed after %d failed attempts", e.Name, e.Index, e.Outcome.Failures)
	if e.Outcome.Err != nil {
		msg += ": " + e.Outcome.Err.Error()
	}
	return msg
}

func (e *InstanceError) Unwrap() error {
	return e.Outcome.Err
}
