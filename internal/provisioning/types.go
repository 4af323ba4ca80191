package provisioning

import (
	"errors"
	"fmt"
	"time"
)

// ResourceNames are the human-supplied names resolved once per batch.
type ResourceNames struct {
	Image   string
	Flavor  string
	Network string // optional
	Keypair string
}

// ResolvedSpec holds provider IDs shared by every instance in a batch.
type ResolvedSpec struct {
	ImageID   string
	FlavorID  string
	NetworkID string // empty when no network was requested
	Keypair   string
}

// InstanceSpec describes one server to create. It does not change between attempts.
type InstanceSpec struct {
	Name      string
	Resolved  ResolvedSpec
	Addresses []string
	Labels    map[string]string
}

func (s InstanceSpec) createRequest() CreateRequest {
	req := CreateRequest{
		Name:     s.Name,
		ImageID:  s.Resolved.ImageID,
		FlavorID: s.Resolved.FlavorID,
		Keypair:  s.Resolved.Keypair,
		Labels:   s.Labels,
	}
	if s.Resolved.NetworkID != "" {
		req.NetworkIDs = []string{s.Resolved.NetworkID}
	}
	return req
}

// RetryPolicy bounds the creation attempts for one instance.
type RetryPolicy struct {
	MaxAttempts int
	RetryDelay  time.Duration
	// WaitTimeout bounds both the ready wait and the delete wait.
	WaitTimeout time.Duration
}

// Validate checks the policy can drive at least one attempt.
func (p RetryPolicy) Validate() error {
	var errs []error
	if p.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max attempts must be at least 1, got %d", p.MaxAttempts))
	}
	if p.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("retry delay must not be negative, got %v", p.RetryDelay))
	}
	if p.WaitTimeout <= 0 {
		errs = append(errs, fmt.Errorf("wait timeout must be positive, got %v", p.WaitTimeout))
	}
	return errors.Join(errs...)
}

// Outcome is the result of provisioning one instance.
//
// Changed is false only when the instance already existed (or nothing could be
// submitted). Success is false when the batch must stop.
type Outcome struct {
	Success  bool
	Changed  bool
	Failures int
	Err      error
}

// BatchRequest describes a numbered group of servers.
type BatchRequest struct {
	BaseName  string
	Count     int
	Resources ResourceNames
	Addresses []string
	Policy    RetryPolicy
	// Labels are merged into the labels of every created server.
	Labels map[string]string
}

// Summary aggregates the outcomes of a batch.
type Summary struct {
	RunID string

	TotalFailures          int
	MaxConsecutiveFailures int
	// Retried lists the indices of instances that needed more than one attempt.
	Retried []int

	// Changed is true when any instance in the batch was created.
	Changed bool

	Created  int
	Existing int
}

// add folds a successful outcome into the summary.
func (s *Summary) add(index int, o Outcome) {
	if !o.Success {
		return
	}
	if o.Failures > 0 {
		s.TotalFailures += o.Failures
		s.Retried = append(s.Retried, index)
		if o.Failures > s.MaxConsecutiveFailures {
			s.MaxConsecutiveFailures = o.Failures
		}
	}
	if o.Changed {
		s.Changed = true
		s.Created++
	} else {
		s.Existing++
	}
}
