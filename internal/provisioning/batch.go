package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/imamik/mkserver/internal/util/labels"
	"github.com/imamik/mkserver/internal/util/naming"
)

// Validate checks the request before any provider call is made.
func (req BatchRequest) Validate() error {
	var errs []error
	if req.BaseName == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if req.Count < 1 {
		errs = append(errs, fmt.Errorf("count must be at least 1, got %d", req.Count))
	}
	if req.Resources.Image == "" {
		errs = append(errs, errors.New("image is required"))
	}
	if req.Resources.Flavor == "" {
		errs = append(errs, errors.New("flavour is required"))
	}
	if req.Resources.Keypair == "" {
		errs = append(errs, errors.New("keypair is required"))
	}
	if len(req.Addresses) > 0 && req.Count > 1 {
		errs = append(errs, ErrAddressesWithCount)
	}
	if err := req.Policy.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Runner provisions a numbered group of servers one at a time.
type Runner struct {
	resolver    *Resolver
	provisioner *Provisioner
	observer    Observer
	newRunID    func() string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunIDFunc replaces the run ID generator.
func WithRunIDFunc(fn func() string) RunnerOption {
	return func(r *Runner) {
		r.newRunID = fn
	}
}

// NewRunner creates a Runner.
func NewRunner(resolver *Resolver, provisioner *Provisioner, observer Observer, opts ...RunnerOption) *Runner {
	r := &Runner{
		resolver:    resolver,
		provisioner: provisioner,
		observer:    observer,
		newRunID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates req, resolves its resources once and provisions instances
// 1..Count in order. It stops at the first instance that fails and returns
// the summary of the instances provisioned so far with an *InstanceError.
// Instances created before the failure are kept.
func (r *Runner) Run(ctx context.Context, req BatchRequest) (*Summary, error) {
	if err := req.Validate(); err != nil {
		r.observer.Event(Event{
			Type:    EventValidationError,
			Phase:   "Batch",
			Message: err.Error(),
		})
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	summary := &Summary{RunID: r.newRunID()}
	start := time.Now()
	LogPhaseStart(r.observer, "Batch",
		fmt.Sprintf("creating %d server(s) from %s (run %s)", req.Count, req.BaseName, summary.RunID))

	resolved, err := r.resolver.Resolve(ctx, req.Resources)
	if err != nil {
		LogPhaseFailed(r.observer, "Batch", err)
		return summary, err
	}

	for _, i := range naming.Indices(req.Count) {
		spec := InstanceSpec{
			Name:      naming.Instance(req.BaseName, req.Count, i),
			Resolved:  *resolved,
			Addresses: req.Addresses,
			Labels: labels.NewLabelBuilder(req.BaseName).
				Merge(req.Labels).
				WithIndex(i).
				WithRunID(summary.RunID).
				Build(),
		}

		observer := r.observer.WithFields(map[string]string{
			"run_id": summary.RunID,
			"index":  strconv.Itoa(i),
		})
		o := r.provisioner.withObserver(observer).Provision(ctx, spec, req.Policy)
		if !o.Success {
			err := &InstanceError{Index: i, Name: spec.Name, Outcome: o}
			LogPhaseFailed(r.observer, "Batch", err)
			return summary, err
		}

		summary.add(i, o)
		r.observer.Progress("Batch", i, req.Count)
	}

	LogPhaseComplete(r.observer, "Batch", time.Since(start))
	return summary, nil
}
