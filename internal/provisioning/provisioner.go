package provisioning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/mkserver/internal/util/retry"
)

// Failure reasons recorded for a failed attempt.
const (
	reasonSubmission = "submission"
	reasonAttach     = "attach-addresses"
)

// Provisioner creates one named server, deleting and recreating it when it
// fails to become ready. It keeps no state between Provision calls.
type Provisioner struct {
	provider Provider
	observer Observer
	metrics  *Metrics
	sleep    func(ctx context.Context, d time.Duration) error
}

// ProvisionerOption configures a Provisioner.
type ProvisionerOption func(*Provisioner)

// WithMetrics records attempts, failures and deletions in m.
func WithMetrics(m *Metrics) ProvisionerOption {
	return func(p *Provisioner) {
		p.metrics = m
	}
}

// WithSleep replaces the pause between attempts (useful for testing).
func WithSleep(fn func(ctx context.Context, d time.Duration) error) ProvisionerOption {
	return func(p *Provisioner) {
		p.sleep = fn
	}
}

// NewProvisioner creates a Provisioner.
func NewProvisioner(provider Provider, observer Observer, opts ...ProvisionerOption) *Provisioner {
	p := &Provisioner{
		provider: provider,
		observer: observer,
		sleep:    retry.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// withObserver returns a copy of p reporting to observer.
func (p *Provisioner) withObserver(observer Observer) *Provisioner {
	cp := *p
	cp.observer = observer
	return &cp
}

// Provision ensures a server named spec.Name exists and is ready.
//
// An existing server is left untouched and reported as unchanged. A rejected
// create request stops immediately. A server that fails to become ready is
// deleted and recreated after policy.RetryDelay, except on the last attempt,
// where it is kept for inspection.
func (p *Provisioner) Provision(ctx context.Context, spec InstanceSpec, policy RetryPolicy) Outcome {
	start := time.Now()
	o := p.provision(ctx, spec, policy)
	p.metrics.recordInstance(o, time.Since(start))
	return o
}

func (p *Provisioner) provision(ctx context.Context, spec InstanceSpec, policy RetryPolicy) Outcome {
	if err := policy.Validate(); err != nil {
		return Outcome{Err: fmt.Errorf("invalid retry policy: %w", err)}
	}

	existing, err := p.provider.FindInstance(ctx, spec.Name)
	if err != nil {
		LogResourceFailed(p.observer, spec.Name, "server lookup failed", err)
		return Outcome{Err: fmt.Errorf("failed to look up server %s: %w", spec.Name, err)}
	}
	if existing != nil {
		LogResourceExists(p.observer, spec.Name, existing.ID)
		return Outcome{Success: true}
	}

	failures := 0
	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		LogResourceCreating(p.observer, spec.Name, attempt, policy.MaxAttempts)
		p.metrics.recordAttempt()

		inst, err := p.provider.CreateInstance(ctx, spec.createRequest())
		if err != nil {
			p.metrics.recordFailure(reasonSubmission)
			LogResourceFailed(p.observer, spec.Name, "create request rejected", err)
			return Outcome{Failures: failures, Err: fmt.Errorf("failed to submit server %s: %w", spec.Name, err)}
		}

		reason, err := p.observe(ctx, inst, spec.Addresses, policy.WaitTimeout)
		if err == nil {
			LogResourceCreated(p.observer, spec.Name, inst.ID, failures)
			return Outcome{Success: true, Changed: true, Failures: failures}
		}

		failures++
		lastErr = err
		p.metrics.recordFailure(reason)
		LogResourceFailed(p.observer, spec.Name,
			fmt.Sprintf("attempt %d/%d failed (%s)", attempt, policy.MaxAttempts, reason), err)

		if attempt == policy.MaxAttempts {
			break
		}

		p.discard(ctx, spec.Name, inst, policy.WaitTimeout)

		p.observer.Event(Event{
			Type:     EventRetryWaiting,
			Phase:    "Provision",
			Resource: spec.Name,
			Message:  fmt.Sprintf("pausing %v before next attempt", policy.RetryDelay),
		})
		if err := p.sleep(ctx, policy.RetryDelay); err != nil {
			return Outcome{Changed: true, Failures: failures, Err: fmt.Errorf("retry of %s interrupted: %w", spec.Name, err)}
		}
	}

	return Outcome{
		Changed:  true,
		Failures: failures,
		Err:      fmt.Errorf("server %s not ready after %d attempts: %w", spec.Name, policy.MaxAttempts, lastErr),
	}
}

// observe waits for inst to become ready and attaches addresses.
// It returns a failure reason and a non-nil error when the attempt failed.
func (p *Provisioner) observe(ctx context.Context, inst *Instance, addresses []string, timeout time.Duration) (string, error) {
	res := p.provider.WaitUntilReady(ctx, inst, timeout)
	if !res.Ready() {
		err := res.Err
		if err == nil {
			err = errors.New(res.Status.String())
		}
		return res.Status.String(), err
	}
	if res.Instance != nil {
		inst = res.Instance
	}

	if len(addresses) > 0 {
		if err := p.provider.AttachAddresses(ctx, inst, addresses); err != nil {
			return reasonAttach, fmt.Errorf("failed to attach addresses: %w", err)
		}
	}
	return "", nil
}

// discard deletes a failed server and waits for it to disappear.
// Failures are logged only; the next attempt runs regardless.
func (p *Provisioner) discard(ctx context.Context, name string, inst *Instance, timeout time.Duration) {
	LogResourceDeleting(p.observer, name)

	if err := p.provider.DeleteInstance(ctx, inst); err != nil {
		p.metrics.recordDeletion("error")
		LogResourceFailed(p.observer, name, "delete failed", err)
		return
	}

	res := p.provider.WaitUntilDeleted(ctx, inst, timeout)
	if !res.Ready() {
		p.metrics.recordDeletion(res.Status.String())
		LogResourceFailed(p.observer, name, fmt.Sprintf("delete wait ended with %s", res.Status), res.Err)
		return
	}

	p.metrics.recordDeletion("deleted")
	LogResourceDeleted(p.observer, name)
}
