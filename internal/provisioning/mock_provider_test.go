package provisioning

import (
	"context"
	"fmt"
	"time"
)

// mockProvider implements Provider with optional func overrides and call counters.
type mockProvider struct {
	FindImageFunc        func(ctx context.Context, name, architecture string) (string, error)
	FindFlavorFunc       func(ctx context.Context, name string) (*Flavor, error)
	FindNetworkFunc      func(ctx context.Context, name string) (string, error)
	FindInstanceFunc     func(ctx context.Context, name string) (*Instance, error)
	CreateInstanceFunc   func(ctx context.Context, req CreateRequest) (*Instance, error)
	WaitUntilReadyFunc   func(ctx context.Context, inst *Instance, timeout time.Duration) WaitResult
	AttachAddressesFunc  func(ctx context.Context, inst *Instance, addresses []string) error
	DeleteInstanceFunc   func(ctx context.Context, inst *Instance) error
	WaitUntilDeletedFunc func(ctx context.Context, inst *Instance, timeout time.Duration) WaitResult

	calls    []string
	creates  []CreateRequest
	deletes  int
	attaches [][]string
	lookups  int
}

var _ Provider = (*mockProvider)(nil)

// readyAfter returns a WaitUntilReady func that fails the first n waits.
func readyAfter(n int, failure WaitStatus) func(context.Context, *Instance, time.Duration) WaitResult {
	waits := 0
	return func(_ context.Context, inst *Instance, _ time.Duration) WaitResult {
		waits++
		if waits <= n {
			return WaitResult{Status: failure, Err: fmt.Errorf("wait %d: %s", waits, failure)}
		}
		return WaitResult{Status: WaitReady, Instance: inst}
	}
}

func (m *mockProvider) FindImage(ctx context.Context, name, architecture string) (string, error) {
	m.calls = append(m.calls, "FindImage")
	m.lookups++
	if m.FindImageFunc != nil {
		return m.FindImageFunc(ctx, name, architecture)
	}
	return "img-1", nil
}

func (m *mockProvider) FindFlavor(ctx context.Context, name string) (*Flavor, error) {
	m.calls = append(m.calls, "FindFlavor")
	m.lookups++
	if m.FindFlavorFunc != nil {
		return m.FindFlavorFunc(ctx, name)
	}
	return &Flavor{ID: "flv-1", Name: name, Architecture: "x86"}, nil
}

func (m *mockProvider) FindNetwork(ctx context.Context, name string) (string, error) {
	m.calls = append(m.calls, "FindNetwork")
	m.lookups++
	if m.FindNetworkFunc != nil {
		return m.FindNetworkFunc(ctx, name)
	}
	return "net-1", nil
}

func (m *mockProvider) FindInstance(ctx context.Context, name string) (*Instance, error) {
	m.calls = append(m.calls, "FindInstance")
	if m.FindInstanceFunc != nil {
		return m.FindInstanceFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockProvider) CreateInstance(ctx context.Context, req CreateRequest) (*Instance, error) {
	m.calls = append(m.calls, "CreateInstance")
	m.creates = append(m.creates, req)
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, req)
	}
	return &Instance{ID: fmt.Sprintf("srv-%d", len(m.creates)), Name: req.Name}, nil
}

func (m *mockProvider) WaitUntilReady(ctx context.Context, inst *Instance, timeout time.Duration) WaitResult {
	m.calls = append(m.calls, "WaitUntilReady")
	if m.WaitUntilReadyFunc != nil {
		return m.WaitUntilReadyFunc(ctx, inst, timeout)
	}
	return WaitResult{Status: WaitReady, Instance: inst}
}

func (m *mockProvider) AttachAddresses(ctx context.Context, inst *Instance, addresses []string) error {
	m.calls = append(m.calls, "AttachAddresses")
	m.attaches = append(m.attaches, addresses)
	if m.AttachAddressesFunc != nil {
		return m.AttachAddressesFunc(ctx, inst, addresses)
	}
	return nil
}

func (m *mockProvider) DeleteInstance(ctx context.Context, inst *Instance) error {
	m.calls = append(m.calls, "DeleteInstance")
	m.deletes++
	if m.DeleteInstanceFunc != nil {
		return m.DeleteInstanceFunc(ctx, inst)
	}
	return nil
}

func (m *mockProvider) WaitUntilDeleted(ctx context.Context, inst *Instance, timeout time.Duration) WaitResult {
	m.calls = append(m.calls, "WaitUntilDeleted")
	if m.WaitUntilDeletedFunc != nil {
		return m.WaitUntilDeletedFunc(ctx, inst, timeout)
	}
	return WaitResult{Status: WaitReady}
}

// count returns how many times method was called.
func (m *mockProvider) count(method string) int {
	n := 0
	for _, c := range m.calls {
		if c == method {
			n++
		}
	}
	return n
}

// MockObserver records events for assertions. Observers returned by
// WithFields record into the same root with their fields merged in.
type MockObserver struct {
	root     *MockObserver
	events   []Event
	messages []string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{fields: make(map[string]string)}
}

func (m *MockObserver) store() *MockObserver {
	if m.root != nil {
		return m.root
	}
	return m
}

func (m *MockObserver) Printf(format string, v ...interface{}) {
	r := m.store()
	r.messages = append(r.messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	if len(m.fields) > 0 {
		event.Fields = mergeFields(m.fields, event.Fields)
	}
	r := m.store()
	r.events = append(r.events, event)
}

func (m *MockObserver) Progress(phase string, current, total int) {
	m.Event(Event{
		Type:  EventProgress,
		Phase: phase,
		Fields: map[string]string{
			"current": fmt.Sprintf("%d", current),
			"total":   fmt.Sprintf("%d", total),
		},
	})
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	return &MockObserver{root: m.store(), fields: mergeFields(m.fields, fields)}
}

func (m *MockObserver) eventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range m.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// noSleep records requested pauses without blocking.
type noSleep struct {
	pauses []time.Duration
}

func (s *noSleep) sleep(ctx context.Context, d time.Duration) error {
	s.pauses = append(s.pauses, d)
	return ctx.Err()
}

func testPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		RetryDelay:  10 * time.Second,
		WaitTimeout: 2 * time.Minute,
	}
}

func testSpec(name string) InstanceSpec {
	return InstanceSpec{
		Name: name,
		Resolved: ResolvedSpec{
			ImageID:  "img-1",
			FlavorID: "flv-1",
			Keypair:  "graph-key",
		},
	}
}
