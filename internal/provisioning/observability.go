package provisioning

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Logger is the minimal printf-style logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer receives structured events while a batch runs.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress through the batch
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Component name (e.g., "Resolve", "Provision")
	Message   string            // Human-readable message
	Resource  string            // Resource name if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a batch or phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a batch or phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a batch or phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceResolved indicates a name was resolved to a provider ID.
	EventResourceResolved EventType = "resource.resolved"
	// EventResourceCreating indicates a create request is about to be sent.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a server became ready.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a server with the name already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceFailed indicates a creation attempt failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a failed server is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a failed server is gone.
	EventResourceDeleted EventType = "resource.deleted"
	// EventRetryWaiting indicates the provisioner is pausing before the next attempt.
	EventRetryWaiting EventType = "retry.waiting"

	// EventValidationError indicates the request was rejected before any provider call.
	EventValidationError EventType = "validation.error"

	// EventProgress indicates progress through the batch.
	EventProgress EventType = "progress"
)

// IsFailure reports whether the event type signals a failure.
func (t EventType) IsFailure() bool {
	switch t {
	case EventPhaseFailed, EventResourceFailed, EventValidationError:
		return true
	}
	return false
}

// ConsoleObserver implements Observer using the standard log package.
// When not verbose only failures and Printf output are written.
type ConsoleObserver struct {
	logger        *log.Logger
	verbose       bool
	contextFields map[string]string
}

// NewConsoleObserver creates an observer writing to the standard logger.
func NewConsoleObserver(verbose bool) *ConsoleObserver {
	return NewConsoleObserverWithLogger(log.Default(), verbose)
}

// NewConsoleObserverWithLogger creates an observer writing to l.
func NewConsoleObserverWithLogger(l *log.Logger, verbose bool) *ConsoleObserver {
	return &ConsoleObserver{
		logger:        l,
		verbose:       verbose,
		contextFields: make(map[string]string),
	}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	o.logger.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if !o.verbose && !event.Type.IsFailure() {
		return
	}
	o.logger.Print(formatEvent(withContext(event, o.contextFields)))
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	if !o.verbose {
		return
	}
	if total == 0 {
		o.logger.Printf("[%s] Progress: %d/%d", phase, current, total)
		return
	}
	o.logger.Printf("[%s] Progress: %d/%d (%d%%)", phase, current, total, (current*100)/total)
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	return &ConsoleObserver{
		logger:        o.logger,
		verbose:       o.verbose,
		contextFields: mergeFields(o.contextFields, fields),
	}
}

// LogrObserver implements Observer on top of a logr.Logger.
// Failures are logged as errors; everything else at V(1).
type LogrObserver struct {
	logger logr.Logger
}

// NewLogrObserver wraps logger.
func NewLogrObserver(logger logr.Logger) *LogrObserver {
	return &LogrObserver{logger: logger}
}

// Printf implements Logger.
func (o *LogrObserver) Printf(format string, v ...interface{}) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *LogrObserver) Event(event Event) {
	kv := []interface{}{"type", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	for _, k := range sortedKeys(event.Fields) {
		kv = append(kv, k, event.Fields[k])
	}
	if event.Type.IsFailure() {
		o.logger.Error(errors.New(event.Message), "provisioning failure", kv...)
		return
	}
	o.logger.V(1).Info(event.Message, kv...)
}

// Progress implements Observer.
func (o *LogrObserver) Progress(phase string, current, total int) {
	o.logger.V(1).Info("progress", "phase", phase, "current", current, "total", total)
}

// WithFields implements Observer.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	kv := make([]interface{}, 0, len(fields)*2)
	for _, k := range sortedKeys(fields) {
		kv = append(kv, k, fields[k])
	}
	return &LogrObserver{logger: o.logger.WithValues(kv...)}
}

func withContext(event Event, contextFields map[string]string) Event {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	merged := mergeFields(contextFields, nil)
	for k, v := range event.Fields {
		merged[k] = v
	}
	event.Fields = merged
	return event
}

func mergeFields(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatEvent formats an event for console output.
func formatEvent(event Event) string {
	var parts []string

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Type.IsFailure() {
		parts = append(parts, "ERROR:")
	}
	parts = append(parts, event.Message)
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("(%s)", event.Resource))
	}

	if len(event.Fields) > 0 {
		var fieldParts []string
		for _, k := range sortedKeys(event.Fields) {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, event.Fields[k]))
		}
		parts = append(parts, strings.Join(fieldParts, " "))
	}

	return strings.Join(parts, " ")
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase, message string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: message,
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceResolved logs a resolved name.
func LogResourceResolved(observer Observer, kind, name, id string) {
	observer.Event(Event{
		Type:     EventResourceResolved,
		Phase:    "Resolve",
		Resource: name,
		Message:  fmt.Sprintf("resolved %s", kind),
		Fields:   map[string]string{"id": id},
	})
}

// LogResourceCreating logs a creation attempt.
func LogResourceCreating(observer Observer, name string, attempt, maxAttempts int) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    "Provision",
		Resource: name,
		Message:  "creating server",
		Fields: map[string]string{
			"attempt": fmt.Sprintf("%d/%d", attempt, maxAttempts),
		},
	})
}

// LogResourceCreated logs a server that became ready.
func LogResourceCreated(observer Observer, name, id string, failures int) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    "Provision",
		Resource: name,
		Message:  "server ready",
		Fields: map[string]string{
			"id":       id,
			"failures": fmt.Sprintf("%d", failures),
		},
	})
}

// LogResourceExists logs a server that already exists.
func LogResourceExists(observer Observer, name, id string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    "Provision",
		Resource: name,
		Message:  "server already exists",
		Fields:   map[string]string{"id": id},
	})
}

// LogResourceFailed logs a failed attempt or a fatal error.
func LogResourceFailed(observer Observer, name, reason string, err error) {
	msg := reason
	if err != nil {
		msg = fmt.Sprintf("%s: %v", reason, err)
	}
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    "Provision",
		Resource: name,
		Message:  msg,
	})
}

// LogResourceDeleting logs the deletion of a failed server.
func LogResourceDeleting(observer Observer, name string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Phase:    "Provision",
		Resource: name,
		Message:  "deleting failed server",
	})
}

// LogResourceDeleted logs a deleted server.
func LogResourceDeleted(observer Observer, name string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    "Provision",
		Resource: name,
		Message:  "failed server deleted",
	})
}
