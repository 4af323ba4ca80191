package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Instance results recorded by Metrics.
const (
	ResultCreated  = "created"
	ResultExisting = "existing"
	ResultFailed   = "failed"
)

// Metrics records provisioning counters. A nil *Metrics records nothing.
type Metrics struct {
	attempts  prometheus.Counter
	failures  *prometheus.CounterVec
	deletions *prometheus.CounterVec
	instances *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewMetrics creates the provisioning metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mkserver",
			Subsystem: "provision",
			Name:      "attempts_total",
			Help:      "Total number of server create requests submitted",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mkserver",
			Subsystem: "provision",
			Name:      "failures_total",
			Help:      "Total number of failed creation attempts by reason",
		}, []string{"reason"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mkserver",
			Subsystem: "provision",
			Name:      "deletions_total",
			Help:      "Total number of failed servers deleted before a retry, by result",
		}, []string{"result"}),
		instances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mkserver",
			Subsystem: "provision",
			Name:      "instances_total",
			Help:      "Total number of instances processed by result",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mkserver",
			Subsystem: "provision",
			Name:      "instance_duration_seconds",
			Help:      "Time spent provisioning one instance, retries included",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 10), // 5s to ~43min
		}),
	}
	reg.MustRegister(m.attempts, m.failures, m.deletions, m.instances, m.duration)
	return m
}

func (m *Metrics) recordAttempt() {
	if m != nil {
		m.attempts.Inc()
	}
}

func (m *Metrics) recordFailure(reason string) {
	if m != nil {
		m.failures.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) recordDeletion(result string) {
	if m != nil {
		m.deletions.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) recordInstance(o Outcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := ResultFailed
	switch {
	case o.Success && o.Changed:
		result = ResultCreated
	case o.Success:
		result = ResultExisting
	}
	m.instances.WithLabelValues(result).Inc()
	m.duration.Observe(elapsed.Seconds())
}
