package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeAttempt = "attempt"
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics records application operation counters. A nil *Metrics is a no-op.
type Metrics struct {
	operations   *prometheus.CounterVec
	durations    *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
}

// NewMetrics registers the trip_* collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_operation_total",
			Help: "Application operations by module, operation and outcome.",
		}, []string{"module", "operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trip_operation_duration_seconds",
			Help:    "Application operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"module", "operation"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_points_cache_lookups_total",
			Help: "Per-round points cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.operations, m.durations, m.cacheLookups)
	return m
}

func (m *Metrics) RecordOperationAttempt(module, operation string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(module, operation, outcomeAttempt).Inc()
}

func (m *Metrics) RecordOperationSuccess(module, operation string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(module, operation, outcomeSuccess).Inc()
}

func (m *Metrics) RecordOperationFailure(module, operation string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(module, operation, outcomeFailure).Inc()
}

func (m *Metrics) RecordOperationDuration(module, operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.durations.WithLabelValues(module, operation).Observe(d.Seconds())
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}
