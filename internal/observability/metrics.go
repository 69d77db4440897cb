package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes prometheus counters for the HTTP boundary and the store.
type Metrics struct {
	requests        *prometheus.CounterVec
	errors          *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
}

// NewMetrics registers counters on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ispops_http_requests_total",
			Help: "HTTP requests by path, method and status.",
		}, []string{"path", "method", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ispops_http_errors_total",
			Help: "HTTP errors by path, method and error code.",
		}, []string{"path", "method", "code"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ispops_store_mutations_total",
			Help: "Store mutations by collection.",
		}, []string{"collection"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ispops_store_persist_failures_total",
			Help: "Swallowed persistence failures by collection.",
		}, []string{"collection"}),
	}
	reg.MustRegister(m.requests, m.errors, m.mutations, m.persistFailures)
	return m
}

// RecordRequest increments the request counter.
func (m *Metrics) RecordRequest(path, method string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}

// RecordError increments the error counter.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordMutation increments the per-collection mutation counter.
func (m *Metrics) RecordMutation(collection string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(collection).Inc()
}

// RecordPersistFailure increments the swallowed-failure counter.
func (m *Metrics) RecordPersistFailure(collection string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(collection).Inc()
}
