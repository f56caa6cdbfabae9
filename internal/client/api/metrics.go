package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opSummarize    = "summarize"
	opFetchHistory = "fetch_history"
	opSaveHistory  = "save_history"
)

const (
	outcomeOK           = "ok"
	outcomeCancelled    = "cancelled"
	outcomeUnauthorized = "unauthorized"
	outcomeUnavailable  = "unavailable"
	outcomeDecode       = "decode_error"
	outcomeError        = "error"
)

const (
	RequestsMetric = "ytsummarizer_api_requests_total"
	LatencyMetric  = "ytsummarizer_api_request_duration_seconds"
)

// Metrics counts backend calls by operation and outcome. A nil *Metrics
// records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RequestsMetric,
			Help: "Backend requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    LatencyMetric,
			Help:    "Backend round trip latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	reg.MustRegister(m.requests, m.latency)
	return m
}

func (m *Metrics) observe(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) observeDecodeFailure(op string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcomeDecode).Inc()
}
