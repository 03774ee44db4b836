package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	backendCalls *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	analyses     *prometheus.CounterVec
	lastSignal   *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		backendCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdash_backend_calls_total",
				Help: "Total number of backend calls by endpoint and result",
			},
			[]string{"endpoint", "result"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdash_fallbacks_total",
				Help: "Passive reads served from fallback data",
			},
			[]string{"operation", "source"},
		),
		analyses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdash_analysis_requests_total",
				Help: "Analysis requests by outcome",
			},
			[]string{"outcome"},
		),
		lastSignal: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "riskdash_last_signal",
				Help: "Last analysis signal for a symbol",
			},
			[]string{"symbol"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskdash_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordBackendCall records one backend request.
func (r *Recorder) RecordBackendCall(endpoint, result string) {
	r.backendCalls.WithLabelValues(endpoint, result).Inc()
}

// RecordFallback records a read answered from cache or mock data.
func (r *Recorder) RecordFallback(op, source string) {
	r.fallbacks.WithLabelValues(op, source).Inc()
}

// RecordAnalysis records the outcome of an analysis request.
func (r *Recorder) RecordAnalysis(outcome string) {
	r.analyses.WithLabelValues(outcome).Inc()
}

// RecordSignal records the last signal for a symbol.
func (r *Recorder) RecordSignal(symbol string, value float64) {
	r.lastSignal.WithLabelValues(symbol).Set(value)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
