// Package iometrics provides Prometheus collectors for the resolution
// pipeline. All methods are safe to call on a nil *Metrics, so metrics
// are optional for every component.
package iometrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for name resolution.
type Metrics struct {
	// StageLatency is the duration of pipeline stages by stage and outcome.
	StageLatency *prometheus.HistogramVec

	// UpstreamRequests counts HTTP calls by service and outcome.
	UpstreamRequests *prometheus.CounterVec

	// Resolutions counts finished resolutions by outcome.
	Resolutions *prometheus.CounterVec

	// CacheLookups counts response cache lookups by service and result.
	CacheLookups *prometheus.CounterVec
}

// New creates Metrics registered with reg. Use
// prometheus.DefaultRegisterer for the process-wide registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StageLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gnfish_stage_duration_seconds",
			Help:    "Duration of resolution pipeline stages",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage", "outcome"}),

		UpstreamRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gnfish_upstream_requests_total",
			Help: "Total HTTP requests to upstream services",
		}, []string{"service", "outcome"}), // outcome: ok, unavailable, malformed

		Resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gnfish_resolutions_total",
			Help: "Total resolutions by outcome",
		}, []string{"outcome"}), // outcome: ok, cached, not_found, invalid

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gnfish_cache_lookups_total",
			Help: "Response cache lookups by service and result",
		}, []string{"service", "result"}),
	}
}

// ObserveStage records the duration of a pipeline stage.
func (m *Metrics) ObserveStage(stage string, ok bool, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage, outcome(ok)).Observe(d.Seconds())
	}
}

// IncUpstream records an upstream request.
func (m *Metrics) IncUpstream(service, outcome string) {
	if m != nil {
		m.UpstreamRequests.WithLabelValues(service, outcome).Inc()
	}
}

// IncResolution records the outcome of a resolution.
func (m *Metrics) IncResolution(outcome string) {
	if m != nil {
		m.Resolutions.WithLabelValues(outcome).Inc()
	}
}

// IncCache records a response cache hit or miss.
func (m *Metrics) IncCache(service string, hit bool) {
	if m != nil {
		res := "miss"
		if hit {
			res = "hit"
		}
		m.CacheLookups.WithLabelValues(service, res).Inc()
	}
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
