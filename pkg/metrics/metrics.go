// Package metrics exposes Prometheus counters and histograms for the auth flows.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records auth outcomes. It satisfies auth.Metrics.
type Collector struct {
	outcomes        *prometheus.CounterVec
	warnings        *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finauth_auth_outcomes_total",
			Help: "Auth operation outcomes by operation and error kind.",
		}, []string{"operation", "kind"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finauth_auth_warnings_total",
			Help: "Best-effort steps that failed after a successful provider call.",
		}, []string{"step"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "finauth_provider_call_seconds",
			Help:    "Latency of identity provider calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"call"}),
	}

	reg.MustRegister(c.outcomes, c.warnings, c.providerLatency)
	return c
}

// RecordOutcome counts one finished operation. Successful operations use kind "ok".
func (c *Collector) RecordOutcome(operation, kind string) {
	c.outcomes.WithLabelValues(operation, kind).Inc()
}

// RecordWarning counts a degraded step.
func (c *Collector) RecordWarning(step string) {
	c.warnings.WithLabelValues(step).Inc()
}

// ObserveProviderCall records the latency of one provider call.
func (c *Collector) ObserveProviderCall(call string, d time.Duration) {
	c.providerLatency.WithLabelValues(call).Observe(d.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
