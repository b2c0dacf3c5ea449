// internal/monitoring/metrics.go

// Package monitoring exposes run metrics over Prometheus and a small status
// server. Metrics cover the fetch layer, the strategy pipeline, and the
// emitted records.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "instagram_scraper"

// Metrics holds the Prometheus instruments for one run. A nil-registry
// Metrics (NewNopMetrics) records into unregistered collectors, which keeps
// callers free of nil checks.
type Metrics struct {
	pagesFetched     *prometheus.CounterVec
	pagesSkipped     *prometheus.CounterVec
	strategyAttempts *prometheus.CounterVec
	strategyDuration *prometheus.HistogramVec
	recordsEmitted   *prometheus.CounterVec
	recordsDropped   *prometheus.CounterVec
	blocksDetected   prometheus.Counter
	queueDepth       prometheus.Gauge
}

// NewMetrics creates and registers the instrument set on the given
// registerer. Tests pass their own registry to avoid collisions.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		pagesFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_fetched_total",
				Help:      "Pages fetched and parsed, by page kind",
			},
			[]string{"kind"},
		),
		pagesSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_skipped_total",
				Help:      "Pages skipped before extraction, by reason",
			},
			[]string{"reason"},
		),
		strategyAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "strategy_attempts_total",
				Help:      "Strategy attempts, by strategy and result",
			},
			[]string{"strategy", "result"},
		),
		strategyDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "strategy_duration_seconds",
				Help:      "Per-strategy extraction time",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		recordsEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_emitted_total",
				Help:      "Final records emitted, by content type",
			},
			[]string{"type"},
		),
		recordsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_dropped_total",
				Help:      "Records dropped before emission, by reason",
			},
			[]string{"reason"},
		),
		blocksDetected: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "blocks_detected_total",
				Help:      "Responses recognized as block or login walls",
			},
		),
		queueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "queue_depth",
				Help:      "Work items currently queued",
			},
		),
	}
}

// NewNopMetrics returns a metrics set backed by an unregistered registry.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// PageFetched counts a successfully fetched and parsed page.
func (m *Metrics) PageFetched(kind string) {
	m.pagesFetched.WithLabelValues(kind).Inc()
}

// PageSkipped counts a page abandoned before extraction.
func (m *Metrics) PageSkipped(reason string) {
	m.pagesSkipped.WithLabelValues(reason).Inc()
}

// StrategyAttempt counts one strategy run and observes its duration.
// Result is one of "match", "miss", or "error".
func (m *Metrics) StrategyAttempt(strategy, result string, d time.Duration) {
	m.strategyAttempts.WithLabelValues(strategy, result).Inc()
	m.strategyDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

// RecordEmitted counts a finalized record by content type.
func (m *Metrics) RecordEmitted(contentType string) {
	m.recordsEmitted.WithLabelValues(contentType).Inc()
}

// RecordDropped counts a record removed before emission.
func (m *Metrics) RecordDropped(reason string) {
	m.recordsDropped.WithLabelValues(reason).Inc()
}

// BlockDetected counts a response recognized as a wall.
func (m *Metrics) BlockDetected() {
	m.blocksDetected.Inc()
}

// QueueDepth reports the current work queue length.
func (m *Metrics) QueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}
