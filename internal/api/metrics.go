package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aidmqan/mqan-console/internal/models"
)

// Metrics are the Prometheus collectors exported on /metrics.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	queryDuration *prometheus.HistogramVec
	feedEvents    *prometheus.CounterVec
	feedDropped   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mqan",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mqan",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mqan",
			Name:      "query_duration_seconds",
			Help:      "Filter and aggregate evaluation time by page.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"page"}),
		feedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mqan",
			Name:      "feed_events_total",
			Help:      "Synthesized monitor events by status.",
		}, []string{"status"}),
		feedDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mqan",
			Name:      "feed_dropped_total",
			Help:      "Monitor events evicted from the activity window.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.queryDuration, m.feedEvents, m.feedDropped)
	return m
}

// ObserveFeed counts one feed tick. It matches feed.Options.OnTick.
func (m *Metrics) ObserveFeed(a models.Activity, dropped bool) {
	m.feedEvents.WithLabelValues(a.Status).Inc()
	if dropped {
		m.feedDropped.Inc()
	}
}

func (m *Metrics) observeRequest(route, method, code string, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, code).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) observeQuery(page string, elapsed time.Duration) {
	m.queryDuration.WithLabelValues(page).Observe(elapsed.Seconds())
}
