// Package metrics provides Prometheus metrics for the comparison service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Comparison pipeline metrics.
	comparisonsTotal     prometheus.Counter
	comparisonDurationMs prometheus.Histogram
	runnersCompared      prometheus.Histogram
	degradedRunners      prometheus.Counter
	validationFailures   prometheus.Counter

	// Rest alignment metrics.
	restClustersBuilt   prometheus.Histogram
	restEventsClustered prometheus.Counter
	placeholdersEmitted prometheus.Counter

	// Upstream analytics fetch metrics.
	analyticsFetches       *prometheus.CounterVec
	analyticsFetchLatency  prometheus.Histogram
	analyticsFetchFailures prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // dedicated registry, avoids default Go collectors

func init() { //nolint:gochecknoinits // global metrics must exist before any handler runs
	globalManager = NewManager()
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ultrasmart",
		subsystem:        "comparison",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         customRegistry,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.comparisonsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "requests_total",
		Help:      "Total comparison requests processed.",
	})
	m.comparisonDurationMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duration_ms",
		Help:      "Comparison pipeline duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
	m.runnersCompared = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runners_per_request",
		Help:      "Number of selected runners per comparison request.",
		Buckets:   []float64{1, 2, 3, 4, 5, 8, 12, 20},
	})
	m.degradedRunners = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "degraded_runners_total",
		Help:      "Runners whose data was replaced by sentinel defaults.",
	})
	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Comparison requests rejected by validation.",
	})

	m.restClustersBuilt = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "rest",
		Name:      "clusters_per_request",
		Help:      "Rest clusters built per comparison request.",
		Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
	})
	m.restEventsClustered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "rest",
		Name:      "events_clustered_total",
		Help:      "Rest events admitted into clusters.",
	})
	m.placeholdersEmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "rest",
		Name:      "placeholders_total",
		Help:      "Placeholder rest records emitted for runners with no event in a cluster.",
	})

	m.analyticsFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "analytics",
		Name:      "fetches_total",
		Help:      "Per-runner analysis fetches by outcome.",
	}, []string{"outcome"})
	m.analyticsFetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "analytics",
		Name:      "fetch_latency_ms",
		Help:      "Latency of per-runner analysis fetches in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
	m.analyticsFetchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "analytics",
		Name:      "fetch_failures_total",
		Help:      "Per-runner analysis fetches that failed.",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers recording against the global manager.

// RecordComparison records one completed comparison and its duration.
func RecordComparison(durationMs float64, runnerCount int) {
	if !globalManager.enabled {
		return
	}
	globalManager.comparisonsTotal.Inc()
	globalManager.comparisonDurationMs.Observe(durationMs)
	globalManager.runnersCompared.Observe(float64(runnerCount))
}

// RecordDegradedRunner counts a runner replaced by sentinel defaults.
func RecordDegradedRunner() {
	if globalManager.enabled {
		globalManager.degradedRunners.Inc()
	}
}

// RecordValidationFailure counts a rejected comparison request.
func RecordValidationFailure() {
	if globalManager.enabled {
		globalManager.validationFailures.Inc()
	}
}

// RecordRestClustering records cluster and member counts for one request.
func RecordRestClustering(clusters, events int) {
	if !globalManager.enabled {
		return
	}
	globalManager.restClustersBuilt.Observe(float64(clusters))
	globalManager.restEventsClustered.Add(float64(events))
}

// RecordPlaceholder counts a placeholder rest record.
func RecordPlaceholder() {
	if globalManager.enabled {
		globalManager.placeholdersEmitted.Inc()
	}
}

// RecordAnalyticsFetch records one per-runner fetch outcome ("ok" or "failed").
func RecordAnalyticsFetch(outcome string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.analyticsFetches.WithLabelValues(outcome).Inc()
	globalManager.analyticsFetchLatency.Observe(latencyMs)
	if outcome != "ok" {
		globalManager.analyticsFetchFailures.Inc()
	}
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

// GetRegistry returns the registry all collectors are registered with,
// for exposition via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
