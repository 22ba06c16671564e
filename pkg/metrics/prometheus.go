// Package metrics provides Prometheus metrics for the playcall service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline Metrics - enriched table builds
	pipelineBuilds        prometheus.Counter
	pipelineBuildDuration prometheus.Histogram
	pipelineErrors        *prometheus.CounterVec
	droppedRows           *prometheus.CounterVec
	enrichedRows          prometheus.Gauge
	snapshotLastUnix      prometheus.Gauge
	snapshotRebuilds      prometheus.Counter
	snapshotUnchanged     prometheus.Counter

	// Query Metrics - filter and summary requests
	queries     *prometheus.CounterVec
	queryRows   prometheus.Histogram
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheErrors prometheus.Counter

	// Warm-up Metrics - cache warming queue and workers
	warmQueueSize     prometheus.Gauge
	warmJobs          *prometheus.CounterVec
	warmJobDuration   prometheus.Histogram
	warmWorkersActive prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Metrics - process health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Warm-up job results.
const (
	WarmDone    = "done"
	WarmFailed  = "failed"
	WarmDropped = "dropped"
)

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "playcall",
		subsystem:        "profiler",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.pipelineBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_builds_total",
		Help:      "Total number of enriched play table builds",
	})

	m.pipelineBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_build_duration_milliseconds",
		Help:      "Duration of enriched play table builds in milliseconds",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	m.pipelineErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_errors_total",
		Help:      "Failed pipeline builds by stage",
	}, []string{"stage"})

	m.droppedRows = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_dropped_rows_total",
		Help:      "Raw rows dropped by the pipeline by reason",
	}, []string{"reason"})

	m.enrichedRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "enriched_rows",
		Help:      "Rows in the most recently built play table",
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the last published play table snapshot",
	})

	m.snapshotRebuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rebuilds_total",
		Help:      "Refreshes whose raw tables changed and were republished",
	})

	m.snapshotUnchanged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_unchanged_total",
		Help:      "Refreshes whose raw tables were unchanged",
	})

	m.queries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queries_total",
		Help:      "Queries served by kind",
	}, []string{"kind"})

	m.queryRows = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_result_rows",
		Help:      "Rows matched per filter query",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Summary queries served from the result cache",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Summary queries computed because the cache had no entry",
	})

	m.cacheErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_errors_total",
		Help:      "Result cache operations that failed",
	})

	m.warmQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_queue_size",
		Help:      "Cache warm-up jobs waiting in the queue",
	})

	m.warmJobs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_jobs_total",
		Help:      "Cache warm-up jobs by result",
	}, []string{"result"})

	m.warmJobDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_job_duration_milliseconds",
		Help:      "Time to compute one warm-up summary in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.warmWorkersActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_workers_active",
		Help:      "Running cache warm-up workers",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
	})
}

// RecordPipelineBuild counts a build and observes its duration.
func (m *Manager) RecordPipelineBuild(durationMs float64) {
	m.pipelineBuilds.Inc()
	m.pipelineBuildDuration.Observe(durationMs)
}

// RecordPipelineError counts a failed build at stage.
func (m *Manager) RecordPipelineError(stage string) {
	m.pipelineErrors.WithLabelValues(stage).Inc()
}

// RecordDroppedRows adds n dropped rows for reason. Non-positive n is ignored.
func (m *Manager) RecordDroppedRows(reason string, n int) {
	if n > 0 {
		m.droppedRows.WithLabelValues(reason).Add(float64(n))
	}
}

// UpdateEnrichedRows sets the size of the current play table.
func (m *Manager) UpdateEnrichedRows(n int) {
	m.enrichedRows.Set(float64(n))
}

// RecordSnapshot records a refresh outcome at unix time ts.
func (m *Manager) RecordSnapshot(changed bool, ts int64) {
	if changed {
		m.snapshotRebuilds.Inc()
		m.snapshotLastUnix.Set(float64(ts))
		return
	}
	m.snapshotUnchanged.Inc()
}

// RecordQuery counts a query of kind that matched rows plays.
func (m *Manager) RecordQuery(kind string, rows int) {
	m.queries.WithLabelValues(kind).Inc()
	m.queryRows.Observe(float64(rows))
}

// RecordCacheHit counts a result cache hit.
func (m *Manager) RecordCacheHit() { m.cacheHits.Inc() }

// RecordCacheMiss counts a result cache miss.
func (m *Manager) RecordCacheMiss() { m.cacheMisses.Inc() }

// RecordCacheError counts a failed cache operation.
func (m *Manager) RecordCacheError() { m.cacheErrors.Inc() }

// UpdateWarmQueueSize sets the number of queued warm-up jobs.
func (m *Manager) UpdateWarmQueueSize(n int) { m.warmQueueSize.Set(float64(n)) }

// RecordWarmJob counts a warm-up job with result (done, failed, dropped)
// and, for computed jobs, observes its duration.
func (m *Manager) RecordWarmJob(result string, durationMs float64) {
	m.warmJobs.WithLabelValues(result).Inc()
	if result != WarmDropped {
		m.warmJobDuration.Observe(durationMs)
	}
}

// UpdateWarmWorkers sets the number of running warm-up workers.
func (m *Manager) UpdateWarmWorkers(n int) { m.warmWorkersActive.Set(float64(n)) }

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an HTTP error.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMetrics sets the process health gauges.
func (m *Manager) UpdateSystemMetrics(memoryBytes uint64, goroutines int) {
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RecordSystemGCPauseTime observes an average GC pause.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	m.systemGCPauseTime.Observe(pauseMs)
}

// RecordPipelineBuild counts a build on the global manager.
func RecordPipelineBuild(durationMs float64) { globalManager.RecordPipelineBuild(durationMs) }

// RecordPipelineError counts a failed build on the global manager.
func RecordPipelineError(stage string) { globalManager.RecordPipelineError(stage) }

// RecordDroppedRows adds dropped rows on the global manager.
func RecordDroppedRows(reason string, n int) { globalManager.RecordDroppedRows(reason, n) }

// UpdateEnrichedRows sets the play table size on the global manager.
func UpdateEnrichedRows(n int) { globalManager.UpdateEnrichedRows(n) }

// RecordSnapshot records a refresh outcome on the global manager.
func RecordSnapshot(changed bool, ts int64) { globalManager.RecordSnapshot(changed, ts) }

// RecordQuery counts a query on the global manager.
func RecordQuery(kind string, rows int) { globalManager.RecordQuery(kind, rows) }

// RecordCacheHit counts a cache hit on the global manager.
func RecordCacheHit() { globalManager.RecordCacheHit() }

// RecordCacheMiss counts a cache miss on the global manager.
func RecordCacheMiss() { globalManager.RecordCacheMiss() }

// RecordCacheError counts a cache error on the global manager.
func RecordCacheError() { globalManager.RecordCacheError() }

// UpdateWarmQueueSize sets the warm-up queue size on the global manager.
func UpdateWarmQueueSize(n int) { globalManager.UpdateWarmQueueSize(n) }

// RecordWarmJob counts a warm-up job on the global manager.
func RecordWarmJob(result string, durationMs float64) { globalManager.RecordWarmJob(result, durationMs) }

// UpdateWarmWorkers sets the warm-up worker count on the global manager.
func UpdateWarmWorkers(n int) { globalManager.UpdateWarmWorkers(n) }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records an HTTP error on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMetrics sets the process health gauges on the global manager.
func UpdateSystemMetrics(memoryBytes uint64, goroutines int) {
	globalManager.UpdateSystemMetrics(memoryBytes, goroutines)
}

// RecordSystemGCPauseTime observes a GC pause on the global manager.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
