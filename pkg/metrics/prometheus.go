// Package metrics provides Prometheus metrics for the work-order dashboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Feed Metrics - External data source health
	feedFetches     *prometheus.CounterVec
	feedFetchErrors *prometheus.CounterVec
	feedRows        *prometheus.GaugeVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	// Classification Metrics - Core pipeline quality
	rowsClassified     prometheus.Counter
	dateParseFailures  prometheus.Counter
	dateParseFallbacks prometheus.Counter
	categoryRecords    *prometheus.GaugeVec

	// Snapshot Metrics - Refresh cycle timings
	refreshDuration  prometheus.Histogram
	snapshotLastUnix prometheus.Gauge
	urgentRecords    prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Resource Metrics - Sidebar file uploads
	resourceUploads *prometheus.CounterVec

	// System Metrics - Process health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "preserve",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Feed Metrics - External data source health
	m.feedFetches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "feed_fetches_total",
			Help:      "Total number of external feed fetches by feed name",
		},
		[]string{"feed"},
	)

	m.feedFetchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "feed_fetch_errors_total",
			Help:      "Total number of failed feed fetches by feed name",
		},
		[]string{"feed"},
	)

	m.feedRows = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "feed_rows",
			Help:      "Row count of the most recent fetch by feed name",
		},
		[]string{"feed"},
	)

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of feed cache hits (fetch short-circuited)",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of feed cache misses",
	})

	// Classification Metrics - Core pipeline quality
	m.rowsClassified = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_classified_total",
		Help:      "Total number of work-order rows classified",
	})

	m.dateParseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "date_parse_failures_total",
		Help:      "Total number of due-date values that normalized to unknown",
	})

	m.dateParseFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "date_parse_fallbacks_total",
		Help:      "Total number of due-date values resolved by the fuzzy fallback parser",
	})

	m.categoryRecords = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "category_records",
			Help:      "Record count of the current snapshot by category",
		},
		[]string{"category"},
	)

	// Snapshot Metrics - Refresh cycle timings
	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_milliseconds",
		Help:      "Histogram of full refresh cycle duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the most recent snapshot build",
	})

	m.urgentRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "urgent_records",
		Help:      "Size of the urgent worklist in the current snapshot",
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Resource Metrics - Sidebar file uploads
	m.resourceUploads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "resource_uploads_total",
			Help:      "Total number of resource files uploaded by section",
		},
		[]string{"section"},
	)

	// System Metrics - Process health
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
		Buckets:   m.histogramBuckets,
	})
}

// RecordFeedFetch increments the fetch counter for a feed.
func RecordFeedFetch(feed string) {
	globalManager.feedFetches.WithLabelValues(feed).Inc()
}

// RecordFeedFetchError increments the fetch error counter for a feed.
func RecordFeedFetchError(feed string) {
	globalManager.feedFetchErrors.WithLabelValues(feed).Inc()
}

// UpdateFeedRows sets the most recent row count for a feed.
func UpdateFeedRows(feed string, rows int) {
	globalManager.feedRows.WithLabelValues(feed).Set(float64(rows))
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordRowsClassified adds to the classified rows counter.
func RecordRowsClassified(n int) {
	globalManager.rowsClassified.Add(float64(n))
}

// RecordDateParseFailure increments the parse failure counter.
func RecordDateParseFailure() {
	globalManager.dateParseFailures.Inc()
}

// RecordDateParseFallback increments the fuzzy fallback counter.
func RecordDateParseFallback() {
	globalManager.dateParseFallbacks.Inc()
}

// UpdateCategoryCount sets the current record count for a category.
func UpdateCategoryCount(category string, count int) {
	globalManager.categoryRecords.WithLabelValues(category).Set(float64(count))
}

// RecordRefreshDuration records a refresh cycle duration in milliseconds.
func RecordRefreshDuration(durationMs float64) {
	globalManager.refreshDuration.Observe(durationMs)
}

// UpdateSnapshotTime sets the unix timestamp of the latest snapshot.
func UpdateSnapshotTime(unix int64) {
	globalManager.snapshotLastUnix.Set(float64(unix))
}

// UpdateUrgentCount sets the urgent worklist size.
func UpdateUrgentCount(count int) {
	globalManager.urgentRecords.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordResourceUpload increments the upload counter for a section.
func RecordResourceUpload(section string) {
	globalManager.resourceUploads.WithLabelValues(section).Inc()
}

// UpdateSystemMemoryUsage sets the current heap allocation.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause observation.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
