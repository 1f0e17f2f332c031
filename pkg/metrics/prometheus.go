// Package metrics provides Prometheus metrics for the skillswap catalogue service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the skillswap service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Search - the core read path
	searches       *prometheus.CounterVec
	searchLatency  *prometheus.HistogramVec
	searchResults  *prometheus.HistogramVec
	searchEmpty    *prometheus.CounterVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheErrors    prometheus.Counter
	catalogLookups *prometheus.CounterVec

	// Catalogue shape
	catalogUsers        prometheus.Gauge
	catalogSkills       prometheus.Gauge
	catalogSwaps        prometheus.Gauge
	datasetLoadDuration prometheus.Gauge

	// Simulated actions
	actionsAccepted  *prometheus.CounterVec
	actionsDuplicate prometheus.Counter
	actionsRejected  *prometheus.CounterVec

	// Action queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Delivery workers
	workerActive    prometheus.Gauge
	deliveryLatency prometheus.Histogram
	deliveryErrors  prometheus.Counter
	noticesInInbox  prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByType      *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// resultBuckets sizes the result-count histogram for small in-memory rosters.
var resultBuckets = []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000} //nolint:gochecknoglobals // constant bucket layout

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
		namespace:      "skillswap",
		subsystem:      "catalog",
		latencyBuckets: prometheus.DefBuckets,
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets,
	})
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	m.searches = m.counterVec("searches_total", "Total number of roster searches by surface", "surface")
	m.searchLatency = m.histogramVec("search_latency_milliseconds", "Roster search latency in milliseconds", m.latencyBuckets, "surface")
	m.searchResults = m.histogramVec("search_results", "Number of profiles returned per search", resultBuckets, "surface")
	m.searchEmpty = m.counterVec("search_empty_total", "Searches that matched no profile", "surface")
	m.cacheHits = m.counter("search_cache_hits_total", "Search results served from the result cache")
	m.cacheMisses = m.counter("search_cache_misses_total", "Searches not found in the result cache")
	m.cacheErrors = m.counter("search_cache_errors_total", "Result cache failures that fell back to direct search")
	m.catalogLookups = m.counterVec("lookups_total", "Catalogue lookups by kind and outcome", "kind", "outcome")

	m.catalogUsers = m.gauge("users", "Number of profiles in the loaded roster")
	m.catalogSkills = m.gauge("skills", "Number of skills in the loaded catalogue")
	m.catalogSwaps = m.gauge("swaps", "Number of swap records in the loaded catalogue")
	m.datasetLoadDuration = m.gauge("dataset_load_milliseconds", "Duration of the last dataset load")

	m.actionsAccepted = m.counterVec("actions_accepted_total", "Simulated actions accepted for delivery", "kind")
	m.actionsDuplicate = m.counter("actions_duplicate_total", "Simulated actions dropped as duplicates")
	m.actionsRejected = m.counterVec("actions_rejected_total", "Simulated actions rejected", "reason")

	m.queueSize = m.gauge("action_queue_size", "Current number of queued actions")
	m.queueCapacity = m.gauge("action_queue_capacity", "Maximum number of queued actions")
	m.queueUtilization = m.gauge("action_queue_utilization_ratio", "Queue size divided by capacity")
	m.queueEnqueued = m.counter("action_queue_enqueued_total", "Actions enqueued")
	m.queueDequeued = m.counter("action_queue_dequeued_total", "Actions dequeued by workers")
	m.queueEnqueueErrors = m.counterVec("action_queue_enqueue_errors_total", "Failed enqueue attempts by reason", "reason")

	m.workerActive = m.gauge("delivery_workers", "Number of running delivery workers")
	m.deliveryLatency = m.histogram("delivery_latency_milliseconds", "Simulated delivery latency in milliseconds", m.latencyBuckets)
	m.deliveryErrors = m.counter("delivery_errors_total", "Deliveries that failed or were cancelled")
	m.noticesInInbox = m.gauge("inbox_notices", "Transient notices currently held")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets, "endpoint", "method", "status_code")

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")
	m.errorsByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint, method and type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_milliseconds", "Average GC pause in milliseconds", m.latencyBuckets)
}

// Search metrics.

// RecordSearch records one search on the given surface with its latency and result size.
func (m *Manager) RecordSearch(surface string, latencyMs float64, results int) {
	m.searches.WithLabelValues(surface).Inc()
	m.searchLatency.WithLabelValues(surface).Observe(latencyMs)
	m.searchResults.WithLabelValues(surface).Observe(float64(results))
	if results == 0 {
		m.searchEmpty.WithLabelValues(surface).Inc()
	}
}

// RecordSearch records a search on the global manager.
func RecordSearch(surface string, latencyMs float64, results int) {
	globalManager.RecordSearch(surface, latencyMs, results)
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() { globalManager.cacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// RecordCacheError increments the cache error counter.
func RecordCacheError() { globalManager.cacheErrors.Inc() }

// RecordLookup records a catalogue lookup; outcome is "hit" or "miss".
func RecordLookup(kind, outcome string) {
	globalManager.catalogLookups.WithLabelValues(kind, outcome).Inc()
}

// Catalogue metrics.

// UpdateCatalogSize sets the catalogue shape gauges.
func UpdateCatalogSize(users, skills, swaps int) {
	globalManager.catalogUsers.Set(float64(users))
	globalManager.catalogSkills.Set(float64(skills))
	globalManager.catalogSwaps.Set(float64(swaps))
}

// RecordDatasetLoad records how long the last dataset load took.
func RecordDatasetLoad(latencyMs float64) {
	globalManager.datasetLoadDuration.Set(latencyMs)
}

// Action metrics.

// RecordActionAccepted increments accepted actions for a kind.
func RecordActionAccepted(kind string) {
	globalManager.actionsAccepted.WithLabelValues(kind).Inc()
}

// RecordActionDuplicate increments the duplicate actions counter.
func RecordActionDuplicate() { globalManager.actionsDuplicate.Inc() }

// RecordActionRejected increments rejected actions for a reason.
func RecordActionRejected(reason string) {
	globalManager.actionsRejected.WithLabelValues(reason).Inc()
}

// Queue metrics.

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueSize sets the current queue size and utilization.
func UpdateQueueSize(size, capacity int) {
	globalManager.queueSize.Set(float64(size))
	if capacity > 0 {
		globalManager.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError increments the enqueue error counter for a reason.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// Worker metrics.

// UpdateWorkerActiveCount sets the number of running delivery workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordDeliveryLatency records simulated delivery latency.
func RecordDeliveryLatency(latencyMs float64) {
	globalManager.deliveryLatency.Observe(latencyMs)
}

// RecordDeliveryError increments the delivery error counter.
func RecordDeliveryError() { globalManager.deliveryErrors.Inc() }

// UpdateInboxSize sets the number of held notices.
func UpdateInboxSize(n int) {
	globalManager.noticesInInbox.Set(float64(n))
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
