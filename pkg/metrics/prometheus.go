// Package metrics provides Prometheus metrics for the talent matching service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// defaultBatchBuckets covers single pairs up to large cross products.
var defaultBatchBuckets = []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 5000} //nolint:gochecknoglobals // immutable bucket layout

// Manager manages all Prometheus metrics for the matching service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Matching
	matchRequests       *prometheus.CounterVec
	matchResults        *prometheus.CounterVec
	matchBatchSize      *prometheus.HistogramVec
	pipelineLatency     prometheus.Histogram
	classifierLatency   *prometheus.HistogramVec
	transformErrors     *prometheus.CounterVec
	pairsTransformed    prometheus.Counter
	modelInfo           *prometheus.GaugeVec
	criteriaUnsupported *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// Queue and workers
	queueCapacity prometheus.Gauge
	queueSize     prometheus.Gauge
	queueEnqueued prometheus.Counter
	queueRejected prometheus.Counter
	workerCount   prometheus.Gauge
	workerTasks   prometheus.Counter
	workerInline  prometheus.Counter
	workerLatency prometheus.Histogram

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

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
		namespace:        "talentmatch",
		subsystem:        "matching",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) name(base string) string {
	if m.metricPrefix == "" {
		return base
	}
	return m.metricPrefix + "_" + base
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.matchRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("requests_total"),
		Help: "Match operations served, by operation and outcome",
	}, []string{"operation", "outcome"})

	m.matchResults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("results_total"),
		Help: "Predicted labels returned to callers",
	}, []string{"operation", "label"})

	m.matchBatchSize = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("batch_pairs"),
		Help:    "Number of talent/job pairs scored per operation",
		Buckets: defaultBatchBuckets,
	}, []string{"operation"})

	m.pipelineLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("pipeline_latency_milliseconds"),
		Help:    "Feature pipeline latency per batch in milliseconds",
		Buckets: m.histogramBuckets,
	})

	m.classifierLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("classifier_latency_milliseconds"),
		Help:    "Classifier predict latency per batch in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"model_type"})

	m.transformErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("transform_errors_total"),
		Help: "Feature pipeline failures by error kind",
	}, []string{"kind"})

	m.pairsTransformed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("pairs_transformed_total"),
		Help: "Talent/job pairs turned into feature rows",
	})

	m.modelInfo = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("model_info"),
		Help: "Loaded classifier, value is always 1",
	}, []string{"model_type"})

	m.criteriaUnsupported = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("criteria_ignored_total"),
		Help: "rank_and_filter criteria keys that were ignored",
	}, []string{"key"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("http_requests_total"),
		Help: "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("http_request_duration_milliseconds"),
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("http_errors_total"),
		Help: "HTTP error responses by endpoint and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("queue_capacity"),
		Help: "Capacity of the row task queue",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("queue_size"),
		Help: "Tasks currently waiting in the row task queue",
	})

	m.queueEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("queue_enqueued_total"),
		Help: "Tasks accepted by the row task queue",
	})

	m.queueRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("queue_rejected_total"),
		Help: "Tasks rejected by the row task queue (full or closed)",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("worker_count"),
		Help: "Number of pipeline workers",
	})

	m.workerTasks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("worker_tasks_total"),
		Help: "Row tasks executed by pool workers",
	})

	m.workerInline = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("worker_inline_tasks_total"),
		Help: "Row tasks executed on the caller goroutine because the queue was full",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("worker_task_latency_milliseconds"),
		Help:    "Row task latency in milliseconds",
		Buckets: m.histogramBuckets,
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system", ConstLabels: constLabels,
		Name: m.name("memory_bytes"),
		Help: "Allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system", ConstLabels: constLabels,
		Name: m.name("goroutines"),
		Help: "Current number of goroutines",
	})
}

// RecordMatchRequest counts a served match operation.
func RecordMatchRequest(operation, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.matchRequests.WithLabelValues(operation, outcome).Inc()
}

// RecordMatchResults counts returned labels for an operation.
func RecordMatchResults(operation string, positive, negative int) {
	if !globalManager.enabled {
		return
	}
	globalManager.matchResults.WithLabelValues(operation, "true").Add(float64(positive))
	globalManager.matchResults.WithLabelValues(operation, "false").Add(float64(negative))
}

// RecordBatchSize observes the number of pairs scored in one operation.
func RecordBatchSize(operation string, pairs int) {
	if !globalManager.enabled {
		return
	}
	globalManager.matchBatchSize.WithLabelValues(operation).Observe(float64(pairs))
}

// RecordPipelineLatency observes feature pipeline latency.
func RecordPipelineLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.pipelineLatency.Observe(latencyMs)
}

// RecordClassifierLatency observes classifier latency.
func RecordClassifierLatency(modelType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.classifierLatency.WithLabelValues(modelType).Observe(latencyMs)
}

// RecordTransformError counts a pipeline failure by kind.
func RecordTransformError(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.transformErrors.WithLabelValues(kind).Inc()
}

// RecordPairsTransformed counts rows produced by the pipeline.
func RecordPairsTransformed(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.pairsTransformed.Add(float64(n))
}

// SetModelInfo marks the loaded classifier type.
func SetModelInfo(modelType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.modelInfo.Reset()
	globalManager.modelInfo.WithLabelValues(modelType).Set(1)
}

// RecordCriteriaIgnored counts a criteria key that rank_and_filter does not support.
func RecordCriteriaIgnored(key string) {
	if !globalManager.enabled {
		return
	}
	globalManager.criteriaUnsupported.WithLabelValues(key).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateQueueCapacity sets the task queue capacity gauge.
func UpdateQueueCapacity(capacity int) {
	if !globalManager.enabled {
		return
	}
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueSize sets the current task queue depth.
func UpdateQueueSize(size int) {
	if !globalManager.enabled {
		return
	}
	globalManager.queueSize.Set(float64(size))
}

// RecordQueueEnqueue counts an accepted task.
func RecordQueueEnqueue() {
	if !globalManager.enabled {
		return
	}
	globalManager.queueEnqueued.Inc()
}

// RecordQueueRejected counts a rejected task.
func RecordQueueRejected() {
	if !globalManager.enabled {
		return
	}
	globalManager.queueRejected.Inc()
}

// UpdateWorkerCount sets the number of pool workers.
func UpdateWorkerCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerTask records a task executed by a pool worker.
func RecordWorkerTask(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.workerTasks.Inc()
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerInline records a task executed on the caller goroutine.
func RecordWorkerInline(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.workerInline.Inc()
	globalManager.workerLatency.Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
