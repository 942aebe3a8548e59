// Package metrics provides Prometheus metrics for the calibration pipeline.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Calibration metrics
	itemsCalibrated   prometheus.Counter
	calibrationErrors prometheus.Counter

	// Simulation metrics
	respondentsSimulated prometheus.Counter
	estimationIterations prometheus.Histogram
	workerCount          prometheus.Gauge

	// Table metrics
	quantileTableSize prometheus.Gauge

	// Pipeline metrics
	pipelineRuns   prometheus.Counter
	pipelineErrors prometheus.Counter
	stageDuration  *prometheus.HistogramVec
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
		namespace:        "theta",
		subsystem:        "calibration",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.itemsCalibrated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "items_calibrated_total",
		Help:      "Total number of items calibrated",
	})

	m.calibrationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "calibration_errors_total",
		Help:      "Total number of item calibration failures",
	})

	m.respondentsSimulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "respondents_simulated_total",
		Help:      "Total number of synthetic respondents simulated",
	})

	m.estimationIterations = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "estimation_iterations",
		Help:      "Newton-Raphson iterations per ability estimate",
		Buckets:   []float64{1, 2, 4, 6, 8, 12, 16, 24, 32, 40},
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of simulation workers",
	})

	m.quantileTableSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "quantile_table_size",
		Help:      "Number of entries in the generated quantile table",
	})

	m.pipelineRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_runs_total",
		Help:      "Total number of completed pipeline runs",
	})

	m.pipelineErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_errors_total",
		Help:      "Total number of failed pipeline runs",
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_milliseconds",
			Help:      "Pipeline stage duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)
}

// RecordItemCalibrated increments the calibrated items counter.
func RecordItemCalibrated() {
	if globalManager.enabled {
		globalManager.itemsCalibrated.Inc()
	}
}

// RecordCalibrationError increments the calibration error counter.
func RecordCalibrationError() {
	if globalManager.enabled {
		globalManager.calibrationErrors.Inc()
	}
}

// RecordRespondentsSimulated adds to the simulated respondents counter.
func RecordRespondentsSimulated(count int) {
	if globalManager.enabled {
		globalManager.respondentsSimulated.Add(float64(count))
	}
}

// RecordEstimationIterations observes the Newton-Raphson iteration count
// for one ability estimate.
func RecordEstimationIterations(iterations int) {
	if globalManager.enabled {
		globalManager.estimationIterations.Observe(float64(iterations))
	}
}

// UpdateWorkerCount sets the simulation worker count gauge.
func UpdateWorkerCount(count int) {
	if globalManager.enabled {
		globalManager.workerCount.Set(float64(count))
	}
}

// UpdateQuantileTableSize sets the quantile table size gauge.
func UpdateQuantileTableSize(size int) {
	if globalManager.enabled {
		globalManager.quantileTableSize.Set(float64(size))
	}
}

// RecordPipelineRun increments the completed run counter.
func RecordPipelineRun() {
	if globalManager.enabled {
		globalManager.pipelineRuns.Inc()
	}
}

// RecordPipelineError increments the failed run counter.
func RecordPipelineError() {
	if globalManager.enabled {
		globalManager.pipelineErrors.Inc()
	}
}

// RecordStageDuration observes a stage duration in milliseconds.
// Known stages: "calibrate", "simulate", "quantiles", "write".
func RecordStageDuration(stage string, durationMs float64) {
	if globalManager.enabled {
		globalManager.stageDuration.WithLabelValues(stage).Observe(durationMs)
	}
}

// ExportTextfile writes the current metric state to path in the Prometheus
// text exposition format, for collection by node_exporter's textfile
// collector. Suitable for batch jobs that exit before a scrape happens.
func ExportTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
