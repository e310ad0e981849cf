package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every spinframe collector. A private registry keeps the
// textfile output free of Go runtime and process series.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Encoding metrics
var (
	EncodeAttemptsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_encode_attempts_total",
			Help: "Total number of trial encodes by format and outcome",
		},
		[]string{"format", "outcome"}, // outcome: "fit", "over", "error"
	)

	EncodeDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spinframe_encode_duration_seconds",
			Help:    "Duration of a single trial encode including the write",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"format"},
	)

	ResultsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_results_total",
			Help: "Total number of accepted encodings by format",
		},
		[]string{"format"},
	)

	ResultBytes = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spinframe_result_bytes",
			Help:    "Byte size of accepted encodings",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 10),
		},
	)

	BudgetViolationsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "spinframe_budget_violations_total",
			Help: "Total number of frames whose best encoding exceeded the byte budget",
		},
	)
)

// Frame loading metrics
var (
	FramesLoadedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_frames_loaded_total",
			Help: "Total number of source frames decoded and normalized",
		},
		[]string{"pipeline"},
	)

	FramesFailedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_frames_failed_total",
			Help: "Total number of source frames skipped by stage",
		},
		[]string{"pipeline", "stage"}, // stage: "load", "encode"
	)

	DecodeByFormat = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_decode_total",
			Help: "Total number of source decodes by detected format and decoder",
		},
		[]string{"format", "decoder"},
	)
)

// Animation metrics
var (
	AnimationBytes = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "spinframe_animation_bytes",
			Help: "Byte size of the last assembled animation",
		},
	)

	AnimationFrames = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "spinframe_animation_frames",
			Help: "Number of frames in the last assembled animation",
		},
	)
)

// Run metrics
var (
	RunDuration = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spinframe_run_duration_seconds",
			Help: "Wall time of the last run by pipeline",
		},
		[]string{"pipeline"},
	)

	RunTimestamp = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spinframe_run_timestamp_seconds",
			Help: "Unix time at which the last run of each pipeline finished",
		},
		[]string{"pipeline"},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spinframe_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations by volume and operation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations",
		},
		[]string{"volume", "operation"},
	)

	FilesystemRetryAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_filesystem_retry_attempts_total",
			Help: "Total number of retries after an NFS stale file handle",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_filesystem_retry_success_total",
			Help: "Total number of operations that succeeded after retrying",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_filesystem_retry_failures_total",
			Help: "Total number of operations that failed after all retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spinframe_filesystem_retry_duration_seconds",
			Help:    "Total time spent in a filesystem operation including retries",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinframe_filesystem_stale_errors_total",
			Help: "Total number of ESTALE errors seen",
		},
		[]string{"operation", "volume"},
	)
)
