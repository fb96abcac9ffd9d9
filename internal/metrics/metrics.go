// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sifter"

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Duration of database queries in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Total number of database query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_rate_limit_hits_total",
			Help:      "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Content Pool Metrics
	PoolEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_entries",
			Help:      "Current number of entries in the content pool",
		},
	)

	PoolAdmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_admitted_total",
			Help:      "Total number of items newly admitted to the content pool",
		},
	)

	PoolEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_evicted_total",
			Help:      "Total number of pool entries evicted by the size bound",
		},
	)

	// Feedback Metrics
	FeedbackWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_writes_total",
			Help:      "Total number of feedback writes by operation",
		},
		[]string{"operation"}, // "record", "delete"
	)

	// Filter Metrics
	FilterAssessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_assessed_total",
			Help:      "Total number of items scored by the authenticity filter",
		},
	)

	FilterRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_rejected_total",
			Help:      "Total number of items dropped by the authenticity filter",
		},
	)

	// Model Metrics
	ModelTrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_training_duration_seconds",
			Help:      "Duration of model training runs in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	ModelTrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_training_runs_total",
			Help:      "Total number of model training attempts by result",
		},
		[]string{"result"}, // "trained", "insufficient_data", "error"
	)

	ModelTrainingSamples = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_training_samples",
			Help:      "Number of labeled samples used by the last trained model",
		},
	)

	ModelTrainingLoss = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_training_loss",
			Help:      "Final mean log-loss of the last trained model",
		},
	)

	ModelCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_cache_total",
			Help:      "Model cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Pipeline Metrics
	PipelineDegradedSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_degraded_steps_total",
			Help:      "Total number of pipeline steps that failed and passed input through",
		},
		[]string{"step"},
	)

	PipelineResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_results",
			Help:      "Number of items returned per pipeline run",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 250},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_transitions_total",
			Help:      "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "app_info",
			Help:      "Application version information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPoolAdmission records the outcome of one admission batch.
func RecordPoolAdmission(admitted, evicted int) {
	PoolAdmitted.Add(float64(admitted))
	PoolEvicted.Add(float64(evicted))
}

// SetPoolSize publishes the current pool entry count.
func SetPoolSize(n int) {
	PoolEntries.Set(float64(n))
}

// RecordFeedbackWrite counts a feedback store mutation.
func RecordFeedbackWrite(operation string) {
	FeedbackWrites.WithLabelValues(operation).Inc()
}

// RecordFilterPass records how many items a filter pass saw and dropped.
func RecordFilterPass(assessed, rejected int) {
	FilterAssessed.Add(float64(assessed))
	FilterRejected.Add(float64(rejected))
}

// RecordTraining records a model training attempt. samples and loss are
// only recorded for successful runs.
func RecordTraining(result string, duration time.Duration, samples int, loss float64) {
	ModelTrainingRuns.WithLabelValues(result).Inc()
	if result != "trained" {
		return
	}
	ModelTrainingDuration.Observe(duration.Seconds())
	ModelTrainingSamples.Set(float64(samples))
	ModelTrainingLoss.Set(loss)
}

// RecordModelCache counts a model cache lookup.
func RecordModelCache(hit bool) {
	if hit {
		ModelCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	ModelCacheLookups.WithLabelValues("miss").Inc()
}

// RecordDegradedStep counts a pipeline step that failed and was skipped.
func RecordDegradedStep(step string) {
	PipelineDegradedSteps.WithLabelValues(step).Inc()
}

// RecordPipelineResults observes the size of a pipeline result.
func RecordPipelineResults(n int) {
	PipelineResults.Observe(float64(n))
}

// RecordCircuitBreakerTransition updates breaker state gauges.
// States use gobreaker's numbering: 0 closed, 1 half-open, 2 open.
func RecordCircuitBreakerTransition(name, from, to string, toState int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(toState))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// SetAppInfo publishes the running version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
