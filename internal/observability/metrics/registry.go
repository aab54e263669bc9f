// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	// Buckets cover fast (5ms) through slow (10s) responses for p95/p99 tracking.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks the current number of HTTP requests being processed
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Deletion outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Business metrics track application-specific operations
var (
	// DeletionsTotal counts deletion requests by content type and outcome
	DeletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qna_deletions_total",
			Help: "Total number of deletion requests",
		},
		[]string{"content_type", "outcome"},
	)

	// DeletionDuration measures the time spent in a deletion transaction
	DeletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qna_deletion_duration_seconds",
			Help:    "Time taken to process a deletion request",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"content_type"},
	)

	// DeleteHistoriesWrittenTotal counts audit records written by content type
	DeleteHistoriesWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qna_delete_histories_written_total",
			Help: "Total number of delete history records written",
		},
		[]string{"content_type"},
	)

	// QuestionsActive tracks the number of non-deleted questions
	QuestionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qna_questions_active",
			Help: "Number of non-deleted questions in the database",
		},
	)

	// AnswersActive tracks the number of non-deleted answers
	AnswersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qna_answers_active",
			Help: "Number of non-deleted answers in the database",
		},
	)

	// DeleteHistoriesTotal tracks the number of stored audit records
	DeleteHistoriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qna_delete_histories",
			Help: "Number of delete history records in the database",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database operation duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBCircuitBreakerState exposes the database circuit breaker state (0=closed, 1=half-open, 2=open)
	DBCircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_circuit_breaker_state",
			Help: "Database circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
