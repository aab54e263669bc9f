// Package observability provides structured logging, Prometheus metrics,
// OpenTelemetry tracing and SLO computation.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP traffic and deletions
//   - tracing: tracer provider setup and HTTP span middleware
//   - slo: availability and latency objectives computed from gathered metrics
//
// Example usage:
//
//	logger := logging.New(os.Stdout, logging.Options{Level: "info"})
//	logger.Info("application started")
//
//	metrics.UpdateContentTotals(10, 25, 3)
package observability
