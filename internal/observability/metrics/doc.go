// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (deletions, delete histories, stored content)
//   - Database query and circuit breaker metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "qna/internal/observability/metrics"
//
//	start := time.Now()
//	err := svc.DeleteQuestion(ctx, actor, id)
//	metrics.RecordDeletion(entity.ContentTypeQuestion, metrics.OutcomeSuccess, time.Since(start))
package metrics
