package metrics

import (
	"time"

	"qna/internal/domain/entity"
)

// RecordDeletion records the outcome and duration of a deletion request.
// Outcome should be one of OutcomeSuccess, OutcomeNotFound, OutcomeRejected or OutcomeError.
func RecordDeletion(contentType entity.ContentType, outcome string, duration time.Duration) {
	DeletionsTotal.WithLabelValues(contentType.String(), outcome).Inc()
	DeletionDuration.WithLabelValues(contentType.String()).Observe(duration.Seconds())
}

// RecordHistoriesWritten counts the audit records produced by a successful deletion.
func RecordHistoriesWritten(histories []entity.DeleteHistory) {
	for _, h := range histories {
		DeleteHistoriesWrittenTotal.WithLabelValues(h.ContentType.String()).Inc()
	}
}

// UpdateContentTotals updates the stored-content gauges.
// These gauges should be refreshed periodically to reflect the current state.
func UpdateContentTotals(questions, answers, histories int64) {
	QuestionsActive.Set(float64(questions))
	AnswersActive.Set(float64(answers))
	DeleteHistoriesTotal.Set(float64(histories))
}

// RecordCircuitBreakerState publishes the database circuit breaker state.
func RecordCircuitBreakerState(state int) {
	DBCircuitBreakerState.Set(float64(state))
}
