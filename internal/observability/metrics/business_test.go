package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"qna/internal/domain/entity"
)

func TestRecordDeletion(t *testing.T) {
	tests := []struct {
		name        string
		contentType entity.ContentType
		outcome     string
	}{
		{"question success", entity.ContentTypeQuestion, OutcomeSuccess},
		{"question rejected", entity.ContentTypeQuestion, OutcomeRejected},
		{"answer not found", entity.ContentTypeAnswer, OutcomeNotFound},
		{"answer error", entity.ContentTypeAnswer, OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := DeletionsTotal.WithLabelValues(tt.contentType.String(), tt.outcome)
			before := testutil.ToFloat64(counter)

			RecordDeletion(tt.contentType, tt.outcome, 15*time.Millisecond)

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordHistoriesWritten(t *testing.T) {
	u := entity.NewUser("alice", "", "", "")
	q := DeleteHistoriesWrittenTotal.WithLabelValues("QUESTION")
	a := DeleteHistoriesWrittenTotal.WithLabelValues("ANSWER")
	beforeQ, beforeA := testutil.ToFloat64(q), testutil.ToFloat64(a)

	RecordHistoriesWritten([]entity.DeleteHistory{
		entity.NewDeleteHistory(entity.ContentTypeQuestion, 1, u, time.Now()),
		entity.NewDeleteHistory(entity.ContentTypeAnswer, 2, u, time.Now()),
		entity.NewDeleteHistory(entity.ContentTypeAnswer, 3, u, time.Now()),
	})

	assert.Equal(t, beforeQ+1, testutil.ToFloat64(q))
	assert.Equal(t, beforeA+2, testutil.ToFloat64(a))
}

func TestRecordHistoriesWritten_empty(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHistoriesWritten(nil)
	})
}

func TestUpdateContentTotals(t *testing.T) {
	UpdateContentTotals(3, 7, 11)

	assert.Equal(t, float64(3), testutil.ToFloat64(QuestionsActive))
	assert.Equal(t, float64(7), testutil.ToFloat64(AnswersActive))
	assert.Equal(t, float64(11), testutil.ToFloat64(DeleteHistoriesTotal))
}

func TestRecordCircuitBreakerState(t *testing.T) {
	RecordCircuitBreakerState(2)
	assert.Equal(t, float64(2), testutil.ToFloat64(DBCircuitBreakerState))
	RecordCircuitBreakerState(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(DBCircuitBreakerState))
}

func TestRecordHTTPRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("DELETE", "/questions/:id", "204", 20*time.Millisecond, 0, 0)
		RecordHTTPRequest("POST", "/questions", "201", 20*time.Millisecond, 128, 256)
	})
}
