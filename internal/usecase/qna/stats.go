package qna

import (
	"context"
	"fmt"

	"qna/internal/observability/metrics"
)

// Stats summarises stored content.
type Stats struct {
	ActiveQuestions int64
	ActiveAnswers   int64
	DeleteHistories int64
}

// RefreshStats counts active content and audit records and publishes them as gauges.
func (s *Service) RefreshStats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.ActiveQuestions, err = s.Questions.CountActive(ctx); err != nil {
		return Stats{}, fmt.Errorf("count questions: %w", err)
	}
	if st.ActiveAnswers, err = s.Answers.CountActive(ctx); err != nil {
		return Stats{}, fmt.Errorf("count answers: %w", err)
	}
	if st.DeleteHistories, err = s.Histories.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count delete histories: %w", err)
	}

	metrics.UpdateContentTotals(st.ActiveQuestions, st.ActiveAnswers, st.DeleteHistories)
	return st, nil
}
