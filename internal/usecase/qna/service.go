package qna

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"qna/internal/domain/entity"
	"qna/internal/observability/logging"
	"qna/internal/observability/metrics"
	"qna/internal/observability/tracing"
	"qna/internal/repository"
)

// CreateQuestionInput represents the input parameters for creating a question.
type CreateQuestionInput struct {
	Title    string
	Contents string
}

// Service provides question/answer use cases.
// Every mutating operation runs inside Tx so that entity state and
// delete histories are committed together or not at all.
type Service struct {
	Questions repository.QuestionRepository
	Answers   repository.AnswerRepository
	Histories repository.DeleteHistoryRepository
	Tx        repository.Transactor
	// Now is used to timestamp delete histories. Defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// FindQuestionByID returns a non-deleted question with its answers.
// Returns ErrQuestionNotFound if it does not exist or is deleted.
func (s *Service) FindQuestionByID(ctx context.Context, id int64) (*entity.Question, error) {
	if id <= 0 {
		return nil, &entity.ValidationError{Field: "id", Message: "must be positive"}
	}
	question, err := s.Questions.FindActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

// DeleteQuestion soft-deletes a question and all of its active answers on
// behalf of actor and records one delete history per deleted entity.
//
// Returns ErrQuestionNotFound when the question is missing or already deleted,
// and *entity.CannotDeleteError when actor does not own the question or one of
// its active answers. On any error nothing is committed.
func (s *Service) DeleteQuestion(ctx context.Context, actor entity.User, questionID int64) error {
	if questionID <= 0 {
		return &entity.ValidationError{Field: "id", Message: "must be positive"}
	}

	ctx, span := tracing.GetTracer().Start(ctx, "qna.DeleteQuestion",
		trace.WithAttributes(
			attribute.Int64("question.id", questionID),
			attribute.String("actor.user_id", actor.UserID),
		))
	defer span.End()

	start := time.Now()
	var histories []entity.DeleteHistory
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		question, err := s.FindQuestionByID(ctx, questionID)
		if err != nil {
			return err
		}

		histories, err = question.Delete(actor, s.now())
		if err != nil {
			return err
		}

		if err := s.Questions.Save(ctx, question); err != nil {
			return fmt.Errorf("save question: %w", err)
		}
		if _, err := s.Histories.SaveAll(ctx, histories); err != nil {
			return fmt.Errorf("save delete histories: %w", err)
		}
		return nil
	})

	logger := logging.FromContext(ctx)
	outcome := outcomeOf(err)
	metrics.RecordDeletion(entity.ContentTypeQuestion, outcome, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		logDeleteFailure(logger, "question", questionID, actor, err)
		return fmt.Errorf("delete question %d: %w", questionID, err)
	}

	metrics.RecordHistoriesWritten(histories)
	span.SetAttributes(attribute.Int("histories", len(histories)))
	logger.Info("question deleted",
		slog.Int64("question_id", questionID),
		slog.String("actor", actor.UserID),
		slog.Int("answers_deleted", len(histories)-1))
	return nil
}

// DeleteAnswer soft-deletes a single answer written by actor and records its history.
// Returns ErrAnswerNotFound when the answer is missing or already deleted.
func (s *Service) DeleteAnswer(ctx context.Context, actor entity.User, answerID int64) error {
	if answerID <= 0 {
		return &entity.ValidationError{Field: "id", Message: "must be positive"}
	}

	ctx, span := tracing.GetTracer().Start(ctx, "qna.DeleteAnswer",
		trace.WithAttributes(
			attribute.Int64("answer.id", answerID),
			attribute.String("actor.user_id", actor.UserID),
		))
	defer span.End()

	start := time.Now()
	var history entity.DeleteHistory
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		answer, err := s.Answers.FindActiveByID(ctx, answerID)
		if err != nil {
			return fmt.Errorf("find answer: %w", err)
		}
		if answer == nil {
			return ErrAnswerNotFound
		}
		if err := answer.ValidateOwnership(actor); err != nil {
			return err
		}

		history = answer.Delete(s.now())
		if err := s.Answers.Save(ctx, answer); err != nil {
			return fmt.Errorf("save answer: %w", err)
		}
		if _, err := s.Histories.SaveAll(ctx, []entity.DeleteHistory{history}); err != nil {
			return fmt.Errorf("save delete histories: %w", err)
		}
		return nil
	})

	logger := logging.FromContext(ctx)
	outcome := outcomeOf(err)
	metrics.RecordDeletion(entity.ContentTypeAnswer, outcome, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		logDeleteFailure(logger, "answer", answerID, actor, err)
		return fmt.Errorf("delete answer %d: %w", answerID, err)
	}

	metrics.RecordHistoriesWritten([]entity.DeleteHistory{history})
	logger.Info("answer deleted",
		slog.Int64("answer_id", answerID),
		slog.String("actor", actor.UserID))
	return nil
}

// CreateQuestion creates a question written by writer.
// Returns a ValidationError if the title is empty or too long.
func (s *Service) CreateQuestion(ctx context.Context, writer entity.User, in CreateQuestionInput) (*entity.Question, error) {
	question, err := entity.NewQuestion(in.Title, in.Contents, writer)
	if err != nil {
		return nil, err
	}
	if err := s.Questions.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

// AddAnswer attaches a new answer written by writer to an active question.
func (s *Service) AddAnswer(ctx context.Context, writer entity.User, questionID int64, contents string) (*entity.Answer, error) {
	if questionID <= 0 {
		return nil, &entity.ValidationError{Field: "id", Message: "must be positive"}
	}

	var answer *entity.Answer
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		question, err := s.FindQuestionByID(ctx, questionID)
		if err != nil {
			return err
		}
		answer, err = entity.NewAnswer(&writer, question, contents)
		if err != nil {
			return err
		}
		question.AddAnswer(answer)
		if err := s.Answers.Create(ctx, answer); err != nil {
			return fmt.Errorf("create answer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add answer to question %d: %w", questionID, err)
	}
	return answer, nil
}

// ListHistories returns the delete histories recorded for user, newest first.
func (s *Service) ListHistories(ctx context.Context, user entity.User) ([]entity.DeleteHistory, error) {
	histories, err := s.Histories.ListByDeletedBy(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("list delete histories: %w", err)
	}
	return histories, nil
}

// outcomeOf classifies a deletion result for metrics and span status.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, entity.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, entity.ErrCannotDelete):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

func logDeleteFailure(logger *slog.Logger, kind string, id int64, actor entity.User, err error) {
	attrs := []any{
		slog.String("content", kind),
		slog.Int64("content_id", id),
		slog.String("actor", actor.UserID),
	}
	var cdErr *entity.CannotDeleteError
	switch {
	case errors.As(err, &cdErr):
		logger.Warn("deletion rejected", append(attrs, slog.String("rule", string(cdErr.Rule)))...)
	case errors.Is(err, entity.ErrNotFound):
		logger.Info("deletion target not found", attrs...)
	default:
		logger.Error("deletion failed", append(attrs, slog.Any("error", err))...)
	}
}
