package repository

import (
	"context"

	"qna/internal/domain/entity"
)

// QuestionRepository persists Question aggregates.
type QuestionRepository interface {
	// FindActiveByID loads a non-deleted question together with its writer and
	// every attached answer (deleted answers included, flagged), in insertion order.
	// Returns (nil, nil) if the question does not exist or is soft-deleted.
	FindActiveByID(ctx context.Context, id int64) (*entity.Question, error)
	// Create inserts a new question and assigns its ID.
	Create(ctx context.Context, question *entity.Question) error
	// Save writes the question row and every attached answer row.
	Save(ctx context.Context, question *entity.Question) error
	// SaveAll saves each question in order.
	SaveAll(ctx context.Context, questions []*entity.Question) error
	// CountActive returns the number of non-deleted questions.
	CountActive(ctx context.Context) (int64, error)
}

// AnswerRepository persists answers independently of their question.
type AnswerRepository interface {
	// FindActiveByID returns (nil, nil) if the answer does not exist or is soft-deleted.
	FindActiveByID(ctx context.Context, id int64) (*entity.Answer, error)
	Create(ctx context.Context, answer *entity.Answer) error
	Save(ctx context.Context, answer *entity.Answer) error
	SaveAll(ctx context.Context, answers []*entity.Answer) error
	CountActive(ctx context.Context) (int64, error)
}
