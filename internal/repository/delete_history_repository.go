package repository

import (
	"context"

	"qna/internal/domain/entity"
)

// DeleteHistoryRepository is the append-only audit log of deletions.
type DeleteHistoryRepository interface {
	// SaveAll writes the records as one batch and returns them with IDs assigned.
	// An empty batch is a no-op.
	SaveAll(ctx context.Context, histories []entity.DeleteHistory) ([]entity.DeleteHistory, error)
	// ListByDeletedBy returns the records of one user, newest first.
	ListByDeletedBy(ctx context.Context, userID string) ([]entity.DeleteHistory, error)
	Count(ctx context.Context) (int64, error)
}
