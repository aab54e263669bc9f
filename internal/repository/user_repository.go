package repository

import (
	"context"

	"qna/internal/domain/entity"
)

type UserRepository interface {
	// FindByUserID returns (nil, nil) if no user has the given external identifier.
	FindByUserID(ctx context.Context, userID string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}
