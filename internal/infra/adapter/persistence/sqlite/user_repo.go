package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"qna/internal/domain/entity"
	infradb "qna/internal/infra/db"
	"qna/internal/repository"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	const query = `
SELECT u.id, u.user_id, u.name, u.password, u.email
FROM users u
WHERE u.user_id = ?
LIMIT 1`
	var (
		u     entity.User
		email sql.NullString
	)
	err := infradb.Conn(ctx, repo.db).QueryRowContext(ctx, query, userID).Scan(
		&u.ID, &u.UserID, &u.Name, &u.Password, &email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByUserID: %w", err)
	}
	u.Email = email.String
	return &u, nil
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const query = `
INSERT INTO users (user_id, name, password, email)
VALUES (?, ?, ?, ?)`
	res, err := infradb.Conn(ctx, repo.db).ExecContext(ctx, query,
		u.UserID, u.Name, u.Password, nullString(u.Email),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: user %q: %w", u.UserID, entity.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	return nil
}
