package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"qna/internal/domain/entity"
	infradb "qna/internal/infra/db"
	"qna/internal/repository"
)

type DeleteHistoryRepo struct{ db *sql.DB }

func NewDeleteHistoryRepo(db *sql.DB) repository.DeleteHistoryRepository {
	return &DeleteHistoryRepo{db: db}
}

func (repo *DeleteHistoryRepo) SaveAll(ctx context.Context, histories []entity.DeleteHistory) ([]entity.DeleteHistory, error) {
	const query = `
INSERT INTO delete_histories (content_type, content_id, deleted_by, created_date)
VALUES (?, ?, ?, ?)`
	if len(histories) == 0 {
		return nil, nil
	}

	conn := infradb.Conn(ctx, repo.db)
	saved := make([]entity.DeleteHistory, 0, len(histories))
	for _, h := range histories {
		if !h.ContentType.IsValid() {
			return nil, fmt.Errorf("SaveAll: content type %q: %w", h.ContentType, entity.ErrInvalidInput)
		}
		res, err := conn.ExecContext(ctx, query,
			h.ContentType.String(), h.ContentID, h.DeletedBy.ID, h.CreatedDate.UTC(),
		)
		if err != nil {
			return nil, fmt.Errorf("SaveAll: %w", err)
		}
		if h.ID, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("SaveAll: LastInsertId: %w", err)
		}
		saved = append(saved, h)
	}
	return saved, nil
}

func (repo *DeleteHistoryRepo) ListByDeletedBy(ctx context.Context, userID string) ([]entity.DeleteHistory, error) {
	const query = `
SELECT h.id, h.content_type, h.content_id, h.created_date,
       u.id, u.user_id, u.name, u.password, u.email
FROM delete_histories h
JOIN users u ON u.id = h.deleted_by
WHERE u.user_id = ?
ORDER BY h.created_date DESC, h.id DESC`
	rows, err := infradb.Conn(ctx, repo.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByDeletedBy: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var histories []entity.DeleteHistory
	for rows.Next() {
		var (
			h     entity.DeleteHistory
			email sql.NullString
		)
		if err := rows.Scan(
			&h.ID, &h.ContentType, &h.ContentID, &h.CreatedDate,
			&h.DeletedBy.ID, &h.DeletedBy.UserID, &h.DeletedBy.Name, &h.DeletedBy.Password, &email,
		); err != nil {
			return nil, fmt.Errorf("ListByDeletedBy: Scan: %w", err)
		}
		h.CreatedDate = h.CreatedDate.UTC()
		h.DeletedBy.Email = email.String
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByDeletedBy: rows.Err: %w", err)
	}
	return histories, nil
}

func (repo *DeleteHistoryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := infradb.Conn(ctx, repo.db).
		QueryRowContext(ctx, `SELECT COUNT(*) FROM delete_histories`).
		Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
