package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"qna/internal/domain/entity"
	infradb "qna/internal/infra/db"
	"qna/internal/repository"
)

type DeleteHistoryRepo struct{ db *sql.DB }

func NewDeleteHistoryRepo(db *sql.DB) repository.DeleteHistoryRepository {
	return &DeleteHistoryRepo{db: db}
}

// SaveAll inserts the records with one multi-row INSERT and returns copies
// carrying the generated ids, in input order.
func (repo *DeleteHistoryRepo) SaveAll(ctx context.Context, histories []entity.DeleteHistory) ([]entity.DeleteHistory, error) {
	if len(histories) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("\nINSERT INTO delete_histories (content_type, content_id, deleted_by, created_date)\nVALUES ")
	args := make([]any, 0, len(histories)*4)
	pending := make(map[historyKey][]int, len(histories))
	for i, h := range histories {
		if !h.ContentType.IsValid() {
			return nil, fmt.Errorf("SaveAll: content type %q: %w", h.ContentType, entity.ErrInvalidInput)
		}
		if i > 0 {
			b.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)
		args = append(args, h.ContentType.String(), h.ContentID, h.DeletedBy.ID, h.CreatedDate)
		key := historyKey{h.ContentType, h.ContentID}
		pending[key] = append(pending[key], i)
	}
	b.WriteString("\nRETURNING id, content_type, content_id")

	rows, err := infradb.Conn(ctx, repo.db).QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("SaveAll: %w", err)
	}
	defer func() { _ = rows.Close() }()

	saved := make([]entity.DeleteHistory, len(histories))
	copy(saved, histories)
	returned := 0
	for rows.Next() {
		var (
			id  int64
			key historyKey
		)
		if err := rows.Scan(&id, &key.contentType, &key.contentID); err != nil {
			return nil, fmt.Errorf("SaveAll: Scan: %w", err)
		}
		idx := pending[key]
		if len(idx) == 0 {
			return nil, fmt.Errorf("SaveAll: unexpected returned row %s %d", key.contentType, key.contentID)
		}
		saved[idx[0]].ID = id
		pending[key] = idx[1:]
		returned++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SaveAll: rows.Err: %w", err)
	}
	if returned != len(histories) {
		return nil, fmt.Errorf("SaveAll: inserted %d of %d rows", returned, len(histories))
	}
	return saved, nil
}

// RETURNING order is not guaranteed, so rows are matched back by content.
type historyKey struct {
	contentType entity.ContentType
	contentID   int64
}

func (repo *DeleteHistoryRepo) ListByDeletedBy(ctx context.Context, userID string) ([]entity.DeleteHistory, error) {
	const query = `
SELECT h.id, h.content_type, h.content_id, h.created_date,
       u.id, u.user_id, u.name, u.password, u.email
FROM delete_histories h
JOIN users u ON u.id = h.deleted_by
WHERE u.user_id = $1
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
