package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"qna/internal/domain/entity"
	infradb "qna/internal/infra/db"
	"qna/internal/repository"
)

type AnswerRepo struct{ db *sql.DB }

func NewAnswerRepo(db *sql.DB) repository.AnswerRepository {
	return &AnswerRepo{db: db}
}

func (repo *AnswerRepo) FindActiveByID(ctx context.Context, id int64) (*entity.Answer, error) {
	const query = `
SELECT a.id, a.question_id, a.contents, a.deleted, a.created_at, a.updated_at,
       ` + userColumns + `
FROM answers a
JOIN users u ON u.id = a.writer_id
WHERE a.id = $1 AND a.deleted = FALSE
LIMIT 1
FOR UPDATE OF a`
	answer, err := scanAnswer(infradb.Conn(ctx, repo.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindActiveByID: %w", err)
	}
	return answer, nil
}

func (repo *AnswerRepo) Create(ctx context.Context, a *entity.Answer) error {
	const query = `
INSERT INTO answers (question_id, writer_id, contents, deleted, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := infradb.Conn(ctx, repo.db).QueryRowContext(ctx, query,
		a.QuestionID, a.Writer.ID, nullString(a.Contents), a.Deleted, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Save updates an active answer. A missing or already deleted answer yields ErrNotFound.
func (repo *AnswerRepo) Save(ctx context.Context, a *entity.Answer) error {
	ok, err := updateAnswer(ctx, infradb.Conn(ctx, repo.db), a, time.Now())
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if !ok {
		return fmt.Errorf("Save: answer %d: %w", a.ID, entity.ErrNotFound)
	}
	return nil
}

func (repo *AnswerRepo) SaveAll(ctx context.Context, answers []*entity.Answer) error {
	now := time.Now()
	conn := infradb.Conn(ctx, repo.db)
	for _, a := range answers {
		ok, err := updateAnswer(ctx, conn, a, now)
		if err != nil {
			return fmt.Errorf("SaveAll: %w", err)
		}
		if !ok {
			return fmt.Errorf("SaveAll: answer %d: %w", a.ID, entity.ErrNotFound)
		}
	}
	return nil
}

func (repo *AnswerRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := infradb.Conn(ctx, repo.db).
		QueryRowContext(ctx, `SELECT COUNT(*) FROM answers WHERE deleted = FALSE`).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountActive: %w", err)
	}
	return n, nil
}

// updateAnswer writes an answer row unless it is already deleted in the
// store. Deleted rows are terminal; ok reports whether the row was written.
func updateAnswer(ctx context.Context, conn infradb.DBTX, a *entity.Answer, now time.Time) (ok bool, err error) {
	const query = `
UPDATE answers
SET contents = $1, deleted = $2, updated_at = $3
WHERE id = $4 AND deleted = FALSE`
	res, err := conn.ExecContext(ctx, query, nullString(a.Contents), a.Deleted, now, a.ID)
	if err != nil {
		return false, fmt.Errorf("updateAnswer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updateAnswer: RowsAffected: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	a.UpdatedAt = &now
	return true, nil
}
