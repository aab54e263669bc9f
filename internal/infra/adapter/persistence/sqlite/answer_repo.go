package sqlite

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
WHERE a.id = ? AND a.deleted = 0
LIMIT 1`
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
VALUES (?, ?, ?, ?, ?)`
	res, err := infradb.Conn(ctx, repo.db).ExecContext(ctx, query,
		a.QuestionID, a.Writer.ID, nullString(a.Contents), a.Deleted, a.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	if a.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	return nil
}

func (repo *AnswerRepo) Save(ctx context.Context, a *entity.Answer) error {
	ok, err := updateAnswer(ctx, infradb.Conn(ctx, repo.db), a, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if !ok {
		return fmt.Errorf("Save: answer %d: %w", a.ID, entity.ErrNotFound)
	}
	return nil
}

func (repo *AnswerRepo) SaveAll(ctx context.Context, answers []*entity.Answer) error {
	now := time.Now().UTC()
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
		QueryRowContext(ctx, `SELECT COUNT(*) FROM answers WHERE deleted = 0`).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountActive: %w", err)
	}
	return n, nil
}

// updateAnswer skips rows already deleted in the store; ok reports whether the row was written.
func updateAnswer(ctx context.Context, conn infradb.DBTX, a *entity.Answer, now time.Time) (ok bool, err error) {
	const query = `
UPDATE answers
SET contents = ?, deleted = ?, updated_at = ?
WHERE id = ? AND deleted = 0`
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
