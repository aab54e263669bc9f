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

type QuestionRepo struct{ db *sql.DB }

func NewQuestionRepo(db *sql.DB) repository.QuestionRepository {
	return &QuestionRepo{db: db}
}

func (repo *QuestionRepo) FindActiveByID(ctx context.Context, id int64) (*entity.Question, error) {
	const query = `
SELECT q.id, q.title, q.contents, q.deleted, q.created_at, q.updated_at,
       ` + userColumns + `
FROM questions q
JOIN users u ON u.id = q.writer_id
WHERE q.id = ? AND q.deleted = 0
LIMIT 1`
	conn := infradb.Conn(ctx, repo.db)
	question, err := scanQuestion(conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindActiveByID: %w", err)
	}

	const answersQuery = `
SELECT a.id, a.question_id, a.contents, a.deleted, a.created_at, a.updated_at,
       ` + userColumns + `
FROM answers a
JOIN users u ON u.id = a.writer_id
WHERE a.question_id = ?
ORDER BY a.id ASC`
	rows, err := conn.QueryContext(ctx, answersQuery, question.ID)
	if err != nil {
		return nil, fmt.Errorf("FindActiveByID: answers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("FindActiveByID: Scan: %w", err)
		}
		question.Answers = append(question.Answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindActiveByID: rows.Err: %w", err)
	}
	return question, nil
}

func (repo *QuestionRepo) Create(ctx context.Context, q *entity.Question) error {
	const query = `
INSERT INTO questions (title, contents, writer_id, deleted, created_at)
VALUES (?, ?, ?, ?, ?)`
	res, err := infradb.Conn(ctx, repo.db).ExecContext(ctx, query,
		q.Title, nullString(q.Contents), q.Writer.ID, q.Deleted, q.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	if q.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	return nil
}

// Save updates the question row and then every attached answer row.
func (repo *QuestionRepo) Save(ctx context.Context, q *entity.Question) error {
	const query = `
UPDATE questions
SET title = ?, contents = ?, deleted = ?, updated_at = ?
WHERE id = ?`
	now := time.Now().UTC()
	conn := infradb.Conn(ctx, repo.db)
	res, err := conn.ExecContext(ctx, query, q.Title, nullString(q.Contents), q.Deleted, now, q.ID)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Save: question %d: %w", q.ID, entity.ErrNotFound)
	}
	q.UpdatedAt = &now

	for _, a := range q.Answers {
		if _, err := updateAnswer(ctx, conn, a, now); err != nil {
			return fmt.Errorf("Save: %w", err)
		}
	}
	return nil
}

func (repo *QuestionRepo) SaveAll(ctx context.Context, questions []*entity.Question) error {
	for _, q := range questions {
		if err := repo.Save(ctx, q); err != nil {
			return fmt.Errorf("SaveAll: %w", err)
		}
	}
	return nil
}

func (repo *QuestionRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := infradb.Conn(ctx, repo.db).
		QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE deleted = 0`).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountActive: %w", err)
	}
	return n, nil
}
