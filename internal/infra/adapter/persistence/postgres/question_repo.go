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

type QuestionRepo struct{ db *sql.DB }

func NewQuestionRepo(db *sql.DB) repository.QuestionRepository {
	return &QuestionRepo{db: db}
}

// FindActiveByID locks the question row so that concurrent deletions of the
// same question are serialized by the enclosing transaction.
func (repo *QuestionRepo) FindActiveByID(ctx context.Context, id int64) (*entity.Question, error) {
	const query = `
SELECT q.id, q.title, q.contents, q.deleted, q.created_at, q.updated_at,
       ` + userColumns + `
FROM questions q
JOIN users u ON u.id = q.writer_id
WHERE q.id = $1 AND q.deleted = FALSE
LIMIT 1
FOR UPDATE OF q`
	conn := infradb.Conn(ctx, repo.db)
	question, err := scanQuestion(conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindActiveByID: %w", err)
	}

	answers, err := listAnswersByQuestion(ctx, conn, question.ID)
	if err != nil {
		return nil, fmt.Errorf("FindActiveByID: %w", err)
	}
	question.Answers = answers
	return question, nil
}

// listAnswersByQuestion loads every answer of a question, deleted ones included,
// in insertion order. The answer rows are locked alongside the question so a
// concurrent DeleteAnswer waits and then sees the cascaded state.
func listAnswersByQuestion(ctx context.Context, conn infradb.DBTX, questionID int64) ([]*entity.Answer, error) {
	const query = `
SELECT a.id, a.question_id, a.contents, a.deleted, a.created_at, a.updated_at,
       ` + userColumns + `
FROM answers a
JOIN users u ON u.id = a.writer_id
WHERE a.question_id = $1
ORDER BY a.id ASC
FOR UPDATE OF a`
	rows, err := conn.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("listAnswersByQuestion: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var answers []*entity.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("listAnswersByQuestion: Scan: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listAnswersByQuestion: rows.Err: %w", err)
	}
	return answers, nil
}

func (repo *QuestionRepo) Create(ctx context.Context, q *entity.Question) error {
	const query = `
INSERT INTO questions (title, contents, writer_id, deleted, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := infradb.Conn(ctx, repo.db).QueryRowContext(ctx, query,
		q.Title, nullString(q.Contents), q.Writer.ID, q.Deleted, q.CreatedAt,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Save updates the question row and then every attached answer row that is
// still active in the store. Answers deleted earlier keep their updated_at.
func (repo *QuestionRepo) Save(ctx context.Context, q *entity.Question) error {
	const query = `
UPDATE questions
SET title = $1, contents = $2, deleted = $3, updated_at = $4
WHERE id = $5`
	now := time.Now()
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
		QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE deleted = FALSE`).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountActive: %w", err)
	}
	return n, nil
}
