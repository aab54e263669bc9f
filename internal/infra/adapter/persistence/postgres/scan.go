package postgres

import (
	"database/sql"
	"time"

	"qna/internal/domain/entity"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const userColumns = `u.id, u.user_id, u.name, u.password, u.email`

func scanQuestion(s rowScanner) (*entity.Question, error) {
	var (
		q        entity.Question
		contents sql.NullString
		updated  sql.NullTime
		email    sql.NullString
	)
	if err := s.Scan(
		&q.ID, &q.Title, &contents, &q.Deleted, &q.CreatedAt, &updated,
		&q.Writer.ID, &q.Writer.UserID, &q.Writer.Name, &q.Writer.Password, &email,
	); err != nil {
		return nil, err
	}
	q.Contents = contents.String
	q.UpdatedAt = nullTime(updated)
	q.Writer.Email = email.String
	return &q, nil
}

func scanAnswer(s rowScanner) (*entity.Answer, error) {
	var (
		a        entity.Answer
		contents sql.NullString
		updated  sql.NullTime
		email    sql.NullString
	)
	if err := s.Scan(
		&a.ID, &a.QuestionID, &contents, &a.Deleted, &a.CreatedAt, &updated,
		&a.Writer.ID, &a.Writer.UserID, &a.Writer.Name, &a.Writer.Password, &email,
	); err != nil {
		return nil, err
	}
	a.Contents = contents.String
	a.UpdatedAt = nullTime(updated)
	a.Writer.Email = email.String
	return &a, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
