package db

import (
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`
CREATE TABLE IF NOT EXISTS users (
    id         BIGSERIAL PRIMARY KEY,
    user_id    VARCHAR(20) NOT NULL UNIQUE,
    name       VARCHAR(20) NOT NULL,
    password   VARCHAR(20) NOT NULL,
    email      VARCHAR(50),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ
)`,
	`
CREATE TABLE IF NOT EXISTS questions (
    id         BIGSERIAL PRIMARY KEY,
    title      VARCHAR(100) NOT NULL,
    contents   TEXT,
    writer_id  BIGINT NOT NULL REFERENCES users(id),
    deleted    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ
)`,
	`
CREATE TABLE IF NOT EXISTS answers (
    id          BIGSERIAL PRIMARY KEY,
    question_id BIGINT NOT NULL REFERENCES questions(id),
    writer_id   BIGINT NOT NULL REFERENCES users(id),
    contents    TEXT,
    deleted     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ
)`,
	`
CREATE TABLE IF NOT EXISTS delete_histories (
    id           BIGSERIAL PRIMARY KEY,
    content_type VARCHAR(10) NOT NULL CHECK (content_type IN ('QUESTION', 'ANSWER')),
    content_id   BIGINT NOT NULL,
    deleted_by   BIGINT NOT NULL REFERENCES users(id),
    created_date TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_answers_question_id ON answers(question_id)`,
	`CREATE INDEX IF NOT EXISTS idx_delete_histories_deleted_by ON delete_histories(deleted_by, created_date DESC)`,
}

var sqliteSchema = []string{
	`
CREATE TABLE IF NOT EXISTS users (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    TEXT NOT NULL UNIQUE,
    name       TEXT NOT NULL,
    password   TEXT NOT NULL,
    email      TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP
)`,
	`
CREATE TABLE IF NOT EXISTS questions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    title      TEXT NOT NULL,
    contents   TEXT,
    writer_id  INTEGER NOT NULL REFERENCES users(id),
    deleted    INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP
)`,
	`
CREATE TABLE IF NOT EXISTS answers (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL REFERENCES questions(id),
    writer_id   INTEGER NOT NULL REFERENCES users(id),
    contents    TEXT,
    deleted     INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  TIMESTAMP
)`,
	`
CREATE TABLE IF NOT EXISTS delete_histories (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    content_type TEXT NOT NULL CHECK (content_type IN ('QUESTION', 'ANSWER')),
    content_id   INTEGER NOT NULL,
    deleted_by   INTEGER NOT NULL REFERENCES users(id),
    created_date TIMESTAMP NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_answers_question_id ON answers(question_id)`,
	`CREATE INDEX IF NOT EXISTS idx_delete_histories_deleted_by ON delete_histories(deleted_by, created_date DESC)`,
}

// MigrateUp creates the schema for driver. Statements are idempotent.
func MigrateUp(db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case DriverPostgres:
		stmts = postgresSchema
	case DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("MigrateUp: unsupported driver %q", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops every table in reverse order of creation.
// Use with caution: this will delete all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS delete_histories`,
		`DROP TABLE IF EXISTS answers`,
		`DROP TABLE IF EXISTS questions`,
		`DROP TABLE IF EXISTS users`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
