package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qna/internal/domain/entity"
	infradb "qna/internal/infra/db"
	"qna/internal/infra/adapter/persistence/sqlite"
)

/* ──────────────────────────────── helpers ──────────────────────────────── */

var created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := infradb.Open(context.Background(), infradb.Config{
		Driver: infradb.DriverSQLite,
		DSN:    ":memory:",
		Pool:   infradb.DefaultConnectionConfig(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, infradb.MigrateUp(db, infradb.DriverSQLite))
	return db
}

func createUser(t *testing.T, db *sql.DB, userID string) entity.User {
	t.Helper()
	u := entity.NewUser(userID, userID, "pw", userID+"@example.com")
	require.NoError(t, sqlite.NewUserRepo(db).Create(context.Background(), &u))
	return u
}

func createQuestion(t *testing.T, db *sql.DB, writer entity.User, answerWriters ...entity.User) *entity.Question {
	t.Helper()
	ctx := context.Background()
	q := &entity.Question{Title: "title", Contents: "body", Writer: writer, CreatedAt: created}
	require.NoError(t, sqlite.NewQuestionRepo(db).Create(ctx, q))
	for _, w := range answerWriters {
		a := &entity.Answer{Writer: w, Contents: "answer by " + w.UserID, CreatedAt: created}
		q.AddAnswer(a)
		require.NoError(t, sqlite.NewAnswerRepo(db).Create(ctx, a))
	}
	return q
}

var ignoreTimestamps = cmpopts.IgnoreFields(entity.Answer{}, "UpdatedAt")

/* ──────────────────────────────── users ──────────────────────────────── */

func TestUserRepo_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	assert.NotZero(t, alice.ID)

	got, err := sqlite.NewUserRepo(db).FindByUserID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &alice, got)

	missing, err := sqlite.NewUserRepo(db).FindByUserID(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db := openTestDB(t)
	createUser(t, db, "alice")

	dup := entity.NewUser("alice", "Other", "pw", "")
	err := sqlite.NewUserRepo(db).Create(context.Background(), &dup)
	assert.ErrorIs(t, err, entity.ErrAlreadyExists)
}

/* ──────────────────────────────── questions & answers ──────────────────────────────── */

func TestQuestionRepo_FindActiveByID_LoadsAnswers(t *testing.T) {
	db := openTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	want := createQuestion(t, db, alice, alice, bob)

	got, err := sqlite.NewQuestionRepo(db).FindActiveByID(context.Background(), want.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, ignoreTimestamps); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionRepo_Save_SoftDeletes(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	q := createQuestion(t, db, alice, alice)
	repo := sqlite.NewQuestionRepo(db)

	_, err := q.Delete(alice, created)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, q))

	got, err := repo.FindActiveByID(ctx, q.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	answer, err := sqlite.NewAnswerRepo(db).FindActiveByID(ctx, q.Answers[0].ID)
	assert.NoError(t, err)
	assert.Nil(t, answer)

	n, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQuestionRepo_Save_KeepsEarlierAnswerDeletion(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	q := createQuestion(t, db, alice, alice, alice)
	questions := sqlite.NewQuestionRepo(db)

	first := q.Answers[0]
	first.Delete(created)
	require.NoError(t, sqlite.NewAnswerRepo(db).Save(ctx, first))

	updatedAt := func(id int64) sql.NullString {
		var v sql.NullString
		require.NoError(t, db.QueryRowContext(ctx, `SELECT updated_at FROM answers WHERE id = ?`, id).Scan(&v))
		return v
	}
	before := updatedAt(first.ID)
	require.True(t, before.Valid)

	loaded, err := questions.FindActiveByID(ctx, q.ID)
	require.NoError(t, err)
	hs, err := loaded.Delete(alice, created.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, questions.Save(ctx, loaded))

	assert.Len(t, hs, 2)
	assert.Equal(t, before, updatedAt(first.ID))
	assert.True(t, updatedAt(q.Answers[1].ID).Valid)

	err = sqlite.NewAnswerRepo(db).Save(ctx, first)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAnswerRepo_SaveAndCount(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	q := createQuestion(t, db, alice, alice, alice)
	repo := sqlite.NewAnswerRepo(db)

	q.Answers[0].Delete(created)
	require.NoError(t, repo.SaveAll(ctx, q.Answers))

	n, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = repo.Save(ctx, &entity.Answer{ID: 999})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

/* ──────────────────────────────── delete histories ──────────────────────────────── */

func TestDeleteHistoryRepo_SaveAllAndList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	repo := sqlite.NewDeleteHistoryRepo(db)

	first, err := repo.SaveAll(ctx, []entity.DeleteHistory{
		entity.NewDeleteHistory(entity.ContentTypeQuestion, 1, alice, created),
		entity.NewDeleteHistory(entity.ContentTypeAnswer, 2, alice, created),
	})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.NotZero(t, first[0].ID)
	assert.Greater(t, first[1].ID, first[0].ID)

	_, err = repo.SaveAll(ctx, []entity.DeleteHistory{
		entity.NewDeleteHistory(entity.ContentTypeAnswer, 3, bob, created.Add(time.Hour)),
	})
	require.NoError(t, err)

	got, err := repo.ListByDeletedBy(ctx, "alice")
	require.NoError(t, err)
	want := []entity.DeleteHistory{first[1], first[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

/* ──────────────────────────────── transactions ──────────────────────────────── */

func TestTransactor_RollsBackCascade(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	q := createQuestion(t, db, alice, alice)
	questions := sqlite.NewQuestionRepo(db)
	histories := sqlite.NewDeleteHistoryRepo(db)
	boom := errors.New("abort")

	err := infradb.NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error {
		loaded, err := questions.FindActiveByID(ctx, q.ID)
		if err != nil {
			return err
		}
		hs, err := loaded.Delete(alice, created)
		if err != nil {
			return err
		}
		if err := questions.Save(ctx, loaded); err != nil {
			return err
		}
		if _, err := histories.SaveAll(ctx, hs); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := questions.FindActiveByID(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Answers[0].Deleted)

	n, err := histories.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
