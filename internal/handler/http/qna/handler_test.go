package qna_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"qna/internal/domain/entity"
	"qna/internal/handler/http/auth"
	"qna/internal/handler/http/qna"
	"qna/internal/handler/http/respond"
	qnaUC "qna/internal/usecase/qna"

	"github.com/stretchr/testify/require"
)

var (
	alice   = entity.User{ID: 1, UserID: "alice", Name: "Alice", Password: "secret"}
	bob     = entity.User{ID: 2, UserID: "bob", Name: "Bob", Password: "secret"}
	created = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
)

type stubService struct {
	question *entity.Question
	answer   *entity.Answer
	history  []entity.DeleteHistory
	err      error

	gotActor    entity.User
	gotID       int64
	gotInput    qnaUC.CreateQuestionInput
	gotContents string
}

func (s *stubService) FindQuestionByID(_ context.Context, id int64) (*entity.Question, error) {
	s.gotID = id
	return s.question, s.err
}

func (s *stubService) CreateQuestion(_ context.Context, writer entity.User, in qnaUC.CreateQuestionInput) (*entity.Question, error) {
	s.gotActor, s.gotInput = writer, in
	return s.question, s.err
}

func (s *stubService) AddAnswer(_ context.Context, writer entity.User, questionID int64, contents string) (*entity.Answer, error) {
	s.gotActor, s.gotID, s.gotContents = writer, questionID, contents
	return s.answer, s.err
}

func (s *stubService) DeleteQuestion(_ context.Context, actor entity.User, id int64) error {
	s.gotActor, s.gotID = actor, id
	return s.err
}

func (s *stubService) DeleteAnswer(_ context.Context, actor entity.User, id int64) error {
	s.gotActor, s.gotID = actor, id
	return s.err
}

func (s *stubService) ListHistories(_ context.Context, user entity.User) ([]entity.DeleteHistory, error) {
	s.gotActor = user
	return s.history, s.err
}

// serve routes the request through a real ServeMux so path wildcards resolve.
func serve(svc qna.Service, method, target, body string, as *entity.User) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	qna.Register(mux, svc, nil)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if as != nil {
		req = req.WithContext(auth.WithUser(req.Context(), *as))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) respond.ErrorBody {
	t.Helper()
	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func sampleQuestion() *entity.Question {
	q := &entity.Question{ID: 7, Title: "How?", Contents: "details", Writer: alice, CreatedAt: created}
	q.AddAnswer(&entity.Answer{ID: 1, Writer: alice, Contents: "mine", CreatedAt: created})
	q.AddAnswer(&entity.Answer{ID: 2, Writer: bob, Contents: "gone", Deleted: true, CreatedAt: created})
	return q
}
