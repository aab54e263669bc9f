package qna

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"qna/internal/domain/entity"
	"qna/internal/handler/http/auth"
	"qna/internal/handler/http/pathutil"
	"qna/internal/handler/http/respond"
	qnaUC "qna/internal/usecase/qna"
)

// Service is the subset of the qna use cases served over HTTP.
type Service interface {
	FindQuestionByID(ctx context.Context, id int64) (*entity.Question, error)
	CreateQuestion(ctx context.Context, writer entity.User, in qnaUC.CreateQuestionInput) (*entity.Question, error)
	AddAnswer(ctx context.Context, writer entity.User, questionID int64, contents string) (*entity.Answer, error)
	DeleteQuestion(ctx context.Context, actor entity.User, questionID int64) error
	DeleteAnswer(ctx context.Context, actor entity.User, answerID int64) error
	ListHistories(ctx context.Context, user entity.User) ([]entity.DeleteHistory, error)
}

var errInvalidBody = errors.New("invalid request body")

func actor(r *http.Request) (entity.User, error) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		return entity.User{}, entity.ErrUnauthorized
	}
	return u, nil
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.SafeError(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
			return false
		}
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return false
	}
	return true
}
