package qna

import "net/http"

// Register mounts the qna routes on mux. Authentication is applied by the
// caller around the whole mux. mutating wraps every write route, typically
// with a rate limiter.
func Register(mux *http.ServeMux, svc Service, mutating func(http.Handler) http.Handler) {
	if mutating == nil {
		mutating = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("GET    /questions/{id}", GetQuestionHandler{svc})
	mux.Handle("GET    /delete-histories", ListHistoriesHandler{svc})

	mux.Handle("POST   /questions", mutating(CreateQuestionHandler{svc}))
	mux.Handle("DELETE /questions/{id}", mutating(DeleteQuestionHandler{svc}))
	mux.Handle("POST   /questions/{id}/answers", mutating(AddAnswerHandler{svc}))
	mux.Handle("DELETE /answers/{id}", mutating(DeleteAnswerHandler{svc}))
}
