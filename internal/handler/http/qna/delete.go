package qna

import (
	"net/http"

	"qna/internal/handler/http/respond"
)

type DeleteQuestionHandler struct{ Svc Service }

// ServeHTTP soft-deletes a question and its answers together or not at all.
// @Summary      Delete question
// @Description  Deletes the question and every active answer, recording one history entry each
// @Tags         questions
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Invalid ID"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      403 {object} respond.ErrorBody "Not the writer, or another user's answer exists"
// @Failure      404 {object} respond.ErrorBody "Question not found or deleted"
// @Router       /questions/{id} [delete]
func (h DeleteQuestionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, err := actor(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteQuestion(r.Context(), user, id); err != nil {
		respond.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
