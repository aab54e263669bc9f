package qna

import (
	"net/http"

	"qna/internal/handler/http/respond"
)

type DeleteAnswerHandler struct{ Svc Service }

// ServeHTTP soft-deletes a single answer written by the acting user.
// @Summary      Delete answer
// @Tags         answers
// @Security     BearerAuth
// @Param        id path int true "Answer ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.ErrorBody "Invalid ID"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      403 {object} respond.ErrorBody "Not the writer"
// @Failure      404 {object} respond.ErrorBody "Answer not found or deleted"
// @Router       /answers/{id} [delete]
func (h DeleteAnswerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, err := actor(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteAnswer(r.Context(), user, id); err != nil {
		respond.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
