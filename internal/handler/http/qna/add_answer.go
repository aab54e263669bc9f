package qna

import (
	"net/http"

	"qna/internal/handler/http/respond"
)

type AddAnswerHandler struct{ Svc Service }

// ServeHTTP attaches an answer by the acting user to an active question.
// @Summary      Add answer
// @Tags         answers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id     path int                 true "Question ID"
// @Param        answer body createAnswerRequest true "Answer"
// @Success      201 {object} AnswerDTO
// @Failure      400 {object} respond.ErrorBody "Invalid ID or body"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      404 {object} respond.ErrorBody "Question not found or deleted"
// @Router       /questions/{id}/answers [post]
func (h AddAnswerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writer, err := actor(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req createAnswerRequest
	if !decode(w, r, &req) {
		return
	}
	answer, err := h.Svc.AddAnswer(r.Context(), writer, id, req.Contents)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toAnswerDTO(answer))
}
