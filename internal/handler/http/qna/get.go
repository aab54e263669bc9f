package qna

import (
	"net/http"

	"qna/internal/handler/http/respond"
)

type GetQuestionHandler struct{ Svc Service }

// ServeHTTP returns an active question with its active answers.
// @Summary      Get question
// @Description  Returns a question that has not been deleted, with its active answers
// @Tags         questions
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} QuestionDTO
// @Failure      400 {object} respond.ErrorBody "Invalid ID"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Failure      404 {object} respond.ErrorBody "Question not found or deleted"
// @Router       /questions/{id} [get]
func (h GetQuestionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	question, err := h.Svc.FindQuestionByID(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toQuestionDTO(question))
}
