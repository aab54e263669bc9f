package qna

import (
	"net/http"

	"qna/internal/handler/http/respond"
	qnaUC "qna/internal/usecase/qna"
)

type CreateQuestionHandler struct{ Svc Service }

// ServeHTTP creates a question written by the acting user.
// @Summary      Create question
// @Tags         questions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        question body createQuestionRequest true "Question"
// @Success      201 {object} QuestionDTO
// @Failure      400 {object} respond.ErrorBody "Invalid body or title"
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Router       /questions [post]
func (h CreateQuestionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writer, err := actor(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	var req createQuestionRequest
	if !decode(w, r, &req) {
		return
	}
	question, err := h.Svc.CreateQuestion(r.Context(), writer, qnaUC.CreateQuestionInput{
		Title:    req.Title,
		Contents: req.Contents,
	})
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toQuestionDTO(question))
}
