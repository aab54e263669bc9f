package qna

import (
	"net/http"

	"qna/internal/handler/http/respond"
)

type ListHistoriesHandler struct{ Svc Service }

// ServeHTTP lists the deletions performed by the acting user, newest first.
// @Summary      List delete histories
// @Tags         histories
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array}  DeleteHistoryDTO
// @Failure      401 {object} respond.ErrorBody "Missing or invalid token"
// @Router       /delete-histories [get]
func (h ListHistoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, err := actor(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	histories, err := h.Svc.ListHistories(r.Context(), user)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toHistoryDTOs(histories))
}
