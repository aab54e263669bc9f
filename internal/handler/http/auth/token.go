package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"qna/internal/domain/entity"
	"qna/internal/handler/http/respond"
	"qna/internal/observability/logging"
	authservice "qna/internal/service/auth"
)

// CredentialValidator checks a user id and password.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, creds authservice.Credentials) (*entity.User, error)
}

type tokenRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenHandler serves POST /auth/token.
func TokenHandler(creds CredentialValidator, tokens Tokens) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.FromContext(r.Context())

		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			recordLogin(resultRejected, start)
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		user, err := creds.ValidateCredentials(r.Context(), authservice.Credentials{
			UserID:   req.UserID,
			Password: req.Password,
		})
		if err != nil {
			recordLogin(resultRejected, start)
			logger.Warn("login failed", slog.String("user_id", req.UserID), slog.Any("error", err))
			respond.DomainError(w, err)
			return
		}

		signed, expires, err := tokens.Issue(user.UserID)
		if err != nil {
			recordLogin(resultError, start)
			respond.DomainError(w, err)
			return
		}

		recordLogin(resultSuccess, start)
		logger.Info("token issued", slog.String("user_id", user.UserID))
		respond.JSON(w, http.StatusOK, tokenResponse{Token: signed, ExpiresAt: expires.UTC()})
	}
}
