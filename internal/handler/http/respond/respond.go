// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"qna/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	// Rule is set when an ownership rule rejected a deletion.
	Rule string `json:"rule,omitempty"`
}

// safeFragments mark messages that can be shown to users as-is.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"must not",
	"cannot",
	"too long",
	"too short",
	"too large",
	"exceeded",
}

// SafeError sanitizes error messages before returning them to users.
// Messages without a safe fragment, and every 5xx, become "internal server error"
// and are logged with secrets masked.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := code < 500
	if isSafe {
		isSafe = false
		lowerMsg := strings.ToLower(msg)
		for _, safe := range safeFragments {
			if strings.Contains(lowerMsg, safe) {
				isSafe = true
				break
			}
		}
	}

	if isSafe {
		JSON(w, code, ErrorBody{Error: msg})
		return
	}
	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: "internal server error"})
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Rule    string // Ownership rule, if any
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// FromDomain maps a domain or use case error onto an AppError.
//
//	*entity.ValidationError       400
//	entity.ErrUnauthorized        401
//	*entity.CannotDeleteError     403 (reason and rule are exposed)
//	entity.ErrNotFound            404
//	entity.ErrAlreadyExists       409
//	anything else                 500
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var vErr *entity.ValidationError
	var cdErr *entity.CannotDeleteError
	switch {
	case errors.As(err, &vErr):
		return &AppError{Code: http.StatusBadRequest, UserMsg: vErr.Error(), Err: err}
	case errors.As(err, &cdErr):
		return &AppError{Code: http.StatusForbidden, UserMsg: cdErr.Reason, Rule: string(cdErr.Rule), Err: err}
	case errors.Is(err, entity.ErrUnauthorized):
		return &AppError{Code: http.StatusUnauthorized, UserMsg: "unauthorized", Err: err}
	case errors.Is(err, entity.ErrNotFound):
		return &AppError{Code: http.StatusNotFound, UserMsg: "not found", Err: err}
	case errors.Is(err, entity.ErrAlreadyExists):
		return &AppError{Code: http.StatusConflict, UserMsg: "already exists", Err: err}
	default:
		return &AppError{Code: http.StatusInternalServerError, UserMsg: "internal server error", Err: err}
	}
}

// DomainError writes err using the FromDomain mapping.
// Only 5xx causes are logged at error level.
func DomainError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	appErr := FromDomain(err)
	if appErr.Code >= 500 && appErr.Err != nil {
		slog.Default().Error("application error",
			slog.String("status", http.StatusText(appErr.Code)),
			slog.Int("code", appErr.Code),
			slog.Any("error", SanitizeError(appErr.Err)))
	}
	JSON(w, appErr.Code, ErrorBody{Error: appErr.UserMsg, Rule: appErr.Rule})
}
