// Package auth authenticates users against the user repository.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"qna/internal/domain/entity"
	"qna/internal/repository"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
// Both cases share one error so callers cannot enumerate user ids.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", entity.ErrUnauthorized)

// Credentials represents authentication credentials.
type Credentials struct {
	UserID   string
	Password string
}

// AuthService handles authentication business logic.
// This service is framework-agnostic and can be used with any HTTP framework or CLI.
type AuthService struct {
	users           repository.UserRepository
	publicEndpoints []string
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, publicEndpoints []string) *AuthService {
	return &AuthService{
		users:           users,
		publicEndpoints: publicEndpoints,
	}
}

// ValidateCredentials returns the user whose credentials match.
func (s *AuthService) ValidateCredentials(ctx context.Context, creds Credentials) (*entity.User, error) {
	if creds.UserID == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByUserID(ctx, creds.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	stored := ""
	if user != nil {
		stored = user.Password
	}
	// Use constant-time comparison to prevent timing attacks
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(stored)) == 1
	if user == nil || !passMatch {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ResolveUser loads the user a token subject refers to.
// A subject that no longer exists yields ErrInvalidCredentials.
func (s *AuthService) ResolveUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// EnsureUsers creates the given users unless they already exist and
// returns how many were created.
func (s *AuthService) EnsureUsers(ctx context.Context, users []entity.User) (int, error) {
	created := 0
	for _, u := range users {
		existing, err := s.users.FindByUserID(ctx, u.UserID)
		if err != nil {
			return created, fmt.Errorf("find user %q: %w", u.UserID, err)
		}
		if existing != nil {
			continue
		}
		if err := s.users.Create(ctx, &u); err != nil {
			if errors.Is(err, entity.ErrAlreadyExists) {
				continue
			}
			return created, fmt.Errorf("create user %q: %w", u.UserID, err)
		}
		slog.Info("bootstrap user created", slog.String("user_id", u.UserID))
		created++
	}
	return created, nil
}

// IsPublicEndpoint checks if a path is publicly accessible.
// Endpoints ending with '/' match by prefix; others match exactly, with an
// optional trailing slash.
func (s *AuthService) IsPublicEndpoint(path string) bool {
	for _, endpoint := range s.publicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" {
			return true
		}
	}
	return false
}
