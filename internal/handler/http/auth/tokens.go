// Package auth issues and verifies the bearer tokens that identify the
// acting user on every protected request.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"qna/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingToken = fmt.Errorf("missing bearer token: %w", entity.ErrUnauthorized)
	errInvalidToken = fmt.Errorf("invalid token: %w", entity.ErrUnauthorized)
)

// Tokens signs and parses HS256 tokens whose subject is the user id.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (t Tokens) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Issue returns a signed token for userID and its expiry.
func (t Tokens) Issue(userID string) (string, time.Time, error) {
	issuedAt := t.now()
	expires := issuedAt.Add(t.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(t.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Subject validates an Authorization header value and returns the token subject.
// Only HS256 is accepted and exp is mandatory.
func (t Tokens) Subject(authorization string) (string, error) {
	raw, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || raw == "" {
		return "", errMissingToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("token expired: %w", entity.ErrUnauthorized)
		}
		return "", errInvalidToken
	}
	if claims.Subject == "" {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}
