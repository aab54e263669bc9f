package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"qna/internal/domain/entity"
	"qna/internal/handler/http/respond"
	"qna/internal/observability/logging"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UserResolver looks up the user behind a token subject.
type UserResolver interface {
	ResolveUser(ctx context.Context, userID string) (*entity.User, error)
	IsPublicEndpoint(path string) bool
}

type ctxKey struct{}

// WithUser stores the acting user in ctx.
func WithUser(ctx context.Context, u entity.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the acting user set by Authn.
func UserFromContext(ctx context.Context) (entity.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(entity.User)
	return u, ok
}

// Authn requires a valid bearer token on every non-public endpoint and puts
// the resolved user into the request context. The request logger and span
// are tagged with the user id.
func Authn(users UserResolver, tokens Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if users.IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ctx := r.Context()
			logger := logging.FromContext(ctx)

			subject, err := tokens.Subject(r.Header.Get("Authorization"))
			if err != nil {
				recordAuthn(resultRejected, start)
				logger.Warn("authentication rejected", slog.String("reason", err.Error()))
				respond.DomainError(w, err)
				return
			}
			user, err := users.ResolveUser(ctx, subject)
			if err != nil {
				recordAuthn(resultRejected, start)
				logger.Warn("token subject rejected", slog.String("subject", subject), slog.Any("error", err))
				respond.DomainError(w, err)
				return
			}
			recordAuthn(resultSuccess, start)

			trace.SpanFromContext(ctx).SetAttributes(attribute.String("enduser.id", user.UserID))
			ctx = logging.WithLogger(ctx, logging.WithActor(logger, user.UserID))
			next.ServeHTTP(w, r.WithContext(WithUser(ctx, *user)))
		})
	}
}

// RateLimitKey buckets authenticated callers by user id and everyone else by fallback.
func RateLimitKey(fallback func(*http.Request) string) func(*http.Request) string {
	return func(r *http.Request) string {
		if u, ok := UserFromContext(r.Context()); ok {
			return "user:" + u.UserID
		}
		return "ip:" + fallback(r)
	}
}
