package circuitbreaker

import (
	"context"

	infradb "qna/internal/infra/db"
	"qna/internal/repository"
)

// Transactor runs transactions through a circuit breaker.
// A call made inside an open transaction joins it without passing through
// the breaker, so only the outermost call is counted.
type Transactor struct {
	next repository.Transactor
	cb   *CircuitBreaker
}

// NewTransactor wraps next with cb.
func NewTransactor(next repository.Transactor, cb *CircuitBreaker) *Transactor {
	return &Transactor{next: next, cb: cb}
}

// WithinTx implements repository.Transactor.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if infradb.InTx(ctx) {
		return fn(ctx)
	}
	return t.cb.Execute(func() error {
		return t.next.WithinTx(ctx, fn)
	})
}

// Breaker exposes the underlying circuit for health reporting.
func (t *Transactor) Breaker() *CircuitBreaker { return t.cb }
