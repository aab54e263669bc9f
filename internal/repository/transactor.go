package repository

import "context"

// Transactor runs fn inside a single transaction boundary.
// Repository calls made with the context passed to fn join that transaction.
// If fn returns an error the transaction is rolled back and the error returned.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
