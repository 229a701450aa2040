package repositories

import (
	"context"
)

// UnitOfWork scopes repository calls to one database transaction
type UnitOfWork interface {
	// Do runs fn inside a transaction. When ctx already carries one, fn
	// joins it and the outermost Do owns commit and rollback.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	// WithLock marks lookups made with the returned ctx as SELECT ... FOR UPDATE
	WithLock(ctx context.Context) context.Context
}
