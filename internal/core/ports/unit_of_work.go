package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Client code manages the transaction
// lifecycle explicitly.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// SavePoint marks a point inside the active transaction that RollbackTo can return to.
	// Used by batch jobs that skip a single aggregate without losing the rest of the batch.
	SavePoint(ctx context.Context, name string) error
	RollbackTo(ctx context.Context, name string) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
}
