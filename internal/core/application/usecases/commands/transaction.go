package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// inOrderTx runs fn inside a fresh transaction and commits when fn succeeds.
func inOrderTx(ctx context.Context, factory OrderUoWFactory, fn func(repo ports.OrderRepository) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow.OrderRepository()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// inOrderTxWithRetry is inOrderTx that reloads and runs fn once more after losing an
// optimistic concurrency race. A second conflict is returned to the caller.
func inOrderTxWithRetry(ctx context.Context, factory OrderUoWFactory, fn func(repo ports.OrderRepository) error) error {
	err := inOrderTx(ctx, factory, fn)
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		err = inOrderTx(ctx, factory, fn)
	}
	return err
}
