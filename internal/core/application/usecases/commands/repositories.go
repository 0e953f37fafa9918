// Package commands contains the operations that change order state.
// Every command is validated by its constructor; every handler runs in one
// transaction and dispatches notifications only after that transaction commits.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SavePointManager lets a batch give up on one aggregate and keep the rest.
	SavePointManager interface {
		SavePoint(ctx context.Context, name string) error
		RollbackTo(ctx context.Context, name string) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BatchOrderUoW is an OrderUoW with savepoints, used by passes over many orders.
	BatchOrderUoW interface {
		OrderUoW
		SavePointManager
	}

	// BatchOrderUoWFactory creates new batch unit of work instances.
	BatchOrderUoWFactory interface {
		Create() BatchOrderUoW
	}
)
