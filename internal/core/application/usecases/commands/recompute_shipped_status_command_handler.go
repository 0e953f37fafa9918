package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// OrderFailure is an order a batch pass had to leave untouched.
type OrderFailure struct {
	OrderID kernel.UUID
	Err     error
}

// RecomputeShippedStatusResult reports the outcome of one pass. Failed orders were
// rolled back to their savepoint; everything else was committed.
type RecomputeShippedStatusResult struct {
	Checked  int
	Updated  []kernel.UUID
	Failures []OrderFailure
}

// Err joins the per-order failures, or returns nil when every order was saved.
func (r RecomputeShippedStatusResult) Err() error {
	list := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		list = append(list, fmt.Errorf("order %s: %w", f.OrderID, f.Err))
	}
	return errors.Join(list...)
}

// RecomputeShippedStatusCommandHandler walks the caller's unshipped orders and
// recomputes Shipped from their items. Each order is saved behind its own savepoint,
// so one failing order does not undo the others and is reported instead of dropped.
type RecomputeShippedStatusCommandHandler struct {
	uowFactory BatchOrderUoWFactory
	clock      ports.Clock
}

func NewRecomputeShippedStatusCommandHandler(
	uowFactory BatchOrderUoWFactory,
	clock ports.Clock,
) RecomputeShippedStatusCommandHandler {
	return RecomputeShippedStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *RecomputeShippedStatusCommandHandler) Handle(
	ctx context.Context,
	cmd RecomputeShippedStatusCommand,
) (RecomputeShippedStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecomputeShippedStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RecomputeShippedStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	orders, err := repo.ListUnshippedByCustomer(ctx, cmd.Caller().ID())
	if err != nil {
		return RecomputeShippedStatusResult{}, err
	}

	result := RecomputeShippedStatusResult{Checked: len(orders)}
	now := h.clock.Now()
	for i, o := range orders {
		if !o.RefreshAggregate(now) {
			continue
		}

		savepoint := fmt.Sprintf("recompute_%d", i)
		if err = uow.SavePoint(ctx, savepoint); err != nil {
			return RecomputeShippedStatusResult{}, err
		}
		if err = repo.Update(ctx, o); err != nil {
			if rbErr := uow.RollbackTo(ctx, savepoint); rbErr != nil {
				return RecomputeShippedStatusResult{}, errors.Join(err, rbErr)
			}
			result.Failures = append(result.Failures, OrderFailure{OrderID: o.ID(), Err: err})
			continue
		}
		result.Updated = append(result.Updated, o.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return RecomputeShippedStatusResult{}, err
	}

	return result, nil
}
