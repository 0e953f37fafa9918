package commands

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ReturnItemCommandHandler marks a Processed item as Returned. The order is reopened:
// it stops being shipped and cannot be cancelled because the returned item is live.
// Only the order's customer or an admin can return items; anyone else is Unauthorized.
type ReturnItemCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewReturnItemCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) ReturnItemCommandHandler {
	return ReturnItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *ReturnItemCommandHandler) Handle(ctx context.Context, cmd ReturnItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inOrderTxWithRetry(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		o, err := repo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if caller := cmd.Caller(); !o.IsOwnedBy(caller.ID()) && !caller.IsAdmin() {
			return errs.NewUnauthorizedError(caller.ID(), "return order detail "+cmd.DetailID().String())
		}

		if err = o.ReturnDetail(cmd.DetailID(), cmd.Reason(), h.clock.Now()); err != nil {
			return err
		}

		return repo.Update(ctx, o)
	})
}
