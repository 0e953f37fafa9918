package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// ReActivateOrderCommandHandler resets a cancelled order: every item goes back to
// Pending and OrderDate becomes now. Fails with AlreadyInTerminalState when the order
// is not cancelled.
type ReActivateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewReActivateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) ReActivateOrderCommandHandler {
	return ReActivateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *ReActivateOrderCommandHandler) Handle(ctx context.Context, cmd ReActivateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inOrderTxWithRetry(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		o, err := loadOwnedOrder(ctx, repo, cmd.OrderID(), cmd.Caller())
		if err != nil {
			return err
		}

		if err = o.Reactivate(h.clock.Now()); err != nil {
			return err
		}

		return repo.Update(ctx, o)
	})
}
