package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// ReOrderResult tells the caller which order now carries the items.
type ReOrderResult struct {
	OrderID     kernel.UUID
	Reactivated bool
}

// ReOrderCommandHandler reactivates a cancelled order in place, or copies an active
// order's price and quantity snapshot into a brand-new Pending order.
type ReOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewReOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) ReOrderCommandHandler {
	return ReOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *ReOrderCommandHandler) Handle(ctx context.Context, cmd ReOrderCommand) (ReOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReOrderResult{}, err
	}

	var result ReOrderResult
	err := inOrderTxWithRetry(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		source, err := loadOwnedOrder(ctx, repo, cmd.OrderID(), cmd.Caller())
		if err != nil {
			return err
		}

		now := h.clock.Now()
		if source.IsCancelled() {
			if err = source.Reactivate(now); err != nil {
				return err
			}
			if err = repo.Update(ctx, source); err != nil {
				return err
			}
			result = ReOrderResult{OrderID: source.ID(), Reactivated: true}
			return nil
		}

		copied, err := source.Reorder(cmd.NewOrderID(), now)
		if err != nil {
			return err
		}
		if err = repo.Add(ctx, copied); err != nil {
			return err
		}
		result = ReOrderResult{OrderID: copied.ID()}
		return nil
	})
	if err != nil {
		return ReOrderResult{}, err
	}

	return result, nil
}
