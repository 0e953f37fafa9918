package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ToggleProcessedCommandHandler moves a seller's item between Pending and Processed.
// Processing a Returned item clears the return. The order's Shipped flag follows.
type ToggleProcessedCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.CancellationPolicy
	clock      ports.Clock
}

func NewToggleProcessedCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.CancellationPolicy,
	clock ports.Clock,
) ToggleProcessedCommandHandler {
	return ToggleProcessedCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h *ToggleProcessedCommandHandler) Handle(ctx context.Context, cmd ToggleProcessedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inOrderTxWithRetry(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		o, err := repo.GetByDetailID(ctx, cmd.DetailID())
		if err != nil {
			return err
		}
		detail, err := o.Detail(cmd.DetailID())
		if err != nil {
			return err
		}

		if err = h.policy.EnsureSellerOwnsDetail(cmd.Caller(), detail, "process"); err != nil {
			return err
		}

		if err = o.SetDetailProcessed(detail.ID(), cmd.Processed(), h.clock.Now()); err != nil {
			return err
		}
		if !detail.IsChanged() {
			return nil
		}

		return repo.Update(ctx, o)
	})
}
