package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// SellerCancelOrderDetailCommandHandler cancels an item as Seller. Unlike CancelItem
// this path has no cancellation window: a seller can decline an item at any time
// while it is still Pending.
type SellerCancelOrderDetailCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.CancellationPolicy
	clock      ports.Clock
	notifier   CancellationNotifier
}

func NewSellerCancelOrderDetailCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.CancellationPolicy,
	clock ports.Clock,
	notifier CancellationNotifier,
) SellerCancelOrderDetailCommandHandler {
	return SellerCancelOrderDetailCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h *SellerCancelOrderDetailCommandHandler) Handle(ctx context.Context, cmd SellerCancelOrderDetailCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var events []order.DetailCancelled
	err := inOrderTxWithRetry(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		o, err := repo.GetByDetailID(ctx, cmd.DetailID())
		if err != nil {
			return err
		}
		detail, err := o.Detail(cmd.DetailID())
		if err != nil {
			return err
		}

		if err = h.policy.EnsureSellerOwnsDetail(cmd.Caller(), detail, "cancel"); err != nil {
			return err
		}

		if err = o.CancelDetail(detail.ID(), order.RoleSeller, cmd.Reason(), h.clock.Now()); err != nil {
			return err
		}
		if err = repo.Update(ctx, o); err != nil {
			return err
		}

		events = o.Events()
		return nil
	})
	if err != nil {
		return err
	}

	h.notifier.Notify(ctx, events)
	return nil
}
