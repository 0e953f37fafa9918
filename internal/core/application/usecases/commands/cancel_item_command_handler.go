package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CancelItemCommandHandler cancels one line item and recomputes the order.
// The recorded role follows who the caller is relative to the order; customers and
// sellers are held to the cancellation window, admins are not.
type CancelItemCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.CancellationPolicy
	clock      ports.Clock
	notifier   CancellationNotifier
}

func NewCancelItemCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.CancellationPolicy,
	clock ports.Clock,
	notifier CancellationNotifier,
) CancelItemCommandHandler {
	return CancelItemCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h *CancelItemCommandHandler) Handle(ctx context.Context, cmd CancelItemCommand) error {
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

		now := h.clock.Now()
		role, err := h.policy.AuthorizeItemCancellation(cmd.Caller(), o, detail, now)
		if err != nil {
			return err
		}

		if err = o.CancelDetail(detail.ID(), role, cmd.Reason(), now); err != nil {
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
