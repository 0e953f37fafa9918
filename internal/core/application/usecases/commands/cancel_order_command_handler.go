package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels every item of an order on behalf of its customer
// or of an admin. Admin cancellations are recorded as Admin and skip the window.
//
// Checks run in this order: the order exists and belongs to the caller (NotFound),
// the cancellation window is open (WindowExpired), the order is neither cancelled nor
// shipped and no item was processed yet (AlreadyInTerminalState). The window check is
// repeated on retry after a concurrency conflict, so an order shipped in the meantime
// is never cancelled.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	window     kernel.CancellationWindow
	clock      ports.Clock
	notifier   CancellationNotifier
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	window kernel.CancellationWindow,
	clock ports.Clock,
	notifier CancellationNotifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		window:     window,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var events []order.DetailCancelled
	err := inOrderTxWithRetry(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		o, err := loadOwnedOrder(ctx, repo, cmd.OrderID(), cmd.Caller())
		if err != nil {
			return err
		}

		if err = o.Cancel(h.window, orderCanceller(o, cmd.Caller()), cmd.Reason(), h.clock.Now()); err != nil {
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

// orderCanceller is the role recorded for a whole-order action by a caller that
// passed loadOwnedOrder.
func orderCanceller(o *order.Order, caller order.Caller) order.Role {
	if o.IsOwnedBy(caller.ID()) {
		return order.RoleCustomer
	}
	return order.RoleAdmin
}

// loadOwnedOrder hides orders of other customers behind NotFound.
func loadOwnedOrder(ctx context.Context, repo ports.OrderRepository, id kernel.UUID, caller order.Caller) (*order.Order, error) {
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(caller.ID()) && !caller.IsAdmin() {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}
