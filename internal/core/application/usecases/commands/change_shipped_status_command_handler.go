package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ChangeShippedStatusCommandHandler never writes the Shipped flag directly. It
// recomputes the flag from the order's items and accepts the request only when the
// requested value matches the derived one, repairing a drifted row on the way.
// A mismatch fails with ValueIsInvalid and nothing is written.
type ChangeShippedStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewChangeShippedStatusCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) ChangeShippedStatusCommandHandler {
	return ChangeShippedStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *ChangeShippedStatusCommandHandler) Handle(ctx context.Context, cmd ChangeShippedStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inOrderTxWithRetry(ctx, h.uowFactory, func(repo ports.OrderRepository) error {
		o, err := repo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if !o.HasSeller(cmd.Caller().ID()) {
			return errs.NewUnauthorizedError(cmd.Caller().ID(), "change shipped status of order "+o.ID().String())
		}

		changed := o.RefreshAggregate(h.clock.Now())
		if o.Shipped() != cmd.Shipped() {
			return errs.NewValueIsInvalidErrorWithCause("shipped", fmt.Errorf(
				"order %s is shipped only when every live item is processed, derived value is %t",
				o.ID(), o.Shipped(),
			))
		}
		if !changed {
			return nil
		}

		return repo.Update(ctx, o)
	})
}
