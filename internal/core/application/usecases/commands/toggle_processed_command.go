package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrToggleProcessedCommandIsNotConstructed = errors.New(
	"ToggleProcessedCommand must be created via NewToggleProcessedCommand constructor",
)

// ToggleProcessedCommand is the seller marking an item done (true) or reopening it (false).
type ToggleProcessedCommand struct { //nolint:recvcheck //using for validation
	detailID  kernel.UUID
	caller    order.Caller
	processed bool

	guard guard.ConstructorGuard
}

func NewToggleProcessedCommand(detailID kernel.UUID, caller order.Caller, processed bool) (ToggleProcessedCommand, error) {
	if err := errors.Join(detailID.Validate(), caller.Validate()); err != nil {
		return ToggleProcessedCommand{}, err
	}

	return ToggleProcessedCommand{
		detailID:  detailID,
		caller:    caller,
		processed: processed,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ToggleProcessedCommand) Validate() error {
	return c.guard.Validate(ErrToggleProcessedCommandIsNotConstructed)
}

func (c ToggleProcessedCommand) DetailID() kernel.UUID { return c.detailID }
func (c ToggleProcessedCommand) Caller() order.Caller  { return c.caller }
func (c ToggleProcessedCommand) Processed() bool       { return c.processed }
