package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelItemCommandIsNotConstructed = errors.New(
	"CancelItemCommand must be created via NewCancelItemCommand constructor",
)

// CancelItemCommand cancels a single line item. The caller may be the order's
// customer, the item's seller or an admin.
type CancelItemCommand struct { //nolint:recvcheck //using for validation
	detailID kernel.UUID
	caller   order.Caller
	reason   string

	guard guard.ConstructorGuard
}

func NewCancelItemCommand(detailID kernel.UUID, caller order.Caller, reason string) (CancelItemCommand, error) {
	if err := errors.Join(detailID.Validate(), caller.Validate()); err != nil {
		return CancelItemCommand{}, err
	}

	return CancelItemCommand{
		detailID: detailID,
		caller:   caller,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CancelItemCommand) Validate() error {
	return c.guard.Validate(ErrCancelItemCommandIsNotConstructed)
}

func (c CancelItemCommand) DetailID() kernel.UUID { return c.detailID }
func (c CancelItemCommand) Caller() order.Caller  { return c.caller }
func (c CancelItemCommand) Reason() string        { return c.reason }
