package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrReActivateOrderCommandIsNotConstructed = errors.New(
	"ReActivateOrderCommand must be created via NewReActivateOrderCommand constructor",
)

// ReActivateOrderCommand reopens a cancelled order and restarts its cancellation window.
type ReActivateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  order.Caller

	guard guard.ConstructorGuard
}

func NewReActivateOrderCommand(orderID kernel.UUID, caller order.Caller) (ReActivateOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), caller.Validate()); err != nil {
		return ReActivateOrderCommand{}, err
	}

	return ReActivateOrderCommand{
		orderID: orderID,
		caller:  caller,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReActivateOrderCommand) Validate() error {
	return c.guard.Validate(ErrReActivateOrderCommandIsNotConstructed)
}

func (c ReActivateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ReActivateOrderCommand) Caller() order.Caller { return c.caller }
