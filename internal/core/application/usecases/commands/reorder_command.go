package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrReOrderCommandIsNotConstructed = errors.New(
	"ReOrderCommand must be created via NewReOrderCommand constructor",
)

// ReOrderCommand asks to buy an order again. NewOrderID is used only when the source
// order is still active and a copy has to be created.
type ReOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	newOrderID kernel.UUID
	caller     order.Caller

	guard guard.ConstructorGuard
}

func NewReOrderCommand(orderID, newOrderID kernel.UUID, caller order.Caller) (ReOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), newOrderID.Validate(), caller.Validate()); err != nil {
		return ReOrderCommand{}, err
	}

	return ReOrderCommand{
		orderID:    orderID,
		newOrderID: newOrderID,
		caller:     caller,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReOrderCommand) Validate() error {
	return c.guard.Validate(ErrReOrderCommandIsNotConstructed)
}

func (c ReOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c ReOrderCommand) NewOrderID() kernel.UUID { return c.newOrderID }
func (c ReOrderCommand) Caller() order.Caller    { return c.caller }
