package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeShippedStatusCommandIsNotConstructed = errors.New(
	"ChangeShippedStatusCommand must be created via NewChangeShippedStatusCommand constructor",
)

// ChangeShippedStatusCommand is a seller asserting an order's shipped state.
type ChangeShippedStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  order.Caller
	shipped bool

	guard guard.ConstructorGuard
}

func NewChangeShippedStatusCommand(orderID kernel.UUID, caller order.Caller, shipped bool) (ChangeShippedStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), caller.Validate()); err != nil {
		return ChangeShippedStatusCommand{}, err
	}

	return ChangeShippedStatusCommand{
		orderID: orderID,
		caller:  caller,
		shipped: shipped,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeShippedStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeShippedStatusCommandIsNotConstructed)
}

func (c ChangeShippedStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeShippedStatusCommand) Caller() order.Caller { return c.caller }
func (c ChangeShippedStatusCommand) Shipped() bool        { return c.shipped }
