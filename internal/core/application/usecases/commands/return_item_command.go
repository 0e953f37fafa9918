package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrReturnItemCommandIsNotConstructed = errors.New(
	"ReturnItemCommand must be created via NewReturnItemCommand constructor",
)

// ReturnItemCommand sends a processed item back.
type ReturnItemCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	detailID kernel.UUID
	caller   order.Caller
	reason   string

	guard guard.ConstructorGuard
}

func NewReturnItemCommand(orderID, detailID kernel.UUID, caller order.Caller, reason string) (ReturnItemCommand, error) {
	if err := errors.Join(orderID.Validate(), detailID.Validate(), caller.Validate()); err != nil {
		return ReturnItemCommand{}, err
	}

	return ReturnItemCommand{
		orderID:  orderID,
		detailID: detailID,
		caller:   caller,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReturnItemCommand) Validate() error {
	return c.guard.Validate(ErrReturnItemCommandIsNotConstructed)
}

func (c ReturnItemCommand) OrderID() kernel.UUID  { return c.orderID }
func (c ReturnItemCommand) DetailID() kernel.UUID { return c.detailID }
func (c ReturnItemCommand) Caller() order.Caller  { return c.caller }
func (c ReturnItemCommand) Reason() string        { return c.reason }
