package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrSellerCancelOrderDetailCommandIsNotConstructed = errors.New(
	"SellerCancelOrderDetailCommand must be created via NewSellerCancelOrderDetailCommand constructor",
)

// SellerCancelOrderDetailCommand is the seller declining one of their own items.
type SellerCancelOrderDetailCommand struct { //nolint:recvcheck //using for validation
	detailID kernel.UUID
	caller   order.Caller
	reason   string

	guard guard.ConstructorGuard
}

func NewSellerCancelOrderDetailCommand(
	detailID kernel.UUID,
	caller order.Caller,
	reason string,
) (SellerCancelOrderDetailCommand, error) {
	if err := errors.Join(detailID.Validate(), caller.Validate()); err != nil {
		return SellerCancelOrderDetailCommand{}, err
	}

	return SellerCancelOrderDetailCommand{
		detailID: detailID,
		caller:   caller,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SellerCancelOrderDetailCommand) Validate() error {
	return c.guard.Validate(ErrSellerCancelOrderDetailCommandIsNotConstructed)
}

func (c SellerCancelOrderDetailCommand) DetailID() kernel.UUID { return c.detailID }
func (c SellerCancelOrderDetailCommand) Caller() order.Caller  { return c.caller }
func (c SellerCancelOrderDetailCommand) Reason() string        { return c.reason }
