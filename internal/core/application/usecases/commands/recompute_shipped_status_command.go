package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrRecomputeShippedStatusCommandIsNotConstructed = errors.New(
	"RecomputeShippedStatusCommand must be created via NewRecomputeShippedStatusCommand constructor",
)

// RecomputeShippedStatusCommand repairs the Shipped flag on the caller's open orders.
type RecomputeShippedStatusCommand struct { //nolint:recvcheck //using for validation
	caller order.Caller

	guard guard.ConstructorGuard
}

func NewRecomputeShippedStatusCommand(caller order.Caller) (RecomputeShippedStatusCommand, error) {
	if err := caller.Validate(); err != nil {
		return RecomputeShippedStatusCommand{}, err
	}

	return RecomputeShippedStatusCommand{
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RecomputeShippedStatusCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeShippedStatusCommandIsNotConstructed)
}

func (c RecomputeShippedStatusCommand) Caller() order.Caller { return c.caller }
