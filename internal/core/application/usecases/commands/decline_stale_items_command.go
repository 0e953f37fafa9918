package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrDeclineStaleItemsCommandIsNotConstructed = errors.New(
	"DeclineStaleItemsCommand must be created via NewDeclineStaleItemsCommand constructor",
)

// DeclineStaleItemsCommand triggers one auto-decline pass. It has no parameters;
// the threshold comes from the handler's policy.
type DeclineStaleItemsCommand struct {
	guard guard.ConstructorGuard
}

func NewDeclineStaleItemsCommand() DeclineStaleItemsCommand {
	return DeclineStaleItemsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c DeclineStaleItemsCommand) Validate() error {
	return c.guard.Validate(ErrDeclineStaleItemsCommandIsNotConstructed)
}
