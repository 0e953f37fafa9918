package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// CommandHandler runs a command that returns nothing but an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a command or query that returns a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers are the use cases exposed over HTTP.
type Handlers struct {
	CancelOrder      CommandHandler[commands.CancelOrderCommand]
	ReActivateOrder  CommandHandler[commands.ReActivateOrderCommand]
	ReOrder          ResultHandler[commands.ReOrderCommand, commands.ReOrderResult]
	CancelItem       CommandHandler[commands.CancelItemCommand]
	ReturnItem       CommandHandler[commands.ReturnItemCommand]
	RecomputeShipped ResultHandler[commands.RecomputeShippedStatusCommand, commands.RecomputeShippedStatusResult]

	ToggleProcessed     CommandHandler[commands.ToggleProcessedCommand]
	ChangeShippedStatus CommandHandler[commands.ChangeShippedStatusCommand]
	SellerCancelItem    CommandHandler[commands.SellerCancelOrderDetailCommand]

	CustomerOrders     ResultHandler[queries.GetCustomerOrdersQuery, []queries.GetCustomerOrdersQueryResponse]
	SellerOrderDetails ResultHandler[queries.GetSellerOrderDetailsQuery, []queries.GetSellerOrderDetailsQueryResponse]
}
