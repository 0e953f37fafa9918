// Package ports defines the contracts between the fulfillment core and its
// infrastructure: persistence, transactions, notifications and time.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are always loaded together with all of their details.
type OrderRepository interface {
	// Add persists a new order aggregate and its details.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order row and every changed detail, each guarded by the version
	// token loaded with it. A lost race yields errs.ConcurrencyConflictError and nothing
	// is written for that row.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByDetailID retrieves the order owning the given detail.
	GetByDetailID(ctx context.Context, detailID kernel.UUID) (*order.Order, error)

	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*order.Order, error)

	// ListUnshippedByCustomer returns the customer's orders that are neither shipped nor cancelled.
	ListUnshippedByCustomer(ctx context.Context, customerID string) ([]*order.Order, error)

	// ListWithStalePendingDetails returns orders having at least one Pending detail last
	// updated before cutoff.
	ListWithStalePendingDetails(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}

// SellerDetailFilter narrows the seller's item listing.
type SellerDetailFilter struct {
	SellerID string
	// Status is optional; order.Unknown lists every status.
	Status order.Status
	Limit  int
	Offset int
}

// SellerDetailReader serves the read side of the seller surface.
type SellerDetailReader interface {
	ListDetailsBySeller(ctx context.Context, filter SellerDetailFilter) ([]*order.OrderDetail, error)
}
