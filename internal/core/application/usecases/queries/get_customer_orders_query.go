package queries

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
		"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
	)
)

// GetCustomerOrdersQuery lists the orders a customer placed, newest first, with their
// line items.
//
// Example:
//
//	query, err := NewGetCustomerOrdersQuery("customer-3")
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetCustomerOrdersQuery struct {
	customerID string
	guard      guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates the query for one customer.
func NewGetCustomerOrdersQuery(customerID string) (GetCustomerOrdersQuery, error) {
	if strings.TrimSpace(customerID) == "" {
		return GetCustomerOrdersQuery{}, errs.NewValueIsRequiredError("customer id")
	}
	return GetCustomerOrdersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

func (q GetCustomerOrdersQuery) CustomerID() string { return q.customerID }

// GetCustomerOrdersQueryResponse is one order as the customer sees it.
type GetCustomerOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderDate   time.Time
	GrandTotal  decimal.Decimal
	Shipped     bool
	ShippedDate *time.Time
	IsCancelled bool
	Lines       []CustomerOrderLine
}

// CustomerOrderLine is a line item of GetCustomerOrdersQueryResponse.
type CustomerOrderLine struct {
	ID                 kernel.UUID
	ProductID          string
	ProductName        string
	Price              decimal.Decimal
	Quantity           int
	SellerID           string
	Status             string
	CancellationReason string
	CancelledByRole    string
	ReturnReason       string
}
