package queries

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxSellerPageSize caps the page a seller can request in one call.
const MaxSellerPageSize = 200

var (
	ErrGetSellerOrderDetailsQueryIsNotConstructed = errors.New(
		"GetSellerOrderDetailsQuery must be created via NewGetSellerOrderDetailsQuery constructor",
	)
)

// GetSellerOrderDetailsQuery lists the line items owned by one seller, most recently
// touched first. Status narrows the list when it is not order.Unknown.
type GetSellerOrderDetailsQuery struct {
	sellerID string
	status   order.Status
	limit    int
	offset   int
	guard    guard.ConstructorGuard
}

// NewGetSellerOrderDetailsQuery validates paging. A limit of 0 means MaxSellerPageSize.
func NewGetSellerOrderDetailsQuery(sellerID string, status order.Status, limit, offset int) (GetSellerOrderDetailsQuery, error) {
	if strings.TrimSpace(sellerID) == "" {
		return GetSellerOrderDetailsQuery{}, errs.NewValueIsRequiredError("seller id")
	}
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return GetSellerOrderDetailsQuery{}, err
		}
	}
	if limit < 0 || limit > MaxSellerPageSize {
		return GetSellerOrderDetailsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxSellerPageSize)
	}
	if offset < 0 {
		return GetSellerOrderDetailsQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if limit == 0 {
		limit = MaxSellerPageSize
	}

	return GetSellerOrderDetailsQuery{
		sellerID: sellerID,
		status:   status,
		limit:    limit,
		offset:   offset,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetSellerOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerOrderDetailsQueryIsNotConstructed)
}

func (q GetSellerOrderDetailsQuery) SellerID() string     { return q.sellerID }
func (q GetSellerOrderDetailsQuery) Status() order.Status { return q.status }
func (q GetSellerOrderDetailsQuery) Limit() int           { return q.limit }
func (q GetSellerOrderDetailsQuery) Offset() int          { return q.offset }

// GetSellerOrderDetailsQueryResponse is one line item as the seller sees it.
type GetSellerOrderDetailsQueryResponse struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	ProductID          string
	ProductName        string
	Price              decimal.Decimal
	Quantity           int
	Customer           string
	CustomerNumber     string
	Status             string
	CancellationReason string
	ReturnReason       string
	UpdatedAt          time.Time
}
