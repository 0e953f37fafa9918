package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler reads the customer's orders straight from the
// orders and order_details tables. Lines keep their checkout position.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle returns an empty, non-nil slice when the customer has no orders.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]GetCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetCustomerOrdersQueryResponse, 0)
	index := make(map[uuid.UUID]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_date,
			grand_total,
			shipped,
			shipped_date,
			is_cancelled
		FROM orders
		WHERE customer_id = ?
		ORDER BY order_date DESC, id
	`, query.CustomerID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp GetCustomerOrdersQueryResponse
			id   uuid.UUID
		)
		if err = rows.Scan(&id, &resp.OrderDate, &resp.GrandTotal, &resp.Shipped, &resp.ShippedDate, &resp.IsCancelled); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Lines = make([]CustomerOrderLine, 0)

		index[id] = len(orders)
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err = h.attachLines(ctx, query.CustomerID(), orders, index); err != nil {
		return nil, err
	}
	return orders, nil
}

func (h GetCustomerOrdersQueryHandler) attachLines(
	ctx context.Context,
	customerID string,
	orders []GetCustomerOrdersQueryResponse,
	index map[uuid.UUID]int,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.order_id,
			d.product_id,
			d.product_name,
			d.price,
			d.quantity,
			d.product_owner,
			d.status,
			COALESCE(d.cancellation_reason, ''),
			COALESCE(d.cancelled_by_role, ''),
			COALESCE(d.return_reason, '')
		FROM order_details d
		JOIN orders o ON o.id = d.order_id
		WHERE o.customer_id = ?
		ORDER BY d.order_id, d.position
	`, customerID).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line        CustomerOrderLine
			id, orderID uuid.UUID
			price       decimal.Decimal
		)
		if err = rows.Scan(
			&id,
			&orderID,
			&line.ProductID,
			&line.ProductName,
			&price,
			&line.Quantity,
			&line.SellerID,
			&line.Status,
			&line.CancellationReason,
			&line.CancelledByRole,
			&line.ReturnReason,
		); err != nil {
			return err
		}

		i, ok := index[orderID]
		if !ok {
			continue
		}
		detailID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		line.ID = detailID
		line.Price = price
		orders[i].Lines = append(orders[i].Lines, line)
	}

	return rows.Err()
}
