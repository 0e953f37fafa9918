package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetSellerOrderDetailsQueryHandler serves the seller's item list from a
// ports.SellerDetailReader.
type GetSellerOrderDetailsQueryHandler struct {
	reader ports.SellerDetailReader
}

func NewGetSellerOrderDetailsQueryHandler(reader ports.SellerDetailReader) GetSellerOrderDetailsQueryHandler {
	return GetSellerOrderDetailsQueryHandler{reader: reader}
}

func (h GetSellerOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetSellerOrderDetailsQuery,
) ([]GetSellerOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	details, err := h.reader.ListDetailsBySeller(ctx, ports.SellerDetailFilter{
		SellerID: query.SellerID(),
		Status:   query.Status(),
		Limit:    query.Limit(),
		Offset:   query.Offset(),
	})
	if err != nil {
		return nil, err
	}

	out := make([]GetSellerOrderDetailsQueryResponse, 0, len(details))
	for _, d := range details {
		out = append(out, GetSellerOrderDetailsQueryResponse{
			ID:                 d.ID(),
			OrderID:            d.OrderID(),
			ProductID:          d.Product().ProductID,
			ProductName:        d.Product().Name,
			Price:              d.Product().Price,
			Quantity:           d.Quantity(),
			Customer:           d.Customer(),
			CustomerNumber:     d.CustomerNumber(),
			Status:             d.Status().String(),
			CancellationReason: d.CancellationReason(),
			ReturnReason:       d.ReturnReason(),
			UpdatedAt:          d.UpdatedAt(),
		})
	}
	return out, nil
}
