package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

type reasonRequest struct {
	Reason string `json:"reason"`
}

type processedRequest struct {
	Processed *bool `json:"processed"`
}

type shippedRequest struct {
	Shipped *bool `json:"shipped"`
}

type reorderResponse struct {
	OrderID     string `json:"orderId"`
	Reactivated bool   `json:"reactivated"`
}

type recomputeFailure struct {
	OrderID string `json:"orderId"`
	Error   string `json:"error"`
}

type recomputeResponse struct {
	Checked int                `json:"checked"`
	Updated []string           `json:"updated"`
	Failed  []recomputeFailure `json:"failed"`
}

func newRecomputeResponse(r commands.RecomputeShippedStatusResult) recomputeResponse {
	resp := recomputeResponse{
		Checked: r.Checked,
		Updated: make([]string, 0, len(r.Updated)),
		Failed:  make([]recomputeFailure, 0, len(r.Failures)),
	}
	for _, id := range r.Updated {
		resp.Updated = append(resp.Updated, id.String())
	}
	for _, f := range r.Failures {
		resp.Failed = append(resp.Failed, recomputeFailure{OrderID: f.OrderID.String(), Error: f.Err.Error()})
	}
	return resp
}

type orderLine struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"productId"`
	ProductName        string          `json:"productName"`
	Price              decimal.Decimal `json:"price"`
	Quantity           int             `json:"quantity"`
	SellerID           string          `json:"sellerId"`
	Status             string          `json:"status"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	CancelledByRole    string          `json:"cancelledByRole,omitempty"`
	ReturnReason       string          `json:"returnReason,omitempty"`
}

type customerOrder struct {
	ID          string          `json:"id"`
	OrderDate   time.Time       `json:"orderDate"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	Shipped     bool            `json:"shipped"`
	ShippedDate *time.Time      `json:"shippedDate,omitempty"`
	IsCancelled bool            `json:"isCancelled"`
	Lines       []orderLine     `json:"lines"`
}

func newCustomerOrders(rows []queries.GetCustomerOrdersQueryResponse) []customerOrder {
	out := make([]customerOrder, 0, len(rows))
	for _, o := range rows {
		lines := make([]orderLine, 0, len(o.Lines))
		for _, l := range o.Lines {
			lines = append(lines, orderLine{
				ID:                 l.ID.String(),
				ProductID:          l.ProductID,
				ProductName:        l.ProductName,
				Price:              l.Price,
				Quantity:           l.Quantity,
				SellerID:           l.SellerID,
				Status:             l.Status,
				CancellationReason: l.CancellationReason,
				CancelledByRole:    l.CancelledByRole,
				ReturnReason:       l.ReturnReason,
			})
		}
		out = append(out, customerOrder{
			ID:          o.ID.String(),
			OrderDate:   o.OrderDate,
			GrandTotal:  o.GrandTotal,
			Shipped:     o.Shipped,
			ShippedDate: o.ShippedDate,
			IsCancelled: o.IsCancelled,
			Lines:       lines,
		})
	}
	return out
}

type sellerDetail struct {
	ID                 string          `json:"id"`
	OrderID            string          `json:"orderId"`
	ProductID          string          `json:"productId"`
	ProductName        string          `json:"productName"`
	Price              decimal.Decimal `json:"price"`
	Quantity           int             `json:"quantity"`
	Customer           string          `json:"customer"`
	CustomerNumber     string          `json:"customerNumber,omitempty"`
	Status             string          `json:"status"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	ReturnReason       string          `json:"returnReason,omitempty"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func newSellerDetails(rows []queries.GetSellerOrderDetailsQueryResponse) []sellerDetail {
	out := make([]sellerDetail, 0, len(rows))
	for _, d := range rows {
		out = append(out, sellerDetail{
			ID:                 d.ID.String(),
			OrderID:            d.OrderID.String(),
			ProductID:          d.ProductID,
			ProductName:        d.ProductName,
			Price:              d.Price,
			Quantity:           d.Quantity,
			Customer:           d.Customer,
			CustomerNumber:     d.CustomerNumber,
			Status:             d.Status,
			CancellationReason: d.CancellationReason,
			ReturnReason:       d.ReturnReason,
			UpdatedAt:          d.UpdatedAt,
		})
	}
	return out
}
