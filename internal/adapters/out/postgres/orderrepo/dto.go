// Package orderrepo maps the Order aggregate onto the orders and order_details tables.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of the orders table. Details are loaded through the has-many
// association; deleting an order never cascades to its details.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   string          `gorm:"type:varchar(255);not null;index"`
	ContactPhone string          `gorm:"type:varchar(64)"`
	GrandTotal   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OrderDate    time.Time       `gorm:"not null"`
	ShippedDate  *time.Time
	Shipped      bool             `gorm:"not null;default:false;index"`
	IsCancelled  bool             `gorm:"not null;default:false;index"`
	Version      int              `gorm:"not null;default:0"`
	Details      []OrderDetailDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderDetailDTO is a row of the order_details table.
type OrderDetailDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position           int             `gorm:"not null"`
	ProductID          string          `gorm:"type:varchar(255);not null"`
	ProductName        string          `gorm:"type:varchar(255);not null"`
	Price              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Image              string          `gorm:"type:varchar(1024)"`
	Quantity           int             `gorm:"not null"`
	ProductOwner       string          `gorm:"type:varchar(255);not null;index"`
	Customer           string          `gorm:"type:varchar(255);not null"`
	CustomerNumber     string          `gorm:"type:varchar(64)"`
	Status             string          `gorm:"type:varchar(16);not null;index:idx_order_details_status_updated"`
	CancellationReason string          `gorm:"type:text"`
	CancelledByRole    string          `gorm:"type:varchar(16)"`
	ReturnReason       string          `gorm:"type:text"`
	ReturnDate         *time.Time
	UpdatedAt          time.Time `gorm:"not null;autoUpdateTime:false;index:idx_order_details_status_updated"`
	Version            int       `gorm:"not null;default:0"`
}

func (OrderDetailDTO) TableName() string {
	return "order_details"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	details := aggregate.Details()
	dto := OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID(),
		ContactPhone: aggregate.ContactPhone(),
		GrandTotal:   aggregate.GrandTotal(),
		OrderDate:    aggregate.OrderDate(),
		ShippedDate:  aggregate.ShippedDate(),
		Shipped:      aggregate.Shipped(),
		IsCancelled:  aggregate.IsCancelled(),
		Version:      aggregate.Version(),
		Details:      make([]OrderDetailDTO, 0, len(details)),
	}
	for i, d := range details {
		dto.Details = append(dto.Details, detailFromDomain(d, i))
	}
	return dto
}

func detailFromDomain(d *order.OrderDetail, position int) OrderDetailDTO {
	product := d.Product()
	return OrderDetailDTO{
		ID:                 d.ID().Bytes(),
		OrderID:            d.OrderID().Bytes(),
		Position:           position,
		ProductID:          product.ProductID,
		ProductName:        product.Name,
		Price:              product.Price,
		Image:              product.Image,
		Quantity:           d.Quantity(),
		ProductOwner:       d.ProductOwner(),
		Customer:           d.Customer(),
		CustomerNumber:     d.CustomerNumber(),
		Status:             d.Status().String(),
		CancellationReason: d.CancellationReason(),
		CancelledByRole:    d.CancelledByRole().String(),
		ReturnReason:       d.ReturnReason(),
		ReturnDate:         d.ReturnDate(),
		UpdatedAt:          d.UpdatedAt(),
		Version:            d.Version(),
	}
}

// mutableColumns lists the detail columns a transition may change.
func (dto OrderDetailDTO) mutableColumns() map[string]any {
	return map[string]any{
		"status":              dto.Status,
		"cancellation_reason": dto.CancellationReason,
		"cancelled_by_role":   dto.CancelledByRole,
		"return_reason":       dto.ReturnReason,
		"return_date":         dto.ReturnDate,
		"updated_at":          dto.UpdatedAt,
	}
}

func (dto OrderDTO) mutableColumns() map[string]any {
	return map[string]any{
		"grand_total":  dto.GrandTotal,
		"order_date":   dto.OrderDate,
		"shipped_date": dto.ShippedDate,
		"shipped":      dto.Shipped,
		"is_cancelled": dto.IsCancelled,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	details := make([]*order.OrderDetail, 0, len(dto.Details))
	for _, d := range dto.Details {
		detail, detailErr := detailToDomain(d)
		if detailErr != nil {
			return nil, detailErr
		}
		details = append(details, detail)
	}

	return order.RestoreOrder(order.OrderRecord{
		ID:           id,
		CustomerID:   dto.CustomerID,
		ContactPhone: dto.ContactPhone,
		GrandTotal:   dto.GrandTotal,
		OrderDate:    dto.OrderDate,
		ShippedDate:  dto.ShippedDate,
		Shipped:      dto.Shipped,
		IsCancelled:  dto.IsCancelled,
		Version:      dto.Version,
	}, details)
}

func detailToDomain(dto OrderDetailDTO) (*order.OrderDetail, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	role, err := order.ParseRole(dto.CancelledByRole)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrderDetail(order.DetailRecord{
		ID:      id,
		OrderID: orderID,
		Product: order.ProductSnapshot{
			ProductID: dto.ProductID,
			Name:      dto.ProductName,
			Price:     dto.Price,
			Image:     dto.Image,
		},
		Quantity:           dto.Quantity,
		ProductOwner:       dto.ProductOwner,
		Customer:           dto.Customer,
		CustomerNumber:     dto.CustomerNumber,
		Status:             status,
		CancellationReason: dto.CancellationReason,
		CancelledByRole:    role,
		ReturnReason:       dto.ReturnReason,
		ReturnDate:         dto.ReturnDate,
		UpdatedAt:          dto.UpdatedAt,
		Version:            dto.Version,
	})
}
