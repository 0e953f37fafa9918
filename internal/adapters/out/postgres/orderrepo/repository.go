package orderrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with all of its details.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row and its changed details. Every row is guarded by the
// version it was loaded with and has its version bumped on success.
//
// The aggregate keeps the versions it was loaded with, so it must be reloaded before
// it can be updated again.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)

	if err := r.guardedUpdate(db, &OrderDTO{}, "order", aggregate.ID(), dto.Version, dto.mutableColumns()); err != nil {
		return err
	}

	for i, d := range aggregate.Details() {
		if !d.IsChanged() {
			continue
		}
		detailDTO := dto.Details[i]
		if err := r.guardedUpdate(db, &OrderDetailDTO{}, "order detail", d.ID(), detailDTO.Version, detailDTO.mutableColumns()); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) guardedUpdate(
	db *gorm.DB,
	model any,
	entity string,
	id kernel.UUID,
	version int,
	columns map[string]any,
) error {
	columns["version"] = gorm.Expr("version + 1")

	result := db.Model(model).Where("id = ? AND version = ?", id.Bytes(), version).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(model).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return errs.NewConcurrencyConflictError(entity, id.String(), version)
}

// Get retrieves an order with its details by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withDetails(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByDetailID retrieves the order owning the detail.
func (r *GormOrderRepository) GetByDetailID(ctx context.Context, detailID kernel.UUID) (*order.Order, error) {
	if err := detailID.Validate(); err != nil {
		return nil, err
	}

	var detail OrderDetailDTO
	if err := r.db.WithContext(ctx).Select("order_id").First(&detail, "id = ?", detailID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order detail", detailID.String())
		}
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(detail.OrderID[:])
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, orderID)
}

// ListByCustomer returns every order of the customer, newest first.
func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withDetails(ctx).
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// ListUnshippedByCustomer returns the customer's live orders that are not shipped yet.
func (r *GormOrderRepository) ListUnshippedByCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withDetails(ctx).
		Where("customer_id = ? AND shipped = ? AND is_cancelled = ?", customerID, false, false).
		Order("order_date").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// ListWithStalePendingDetails returns orders with at least one Pending detail whose
// updated_at is older than cutoff.
func (r *GormOrderRepository) ListWithStalePendingDetails(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	db := r.db.WithContext(ctx)
	stale := db.Model(&OrderDetailDTO{}).
		Select("order_id").
		Where("status = ? AND updated_at < ?", order.Pending.String(), cutoff)

	var dtos []OrderDTO
	if err := r.withDetails(ctx).
		Where("id IN (?)", stale).
		Order("order_date").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// ListDetailsBySeller implements ports.SellerDetailReader.
func (r *GormOrderRepository) ListDetailsBySeller(ctx context.Context, filter ports.SellerDetailFilter) ([]*order.OrderDetail, error) {
	query := r.db.WithContext(ctx).
		Where("product_owner = ?", filter.SellerID).
		Order("updated_at DESC")
	if filter.Status != order.Unknown {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var dtos []OrderDetailDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	details := make([]*order.OrderDetail, 0, len(dtos))
	for _, dto := range dtos {
		d, err := detailToDomain(dto)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (r *GormOrderRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Details", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
