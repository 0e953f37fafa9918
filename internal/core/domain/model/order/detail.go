package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrOrderDetailIsNotConstructed is returned when an OrderDetail bypassed its constructors.
var ErrOrderDetailIsNotConstructed = errors.New("OrderDetail must be created via NewOrderDetail or RestoreOrderDetail")

// ProductSnapshot freezes the product data at checkout time. Later catalog edits
// never reach an existing order.
type ProductSnapshot struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Image     string
}

// Validate checks the snapshot carries an id, a name and a non-negative price.
func (p ProductSnapshot) Validate() error {
	var errList []error
	if strings.TrimSpace(p.ProductID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product id"))
	}
	if strings.TrimSpace(p.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product name"))
	}
	if p.Price.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", p.Price)))
	}
	return errors.Join(errList...)
}

// OrderDetail is one line item of an Order, owned by exactly one seller.
// Mutations go through the parent Order so aggregate flags are always recomputed.
type OrderDetail struct {
	id             kernel.UUID
	orderID        kernel.UUID
	product        ProductSnapshot
	quantity       int
	productOwner   string
	customer       string
	customerNumber string

	status             Status
	cancellationReason string
	cancelledByRole    Role
	returnReason       string
	returnDate         *time.Time

	// updatedAt is the last-mutation timestamp the auto-decline sweep compares against.
	updatedAt time.Time
	// version is the optimistic concurrency token loaded from storage.
	version int
	changed bool

	guard guard.ConstructorGuard
}

// NewOrderDetail creates a Pending line item. Order, customer and timestamps are
// filled in when the detail is attached to an order by NewOrder.
func NewOrderDetail(id kernel.UUID, product ProductSnapshot, quantity int, productOwner string) (*OrderDetail, error) {
	detail := &OrderDetail{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		detail.setID(id),
		detail.setProduct(product),
		detail.setQuantity(quantity),
		detail.setProductOwner(productOwner),
	); err != nil {
		return nil, err
	}

	return detail, nil
}

// DetailRecord carries the persisted state of an OrderDetail.
type DetailRecord struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	Product            ProductSnapshot
	Quantity           int
	ProductOwner       string
	Customer           string
	CustomerNumber     string
	Status             Status
	CancellationReason string
	CancelledByRole    Role
	ReturnReason       string
	ReturnDate         *time.Time
	UpdatedAt          time.Time
	Version            int
}

// RestoreOrderDetail rebuilds a detail from storage and checks the status/role pairing.
func RestoreOrderDetail(rec DetailRecord) (*OrderDetail, error) {
	detail := &OrderDetail{
		customer:           rec.Customer,
		customerNumber:     rec.CustomerNumber,
		cancellationReason: rec.CancellationReason,
		cancelledByRole:    rec.CancelledByRole,
		returnReason:       rec.ReturnReason,
		returnDate:         rec.ReturnDate,
		updatedAt:          rec.UpdatedAt,
		version:            rec.Version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		detail.setID(rec.ID),
		rec.OrderID.Validate(),
		detail.setProduct(rec.Product),
		detail.setQuantity(rec.Quantity),
		detail.setProductOwner(rec.ProductOwner),
		rec.Status.Validate(),
	); err != nil {
		return nil, err
	}
	detail.orderID = rec.OrderID
	detail.status = rec.Status

	if (rec.Status == Cancelled) != (rec.CancelledByRole != NoRole) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"cancelled by role",
			fmt.Errorf("role %q does not match status %s", rec.CancelledByRole, rec.Status),
		)
	}

	return detail, nil
}

// Validate ensures the detail was created through a constructor.
func (d *OrderDetail) Validate() error {
	if d == nil {
		return ErrOrderDetailIsNotConstructed
	}
	return d.guard.Validate(ErrOrderDetailIsNotConstructed)
}

func (d *OrderDetail) ID() kernel.UUID            { return d.id }
func (d *OrderDetail) OrderID() kernel.UUID       { return d.orderID }
func (d *OrderDetail) Product() ProductSnapshot   { return d.product }
func (d *OrderDetail) Quantity() int              { return d.quantity }
func (d *OrderDetail) ProductOwner() string       { return d.productOwner }
func (d *OrderDetail) Customer() string           { return d.customer }
func (d *OrderDetail) CustomerNumber() string     { return d.customerNumber }
func (d *OrderDetail) Status() Status             { return d.status }
func (d *OrderDetail) CancellationReason() string { return d.cancellationReason }
func (d *OrderDetail) CancelledByRole() Role      { return d.cancelledByRole }
func (d *OrderDetail) ReturnReason() string       { return d.returnReason }
func (d *OrderDetail) ReturnDate() *time.Time     { return d.returnDate }
func (d *OrderDetail) UpdatedAt() time.Time       { return d.updatedAt }
func (d *OrderDetail) Version() int               { return d.version }

// IsChanged reports whether the detail was mutated since it was loaded.
// Repositories write back only changed details.
func (d *OrderDetail) IsChanged() bool { return d.changed }

func (d *OrderDetail) IsProcessed() bool { return d.status == Processed }
func (d *OrderDetail) IsCancelled() bool { return d.status == Cancelled }
func (d *OrderDetail) IsReturned() bool  { return d.status == Returned }

// Subtotal is Price * Quantity.
func (d *OrderDetail) Subtotal() decimal.Decimal {
	return d.product.Price.Mul(decimal.NewFromInt(int64(d.quantity)))
}

// IsStale reports whether the detail is still Pending and untouched for longer than after.
func (d *OrderDetail) IsStale(now time.Time, after time.Duration) bool {
	return d.status == Pending && d.updatedAt.Before(now.Add(-after))
}

func (d *OrderDetail) cancel(role Role, reason string, now time.Time) error {
	if role == NoRole {
		return errs.NewValueIsRequiredError("cancelled by role")
	}
	next, err := d.status.Cancel()
	if err != nil {
		return err
	}
	d.status = next
	d.cancelledByRole = role
	d.cancellationReason = reason
	d.touch(now)
	return nil
}

func (d *OrderDetail) process(now time.Time) error {
	next, err := d.status.Process()
	if err != nil {
		return err
	}
	d.status = next
	d.returnReason = ""
	d.returnDate = nil
	d.touch(now)
	return nil
}

func (d *OrderDetail) unprocess(now time.Time) error {
	next, err := d.status.Unprocess()
	if err != nil {
		return err
	}
	d.status = next
	d.touch(now)
	return nil
}

func (d *OrderDetail) markReturned(reason string, now time.Time) error {
	next, err := d.status.Return()
	if err != nil {
		return err
	}
	d.status = next
	d.returnReason = reason
	d.returnDate = &now
	d.touch(now)
	return nil
}

func (d *OrderDetail) reset(now time.Time) error {
	next, err := d.status.Reset()
	if err != nil {
		return err
	}
	d.status = next
	d.cancelledByRole = NoRole
	d.cancellationReason = ""
	d.returnReason = ""
	d.returnDate = nil
	d.touch(now)
	return nil
}

func (d *OrderDetail) attach(orderID kernel.UUID, customer, customerNumber string, now time.Time) {
	d.orderID = orderID
	d.customer = customer
	d.customerNumber = customerNumber
	d.updatedAt = now
}

func (d *OrderDetail) touch(now time.Time) {
	d.updatedAt = now
	d.changed = true
}

func (d *OrderDetail) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *OrderDetail) setProduct(product ProductSnapshot) error {
	if err := product.Validate(); err != nil {
		return err
	}
	d.product = product
	return nil
}

func (d *OrderDetail) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	d.quantity = quantity
	return nil
}

func (d *OrderDetail) setProductOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return errs.NewValueIsRequiredError("product owner")
	}
	d.productOwner = owner
	return nil
}
