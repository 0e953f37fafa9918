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

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the fulfillment model. It owns its details and keeps
// the aggregate flags (IsCancelled, Shipped, GrandTotal) consistent with them.
//
// Order follows these invariants after every mutation:
//   - IsCancelled is true if and only if every detail is Cancelled
//   - Shipped is true if and only if at least one live detail exists and all live details are Processed
//   - GrandTotal is the sum of Price*Quantity over live details
//   - a detail carries a CancelledByRole exactly when it is Cancelled
//
// All detail mutations are methods on Order; each ends with applyAggregate.
type Order struct {
	id           kernel.UUID
	customerID   string
	contactPhone string
	grandTotal   decimal.Decimal
	orderDate    time.Time
	shippedDate  *time.Time
	shipped      bool
	isCancelled  bool
	details      []*OrderDetail

	// version is the optimistic concurrency token loaded from storage.
	version int
	events  []DetailCancelled

	guard guard.ConstructorGuard
}

// NewOrder creates an order at checkout. Details are attached to the order, stamped
// with the customer snapshot and OrderDate, and the aggregate is computed.
//
// Example:
//
//	detail, _ := order.NewOrderDetail(kernel.NewUUID(), order.ProductSnapshot{
//	    ProductID: "p-1", Name: "Desk lamp", Price: decimal.RequireFromString("19.90"),
//	}, 2, "seller-7")
//	o, err := order.NewOrder(kernel.NewUUID(), "customer-3", "+49 30 1234567", time.Now(), []*order.OrderDetail{detail})
func NewOrder(
	id kernel.UUID,
	customerID string,
	contactPhone string,
	orderDate time.Time,
	details []*OrderDetail,
) (*Order, error) {
	o := &Order{
		contactPhone: contactPhone,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setOrderDate(orderDate),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	for _, d := range o.details {
		d.attach(o.id, o.customerID, o.contactPhone, orderDate)
	}
	o.applyAggregate(orderDate)

	return o, nil
}

// OrderRecord carries the persisted state of an Order row.
type OrderRecord struct {
	ID           kernel.UUID
	CustomerID   string
	ContactPhone string
	GrandTotal   decimal.Decimal
	OrderDate    time.Time
	ShippedDate  *time.Time
	Shipped      bool
	IsCancelled  bool
	Version      int
}

// RestoreOrder rebuilds an order from storage. Stored aggregate flags are kept as-is so
// that RecomputeShippedStatus can detect and repair rows that drifted.
func RestoreOrder(rec OrderRecord, details []*OrderDetail) (*Order, error) {
	o := &Order{
		contactPhone: rec.ContactPhone,
		grandTotal:   rec.GrandTotal,
		shippedDate:  rec.ShippedDate,
		shipped:      rec.Shipped,
		isCancelled:  rec.IsCancelled,
		version:      rec.Version,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(rec.ID),
		o.setCustomerID(rec.CustomerID),
		o.setOrderDate(rec.OrderDate),
	); err != nil {
		return nil, err
	}

	for _, d := range details {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	o.details = details

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID             { return o.id }
func (o *Order) CustomerID() string          { return o.customerID }
func (o *Order) ContactPhone() string        { return o.contactPhone }
func (o *Order) GrandTotal() decimal.Decimal { return o.grandTotal }
func (o *Order) OrderDate() time.Time        { return o.orderDate }
func (o *Order) ShippedDate() *time.Time     { return o.shippedDate }
func (o *Order) Shipped() bool               { return o.shipped }
func (o *Order) IsCancelled() bool           { return o.isCancelled }
func (o *Order) Version() int                { return o.version }

// Details returns the order's line items in their original order.
func (o *Order) Details() []*OrderDetail {
	out := make([]*OrderDetail, len(o.details))
	copy(out, o.details)
	return out
}

// Events returns the cancellations recorded since the order was loaded.
func (o *Order) Events() []DetailCancelled {
	out := make([]DetailCancelled, len(o.events))
	copy(out, o.events)
	return out
}

// Detail looks up a line item by id.
func (o *Order) Detail(detailID kernel.UUID) (*OrderDetail, error) {
	for _, d := range o.details {
		if d.id.IsEqual(detailID) {
			return d, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order detail", detailID.String())
}

// IsOwnedBy reports whether customerID placed the order.
func (o *Order) IsOwnedBy(customerID string) bool {
	return customerID != "" && o.customerID == customerID
}

// HasSeller reports whether sellerID owns at least one line item.
func (o *Order) HasSeller(sellerID string) bool {
	for _, d := range o.details {
		if sellerID != "" && d.productOwner == sellerID {
			return true
		}
	}
	return false
}

// State is a short description used in error messages.
func (o *Order) State() string {
	switch {
	case o.isCancelled:
		return "Cancelled"
	case o.shipped:
		return "Shipped"
	default:
		return "Active"
	}
}

// EnsureWithinWindow fails with WindowExpired once now is past OrderDate + window.
func (o *Order) EnsureWithinWindow(window kernel.CancellationWindow, now time.Time) error {
	if !window.IsOpen(o.orderDate, now) {
		return errs.NewWindowExpiredError(o.id.String(), window.Deadline(o.orderDate))
	}
	return nil
}

// Cancel withdraws the whole order on behalf of role, the customer or an admin. Every
// live detail must still be Pending; nothing is mutated unless all checks pass. Admin
// cancellations are not bound to the window.
func (o *Order) Cancel(window kernel.CancellationWindow, role Role, reason string, now time.Time) error {
	if role != RoleCustomer && role != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("cancelled by role", fmt.Errorf("%s cannot cancel a whole order", role))
	}
	if o.isCancelled {
		return errs.NewAlreadyInTerminalStateError("order", o.State(), "cancel")
	}
	if role != RoleAdmin {
		if err := o.EnsureWithinWindow(window, now); err != nil {
			return err
		}
	}
	if o.shipped {
		return errs.NewAlreadyInTerminalStateError("order", o.State(), "cancel")
	}
	for _, d := range o.details {
		if d.IsCancelled() {
			continue
		}
		if d.status != Pending {
			return errs.NewAlreadyInTerminalStateError("order detail", d.status.String(), "cancel")
		}
	}

	for _, d := range o.details {
		if d.IsCancelled() {
			continue
		}
		if err := o.cancelDetail(d, role, reason, now); err != nil {
			return err
		}
	}
	o.applyAggregate(now)
	return nil
}

// Reactivate reopens a cancelled order: OrderDate restarts the window and every detail
// goes back to Pending with its cancellation fields cleared.
func (o *Order) Reactivate(now time.Time) error {
	if !o.isCancelled {
		return errs.NewAlreadyInTerminalStateError("order", o.State(), "reactivate")
	}
	for _, d := range o.details {
		if err := d.reset(now); err != nil {
			return err
		}
	}
	o.orderDate = now
	o.applyAggregate(now)
	return nil
}

// CancelDetail cancels one Pending line item on behalf of role. Authorization and the
// cancellation window are checked by the caller.
func (o *Order) CancelDetail(detailID kernel.UUID, role Role, reason string, now time.Time) error {
	d, err := o.Detail(detailID)
	if err != nil {
		return err
	}
	if err = o.cancelDetail(d, role, reason, now); err != nil {
		return err
	}
	o.applyAggregate(now)
	return nil
}

// ReturnDetail marks a Processed line item as Returned. A return always reopens the
// order: it is no longer shipped nor cancelled.
func (o *Order) ReturnDetail(detailID kernel.UUID, reason string, now time.Time) error {
	d, err := o.Detail(detailID)
	if err != nil {
		return err
	}
	if err = d.markReturned(reason, now); err != nil {
		return err
	}
	o.applyAggregate(now)
	return nil
}

// SetDetailProcessed moves a line item between Pending and Processed. Processing a
// Returned item clears the return. Asking for the current value is a no-op.
func (o *Order) SetDetailProcessed(detailID kernel.UUID, processed bool, now time.Time) error {
	d, err := o.Detail(detailID)
	if err != nil {
		return err
	}

	switch {
	case processed && d.status == Processed, !processed && d.status == Pending:
		return nil
	case processed:
		err = d.process(now)
	default:
		err = d.unprocess(now)
	}
	if err != nil {
		return err
	}

	o.applyAggregate(now)
	return nil
}

// RefreshAggregate recomputes the derived flags and reports whether Shipped changed.
// Used to repair rows whose stored flags disagree with their details.
func (o *Order) RefreshAggregate(now time.Time) bool {
	before := o.shipped
	o.applyAggregate(now)
	return before != o.shipped
}

// Reorder creates a fresh order with new identifiers whose details copy this order's
// product, price and quantity snapshot. No catalog re-pricing takes place.
func (o *Order) Reorder(newID kernel.UUID, now time.Time) (*Order, error) {
	details := make([]*OrderDetail, 0, len(o.details))
	for _, d := range o.details {
		copied, err := NewOrderDetail(kernel.NewUUID(), d.product, d.quantity, d.productOwner)
		if err != nil {
			return nil, err
		}
		details = append(details, copied)
	}
	return NewOrder(newID, o.customerID, o.contactPhone, now, details)
}

func (o *Order) cancelDetail(d *OrderDetail, role Role, reason string, now time.Time) error {
	if err := d.cancel(role, reason, now); err != nil {
		return err
	}
	o.events = append(o.events, DetailCancelled{
		OrderID:     o.id,
		DetailID:    d.id,
		ProductName: d.product.Name,
		Customer:    d.customer,
		Seller:      d.productOwner,
		Role:        role,
		Reason:      reason,
	})
	return nil
}

func (o *Order) applyAggregate(now time.Time) {
	agg := ComputeAggregate(o.details)

	o.isCancelled = agg.IsCancelled
	o.grandTotal = agg.GrandTotal
	switch {
	case agg.Shippable && !o.shipped:
		o.shipped = true
		o.shippedDate = &now
	case !agg.Shippable:
		o.shipped = false
		o.shippedDate = nil
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return errs.NewValueIsRequiredError("customer id")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	o.orderDate = orderDate
	return nil
}

func (o *Order) setDetails(details []*OrderDetail) error {
	if len(details) == 0 {
		return errs.NewValueIsRequiredError("order details")
	}
	for _, d := range details {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	o.details = details
	return nil
}
