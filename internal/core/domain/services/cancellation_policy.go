package services

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// CancellationPolicy decides whether a caller may cancel an order or one of its items
// and under which role the cancellation is recorded.
//
// Role resolution for a single item:
//   - the order's customer cancels as Customer, subject to the window
//   - the item's ProductOwner cancels as Seller, subject to the window
//   - an admin cancels as Admin without a window
//   - anyone else is Unauthorized
//
// The seller fulfillment path does not go through CancelItem and so skips the window.
type CancellationPolicy struct {
	window kernel.CancellationWindow
}

func NewCancellationPolicy(window kernel.CancellationWindow) CancellationPolicy {
	return CancellationPolicy{window: window}
}

func (p CancellationPolicy) Window() kernel.CancellationWindow {
	return p.window
}

// ResolveItemCanceller returns the role recorded on the detail when caller cancels it.
func (p CancellationPolicy) ResolveItemCanceller(caller order.Caller, o *order.Order, detail *order.OrderDetail) (order.Role, error) {
	switch {
	case o.IsOwnedBy(caller.ID()):
		return order.RoleCustomer, nil
	case caller.ID() != "" && detail.ProductOwner() == caller.ID():
		return order.RoleSeller, nil
	case caller.IsAdmin():
		return order.RoleAdmin, nil
	default:
		return order.NoRole, errs.NewUnauthorizedError(caller.ID(), "cancel order detail "+detail.ID().String())
	}
}

// AuthorizeItemCancellation resolves the role and checks the window for it in one step.
func (p CancellationPolicy) AuthorizeItemCancellation(
	caller order.Caller,
	o *order.Order,
	detail *order.OrderDetail,
	now time.Time,
) (order.Role, error) {
	role, err := p.ResolveItemCanceller(caller, o, detail)
	if err != nil {
		return order.NoRole, err
	}
	if role == order.RoleAdmin {
		return role, nil
	}
	if err = o.EnsureWithinWindow(p.window, now); err != nil {
		return order.NoRole, err
	}
	return role, nil
}

// EnsureSellerOwnsDetail fails with Unauthorized unless caller is the item's ProductOwner.
func (p CancellationPolicy) EnsureSellerOwnsDetail(caller order.Caller, detail *order.OrderDetail, action string) error {
	if caller.ID() == "" || detail.ProductOwner() != caller.ID() {
		return errs.NewUnauthorizedError(caller.ID(), action+" order detail "+detail.ID().String())
	}
	return nil
}
