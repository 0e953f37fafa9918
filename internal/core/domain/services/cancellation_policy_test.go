package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, sellers ...string) *order.Order {
	t.Helper()
	details := make([]*order.OrderDetail, 0, len(sellers))
	for _, s := range sellers {
		d, err := order.NewOrderDetail(kernel.NewUUID(), order.ProductSnapshot{
			ProductID: "p-" + s, Name: "item", Price: decimal.NewFromInt(5),
		}, 1, s)
		require.NoError(t, err)
		details = append(details, d)
	}
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", "", t0, details)
	require.NoError(t, err)
	return o
}

func caller(t *testing.T, id string, role order.Role) order.Caller {
	t.Helper()
	c, err := order.NewCaller(id, role)
	require.NoError(t, err)
	return c
}

func TestCancellationPolicy_AuthorizeItemCancellation(t *testing.T) {
	policy := services.NewCancellationPolicy(kernel.CancellationWindow{})
	o := newOrder(t, "seller-1", "seller-2")
	d := o.Details()[0]

	tests := []struct {
		name    string
		caller  order.Caller
		now     time.Time
		want    order.Role
		wantErr error
	}{
		{"customer in window", caller(t, "customer-1", order.RoleCustomer), t0.Add(time.Hour), order.RoleCustomer, nil},
		{"customer late", caller(t, "customer-1", order.RoleCustomer), t0.Add(25 * time.Hour), order.NoRole, errs.ErrWindowExpired},
		{"owning seller", caller(t, "seller-1", order.RoleSeller), t0.Add(time.Hour), order.RoleSeller, nil},
		{"owning seller late", caller(t, "seller-1", order.RoleSeller), t0.Add(30 * time.Hour), order.NoRole, errs.ErrWindowExpired},
		{"other seller", caller(t, "seller-2", order.RoleSeller), t0, order.NoRole, errs.ErrUnauthorized},
		{"stranger", caller(t, "someone", order.RoleCustomer), t0, order.NoRole, errs.ErrUnauthorized},
		{"admin ignores window", caller(t, "root", order.RoleAdmin), t0.Add(240 * time.Hour), order.RoleAdmin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := policy.AuthorizeItemCancellation(tt.caller, o, d, tt.now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestCancellationPolicy_EnsureSellerOwnsDetail(t *testing.T) {
	policy := services.NewCancellationPolicy(kernel.CancellationWindow{})
	o := newOrder(t, "seller-1")
	d := o.Details()[0]

	assert.NoError(t, policy.EnsureSellerOwnsDetail(caller(t, "seller-1", order.RoleSeller), d, "process"))
	assert.ErrorIs(t, policy.EnsureSellerOwnsDetail(caller(t, "customer-1", order.RoleCustomer), d, "process"), errs.ErrUnauthorized)
}

func TestAutoDeclinePolicy_Decline(t *testing.T) {
	policy := services.NewAutoDeclinePolicy(kernel.CancellationWindow{})
	o := newOrder(t, "seller-1", "seller-2")
	fresh := o.Details()[1]
	require.NoError(t, o.SetDetailProcessed(fresh.ID(), true, t0.Add(2*time.Hour)))
	require.NoError(t, o.SetDetailProcessed(fresh.ID(), false, t0.Add(3*time.Hour)))

	assert.Equal(t, 24*time.Hour, policy.StaleAfter())
	assert.Empty(t, policy.StaleDetails(o, t0.Add(24*time.Hour)))

	n, err := policy.Decline(o, t0.Add(25*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	stale := o.Details()[0]
	assert.Equal(t, order.Cancelled, stale.Status())
	assert.Equal(t, order.RoleSystem, stale.CancelledByRole())
	assert.Equal(t, services.AutoDeclineReason, stale.CancellationReason())
	// touched three hours later, so still inside its own window
	assert.Equal(t, order.Pending, fresh.Status())
	assert.False(t, o.IsCancelled())
}
