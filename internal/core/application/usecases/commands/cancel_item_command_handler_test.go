package commands_test

import (
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCancelItemHandler(store *fakeStore, now time.Time, sink *MockNotificationSink) commands.CancelItemCommandHandler {
	return commands.NewCancelItemCommandHandler(
		store.factory(),
		services.NewCancellationPolicy(kernel.CancellationWindow{}),
		&fixedClock{now: now},
		commands.NewCancellationNotifier(sink, discardLogger()),
	)
}

func TestCancelItemCommandHandler_PartialCancellation(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1", "seller-2")
	d1, d2 := o.Details()[0], o.Details()[1]

	toggle := commands.NewToggleProcessedCommandHandler(
		store.factory(),
		services.NewCancellationPolicy(kernel.CancellationWindow{}),
		&fixedClock{now: t0.Add(time.Hour)},
	)
	processCmd, _ := commands.NewToggleProcessedCommand(d1.ID(), mustCaller(t, "seller-1", order.RoleSeller), true)
	require.NoError(t, toggle.Handle(ctx, processCmd))

	sink := new(MockNotificationSink)
	sink.On("SendNotification", ctx, "seller-2", mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "Out of stock.")
	})).Return(nil).Once()

	cancelCmd, err := commands.NewCancelItemCommand(d2.ID(), mustCaller(t, "customer-1", order.RoleCustomer), "Out of stock.")
	require.NoError(t, err)
	h := newCancelItemHandler(store, t0.Add(2*time.Hour), sink)
	require.NoError(t, h.Handle(ctx, cancelCmd))

	got := store.load(t, o.ID())
	assert.Equal(t, order.Processed, got.Details()[0].Status())
	assert.Equal(t, order.Cancelled, got.Details()[1].Status())
	assert.Equal(t, order.RoleCustomer, got.Details()[1].CancelledByRole())
	assert.False(t, got.IsCancelled())
	assert.True(t, o.GrandTotal().Sub(d2.Subtotal()).Equal(got.GrandTotal()))
	sink.AssertExpectations(t)
}

func TestCancelItemCommandHandler_Roles(t *testing.T) {
	tests := []struct {
		name     string
		callerID string
		role     order.Role
		at       time.Duration
		wantRole order.Role
		wantErr  error
		notify   string
	}{
		{"owning seller", "seller-1", order.RoleSeller, time.Hour, order.RoleSeller, nil, "customer-1"},
		{"seller after window", "seller-1", order.RoleSeller, 30 * time.Hour, order.NoRole, errs.ErrWindowExpired, ""},
		{"admin after window", "admin-1", order.RoleAdmin, 30 * time.Hour, order.RoleAdmin, nil, "customer-1"},
		{"unrelated user", "seller-2", order.RoleSeller, time.Hour, order.NoRole, errs.ErrUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			store := newFakeStore()
			o := store.seed(t, "customer-1", t0, "seller-1", "seller-2")
			detail := o.Details()[0]

			sink := new(MockNotificationSink)
			if tt.notify != "" {
				sink.On("SendNotification", ctx, tt.notify, mock.Anything, mock.Anything).Return(nil).Once()
			}

			cmd, _ := commands.NewCancelItemCommand(detail.ID(), mustCaller(t, tt.callerID, tt.role), "")
			h := newCancelItemHandler(store, t0.Add(tt.at), sink)
			err := h.Handle(ctx, cmd)

			got := store.load(t, o.ID()).Details()[0]
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, order.Pending, got.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, got.CancelledByRole())
			sink.AssertExpectations(t)
		})
	}
}

func TestCancelItemCommandHandler_LastItemCancelsOrder(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1")

	sink := new(MockNotificationSink)
	sink.On("SendNotification", ctx, "seller-1", mock.Anything, mock.Anything).Return(nil).Once()

	cmd, _ := commands.NewCancelItemCommand(o.Details()[0].ID(), mustCaller(t, "customer-1", order.RoleCustomer), "")
	h := newCancelItemHandler(store, t0, sink)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, store.load(t, o.ID()).IsCancelled())
}

func TestCancelItemCommandHandler_UnknownDetail(t *testing.T) {
	h := newCancelItemHandler(newFakeStore(), t0, new(MockNotificationSink))
	cmd, _ := commands.NewCancelItemCommand(kernel.NewUUID(), mustCaller(t, "customer-1", order.RoleCustomer), "")

	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
}

func TestSellerCancelOrderDetailCommandHandler_Handle(t *testing.T) {
	newHandler := func(store *fakeStore, now time.Time, sink *MockNotificationSink) *commands.SellerCancelOrderDetailCommandHandler {
		h := commands.NewSellerCancelOrderDetailCommandHandler(
			store.factory(),
			services.NewCancellationPolicy(kernel.CancellationWindow{}),
			&fixedClock{now: now},
			commands.NewCancellationNotifier(sink, discardLogger()),
		)
		return &h
	}

	t.Run("not subject to the customer window", func(t *testing.T) {
		ctx := t.Context()
		store := newFakeStore()
		o := store.seed(t, "customer-1", t0, "seller-1")

		sink := new(MockNotificationSink)
		sink.On("SendNotification", ctx, "customer-1", mock.Anything, mock.Anything).Return(nil).Once()

		cmd, err := commands.NewSellerCancelOrderDetailCommand(o.Details()[0].ID(), mustCaller(t, "seller-1", order.RoleSeller), "discontinued")
		require.NoError(t, err)
		require.NoError(t, newHandler(store, t0.Add(100*time.Hour), sink).Handle(ctx, cmd))

		got := store.load(t, o.ID())
		assert.Equal(t, order.RoleSeller, got.Details()[0].CancelledByRole())
		assert.True(t, got.IsCancelled())
		sink.AssertExpectations(t)
	})

	t.Run("only the owning seller", func(t *testing.T) {
		store := newFakeStore()
		o := store.seed(t, "customer-1", t0, "seller-1")

		cmd, _ := commands.NewSellerCancelOrderDetailCommand(o.Details()[0].ID(), mustCaller(t, "customer-1", order.RoleCustomer), "")
		err := newHandler(store, t0, new(MockNotificationSink)).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("processed item cannot be cancelled", func(t *testing.T) {
		store := newFakeStore()
		o := store.seed(t, "customer-1", t0, "seller-1")
		require.NoError(t, o.SetDetailProcessed(o.Details()[0].ID(), true, t0))
		store.put(o)

		cmd, _ := commands.NewSellerCancelOrderDetailCommand(o.Details()[0].ID(), mustCaller(t, "seller-1", order.RoleSeller), "")
		err := newHandler(store, t0, new(MockNotificationSink)).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrAlreadyInTerminalState)
	})
}
