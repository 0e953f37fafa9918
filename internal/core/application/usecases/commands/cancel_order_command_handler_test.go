package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCancelOrderHandler(store *fakeStore, now time.Time, sink *MockNotificationSink) commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		store.factory(),
		kernel.CancellationWindow{},
		&fixedClock{now: now},
		commands.NewCancellationNotifier(sink, discardLogger()),
	)
}

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1", "seller-2")

	sink := new(MockNotificationSink)
	sink.On("SendNotification", ctx, "seller-1", mock.Anything, mock.Anything).Return(nil).Once()
	sink.On("SendNotification", ctx, "seller-2", mock.Anything, mock.Anything).Return(nil).Once()

	cmd, err := commands.NewCancelOrderCommand(o.ID(), mustCaller(t, "customer-1", order.RoleCustomer), "too slow")
	require.NoError(t, err)

	h := newCancelOrderHandler(store, t0.Add(3*time.Hour), sink)
	require.NoError(t, h.Handle(ctx, cmd))

	got := store.load(t, o.ID())
	assert.True(t, got.IsCancelled())
	assert.True(t, got.GrandTotal().IsZero())
	for _, d := range got.Details() {
		assert.Equal(t, order.Cancelled, d.Status())
		assert.Equal(t, order.RoleCustomer, d.CancelledByRole())
		assert.Equal(t, "too slow", d.CancellationReason())
	}
	sink.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_AdminOverride(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1")

	sink := new(MockNotificationSink)
	sink.On("SendNotification", ctx, "customer-1", mock.Anything, mock.Anything).Return(nil).Once()

	cmd, err := commands.NewCancelOrderCommand(o.ID(), mustCaller(t, "admin-1", order.RoleAdmin), "fraud check")
	require.NoError(t, err)

	h := newCancelOrderHandler(store, t0.Add(48*time.Hour), sink)
	require.NoError(t, h.Handle(ctx, cmd))

	got := store.load(t, o.ID())
	assert.True(t, got.IsCancelled())
	d := got.Details()[0]
	assert.Equal(t, order.Cancelled, d.Status())
	assert.Equal(t, order.RoleAdmin, d.CancelledByRole())
	assert.Equal(t, "fraud check", d.CancellationReason())
	sink.AssertExpectations(t)
	sink.AssertNotCalled(t, "SendNotification", mock.Anything, "seller-1", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_WindowExpired(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1")
	sink := new(MockNotificationSink)

	cmd, _ := commands.NewCancelOrderCommand(o.ID(), mustCaller(t, "customer-1", order.RoleCustomer), "")
	h := newCancelOrderHandler(store, t0.Add(25*time.Hour), sink)

	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrWindowExpired)
	got := store.load(t, o.ID())
	assert.False(t, got.IsCancelled())
	assert.Equal(t, order.Pending, got.Details()[0].Status())
	assert.Equal(t, 0, got.Version())
	assert.Equal(t, 0, store.commits)
	sink.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_NotOwner(t *testing.T) {
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1")

	cmd, _ := commands.NewCancelOrderCommand(o.ID(), mustCaller(t, "customer-2", order.RoleCustomer), "")
	h := newCancelOrderHandler(store, t0, new(MockNotificationSink))

	err := h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCancelOrderCommandHandler_Handle_MissingOrder(t *testing.T) {
	store := newFakeStore()

	cmd, _ := commands.NewCancelOrderCommand(kernel.NewUUID(), mustCaller(t, "customer-1", order.RoleCustomer), "")
	h := newCancelOrderHandler(store, t0, new(MockNotificationSink))

	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
}

func TestCancelOrderCommandHandler_Handle_ShippedOrder(t *testing.T) {
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1")
	require.NoError(t, o.SetDetailProcessed(o.Details()[0].ID(), true, t0))
	store.put(o)

	cmd, _ := commands.NewCancelOrderCommand(o.ID(), mustCaller(t, "customer-1", order.RoleCustomer), "")
	h := newCancelOrderHandler(store, t0.Add(time.Hour), new(MockNotificationSink))

	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrAlreadyInTerminalState)
}

func TestCancelOrderCommandHandler_Handle_RetriesOnceOnConflict(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1")
	store.conflicts[o.ID().String()] = 1

	sink := new(MockNotificationSink)
	sink.On("SendNotification", ctx, "seller-1", mock.Anything, mock.Anything).Return(nil).Once()

	cmd, _ := commands.NewCancelOrderCommand(o.ID(), mustCaller(t, "customer-1", order.RoleCustomer), "")
	h := newCancelOrderHandler(store, t0, sink)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.True(t, store.load(t, o.ID()).IsCancelled())
	sink.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_SecondConflictIsReturned(t *testing.T) {
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1")
	store.conflicts[o.ID().String()] = 2

	cmd, _ := commands.NewCancelOrderCommand(o.ID(), mustCaller(t, "customer-1", order.RoleCustomer), "")
	h := newCancelOrderHandler(store, t0, new(MockNotificationSink))

	err := h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	assert.False(t, store.load(t, o.ID()).IsCancelled())
}

func TestCancelOrderCommandHandler_Handle_NotificationFailureIsSuppressed(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	o := store.seed(t, "customer-1", t0, "seller-1")

	sink := new(MockNotificationSink)
	sink.On("SendNotification", ctx, "seller-1", mock.Anything, mock.Anything).
		Return(errs.NewTransientInfraError("send", errors.New("smtp down"))).Once()

	cmd, _ := commands.NewCancelOrderCommand(o.ID(), mustCaller(t, "customer-1", order.RoleCustomer), "")
	h := newCancelOrderHandler(store, t0, sink)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.True(t, store.load(t, o.ID()).IsCancelled())
	sink.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_BeginError(t *testing.T) {
	store := newFakeStore()
	store.beginErr = errors.New("begin error")

	cmd, _ := commands.NewCancelOrderCommand(kernel.NewUUID(), mustCaller(t, "customer-1", order.RoleCustomer), "")
	h := newCancelOrderHandler(store, t0, new(MockNotificationSink))

	require.EqualError(t, h.Handle(t.Context(), cmd), "begin error")
}

func TestCancelOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := newCancelOrderHandler(newFakeStore(), t0, new(MockNotificationSink))

	err := h.Handle(t.Context(), commands.CancelOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
}

func TestNewCancelOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.UUID{}, order.Caller{}, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
