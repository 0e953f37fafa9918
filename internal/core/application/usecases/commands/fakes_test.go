package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"sort"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type MockNotificationSink struct{ mock.Mock }

func (m *MockNotificationSink) SendNotification(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// storedOrder is a committed row set: the order and its details as records.
type storedOrder struct {
	rec     order.OrderRecord
	details []order.DetailRecord
}

func snapshot(o *order.Order, version int) storedOrder {
	s := storedOrder{rec: order.OrderRecord{
		ID:           o.ID(),
		CustomerID:   o.CustomerID(),
		ContactPhone: o.ContactPhone(),
		GrandTotal:   o.GrandTotal(),
		OrderDate:    o.OrderDate(),
		ShippedDate:  o.ShippedDate(),
		Shipped:      o.Shipped(),
		IsCancelled:  o.IsCancelled(),
		Version:      version,
	}}
	for _, d := range o.Details() {
		s.details = append(s.details, order.DetailRecord{
			ID:                 d.ID(),
			OrderID:            d.OrderID(),
			Product:            d.Product(),
			Quantity:           d.Quantity(),
			ProductOwner:       d.ProductOwner(),
			Customer:           d.Customer(),
			CustomerNumber:     d.CustomerNumber(),
			Status:             d.Status(),
			CancellationReason: d.CancellationReason(),
			CancelledByRole:    d.CancelledByRole(),
			ReturnReason:       d.ReturnReason(),
			ReturnDate:         d.ReturnDate(),
			UpdatedAt:          d.UpdatedAt(),
			Version:            d.Version(),
		})
	}
	return s
}

func (s storedOrder) restore() (*order.Order, error) {
	details := make([]*order.OrderDetail, 0, len(s.details))
	for _, rec := range s.details {
		d, err := order.RestoreOrderDetail(rec)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return order.RestoreOrder(s.rec, details)
}

// fakeStore is an in-memory order table with optimistic versioning on the order row.
type fakeStore struct {
	mu      sync.Mutex
	rows    map[string]storedOrder
	commits int

	beginErr error
	// conflicts makes the next n updates of an order fail as if another writer won.
	conflicts map[string]int
	updateErr map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:      make(map[string]storedOrder),
		conflicts: make(map[string]int),
		updateErr: make(map[string]error),
	}
}

func (s *fakeStore) seed(t *testing.T, customer string, orderDate time.Time, sellers ...string) *order.Order {
	t.Helper()
	details := make([]*order.OrderDetail, 0, len(sellers))
	for i, seller := range sellers {
		d, err := order.NewOrderDetail(kernel.NewUUID(), order.ProductSnapshot{
			ProductID: "p-" + seller,
			Name:      "Product " + seller,
			Price:     decimal.NewFromInt(int64(10 * (i + 1))),
		}, 1, seller)
		require.NoError(t, err)
		details = append(details, d)
	}
	o, err := order.NewOrder(kernel.NewUUID(), customer, "555-0101", orderDate, details)
	require.NoError(t, err)
	s.put(o)
	return o
}

func (s *fakeStore) put(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[o.ID().String()] = snapshot(o, o.Version())
}

func (s *fakeStore) load(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	s.mu.Lock()
	row, ok := s.rows[id.String()]
	s.mu.Unlock()
	require.True(t, ok, "order %s not stored", id)
	o, err := row.restore()
	require.NoError(t, err)
	return o
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *fakeStore) factory() commands.OrderUoWFactory { return orderUoWFactory{s} }
func (s *fakeStore) batch() commands.BatchOrderUoWFactory { return batchUoWFactory{s} }

type orderUoWFactory struct{ store *fakeStore }

func (f orderUoWFactory) Create() commands.OrderUoW { return &fakeUoW{store: f.store} }

type batchUoWFactory struct{ store *fakeStore }

func (f batchUoWFactory) Create() commands.BatchOrderUoW { return &fakeUoW{store: f.store} }

// fakeUoW buffers writes until Commit.
type fakeUoW struct {
	store      *fakeStore
	active     bool
	pending    map[string]storedOrder
	savepoints map[string]map[string]storedOrder
}

func (u *fakeUoW) Begin(context.Context) error {
	if u.store.beginErr != nil {
		return u.store.beginErr
	}
	u.active = true
	u.pending = make(map[string]storedOrder)
	u.savepoints = make(map[string]map[string]storedOrder)
	return nil
}

func (u *fakeUoW) Commit(context.Context) error {
	if !u.active {
		return errors.New("no transaction")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	maps.Copy(u.store.rows, u.pending)
	u.store.commits++
	u.active = false
	return nil
}

func (u *fakeUoW) Rollback(context.Context) error {
	if !u.active {
		return errors.New("no transaction")
	}
	u.active = false
	u.pending = nil
	return nil
}

func (u *fakeUoW) SavePoint(_ context.Context, name string) error {
	u.savepoints[name] = maps.Clone(u.pending)
	return nil
}

func (u *fakeUoW) RollbackTo(_ context.Context, name string) error {
	sp, ok := u.savepoints[name]
	if !ok {
		return errors.New("unknown savepoint " + name)
	}
	u.pending = maps.Clone(sp)
	return nil
}

func (u *fakeUoW) OrderRepository() ports.OrderRepository { return &fakeRepo{uow: u} }

type fakeRepo struct{ uow *fakeUoW }

func (r *fakeRepo) rows() []storedOrder {
	r.uow.store.mu.Lock()
	merged := maps.Clone(r.uow.store.rows)
	r.uow.store.mu.Unlock()
	maps.Copy(merged, r.uow.pending)

	out := make([]storedOrder, 0, len(merged))
	for _, row := range merged {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].rec.OrderDate.Before(out[j].rec.OrderDate) })
	return out
}

func (r *fakeRepo) row(id kernel.UUID) (storedOrder, bool) {
	if row, ok := r.uow.pending[id.String()]; ok {
		return row, true
	}
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	row, ok := r.uow.store.rows[id.String()]
	return row, ok
}

func (r *fakeRepo) Add(_ context.Context, o *order.Order) error {
	if _, exists := r.row(o.ID()); exists {
		return errors.New("duplicate key")
	}
	r.uow.pending[o.ID().String()] = snapshot(o, 0)
	return nil
}

func (r *fakeRepo) Update(_ context.Context, o *order.Order) error {
	key := o.ID().String()
	current, ok := r.row(o.ID())
	if !ok {
		return errs.NewObjectNotFoundError("order", key)
	}
	if err := r.uow.store.updateErr[key]; err != nil {
		return err
	}
	if r.uow.store.conflicts[key] > 0 {
		r.uow.store.conflicts[key]--
		return errs.NewConcurrencyConflictError("order", key, o.Version())
	}
	if current.rec.Version != o.Version() {
		return errs.NewConcurrencyConflictError("order", key, o.Version())
	}
	r.uow.pending[key] = snapshot(o, o.Version()+1)
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	row, ok := r.row(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return row.restore()
}

func (r *fakeRepo) GetByDetailID(_ context.Context, detailID kernel.UUID) (*order.Order, error) {
	for _, row := range r.rows() {
		for _, d := range row.details {
			if d.ID.IsEqual(detailID) {
				return row.restore()
			}
		}
	}
	return nil, errs.NewObjectNotFoundError("order detail", detailID.String())
}

func (r *fakeRepo) list(keep func(storedOrder) bool) ([]*order.Order, error) {
	var out []*order.Order
	for _, row := range r.rows() {
		if !keep(row) {
			continue
		}
		o, err := row.restore()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeRepo) ListByCustomer(_ context.Context, customerID string) ([]*order.Order, error) {
	return r.list(func(row storedOrder) bool { return row.rec.CustomerID == customerID })
}

func (r *fakeRepo) ListUnshippedByCustomer(_ context.Context, customerID string) ([]*order.Order, error) {
	return r.list(func(row storedOrder) bool {
		return row.rec.CustomerID == customerID && !row.rec.Shipped && !row.rec.IsCancelled
	})
}

func (r *fakeRepo) ListWithStalePendingDetails(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	return r.list(func(row storedOrder) bool {
		for _, d := range row.details {
			if d.Status == order.Pending && d.UpdatedAt.Before(cutoff) {
				return true
			}
		}
		return false
	})
}

func mustCaller(t *testing.T, id string, role order.Role) order.Caller {
	t.Helper()
	c, err := order.NewCaller(id, role)
	require.NoError(t, err)
	return c
}
