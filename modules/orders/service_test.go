package orders_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcafe/cafehub/modules/orders"
	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/scope"
)

type memStore struct {
	byID map[string]orders.Order
}

func newMemStore() *memStore { return &memStore{byID: map[string]orders.Order{}} }

func (m *memStore) Insert(_ context.Context, o orders.Order) error {
	m.byID[o.ID] = o
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (orders.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	return o, nil
}

func (m *memStore) List(context.Context) ([]orders.Order, error) {
	out := make([]orders.Order, 0, len(m.byID))
	for _, o := range m.byID {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) Update(_ context.Context, o orders.Order) error {
	if _, ok := m.byID[o.ID]; !ok {
		return orders.ErrNotFound
	}
	m.byID[o.ID] = o
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return orders.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

var (
	staffA = access.Identity{ID: "s1", Email: "s1@x.dev", Role: access.RoleStaff, CafeID: "cafe-a", Approval: access.ApprovalApproved}
	staffB = access.Identity{ID: "s2", Email: "s2@x.dev", Role: access.RoleStaff, CafeID: "cafe-b", Approval: access.ApprovalApproved}
	superA = access.Identity{ID: "sa", Email: "sa@x.dev", Role: access.RoleSuperAdmin, Approval: access.ApprovalApproved}
)

func newTestService() (*orders.Service, *memStore) {
	store := newMemStore()
	scoper := scope.NewScoper(access.NewResolver("owner@smartcafe.dev"))
	return orders.NewService(store, scoper, nil), store
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("computes subtotals and total", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		o, err := svc.Create(context.Background(), staffA, orders.CreateInput{
			CustomerName: "Asha",
			Items: []orders.Item{
				{Name: "Masala Chai", Quantity: 2, Price: 30},
				{Name: "Samosa", Quantity: 3, Price: 25.5},
			},
			PaymentMethod: orders.MethodCash,
		})
		require.NoError(t, err)

		assert.Equal(t, 60.0, o.Items[0].Subtotal)
		assert.Equal(t, 76.5, o.Items[1].Subtotal)
		assert.Equal(t, 136.5, o.Total)
		assert.Equal(t, orders.StatusPending, o.Status)
		assert.Equal(t, orders.PaymentUnpaid, o.PaymentStatus)
		assert.Equal(t, "cafe-a", o.CafeID)
		assert.Regexp(t, `^ORD-\d{6}-[0-9A-F]{4}$`, o.OrderNumber)
	})

	t.Run("stamps the actor cafe over the requested one", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		o, err := svc.Create(context.Background(), staffA, orders.CreateInput{
			CustomerName: "Ravi",
			Items:        []orders.Item{{Name: "Coffee", Quantity: 1, Price: 50}},
			CafeID:       "cafe-z",
		})
		require.NoError(t, err)
		assert.Equal(t, "cafe-a", o.CafeID)
	})

	t.Run("rejects missing customer name", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		_, err := svc.Create(context.Background(), staffA, orders.CreateInput{
			CustomerName: "  ",
			Items:        []orders.Item{{Name: "Chai", Quantity: 1, Price: 10}},
		})
		assert.ErrorIs(t, err, orders.ErrMissingCustomer)
	})

	t.Run("rejects empty and zero total orders", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		_, err := svc.Create(context.Background(), staffA, orders.CreateInput{CustomerName: "Ravi"})
		assert.ErrorIs(t, err, orders.ErrEmptyOrder)

		_, err = svc.Create(context.Background(), staffA, orders.CreateInput{
			CustomerName: "Ravi",
			Items:        []orders.Item{{Name: "Water", Quantity: 1, Price: 0}},
		})
		assert.ErrorIs(t, err, orders.ErrEmptyOrder)
	})

	t.Run("rejects bad items", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		for _, item := range []orders.Item{
			{Name: "", Quantity: 1, Price: 10},
			{Name: "Chai", Quantity: 0, Price: 10},
			{Name: "Chai", Quantity: 1, Price: -1},
		} {
			_, err := svc.Create(context.Background(), staffA, orders.CreateInput{
				CustomerName: "Ravi",
				Items:        []orders.Item{item},
			})
			assert.ErrorIs(t, err, orders.ErrInvalidItem)
		}
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		_, err := svc.Create(context.Background(), staffA, orders.CreateInput{
			CustomerName:  "Ravi",
			Items:         []orders.Item{{Name: "Chai", Quantity: 1, Price: 10}},
			PaymentMethod: "cheque",
		})
		assert.ErrorIs(t, err, orders.ErrInvalidPayment)
	})
}

func TestListIsolation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	in := orders.CreateInput{
		CustomerName: "Ravi",
		Items:        []orders.Item{{Name: "Chai", Quantity: 1, Price: 10}},
	}

	a, err := svc.Create(context.Background(), staffA, in)
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), staffB, in)
	require.NoError(t, err)

	gotA, err := svc.List(context.Background(), staffA, "")
	require.NoError(t, err)
	require.Len(t, gotA, 1)
	assert.Equal(t, a.ID, gotA[0].ID)

	gotB, err := svc.List(context.Background(), staffB, "")
	require.NoError(t, err)
	require.Len(t, gotB, 1)
	assert.Equal(t, b.ID, gotB[0].ID)

	gotAll, err := svc.List(context.Background(), superA, "")
	require.NoError(t, err)
	assert.Len(t, gotAll, 2)

	pending, err := svc.List(context.Background(), staffA, orders.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	completed, err := svc.List(context.Background(), staffA, orders.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, completed)

	_, err = svc.List(context.Background(), staffA, "shipped")
	assert.ErrorIs(t, err, orders.ErrInvalidStatus)
}

func TestGetHidesForeignOrders(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	o, err := svc.Create(context.Background(), staffA, orders.CreateInput{
		CustomerName: "Ravi",
		Items:        []orders.Item{{Name: "Chai", Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), staffB, o.ID)
	assert.ErrorIs(t, err, orders.ErrNotFound)

	got, err := svc.Get(context.Background(), superA, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestSetStatus(t *testing.T) {
	t.Parallel()

	t.Run("completion stamps completedAt", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		o, err := svc.Create(context.Background(), staffA, orders.CreateInput{
			CustomerName: "Ravi",
			Items:        []orders.Item{{Name: "Chai", Quantity: 1, Price: 10}},
		})
		require.NoError(t, err)

		for _, status := range []string{orders.StatusPreparing, orders.StatusReady, orders.StatusCompleted} {
			o, err = svc.SetStatus(context.Background(), staffA, o.ID, status)
			require.NoError(t, err)
		}
		require.NotNil(t, o.CompletedAt)
		assert.WithinDuration(t, time.Now(), *o.CompletedAt, time.Minute)
	})

	t.Run("terminal orders reject transitions", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		o, err := svc.Create(context.Background(), staffA, orders.CreateInput{
			CustomerName: "Ravi",
			Items:        []orders.Item{{Name: "Chai", Quantity: 1, Price: 10}},
		})
		require.NoError(t, err)

		_, err = svc.SetStatus(context.Background(), staffA, o.ID, orders.StatusCancelled)
		require.NoError(t, err)

		_, err = svc.SetStatus(context.Background(), staffA, o.ID, orders.StatusPending)
		assert.ErrorIs(t, err, orders.ErrTerminalOrder)
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		_, err := svc.SetStatus(context.Background(), staffA, "any", "shipped")
		assert.ErrorIs(t, err, orders.ErrInvalidStatus)
	})
}

func TestSetPayment(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	o, err := svc.Create(context.Background(), staffA, orders.CreateInput{
		CustomerName: "Ravi",
		Items:        []orders.Item{{Name: "Chai", Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)

	o, err = svc.SetPayment(context.Background(), staffA, o.ID, orders.PaymentPaid, orders.MethodOnline)
	require.NoError(t, err)
	assert.Equal(t, orders.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, orders.MethodOnline, o.PaymentMethod)

	_, err = svc.SetPayment(context.Background(), staffA, o.ID, "refunded", "")
	assert.ErrorIs(t, err, orders.ErrInvalidPayment)
}
