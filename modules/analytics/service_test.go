package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcafe/cafehub/modules/analytics"
	"github.com/smartcafe/cafehub/modules/feedback"
	"github.com/smartcafe/cafehub/modules/inventory"
	"github.com/smartcafe/cafehub/modules/orders"
	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/scope"
)

type fakeOrders []orders.Order

func (f fakeOrders) List(context.Context) ([]orders.Order, error) { return f, nil }

type fakeInventory []inventory.Item

func (f fakeInventory) List(context.Context) ([]inventory.Item, error) { return f, nil }

type fakeFeedback []feedback.Entry

func (f fakeFeedback) List(context.Context) ([]feedback.Entry, error) { return f, nil }

func TestDashboardScoping(t *testing.T) {
	t.Parallel()

	orderData := fakeOrders{
		{Status: orders.StatusCompleted, Total: 100, CreatedAt: now, CafeID: "cafe-a"},
		{Status: orders.StatusCompleted, Total: 999, CreatedAt: now, CafeID: "cafe-b"},
	}
	invData := fakeInventory{
		{Name: "Chai", Quantity: 2, MinStock: 10, CafeID: "cafe-a"},
		{Name: "Coffee", Quantity: 50, MinStock: 10, CafeID: "cafe-a"},
		{Name: "Samosa", Quantity: 0, MinStock: 5, CafeID: "cafe-b"},
	}
	fbData := fakeFeedback{
		{Rating: 5, CafeID: "cafe-a"},
		{Rating: 3, CafeID: "cafe-a"},
		{Rating: 1, CafeID: "cafe-b"},
	}

	scoper := scope.NewScoper(access.NewResolver("owner@smartcafe.dev"))
	svc := analytics.NewService(orderData, invData, fbData, scoper)

	staffA := access.Identity{ID: "s1", Email: "s1@x.dev", Role: access.RoleStaff, CafeID: "cafe-a", Approval: access.ApprovalApproved}
	stats, lowStock, err := svc.Dashboard(context.Background(), staffA)
	require.NoError(t, err)

	assert.Equal(t, 100.0, stats.TotalRevenue, "other cafés' revenue stays invisible")
	assert.Equal(t, 1, stats.TotalOrders)
	assert.InDelta(t, 4.0, stats.AverageRating, 1e-9)
	assert.Equal(t, 1, lowStock)

	superAdmin := access.Identity{ID: "sa", Email: "sa@x.dev", Role: access.RoleSuperAdmin, Approval: access.ApprovalApproved}
	stats, lowStock, err = svc.Dashboard(context.Background(), superAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1099.0, stats.TotalRevenue)
	assert.Equal(t, 2, lowStock)
}
