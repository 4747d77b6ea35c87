package analytics

import (
	"context"
	"time"

	"github.com/smartcafe/cafehub/modules/feedback"
	"github.com/smartcafe/cafehub/modules/inventory"
	"github.com/smartcafe/cafehub/modules/orders"
	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/scope"
)

// OrderSource supplies the raw orders for analytics.
type OrderSource interface {
	List(ctx context.Context) ([]orders.Order, error)
}

// InventorySource supplies the raw inventory for the low stock figure.
type InventorySource interface {
	List(ctx context.Context) ([]inventory.Item, error)
}

// FeedbackSource supplies the raw feedback for the rating average.
type FeedbackSource interface {
	List(ctx context.Context) ([]feedback.Entry, error)
}

// Service runs the analytics computations over tenant-filtered data.
type Service struct {
	orders    OrderSource
	inventory InventorySource
	feedback  FeedbackSource
	scoper    *scope.Scoper
	now       func() time.Time
}

// NewService creates the analytics service.
func NewService(orderSrc OrderSource, invSrc InventorySource, fbSrc FeedbackSource, scoper *scope.Scoper) *Service {
	return &Service{orders: orderSrc, inventory: invSrc, feedback: fbSrc, scoper: scoper, now: time.Now}
}

func (s *Service) visibleOrders(ctx context.Context, actor access.Identity) ([]orders.Order, error) {
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return scope.Filter(s.scoper, all, actor), nil
}

// Dashboard returns the headline stats plus the low stock count.
func (s *Service) Dashboard(ctx context.Context, actor access.Identity) (DashboardStats, int, error) {
	visible, err := s.visibleOrders(ctx, actor)
	if err != nil {
		return DashboardStats{}, 0, err
	}
	stats := ComputeDashboard(visible, s.now())

	entries, err := s.feedback.List(ctx)
	if err != nil {
		return DashboardStats{}, 0, err
	}
	var ratingSum, ratingCount int
	for _, e := range scope.Filter(s.scoper, entries, actor) {
		ratingSum += e.Rating
		ratingCount++
	}
	if ratingCount > 0 {
		stats.AverageRating = float64(ratingSum) / float64(ratingCount)
	}

	items, err := s.inventory.List(ctx)
	if err != nil {
		return DashboardStats{}, 0, err
	}
	lowStock := 0
	for _, item := range scope.Filter(s.scoper, items, actor) {
		if item.Low() {
			lowStock++
		}
	}
	return stats, lowStock, nil
}

// SalesTrend returns the daily revenue buckets for the trailing window.
func (s *Service) SalesTrend(ctx context.Context, actor access.Identity, days int) ([]DailySales, error) {
	visible, err := s.visibleOrders(ctx, actor)
	if err != nil {
		return nil, err
	}
	return ComputeSalesTrend(visible, s.now(), days), nil
}

// TopItems returns the best sellers ranking, by revenue or by quantity.
func (s *Service) TopItems(ctx context.Context, actor access.Identity, limit int, byQuantity bool) ([]TopItem, error) {
	visible, err := s.visibleOrders(ctx, actor)
	if err != nil {
		return nil, err
	}
	if byQuantity {
		return ComputeTopItemsByQuantity(visible, limit), nil
	}
	return ComputeTopItems(visible, limit), nil
}

// HourlyActivity returns order volume per hour of day.
func (s *Service) HourlyActivity(ctx context.Context, actor access.Identity) ([]HourlyActivity, error) {
	visible, err := s.visibleOrders(ctx, actor)
	if err != nil {
		return nil, err
	}
	return ComputeHourlyActivity(visible), nil
}

// CategoryShares returns the revenue split by item category.
func (s *Service) CategoryShares(ctx context.Context, actor access.Identity) ([]CategoryShare, error) {
	visible, err := s.visibleOrders(ctx, actor)
	if err != nil {
		return nil, err
	}
	return ComputeCategoryShares(visible), nil
}

// Forecast returns the week-over-week revenue trend.
func (s *Service) Forecast(ctx context.Context, actor access.Identity) (Forecast, error) {
	visible, err := s.visibleOrders(ctx, actor)
	if err != nil {
		return Forecast{}, err
	}
	return ComputeForecast(visible, s.now()), nil
}
