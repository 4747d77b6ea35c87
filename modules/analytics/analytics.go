// Package analytics derives reporting figures from order, inventory and
// feedback data: dashboard stats, sales trends, top sellers, hourly
// activity and a simple revenue forecast. All computations are pure; the
// service layer supplies tenant-filtered records.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/smartcafe/cafehub/modules/orders"
)

// DashboardStats is the headline figure set for the dashboard cards.
// AverageRating is filled by the service from feedback data; everything
// else derives from orders.
type DashboardStats struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TodayRevenue      float64 `json:"todayRevenue"`
	TodayRevenueINR   string  `json:"todayRevenueInr"`
	TodayOrders       int     `json:"todayOrders"`
	PendingOrders     int     `json:"pendingOrders"`
	CompletedOrders   int     `json:"completedOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	AverageRating     float64 `json:"averageRating"`
}

// DailySales is one day's bucket in a sales trend.
type DailySales struct {
	Date       string  `json:"date"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"orderCount"`
}

// TopItem is one entry in the best-sellers ranking.
type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// HourlyActivity is one hour's bucket of order volume.
type HourlyActivity struct {
	Hour       int `json:"hour"`
	OrderCount int `json:"orderCount"`
}

// CategoryShare is one slice of the category distribution.
type CategoryShare struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Share    float64 `json:"share"`
}

// Forecast directions.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Forecast compares the last seven days of revenue against the seven
// before them and projects the coming week on the observed trend. The
// projection fields stay zero when the prior week had no revenue.
type Forecast struct {
	LastWeekRevenue  float64 `json:"lastWeekRevenue"`
	LastWeekOrders   int     `json:"lastWeekOrders"`
	PrevWeekRevenue  float64 `json:"prevWeekRevenue"`
	PrevWeekOrders   int     `json:"prevWeekOrders"`
	TrendPercent     float64 `json:"trendPercent"`
	Direction        string  `json:"direction"`
	ProjectedRevenue float64 `json:"projectedRevenue"`
	ProjectedOrders  int     `json:"projectedOrders"`
}

// counted reports whether an order contributes to revenue figures.
// Cancelled orders never do.
func counted(o orders.Order) bool {
	return o.Status != orders.StatusCancelled
}

// ComputeDashboard derives the headline stats for a single day.
func ComputeDashboard(all []orders.Order, now time.Time) DashboardStats {
	var stats DashboardStats
	year, month, day := now.Date()

	for _, o := range all {
		switch o.Status {
		case orders.StatusPending, orders.StatusPreparing, orders.StatusReady:
			stats.PendingOrders++
		case orders.StatusCompleted:
			stats.CompletedOrders++
		}

		if !counted(o) {
			continue
		}
		stats.TotalOrders++
		stats.TotalRevenue += o.Total

		oy, om, od := o.CreatedAt.Date()
		if oy != year || om != month || od != day {
			continue
		}
		stats.TodayOrders++
		stats.TodayRevenue += o.Total
	}

	if stats.TodayOrders > 0 {
		stats.AverageOrderValue = stats.TodayRevenue / float64(stats.TodayOrders)
	}
	stats.TodayRevenueINR = FormatINR(stats.TodayRevenue)
	return stats
}

// ComputeSalesTrend buckets revenue per day over the trailing window of
// the given length, oldest day first. Days without orders appear as zero
// buckets.
func ComputeSalesTrend(all []orders.Order, now time.Time, days int) []DailySales {
	if days <= 0 {
		return nil
	}

	buckets := make([]DailySales, days)
	index := make(map[string]int, days)
	start := now.AddDate(0, 0, -(days - 1))
	for i := range buckets {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = DailySales{Date: date}
		index[date] = i
	}

	for _, o := range all {
		if !counted(o) {
			continue
		}
		if i, ok := index[o.CreatedAt.Format("2006-01-02")]; ok {
			buckets[i].Revenue += o.Total
			buckets[i].OrderCount++
		}
	}
	return buckets
}

// ComputeTopItemsByQuantity ranks items by units sold, revenue breaking
// ties.
func ComputeTopItemsByQuantity(all []orders.Order, limit int) []TopItem {
	out := ComputeTopItems(all, 0)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ComputeTopItems ranks items by revenue, quantity breaking ties, and
// returns at most limit entries.
func ComputeTopItems(all []orders.Order, limit int) []TopItem {
	type agg struct {
		quantity int
		revenue  float64
	}
	byName := make(map[string]*agg)

	for _, o := range all {
		if !counted(o) {
			continue
		}
		for _, item := range o.Items {
			a, ok := byName[item.Name]
			if !ok {
				a = &agg{}
				byName[item.Name] = a
			}
			a.quantity += item.Quantity
			a.revenue += item.Subtotal
		}
	}

	out := make([]TopItem, 0, len(byName))
	for name, a := range byName {
		out = append(out, TopItem{Name: name, Quantity: a.quantity, Revenue: a.revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ComputeHourlyActivity buckets order volume into the 24 hours of the day.
func ComputeHourlyActivity(all []orders.Order) []HourlyActivity {
	buckets := make([]HourlyActivity, 24)
	for i := range buckets {
		buckets[i].Hour = i
	}
	for _, o := range all {
		if counted(o) {
			buckets[o.CreatedAt.Hour()].OrderCount++
		}
	}
	return buckets
}

// ComputeCategoryShares splits revenue by item category, taking the first
// word of the item name as its category. Shares sum to 1 when there is
// any revenue.
func ComputeCategoryShares(all []orders.Order) []CategoryShare {
	byCategory := make(map[string]float64)
	var total float64

	for _, o := range all {
		if !counted(o) {
			continue
		}
		for _, item := range o.Items {
			category := item.Name
			if fields := strings.Fields(item.Name); len(fields) > 0 {
				category = fields[0]
			}
			byCategory[category] += item.Subtotal
			total += item.Subtotal
		}
	}

	out := make([]CategoryShare, 0, len(byCategory))
	for category, revenue := range byCategory {
		share := 0.0
		if total > 0 {
			share = revenue / total
		}
		out = append(out, CategoryShare{Category: category, Revenue: revenue, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ComputeForecast compares the trailing seven days against the seven
// before them. A flat prior week reads as stable regardless of the
// current one, avoiding a division by zero blowing the trend up.
func ComputeForecast(all []orders.Order, now time.Time) Forecast {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var f Forecast
	for _, o := range all {
		if !counted(o) {
			continue
		}
		switch {
		case o.CreatedAt.After(weekAgo):
			f.LastWeekRevenue += o.Total
			f.LastWeekOrders++
		case o.CreatedAt.After(twoWeeksAgo):
			f.PrevWeekRevenue += o.Total
			f.PrevWeekOrders++
		}
	}

	if f.PrevWeekRevenue > 0 {
		f.TrendPercent = (f.LastWeekRevenue - f.PrevWeekRevenue) / f.PrevWeekRevenue * 100
		growth := 1 + f.TrendPercent/100
		f.ProjectedRevenue = f.LastWeekRevenue * growth
		f.ProjectedOrders = int(float64(f.LastWeekOrders)*growth + 0.5)
	}

	switch {
	case f.TrendPercent > 5:
		f.Direction = TrendUp
	case f.TrendPercent < -5:
		f.Direction = TrendDown
	default:
		f.Direction = TrendStable
	}
	return f
}
