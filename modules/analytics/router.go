package analytics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/response"
	"github.com/smartcafe/cafehub/pkg/session"
)

// Router exposes the analytics endpoints. The dashboard stats sit behind
// the view-dashboard capability every role has; the deeper reports
// require view-analytics, and the report export requires
// generate-reports.
func Router(svc *Service) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(session.RequireCapability(func(c access.CapabilitySet) bool { return c.ViewDashboard }))
		r.Get("/dashboard", dashboardHandler(svc))
	})

	r.Group(func(r chi.Router) {
		r.Use(session.RequireCapability(func(c access.CapabilitySet) bool { return c.ViewAnalytics }))
		r.Get("/sales-trend", salesTrendHandler(svc))
		r.Get("/top-items", topItemsHandler(svc))
		r.Get("/hourly", hourlyHandler(svc))
		r.Get("/categories", categoriesHandler(svc))
		r.Get("/forecast", forecastHandler(svc))
	})

	r.Group(func(r chi.Router) {
		r.Use(session.RequireCapability(func(c access.CapabilitySet) bool { return c.GenerateReports }))
		r.Get("/report", reportHandler(svc))
	})

	return r
}

func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		stats, lowStock, err := svc.Dashboard(r.Context(), sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to compute dashboard stats")
			return
		}
		response.JSON(w, http.StatusOK, map[string]any{
			"stats":         stats,
			"lowStockItems": lowStock,
		})
	}
}

func salesTrendHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if v := r.URL.Query().Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || (n != 7 && n != 30) {
				response.Error(w, http.StatusBadRequest, "invalid-window", "days must be 7 or 30")
				return
			}
			days = n
		}

		sess, _ := session.FromContext(r.Context())
		trend, err := svc.SalesTrend(r.Context(), sess.Identity, days)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to compute sales trend")
			return
		}
		response.JSON(w, http.StatusOK, trend)
	}
}

func topItemsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 5
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 50 {
				response.Error(w, http.StatusBadRequest, "invalid-limit", "limit must be 1 to 50")
				return
			}
			limit = n
		}
		byQuantity := r.URL.Query().Get("by") == "quantity"

		sess, _ := session.FromContext(r.Context())
		items, err := svc.TopItems(r.Context(), sess.Identity, limit, byQuantity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to compute top items")
			return
		}
		response.JSON(w, http.StatusOK, items)
	}
}

func hourlyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		buckets, err := svc.HourlyActivity(r.Context(), sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to compute hourly activity")
			return
		}
		response.JSON(w, http.StatusOK, buckets)
	}
}

func categoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		shares, err := svc.CategoryShares(r.Context(), sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to compute category shares")
			return
		}
		response.JSON(w, http.StatusOK, shares)
	}
}

func forecastHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		f, err := svc.Forecast(r.Context(), sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to compute forecast")
			return
		}
		response.JSON(w, http.StatusOK, f)
	}
}

// reportHandler bundles every figure into one payload for export.
func reportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		ctx := r.Context()

		stats, lowStock, err := svc.Dashboard(ctx, sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to build report")
			return
		}
		trend, err := svc.SalesTrend(ctx, sess.Identity, 30)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to build report")
			return
		}
		top, err := svc.TopItems(ctx, sess.Identity, 10, false)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to build report")
			return
		}
		forecast, err := svc.Forecast(ctx, sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to build report")
			return
		}

		response.JSON(w, http.StatusOK, map[string]any{
			"stats":         stats,
			"lowStockItems": lowStock,
			"salesTrend":    trend,
			"topItems":      top,
			"forecast":      forecast,
		})
	}
}
