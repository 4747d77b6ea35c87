package inventory

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/response"
	"github.com/smartcafe/cafehub/pkg/session"
)

// Router exposes inventory management behind the manage-inventory
// capability.
func Router(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Use(session.RequireCapability(func(c access.CapabilitySet) bool { return c.ManageInventory }))

	r.Get("/", listHandler(svc))
	r.Post("/", createHandler(svc))
	r.Get("/low-stock", lowStockHandler(svc))
	r.Post("/seed", seedHandler(svc))
	r.Put("/{id}", updateHandler(svc))
	r.Delete("/{id}", deleteHandler(svc))

	return r
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		list, err := svc.List(r.Context(), sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to list inventory")
			return
		}
		if list == nil {
			list = []Item{}
		}
		response.JSON(w, http.StatusOK, list)
	}
}

func lowStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		list, err := svc.LowStock(r.Context(), sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to list low stock")
			return
		}
		response.JSON(w, http.StatusOK, list)
	}
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := response.Decode(r, &in); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		sess, _ := session.FromContext(r.Context())
		item, err := svc.Create(r.Context(), sess.Identity, in)
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusCreated, item)
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in UpdateInput
		if err := response.Decode(r, &in); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		sess, _ := session.FromContext(r.Context())
		item, err := svc.Update(r.Context(), sess.Identity, chi.URLParam(r, "id"), in)
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, item)
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		if err := svc.Delete(r.Context(), sess.Identity, chi.URLParam(r, "id")); err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func seedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CafeID string `json:"cafeId"`
		}
		// The body is optional; an empty seed targets the actor's own café.
		_ = response.Decode(r, &req)

		sess, _ := session.FromContext(r.Context())
		n, err := svc.Seed(r.Context(), sess.Identity, req.CafeID)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to seed inventory")
			return
		}
		response.JSON(w, http.StatusOK, map[string]int{"seeded": n})
	}
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(w, http.StatusNotFound, "item-not-found", "no inventory item with that id")
	case errors.Is(err, ErrInvalidItem):
		response.Error(w, http.StatusBadRequest, "invalid-item", "invalid inventory item")
	default:
		response.Error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}
