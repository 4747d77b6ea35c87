package cafes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/response"
	"github.com/smartcafe/cafehub/pkg/session"
)

// Router exposes the café registry behind the manage-cafes capability,
// which only super-admins hold.
func Router(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Use(session.RequireCapability(func(c access.CapabilitySet) bool { return c.ManageCafes }))

	r.Get("/", listHandler(svc))
	r.Post("/", createHandler(svc))
	r.Get("/{id}", getHandler(svc))
	r.Put("/{id}", updateHandler(svc))
	r.Post("/{id}/deactivate", deactivateHandler(svc))

	return r
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to list cafes")
			return
		}
		if list == nil {
			list = []Cafe{}
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

		c, err := svc.Create(r.Context(), in)
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusCreated, c)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, c)
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in UpdateInput
		if err := response.Decode(r, &in); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, c)
	}
}

func deactivateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Deactivate(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, c)
	}
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(w, http.StatusNotFound, "cafe-not-found", "no cafe with that id")
	case errors.Is(err, ErrInvalidCafe):
		response.Error(w, http.StatusBadRequest, "invalid-cafe", "cafe name is required")
	case errors.Is(err, ErrIDTaken):
		response.Error(w, http.StatusConflict, "cafe-exists", "a cafe with that name already exists")
	default:
		response.Error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}
