package users

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/response"
	"github.com/smartcafe/cafehub/pkg/session"
)

// Router exposes the approval workflow. The whole subtree requires the
// approve-users capability on top of the admin flag.
func Router(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Use(session.RequireAdmin)
	r.Use(session.RequireCapability(func(c access.CapabilitySet) bool { return c.ApproveUsers }))

	r.Get("/", listHandler(svc))
	r.Post("/{id}/approve", approveHandler(svc))
	r.Put("/{id}/role", setRoleHandler(svc))
	r.Put("/{id}/cafe", assignCafeHandler(svc))

	return r
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		list, err := svc.List(r.Context(), sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to list users")
			return
		}
		response.JSON(w, http.StatusOK, list)
	}
}

func approveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		if err := svc.Approve(r.Context(), sess.Identity, chi.URLParam(r, "id")); err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "approved"})
	}
}

func setRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Role string `json:"role"`
		}
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		sess, _ := session.FromContext(r.Context())
		err := svc.SetRole(r.Context(), sess.Identity, chi.URLParam(r, "id"), access.Role(req.Role))
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"role": req.Role})
	}
}

func assignCafeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CafeID string `json:"cafeId"`
		}
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		sess, _ := session.FromContext(r.Context())
		if err := svc.AssignCafe(r.Context(), sess.Identity, chi.URLParam(r, "id"), req.CafeID); err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(w, http.StatusNotFound, "user-not-found", "no account with that id")
	case errors.Is(err, ErrRoleEscalation):
		response.Error(w, http.StatusForbidden, "insufficient-permissions", err.Error())
	case errors.Is(err, access.ErrInvalidProfile):
		response.Error(w, http.StatusBadRequest, "invalid-role", "unknown role value")
	default:
		response.Error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}
