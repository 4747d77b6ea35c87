package orders

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/response"
	"github.com/smartcafe/cafehub/pkg/session"
)

// Router exposes the order workflow behind the manage-orders capability.
func Router(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Use(session.RequireCapability(func(c access.CapabilitySet) bool { return c.ManageOrders }))

	r.Get("/", listHandler(svc))
	r.Post("/", createHandler(svc))
	r.Get("/{id}", getHandler(svc))
	r.Put("/{id}/status", setStatusHandler(svc))
	r.Put("/{id}/payment", setPaymentHandler(svc))
	r.Delete("/{id}", deleteHandler(svc))

	return r
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		list, err := svc.List(r.Context(), sess.Identity, r.URL.Query().Get("status"))
		if err != nil {
			writeErr(w, err)
			return
		}
		if list == nil {
			list = []Order{}
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
		o, err := svc.Create(r.Context(), sess.Identity, in)
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusCreated, o)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		o, err := svc.Get(r.Context(), sess.Identity, chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, o)
	}
}

func setStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		sess, _ := session.FromContext(r.Context())
		o, err := svc.SetStatus(r.Context(), sess.Identity, chi.URLParam(r, "id"), req.Status)
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, o)
	}
}

func setPaymentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PaymentStatus string `json:"paymentStatus"`
			PaymentMethod string `json:"paymentMethod"`
		}
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		sess, _ := session.FromContext(r.Context())
		o, err := svc.SetPayment(r.Context(), sess.Identity, chi.URLParam(r, "id"), req.PaymentStatus, req.PaymentMethod)
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusOK, o)
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

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(w, http.StatusNotFound, "order-not-found", "no order with that id")
	case errors.Is(err, ErrEmptyOrder), errors.Is(err, ErrInvalidItem),
		errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidPayment):
		response.Error(w, http.StatusBadRequest, "invalid-order", err.Error())
	case errors.Is(err, ErrTerminalOrder):
		response.Error(w, http.StatusConflict, "order-finalized", err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}
