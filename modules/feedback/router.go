package feedback

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/qrcode"
	"github.com/smartcafe/cafehub/pkg/response"
	"github.com/smartcafe/cafehub/pkg/session"
)

// PublicRouter exposes the unauthenticated submission endpoint reached
// from the printed QR code.
func PublicRouter(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/", submitHandler(svc))
	return r
}

// Router exposes the staff review surface behind the view-feedback
// capability. baseURL is the public origin encoded into QR codes.
func Router(svc *Service, baseURL string) http.Handler {
	r := chi.NewRouter()
	r.Use(session.RequireCapability(func(c access.CapabilitySet) bool { return c.ViewFeedback }))

	r.Get("/", listHandler(svc))
	r.Get("/summary", summaryHandler(svc))
	r.Get("/qr", qrHandler(baseURL))
	r.Delete("/{id}", deleteHandler(svc))

	return r
}

func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in SubmitInput
		if err := response.Decode(r, &in); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		e, err := svc.Submit(r.Context(), in)
		if err != nil {
			writeErr(w, err)
			return
		}
		response.JSON(w, http.StatusCreated, e)
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f Filter
		if v := r.URL.Query().Get("rating"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 5 {
				response.Error(w, http.StatusBadRequest, "invalid-filter", "rating must be 1 to 5")
				return
			}
			f.Rating = n
		}
		if v := r.URL.Query().Get("category"); v != "" {
			if !validCategory(v) {
				response.Error(w, http.StatusBadRequest, "invalid-filter", "unknown category")
				return
			}
			f.Category = v
		}

		sess, _ := session.FromContext(r.Context())
		list, err := svc.List(r.Context(), sess.Identity, f)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to list feedback")
			return
		}
		if list == nil {
			list = []Entry{}
		}
		response.JSON(w, http.StatusOK, list)
	}
}

func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		sum, err := svc.Summarize(r.Context(), sess.Identity)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to summarize feedback")
			return
		}
		response.JSON(w, http.StatusOK, sum)
	}
}

// qrHandler renders a printable QR code pointing customers at the café's
// feedback form.
func qrHandler(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())

		cafeID := sess.Identity.CafeID
		if requested := r.URL.Query().Get("cafeId"); requested != "" && sess.Identity.IsSuperAdmin() {
			cafeID = requested
		}

		target := fmt.Sprintf("%s/feedback?cafeId=%s", baseURL, url.QueryEscape(cafeID))
		png, err := qrcode.PNG(target, 0)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to generate QR code")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
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
	case errors.Is(err, ErrInvalidRating), errors.Is(err, ErrInvalidCategory):
		response.Error(w, http.StatusBadRequest, "invalid-feedback", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(w, http.StatusNotFound, "feedback-not-found", "no feedback entry with that id")
	default:
		response.Error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}
