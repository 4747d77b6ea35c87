package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartcafe/cafehub/pkg/response"
	"github.com/smartcafe/cafehub/pkg/session"
)

const stateCookie = "cafehub_oauth_state"

// Router exposes the sign-up, sign-in and sign-out endpoints plus the
// Google OAuth flow when configured. All routes are public by nature.
func Router(svc *Service, sessions *session.Manager, google *GoogleProvider) http.Handler {
	r := chi.NewRouter()

	r.Post("/signup", signUpHandler(svc, sessions))
	r.Post("/signin", signInHandler(svc, sessions))
	r.Post("/signout", signOutHandler(sessions))
	r.Get("/me", meHandler(sessions))

	if google != nil {
		r.Get("/google", googleStartHandler(google))
		r.Get("/google/callback", googleCallbackHandler(google, sessions))
	}

	return r
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// sessionView is the client-facing session shape: state, identity and the
// resolved capability set. The token travels only in the cookie.
type sessionView struct {
	State        string `json:"state"`
	UserID       string `json:"userId,omitempty"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	CafeID       string `json:"cafeId,omitempty"`
	IsAdmin      bool   `json:"isAdmin"`
	Capabilities any    `json:"capabilities"`
}

func viewOf(sess *session.Session) sessionView {
	return sessionView{
		State:        string(sess.State),
		UserID:       sess.Identity.ID,
		Email:        sess.Identity.Email,
		Name:         sess.Identity.Name,
		Role:         string(sess.Identity.Role),
		CafeID:       sess.Identity.CafeID,
		IsAdmin:      sess.Admin(),
		Capabilities: sess.Allowed(),
	}
}

func signUpHandler(svc *Service, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		sess, err := svc.SignUp(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			writeAuthErr(w, err)
			return
		}
		if err := sessions.Issue(w, sess); err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to issue session")
			return
		}
		response.JSON(w, http.StatusCreated, viewOf(sess))
	}
}

func signInHandler(svc *Service, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid-body", "invalid request body")
			return
		}

		sess, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAuthErr(w, err)
			return
		}
		if err := sessions.Issue(w, sess); err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to issue session")
			return
		}
		response.JSON(w, http.StatusOK, viewOf(sess))
	}
}

func signOutHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Destroy(r.Context(), w, r); err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to sign out")
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
	}
}

// meHandler reports the current session so the client can render without
// guessing. Anonymous requests get the unauthenticated shape, not an error.
func meHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.FromRequest(r.Context(), r)
		if err != nil {
			response.JSON(w, http.StatusOK, sessionView{State: string(session.StateUnauthenticated)})
			return
		}
		response.JSON(w, http.StatusOK, viewOf(sess))
	}
}

func googleStartHandler(google *GoogleProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := NewState()
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to start sign-in")
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   300,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, google.AuthURL(state), http.StatusTemporaryRedirect)
	}
}

func googleCallbackHandler(google *GoogleProvider, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(stateCookie)
		if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
			response.Error(w, http.StatusBadRequest, "invalid-state", "oauth state mismatch")
			return
		}

		sess, err := google.Callback(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			writeAuthErr(w, err)
			return
		}
		if err := sessions.Issue(w, sess); err != nil {
			response.Error(w, http.StatusInternalServerError, "internal", "failed to issue session")
			return
		}
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
	}
}

// writeAuthErr maps service errors onto the stable client-facing codes.
func writeAuthErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		response.Error(w, http.StatusBadRequest, "invalid-email", "invalid email address")
	case errors.Is(err, ErrWeakPassword):
		response.Error(w, http.StatusBadRequest, "weak-password", "password must be at least 6 characters")
	case errors.Is(err, ErrEmailInUse):
		response.Error(w, http.StatusConflict, "email-already-in-use", "an account with this email already exists")
	case errors.Is(err, ErrUserNotFound):
		response.Error(w, http.StatusUnauthorized, "user-not-found", "no account with this email")
	case errors.Is(err, ErrWrongPassword):
		response.Error(w, http.StatusUnauthorized, "wrong-password", "incorrect password")
	case errors.Is(err, ErrOAuthExchange):
		response.Error(w, http.StatusBadGateway, "oauth-failed", "sign-in with Google failed")
	default:
		response.Error(w, http.StatusInternalServerError, "internal", "authentication failed")
	}
}
