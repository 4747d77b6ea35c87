package session

import (
	"net/http"

	"github.com/smartcafe/cafehub/pkg/access"
)

// Middleware loads the request's session into the context. Requests
// without a session proceed unauthenticated; gating happens downstream.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, err := m.FromRequest(r.Context(), r); err == nil {
				r = r.WithContext(WithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without an active session. Loading and
// pending states are denied like everything else (fail closed); pending is
// distinguished with 403 so the client can show its approval status.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
			return
		}
		if sess.State == StatePendingApproval {
			http.Error(w, "account pending approval", http.StatusForbidden)
			return
		}
		if !sess.Authenticated() {
			http.Error(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates a subtree on the resolver-derived admin flag, layered
// on top of whatever capability gate the subtree already has.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if !ok || !sess.Authenticated() {
			http.Error(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
			return
		}
		if !sess.Admin() {
			http.Error(w, "insufficient permissions", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCapability gates a subtree on a single capability bit of the
// session's allowed set. The pick function selects the bit, keeping the
// capability table itself the only place that knows role semantics.
func RequireCapability(pick func(access.CapabilitySet) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := FromContext(r.Context())
			if !ok || !sess.Authenticated() {
				http.Error(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
				return
			}
			if !pick(sess.Allowed()) {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
