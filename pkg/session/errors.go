package session

import "errors"

var (
	// ErrSessionNotFound is returned when no session exists for a token.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session exists but its expiry
	// has passed.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidSession is returned when a session value is structurally
	// unusable (nil, empty token).
	ErrInvalidSession = errors.New("invalid session")

	// ErrSessionRevoked is returned when a profile fetch settles after the
	// session was torn down; the result is discarded.
	ErrSessionRevoked = errors.New("session revoked during profile fetch")

	// ErrStaleProfile is returned when a profile fetch settles after the
	// session moved to a newer epoch; the result is discarded.
	ErrStaleProfile = errors.New("stale profile fetch discarded")

	// ErrProfileNotFound is returned by a ProfileLoader when the
	// authenticated principal has no profile document.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileFetch is returned when the profile store is unavailable;
	// the session is left denied, never retried here.
	ErrProfileFetch = errors.New("profile fetch failed")

	// ErrNotAuthenticated is returned by gated operations when no active
	// session backs the request.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoToken is returned by a Transport when the request carries no
	// session token.
	ErrNoToken = errors.New("no session token")
)
