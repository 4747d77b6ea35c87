package session

import "context"

// Store persists sessions keyed by token. Implementations must copy
// sessions on the way in and out so callers cannot mutate stored state.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by token. Returns ErrSessionNotFound when
	// absent and ErrSessionExpired when past its lifetime.
	Get(ctx context.Context, token string) (*Session, error)

	// Update replaces an existing session.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session by token. Deleting an absent token is not
	// an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all sessions past their lifetime.
	DeleteExpired(ctx context.Context) error
}
