package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/smartcafe/cafehub/pkg/access"
)

// ProfileLoader fetches the profile document for an authenticated
// principal. Implementations return ErrProfileNotFound when no profile
// exists; any other error is treated as a transient store failure.
type ProfileLoader interface {
	LoadProfile(ctx context.Context, principalID string) (access.Identity, error)
}

// ProfileLoaderFunc adapts a function to the ProfileLoader interface.
type ProfileLoaderFunc func(ctx context.Context, principalID string) (access.Identity, error)

func (f ProfileLoaderFunc) LoadProfile(ctx context.Context, principalID string) (access.Identity, error) {
	return f(ctx, principalID)
}

// Manager orchestrates the session lifecycle: creation on sign-in, profile
// resolution, refresh, and synchronous teardown on sign-out.
type Manager struct {
	store     Store
	transport Transport
	resolver  *access.Resolver
	loader    ProfileLoader
	config    Config
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the session store (defaults to an in-memory store).
func WithStore(s Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithTransport sets the token transport (defaults to a cookie transport).
func WithTransport(t Transport) Option {
	return func(m *Manager) { m.transport = t }
}

// WithConfig sets the session configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a session manager. The resolver and loader are
// required; store and transport default to in-memory and cookie.
func NewManager(resolver *access.Resolver, loader ProfileLoader, opts ...Option) *Manager {
	m := &Manager{
		resolver: resolver,
		loader:   loader,
		config:   DefaultConfig(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.transport == nil {
		m.transport = NewCookieTransport(m.config.CookieName, m.config.SecureCookies)
	}
	return m
}

// Begin creates a loading-state session for an authenticated principal.
// The session denies everything until Resolve settles the profile fetch.
func (m *Manager) Begin(ctx context.Context, principalID string) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	sess := newSession(token, principalID, m.config.TTL)
	if err := m.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Resolve fetches the principal's profile and applies it to the session.
// If the session was torn down or refreshed while the fetch was in flight,
// the result is discarded (ErrSessionRevoked / ErrStaleProfile). A missing
// profile transitions the session to unauthenticated; a store failure
// leaves it denied and surfaces the error.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	epoch := sess.Epoch

	identity, loadErr := m.loader.LoadProfile(ctx, sess.PrincipalID)

	// Re-read after the fetch settles: sign-out or refresh may have won.
	current, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, ErrSessionRevoked
	}
	if current.Epoch != epoch {
		return nil, ErrStaleProfile
	}

	switch {
	case loadErr == nil:
		current.Identity = identity
		if !identity.Approved() {
			current.State = StatePendingApproval
			current.Capabilities = access.CapabilitySet{}
			current.IsAdmin = false
		} else {
			current.State = StateActive
			current.Capabilities = m.resolver.ResolveIdentity(identity)
			current.IsAdmin = m.resolver.IsAdmin(identity)
		}
	case errors.Is(loadErr, ErrProfileNotFound):
		current.clearIdentity(StateUnauthenticated)
	default:
		current.clearIdentity(StateUnauthenticated)
		loadErr = errors.Join(ErrProfileFetch, loadErr)
	}

	if err := m.store.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	if loadErr != nil {
		m.logger.Warn("profile resolution failed",
			slog.String("principal_id", current.PrincipalID),
			slog.String("error", loadErr.Error()),
		)
		return current, loadErr
	}
	return current, nil
}

// Refresh reloads the profile for an existing session. The session drops
// to loading (deny everything) for the duration, and the epoch bump
// invalidates any older in-flight fetch.
func (m *Manager) Refresh(ctx context.Context, token string) (*Session, error) {
	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	sess.Epoch++
	sess.clearIdentity(StateLoading)
	if err := m.store.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return m.Resolve(ctx, token)
}

// Get returns the current session for a token.
func (m *Manager) Get(ctx context.Context, token string) (*Session, error) {
	return m.store.Get(ctx, token)
}

// SignOut tears the session down synchronously. Once it returns, the token
// resolves to nothing and no stale capabilities can be reported.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

// FromRequest loads the session identified by the request's token.
func (m *Manager) FromRequest(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, token)
}

// Issue attaches the session token to the response.
func (m *Manager) Issue(w http.ResponseWriter, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}
	return m.transport.SetToken(w, sess.Token, m.config.TTL)
}

// Destroy signs out the request's session and clears the client token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil {
		if err := m.SignOut(ctx, token); err != nil {
			return err
		}
	}
	return m.transport.ClearToken(w)
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
