package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartcafe/cafehub/pkg/access"
)

// State is the lifecycle state of a session's identity context.
type State string

const (
	// StateUnauthenticated means no usable identity backs the session:
	// never signed in, profile missing, or fetch failed.
	StateUnauthenticated State = "unauthenticated"
	// StateLoading means a profile fetch is pending; everything is denied
	// until it settles.
	StateLoading State = "loading"
	// StateActive means the identity is loaded and approved; Capabilities
	// holds the memoized resolution.
	StateActive State = "active"
	// StatePendingApproval means the profile exists but awaits admin
	// approval; the only thing the client may show is its own status.
	StatePendingApproval State = "pending_approval"
)

// Session is one client's identity context. Identity and Capabilities are
// replaced wholesale on every state transition, never patched in place.
type Session struct {
	ID          uuid.UUID `json:"id"`
	Token       string    `json:"token"`
	PrincipalID string    `json:"principal_id"`
	State       State     `json:"state"`

	// Identity is only meaningful in active and pending_approval states.
	Identity access.Identity `json:"identity"`
	// Capabilities is the memoized resolution for the active identity.
	// Read it through Allowed, which fails closed on non-active states.
	Capabilities access.CapabilitySet `json:"capabilities"`
	// IsAdmin mirrors the resolver's admin flag for the active identity.
	IsAdmin bool `json:"is_admin"`

	// Epoch increments on every refresh so a profile fetch that settles
	// late can be detected and discarded.
	Epoch     uint64    `json:"epoch"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newSession(token, principalID string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.New(),
		Token:       token,
		PrincipalID: principalID,
		State:       StateLoading,
		Epoch:       1,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// Allowed returns the capability set the session may act with. Any state
// other than active yields the zero (deny-everything) set.
func (s *Session) Allowed() access.CapabilitySet {
	if s == nil || s.State != StateActive {
		return access.CapabilitySet{}
	}
	return s.Capabilities
}

// Admin reports the resolver-derived admin flag, false unless active.
func (s *Session) Admin() bool {
	return s != nil && s.State == StateActive && s.IsAdmin
}

// Authenticated reports whether the session carries an active, approved
// identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.State == StateActive
}

// IsExpired reports whether the session's lifetime has passed.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// clearIdentity drops identity, capabilities and the admin flag in one
// step so there is no window with partial state.
func (s *Session) clearIdentity(state State) {
	s.State = state
	s.Identity = access.Identity{}
	s.Capabilities = access.CapabilitySet{}
	s.IsAdmin = false
}
