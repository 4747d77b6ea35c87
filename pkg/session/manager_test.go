package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/navigation"
	"github.com/smartcafe/cafehub/pkg/session"
)

const ownerEmail = "owner@smartcafe.dev"

type fakeLoader struct {
	profiles map[string]access.Identity
	err      error
	// gate, when set, blocks LoadProfile until released. Used to simulate
	// an in-flight fetch racing a sign-out.
	gate chan struct{}
	// entered, when set, is closed once LoadProfile has been reached, so
	// the test can wait until the fetch is actually in flight.
	entered chan struct{}
}

func (f *fakeLoader) LoadProfile(ctx context.Context, principalID string) (access.Identity, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return access.Identity{}, f.err
	}
	id, ok := f.profiles[principalID]
	if !ok {
		return access.Identity{}, session.ErrProfileNotFound
	}
	return id, nil
}

func approvedAdmin(principalID string) access.Identity {
	return access.Identity{
		ID:       principalID,
		Email:    "admin@cafe.in",
		Name:     "Asha",
		Role:     access.RoleAdmin,
		CafeID:   "cafe-a",
		Approval: access.ApprovalApproved,
	}
}

func newManager(loader session.ProfileLoader) *session.Manager {
	return session.NewManager(
		access.NewResolver(ownerEmail),
		loader,
		session.WithStore(session.NewMemoryStore(0)),
	)
}

func TestLifecycleActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := newManager(&fakeLoader{profiles: map[string]access.Identity{"p1": approvedAdmin("p1")}})

	sess, err := m.Begin(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, session.StateLoading, sess.State)
	assert.True(t, sess.Allowed().None(), "loading must deny everything")
	assert.Empty(t, navigation.Visible(sess.Allowed(), sess.Admin()))

	sess, err = m.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, session.StateActive, sess.State)
	assert.True(t, sess.Allowed().ManageInventory)
	assert.False(t, sess.Allowed().ManageCafes)
	assert.True(t, sess.Admin())
	assert.NotEmpty(t, navigation.Visible(sess.Allowed(), sess.Admin()))
}

func TestPendingApprovalDeniesEverything(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	pending := approvedAdmin("p1")
	pending.Approval = access.ApprovalPending
	m := newManager(&fakeLoader{profiles: map[string]access.Identity{"p1": pending}})

	sess, err := m.Begin(ctx, "p1")
	require.NoError(t, err)
	sess, err = m.Resolve(ctx, sess.Token)
	require.NoError(t, err)

	// Role would grant admin capabilities, but pending overrides at the
	// context boundary.
	assert.Equal(t, session.StatePendingApproval, sess.State)
	assert.True(t, sess.Allowed().None())
	assert.False(t, sess.Admin())
	assert.Empty(t, navigation.Visible(sess.Allowed(), true))
	// The identity itself stays visible so the client can show status.
	assert.Equal(t, "p1", sess.Identity.ID)
}

func TestProfileNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := newManager(&fakeLoader{})

	sess, err := m.Begin(ctx, "ghost")
	require.NoError(t, err)
	sess, err = m.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrProfileNotFound)
	assert.Equal(t, session.StateUnauthenticated, sess.State)
	assert.True(t, sess.Allowed().None())
}

func TestProfileFetchFailureFailsClosed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := newManager(&fakeLoader{err: errors.New("store unavailable")})

	sess, err := m.Begin(ctx, "p1")
	require.NoError(t, err)
	sess, err = m.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrProfileFetch)
	assert.Equal(t, session.StateUnauthenticated, sess.State)
	assert.True(t, sess.Allowed().None())
}

func TestSignOutClearsSynchronously(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := newManager(&fakeLoader{profiles: map[string]access.Identity{"p1": approvedAdmin("p1")}})

	sess, err := m.Begin(ctx, "p1")
	require.NoError(t, err)
	sess, err = m.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	require.True(t, sess.Authenticated())

	require.NoError(t, m.SignOut(ctx, sess.Token))

	// The token must resolve to nothing immediately after teardown.
	_, err = m.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	// A caller still holding the old session value gets denials from the
	// store, and visibleSections over a fresh lookup is empty.
	assert.Empty(t, navigation.Visible(access.CapabilitySet{}, false))
}

func TestSignOutDuringFetchDiscardsResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	loader := &fakeLoader{
		profiles: map[string]access.Identity{"p1": approvedAdmin("p1")},
		gate:     make(chan struct{}),
		entered:  make(chan struct{}),
	}
	m := newManager(loader)

	sess, err := m.Begin(ctx, "p1")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, resolveErr := m.Resolve(ctx, sess.Token)
		done <- resolveErr
	}()

	// Tear the session down while the profile fetch is still blocked.
	<-loader.entered
	require.NoError(t, m.SignOut(ctx, sess.Token))
	close(loader.gate)

	err = <-done
	assert.ErrorIs(t, err, session.ErrSessionRevoked)

	// The stale result was never applied anywhere.
	_, err = m.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRefreshBumpsEpochAndReloads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	profiles := map[string]access.Identity{"p1": approvedAdmin("p1")}
	m := newManager(&fakeLoader{profiles: profiles})

	sess, err := m.Begin(ctx, "p1")
	require.NoError(t, err)
	sess, err = m.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, uint64(1), sess.Epoch)

	// Role change lands in the store; refresh must pick it up.
	demoted := profiles["p1"]
	demoted.Role = access.RoleStaff
	profiles["p1"] = demoted

	sess, err = m.Refresh(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), sess.Epoch)
	assert.False(t, sess.Allowed().ManageInventory)
	assert.True(t, sess.Allowed().ManageOrders)
}

func TestExpiredSessionDenied(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := session.NewManager(
		access.NewResolver(ownerEmail),
		&fakeLoader{profiles: map[string]access.Identity{"p1": approvedAdmin("p1")}},
		session.WithStore(session.NewMemoryStore(0)),
		session.WithConfig(session.Config{CookieName: "s", TTL: -time.Second}),
	)

	sess, err := m.Begin(ctx, "p1")
	require.NoError(t, err)

	_, err = m.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}
