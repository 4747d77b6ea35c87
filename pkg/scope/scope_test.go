package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/scope"
)

const ownerEmail = "owner@smartcafe.dev"

type record struct {
	Name   string
	CafeID string
}

func (r record) TenantID() string { return r.CafeID }

func testRecords() []record {
	return []record{
		{Name: "first", CafeID: "A"},
		{Name: "second", CafeID: "B"},
		{Name: "third", CafeID: "A"},
	}
}

func newScoper() *scope.Scoper {
	return scope.NewScoper(access.NewResolver(ownerEmail))
}

func TestFilter(t *testing.T) {
	t.Parallel()

	s := newScoper()

	t.Run("staff sees only own cafe in original order", func(t *testing.T) {
		t.Parallel()
		id := access.Identity{ID: "u1", Email: "s@cafe.in", Role: access.RoleStaff, CafeID: "A"}
		got := scope.Filter(s, testRecords(), id)
		assert.Equal(t, []record{{Name: "first", CafeID: "A"}, {Name: "third", CafeID: "A"}}, got)
	})

	t.Run("super admin sees everything", func(t *testing.T) {
		t.Parallel()
		id := access.Identity{ID: "u2", Email: "root@cafe.in", Role: access.RoleSuperAdmin}
		got := scope.Filter(s, testRecords(), id)
		assert.Equal(t, testRecords(), got)
	})

	t.Run("owner override sees everything regardless of role", func(t *testing.T) {
		t.Parallel()
		id := access.Identity{ID: "u3", Email: ownerEmail, Role: access.RoleStaff, CafeID: "B"}
		got := scope.Filter(s, testRecords(), id)
		assert.Equal(t, testRecords(), got)
	})

	t.Run("missing cafe id fails closed", func(t *testing.T) {
		t.Parallel()
		id := access.Identity{ID: "u4", Email: "s@cafe.in", Role: access.RoleAdmin}
		assert.Empty(t, scope.Filter(s, testRecords(), id))
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		t.Parallel()
		in := testRecords()
		id := access.Identity{ID: "u5", Email: "s@cafe.in", Role: access.RoleStaff, CafeID: "B"}
		_ = scope.Filter(s, in, id)
		assert.Equal(t, testRecords(), in)
	})
}

func TestStamp(t *testing.T) {
	t.Parallel()

	s := newScoper()

	tests := []struct {
		name      string
		identity  access.Identity
		requested string
		expected  string
	}{
		{
			name:      "admin write is pinned to own cafe",
			identity:  access.Identity{Email: "a@cafe.in", Role: access.RoleAdmin, CafeID: "B"},
			requested: "Z",
			expected:  "B",
		},
		{
			name:     "staff write without request",
			identity: access.Identity{Email: "s@cafe.in", Role: access.RoleStaff, CafeID: "A"},
			expected: "A",
		},
		{
			name:      "super admin keeps explicit cafe",
			identity:  access.Identity{Email: "r@cafe.in", Role: access.RoleSuperAdmin},
			requested: "Z",
			expected:  "Z",
		},
		{
			name:     "super admin without request gets default",
			identity: access.Identity{Email: "r@cafe.in", Role: access.RoleSuperAdmin},
			expected: scope.DefaultCafeID,
		},
		{
			name:      "owner override keeps explicit cafe",
			identity:  access.Identity{Email: ownerEmail, Role: access.RoleStaff, CafeID: "A"},
			requested: "Z",
			expected:  "Z",
		},
		{
			name:      "staff without assigned cafe falls back to default",
			identity:  access.Identity{Email: "s@cafe.in", Role: access.RoleStaff},
			requested: "Z",
			expected:  scope.DefaultCafeID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, s.Stamp(tt.identity, tt.requested))
		})
	}
}

func TestCanAccess(t *testing.T) {
	t.Parallel()

	s := newScoper()

	staff := access.Identity{Email: "s@cafe.in", Role: access.RoleStaff, CafeID: "A"}
	assert.True(t, s.CanAccess(staff, "A"))
	assert.False(t, s.CanAccess(staff, "B"))

	unassigned := access.Identity{Email: "s@cafe.in", Role: access.RoleStaff}
	assert.False(t, s.CanAccess(unassigned, ""), "empty never matches empty")

	root := access.Identity{Email: "r@cafe.in", Role: access.RoleSuperAdmin}
	assert.True(t, s.CanAccess(root, "B"))
}
