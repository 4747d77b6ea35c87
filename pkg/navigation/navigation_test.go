package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/navigation"
)

func sectionNames(sections []navigation.Section) []string {
	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.Name)
	}
	return names
}

func TestVisible(t *testing.T) {
	t.Parallel()

	resolver := access.NewResolver("owner@smartcafe.dev")

	t.Run("staff", func(t *testing.T) {
		t.Parallel()
		caps := resolver.Resolve(access.RoleStaff, false)
		assert.Equal(t,
			[]string{"Dashboard", "Orders", "Feedback"},
			sectionNames(navigation.Visible(caps, false)))
	})

	t.Run("admin", func(t *testing.T) {
		t.Parallel()
		caps := resolver.Resolve(access.RoleAdmin, false)
		assert.Equal(t,
			[]string{"Dashboard", "Orders", "Inventory", "Analytics", "Reports", "Feedback", "User Management"},
			sectionNames(navigation.Visible(caps, true)))
	})

	t.Run("super admin", func(t *testing.T) {
		t.Parallel()
		caps := resolver.Resolve(access.RoleSuperAdmin, false)
		assert.Equal(t,
			[]string{"Dashboard", "Orders", "Inventory", "Analytics", "Reports", "Feedback", "User Management", "Cafés"},
			sectionNames(navigation.Visible(caps, true)))
	})

	t.Run("user management needs both capability and admin flag", func(t *testing.T) {
		t.Parallel()
		caps := resolver.Resolve(access.RoleAdmin, false)
		assert.NotContains(t, sectionNames(navigation.Visible(caps, false)), "User Management")
	})

	t.Run("zero capability set yields nothing", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, navigation.Visible(access.CapabilitySet{}, true))
	})
}
