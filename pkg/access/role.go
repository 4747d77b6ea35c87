package access

// Role is the closed set of roles a profile can carry. It stays string-typed
// for document-store compatibility; use ParseRole to enter the closed set.
type Role string

const (
	// RoleStaff can take orders and view the dashboard and feedback.
	RoleStaff Role = "staff"
	// RoleAdmin additionally manages inventory, analytics, reports and
	// user approvals for its own café.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin has every capability across all cafés.
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole maps a stored role value onto the closed role set. Any value
// outside the set degrades to RoleStaff so an unrecognized role can never
// grant elevated access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStaff, RoleAdmin, RoleSuperAdmin:
		return Role(s)
	default:
		return RoleStaff
	}
}

// Valid reports whether the role is one of the three recognized values.
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
