package access

// Resolver maps (role, owner override) pairs onto capability sets. The
// system-owner email is injected once at construction so there is exactly
// one comparison point for the override, never a literal scattered across
// call sites.
type Resolver struct {
	ownerEmail string
}

// NewResolver creates a resolver with the given system-owner email. An
// empty owner email disables the override entirely.
func NewResolver(ownerEmail string) *Resolver {
	return &Resolver{ownerEmail: ownerEmail}
}

// IsOwner reports whether the email belongs to the system owner. The
// comparison is case-sensitive to match the stored account exactly.
func (r *Resolver) IsOwner(email string) bool {
	return r.ownerEmail != "" && email == r.ownerEmail
}

// Resolve returns the capability set for a role. With ownerOverride set it
// returns the full super-admin set regardless of role. The function is pure
// and total: it never fails, and unrecognized roles resolve to the staff
// set via ParseRole's least-privilege default.
func (r *Resolver) Resolve(role Role, ownerOverride bool) CapabilitySet {
	if ownerOverride {
		return superAdminCapabilities
	}

	switch ParseRole(string(role)) {
	case RoleSuperAdmin:
		return superAdminCapabilities
	case RoleAdmin:
		return adminCapabilities
	default:
		return staffCapabilities
	}
}

// ResolveIdentity resolves capabilities for a full identity, evaluating the
// owner override against the identity's email on every call.
func (r *Resolver) ResolveIdentity(id Identity) CapabilitySet {
	return r.Resolve(id.Role, r.IsOwner(id.Email))
}

// IsAdmin reports whether the identity counts as an administrator: role is
// admin or super_admin, or the owner override applies. Derived here, next
// to the capability table, so the two cannot drift apart.
func (r *Resolver) IsAdmin(id Identity) bool {
	if r.IsOwner(id.Email) {
		return true
	}
	role := ParseRole(string(id.Role))
	return role == RoleAdmin || role == RoleSuperAdmin
}
