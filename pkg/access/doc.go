// Package access defines the role and capability model for the café
// dashboard.
//
// The model is deliberately small: three roles (staff, admin, super_admin),
// a fixed set of eight capability bits, and a single owner-override escape
// hatch keyed on one configured email address. Capability resolution is a
// pure table lookup with no state and no I/O, so the same (role, override)
// pair always yields the same capability set.
//
// Two safety rules run through the whole package:
//
//   - Unknown role values degrade to staff, never upward. A corrupted or
//     unrecognized role field in a stored profile can only reduce access.
//   - Raw profile documents are normalized through IdentityFromDoc before
//     they reach any capability logic; optional or malformed fields never
//     flow into permission checks.
//
// Basic usage:
//
//	resolver := access.NewResolver(cfg.OwnerEmail)
//	caps := resolver.Resolve(identity.Role, resolver.IsOwner(identity.Email))
//	if caps.ManageInventory {
//	    // ...
//	}
package access
