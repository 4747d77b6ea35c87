// Package scope enforces tenant isolation for café-scoped records.
//
// Every record type that belongs to a café implements Scoped. Reads go
// through Filter, which hides other tenants' records from everyone except
// super-admins; writes go through Stamp, which pins the record to the
// caller's own café regardless of what the caller supplied. Isolation is
// enforced by omission and overwrite rather than by raising errors, so a
// tenant mismatch can never surface as a runtime fault.
package scope

import "github.com/smartcafe/cafehub/pkg/access"

// DefaultCafeID is the tenant assigned when a super-admin writes without an
// explicit café context.
const DefaultCafeID = "default"

// Scoped is implemented by any record that belongs to exactly one café.
type Scoped interface {
	TenantID() string
}

// Scoper decides tenant visibility for an identity. It delegates the owner
// override to the access resolver so there is a single comparison point.
type Scoper struct {
	resolver *access.Resolver
}

// NewScoper creates a scoper backed by the given resolver.
func NewScoper(resolver *access.Resolver) *Scoper {
	return &Scoper{resolver: resolver}
}

// CrossTenant reports whether the identity may see and write records of
// every café: super-admin role or owner override.
func (s *Scoper) CrossTenant(id access.Identity) bool {
	return id.IsSuperAdmin() || s.resolver.IsOwner(id.Email)
}

// Stamp returns the café id to persist on a record written by the identity.
// Non-super-admins always get their own café, overriding any requested
// value; a caller with cross-tenant access keeps an explicit request and
// otherwise falls back to DefaultCafeID. An identity without an assigned
// café also falls back to DefaultCafeID, matching read-side visibility of
// nothing but the shared demo tenant.
func (s *Scoper) Stamp(id access.Identity, requested string) string {
	if s.CrossTenant(id) {
		if requested != "" {
			return requested
		}
		return DefaultCafeID
	}
	if id.CafeID == "" {
		return DefaultCafeID
	}
	return id.CafeID
}

// CanAccess reports whether the identity may operate on a record carrying
// the given café id. Used by single-document read/update/delete paths where
// there is no list to filter.
func (s *Scoper) CanAccess(id access.Identity, cafeID string) bool {
	if s.CrossTenant(id) {
		return true
	}
	return id.CafeID != "" && id.CafeID == cafeID
}

// Filter returns the records visible to the identity, preserving input
// order and never mutating the input slice. Cross-tenant identities see the
// slice unchanged; everyone else sees only their own café's records, and an
// identity without an assigned café sees nothing (fail closed).
func Filter[T Scoped](s *Scoper, records []T, id access.Identity) []T {
	if s.CrossTenant(id) {
		return records
	}
	if id.CafeID == "" {
		return nil
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.TenantID() == id.CafeID {
			out = append(out, r)
		}
	}
	return out
}
