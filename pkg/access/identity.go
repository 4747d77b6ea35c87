package access

import "strings"

// ApprovalState tracks whether a registered account has been approved by an
// administrator. Accounts are never deleted, only left unapproved.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
)

// ParseApprovalState maps a stored approval value onto the closed set.
// Anything unrecognized degrades to pending (fail closed).
func ParseApprovalState(s string) ApprovalState {
	if ApprovalState(s) == ApprovalApproved {
		return ApprovalApproved
	}
	return ApprovalPending
}

// Identity is the authenticated principal as used by permission and scoping
// logic. Instances are built from store documents via IdentityFromDoc and
// treated as immutable; session transitions replace them wholesale.
type Identity struct {
	ID       string        `json:"id"`
	Email    string        `json:"email"`
	Name     string        `json:"name"`
	Role     Role          `json:"role"`
	CafeID   string        `json:"cafeId"`
	Approval ApprovalState `json:"approvalState"`
}

// Approved reports whether the identity has passed admin approval.
func (i Identity) Approved() bool {
	return i.Approval == ApprovalApproved
}

// IsSuperAdmin reports whether the identity's stored role is super_admin.
// The owner override is a Resolver concern and intentionally not evaluated
// here.
func (i Identity) IsSuperAdmin() bool {
	return ParseRole(string(i.Role)) == RoleSuperAdmin
}

// IdentityDoc is the raw users-collection document shape. Every field
// beyond the id is optional in the store, so all of them are pointers and
// must pass through IdentityFromDoc before entering capability logic.
type IdentityDoc struct {
	ID            string  `bson:"_id,omitempty" json:"id"`
	Email         *string `bson:"email" json:"email"`
	Name          *string `bson:"name" json:"name"`
	Role          *string `bson:"role" json:"role"`
	CafeID        *string `bson:"cafeId" json:"cafeId"`
	ApprovalState *string `bson:"approvalState" json:"approvalState"`
}

// IdentityFromDoc normalizes a raw profile document into an Identity.
// Missing role and approval fields degrade to staff/pending; a missing or
// blank email is rejected because the owner override compares against it.
func IdentityFromDoc(doc IdentityDoc) (Identity, error) {
	email := ""
	if doc.Email != nil {
		email = strings.TrimSpace(*doc.Email)
	}
	if doc.ID == "" || email == "" {
		return Identity{}, ErrInvalidProfile
	}

	id := Identity{
		ID:       doc.ID,
		Email:    email,
		Role:     RoleStaff,
		Approval: ApprovalPending,
	}
	if doc.Name != nil {
		id.Name = strings.TrimSpace(*doc.Name)
	}
	if doc.Role != nil {
		id.Role = ParseRole(*doc.Role)
	}
	if doc.CafeID != nil {
		id.CafeID = strings.TrimSpace(*doc.CafeID)
	}
	if doc.ApprovalState != nil {
		id.Approval = ParseApprovalState(*doc.ApprovalState)
	}
	return id, nil
}
