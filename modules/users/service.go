package users

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/logger"
	"github.com/smartcafe/cafehub/pkg/scope"
)

// ErrRoleEscalation is returned when an admin tries to grant a role only a
// super-admin may grant.
var ErrRoleEscalation = errors.New("users: only a super admin can grant super_admin")

// ProfileRepo is the slice of the store the approval service needs.
type ProfileRepo interface {
	List(ctx context.Context) ([]access.Identity, error)
	SetApproval(ctx context.Context, id string, state access.ApprovalState) error
	SetRole(ctx context.Context, id string, role access.Role) error
	SetCafe(ctx context.Context, id, cafeID string) error
}

// Service implements the approval workflow: listing accounts, approving
// registrations, and changing role or café assignment.
type Service struct {
	repo   ProfileRepo
	scoper *scope.Scoper
	log    *slog.Logger
}

// NewService creates the approval service.
func NewService(repo ProfileRepo, scoper *scope.Scoper, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, scoper: scoper, log: log}
}

// List returns the accounts the actor may manage: all of them for
// cross-tenant actors, otherwise only the actor's own café (and accounts
// not yet assigned to one, which are pending placement).
func (s *Service) List(ctx context.Context, actor access.Identity) ([]access.Identity, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.scoper.CrossTenant(actor) {
		return all, nil
	}

	out := make([]access.Identity, 0, len(all))
	for _, id := range all {
		if id.CafeID == "" || id.CafeID == actor.CafeID {
			out = append(out, id)
		}
	}
	return out, nil
}

// Approve marks an account approved.
func (s *Service) Approve(ctx context.Context, actor access.Identity, id string) error {
	if err := s.repo.SetApproval(ctx, id, access.ApprovalApproved); err != nil {
		return err
	}
	s.log.Info("account approved",
		logger.UserID(id),
		slog.String("approved_by", actor.ID),
	)
	return nil
}

// SetRole changes an account's role. Unknown role values are rejected
// before they reach the store, and super_admin can only be granted by a
// cross-tenant actor.
func (s *Service) SetRole(ctx context.Context, actor access.Identity, id string, role access.Role) error {
	if !role.Valid() {
		return access.ErrInvalidProfile
	}
	if role == access.RoleSuperAdmin && !s.scoper.CrossTenant(actor) {
		return ErrRoleEscalation
	}
	return s.repo.SetRole(ctx, id, role)
}

// AssignCafe moves an account to a café. Non-cross-tenant actors can only
// pull accounts into their own café.
func (s *Service) AssignCafe(ctx context.Context, actor access.Identity, id, cafeID string) error {
	cafeID = s.scoper.Stamp(actor, cafeID)
	return s.repo.SetCafe(ctx, id, cafeID)
}
