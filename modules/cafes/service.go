package cafes

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/smartcafe/cafehub/pkg/logger"
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, c Cafe) error
	Get(ctx context.Context, id string) (Cafe, error)
	List(ctx context.Context) ([]Cafe, error)
	Update(ctx context.Context, c Cafe) error
}

// Service manages the café registry. Authorization happens at the router;
// by the time a call lands here the actor holds the manage-cafes
// capability.
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates the café service.
func NewService(store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, log: log, now: time.Now}
}

// CreateInput is the caller-supplied part of a new café.
type CreateInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Create registers a café under a slug derived from its name.
func (s *Service) Create(ctx context.Context, in CreateInput) (Cafe, error) {
	name := strings.TrimSpace(in.Name)
	id := slugify(name)
	if name == "" || id == "" {
		return Cafe{}, ErrInvalidCafe
	}

	now := s.now()
	c := Cafe{
		ID:        id,
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return Cafe{}, err
	}

	s.log.Info("cafe registered", logger.CafeID(c.ID))
	return c, nil
}

// List returns every registered café.
func (s *Service) List(ctx context.Context) ([]Cafe, error) {
	return s.store.List(ctx)
}

// Get returns a single café.
func (s *Service) Get(ctx context.Context, id string) (Cafe, error) {
	return s.store.Get(ctx, id)
}

// UpdateInput carries the mutable café fields. Nil means unchanged.
type UpdateInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Active  *bool   `json:"active"`
}

// Update applies the changed fields. The id never changes, even when the
// name does, so existing records keep their tenant binding.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Cafe, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return Cafe{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Cafe{}, ErrInvalidCafe
		}
		c.Name = name
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.UpdatedAt = s.now()

	if err := s.store.Update(ctx, c); err != nil {
		return Cafe{}, err
	}
	return c, nil
}

// Deactivate retires a café without deleting its records.
func (s *Service) Deactivate(ctx context.Context, id string) (Cafe, error) {
	inactive := false
	c, err := s.Update(ctx, id, UpdateInput{Active: &inactive})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Cafe{}, err
	}
	return c, err
}
