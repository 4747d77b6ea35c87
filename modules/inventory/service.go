package inventory

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/logger"
	"github.com/smartcafe/cafehub/pkg/scope"
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, item Item) error
	InsertMany(ctx context.Context, items []Item) error
	Get(ctx context.Context, id string) (Item, error)
	List(ctx context.Context) ([]Item, error)
	CountByCafe(ctx context.Context, cafeID string) (int64, error)
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id string) error
}

// Service implements inventory management with tenant isolation.
type Service struct {
	store  Store
	scoper *scope.Scoper
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates the inventory service.
func NewService(store Store, scoper *scope.Scoper, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, scoper: scoper, log: log, now: time.Now}
}

// CreateInput is the caller-supplied part of a new inventory item.
type CreateInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
	MinStock int     `json:"minStock"`
	Price    float64 `json:"price"`
	Supplier string  `json:"supplier"`
	CafeID   string  `json:"cafeId"`
}

// Create validates and persists a new item stamped with the actor's café.
func (s *Service) Create(ctx context.Context, actor access.Identity, in CreateInput) (Item, error) {
	now := s.now()
	item := Item{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		MinStock:      in.MinStock,
		Price:         in.Price,
		Supplier:      in.Supplier,
		CafeID:        s.scoper.Stamp(actor, in.CafeID),
		LastRestocked: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := item.validate(); err != nil {
		return Item{}, err
	}
	if err := s.store.Insert(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// List returns the items visible to the actor, sorted by name.
func (s *Service) List(ctx context.Context, actor access.Identity) ([]Item, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return scope.Filter(s.scoper, all, actor), nil
}

// LowStock returns the visible items at or below their minimum stock.
func (s *Service) LowStock(ctx context.Context, actor access.Identity) ([]Item, error) {
	visible, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(visible))
	for _, item := range visible {
		if item.Low() {
			out = append(out, item)
		}
	}
	return out, nil
}

// UpdateInput carries the mutable fields of an item. Nil means unchanged.
type UpdateInput struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Quantity *int     `json:"quantity"`
	Unit     *string  `json:"unit"`
	MinStock *int     `json:"minStock"`
	Price    *float64 `json:"price"`
	Supplier *string  `json:"supplier"`
}

// Update applies the changed fields of an item the actor can access.
// Raising the quantity counts as a restock and stamps LastRestocked.
func (s *Service) Update(ctx context.Context, actor access.Identity, id string, in UpdateInput) (Item, error) {
	item, err := s.get(ctx, actor, id)
	if err != nil {
		return Item{}, err
	}

	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.Quantity != nil {
		if *in.Quantity > item.Quantity {
			item.LastRestocked = s.now()
		}
		item.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.MinStock != nil {
		item.MinStock = *in.MinStock
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	item.UpdatedAt = s.now()

	if err := item.validate(); err != nil {
		return Item{}, err
	}
	if err := s.store.Update(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete removes an item the actor can access.
func (s *Service) Delete(ctx context.Context, actor access.Identity, id string) error {
	if _, err := s.get(ctx, actor, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Seed loads the starter menu into a café that has no items yet. Seeding
// an already stocked café is a no-op, so the call is safe to repeat.
func (s *Service) Seed(ctx context.Context, actor access.Identity, cafeID string) (int, error) {
	cafeID = s.scoper.Stamp(actor, cafeID)

	n, err := s.store.CountByCafe(ctx, cafeID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	items, err := seedItems(cafeID, s.now())
	if err != nil {
		return 0, err
	}
	if err := s.store.InsertMany(ctx, items); err != nil {
		return 0, err
	}

	s.log.Info("inventory seeded",
		logger.CafeID(cafeID),
		slog.Int("items", len(items)),
	)
	return len(items), nil
}

func (s *Service) get(ctx context.Context, actor access.Identity, id string) (Item, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if !s.scoper.CanAccess(actor, item.CafeID) {
		return Item{}, ErrNotFound
	}
	return item, nil
}
