package feedback

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
	Insert(ctx context.Context, e Entry) error
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}

// Service handles feedback submission and review.
type Service struct {
	store  Store
	scoper *scope.Scoper
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates the feedback service.
func NewService(store Store, scoper *scope.Scoper, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, scoper: scoper, log: log, now: time.Now}
}

// SubmitInput is a public feedback submission. Only rating is required;
// an empty category defaults to general and an empty cafeId lands in the
// shared demo tenant.
type SubmitInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating"`
	Category string `json:"category"`
	Comment  string `json:"comment"`
	CafeID   string `json:"cafeId"`
}

// Submit records a feedback entry. No session is involved: the submitter
// is a customer, not a dashboard user.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Entry, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return Entry{}, ErrInvalidRating
	}
	if in.Category == "" {
		in.Category = CategoryGeneral
	}
	if !validCategory(in.Category) {
		return Entry{}, ErrInvalidCategory
	}

	cafeID := in.CafeID
	if cafeID == "" {
		cafeID = scope.DefaultCafeID
	}

	e := Entry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Rating:    in.Rating,
		Category:  in.Category,
		Comment:   strings.TrimSpace(in.Comment),
		CafeID:    cafeID,
		CreatedAt: s.now(),
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return Entry{}, err
	}

	s.log.Info("feedback received",
		logger.CafeID(e.CafeID),
		slog.Int("rating", e.Rating),
	)
	return e, nil
}

// Filter narrows a listing by rating or category. Zero values match
// everything.
type Filter struct {
	Rating   int
	Category string
}

// List returns the entries visible to the actor, newest first, narrowed
// by the filter.
func (s *Service) List(ctx context.Context, actor access.Identity, f Filter) ([]Entry, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := scope.Filter(s.scoper, all, actor)
	if f.Rating == 0 && f.Category == "" {
		return visible, nil
	}

	out := make([]Entry, 0, len(visible))
	for _, e := range visible {
		if f.Rating != 0 && e.Rating != f.Rating {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Summarize computes the rating average and per-star distribution over the
// entries visible to the actor.
func (s *Service) Summarize(ctx context.Context, actor access.Identity) (Summary, error) {
	visible, err := s.List(ctx, actor, Filter{})
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var total int
	for _, e := range visible {
		sum.Count++
		sum.Distribution[e.Rating]++
		total += e.Rating
	}
	if sum.Count > 0 {
		sum.Average = float64(total) / float64(sum.Count)
	}
	return sum, nil
}

// Delete removes an entry the actor can access.
func (s *Service) Delete(ctx context.Context, actor access.Identity, id string) error {
	all, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range all {
		if e.ID == id {
			if !s.scoper.CanAccess(actor, e.CafeID) {
				return ErrNotFound
			}
			return s.store.Delete(ctx, id)
		}
	}
	return ErrNotFound
}
