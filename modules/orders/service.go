package orders

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/logger"
	"github.com/smartcafe/cafehub/pkg/scope"
)

var (
	// ErrEmptyOrder is returned when an order has no line items or a zero
	// total.
	ErrEmptyOrder = errors.New("orders: order has no items")
	// ErrMissingCustomer is returned when no customer name is supplied.
	ErrMissingCustomer = errors.New("orders: customer name is required")
	// ErrInvalidItem is returned for a line item with a blank name,
	// non-positive quantity or negative price.
	ErrInvalidItem = errors.New("orders: invalid line item")
	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("orders: invalid status")
	// ErrInvalidPayment is returned for unknown payment values.
	ErrInvalidPayment = errors.New("orders: invalid payment value")
	// ErrTerminalOrder is returned when changing a completed or cancelled
	// order.
	ErrTerminalOrder = errors.New("orders: order already completed or cancelled")
	// ErrForbidden is returned when the actor's café does not match the
	// order's.
	ErrForbidden = errors.New("orders: order belongs to another cafe")
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Update(ctx context.Context, o Order) error
	Delete(ctx context.Context, id string) error
}

// Service implements order creation and lifecycle management with tenant
// isolation applied on every path.
type Service struct {
	store  Store
	scoper *scope.Scoper
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates the order service.
func NewService(store Store, scoper *scope.Scoper, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, scoper: scoper, log: log, now: time.Now}
}

// CreateInput is the caller-supplied part of a new order. CafeID is a
// request, not a decision: the service stamps the actor's own café for
// anyone without cross-tenant access.
type CreateInput struct {
	CustomerName  string `json:"customerName"`
	Items         []Item `json:"items"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentMethod string `json:"paymentMethod"`
	CafeID        string `json:"cafeId"`
}

// Create validates the input, computes subtotals and the grand total, and
// persists a new pending order stamped with the actor's café.
func (s *Service) Create(ctx context.Context, actor access.Identity, in CreateInput) (Order, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return Order{}, ErrMissingCustomer
	}
	if len(in.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = PaymentUnpaid
	}
	if !validPaymentStatus(in.PaymentStatus) {
		return Order{}, ErrInvalidPayment
	}
	if in.PaymentMethod != "" && !validPaymentMethod(in.PaymentMethod) {
		return Order{}, ErrInvalidPayment
	}

	var total float64
	items := make([]Item, len(in.Items))
	for i, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity <= 0 || it.Price < 0 {
			return Order{}, ErrInvalidItem
		}
		it.Subtotal = round2(float64(it.Quantity) * it.Price)
		total += it.Subtotal
		items[i] = it
	}
	if total <= 0 {
		return Order{}, ErrEmptyOrder
	}

	now := s.now()
	o := Order{
		ID:            uuid.NewString(),
		OrderNumber:   newOrderNumber(now),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Items:         items,
		Total:         round2(total),
		Status:        StatusPending,
		PaymentStatus: in.PaymentStatus,
		PaymentMethod: in.PaymentMethod,
		CafeID:        s.scoper.Stamp(actor, in.CafeID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Insert(ctx, o); err != nil {
		return Order{}, err
	}

	s.log.Info("order created",
		slog.String("order_number", o.OrderNumber),
		logger.CafeID(o.CafeID),
	)
	return o, nil
}

// List returns the orders visible to the actor, newest first. A non-empty
// status narrows the listing.
func (s *Service) List(ctx context.Context, actor access.Identity, status string) ([]Order, error) {
	if status != "" && !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := scope.Filter(s.scoper, all, actor)
	if status == "" {
		return visible, nil
	}
	out := make([]Order, 0, len(visible))
	for _, o := range visible {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// Get returns a single order if the actor's café matches.
func (s *Service) Get(ctx context.Context, actor access.Identity, id string) (Order, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !s.scoper.CanAccess(actor, o.CafeID) {
		// Hidden, not forbidden: other tenants' orders do not exist.
		return Order{}, ErrNotFound
	}
	return o, nil
}

// SetStatus moves an order through the kitchen flow. Completing an order
// stamps CompletedAt; terminal orders reject further transitions.
func (s *Service) SetStatus(ctx context.Context, actor access.Identity, id, status string) (Order, error) {
	if !validStatus(status) {
		return Order{}, ErrInvalidStatus
	}

	o, err := s.Get(ctx, actor, id)
	if err != nil {
		return Order{}, err
	}
	if o.Terminal() {
		return Order{}, ErrTerminalOrder
	}

	now := s.now()
	o.Status = status
	o.UpdatedAt = now
	if status == StatusCompleted {
		o.CompletedAt = &now
	}
	if err := s.store.Update(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// SetPayment updates the payment status and method of an order.
func (s *Service) SetPayment(ctx context.Context, actor access.Identity, id, status, method string) (Order, error) {
	if !validPaymentStatus(status) {
		return Order{}, ErrInvalidPayment
	}
	if method != "" && !validPaymentMethod(method) {
		return Order{}, ErrInvalidPayment
	}

	o, err := s.Get(ctx, actor, id)
	if err != nil {
		return Order{}, err
	}

	o.PaymentStatus = status
	if method != "" {
		o.PaymentMethod = method
	}
	o.UpdatedAt = s.now()
	if err := s.store.Update(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Delete removes an order the actor can access.
func (s *Service) Delete(ctx context.Context, actor access.Identity, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
