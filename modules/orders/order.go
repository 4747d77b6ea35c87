// Package orders implements the order workflow: creation with line item
// totals, status transitions through the kitchen flow, and payment
// tracking. Every order belongs to exactly one café.
package orders

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Order statuses follow the kitchen flow. Completed and cancelled are
// terminal.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment states and methods.
const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"

	MethodCash   = "cash"
	MethodCard   = "card"
	MethodOnline = "online"
)

// Item is a single order line. Subtotal is always quantity times price,
// recomputed server-side.
type Item struct {
	Name     string  `bson:"name" json:"name"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
	Subtotal float64 `bson:"subtotal" json:"subtotal"`
}

// Order is a café-scoped order record.
type Order struct {
	ID            string     `bson:"_id" json:"id"`
	OrderNumber   string     `bson:"orderNumber" json:"orderNumber"`
	CustomerName  string     `bson:"customerName" json:"customerName"`
	Items         []Item     `bson:"items" json:"items"`
	Total         float64    `bson:"total" json:"total"`
	Status        string     `bson:"status" json:"status"`
	PaymentStatus string     `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod string     `bson:"paymentMethod" json:"paymentMethod"`
	CafeID        string     `bson:"cafeId" json:"cafeId"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	CompletedAt   *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// TenantID implements scope.Scoped.
func (o Order) TenantID() string { return o.CafeID }

// Terminal reports whether the order can no longer change status.
func (o Order) Terminal() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

// validStatus reports whether s is one of the known order statuses.
func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func validPaymentStatus(s string) bool { return s == PaymentPaid || s == PaymentUnpaid }

func validPaymentMethod(s string) bool {
	switch s {
	case MethodCash, MethodCard, MethodOnline:
		return true
	}
	return false
}

// newOrderNumber generates a short human-readable order reference.
func newOrderNumber(now time.Time) string {
	b := make([]byte, 2)
	_, _ = rand.Read(b)
	return fmt.Sprintf("ORD-%s-%s", now.Format("060102"), strings.ToUpper(hex.EncodeToString(b)))
}
