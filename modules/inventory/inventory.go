// Package inventory tracks café stock: menu items with quantities, units,
// minimum stock thresholds and supplier details. A fresh café can be
// seeded from the embedded starter menu.
package inventory

import (
	"strings"
	"time"
)

// Item is a café-scoped inventory record. LowStock is derived, never
// stored.
type Item struct {
	ID            string    `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Category      string    `bson:"category" json:"category"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	Unit          string    `bson:"unit" json:"unit"`
	MinStock      int       `bson:"minStock" json:"minStock"`
	Price         float64   `bson:"price" json:"price"`
	Supplier      string    `bson:"supplier,omitempty" json:"supplier,omitempty"`
	CafeID        string    `bson:"cafeId" json:"cafeId"`
	LastRestocked time.Time `bson:"lastRestocked" json:"lastRestocked"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TenantID implements scope.Scoped.
func (i Item) TenantID() string { return i.CafeID }

// Low reports whether the item is at or below its minimum stock level.
func (i Item) Low() bool { return i.Quantity <= i.MinStock }

func (i Item) validate() error {
	switch {
	case strings.TrimSpace(i.Name) == "":
		return ErrInvalidItem
	case i.Quantity < 0 || i.MinStock < 0 || i.Price < 0:
		return ErrInvalidItem
	}
	return nil
}
