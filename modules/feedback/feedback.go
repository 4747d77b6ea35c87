// Package feedback collects customer feedback: anonymous public
// submissions through a QR-linked form, and a staff-facing review surface
// with rating summaries.
package feedback

import (
	"errors"
	"time"
)

var (
	// ErrInvalidRating is returned for ratings outside 1 to 5.
	ErrInvalidRating = errors.New("feedback: rating must be between 1 and 5")
	// ErrInvalidCategory is returned for unknown categories.
	ErrInvalidCategory = errors.New("feedback: unknown category")
	// ErrNotFound is returned when no feedback entry matches the lookup.
	ErrNotFound = errors.New("feedback: entry not found")
)

// Feedback categories.
const (
	CategoryFood        = "food"
	CategoryService     = "service"
	CategoryAmbience    = "ambience"
	CategoryCleanliness = "cleanliness"
	CategoryGeneral     = "general"
)

// Entry is a café-scoped feedback record. Name and email are optional so
// customers can stay anonymous.
type Entry struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Rating    int       `bson:"rating" json:"rating"`
	Category  string    `bson:"category" json:"category"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CafeID    string    `bson:"cafeId" json:"cafeId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// TenantID implements scope.Scoped.
func (e Entry) TenantID() string { return e.CafeID }

func validCategory(c string) bool {
	switch c {
	case CategoryFood, CategoryService, CategoryAmbience, CategoryCleanliness, CategoryGeneral:
		return true
	}
	return false
}

// Summary aggregates ratings for the review surface.
type Summary struct {
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}
