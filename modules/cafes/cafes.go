// Package cafes maintains the café registry. Only super-admins manage it;
// every other record in the system hangs off a café id issued here.
package cafes

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no café matches the lookup.
	ErrNotFound = errors.New("cafes: cafe not found")
	// ErrInvalidCafe is returned for a café with a blank name.
	ErrInvalidCafe = errors.New("cafes: invalid cafe")
	// ErrIDTaken is returned when a new café reuses an existing id.
	ErrIDTaken = errors.New("cafes: cafe id already registered")
)

// Cafe is one location in the registry.
type Cafe struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// slugify turns a café name into a stable id: lowercase, runs of
// non-alphanumerics collapse to single hyphens.
func slugify(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
