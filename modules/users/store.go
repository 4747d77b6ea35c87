// Package users owns the profile collection: account records created at
// sign-up, loaded into every session, and managed through the approval
// workflow.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/session"
)

const collectionName = "users"

var (
	// ErrNotFound is returned when no profile matches the lookup.
	ErrNotFound = errors.New("users: profile not found")
	// ErrEmailTaken is returned when a sign-up reuses an existing email.
	ErrEmailTaken = errors.New("users: email already registered")
)

// Profile is the full account record written at sign-up. Credential
// fields never leave this package.
type Profile struct {
	ID            string    `bson:"_id"`
	Email         string    `bson:"email"`
	Name          string    `bson:"name,omitempty"`
	Role          string    `bson:"role"`
	CafeID        string    `bson:"cafeId,omitempty"`
	ApprovalState string    `bson:"approvalState"`
	PasswordHash  []byte    `bson:"passwordHash,omitempty"`
	GoogleID      string    `bson:"googleId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

// Store reads and writes the users collection.
type Store struct {
	col *mongo.Collection
}

// NewStore creates a profile store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{col: db.Collection(collectionName)}
}

// LoadProfile implements session.ProfileLoader: it fetches the raw profile
// document and normalizes it at this boundary so unvalidated store shapes
// never reach capability logic.
func (s *Store) LoadProfile(ctx context.Context, principalID string) (access.Identity, error) {
	var doc access.IdentityDoc
	err := s.col.FindOne(ctx, bson.M{"_id": principalID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return access.Identity{}, session.ErrProfileNotFound
		}
		return access.Identity{}, fmt.Errorf("load profile: %w", err)
	}
	doc.ID = principalID
	return access.IdentityFromDoc(doc)
}

// FindByEmail returns the normalized identity registered under an email.
func (s *Store) FindByEmail(ctx context.Context, email string) (access.Identity, error) {
	var doc access.IdentityDoc
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return access.Identity{}, ErrNotFound
		}
		return access.Identity{}, fmt.Errorf("find profile: %w", err)
	}
	return access.IdentityFromDoc(doc)
}

// FindByGoogleID returns the identity linked to a Google account.
func (s *Store) FindByGoogleID(ctx context.Context, googleID string) (access.Identity, error) {
	var doc access.IdentityDoc
	err := s.col.FindOne(ctx, bson.M{"googleId": googleID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return access.Identity{}, ErrNotFound
		}
		return access.Identity{}, fmt.Errorf("find profile: %w", err)
	}
	return access.IdentityFromDoc(doc)
}

// Credentials returns the principal id and password hash for an email.
func (s *Store) Credentials(ctx context.Context, email string) (string, []byte, error) {
	var doc struct {
		ID           string `bson:"_id"`
		PasswordHash []byte `bson:"passwordHash"`
	}
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, ErrNotFound
		}
		return "", nil, fmt.Errorf("load credentials: %w", err)
	}
	return doc.ID, doc.PasswordHash, nil
}

// Create inserts a new profile. The email must be unused.
func (s *Store) Create(ctx context.Context, p Profile) error {
	if _, err := s.FindByEmail(ctx, p.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// List returns every normalized profile. Documents that fail boundary
// validation are skipped rather than poisoning the listing.
func (s *Store) List(ctx context.Context) ([]access.Identity, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cur.Close(ctx)

	var out []access.Identity
	for cur.Next(ctx) {
		var doc access.IdentityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		id, err := access.IdentityFromDoc(doc)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

func (s *Store) setFields(ctx context.Context, id string, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetApproval updates a profile's approval state.
func (s *Store) SetApproval(ctx context.Context, id string, state access.ApprovalState) error {
	return s.setFields(ctx, id, bson.M{"approvalState": string(state)})
}

// SetRole updates a profile's role.
func (s *Store) SetRole(ctx context.Context, id string, role access.Role) error {
	return s.setFields(ctx, id, bson.M{"role": string(role)})
}

// SetCafe assigns a profile to a café.
func (s *Store) SetCafe(ctx context.Context, id, cafeID string) error {
	return s.setFields(ctx, id, bson.M{"cafeId": cafeID})
}
