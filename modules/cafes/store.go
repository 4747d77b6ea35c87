package cafes

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "cafes"

// MongoStore persists the café registry.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates a café store over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(collectionName)}
}

// Insert registers a new café.
func (s *MongoStore) Insert(ctx context.Context, c Cafe) error {
	if _, err := s.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrIDTaken
		}
		return fmt.Errorf("insert cafe: %w", err)
	}
	return nil
}

// Get returns a café by id.
func (s *MongoStore) Get(ctx context.Context, id string) (Cafe, error) {
	var c Cafe
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Cafe{}, ErrNotFound
		}
		return Cafe{}, fmt.Errorf("get cafe: %w", err)
	}
	return c, nil
}

// List returns every café sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]Cafe, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list cafes: %w", err)
	}
	defer cur.Close(ctx)

	var out []Cafe
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode cafes: %w", err)
	}
	return out, nil
}

// Update replaces a café record.
func (s *MongoStore) Update(ctx context.Context, c Cafe) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("update cafe: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
