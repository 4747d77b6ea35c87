package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "inventory"

var (
	// ErrNotFound is returned when no item matches the lookup.
	ErrNotFound = errors.New("inventory: item not found")
	// ErrInvalidItem is returned for items failing validation.
	ErrInvalidItem = errors.New("inventory: invalid item")
)

// MongoStore persists inventory items.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates an inventory store over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(collectionName)}
}

// Insert writes a new item.
func (s *MongoStore) Insert(ctx context.Context, item Item) error {
	if _, err := s.col.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// InsertMany writes a batch of items, used by seeding.
func (s *MongoStore) InsertMany(ctx context.Context, items []Item) error {
	docs := make([]any, len(items))
	for i, item := range items {
		docs[i] = item
	}
	if _, err := s.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert items: %w", err)
	}
	return nil
}

// Get returns a single item by id.
func (s *MongoStore) Get(ctx context.Context, id string) (Item, error) {
	var item Item
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns all items sorted by name. Tenant filtering happens in the
// service layer.
func (s *MongoStore) List(ctx context.Context) ([]Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer cur.Close(ctx)

	var out []Item
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return out, nil
}

// CountByCafe reports how many items a café already has.
func (s *MongoStore) CountByCafe(ctx context.Context, cafeID string) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"cafeId": cafeID})
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Update replaces an existing item.
func (s *MongoStore) Update(ctx context.Context, item Item) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
