package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
)

const collectionCarts = "carts"

// CartRepository implements ports.CartRepository using MongoDB.
type CartRepository struct {
	col *mongo.Collection
	ttl time.Duration
}

// NewCartRepository stores carts in db. Carts untouched for ttl are removed
// by a TTL index (see EnsureIndexes).
func NewCartRepository(db *mongo.Database, ttl time.Duration) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts), ttl: ttl}
}

type cartLineDoc struct {
	ItemID    string  `bson:"item_id"`
	Name      string  `bson:"name"`
	Quantity  int     `bson:"quantity"`
	UnitPrice float64 `bson:"unit_price"`
}

type cartDoc struct {
	SessionID   string        `bson:"session_id"`
	EventID     string        `bson:"event_id"`
	TableNumber string        `bson:"table_number"`
	Lines       []cartLineDoc `bson:"lines"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

func keyFilter(key ports.CartKey) bson.M {
	return bson.M{
		"session_id":   key.SessionID,
		"event_id":     key.EventID,
		"table_number": key.TableNumber,
	}
}

// Load retrieves the cart for key, or an empty cart when none is stored.
func (r *CartRepository) Load(ctx context.Context, key ports.CartKey) (*domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc cartDoc
	err := r.col.FindOne(ctx, keyFilter(key)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.NewCart(), nil
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	lines := make([]domain.CartLine, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = domain.CartLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return domain.NewCart(lines...), nil
}

// Save upserts the whole cart for key.
func (r *CartRepository) Save(ctx context.Context, key ports.CartKey, cart *domain.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	src := cart.Lines()
	lines := make([]cartLineDoc, len(src))
	for i, l := range src {
		lines[i] = cartLineDoc{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	update := bson.M{"$set": bson.M{
		"lines":      lines,
		"updated_at": time.Now().UTC(),
	}}
	_, err := r.col.UpdateOne(ctx, keyFilter(key), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}

// Delete removes the cart for key. Deleting a missing cart is not an error.
func (r *CartRepository) Delete(ctx context.Context, key ports.CartKey) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, keyFilter(key)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// Rekey moves every cart of fromSessionID to toSessionID.
func (r *CartRepository) Rekey(ctx context.Context, fromSessionID, toSessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"session_id": toSessionID,
		"updated_at": time.Now().UTC(),
	}}
	if _, err := r.col.UpdateMany(ctx, bson.M{"session_id": fromSessionID}, update); err != nil {
		return fmt.Errorf("rekey carts: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index and, when a ttl is set, the expiry
// index on the carts collection.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "session_id", Value: 1},
				{Key: "event_id", Value: 1},
				{Key: "table_number", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if r.ttl > 0 {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(r.ttl.Seconds())),
		})
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
