package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// checkoutDocument stores the full serialized checkout as JSON so every
// variant field round-trips untouched.
type checkoutDocument struct {
	ID   string `bson:"_id"`
	Data string `bson:"data"`
}

type mongoStore struct {
	checkouts *mongo.Collection
	orders    *mongo.Collection
}

func NewMongoStore(db *mongo.Database) DurableStore {
	return &mongoStore{
		checkouts: db.Collection("agent_checkouts"),
		orders:    db.Collection("agent_orders"),
	}
}

func (m *mongoStore) LoadCheckout(ctx context.Context, checkoutID string) (*domain.Checkout, error) {
	var doc checkoutDocument
	err := m.checkouts.FindOne(ctx, bson.M{"_id": checkoutID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}

	var checkout domain.Checkout
	if err := json.Unmarshal([]byte(doc.Data), &checkout); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout %s: %w", checkoutID, err)
	}
	return &checkout, nil
}

func (m *mongoStore) SaveCheckout(ctx context.Context, checkout *domain.Checkout) error {
	return m.upsert(ctx, m.checkouts, checkout.ID, checkout)
}

func (m *mongoStore) DeleteCheckout(ctx context.Context, checkoutID string) error {
	if _, err := m.checkouts.DeleteOne(ctx, bson.M{"_id": checkoutID}); err != nil {
		return fmt.Errorf("failed to delete checkout: %w", err)
	}
	return nil
}

func (m *mongoStore) SaveOrder(ctx context.Context, orderID string, checkout *domain.Checkout) error {
	return m.upsert(ctx, m.orders, orderID, checkout)
}

func (m *mongoStore) upsert(ctx context.Context, coll *mongo.Collection, id string, checkout *domain.Checkout) error {
	data, err := json.Marshal(checkout)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout: %w", err)
	}

	doc := checkoutDocument{ID: id, Data: string(data)}
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", id, err)
	}
	return nil
}
