package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures the MongoDB-backed store.
type MongoConfig struct {
	URI        string // connection string, e.g. "mongodb://localhost:27017"
	Database   string // defaults to "subnetplan"
	Collection string // defaults to "plans"
}

// Mongo is a Store backed by MongoDB, for deployments where shared plans
// should survive restarts and be queryable alongside other data.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongo creates a MongoDB-backed store and verifies connectivity.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if cfg.Database == "" {
		cfg.Database = "subnetplan"
	}
	if cfg.Collection == "" {
		cfg.Collection = "plans"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save stores a token under a fresh id.
func (m *Mongo) Save(ctx context.Context, token string) (*Record, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	rec := &Record{ID: NewID(), Token: token, CreatedAt: time.Now().UTC()}

	if _, err := m.coll.InsertOne(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	return rec, nil
}

// Get retrieves a record by id.
func (m *Mongo) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return &rec, nil
}

// Delete removes a record.
func (m *Mongo) Delete(ctx context.Context, id string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// Ensure Mongo implements Store.
var _ Store = (*Mongo)(nil)
