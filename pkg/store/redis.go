package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed store.
type RedisConfig struct {
	Addr     string        // host:port
	Password string        // optional
	DB       int           // optional database index
	TTL      time.Duration // 0 means plans never expire
}

// Redis is a Store backed by Redis, for multi-instance deployments where
// any instance must be able to resolve a plan id minted by another.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store and verifies connectivity.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &Redis{client: client, ttl: cfg.TTL}, nil
}

// key namespaces plan records in the shared keyspace.
func key(id string) string { return "subnetplan:plan:" + id }

// Save stores a token under a fresh id.
func (r *Redis) Save(ctx context.Context, token string) (*Record, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	rec := &Record{ID: NewID(), Token: token, CreatedAt: time.Now().UTC()}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	if err := r.client.Set(ctx, key(rec.ID), data, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}
	return rec, nil
}

// Get retrieves a record by id.
func (r *Redis) Get(ctx context.Context, id string) (*Record, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &rec, nil
}

// Delete removes a record.
func (r *Redis) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, key(id)).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error { return r.client.Close() }

// Ensure Redis implements Store.
var _ Store = (*Redis)(nil)
