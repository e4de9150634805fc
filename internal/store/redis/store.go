// Package redis stores the Document as a single Redis string.
// SET replaces the value atomically, so readers never observe a partial write.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/store"
)

// DefaultKey is the key holding the document when none is configured.
const DefaultKey = "sitecms:document"

// Store implements store.Store on top of a Redis client.
type Store struct {
	client *redis.Client
	key    string
}

var (
	_ store.Store  = (*Store)(nil)
	_ store.Pinger = (*Store)(nil)
)

// NewStore creates a Redis-backed document store. An empty key selects DefaultKey.
func NewStore(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// Load fetches and decodes the document. A missing key is an empty Document.
func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return store.Decode(data)
}

// Save encodes and stores the document without expiry.
func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	data, err := store.Encode(doc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Exists reports whether the document key is present.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	n, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check document key: %w", err)
	}
	return n > 0, nil
}

// Ping checks the connection, used by readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
