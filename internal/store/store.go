// Package store persists the single shared Document.
//
// Implementations must make Save atomic: a concurrent Load observes either the
// previous Document or the new one, never a partially written one. Callers that
// both read and write go through the guard package, never through a Store directly.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
)

// Store loads and persists the whole Document.
type Store interface {
	// Load returns the persisted Document, or an empty one if none exists yet.
	// Unparseable content yields an error wrapping domain.ErrCorruptDocument.
	Load(ctx context.Context) (*domain.Document, error)

	// Save atomically replaces the persisted Document in its entirety.
	Save(ctx context.Context, doc *domain.Document) error

	// Exists reports whether a Document has ever been persisted.
	Exists(ctx context.Context) (bool, error)
}

// Pinger is implemented by backends reached over the network.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Decode parses stored bytes into a Document.
func Decode(data []byte) (*domain.Document, error) {
	doc := domain.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	return doc, nil
}

// Encode serializes doc the way every backend stores it.
func Encode(doc *domain.Document) ([]byte, error) {
	if doc == nil {
		doc = domain.NewDocument()
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return append(data, '\n'), nil
}
