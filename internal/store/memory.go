package store

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
)

// MemoryStore keeps the encoded Document in memory.
// It goes through the same encode/decode path as the durable backends,
// so callers never share structure with the stored copy.
type MemoryStore struct {
	mu    sync.RWMutex
	data  []byte
	saves int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a MemoryStore already holding doc.
func NewMemoryStoreWith(doc *domain.Document) (*MemoryStore, error) {
	s := NewMemoryStore()
	if err := s.Save(context.Background(), doc); err != nil {
		return nil, err
	}
	s.saves = 0
	return s, nil
}

// Load decodes the held Document, or returns an empty one.
func (s *MemoryStore) Load(_ context.Context) (*domain.Document, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	if data == nil {
		return domain.NewDocument(), nil
	}
	return Decode(data)
}

// Save replaces the held Document.
func (s *MemoryStore) Save(_ context.Context, doc *domain.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	s.saves++
	return nil
}

// Exists reports whether Save was ever called.
func (s *MemoryStore) Exists(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data != nil, nil
}

// SetRaw replaces the held bytes verbatim. Used to simulate a corrupt backend.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)
}

// Saves returns how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.saves
}
