package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
)

func TestFileStoreLoadMissingIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "db.json"))

	doc, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Settings != nil || len(doc.Messages) != 0 {
		t.Errorf("Load() on missing file = %+v, want empty", doc)
	}

	exists, err := s.Exists(context.Background())
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v; want false, nil", exists, err)
	}
}

func TestFileStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	s := NewFileStore(path)
	ctx := context.Background()

	doc := &domain.Document{
		AdminPasswordHash: "hash",
		Newsletters:       []domain.Subscription{{ID: "n1", Email: "a@x.com", Timestamp: "t"}},
	}
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.AdminPasswordHash != "hash" || len(got.Newsletters) != 1 || got.Newsletters[0].Email != "a@x.com" {
		t.Errorf("Load() = %+v", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated json", content: `{"messages": [`},
		{name: "empty file", content: ""},
		{name: "whitespace only", content: "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "db.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			_, err := NewFileStore(path).Load(context.Background())
			if !errors.Is(err, domain.ErrCorruptDocument) {
				t.Errorf("Load() error = %v, want ErrCorruptDocument", err)
			}
		})
	}
}

// Readers racing a writer must only ever see complete documents.
func TestFileStoreConcurrentLoadSeesWholeDocuments(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	ctx := context.Background()
	if err := s.Save(ctx, domain.NewDocument()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(stop)
		doc := domain.NewDocument()
		for i := 0; i < 50; i++ {
			doc.Messages = append(doc.Messages, domain.ContactMessage{ID: strings.Repeat("x", 200)})
			if err := s.Save(ctx, doc); err != nil {
				t.Errorf("Save() error = %v", err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if _, err := s.Load(ctx); err != nil {
					t.Errorf("Load() during writes error = %v", err)
					return
				}
			}
		}()
	}

	wg.Wait()
}

func TestMemoryStoreIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	doc := &domain.Document{Messages: []domain.ContactMessage{{ID: "1"}}}
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	doc.Messages[0].Read = true

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Messages[0].Read {
		t.Error("mutation after Save leaked into store")
	}
	if s.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", s.Saves())
	}
}

func TestMemoryStoreCorrupt(t *testing.T) {
	s := NewMemoryStore()
	s.SetRaw([]byte("not json"))

	if _, err := s.Load(context.Background()); !errors.Is(err, domain.ErrCorruptDocument) {
		t.Errorf("Load() error = %v, want ErrCorruptDocument", err)
	}
}

func TestFileStorePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if got := NewFileStore(path).Path(); got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}
}
