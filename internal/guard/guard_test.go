package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
	"github.com/MrSnakeDoc/sitecms/internal/store"
)

func newTestGuard(t *testing.T) (*Guard, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return New(s, logger.NewNop()), s
}

func TestUpdateConcurrentAppendsLoseNothing(t *testing.T) {
	g, _ := newTestGuard(t)
	ctx := context.Background()

	const n = 64
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := g.Update(ctx, func(doc *domain.Document) error {
				doc.Messages = append(doc.Messages, domain.ContactMessage{ID: fmt.Sprintf("m%d", i)})
				return nil
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		}
	}

	doc, err := g.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(doc.Messages) != ok {
		t.Errorf("messages = %d, successful appends = %d", len(doc.Messages), ok)
	}
	if ok != n {
		t.Errorf("successful appends = %d, want %d", ok, n)
	}
}

func TestUpdateUnchangedSkipsSave(t *testing.T) {
	g, s := newTestGuard(t)

	doc, err := g.Update(context.Background(), func(doc *domain.Document) error {
		doc.AdminPasswordHash = "not persisted"
		return ErrUnchanged
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if doc == nil {
		t.Fatal("Update() returned nil document")
	}
	if s.Saves() != 0 {
		t.Errorf("Saves() = %d, want 0", s.Saves())
	}
}

func TestUpdateMutatorErrorAborts(t *testing.T) {
	g, s := newTestGuard(t)
	boom := errors.New("boom")

	_, err := g.Update(context.Background(), func(doc *domain.Document) error {
		doc.AdminPasswordHash = "x"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Update() error = %v, want boom", err)
	}
	if s.Saves() != 0 {
		t.Errorf("Saves() = %d, want 0", s.Saves())
	}
}

func TestUpdateCorruptDocument(t *testing.T) {
	g, s := newTestGuard(t)
	s.SetRaw([]byte("{"))

	_, err := g.Update(context.Background(), func(*domain.Document) error { return nil })
	if !errors.Is(err, domain.ErrCorruptDocument) {
		t.Errorf("Update() error = %v, want ErrCorruptDocument", err)
	}
}

func TestUpdateHonoursContextWhileWaiting(t *testing.T) {
	g, _ := newTestGuard(t)

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = g.Update(context.Background(), func(*domain.Document) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.Update(ctx, func(*domain.Document) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Update() error = %v, want DeadlineExceeded", err)
	}
}

// cancelAwareStore fails Save when its context is already cancelled.
type cancelAwareStore struct {
	*store.MemoryStore
}

func (s cancelAwareStore) Save(ctx context.Context, doc *domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemoryStore.Save(ctx, doc)
}

func TestUpdateSaveSurvivesCancellation(t *testing.T) {
	mem := store.NewMemoryStore()
	g := New(cancelAwareStore{mem}, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	_, err := g.Update(ctx, func(doc *domain.Document) error {
		cancel() // client goes away mid-cycle
		doc.AdminPasswordHash = "kept"
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	doc, err := mem.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.AdminPasswordHash != "kept" {
		t.Error("save was aborted by cancellation")
	}
}

func TestInitialize(t *testing.T) {
	g, s := newTestGuard(t)
	ctx := context.Background()

	seed := &domain.Document{Settings: &domain.SiteSettings{SiteTitle: "Seeded"}}
	created, err := g.Initialize(ctx, seed)
	if err != nil || !created {
		t.Fatalf("Initialize() = %v, %v; want true, nil", created, err)
	}

	created, err = g.Initialize(ctx, &domain.Document{Settings: &domain.SiteSettings{SiteTitle: "Other"}})
	if err != nil || created {
		t.Fatalf("second Initialize() = %v, %v; want false, nil", created, err)
	}

	doc, _ := g.Snapshot(ctx)
	if doc.Settings.SiteTitle != "Seeded" {
		t.Errorf("SiteTitle = %q, want Seeded", doc.Settings.SiteTitle)
	}

	s.SetRaw([]byte("garbage"))
	if _, err := g.Initialize(ctx, nil); !errors.Is(err, domain.ErrCorruptDocument) {
		t.Errorf("Initialize() on corrupt store error = %v, want ErrCorruptDocument", err)
	}
}
