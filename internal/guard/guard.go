// Package guard serializes read-modify-write cycles on the shared Document.
//
// Every call site that both reads and writes the Document goes through
// Guard.Update. A single lock covers the whole Document; it is held for the
// load-mutate-save triple and nothing else.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
	"github.com/MrSnakeDoc/sitecms/internal/metrics"
	"github.com/MrSnakeDoc/sitecms/internal/store"
)

// ErrUnchanged may be returned by a Mutator to end the cycle without saving.
// Update then returns the loaded Document and a nil error.
var ErrUnchanged = errors.New("document unchanged")

// Mutator changes the loaded Document in place.
// Returning any other error aborts the cycle; nothing is saved.
type Mutator func(doc *domain.Document) error

// Guard owns exclusive write access to a Store.
type Guard struct {
	store  store.Store
	logger logger.Logger
	sem    chan struct{}
}

// New creates a Guard over s.
func New(s store.Store, log logger.Logger) *Guard {
	return &Guard{
		store:  s,
		logger: logger.Component(log, "guard"),
		sem:    make(chan struct{}, 1),
	}
}

// Update acquires the lock, loads the Document, applies fn, saves, and returns the saved Document.
//
// ctx only bounds the wait for the lock. Once acquired, load and save run
// detached from ctx cancellation so a client disconnect cannot abort a save midway.
func (g *Guard) Update(ctx context.Context, fn Mutator) (*domain.Document, error) {
	waitStart := time.Now()
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for document guard: %w", ctx.Err())
	}
	metrics.GuardWait.Observe(time.Since(waitStart).Seconds())

	holdStart := time.Now()
	defer func() {
		<-g.sem
		metrics.GuardHold.Observe(time.Since(holdStart).Seconds())
	}()

	return g.cycle(context.WithoutCancel(ctx), fn)
}

func (g *Guard) cycle(ctx context.Context, fn Mutator) (*domain.Document, error) {
	doc, err := g.store.Load(ctx)
	if err != nil {
		metrics.DocumentUpdates.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	if err := fn(doc); err != nil {
		if errors.Is(err, ErrUnchanged) {
			metrics.DocumentUpdates.WithLabelValues("unchanged").Inc()
			return doc, nil
		}
		metrics.DocumentUpdates.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if err := g.store.Save(ctx, doc); err != nil {
		metrics.DocumentUpdates.WithLabelValues("failed").Inc()
		g.logger.Error("document save failed", logger.Error(err))
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	metrics.DocumentUpdates.WithLabelValues("saved").Inc()
	return doc, nil
}

// Snapshot returns the current Document without taking the lock.
// Store saves are atomic, so the result is always a fully persisted Document.
func (g *Guard) Snapshot(ctx context.Context) (*domain.Document, error) {
	doc, err := g.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

// Initialize persists seed when the store holds no Document yet and
// verifies that an existing one parses. Meant to run once at startup.
func (g *Guard) Initialize(ctx context.Context, seed *domain.Document) (created bool, err error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	defer func() { <-g.sem }()

	exists, err := g.store.Exists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		if _, err := g.store.Load(ctx); err != nil {
			return false, err
		}
		return false, nil
	}

	if seed == nil {
		seed = domain.NewDocument()
	}
	if err := g.store.Save(ctx, seed); err != nil {
		return false, fmt.Errorf("failed to create document: %w", err)
	}
	g.logger.Info("created new document")
	return true, nil
}
