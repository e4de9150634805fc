package content

import (
	"context"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/guard"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

// Newsletters is the newsletter-subscription collection. Emails are unique.
type Newsletters struct {
	guard  *guard.Guard
	stamp  stamper
	logger logger.Logger
}

// List returns subscriptions in signup order. Never nil.
func (n *Newsletters) List(ctx context.Context) ([]domain.Subscription, error) {
	doc, err := n.guard.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Newsletters == nil {
		return []domain.Subscription{}, nil
	}
	return doc.Newsletters, nil
}

// Subscribe adds email unless an entry with exactly the same email exists,
// in which case that entry is returned untouched with created == false.
func (n *Newsletters) Subscribe(ctx context.Context, addr string) (domain.Subscription, bool, error) {
	if err := email("email", addr); err != nil {
		return domain.Subscription{}, false, err
	}

	var (
		sub     domain.Subscription
		created bool
	)
	_, err := n.guard.Update(ctx, func(doc *domain.Document) error {
		for _, existing := range doc.Newsletters {
			if existing.Email == addr {
				sub = existing
				return guard.ErrUnchanged
			}
		}
		sub = domain.Subscription{
			ID:        n.stamp.newID(),
			Email:     addr,
			Timestamp: domain.Timestamp(n.stamp.now()),
		}
		doc.Newsletters = append(doc.Newsletters, sub)
		created = true
		return nil
	})
	if err != nil {
		return domain.Subscription{}, false, err
	}

	if created {
		n.logger.Info("newsletter subscription added", logger.String("id", sub.ID))
	}
	return sub, created, nil
}

// Remove deletes the subscription with id. A missing id reports false and no error.
func (n *Newsletters) Remove(ctx context.Context, id string) (bool, error) {
	found := false
	_, err := n.guard.Update(ctx, func(doc *domain.Document) error {
		kept := doc.Newsletters[:0:0]
		for _, sub := range doc.Newsletters {
			if sub.ID == id {
				found = true
				continue
			}
			kept = append(kept, sub)
		}
		if !found {
			return guard.ErrUnchanged
		}
		doc.Newsletters = kept
		return nil
	})
	return found, err
}
