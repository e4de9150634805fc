package content

import (
	"context"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/guard"
)

// SMTP is the single outbound mail configuration record.
type SMTP struct {
	guard *guard.Guard
}

// Get returns the stored configuration, or nil when none was saved.
func (s *SMTP) Get(ctx context.Context) (*domain.SMTPConfig, error) {
	doc, err := s.guard.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if doc.SMTPSettings == nil {
		return nil, nil
	}
	c := *doc.SMTPSettings
	return &c, nil
}

// Replace overwrites the configuration.
func (s *SMTP) Replace(ctx context.Context, next domain.SMTPConfig) error {
	if err := required("host", next.Host); err != nil {
		return err
	}
	if next.Port < 1 || next.Port > 65535 {
		return invalid("port must be between 1 and 65535, got %d", next.Port)
	}
	if err := email("from_email", next.FromEmail); err != nil {
		return err
	}

	_, err := s.guard.Update(ctx, func(doc *domain.Document) error {
		c := next
		doc.SMTPSettings = &c
		return nil
	})
	return err
}
