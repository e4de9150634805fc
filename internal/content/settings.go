package content

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/guard"
)

// Logo kinds accepted by SetLogo.
const (
	LogoHeader = "header"
	LogoFooter = "footer"
)

// Settings is the site-settings section.
type Settings struct {
	guard          *guard.Guard
	defaultCompany string
}

// Get returns the stored settings, or nil when none were saved yet.
func (s *Settings) Get(ctx context.Context) (*domain.SiteSettings, error) {
	doc, err := s.guard.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Settings == nil {
		return nil, nil
	}
	c := doc.Settings.Clone()
	return &c, nil
}

// Public returns the anonymous view of the settings.
func (s *Settings) Public(ctx context.Context) (domain.PublicSettings, error) {
	doc, err := s.guard.Snapshot(ctx)
	if err != nil {
		return domain.PublicSettings{}, err
	}
	return doc.Settings.Public(s.defaultCompany), nil
}

// Replace overwrites the whole settings section and returns what was stored.
func (s *Settings) Replace(ctx context.Context, next domain.SiteSettings) (domain.SiteSettings, error) {
	if next.ContactEmail != "" && !ValidEmail(next.ContactEmail) {
		return domain.SiteSettings{}, invalid("contactEmail is not a valid e-mail address")
	}
	if next.SocialMedia == nil {
		next.SocialMedia = map[string]string{}
	}

	stored := next.Clone()
	_, err := s.guard.Update(ctx, func(doc *domain.Document) error {
		v := stored.Clone()
		doc.Settings = &v
		return nil
	})
	if err != nil {
		return domain.SiteSettings{}, err
	}
	return stored, nil
}

// SetLogo records url as the header or footer logo, leaving the rest of the settings intact.
func (s *Settings) SetLogo(ctx context.Context, kind, url string) error {
	_, err := s.guard.Update(ctx, func(doc *domain.Document) error {
		if doc.Settings == nil {
			doc.Settings = &domain.SiteSettings{}
		}
		v := url
		switch kind {
		case LogoHeader:
			doc.Settings.HeaderLogo = &v
		case LogoFooter:
			doc.Settings.FooterLogo = &v
		default:
			return fmt.Errorf("%w: unknown logo type %q", domain.ErrInvalidInput, kind)
		}
		return nil
	})
	return err
}
