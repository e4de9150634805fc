package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/guard"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

// Credentials owns the single admin password hash stored in the Document.
//
// bcrypt work always happens outside the guard; only the hash swap runs under it.
type Credentials struct {
	guard           *guard.Guard
	initialPassword string
	cost            int
	logger          logger.Logger
}

// NewCredentials creates a credential manager. initialPassword seeds the hash on first use.
// A cost below bcrypt.MinCost selects bcrypt.DefaultCost.
func NewCredentials(g *guard.Guard, initialPassword string, cost int, log logger.Logger) *Credentials {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{
		guard:           g,
		initialPassword: initialPassword,
		cost:            cost,
		logger:          logger.Component(log, "auth"),
	}
}

// VerifyOrBootstrap checks candidate against the stored hash, creating that hash
// from the initial password first if the Document has none.
func (c *Credentials) VerifyOrBootstrap(ctx context.Context, candidate string) (bool, error) {
	hash, err := c.currentHash(ctx)
	if err != nil {
		return false, err
	}
	return c.matches(hash, candidate), nil
}

// ChangePassword replaces the stored hash when oldPassword matches it.
func (c *Credentials) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrInvalidInput)
	}

	verified, err := c.currentHash(ctx)
	if err != nil {
		return err
	}
	if !c.matches(verified, oldPassword) {
		return domain.ErrInvalidCredential
	}

	next, err := c.hash(newPassword)
	if err != nil {
		return err
	}

	_, err = c.guard.Update(ctx, func(doc *domain.Document) error {
		// Someone else changed the password since we verified; the old one is stale.
		if doc.AdminPasswordHash != verified {
			return domain.ErrInvalidCredential
		}
		doc.AdminPasswordHash = next
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("admin password changed")
	return nil
}

// currentHash returns the stored hash, bootstrapping it exactly once if absent.
func (c *Credentials) currentHash(ctx context.Context) (string, error) {
	doc, err := c.guard.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	if doc.AdminPasswordHash != "" {
		return doc.AdminPasswordHash, nil
	}

	fresh, err := c.hash(c.initialPassword)
	if err != nil {
		return "", err
	}

	var stored string
	_, err = c.guard.Update(ctx, func(doc *domain.Document) error {
		if doc.AdminPasswordHash != "" {
			stored = doc.AdminPasswordHash
			return guard.ErrUnchanged
		}
		doc.AdminPasswordHash = fresh
		stored = fresh
		return nil
	})
	if err != nil {
		return "", err
	}

	if stored == fresh {
		c.logger.Info("admin credential bootstrapped from initial password")
	}
	return stored, nil
}

func (c *Credentials) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password too long", domain.ErrInvalidInput)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

func (c *Credentials) matches(hash, candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
	if err == nil {
		return true
	}
	if malformedHash(err) {
		c.logger.Warn("stored admin hash is unusable", logger.Error(err))
	}
	return false
}

// malformedHash reports whether err comes from the stored hash rather than the candidate.
func malformedHash(err error) bool {
	var (
		prefix  bcrypt.InvalidHashPrefixError
		cost    bcrypt.InvalidCostError
		version bcrypt.HashVersionTooNewError
	)
	return errors.Is(err, bcrypt.ErrHashTooShort) ||
		errors.As(err, &prefix) ||
		errors.As(err, &cost) ||
		errors.As(err, &version)
}
