package content

import (
	"context"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/guard"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

// ContactInput is what a visitor submits through the contact form.
type ContactInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

func (in ContactInput) validate() error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if err := email("email", in.Email); err != nil {
		return err
	}
	if err := required("subject", in.Subject); err != nil {
		return err
	}
	return required("message", in.Message)
}

// Messages is the contact-message collection.
type Messages struct {
	guard  *guard.Guard
	stamp  stamper
	logger logger.Logger
}

// List returns messages in arrival order. Never nil.
func (m *Messages) List(ctx context.Context) ([]domain.ContactMessage, error) {
	doc, err := m.guard.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Messages == nil {
		return []domain.ContactMessage{}, nil
	}
	return doc.Messages, nil
}

// Append stores a new unread message with a generated id and timestamp.
func (m *Messages) Append(ctx context.Context, in ContactInput) (domain.ContactMessage, error) {
	if err := in.validate(); err != nil {
		return domain.ContactMessage{}, err
	}

	msg := domain.ContactMessage{
		ID:        m.stamp.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		Timestamp: domain.Timestamp(m.stamp.now()),
		Read:      false,
	}

	_, err := m.guard.Update(ctx, func(doc *domain.Document) error {
		doc.Messages = append(doc.Messages, msg)
		return nil
	})
	if err != nil {
		return domain.ContactMessage{}, err
	}

	m.logger.Info("contact message received", logger.String("id", msg.ID))
	return msg, nil
}

// Remove deletes the message with id. A missing id reports false and no error.
func (m *Messages) Remove(ctx context.Context, id string) (bool, error) {
	found := false
	_, err := m.guard.Update(ctx, func(doc *domain.Document) error {
		kept := doc.Messages[:0:0]
		for _, msg := range doc.Messages {
			if msg.ID == id {
				found = true
				continue
			}
			kept = append(kept, msg)
		}
		if !found {
			return guard.ErrUnchanged
		}
		doc.Messages = kept
		return nil
	})
	return found, err
}

// MarkRead sets the read flag on the message with id.
func (m *Messages) MarkRead(ctx context.Context, id string) (bool, error) {
	found := false
	_, err := m.guard.Update(ctx, func(doc *domain.Document) error {
		changed := false
		for i := range doc.Messages {
			if doc.Messages[i].ID != id {
				continue
			}
			found = true
			if !doc.Messages[i].Read {
				doc.Messages[i].Read = true
				changed = true
			}
		}
		if !changed {
			return guard.ErrUnchanged
		}
		return nil
	})
	return found, err
}
