package uploads

import (
	"context"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

// LogoRecorder writes a logo URL into the settings section.
type LogoRecorder interface {
	SetLogo(ctx context.Context, kind, url string) error
}

// Upload is one incoming logo file.
type Upload struct {
	LogoType    string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Logos stores logo files and records their URL.
type Logos struct {
	storage  Storage
	settings LogoRecorder
	logger   logger.Logger
}

func NewLogos(storage Storage, settings LogoRecorder, log logger.Logger) *Logos {
	return &Logos{storage: storage, settings: settings, logger: logger.Component(log, "uploads")}
}

// Upload stores the file outside the guard, then records its URL through it.
// The stored object is removed again if recording fails.
func (l *Logos) Upload(ctx context.Context, up Upload) (string, error) {
	if !IsImage(up.ContentType) {
		return "", fmt.Errorf("%w: only image files are allowed", domain.ErrInvalidInput)
	}
	kind, err := LogoType(up.LogoType)
	if err != nil {
		return "", err
	}
	key, err := NameFor(kind, up.Filename, up.ContentType)
	if err != nil {
		return "", err
	}

	url, err := l.storage.Save(ctx, key, up.Body, up.Size, up.ContentType)
	if err != nil {
		return "", err
	}

	if err := l.settings.SetLogo(ctx, kind, url); err != nil {
		if derr := l.storage.Delete(context.WithoutCancel(ctx), key); derr != nil {
			l.logger.Warn("failed to remove orphaned logo", logger.String("key", key), logger.Error(derr))
		}
		return "", err
	}

	l.logger.Info("logo uploaded", logger.String("type", kind), logger.String("url", url))
	return url, nil
}
