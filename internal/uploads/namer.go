// Package uploads names, stores and records uploaded logo images.
package uploads

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/sitecms/internal/content"
	"github.com/MrSnakeDoc/sitecms/internal/domain"
)

// suffix returns 8 random hex characters (32 bits).
var suffix = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// extensionsByType is consulted only when the client filename carries no usable extension.
var extensionsByType = map[string]string{
	"image/png":                "png",
	"image/jpeg":               "jpg",
	"image/gif":                "gif",
	"image/webp":               "webp",
	"image/svg+xml":            "svg",
	"image/avif":               "avif",
	"image/bmp":                "bmp",
	"image/x-icon":             "ico",
	"image/vnd.microsoft.icon": "ico",
}

// LogoType normalizes the logoType form value. Empty means header.
func LogoType(s string) (string, error) {
	switch s {
	case "", content.LogoHeader:
		return content.LogoHeader, nil
	case content.LogoFooter:
		return content.LogoFooter, nil
	}
	return "", fmt.Errorf("%w: logoType must be %q or %q", domain.ErrInvalidInput, content.LogoHeader, content.LogoFooter)
}

// IsImage reports whether contentType names an image media type.
func IsImage(contentType string) bool {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mt)), "image/")
}

// NameFor returns "{logoType}_logo_{8 hex}.{ext}".
//
// ext is the last dot-segment of the base filename, kept as sent. When the
// filename has no such segment, ext comes from contentType instead.
func NameFor(logoType, filename, contentType string) (string, error) {
	ext := extension(filename)
	if ext == "" {
		mt, _, _ := strings.Cut(contentType, ";")
		ext = extensionsByType[strings.ToLower(strings.TrimSpace(mt))]
	}
	if ext == "" {
		return "", fmt.Errorf("%w: cannot determine file extension for %q", domain.ErrInvalidInput, filename)
	}
	return fmt.Sprintf("%s_logo_%s.%s", logoType, suffix(), ext), nil
}

func extension(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	ext := base[i+1:]
	for _, r := range ext {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}
