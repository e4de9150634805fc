package content

import (
	"fmt"
	"strings"

	"github.com/emersion/go-message/mail"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s is required", field)
	}
	return nil
}

// ValidEmail reports whether s is a bare addr-spec such as "a@x.com".
// Display-name forms ("A <a@x.com>") are rejected.
func ValidEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}

func email(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	if !ValidEmail(value) {
		return invalid("%s is not a valid e-mail address", field)
	}
	return nil
}
