package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Document is the single persisted aggregate holding all application state.
//
// It is the unit of persistence AND the unit of mutual exclusion: every
// mutation loads the whole Document, changes one section and writes the whole
// Document back. Sections are optional; an absent section is an empty default.
type Document struct {
	// ─────────────────────────────
	// Credential
	// ─────────────────────────────

	// AdminPasswordHash is the bcrypt hash of the shared admin password.
	// It is created lazily on the first login attempt.
	AdminPasswordHash string

	// ─────────────────────────────
	// Replace-in-place sections
	// ─────────────────────────────

	Settings     *SiteSettings
	SMTPSettings *SMTPConfig

	// ─────────────────────────────
	// Append-only collections
	// (insertion order = arrival order)
	// ─────────────────────────────

	Messages    []ContactMessage
	Newsletters []Subscription

	// extra keeps top-level keys this version does not know about,
	// so they survive a load/save cycle untouched.
	extra map[string]json.RawMessage
}

const (
	keyAdminPasswordHash = "adminPasswordHash"
	keySettings          = "settings"
	keySMTPSettings      = "smtpSettings"
	keyMessages          = "messages"
	keyNewsletters       = "newsletters"
)

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{}
}

// MarshalJSON writes known sections with their wire names and re-emits unknown keys.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.extra)+5)
	for k, v := range d.extra {
		out[k] = v
	}
	if d.AdminPasswordHash != "" {
		out[keyAdminPasswordHash] = d.AdminPasswordHash
	}
	if d.Settings != nil {
		out[keySettings] = d.Settings
	}
	if d.SMTPSettings != nil {
		out[keySMTPSettings] = d.SMTPSettings
	}
	if d.Messages != nil {
		out[keyMessages] = d.Messages
	}
	if d.Newsletters != nil {
		out[keyNewsletters] = d.Newsletters
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes known sections and stashes everything else.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = Document{}
	for k, v := range raw {
		var err error
		switch k {
		case keyAdminPasswordHash:
			err = decodeNullable(v, &d.AdminPasswordHash)
		case keySettings:
			err = decodeNullable(v, &d.Settings)
		case keySMTPSettings:
			err = decodeNullable(v, &d.SMTPSettings)
		case keyMessages:
			err = decodeNullable(v, &d.Messages)
		case keyNewsletters:
			err = decodeNullable(v, &d.Newsletters)
		default:
			if d.extra == nil {
				d.extra = make(map[string]json.RawMessage)
			}
			d.extra[k] = v
		}
		if err != nil {
			return fmt.Errorf("section %q: %w", k, err)
		}
	}
	return nil
}

func decodeNullable(data json.RawMessage, v any) error {
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Clone returns a deep copy of the Document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := &Document{AdminPasswordHash: d.AdminPasswordHash}
	if d.Settings != nil {
		s := d.Settings.Clone()
		c.Settings = &s
	}
	if d.SMTPSettings != nil {
		s := *d.SMTPSettings
		c.SMTPSettings = &s
	}
	if d.Messages != nil {
		c.Messages = make([]ContactMessage, len(d.Messages))
		for i, m := range d.Messages {
			c.Messages[i] = m.clone()
		}
	}
	if d.Newsletters != nil {
		c.Newsletters = append([]Subscription(nil), d.Newsletters...)
	}
	if d.extra != nil {
		c.extra = make(map[string]json.RawMessage, len(d.extra))
		for k, v := range d.extra {
			c.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// Timestamp returns t as the ISO-8601 UTC string stored in the document.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
