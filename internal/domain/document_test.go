package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDocumentRoundTripKeepsUnknownKeys(t *testing.T) {
	input := `{
		"adminPasswordHash": "$2a$10$abc",
		"settings": {"siteTitle": "Tilo", "socialMedia": {"x": "https://x.com/tilo"}},
		"messages": [{"id": "m1", "name": "A", "email": "a@x.com", "subject": "S", "message": "M", "timestamp": "2024-01-01T00:00:00", "read": false}],
		"legacyCounter": 42
	}`

	var doc Document
	if err := json.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if doc.AdminPasswordHash != "$2a$10$abc" {
		t.Errorf("AdminPasswordHash = %q", doc.AdminPasswordHash)
	}
	if doc.Settings == nil || doc.Settings.SiteTitle != "Tilo" {
		t.Fatalf("Settings not decoded: %+v", doc.Settings)
	}
	if len(doc.Messages) != 1 || doc.Messages[0].Phone != nil {
		t.Errorf("Messages = %+v", doc.Messages)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), `"legacyCounter":42`) {
		t.Errorf("unknown key dropped: %s", out)
	}
	if strings.Contains(string(out), "smtpSettings") {
		t.Errorf("absent section should not be written: %s", out)
	}
}

func TestDocumentNullSections(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"settings": null, "messages": null}`), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.Settings != nil || doc.Messages != nil {
		t.Errorf("null sections should stay empty, got %+v", doc)
	}
}

func TestDocumentUnmarshalRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "{oops"},
		{name: "array root", input: "[]"},
		{name: "wrong section type", input: `{"messages": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Document
			if err := json.Unmarshal([]byte(tt.input), &doc); err == nil {
				t.Error("Unmarshal() should fail")
			}
		})
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	logo := "/uploads/a.png"
	phone := "+33"
	doc := &Document{
		Settings: &SiteSettings{SocialMedia: map[string]string{"fb": "u"}, HeaderLogo: &logo},
		Messages: []ContactMessage{{ID: "1", Phone: &phone}},
	}

	c := doc.Clone()
	c.Settings.SocialMedia["fb"] = "changed"
	*c.Settings.HeaderLogo = "changed"
	c.Messages[0].Read = true
	*c.Messages[0].Phone = "changed"

	if doc.Settings.SocialMedia["fb"] != "u" || *doc.Settings.HeaderLogo != logo {
		t.Error("settings shared with clone")
	}
	if doc.Messages[0].Read || *doc.Messages[0].Phone != "+33" {
		t.Error("messages shared with clone")
	}
}

func TestPublicSettingsRedaction(t *testing.T) {
	docs := []*Document{
		{},
		{AdminPasswordHash: "hash", SMTPSettings: &SMTPConfig{Host: "smtp", Password: "secret"}},
		{Settings: &SiteSettings{SiteTitle: "T", CompanyName: "Acme"}, SMTPSettings: &SMTPConfig{Username: "u"}},
	}

	for i, doc := range docs {
		out, err := json.Marshal(doc.Settings.Public("Tilo Live"))
		if err != nil {
			t.Fatalf("doc %d: Marshal() error = %v", i, err)
		}
		var keys map[string]any
		if err := json.Unmarshal(out, &keys); err != nil {
			t.Fatalf("doc %d: Unmarshal() error = %v", i, err)
		}
		for _, forbidden := range []string{"adminPasswordHash", "smtpSettings", "host", "port", "username", "password", "from_email", "from_name"} {
			if _, ok := keys[forbidden]; ok {
				t.Errorf("doc %d: public settings expose %q", i, forbidden)
			}
		}
		if keys["socialMedia"] == nil {
			t.Errorf("doc %d: socialMedia should never be null", i)
		}
	}
}

func TestPublicSettingsCompanyFallback(t *testing.T) {
	var s *SiteSettings
	if got := s.Public("Tilo Live").CompanyName; got != "Tilo Live" {
		t.Errorf("CompanyName = %q, want fallback", got)
	}
	s = &SiteSettings{CompanyName: "Acme"}
	if got := s.Public("Tilo Live").CompanyName; got != "Acme" {
		t.Errorf("CompanyName = %q, want Acme", got)
	}
}
