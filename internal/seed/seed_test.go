package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	t.Setenv("SEED_SMTP_PASSWORD", "hunter2")

	p := writeSeed(t, `
settings:
  siteTitle: Tilo Live
  companyName: Tilo Live
  contactEmail: hello@tilolive.in
  socialMedia:
    instagram: https://instagram.com/tilolive
smtpSettings:
  host: smtp.example.com
  port: 587
  username: mailer
  password: ${SEED_SMTP_PASSWORD}
  from_email: no-reply@tilolive.in
  from_name: Tilo Live
`)

	doc, err := NewLoader(p).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Settings == nil || doc.Settings.SiteTitle != "Tilo Live" {
		t.Fatalf("Settings = %+v", doc.Settings)
	}
	if doc.Settings.SocialMedia["instagram"] != "https://instagram.com/tilolive" {
		t.Errorf("SocialMedia = %v", doc.Settings.SocialMedia)
	}
	if doc.SMTPSettings == nil || doc.SMTPSettings.Port != 587 || doc.SMTPSettings.Password != "hunter2" {
		t.Errorf("SMTPSettings = %+v", doc.SMTPSettings)
	}
	if doc.SMTPSettings.FromEmail != "no-reply@tilolive.in" {
		t.Errorf("from_email not decoded")
	}
	if doc.AdminPasswordHash != "" || doc.Messages != nil {
		t.Error("seed must not carry credentials or collections")
	}
}

func TestLoadPartial(t *testing.T) {
	p := writeSeed(t, "settings:\n  siteTitle: Only settings\n")

	doc, err := NewLoader(p).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.SMTPSettings != nil {
		t.Errorf("SMTPSettings = %+v, want nil", doc.SMTPSettings)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"bad yaml", func(t *testing.T) string { return writeSeed(t, "settings: [unclosed") }},
		{"wrong shape", func(t *testing.T) string { return writeSeed(t, "smtpSettings:\n  port: not-a-number\n") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLoader(tt.path(t)).Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestLoadKeepsLiteralDollars(t *testing.T) {
	t.Setenv("SEED_SMTP_USER", "mailer")
	t.Setenv("x", "expanded")

	p := writeSeed(t, `
settings:
  siteTitle: "Price $5 $x"
smtpSettings:
  host: smtp.example.com
  username: ${SEED_SMTP_USER}
  password: "pa$$w0rd$x${UNSET_SEED_VAR}"
`)

	doc, err := NewLoader(p).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := doc.SMTPSettings.Password; got != "pa$$w0rd$x" {
		t.Errorf("Password = %q, want %q", got, "pa$$w0rd$x")
	}
	if got := doc.SMTPSettings.Username; got != "mailer" {
		t.Errorf("Username = %q, want mailer", got)
	}
	if got := doc.Settings.SiteTitle; got != "Price $5 $x" {
		t.Errorf("SiteTitle = %q", got)
	}
}
