package config

import (
	"os"
	"testing"
	"time"
)

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustSize(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  int64
		wantPanic bool
	}{
		{name: "missing uses default", value: "", expected: 1234},
		{name: "megabytes", value: "5MB", expected: 5_000_000},
		{name: "kilobytes", value: "512k", expected: 512_000},
		{name: "plain bytes", value: "100", expected: 100},
		{name: "garbage", value: "lots", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_SIZE", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("mustSize() should have panicked")
					}
				}()
			}

			result := mustSize("TEST_SIZE", 1234)
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("mustSize() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(` https://a.com, "https://b.com" ,,'c' `)
	want := []string{"https://a.com", "https://b.com", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitAndTrim() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitAndTrim()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitAndTrim("") != nil {
		t.Error("splitAndTrim(\"\") should be nil")
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SITECMS_STORE", "SITECMS_TOKEN_MODE", "SITECMS_UPLOADS_BACKEND", "SITECMS_ADMIN_TOKEN", "SITECMS_CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.StoreBackend != StoreFile || cfg.TokenMode != TokenStatic || cfg.UploadsBackend != UploadsLocal {
		t.Errorf("backends = %s/%s/%s", cfg.StoreBackend, cfg.TokenMode, cfg.UploadsBackend)
	}
	if cfg.AdminToken != "admin-token-tilolive" || cfg.AdminPassword != "admin123" {
		t.Errorf("compat defaults changed: token=%q password=%q", cfg.AdminToken, cfg.AdminPassword)
	}
	if cfg.MaxUploadSize != 5_000_000 {
		t.Errorf("MaxUploadSize = %d", cfg.MaxUploadSize)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadPanicsOnInvalidCombos(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"SITECMS_STORE": "mongo"}},
		{"redis without addr", map[string]string{"SITECMS_STORE": "redis", "SITECMS_REDIS_ADDR": ""}},
		{"jwt with short secret", map[string]string{"SITECMS_TOKEN_MODE": "jwt", "SITECMS_JWT_SECRET": "short"}},
		{"unknown token mode", map[string]string{"SITECMS_TOKEN_MODE": "oauth"}},
		{"minio without endpoint", map[string]string{"SITECMS_UPLOADS_BACKEND": "minio", "SITECMS_MINIO_ENDPOINT": ""}},
		{"unknown uploads backend", map[string]string{"SITECMS_UPLOADS_BACKEND": "ftp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked")
				}
			}()
			Load()
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{RedisPassword: "p", AdminPassword: "a", AdminToken: "t", JWTSecret: "s", MinIOSecretKey: "m", RedisAddr: "r:6379"}
	r := cfg.Redacted()
	for _, v := range []string{r.RedisPassword, r.AdminPassword, r.AdminToken, r.JWTSecret, r.MinIOSecretKey} {
		if v != "***REDACTED***" {
			t.Errorf("secret leaked: %q", v)
		}
	}
	if r.RedisAddr != "r:6379" || cfg.AdminToken != "t" {
		t.Error("Redacted() must copy, not mutate")
	}
}
