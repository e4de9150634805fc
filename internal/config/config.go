package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	units "github.com/docker/go-units"
	"github.com/joho/godotenv"
)

// Store and upload backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"

	UploadsLocal = "local"
	UploadsMinIO = "minio"

	TokenStatic = "static"
	TokenJWT    = "jwt"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout, covers uploads and compose

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Document store
	StoreBackend string // "file" | "redis"
	DataFile     string // path of the JSON document when StoreBackend == "file"
	SeedFile     string // optional YAML used when no document exists yet

	// Redis (only when StoreBackend == "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisKey            string
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially

	// Admin credential and tokens
	AdminPassword string // initial password, hashed on first login
	BcryptCost    int
	TokenMode     string // "static" | "jwt"
	AdminToken    string // the shared token in static mode
	JWTSecret     string
	TokenTTL      time.Duration

	DefaultCompanyName string // public companyName when settings carry none

	// Uploads
	UploadsBackend string // "local" | "minio"
	UploadsDir     string
	MaxUploadSize  int64
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	MinIOPublicURL string

	MailTimeout time.Duration

	CORSOrigins []string

	// Rate limit on public writes and login
	RateLimitBurst        int
	RateLimitRefillPerMin int

	AllowedHosts []string // optional, restrict admin API to specific Host headers
	AllowedCIDRS []string // optional, restrict healthz/readyz/metrics to specific IPs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	// A missing .env is fine; real environment variables always win.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SITECMS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SITECMS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("SITECMS_REQUEST_TIMEOUT", 30*time.Second),

		// Logging
		LogLevel:  getenv("SITECMS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SITECMS_PRETTY_LOG", false),

		// Document store
		StoreBackend: strings.ToLower(getenv("SITECMS_STORE", StoreFile)),
		DataFile:     getenv("SITECMS_DATA_FILE", "./data/db.json"),
		SeedFile:     getenv("SITECMS_SEED_FILE", ""),

		// Redis settings
		RedisAddr:           getenv("SITECMS_REDIS_ADDR", ""),
		RedisUser:           getenv("SITECMS_REDIS_USERNAME", ""),
		RedisPassword:       getenv("SITECMS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SITECMS_REDIS_DB", 0),
		RedisKey:            getenv("SITECMS_REDIS_KEY", "sitecms:document"),
		RedisDT:             mustDuration("SITECMS_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("SITECMS_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("SITECMS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("SITECMS_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("SITECMS_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("SITECMS_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("SITECMS_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("SITECMS_REDIS_RETRY_INTERVAL", 2*time.Second),

		// Credentials
		AdminPassword: getenv("SITECMS_ADMIN_PASSWORD", "admin123"),
		BcryptCost:    getenvInt("SITECMS_BCRYPT_COST", 10),
		TokenMode:     strings.ToLower(getenv("SITECMS_TOKEN_MODE", TokenStatic)),
		AdminToken:    getenv("SITECMS_ADMIN_TOKEN", "admin-token-tilolive"),
		JWTSecret:     getenv("SITECMS_JWT_SECRET", ""),
		TokenTTL:      mustDuration("SITECMS_TOKEN_TTL", 12*time.Hour),

		DefaultCompanyName: getenv("SITECMS_DEFAULT_COMPANY_NAME", "Tilo Live"),

		// Uploads
		UploadsBackend: strings.ToLower(getenv("SITECMS_UPLOADS_BACKEND", UploadsLocal)),
		UploadsDir:     getenv("SITECMS_UPLOADS_DIR", "./uploads"),
		MaxUploadSize:  mustSize("SITECMS_MAX_UPLOAD_SIZE", 5*units.MB),
		MinIOEndpoint:  getenv("SITECMS_MINIO_ENDPOINT", ""),
		MinIOAccessKey: getenv("SITECMS_MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getenv("SITECMS_MINIO_SECRET_KEY", ""),
		MinIOBucket:    getenv("SITECMS_MINIO_BUCKET", "sitecms"),
		MinIOUseSSL:    mustBool("SITECMS_MINIO_USE_SSL", false),
		MinIOPublicURL: getenv("SITECMS_MINIO_PUBLIC_URL", ""),

		MailTimeout: mustDuration("SITECMS_MAIL_TIMEOUT", 30*time.Second),

		CORSOrigins: splitAndTrim(getenv("SITECMS_CORS_ORIGINS", "*")),

		RateLimitBurst:        getenvInt("SITECMS_RATE_LIMIT_BURST", 5),
		RateLimitRefillPerMin: getenvInt("SITECMS_RATE_LIMIT_PER_MIN", 10),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SITECMS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("SITECMS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SITECMS_TRUST_PROXY", false),
	}

	cfg.validate()

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// validate panics on combinations the server cannot start with.
func (c *Config) validate() {
	switch c.StoreBackend {
	case StoreFile:
	case StoreRedis:
		if c.RedisAddr == "" {
			panic("❌ FATAL: SITECMS_REDIS_ADDR is required when SITECMS_STORE=redis")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: SITECMS_STORE must be %q or %q, got %q", StoreFile, StoreRedis, c.StoreBackend))
	}

	switch c.TokenMode {
	case TokenStatic:
		if c.AdminToken == "" {
			panic("❌ FATAL: SITECMS_ADMIN_TOKEN must not be empty in static token mode")
		}
	case TokenJWT:
		if len(c.JWTSecret) < 32 {
			panic("❌ FATAL: SITECMS_JWT_SECRET must be at least 32 bytes when SITECMS_TOKEN_MODE=jwt")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: SITECMS_TOKEN_MODE must be %q or %q, got %q", TokenStatic, TokenJWT, c.TokenMode))
	}

	switch c.UploadsBackend {
	case UploadsLocal:
	case UploadsMinIO:
		if c.MinIOEndpoint == "" {
			panic("❌ FATAL: SITECMS_MINIO_ENDPOINT is required when SITECMS_UPLOADS_BACKEND=minio")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: SITECMS_UPLOADS_BACKEND must be %q or %q, got %q", UploadsLocal, UploadsMinIO, c.UploadsBackend))
	}

	if c.MaxUploadSize <= 0 {
		panic("❌ FATAL: SITECMS_MAX_UPLOAD_SIZE must be > 0")
	}
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	for _, s := range []*string{&cp.RedisPassword, &cp.AdminPassword, &cp.AdminToken, &cp.JWTSecret, &cp.MinIOSecretKey} {
		if *s != "" {
			*s = "***REDACTED***"
		}
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// mustSize parses human sizes such as "5MB" or "512k".
func mustSize(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		size, err := units.FromHumanSize(v)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid size value for %s: %s", key, v))
		}
		return size
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
