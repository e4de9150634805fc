package deps

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrSnakeDoc/sitecms/internal/auth"
	"github.com/MrSnakeDoc/sitecms/internal/content"
	"github.com/MrSnakeDoc/sitecms/internal/guard"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
	"github.com/MrSnakeDoc/sitecms/internal/mailer"
	"github.com/MrSnakeDoc/sitecms/internal/store"
	"github.com/MrSnakeDoc/sitecms/internal/uploads"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Guard       *guard.Guard        // document access; readyz probes it
	StorePinger store.Pinger        // nil for the file backend
	Credentials *auth.Credentials   // admin password
	Tokens      auth.TokenIssuer    // bearer tokens for admin routes
	Content     *content.Collections
	Logos       *uploads.Logos
	Mailer      mailer.Sender

	StoreBackend   string // "file" | "redis", reported by healthz
	UploadsBackend string // "local" | "minio", reported by healthz

	APIName       string // returned by GET /api/
	UploadsDir    string // served under /uploads when set (local storage only)
	MaxUploadSize int64  // bytes accepted per logo file

	RateLimitBurst        int
	RateLimitRefillPerMin int

	AllowedHosts []string // Host headers allowed on admin routes
	AllowedCIDRS []string // IPs allowed to access healthz/readyz/metrics
	TrustProxy   bool     // true if running behind a trusted reverse proxy

	MetricsRegistry *prometheus.Registry // nil disables /metrics
}
