package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/sitecms/internal/auth"
	"github.com/MrSnakeDoc/sitecms/internal/config"
	"github.com/MrSnakeDoc/sitecms/internal/content"
	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/guard"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver"
	"github.com/MrSnakeDoc/sitecms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
	"github.com/MrSnakeDoc/sitecms/internal/mailer"
	"github.com/MrSnakeDoc/sitecms/internal/metrics"
	"github.com/MrSnakeDoc/sitecms/internal/seed"
	"github.com/MrSnakeDoc/sitecms/internal/store"
	redisstore "github.com/MrSnakeDoc/sitecms/internal/store/redis"
	"github.com/MrSnakeDoc/sitecms/internal/uploads"
	"github.com/MrSnakeDoc/sitecms/internal/utils"
	"github.com/MrSnakeDoc/sitecms/internal/version"
)

const apiName = "Tilo Live API"

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	ctx := context.Background()

	docStore, redisClient, err := openStore(ctx, cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open document store: %v", err)
		os.Exit(1)
	}

	g := guard.New(docStore, loggerClient)
	if err := initializeDocument(ctx, g, cfg, loggerClient); err != nil {
		loggerClient.Errorf("Failed to initialize document: %v", err)
		os.Exit(1)
	}

	tokens, err := newTokens(cfg)
	if err != nil {
		loggerClient.Errorf("Failed to configure admin tokens: %v", err)
		os.Exit(1)
	}

	collections := content.New(g, cfg.DefaultCompanyName, loggerClient)

	storage, uploadsDir, err := openUploads(ctx, cfg)
	if err != nil {
		loggerClient.Errorf("Failed to initialize upload storage: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("upload storage ready", logger.String("backend", cfg.UploadsBackend))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(registry)

	build := version.Get()

	pinger, _ := docStore.(store.Pinger)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:                loggerClient,
		StartTime:             time.Now(),
		Version:               build.Version,
		Commit:                build.Commit,
		BuildDate:             build.BuildDate,
		GoVersion:             build.GoVersion,
		Guard:                 g,
		StorePinger:           pinger,
		Credentials:           auth.NewCredentials(g, cfg.AdminPassword, cfg.BcryptCost, loggerClient),
		Tokens:                tokens,
		Content:               collections,
		Logos:                 uploads.NewLogos(storage, collections.Settings, loggerClient),
		Mailer:                mailer.NewSMTPSender(cfg.MailTimeout, loggerClient),
		APIName:               apiName,
		UploadsDir:            uploadsDir,
		MaxUploadSize:         cfg.MaxUploadSize,
		RateLimitBurst:        cfg.RateLimitBurst,
		RateLimitRefillPerMin: cfg.RateLimitRefillPerMin,
		AllowedHosts:          cfg.AllowedHosts,
		AllowedCIDRS:          cfg.AllowedCIDRS,
		TrustProxy:            cfg.TrustProxy,
		MetricsRegistry:       registry,
		StoreBackend:          cfg.StoreBackend,
		UploadsBackend:        cfg.UploadsBackend,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
	}
}

// openStore selects the document backend. The Redis client is returned so Run can close it.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Store, *goredis.Client, error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		// Initialize Redis early - fail fast if unavailable
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redisstore.Connect(ctx, redisstore.ConnectOptions{
			Addr:           cfg.RedisAddr,
			Username:       cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Redis initialized successfully")
		return redisstore.NewStore(client, cfg.RedisKey), client, nil
	default:
		fs := store.NewFileStore(cfg.DataFile)
		log.Info("using file document store", logger.String("path", fs.Path()))
		return fs, nil, nil
	}
}

// initializeDocument creates the document on first boot and refuses to start on a corrupt one.
func initializeDocument(ctx context.Context, g *guard.Guard, cfg *config.Config, log logger.Logger) error {
	var initial *domain.Document
	if cfg.SeedFile != "" {
		doc, err := seed.NewLoader(cfg.SeedFile).Load()
		if err != nil {
			return err
		}
		initial = doc
	}

	created, err := g.Initialize(ctx, initial)
	if errors.Is(err, domain.ErrCorruptDocument) {
		return fmt.Errorf("stored document cannot be parsed, fix or remove it: %w", err)
	}
	if err != nil {
		return err
	}
	if created {
		log.Info("first boot, document created", logger.Bool("seeded", initial != nil))
	}
	return nil
}

func newTokens(cfg *config.Config) (auth.TokenIssuer, error) {
	if cfg.TokenMode == config.TokenJWT {
		return auth.NewJWTTokens(cfg.JWTSecret, cfg.TokenTTL)
	}
	return auth.NewStaticTokens(cfg.AdminToken), nil
}

// openUploads returns the storage and, for local storage, the directory to serve.
func openUploads(ctx context.Context, cfg *config.Config) (uploads.Storage, string, error) {
	if cfg.UploadsBackend == config.UploadsMinIO {
		s, err := uploads.NewMinIOStorage(ctx, uploads.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
			PublicURL: cfg.MinIOPublicURL,
		})
		return s, "", err
	}
	s, err := uploads.NewLocalStorage(cfg.UploadsDir, "/uploads")
	if err != nil {
		return nil, "", err
	}
	return s, s.Dir(), nil
}

func (a *App) Run() error {
	build := version.Get()
	a.logger.Infof("🚀 Starting sitecms %s on %s", build.Version, a.cfg.ListenPort)
	a.logger.Infof("sitecms %s", build)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// In-flight updates finish their save before Shutdown returns.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}

	a.logger.Info("✅ sitecms stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
