package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/folioworks/folio-api/internal/actions"
	"github.com/folioworks/folio-api/internal/api"
	apiMiddleware "github.com/folioworks/folio-api/internal/api/middleware"
	"github.com/folioworks/folio-api/internal/assistant"
	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/generation"
	"github.com/folioworks/folio-api/internal/platform/gemini"
	"github.com/folioworks/folio-api/internal/platform/metrics"
	"github.com/folioworks/folio-api/internal/platform/postgres"
	"github.com/folioworks/folio-api/internal/ratelimit"
	"github.com/folioworks/folio-api/internal/redact"
	"github.com/folioworks/folio-api/internal/service/auth"
	"github.com/folioworks/folio-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// chatWindow is the rate limit window of the public chat endpoint.
const chatWindow = time.Minute

// application holds the shared dependencies of the server and releases them on
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	metrics *metrics.Recorder

	portfolioStore store.PortfolioStore
	blogPostStore  store.BlogPostStore
	contactStore   store.ContactStore

	jwtService auth.JWTService
	owner      api.OwnerLogin
	actions    api.AssistantActions

	// realIP resolves client addresses behind trusted proxies.
	realIP func(http.Handler) http.Handler

	// chatLimiter is nil when rate limiting is disabled.
	chatLimiter ratelimit.Limiter
}

// newApplication wires every dependency from configuration. The database must
// already be open and migrated.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(prometheus.DefaultRegisterer),
	}

	realIP, err := apiMiddleware.NewRealIP(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trusted proxies: %w", err)
	}
	app.realIP = realIP

	app.portfolioStore = postgres.NewPostgresPortfolioStore(db, logger)
	app.blogPostStore = postgres.NewPostgresBlogPostStore(db, logger)
	app.contactStore = postgres.NewPostgresContactStore(db, logger)

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.owner, err = auth.NewOwnerAuthenticator(cfg.Auth, auth.NewBcryptVerifier(), app.jwtService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize owner authentication: %w", err)
	}
	logger.Info("owner authentication initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	provider, err := gemini.NewProvider(ctx, logger.With("component", "gemini"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini provider: %w", err)
	}
	client, err := generation.NewClient(provider, generation.Settings{
		Model:   cfg.LLM.ModelName,
		Timeout: cfg.LLM.Timeout(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation client: %w", err)
	}
	features, err := assistant.New(client,
		assistant.WithLeadCapture(cfg.LLM.LeadCapture),
		assistant.WithPersona(cfg.LLM.AssistantName, cfg.LLM.OwnerName))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize assistant: %w", err)
	}
	app.actions, err = actions.New(features, app.metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize actions: %w", err)
	}
	logger.Info("assistant initialized", "model", cfg.LLM.ModelName)

	if cfg.RateLimit.Enabled {
		if err := app.setupRateLimit(ctx); err != nil {
			return nil, err
		}
	}

	logger.Info("application initialized successfully")
	return app, nil
}

func (app *application) setupRateLimit(ctx context.Context) error {
	app.redis = ratelimit.NewRedisClient(app.config.RateLimit)
	limiter, err := ratelimit.NewRedisLimiter(app.redis, app.config.RateLimit.ChatRequestsPerMinute, chatWindow, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize rate limiter: %w", err)
	}
	if err := limiter.Ping(ctx); err != nil {
		// The limiter fails open; start anyway.
		app.logger.Warn("redis unreachable at start-up", "error", redact.Error(err))
	}
	app.chatLimiter = limiter
	app.logger.Info("chat rate limiting enabled",
		"requests_per_minute", app.config.RateLimit.ChatRequestsPerMinute)
	return nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the application's connections.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis connection", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
