package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dukerupert/gymsup/internal"
	"github.com/dukerupert/gymsup/internal/backend"
	"github.com/dukerupert/gymsup/internal/billing"
	"github.com/dukerupert/gymsup/internal/chat"
	"github.com/dukerupert/gymsup/internal/cookie"
	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/events"
	"github.com/dukerupert/gymsup/internal/handler/admin"
	"github.com/dukerupert/gymsup/internal/handler/storefront"
	"github.com/dukerupert/gymsup/internal/jobs"
	"github.com/dukerupert/gymsup/internal/mapper"
	"github.com/dukerupert/gymsup/internal/middleware"
	"github.com/dukerupert/gymsup/internal/router"
	"github.com/dukerupert/gymsup/internal/routes"
	"github.com/dukerupert/gymsup/internal/service"
	"github.com/dukerupert/gymsup/internal/session"
	"github.com/dukerupert/gymsup/internal/telemetry"
	"github.com/dukerupert/gymsup/internal/worker"
)

const serviceName = "gymsup-storefront"

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry
	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// Initialize tracing
	shutdownTracing, err := telemetry.InitTracing(ctx, telemetry.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: serviceName,
		Release:     cfg.Sentry.Release,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, logger)
	if err != nil {
		return fmt.Errorf("tracing initialization failed: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	// Metrics registry shared by HTTP and business metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewMetrics("gymsup", registry)
	businessMetrics := telemetry.NewBusinessMetrics("gymsup", registry)

	// Session store
	store, closeStore, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Event publisher
	var publisher events.Publisher = events.Nop{}
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.NewNATSPublisher(events.NATSConfig{URL: cfg.NATS.URL, Name: cfg.NATS.Name}, logger)
		if err != nil {
			return fmt.Errorf("NATS connection failed: %w", err)
		}
		publisher = natsPublisher
	}
	defer publisher.Close()

	// Card payments are optional; the interface stays nil when disabled.
	var payments billing.Provider
	if cfg.Stripe.SecretKey != "" {
		stripeConfig := billing.StripeConfig{
			APIKey:         cfg.Stripe.SecretKey,
			PublishableKey: cfg.Stripe.PublishableKey,
		}
		stripeProvider, err := billing.NewStripeProvider(stripeConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize Stripe provider: %w", err)
		}
		payments = stripeProvider
		logger.Info("Stripe billing provider initialized", "test_mode", stripeConfig.IsTestMode())
	} else {
		logger.Info("Stripe not configured, card checkout disabled")
	}

	// The chat assistant is optional in the same way.
	var model chat.Model
	chatConfig := chat.Config{APIKey: cfg.Chat.APIKey, Model: cfg.Chat.Model}
	if chatConfig.Enabled() {
		genaiModel, err := chat.NewGenAIModel(ctx, chatConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize chat model: %w", err)
		}
		model = genaiModel
		logger.Info("Chat assistant enabled", "model", cfg.Chat.Model)
	} else {
		logger.Info("GEMINI_API_KEY not set, chat assistant disabled")
	}

	// Backend client and services
	client := backend.NewClient(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, logger)
	productMapper := mapper.NewProductMapper(domain.SummaryRuleByName(cfg.Catalog.SummaryRule))

	catalogService := service.NewCatalogService(client, productMapper, publisher, businessMetrics, logger)
	cartService := service.NewCartService(client, publisher, businessMetrics, logger)
	orderService := service.NewOrderService(client, publisher, businessMetrics, logger)
	checkoutService := service.NewCheckoutService(client, cartService, payments, publisher, businessMetrics, logger)
	authService := service.NewAuthService(client, catalogService, cartService, orderService, publisher, businessMetrics, logger)
	accountService := service.NewAccountService(client, logger)
	chatService := service.NewChatService(model, businessMetrics, logger)

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	cookies := cookie.NewConfig(cfg.Session.CookieDomain, cfg.Session.CookieSecure)
	sessions := middleware.NewSessions(store, cookies, cfg.Session.TTL, logger)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.Session.CookieSecure)

	apiRateLimiter := middleware.NewRateLimiter(middleware.APIRateLimiterConfig(cfg.Limits.APIPerMinute))
	defer apiRateLimiter.Stop()
	authRateLimiter := middleware.NewRateLimiter(middleware.AuthRateLimiterConfig(cfg.Limits.AuthPerMinute))
	defer authRateLimiter.Stop()

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		httpMetrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		router.CORS(cfg.CORSOrigins),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		apiRateLimiter.Middleware,
		sessions.Middleware,
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
		telemetry.SentryContextMiddleware(sentryUser),
		middleware.CSRF(middleware.CSRFConfig{CookieConfig: cookies}),
	)

	routes.RegisterStorefrontRoutes(r, routes.StorefrontDeps{
		NavHandler:      storefront.NewNavHandler(authService),
		ProductHandler:  storefront.NewProductHandler(catalogService),
		CartHandler:     storefront.NewCartHandler(cartService, catalogService),
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService),
		AuthHandler:     storefront.NewAuthHandler(authService),
		AccountHandler:  storefront.NewAccountHandler(accountService, orderService),
		ChatHandler:     storefront.NewChatHandler(chatService),
		AuthRateLimit:   authRateLimiter.Middleware,
	})
	routes.RegisterAdminRoutes(r, routes.AdminDeps{
		ProductHandler: admin.NewProductHandler(catalogService),
		OrderHandler:   admin.NewOrderHandler(orderService),
	})
	routes.RegisterSystemRoutes(r, routes.SystemDeps{
		Metrics: middleware.Handler(registry),
	})

	// ==========================================================================
	// Background worker
	// ==========================================================================

	if sweeper, ok := store.(session.Sweeper); ok && cfg.Worker.Enabled {
		cleanup := jobs.NewSessionCleanup(sweeper, logger)
		cleanup.OnResult = func(res jobs.CleanupResult) {
			businessMetrics.SessionsDeleted(res.SessionsDeleted)
		}
		w := worker.NewWorker(worker.Config{PollInterval: cfg.Worker.PollInterval}, logger, cleanup)
		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("worker stopped", "error", err)
			}
		}()
	}

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
		// Backend calls may take up to the backend timeout.
		WriteTimeout: cfg.Backend.Timeout + 15*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting storefront server", "address", srv.Addr, "backend", cfg.Backend.URL, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// openSessionStore connects the configured store. The returned func
// releases its connections.
func openSessionStore(ctx context.Context, cfg *internal.Config, logger *slog.Logger) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case internal.SessionStoreRedis:
		store, err := session.NewRedisStore(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		logger.Info("Using Redis session store")
		return store, closer(store, logger), nil

	case internal.SessionStorePostgres:
		logger.Info("Connecting to database...")
		sqlDB, err := sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, nil, fmt.Errorf("database ping failed: %w", err)
		}

		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(sqlDB); err != nil {
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}

		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		logger.Info("Using Postgres session store")
		return session.NewPostgresStore(pool), pool.Close, nil

	default:
		logger.Info("Using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	}
}

func closer(c io.Closer, logger *slog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}

func sentryUser(ctx context.Context) *telemetry.UserInfo {
	user := domain.UserFromContext(ctx)
	if user == nil {
		return nil
	}
	return &telemetry.UserInfo{ID: fmt.Sprint(user.ID), Email: user.Email}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
