package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opsboard_backend/internal/adapters"
	"opsboard_backend/internal/dashboard"
	"opsboard_backend/internal/dashboard/ports"
	"opsboard_backend/internal/email"
	"opsboard_backend/internal/events"
	apphttp "opsboard_backend/internal/http"
	"opsboard_backend/internal/http/router"
	"opsboard_backend/internal/notification"
	"opsboard_backend/internal/records"
	"opsboard_backend/internal/scheduler"
	"opsboard_backend/internal/stripe"
	"opsboard_backend/platform/config"
	"opsboard_backend/platform/db"
	"opsboard_backend/platform/logger"
	"opsboard_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	redisClient := initRedis(cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	sender := email.NewSender(cfg)
	notificationModule := notification.New(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	// Shared validator instance for dependency injection
	val := validator.New()

	recordSource := records.New(pool)

	stripeModule := stripe.NewModule(cfg, log)
	paymentsReader := adapters.NewStripePaymentsAdapter(stripeModule.Service())

	// With Redis configured, refresh requests go through the worker queue.
	// Without it they run inline on the request.
	var refresher *scheduler.Client
	if cfg.IsCacheEnabled() {
		refresher, err = scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize refresh client", "error", err)
			panic("failed to initialize refresh client: " + err.Error())
		}
		defer func() { _ = refresher.Close() }()
	}

	dashboardModule, err := dashboard.NewModule(recordSource, paymentsReader, refreshRequester(refresher), redisClient, eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize dashboard module", "error", err)
		panic("failed to initialize dashboard module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			dashboardModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// refreshRequester keeps a nil client from becoming a non-nil interface.
func refreshRequester(c *scheduler.Client) ports.RefreshRequester {
	if c == nil {
		return nil
	}
	return c
}

func initRedis(cfg config.CacheConfig, log *logger.Logger) *goredis.Client {
	if !cfg.IsCacheEnabled() {
		log.Warn("REDIS_URL not configured; snapshot cache disabled")
		return nil
	}

	opt, err := goredis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL; snapshot cache disabled", "error", err)
		return nil
	}

	return goredis.NewClient(opt)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
