package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opsboard_backend/internal/adapters"
	"opsboard_backend/internal/dashboard"
	"opsboard_backend/internal/email"
	"opsboard_backend/internal/events"
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

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the scheduler")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	// Refreshes triggered here publish alert events; the notification module
	// turns those into the digest email.
	sender := email.NewSender(cfg)
	notificationModule := notification.New(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	redisClient := initRedis(cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	val := validator.New()

	recordSource := records.New(pool)
	stripeModule := stripe.NewModule(cfg, log)
	paymentsReader := adapters.NewStripePaymentsAdapter(stripeModule.Service())

	dashboardModule, err := dashboard.NewModule(recordSource, paymentsReader, nil, redisClient, eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize dashboard module", "error", err)
		panic("failed to initialize dashboard module: " + err.Error())
	}

	periodic, err := scheduler.NewPeriodic(cfg, log)
	if err != nil {
		log.Error("failed to initialize periodic scheduler", "error", err)
		panic("failed to initialize periodic scheduler: " + err.Error())
	}
	go periodic.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, dashboardModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func initRedis(cfg config.CacheConfig, log *logger.Logger) *goredis.Client {
	if !cfg.IsCacheEnabled() {
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
		return errors.New(name + ": invalid retry attempts")
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
