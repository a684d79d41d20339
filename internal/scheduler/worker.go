package scheduler

import (
	"context"
	"fmt"
	"time"

	dashboardservice "opsboard_backend/internal/dashboard/service"
	"opsboard_backend/platform/config"
	"opsboard_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes refresh tasks and rebuilds the dashboard snapshot.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	dashboard *dashboardservice.Service
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, dashboard *dashboardservice.Service, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		dashboard: dashboard,
		log:       log,
	}

	mux.HandleFunc(TaskDashboardRefresh, w.handleDashboardRefresh)

	return w, nil
}

func (w *Worker) handleDashboardRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDashboardRefreshPayload(task)
	if err != nil {
		return err
	}

	if _, err := w.dashboard.Refresh(ctx); err != nil {
		w.log.Error("dashboard refresh failed", "reason", payload.Reason, "error", err)
		return err
	}

	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// Periodic registers the recurring refresh with asynq's scheduler. The
// interval uses asynq cron syntax, e.g. "@every 5m".
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	task, err := NewDashboardRefreshTask(DashboardRefreshPayload{Reason: "scheduled"})
	if err != nil {
		return nil, err
	}

	interval := cfg.GetRefreshInterval()
	if interval == "" {
		interval = "@every 5m"
	}

	if _, err := scheduler.Register(interval, task, asynq.Queue(queueName(cfg))); err != nil {
		return nil, fmt.Errorf("register refresh schedule: %w", err)
	}

	return &Periodic{scheduler: scheduler, log: log}, nil
}

// Run starts the periodic scheduler and blocks until ctx is done.
func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}

	go func() {
		<-ctx.Done()
		p.scheduler.Shutdown()
	}()

	if err := p.scheduler.Run(); err != nil {
		p.log.Error("periodic scheduler stopped", "error", err)
	}
}
