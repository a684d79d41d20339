// Package dashboard provides the operations dashboard bounded context.
// This file defines the module that encapsulates all dashboard setup.
package dashboard

import (
	"fmt"

	"opsboard_backend/internal/dashboard/attention"
	"opsboard_backend/internal/dashboard/cache"
	"opsboard_backend/internal/dashboard/handler"
	"opsboard_backend/internal/dashboard/ports"
	"opsboard_backend/internal/dashboard/service"
	"opsboard_backend/internal/events"
	apphttp "opsboard_backend/internal/http"
	"opsboard_backend/platform/config"
	"opsboard_backend/platform/logger"
	"opsboard_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

// ModuleConfig combines the config interfaces the dashboard module needs.
type ModuleConfig interface {
	config.DashboardConfig
	config.CacheConfig
}

// Module is the dashboard bounded context module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the dashboard module. redisClient may
// be nil; the snapshot cache is then disabled.
func NewModule(
	records ports.RecordSource,
	payments ports.PaymentsReader,
	refresher ports.RefreshRequester,
	redisClient *redis.Client,
	bus events.Bus,
	val *validator.Validator,
	cfg ModuleConfig,
	log *logger.Logger,
) (*Module, error) {
	thresholds, err := attention.LoadThresholds(cfg.GetAttentionRulesPath())
	if err != nil {
		return nil, fmt.Errorf("load attention thresholds: %w", err)
	}

	snapshots := cache.New(redisClient, cfg.GetSnapshotTTL(), log)
	svc := service.New(records, payments, snapshots, attention.New(thresholds), bus, cfg.GetRecentItemsLimit(), log)

	return &Module{
		handler: handler.New(svc, val, refresher),
		service: svc,
	}, nil
}

// Name returns the module identifier for logging.
func (m *Module) Name() string {
	return "dashboard"
}

// Service returns the dashboard service for non-HTTP callers (scheduler).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the dashboard routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/dashboard")
	group.GET("", m.handler.GetDashboard)
	group.GET("/attention", m.handler.GetAttention)
	group.POST("/refresh", m.handler.RequestRefresh)
}

var _ apphttp.Module = (*Module)(nil)
