// Package stripe provides the payment processor bounded context module.
// This file defines the module that encapsulates all processor setup.
package stripe

import (
	"opsboard_backend/internal/stripe/client"
	"opsboard_backend/internal/stripe/service"
	"opsboard_backend/platform/config"
	"opsboard_backend/platform/logger"
)

// Module is the payment processor bounded context module.
type Module struct {
	service *service.Service
	enabled bool
}

// NewModule creates and initializes the stripe module.
// Returns a disabled module if no API key is configured (graceful degradation).
func NewModule(cfg config.StripeConfig, log *logger.Logger) *Module {
	if !cfg.IsStripeEnabled() {
		log.Info("stripe module disabled: STRIPE_API_KEY not configured")
		return &Module{enabled: false}
	}

	apiClient := client.New(cfg.GetStripeAPIBaseURL(), cfg.GetStripeAPIKey(), cfg.GetStripeRequestsPerSecond(), log)
	svc := service.New(apiClient, log)

	log.Info("stripe module initialized")

	return &Module{
		service: svc,
		enabled: true,
	}
}

// Service returns the stripe service for external use.
// Returns nil if the module is disabled.
func (m *Module) Service() *service.Service {
	if m == nil || !m.enabled {
		return nil
	}
	return m.service
}

// IsEnabled returns true if the stripe module is configured and enabled.
func (m *Module) IsEnabled() bool {
	return m != nil && m.enabled
}
