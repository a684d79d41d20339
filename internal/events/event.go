// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"opsboard_backend/internal/dashboard/transport"
	"opsboard_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Dashboard Domain Events
// =============================================================================

// DashboardRefreshed is published after a scheduled or on-demand rebuild of
// the dashboard snapshot.
type DashboardRefreshed struct {
	BaseEvent
	GeneratedAt time.Time `json:"generatedAt"`
	LeadCount   int       `json:"leadCount"`
	AlertCount  int       `json:"alertCount"`
}

func (e DashboardRefreshed) EventName() string { return "dashboard.refreshed" }

// AttentionAlertsRaised is published when a refresh produces actionable
// attention items. The all-clear item never raises this event.
type AttentionAlertsRaised struct {
	BaseEvent
	Items       []transport.AttentionItem `json:"items"`
	GeneratedAt time.Time                 `json:"generatedAt"`
}

func (e AttentionAlertsRaised) EventName() string { return "dashboard.attention_alerts_raised" }
