// Package notification provides event handlers for sending notifications
// in response to domain events. The module subscribes to events and inverts
// the dependency: the dashboard never needs to know about email providers
// or templates.
package notification

import (
	"context"

	"opsboard_backend/internal/dashboard/transport"
	"opsboard_backend/internal/email"
	"opsboard_backend/internal/events"
	"opsboard_backend/platform/config"
	"opsboard_backend/platform/logger"
)

// Module subscribes to dashboard events and fans out the attention digest.
// Not HTTP-facing.
type Module struct {
	sender     email.Sender
	recipients []string
	log        *logger.Logger
}

// New creates the notification module. A nil sender disables delivery; the
// module still registers so event flow stays identical across environments.
func New(sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Module {
	return &Module{
		sender:     sender,
		recipients: cfg.GetDigestRecipients(),
		log:        log,
	}
}

// RegisterHandlers subscribes the module to the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.AttentionAlertsRaised{}.EventName(), events.HandlerFunc(m.handleAttentionAlerts))
}

func (m *Module) handleAttentionAlerts(ctx context.Context, event events.Event) error {
	alerts, ok := event.(events.AttentionAlertsRaised)
	if !ok {
		return nil
	}
	if m.sender == nil || len(m.recipients) == 0 || len(alerts.Items) == 0 {
		return nil
	}

	digest := email.DigestData{
		GeneratedAt: alerts.GeneratedAt,
		Items:       digestItems(alerts.Items),
	}

	for _, recipient := range m.recipients {
		if err := m.sender.SendAttentionDigest(ctx, recipient, digest); err != nil {
			m.log.Error("attention digest delivery failed", "recipient", recipient, "error", err)
			continue
		}
		m.log.Info("attention digest sent", "recipient", recipient, "items", len(digest.Items))
	}

	return nil
}

func digestItems(items []transport.AttentionItem) []email.DigestItem {
	out := make([]email.DigestItem, 0, len(items))
	for _, it := range items {
		out = append(out, email.DigestItem{Severity: it.Severity, Message: it.Message})
	}
	return out
}
