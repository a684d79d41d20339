package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"opsboard_backend/internal/dashboard/transport"
	"opsboard_backend/internal/email"
	"opsboard_backend/internal/events"
	"opsboard_backend/platform/config"
	"opsboard_backend/platform/logger"
)

type fakeSender struct {
	sent    []string
	digests []email.DigestData
	err     error
}

func (f *fakeSender) SendAttentionDigest(_ context.Context, toEmail string, data email.DigestData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, toEmail)
	f.digests = append(f.digests, data)
	return nil
}

func alertsEvent(items ...transport.AttentionItem) events.AttentionAlertsRaised {
	return events.AttentionAlertsRaised{
		BaseEvent:   events.NewBaseEvent(),
		Items:       items,
		GeneratedAt: time.Date(2025, 3, 19, 15, 0, 0, 0, time.UTC),
	}
}

func TestDigestSentToEveryRecipient(t *testing.T) {
	sender := &fakeSender{}
	cfg := &config.Config{DigestRecipients: []string{"owner@example.com", "ops@example.com"}}
	module := New(sender, cfg, logger.New("test"))

	bus := events.NewInMemoryBus(logger.New("test"))
	module.RegisterHandlers(bus)

	event := alertsEvent(
		transport.AttentionItem{Rule: "uncontacted_lead", Severity: "red", Message: "Lee has not been contacted"},
		transport.AttentionItem{Rule: "quote_follow_up", Severity: "orange", Message: "Quote for Dana is 5 days old"},
	)
	if err := bus.PublishSync(context.Background(), event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sender.sent))
	}
	if sender.sent[0] != "owner@example.com" || sender.sent[1] != "ops@example.com" {
		t.Fatalf("unexpected recipients: %v", sender.sent)
	}
	if len(sender.digests[0].Items) != 2 {
		t.Fatalf("expected both items in the digest, got %d", len(sender.digests[0].Items))
	}
	if sender.digests[0].Items[0].Severity != "red" {
		t.Fatalf("digest item lost severity: %+v", sender.digests[0].Items[0])
	}
}

func TestNoDigestForEmptyItems(t *testing.T) {
	sender := &fakeSender{}
	cfg := &config.Config{DigestRecipients: []string{"owner@example.com"}}
	module := New(sender, cfg, logger.New("test"))

	if err := module.handleAttentionAlerts(context.Background(), alertsEvent()); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no deliveries for an empty alert list, got %v", sender.sent)
	}
}

func TestNilSenderIsNoop(t *testing.T) {
	cfg := &config.Config{DigestRecipients: []string{"owner@example.com"}}
	module := New(nil, cfg, logger.New("test"))

	event := alertsEvent(transport.AttentionItem{Rule: "unassigned_job", Severity: "orange", Message: "Job has no technician"})
	if err := module.handleAttentionAlerts(context.Background(), event); err != nil {
		t.Fatalf("nil sender must be a no-op, got %v", err)
	}
}

func TestDeliveryFailureDoesNotPropagate(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	cfg := &config.Config{DigestRecipients: []string{"owner@example.com"}}
	module := New(sender, cfg, logger.New("test"))

	event := alertsEvent(transport.AttentionItem{Rule: "uncontacted_lead", Severity: "red", Message: "Lee has not been contacted"})
	if err := module.handleAttentionAlerts(context.Background(), event); err != nil {
		t.Fatalf("delivery failures are logged, not returned, got %v", err)
	}
}
