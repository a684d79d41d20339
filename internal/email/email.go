// Package email delivers outbound mail. The only message this service sends
// is the attention digest; delivery goes through the operator's own SMTP
// server via go-mail.
package email

import (
	"context"

	"opsboard_backend/platform/config"
)

// Sender delivers rendered messages.
type Sender interface {
	SendAttentionDigest(ctx context.Context, toEmail string, digest DigestData) error
}

// NewSender builds the configured sender. Returns nil when email delivery is
// disabled so callers can skip wiring the notification handlers.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return nil
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
