// Package mail hands outbound e-mails to the delivery pipeline. The server
// never talks SMTP itself: messages are queued for a separate mailer.
package mail

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// Template names the e-mail the mailer renders.
type Template string

const (
	TemplateVerifyEmail   Template = "verify_email"
	TemplatePasswordReset Template = "password_reset"
)

// Message is the queued payload. Data carries the template variables, e.g.
// the one-time code.
type Message struct {
	To       string            `json:"to"`
	Template Template          `json:"template"`
	Locale   string            `json:"locale"`
	Data     map[string]string `json:"data,omitempty"`
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. It is the
// development fallback when no broker is configured and prints the codes in
// clear text.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	l := s.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	l.WarnContext(ctx, "mail not delivered, no broker configured",
		slog.String("to", msg.To),
		slog.String("template", string(msg.Template)),
		slog.String("locale", msg.Locale),
		slog.Any("data", msg.Data),
	)
	return nil
}
