// Package mailer is the outbound notification capability of the contact
// flow. The core only sees the Mailer interface; delivery is a single
// attempt with no retries, and a failure never blocks anything else.
package mailer

import (
	"context"
	"log/slog"
)

// Email is one operator notification. All mail goes to the configured
// operator address; ReplyTo carries the inquirer's address so the operator
// can answer directly.
type Email struct {
	Subject  string
	TextBody string
	HTMLBody string
	ReplyTo  string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// LogMailer stands in when no SMTP credentials are configured: it logs the
// would-be delivery and reports success.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, email Email) error {
	m.logger.InfoContext(ctx, "email delivery skipped (SMTP not configured)",
		slog.String("subject", email.Subject),
		slog.String("reply_to", email.ReplyTo),
	)
	return nil
}
