// Package notify delivers applicant-facing email. Delivery is best-effort
// from the caller's perspective: the service logs and counts failures but
// never lets them block a status transition.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a single message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTP delivers mail over a plain SMTP relay.
type SMTP struct {
	addr     string
	username string
	password string
	host     string
	from     string
}

// NewSMTP builds a Mailer for the relay at host:port. Username and password
// may be empty for relays that accept unauthenticated local delivery.
func NewSMTP(host, port, username, password, from string) *SMTP {
	return &SMTP{
		addr:     host + ":" + port,
		username: username,
		password: password,
		host:     host,
		from:     from,
	}
}

func (s *SMTP) Send(_ context.Context, to, subject, body string) error {
	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	if err := smtp.SendMail(s.addr, auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// Log is a development Mailer that writes the message to the logger instead
// of delivering it.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(ctx context.Context, to, subject, _ string) error {
	l.logger.InfoContext(ctx, "email delivery skipped (log mailer)",
		"to", to,
		"subject", subject,
	)
	return nil
}
