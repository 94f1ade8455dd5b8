// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers outbound email.

Two backends implement [Sender]:

  - [SMTPSender] hands messages to an SMTP relay.
  - [LogSender] writes messages to the structured log, for development.

Delivery is a blocking call; callers decide how to surface failures.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"github.com/taibuivan/yamdb/internal/platform/config"
)

// Message is a plain-text email to a single recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a [Message].
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the Sender selected by MAIL_BACKEND.
func New(cfg *config.Config, logger *slog.Logger) (Sender, error) {
	switch cfg.MailBackend {
	case config.MailBackendSMTP:
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	case config.MailBackendConsole:
		return NewLogSender(logger, cfg.MailFrom), nil
	default:
		return nil, fmt.Errorf("mail: unsupported backend %q", cfg.MailBackend)
	}
}

// # SMTP

// SMTPConfig holds the relay connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

// NewSMTPSender configures a relay client. No connection is opened until
// the first Send.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: configure smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From}, nil
}

// Send dials the relay and delivers msg.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := build(s.from, msg)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mail: deliver to %s: %w", msg.To, err)
	}
	return nil
}

func build(from string, msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("mail: sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("mail: recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}

// # Console

// LogSender writes messages to a logger instead of sending them.
type LogSender struct {
	logger *slog.Logger
	from   string
}

// NewLogSender returns a Sender that logs every message at INFO level.
func NewLogSender(logger *slog.Logger, from string) *LogSender {
	return &LogSender{logger: logger, from: from}
}

// Send validates the addresses like the SMTP backend, then logs msg.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if _, err := build(s.from, msg); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "mail_sent",
		slog.String("from", s.from),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}
