package emailsend

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"
)

// SMTPTransport delivers through an SMTP relay with optional STARTTLS.
type SMTPTransport struct {
	config *Config
	logger logger.Logger
}

func NewSMTPTransport(config *Config, log logger.Logger) (*SMTPTransport, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &SMTPTransport{config: config, logger: log}, nil
}

func (t *SMTPTransport) Name() string { return "smtp" }

func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	raw, err := BuildMIME(msg)
	if err != nil {
		return errors.NewTransportFailedError(t.Name(), err)
	}
	if err := t.deliver(ctx, msg.From, msg.Recipients(), raw); err != nil {
		return errors.NewTransportFailedError(t.Name(), err)
	}

	t.logger.Debug("smtp message delivered", map[string]interface{}{
		"host":          t.config.SMTPHost,
		"bytes":         len(raw),
		"hasAttachment": msg.Attachment != nil,
	})
	return nil
}

func (t *SMTPTransport) deliver(ctx context.Context, from string, to []string, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	addr := net.JoinHostPort(t.config.SMTPHost, strconv.Itoa(t.config.SMTPPort))
	dialer := &net.Dialer{Timeout: t.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	deadline := time.Now().Add(t.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, t.config.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer client.Close()

	helo := t.config.HeloName
	if helo == "" {
		helo = "localhost"
	}
	if err := client.Hello(helo); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if t.config.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return fmt.Errorf("server does not support STARTTLS")
		}
		if err := client.StartTLS(&tls.Config{ServerName: t.config.SMTPHost}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if t.config.SMTPUsername != "" && t.config.SMTPPassword != "" {
		auth := smtp.PlainAuth("", t.config.SMTPUsername, t.config.SMTPPassword, t.config.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
