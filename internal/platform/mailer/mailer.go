package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const dialTimeout = 10 * time.Second

// Mailer delivers verification codes over SMTP. In development mode the code
// is logged instead of sent so the two-phase flow is testable without an
// upstream mail account. The ledger record is always committed before a send
// is attempted, so failures here never require storage rollback.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	DevMode  bool
	Logger   *slog.Logger
}

func (m Mailer) SendVerificationCode(ctx context.Context, email string, code string, contestantName string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if m.DevMode {
		logger.Info("verification email (dev mode)",
			"event", "mailer_dev_delivery",
			"module", "internal/platform/mailer",
			"layer", "platform",
			"to", email,
			"verification_code", code,
			"contestant_name", contestantName,
		)
		return nil
	}
	if strings.TrimSpace(m.Host) == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	addr := net.JoinHostPort(m.Host, m.Port)
	deadline := time.Now().Add(dialTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	conn, err := net.DialTimeout("tcp", addr, time.Until(deadline))
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", addr, err)
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer func() { _ = client.Close() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(m.tlsConfig()); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.Username != "" {
		auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(m.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(email); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := writer.Write([]byte(m.buildMessage(email, code, contestantName))); err != nil {
		_ = writer.Close()
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}
	return client.Quit()
}

// tlsConfig carries the SMTP host as ServerName so certificate
// verification succeeds during STARTTLS.
func (m Mailer) tlsConfig() *tls.Config {
	return &tls.Config{ServerName: m.Host}
}

func (m Mailer) buildMessage(email string, code string, contestantName string) string {
	var b strings.Builder
	b.WriteString("From: " + m.From + "\r\n")
	b.WriteString("To: " + email + "\r\n")
	b.WriteString("Subject: Voting Verification Code\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("You are voting for: " + contestantName + "\r\n\r\n")
	b.WriteString("Your verification code is: " + code + "\r\n\r\n")
	b.WriteString("This code will expire in 1 hour. If you did not request this verification, please ignore this email.\r\n")
	return b.String()
}
