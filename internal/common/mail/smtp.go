// internal/common/mail/smtp.go
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"regexp"
	"strings"
	"time"

	"geotrack-backend/internal/common/config"
	"geotrack-backend/internal/common/logger"

	"github.com/google/uuid"
)

// SMTPMailer sends mail through a plain or STARTTLS SMTP session.
type SMTPMailer struct {
	config config.MailConfig
	logger logger.Logger
}

func NewSMTPMailer(cfg config.MailConfig, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: cfg,
		logger: log,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	if !IsValidEmail(msg.To) {
		return fmt.Errorf("invalid 'to' email address: %s", msg.To)
	}

	from := msg.From
	if from == "" {
		from = m.config.From
	}

	message := m.buildMessage(from, msg)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.Username != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	start := time.Now()
	var err error
	if m.config.UseTLS {
		err = m.sendWithTLS(addr, auth, from, []string{msg.To}, []byte(message))
	} else {
		err = smtp.SendMail(addr, auth, from, []string{msg.To}, []byte(message))
	}
	if err != nil {
		return err
	}

	m.logger.Info("Email sent", map[string]interface{}{
		"to":       msg.To,
		"subject":  msg.Subject,
		"duration": time.Since(start).String(),
	})
	return nil
}

func (m *SMTPMailer) buildMessage(from string, msg *Message) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("From: %s\r\n", from))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))

	if msg.ReplyTo != "" {
		builder.WriteString(fmt.Sprintf("Reply-To: %s\r\n", msg.ReplyTo))
	}

	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	builder.WriteString(fmt.Sprintf("Message-ID: <%s@%s>\r\n", uuid.NewString(), m.config.Host))
	builder.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	builder.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case msg.Text != "" && msg.HTML != "":
		boundary := strings.ReplaceAll(uuid.NewString(), "-", "")
		builder.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
		builder.WriteString("\r\n")

		builder.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		builder.WriteString(msg.Text)
		builder.WriteString("\r\n")

		builder.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		builder.WriteString(msg.HTML)
		builder.WriteString("\r\n")

		builder.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	case msg.HTML != "":
		builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		builder.WriteString(msg.HTML)
	default:
		builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		builder.WriteString(msg.Text)
	}

	return builder.String()
}

func (m *SMTPMailer) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, body []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: m.config.Host,
		MinVersion: tls.VersionTLS12,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// EmailRegexp is the syntactic email check shared with the submission
// validator: local part, @, domain with at least one dot, no whitespace.
var EmailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether the address passes the syntactic check.
func IsValidEmail(email string) bool {
	return EmailRegexp.MatchString(strings.TrimSpace(email))
}
