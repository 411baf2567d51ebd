package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"vfxhub_backend/internal/config"
	"vfxhub_backend/internal/logger"
)

// SMTPProvider sends mail over plain SMTP with optional AUTH.
type SMTPProvider struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

// NewProvider builds the configured provider, falling back to the
// no-op provider when SMTP is not configured.
func NewProvider(cfg *config.Config) Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Info("email: smtp not configured, outbound mail disabled")
		return NoopProvider{}
	}
	return &SMTPProvider{
		host:     cfg.Email.SMTPHost,
		port:     cfg.Email.SMTPPort,
		username: cfg.Email.SMTPUsername,
		password: cfg.Email.SMTPPassword,
		from:     cfg.Email.FromEmail,
		fromName: cfg.Email.FromName,
	}
}

func (p *SMTPProvider) Send(msg *EmailMessage) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("email: no recipients")
	}

	contentType := "text/plain"
	if msg.IsHTML {
		contentType = "text/html"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", p.fromName, p.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=utf-8\r\n", contentType)
	fmt.Fprintf(&b, "\r\n%s\r\n", msg.Body)

	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	var auth smtp.Auth
	if p.username != "" {
		auth = smtp.PlainAuth("", p.username, p.password, p.host)
	}

	if err := smtp.SendMail(addr, auth, p.from, msg.To, []byte(b.String())); err != nil {
		return fmt.Errorf("email: send failed: %w", err)
	}
	return nil
}
