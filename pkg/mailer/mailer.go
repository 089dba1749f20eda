package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/frankvera/academia-api/pkg/config"
)

// Message is an outbound email.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers mail. Implementations are best-effort collaborators;
// callers must not treat delivery failure as fatal.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender sends mail through a plain-auth SMTP relay.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender constructs a sender from SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers the message. HTML body wins when both bodies are set.
func (s *SMTPSender) Send(msg Message) error {
	if s.cfg.Sender == "" {
		return fmt.Errorf("smtp sender not configured")
	}

	body := msg.HTML
	contentType := "text/html"
	if body == "" {
		body = msg.Text
		contentType = "text/plain"
	}

	var b strings.Builder
	b.WriteString("MIME-version: 1.0;\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=\"UTF-8\";\r\n", contentType)
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.Sender)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ","))
	fmt.Fprintf(&b, "Subject: %s\r\n\r\n", msg.Subject)
	b.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Sender, s.cfg.Password, s.cfg.Host)

	return smtp.SendMail(addr, auth, s.cfg.Sender, msg.To, []byte(b.String()))
}
