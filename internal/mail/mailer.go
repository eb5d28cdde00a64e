// Package mail delivers transactional mail over the configured SMTP relay.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends portal mail. Implemented by SMTPMailer; faked in tests.
type Mailer interface {
	SendVerification(to, verifyURL string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewSMTPMailer returns a mailer for the given relay. An empty host yields a
// mailer whose sends fail, which callers treat as best-effort.
func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, password: password, from: from}
}

// SendVerification sends the email-verification message containing verifyURL.
func (m *SMTPMailer) SendVerification(to, verifyURL string) error {
	if m.host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Verify your email\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString("Welcome to the club portal.\r\n\r\n")
	fmt.Fprintf(&b, "Confirm your email address by opening this link:\r\n%s\r\n", verifyURL)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(b.String()))
}
