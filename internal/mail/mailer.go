package mail

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer delivers out-of-band messages. Delivery is best effort; callers
// dispatch it fire-and-forget and must not fail their request on error.
type Mailer interface {
	Deliver(subject, body, to string) error
}

// SMTPMailer sends plain-text mail over SMTP.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTPMailer creates an SMTP-backed mailer.
func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

// Deliver sends one message to one recipient.
func (m *SMTPMailer) Deliver(subject, body, to string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
