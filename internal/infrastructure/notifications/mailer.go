package notifications

import (
	"crypto/tls"
	"fmt"
	"log"
	"time"

	mail "github.com/go-mail/mail"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// SMTPMailer implements domain.Mailer over SMTP
type SMTPMailer struct {
	host string
	port int
	from string
	user string
	pass string
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(host string, port int, from, user, pass string) domain.Mailer {
	return &SMTPMailer{
		host: host,
		port: port,
		from: from,
		user: user,
		pass: pass,
	}
}

// Send implements domain.Mailer. When no SMTP host is configured the message
// is logged instead of sent, which keeps local development working without
// mail credentials.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.host == "" {
		log.Printf("[MOCK MAIL] To: %s, Subject: %s, Body: %s", to, subject, body)
		return nil
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := mail.NewDialer(m.host, m.port, m.user, m.pass)
	d.Timeout = 10 * time.Second
	d.TLSConfig = &tls.Config{ServerName: m.host}

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}
