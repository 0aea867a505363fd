// Package email envía las notificaciones transaccionales de Ergiva
// (confirmación de orden y de reserva de sesión) por SMTP.
//
// Los envíos son best-effort: una falla se loguea y no aborta la operación
// que la disparó.
package email

import (
	"crypto/tls"

	mail "github.com/go-mail/mail"
)

// Sender es la interfaz para enviar emails.
type Sender interface {
	Send(to, subject, htmlBody, textBody string) error
}

// SMTPSender implementa Sender con go-mail.
type SMTPSender struct {
	Host string
	Port int
	From string
	User string
	Pass string
}

// NewSMTPSender crea el sender SMTP.
func NewSMTPSender(host string, port int, from, user, pass string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, From: from, User: user, Pass: pass}
}

func (s *SMTPSender) Send(to, subject, htmlBody, textBody string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)

	// multipart/alternative (txt + html)
	if textBody != "" {
		m.SetBody("text/plain", textBody)
	}
	if htmlBody != "" {
		if textBody == "" {
			m.SetBody("text/html", htmlBody)
		} else {
			m.AddAlternative("text/html", htmlBody)
		}
	}

	d := mail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	d.TLSConfig = &tls.Config{ServerName: s.Host}
	return d.DialAndSend(m)
}

// NopSender descarta los emails (smtp.enabled: false, tests).
type NopSender struct{}

func (NopSender) Send(to, subject, htmlBody, textBody string) error { return nil }
