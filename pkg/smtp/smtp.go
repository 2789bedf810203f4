package smtp

import (
	"errors"
	"fmt"
	"net/mail"
	smtpPkg "net/smtp"
	"os"
	"strings"
)

var ErrNotConfigured = errors.New("smtp credentials are not configured")

type ItfSmtp interface {
	Send(to, subject, body string) error
}

type sendFunc func(addr string, a smtpPkg.Auth, from string, to []string, msg []byte) error

type smtp struct {
	auth smtpPkg.Auth
	mail string
	addr string
	send sendFunc
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	auth := smtpPkg.PlainAuth("", mail, password, host)

	return &smtp{auth: auth, mail: mail, addr: host + ":" + port, send: smtpPkg.SendMail}
}

func (s *smtp) Send(to, subject, body string) error {
	if s.mail == "" {
		return ErrNotConfigured
	}

	addr, err := mail.ParseAddress(to)
	if err != nil {
		return fmt.Errorf("invalid receiver address: %w", err)
	}

	message := buildMessage(s.mail, addr.Address, subject, body)
	if err := s.send(s.addr, s.auth, s.mail, []string{addr.Address}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	// Header values must not carry line breaks.
	subject = strings.NewReplacer("\r", " ", "\n", " ").Replace(subject)

	return []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, subject, body))
}
