// Package mail is the outbound-mail collaborator. Delivery itself is
// peripheral: the services only depend on the Mailer interface.
package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/homeboard/homeboard-backend/internal/config"
)

// Mailer sends account-related mails.
type Mailer interface {
	SendResetPasswordMail(to string) error
}

// New returns an SMTP-backed mailer, or a log-only mailer when no SMTP host
// is configured (development default).
func New(cfg config.MailConfig) Mailer {
	if cfg.Host == "" {
		return &logMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

type smtpMailer struct {
	cfg config.MailConfig
}

func (m *smtpMailer) SendResetPasswordMail(to string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	msg := []byte("To: " + to + "\r\n" +
		"Subject: Reset your password\r\n" +
		"\r\n" +
		"A password reset was requested for your account. Follow the link in your application to choose a new password.\r\n")
	if err := smtp.SendMail(addr, nil, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

type logMailer struct{}

func (m *logMailer) SendResetPasswordMail(to string) error {
	slog.Info("reset password mail (delivery disabled)", "to", to)
	return nil
}
