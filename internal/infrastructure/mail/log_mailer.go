package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/postboard/internal/core/ports"
)

// LogMailer writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("html", msg.HTML).
		Msg("mail not sent: no smtp host configured")
	return nil
}

// New picks the SMTP mailer when cfg.Host is set and the log mailer otherwise.
func New(cfg SMTPConfig, log zerolog.Logger) (ports.Mailer, error) {
	if cfg.Host == "" {
		return NewLogMailer(log), nil
	}
	return NewSMTPMailer(cfg)
}
