package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/orris-inc/aticket/internal/shared/config"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// NewSender builds the backend named in config. The "none" backend returns
// a nil Sender: events are still published, nothing is mailed.
func NewSender(backend string, emailCfg config.EmailConfig, log logger.Interface) (Sender, error) {
	switch backend {
	case config.NotifierConsole, "":
		return NewConsoleSender(log), nil
	case config.NotifierSMTP:
		if emailCfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp notifier requires email.smtp_host")
		}
		if emailCfg.FromAddress == "" {
			return nil, fmt.Errorf("smtp notifier requires email.from_address")
		}
		return NewSMTPSender(emailCfg), nil
	case config.NotifierNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown notification backend %q", backend)
	}
}

// ConsoleSender writes messages to the log instead of mailing them.
type ConsoleSender struct {
	logger logger.Interface
}

func NewConsoleSender(log logger.Interface) *ConsoleSender {
	return &ConsoleSender{logger: log}
}

func (s *ConsoleSender) Name() string { return config.NotifierConsole }

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	s.logger.Infow("ticket notification",
		"event", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}

// mailDialer is the part of gomail.Dialer the sender needs.
type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	dialer   mailDialer
	from     string
	fromName string
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
	}
}

func (s *SMTPSender) Name() string { return config.NotifierSMTP }

// Send mails one multipart message to all recipients. gomail has no
// context support, so ctx is only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.from, s.fromName)
	} else {
		m.SetHeader("From", s.from)
	}
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
