package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	gomail "gopkg.in/mail.v2"

	"github.com/shanehull/iposcraper/internal/config"
)

// UndisclosedRecipients is the visible To header. Real recipients only appear
// in the SMTP envelope so they cannot see each other's addresses.
const UndisclosedRecipients = "Undisclosed Recipients"

// Dialer opens an authenticated SMTP session. *gomail.Dialer satisfies it.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

// EmailSender delivers messages via SMTP.
type EmailSender struct {
	cfg    config.SMTP
	dialer Dialer
	logger *logrus.Logger
}

type SenderOption func(*EmailSender)

func WithDialer(d Dialer) SenderOption {
	return func(s *EmailSender) { s.dialer = d }
}

func WithSenderLogger(l *logrus.Logger) SenderOption {
	return func(s *EmailSender) { s.logger = l }
}

// NewEmailSender creates a sender that upgrades with STARTTLS and
// authenticates as cfg.Sender.
func NewEmailSender(cfg config.SMTP, opts ...SenderOption) *EmailSender {
	dialer := gomail.NewDialer(cfg.Server, cfg.Port, cfg.Sender, cfg.Password)
	dialer.Timeout = 10 * time.Second
	dialer.StartTLSPolicy = gomail.MandatoryStartTLS

	s := &EmailSender{
		cfg:    cfg,
		dialer: dialer,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildMessage assembles the MIME message for msg.
func (s *EmailSender) BuildMessage(msg *RenderedMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Sender)
	m.SetHeader("To", UndisclosedRecipients)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), messageIDDomain(s.cfg)))

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}
	return m
}

// Send submits msg to every configured recipient in one envelope.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	if len(s.cfg.Recipients) == 0 {
		return fmt.Errorf("%w: RECIPIENTS", config.ErrMissingSetting)
	}

	m := s.BuildMessage(msg)

	s.logger.WithFields(logrus.Fields{
		"server":     s.cfg.Server,
		"port":       s.cfg.Port,
		"recipients": len(s.cfg.Recipients),
	}).Info("Emailing report")

	sc, err := s.dialer.Dial()
	if err != nil {
		return fmt.Errorf("failed to connect to %s:%d: %w", s.cfg.Server, s.cfg.Port, err)
	}

	if err := sc.Send(s.cfg.Sender, s.cfg.Recipients, m); err != nil {
		_ = sc.Close()
		return fmt.Errorf("failed to send %q: %w", msg.Subject, err)
	}

	if err := sc.Close(); err != nil {
		return fmt.Errorf("failed to close SMTP session: %w", err)
	}

	s.logger.WithField("subject", msg.Subject).Info("Email sent")
	return nil
}

func messageIDDomain(cfg config.SMTP) string {
	if i := strings.LastIndex(cfg.Sender, "@"); i >= 0 && i < len(cfg.Sender)-1 {
		return cfg.Sender[i+1:]
	}
	if cfg.Server != "" {
		return cfg.Server
	}
	return "localhost"
}
