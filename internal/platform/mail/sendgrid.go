package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dentaldesk/dentaldesk/internal/platform/metrics"
)

const providerSendGrid = "sendgrid"

type sendClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

type SendGridConfig struct {
	APIKey string
	// FromEmail overrides the connected address as the envelope sender. The
	// connected address is still used as reply-to.
	FromEmail string
	FromName  string
}

// SendGridMailbox delivers messages through the SendGrid v3 API.
type SendGridMailbox struct {
	session
	client   sendClient
	cfg      SendGridConfig
	source   SuggestionSource
	contacts []string
	metrics  *metrics.Metrics
}

func NewSendGridMailbox(cfg SendGridConfig, source SuggestionSource, contacts []string, m *metrics.Metrics) *SendGridMailbox {
	return &SendGridMailbox{
		session:  session{provider: providerSendGrid, now: time.Now},
		client:   sendgrid.NewSendClient(cfg.APIKey),
		cfg:      cfg,
		source:   source,
		contacts: contacts,
		metrics:  m,
	}
}

func (s *SendGridMailbox) Connect(_ context.Context, address string) (Status, error) {
	return s.connect(address)
}

func (s *SendGridMailbox) Disconnect(_ context.Context) (Status, error) {
	return s.disconnect(), nil
}

func (s *SendGridMailbox) Status(_ context.Context) Status {
	return s.status()
}

func (s *SendGridMailbox) Suggestions(ctx context.Context, query string) ([]string, error) {
	return suggest(ctx, s.source, s.contacts, query)
}

func (s *SendGridMailbox) Send(ctx context.Context, msg Message) error {
	connected, err := s.sender()
	if err != nil {
		return err
	}
	if err := msg.prepare(); err != nil {
		return err
	}
	err = s.deliver(ctx, connected, msg)
	s.metrics.ObserveMailSent(providerSendGrid, err)
	return err
}

func (s *SendGridMailbox) deliver(ctx context.Context, connected string, msg Message) error {
	log := zerolog.Ctx(ctx)

	fromEmail := s.cfg.FromEmail
	if fromEmail == "" {
		fromEmail = connected
	}
	from := sgmail.NewEmail(s.cfg.FromName, fromEmail)
	to := sgmail.NewEmail(msg.ToName, msg.To)

	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	message := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Body, html)
	if fromEmail != connected {
		message.SetReplyTo(sgmail.NewEmail("", connected))
	}

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("sendgrid send failed")
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		log.Error().Int("status", resp.StatusCode).Str("body", resp.Body).Str("to", msg.To).Msg("sendgrid returned error status")
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("status", resp.StatusCode).Msg("email sent via sendgrid")
	return nil
}
