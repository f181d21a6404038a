package mail

import (
	"context"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Dispatcher delivers a composed email through a transactional provider.
type Dispatcher interface {
	Send(ctx context.Context, from, to, subject, html string) error
}

// ResendDispatcher sends email through the Resend API.
type ResendDispatcher struct {
	client *resend.Client
	logger zerolog.Logger
}

// NewResendDispatcher constructs a dispatcher backed by Resend.
func NewResendDispatcher(apiKey string, logger zerolog.Logger) *ResendDispatcher {
	return &ResendDispatcher{
		client: resend.NewClient(apiKey),
		logger: logger.With().Str("component", "mail_dispatcher").Logger(),
	}
}

// Send submits a single email to the provider.
func (d *ResendDispatcher) Send(ctx context.Context, from, to, subject, html string) error {
	_, err := d.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	return err
}

// NoopDispatcher stands in when no provider credential is configured. The
// service keeps accepting and persisting submissions without email capability.
type NoopDispatcher struct {
	logger zerolog.Logger
}

// NewNoopDispatcher constructs an inert dispatcher.
func NewNoopDispatcher(logger zerolog.Logger) NoopDispatcher {
	return NoopDispatcher{logger: logger.With().Str("component", "mail_dispatcher").Logger()}
}

// Send drops the email and reports success.
func (d NoopDispatcher) Send(_ context.Context, _, to, subject, _ string) error {
	d.logger.Debug().Str("to", to).Str("subject", subject).Msg("mail provider not configured, skipping dispatch")
	return nil
}
