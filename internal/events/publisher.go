package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/hibara/portfolio-api/internal/models"
)

// SubjectSubmissionAccepted is the subject accepted submissions are published
// on for downstream consumers (CRM sync, alerting).
const SubjectSubmissionAccepted = "contact.submitted"

// SubmissionAcceptedEvent is the wire payload for an accepted submission.
type SubmissionAcceptedEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher emits submission events to NATS. Publication is best effort:
// failures are logged and never affect the already-committed submission.
type Publisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewPublisher constructs a publisher on an established NATS connection.
func NewPublisher(conn *nats.Conn, logger zerolog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

// SubmissionAccepted publishes an accepted submission.
func (p *Publisher) SubmissionAccepted(submission models.ContactSubmission, locale string) {
	payload, err := json.Marshal(SubmissionAcceptedEvent{
		ID:        submission.ID,
		Name:      submission.Name,
		Email:     submission.Email,
		Locale:    locale,
		CreatedAt: submission.CreatedAt,
	})
	if err != nil {
		p.logger.Error().Err(err).Str("submission_id", submission.ID).Msg("failed to encode submission event")
		return
	}

	if err := p.conn.Publish(SubjectSubmissionAccepted, payload); err != nil {
		p.logger.Warn().Err(err).Str("submission_id", submission.ID).Msg("failed to publish submission event")
	}
}
