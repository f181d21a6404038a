package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hibara/portfolio-api/internal/dto"
	"github.com/hibara/portfolio-api/internal/mail"
	"github.com/hibara/portfolio-api/internal/models"
	"github.com/hibara/portfolio-api/internal/observability"
	"github.com/hibara/portfolio-api/internal/repository"
)

const dispatchTimeout = 30 * time.Second

// EventPublisher broadcasts accepted submissions to downstream consumers.
type EventPublisher interface {
	SubmissionAccepted(submission models.ContactSubmission, locale string)
}

// ContactService exposes the contact submission workflow: validate, persist,
// then hand off email dispatch in the background.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest, locale string) (models.ContactSubmission, error)
}

type contactService struct {
	repo         repository.ContactRepository
	validator    *validator.Validate
	composer     *mail.Composer
	dispatcher   mail.Dispatcher
	events       EventPublisher
	logger       zerolog.Logger
	fromEmail    string
	contactEmail string
	tracer       trace.Tracer
}

// NewContactService constructs a contact submission service. events may be
// nil when no broker is configured.
func NewContactService(
	repo repository.ContactRepository,
	validate *validator.Validate,
	composer *mail.Composer,
	dispatcher mail.Dispatcher,
	events EventPublisher,
	fromEmail, contactEmail string,
	logger zerolog.Logger,
) ContactService {
	return &contactService{
		repo:         repo,
		validator:    validate,
		composer:     composer,
		dispatcher:   dispatcher,
		events:       events,
		logger:       logger.With().Str("component", "contact_service").Logger(),
		fromEmail:    fromEmail,
		contactEmail: contactEmail,
		tracer:       otel.Tracer("github.com/hibara/portfolio-api/internal/service/contact"),
	}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest, locale string) (models.ContactSubmission, error) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		observability.ContactSubmissions().WithLabelValues("invalid").Inc()
		return models.ContactSubmission{}, err
	}

	submission := models.ContactSubmission{
		Name:                   strings.TrimSpace(req.Name),
		Email:                  strings.ToLower(strings.TrimSpace(req.Email)),
		BusinessOverview:       strings.TrimSpace(req.BusinessOverview),
		CurrentChallenges:      strings.TrimSpace(req.CurrentChallenges),
		ToolsUsed:              strings.TrimSpace(req.ToolsUsed),
		PreferredContactMethod: strings.TrimSpace(req.PreferredContactMethod),
	}

	if err := s.repo.Create(ctx, &submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.ContactSubmissions().WithLabelValues("storage_error").Inc()
		return models.ContactSubmission{}, fmt.Errorf("persist contact submission: %w", err)
	}

	span.SetAttributes(
		attribute.String("contact.submission_id", submission.ID),
		attribute.String("contact.locale", locale),
	)
	observability.ContactSubmissions().WithLabelValues("accepted").Inc()
	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("email", maskEmail(submission.Email)).
		Str("locale", locale).
		Msg("contact submission accepted")

	// Email and event publication run detached from the request. The caller's
	// context is gone once the response is written, and the submission is
	// already committed: delivery failures change nothing for the submitter.
	go s.dispatchAsync(submission, locale)

	span.SetStatus(codes.Ok, "accepted")
	return submission, nil
}

func (s *contactService) dispatchAsync(submission models.ContactSubmission, locale string) {
	notification, err := s.composer.BuildNotification(submission)
	if err != nil {
		s.logger.Error().Err(err).Str("submission_id", submission.ID).Msg("failed to compose notification email")
	} else {
		go s.send(s.contactEmail, notification, submission.ID, "notification")
	}

	autoReply, err := s.composer.BuildAutoReply(submission.Name, locale)
	if err != nil {
		s.logger.Error().Err(err).Str("submission_id", submission.ID).Msg("failed to compose auto-reply email")
	} else {
		go s.send(submission.Email, autoReply, submission.ID, "auto_reply")
	}

	if s.events != nil {
		s.events.SubmissionAccepted(submission, locale)
	}
}

func (s *contactService) send(to string, msg mail.Message, submissionID, kind string) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := s.dispatcher.Send(ctx, s.fromEmail, to, msg.Subject, msg.HTML); err != nil {
		s.logger.Warn().
			Err(err).
			Str("submission_id", submissionID).
			Str("kind", kind).
			Str("to", maskEmail(to)).
			Msg("contact email dispatch failed")
	}
}
