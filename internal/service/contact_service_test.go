package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hibara/portfolio-api/internal/dto"
	"github.com/hibara/portfolio-api/internal/mail"
	"github.com/hibara/portfolio-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type contactRepoStub struct {
	mu      sync.Mutex
	created []models.ContactSubmission
	err     error
}

func (c *contactRepoStub) Create(_ context.Context, submission *models.ContactSubmission) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	submission.ID = uuid.NewString()
	submission.CreatedAt = time.Now().UTC()
	c.created = append(c.created, *submission)
	return nil
}

func (c *contactRepoStub) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.created)
}

type sentEmail struct {
	From    string
	To      string
	Subject string
	HTML    string
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (d *recordingDispatcher) Send(_ context.Context, from, to, subject, html string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentEmail{From: from, To: to, Subject: subject, HTML: html})
	return d.err
}

func (d *recordingDispatcher) snapshot() []sentEmail {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]sentEmail, len(d.sent))
	copy(out, d.sent)
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) SubmissionAccepted(submission models.ContactSubmission, locale string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, submission.ID+":"+locale)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func newTestService(t *testing.T, repo *contactRepoStub, dispatcher mail.Dispatcher, events EventPublisher) ContactService {
	t.Helper()
	composer, err := mail.NewComposer()
	require.NoError(t, err)
	return NewContactService(repo, dto.NewValidator(), composer, dispatcher, events, "noreply@resend.dev", "owner@hibara.dev", testLogger())
}

func TestContactServiceSubmitSuccess(t *testing.T) {
	repo := &contactRepoStub{}
	dispatcher := &recordingDispatcher{}
	events := &recordingPublisher{}
	svc := newTestService(t, repo, dispatcher, events)

	payload := dto.ContactRequest{
		Name:             "Ada Lovelace",
		Email:            "Ada@Example.com",
		BusinessOverview: "I run a bakery",
	}

	submission, err := svc.Submit(context.Background(), payload, mail.LocaleEnglish)
	require.NoError(t, err)
	require.NotEmpty(t, submission.ID)
	require.False(t, submission.CreatedAt.IsZero())
	require.Equal(t, "ada@example.com", submission.Email)
	require.Equal(t, 1, repo.calls(), "save must run exactly once per request")

	require.Eventually(t, func() bool {
		return len(dispatcher.snapshot()) == 2
	}, 2*time.Second, 10*time.Millisecond, "notification and auto-reply should both be dispatched")

	recipients := map[string]string{}
	for _, email := range dispatcher.snapshot() {
		recipients[email.To] = email.Subject
		require.Equal(t, "noreply@resend.dev", email.From)
	}
	require.Equal(t, "New inquiry from Ada Lovelace", recipients["owner@hibara.dev"])
	require.Equal(t, "Thank you for your inquiry - Kazuya Hibara", recipients["ada@example.com"])

	require.Eventually(t, func() bool { return events.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestContactServiceSubmitJapaneseAutoReply(t *testing.T) {
	repo := &contactRepoStub{}
	dispatcher := &recordingDispatcher{}
	svc := newTestService(t, repo, dispatcher, nil)

	payload := dto.ContactRequest{Name: "花子", Email: "hanako@example.jp", BusinessOverview: "小売業"}
	_, err := svc.Submit(context.Background(), payload, mail.LocaleJapanese)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		for _, email := range dispatcher.snapshot() {
			if email.To == "hanako@example.jp" {
				return email.Subject == "お問い合わせありがとうございます - 桧原和也"
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestContactServiceReportsEveryViolation(t *testing.T) {
	repo := &contactRepoStub{}
	dispatcher := &recordingDispatcher{}
	svc := newTestService(t, repo, dispatcher, nil)

	_, err := svc.Submit(context.Background(), dto.ContactRequest{Email: "not-an-email"}, mail.LocaleEnglish)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Len(t, validationErrors, 3)

	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fieldError.Field())
	}
	require.ElementsMatch(t, []string{"name", "email", "businessOverview"}, fields)

	require.Zero(t, repo.calls(), "invalid payloads must never reach the store")
	require.Empty(t, dispatcher.snapshot())
}

func TestContactServiceStorageFailureSuppressesDispatch(t *testing.T) {
	repo := &contactRepoStub{err: errors.New("connection refused")}
	dispatcher := &recordingDispatcher{}
	svc := newTestService(t, repo, dispatcher, nil)

	payload := dto.ContactRequest{Name: "Ada", Email: "ada@example.com", BusinessOverview: "Bakery"}
	_, err := svc.Submit(context.Background(), payload, mail.LocaleEnglish)
	require.Error(t, err)

	time.Sleep(100 * time.Millisecond)
	require.Empty(t, dispatcher.snapshot(), "no email may be sent for a record that failed to persist")
}

func TestContactServiceDispatchFailureIsSwallowed(t *testing.T) {
	repo := &contactRepoStub{}
	dispatcher := &recordingDispatcher{err: errors.New("provider unavailable")}
	svc := newTestService(t, repo, dispatcher, nil)

	payload := dto.ContactRequest{Name: "Ada", Email: "ada@example.com", BusinessOverview: "Bakery"}
	submission, err := svc.Submit(context.Background(), payload, mail.LocaleEnglish)
	require.NoError(t, err, "delivery failure must not surface to the submitter")
	require.NotEmpty(t, submission.ID)

	// Both sends are still attempted even though each one fails.
	require.Eventually(t, func() bool {
		return len(dispatcher.snapshot()) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMaskEmail(t *testing.T) {
	require.Equal(t, "a***a@example.com", maskEmail("Ada@Example.com"))
	require.Equal(t, "a***@example.com", maskEmail("ab@example.com"))
	require.Equal(t, "***", maskEmail("not-an-email"))
	require.Equal(t, "", maskEmail("  "))
}
