package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/agence-lumen/website-api/internal/entity"
	"github.com/agence-lumen/website-api/internal/notify"
	"github.com/agence-lumen/website-api/internal/repository"
)

// ErrSpamDetected marks a submission rejected by the honeypot gate.
var ErrSpamDetected = errors.New("spam detected")

const notifyTimeout = 10 * time.Second

// ContactService runs both lead-capture pipelines end to end: honeypot gate,
// persistence (full form) or logging (strip form), then best-effort
// notification.
type ContactService struct {
	repo      repository.SubmissionsRepository
	notifier  notify.Notifier
	recipient string
}

// NewContactService wires the pipelines. A nil notifier falls back to the
// no-op implementation; recipient may be empty to disable notifications.
func NewContactService(repo repository.SubmissionsRepository, notifier notify.Notifier, recipient string) *ContactService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &ContactService{repo: repo, notifier: notifier, recipient: recipient}
}

// SubmitContactForm gates and persists a validated submission. Either the
// whole row is written or nothing is; there is no partial persistence and no
// retry. The honeypot check runs strictly after schema validation, so a spam
// payload that is also malformed reports upstream as a validation failure,
// never as spam.
func (s *ContactService) SubmitContactForm(ctx context.Context, form ContactForm) (*entity.ContactSubmission, error) {
	if IsSpam(form.Website) {
		return nil, ErrSpamDetected
	}

	submission := &entity.ContactSubmission{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		Phone:       form.Phone,
		CompanyName: nullable(form.CompanyName),
		Services:    form.Services,
		Message:     nullable(form.Message),
	}
	if err := s.repo.Insert(ctx, submission); err != nil {
		return nil, fmt.Errorf("insert contact submission: %w", err)
	}

	s.notifyLead(submission)
	return submission, nil
}

// SubmitStripLead gates the condensed homepage lead and records it.
// Persistence for strip leads is a later phase; until the table ships the
// lead only goes to the log.
func (s *ContactService) SubmitStripLead(ctx context.Context, form StripForm) error {
	if IsSpam(form.Website) {
		return ErrSpamDetected
	}

	log.Printf("strip lead received first_name=%q last_name=%q company=%q location=%q phone=%q email=%q",
		form.FirstName, form.LastName, form.CompanyName, form.Location, form.Phone, form.Email)
	return nil
}

// notifyLead fires the notification without blocking the caller; a mailer
// outage must never turn a stored lead into a 500. The request context is not
// reused because it is cancelled as soon as the response goes out.
func (s *ContactService) notifyLead(submission *entity.ContactSubmission) {
	if s.recipient == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		subject := fmt.Sprintf("New contact form submission from %s %s", submission.FirstName, submission.LastName)
		if err := s.notifier.Notify(ctx, s.recipient, subject, leadEmailBody(submission)); err != nil {
			log.Printf("lead notification failed submission_id=%s err=%v", submission.ID, err)
		}
	}()
}

// leadEmailBody renders the notification HTML. Submitted values are escaped;
// the form is public input.
func leadEmailBody(submission *entity.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("<h2>New contact form submission</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s %s</p>", html.EscapeString(submission.FirstName), html.EscapeString(submission.LastName))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(submission.Email))
	fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(submission.Phone))
	if submission.CompanyName != nil {
		fmt.Fprintf(&b, "<p><strong>Company:</strong> %s</p>", html.EscapeString(*submission.CompanyName))
	}
	if len(submission.Services) > 0 {
		fmt.Fprintf(&b, "<p><strong>Services:</strong> %s</p>", html.EscapeString(strings.Join(submission.Services, ", ")))
	}
	if submission.Message != nil {
		fmt.Fprintf(&b, "<p><strong>Message:</strong> %s</p>", html.EscapeString(*submission.Message))
	}
	return b.String()
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
