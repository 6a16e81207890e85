package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agence-lumen/website-api/internal/entity"
)

type spyRepository struct {
	inserted  []*entity.ContactSubmission
	insertErr error
}

func (s *spyRepository) Insert(ctx context.Context, submission *entity.ContactSubmission) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, submission)
	return nil
}

type spyNotifier struct {
	calls chan notifyCall
	err   error
}

type notifyCall struct {
	to      string
	subject string
	body    string
}

func newSpyNotifier(err error) *spyNotifier {
	return &spyNotifier{calls: make(chan notifyCall, 1), err: err}
}

func (s *spyNotifier) Notify(ctx context.Context, to, subject, htmlBody string) error {
	s.calls <- notifyCall{to: to, subject: subject, body: htmlBody}
	return s.err
}

func validForm() ContactForm {
	return ContactForm{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "+1-555-123-4567",
		Services:  []string{"webDevelopment"},
	}
}

func TestSubmitContactFormPersistsAndMapsOptionals(t *testing.T) {
	repo := &spyRepository{}
	svc := NewContactService(repo, nil, "")

	form := validForm()
	form.CompanyName = "Acme"
	form.Message = "We need a full redesign of our online presence."

	submission, err := svc.SubmitContactForm(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	if submission.CompanyName == nil || *submission.CompanyName != "Acme" {
		t.Fatalf("company not mapped: %+v", submission)
	}
	if submission.Message == nil || *submission.Message != form.Message {
		t.Fatalf("message not mapped: %+v", submission)
	}
}

func TestSubmitContactFormEmptyOptionalsBecomeNil(t *testing.T) {
	repo := &spyRepository{}
	svc := NewContactService(repo, nil, "")

	submission, err := svc.SubmitContactForm(context.Background(), validForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.CompanyName != nil || submission.Message != nil {
		t.Fatalf("empty optionals must be nil: %+v", submission)
	}
}

func TestSubmitContactFormRejectsSpamBeforePersistence(t *testing.T) {
	repo := &spyRepository{}
	notifier := newSpyNotifier(nil)
	svc := NewContactService(repo, notifier, "leads@agence-lumen.fr")

	form := validForm()
	form.Website = "http://spam.example"

	_, err := svc.SubmitContactForm(context.Background(), form)
	if !errors.Is(err, ErrSpamDetected) {
		t.Fatalf("expected ErrSpamDetected, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("spam must never be persisted, got %d inserts", len(repo.inserted))
	}
	select {
	case call := <-notifier.calls:
		t.Fatalf("spam must never notify, got %+v", call)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmitContactFormInsertFailurePropagates(t *testing.T) {
	repo := &spyRepository{insertErr: errors.New("connection refused")}
	notifier := newSpyNotifier(nil)
	svc := NewContactService(repo, notifier, "leads@agence-lumen.fr")

	_, err := svc.SubmitContactForm(context.Background(), validForm())
	if err == nil || errors.Is(err, ErrSpamDetected) {
		t.Fatalf("expected an internal error, got %v", err)
	}
	select {
	case call := <-notifier.calls:
		t.Fatalf("failed inserts must never notify, got %+v", call)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmitContactFormNotifiesAfterPersistence(t *testing.T) {
	repo := &spyRepository{}
	notifier := newSpyNotifier(nil)
	svc := NewContactService(repo, notifier, "leads@agence-lumen.fr")

	form := validForm()
	form.Message = "Bonjour, nous cherchons une refonte."

	if _, err := svc.SubmitContactForm(context.Background(), form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case call := <-notifier.calls:
		if call.to != "leads@agence-lumen.fr" {
			t.Fatalf("unexpected recipient: %s", call.to)
		}
		if !strings.Contains(call.subject, "Jane Doe") {
			t.Fatalf("subject should name the lead: %s", call.subject)
		}
		if !strings.Contains(call.body, "jane@example.com") {
			t.Fatalf("body should carry the email: %s", call.body)
		}
	case <-time.After(time.Second):
		t.Fatal("notification was never sent")
	}
}

func TestSubmitContactFormSurvivesNotifierFailure(t *testing.T) {
	repo := &spyRepository{}
	notifier := newSpyNotifier(errors.New("mailer down"))
	svc := NewContactService(repo, notifier, "leads@agence-lumen.fr")

	if _, err := svc.SubmitContactForm(context.Background(), validForm()); err != nil {
		t.Fatalf("notifier failure must not surface, got %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("submission should still be stored, got %d inserts", len(repo.inserted))
	}
	<-notifier.calls
}

func TestSubmitStripLeadGatesSpam(t *testing.T) {
	repo := &spyRepository{}
	svc := NewContactService(repo, nil, "")

	form := StripForm{
		FirstName:   "Jean",
		LastName:    "Martin",
		CompanyName: "Atelier Nord",
		Location:    "Lyon",
		Phone:       "+33 4 72 00 00 00",
		Email:       "jean@atelier-nord.fr",
	}
	if err := svc.SubmitStripLead(context.Background(), form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	form.Website = "bot"
	if err := svc.SubmitStripLead(context.Background(), form); !errors.Is(err, ErrSpamDetected) {
		t.Fatalf("expected ErrSpamDetected, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("strip leads are never persisted, got %d inserts", len(repo.inserted))
	}
}

func TestIsSpam(t *testing.T) {
	if IsSpam("") {
		t.Fatal("empty honeypot is not spam")
	}
	for _, value := range []string{"http://spam.example", " ", "x"} {
		if !IsSpam(value) {
			t.Fatalf("expected %q to be spam", value)
		}
	}
}
