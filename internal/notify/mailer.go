package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// MailerClient sends notifications by POSTing JSON to a mailer service.
type MailerClient struct {
	client  *http.Client
	baseURL string
}

// NewMailerClient builds a mailer client, auto-configuring an ID token client
// when none is injected.
func NewMailerClient(client *http.Client, mailerBaseURL string) *MailerClient {
	if mailerBaseURL == "" {
		panic("mailerBaseURL must not be empty")
	}
	mailerBaseURL = strings.TrimRight(mailerBaseURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), mailerBaseURL)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &MailerClient{client: client, baseURL: mailerBaseURL}
}

type mailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Notify posts the message to the mailer's /send endpoint.
func (m *MailerClient) Notify(ctx context.Context, to, subject, htmlBody string) error {
	body, err := json.Marshal(mailRequest{To: to, Subject: subject, HTML: htmlBody})
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create mailer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mailer error: %s", extractMailerError(resp.Body))
	}
	return nil
}

func extractMailerError(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return "unexpected mailer response"
	}
	if payload.Error != "" {
		return payload.Error
	}
	if payload.Message != "" {
		return payload.Message
	}
	return "unexpected mailer response"
}

var _ Notifier = (*MailerClient)(nil)
