package notify

import "context"

// Notifier delivers lead notifications. Implementations must treat delivery
// as best-effort: callers never let a failed notification affect the outcome
// of the submission that triggered it.
type Notifier interface {
	Notify(ctx context.Context, to, subject, htmlBody string) error
}

// Noop is the default Notifier until a mailer is configured.
type Noop struct{}

// Notify discards the notification.
func (Noop) Notify(ctx context.Context, to, subject, htmlBody string) error {
	return nil
}

var _ Notifier = Noop{}
