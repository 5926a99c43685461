// Package notify is the outbound notification boundary. The scheduler
// treats delivery as fire-and-forget: failures are logged, never
// retried.
package notify

import (
	"context"
	"log"
)

// Notifier delivers a rendered message to the user.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// LogNotifier writes notifications to the process log. The default
// sink when no chat transport is wired in.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(ctx context.Context, subject, body string) error {
	log.Printf("notify: %s\n%s", subject, body)
	return nil
}
