package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmcorreia/vitals/internal/ratelimit"
)

// FailureAlerter turns trigger failures into at most one user-facing
// notification per trigger type per day. Repeated identical failures
// across ticks go to the log only.
type FailureAlerter struct {
	notifier Notifier
	limiter  *ratelimit.Limiter
}

// NewFailureAlerter creates a FailureAlerter.
func NewFailureAlerter(notifier Notifier) *FailureAlerter {
	return &FailureAlerter{
		notifier: notifier,
		limiter:  ratelimit.New(24 * time.Hour),
	}
}

// AlertFailure notifies the user about a failed trigger, deduplicated
// per trigger type. The message is a single human-readable line, not
// a stack trace.
func (a *FailureAlerter) AlertFailure(ctx context.Context, trigger string, cause error) {
	if !a.limiter.Allow(trigger) {
		return
	}
	subject := fmt.Sprintf("vitals: %s failed", trigger)
	body := fmt.Sprintf("The %s trigger failed today: %v. It will not retry beyond its normal schedule.", trigger, cause)
	if err := a.notifier.Notify(ctx, subject, body); err != nil {
		log.Printf("notify: failure alert for %s not delivered: %v", trigger, err)
	}
}
