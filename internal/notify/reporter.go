package notify

import (
	"context"
	"fmt"

	"github.com/jmcorreia/vitals/internal/report"
	"github.com/jmcorreia/vitals/internal/types"
)

// Reporter composes report payloads and delivers them. One instance
// serves both the scheduler triggers and the manual report command.
type Reporter struct {
	engine   *report.Engine
	notifier Notifier
}

// NewReporter creates a Reporter.
func NewReporter(engine *report.Engine, notifier Notifier) *Reporter {
	return &Reporter{engine: engine, notifier: notifier}
}

// SendDaily builds and delivers the summary for the given date. A day
// with no stored record still produces a notification saying so: the
// user learns the sync failed instead of hearing nothing.
func (r *Reporter) SendDaily(ctx context.Context, date types.Date) error {
	rep, err := r.engine.Daily(ctx, date)
	if err != nil {
		return fmt.Errorf("build daily report: %w", err)
	}
	subject := fmt.Sprintf("Daily report %s", date)
	if err := r.notifier.Notify(ctx, subject, FormatDaily(rep)); err != nil {
		return fmt.Errorf("deliver daily report: %w", err)
	}
	return nil
}

// SendWeekly builds and delivers the weekly rollup ending at end.
func (r *Reporter) SendWeekly(ctx context.Context, end types.Date) error {
	rep, err := r.engine.Weekly(ctx, end)
	if err != nil {
		return fmt.Errorf("build weekly report: %w", err)
	}
	subject := fmt.Sprintf("Weekly report through %s", end)
	if err := r.notifier.Notify(ctx, subject, FormatWeekly(rep)); err != nil {
		return fmt.Errorf("deliver weekly report: %w", err)
	}
	return nil
}

// SendMonthly builds and delivers the 30-day rollup ending at end.
func (r *Reporter) SendMonthly(ctx context.Context, end types.Date) error {
	rep, err := r.engine.Monthly(ctx, end)
	if err != nil {
		return fmt.Errorf("build monthly report: %w", err)
	}
	subject := fmt.Sprintf("Monthly report through %s", end)
	if err := r.notifier.Notify(ctx, subject, FormatMonthly(rep)); err != nil {
		return fmt.Errorf("deliver monthly report: %w", err)
	}
	return nil
}
