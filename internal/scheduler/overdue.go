// Package scheduler runs the daily batch that flips overdue pending
// accounts.
package scheduler

import (
	"context"
	"time"

	"github.com/api-sage/accounts-payable/internal/domain"
	"github.com/api-sage/accounts-payable/internal/logger"
)

type AccountStore interface {
	ListByStatus(ctx context.Context, status domain.AccountStatus) ([]domain.Account, error)
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) (domain.Account, error)
}

type OverdueScheduler struct {
	store  AccountStore
	hour   int
	minute int
	now    func() time.Time
}

func New(store AccountStore, hour, minute int) *OverdueScheduler {
	return &OverdueScheduler{
		store:  store,
		hour:   hour,
		minute: minute,
		now:    time.Now,
	}
}

// Run fires once per calendar day at the configured wall-clock time until
// ctx is cancelled. A trigger missed while the process was down is skipped,
// not caught up.
func (s *OverdueScheduler) Run(ctx context.Context) {
	for {
		next := s.nextRun(s.now())
		timer := time.NewTimer(next.Sub(s.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.MarkOverdueAccounts(ctx)
		}
	}
}

func (s *OverdueScheduler) nextRun(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}

	return run
}

// MarkOverdueAccounts flips every pending account whose due date is
// strictly before today to OVERDUE. Accounts due today stay pending.
// Per-record failures are logged and skipped; the batch is best-effort and
// safe to re-run.
func (s *OverdueScheduler) MarkOverdueAccounts(ctx context.Context) {
	pending, err := s.store.ListByStatus(ctx, domain.AccountStatusPending)
	if err != nil {
		logger.Error("overdue scheduler list pending accounts failed", err, nil)
		return
	}

	today := calendarDate(s.now())
	flipped := 0
	for _, account := range pending {
		if !calendarDate(account.DueDate).Before(today) {
			continue
		}

		if _, err := s.store.UpdateStatus(ctx, account.ID, domain.AccountStatusOverdue); err != nil {
			logger.Error("overdue scheduler update status failed", err, logger.Fields{"accountId": account.ID})
			continue
		}
		flipped++
	}

	logger.Info("overdue scheduler run complete", logger.Fields{
		"pending": len(pending),
		"flipped": flipped,
	})
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
