package reminder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mulasense/finance-core/internal/calculation"
	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/pkg/dateutil"
)

// DefaultWindowDays is how far ahead of the due date reminders start.
const DefaultWindowDays = 3

// DebtorSource supplies the debtors a sweep inspects.
type DebtorSource interface {
	LoadDebtors(ctx context.Context) ([]domain.Debtor, error)
}

// Sweeper finds debtors with an open balance that are due soon or overdue
// and composes a reminder for each.
type Sweeper struct {
	Source     DebtorSource
	WindowDays int
	UserPhone  string
	Logger     calculation.Logger
	now        func() time.Time
}

// NewSweeper creates a sweeper over src. A non-positive window uses DefaultWindowDays.
func NewSweeper(src DebtorSource, windowDays int, userPhone string) *Sweeper {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Sweeper{
		Source:     src,
		WindowDays: windowDays,
		UserPhone:  userPhone,
		Logger:     calculation.NopLogger{},
		now:        calculation.Now,
	}
}

// WithNow returns a copy of the sweeper pinned to a different clock.
func (s *Sweeper) WithNow(now func() time.Time) *Sweeper {
	cp := *s
	cp.now = now
	return &cp
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (s *Sweeper) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.Logger = l
}

// Select returns reminders for debtors that still owe money and are due within
// the window, earliest due date first. Debtors without a due date are skipped.
func (s *Sweeper) Select(debtors []domain.Debtor) []domain.Reminder {
	now := s.now()
	var out []domain.Reminder
	for _, d := range debtors {
		if d.AmountRemaining() <= 0 || d.DueDate.IsZero() {
			continue
		}
		if dateutil.DaysUntil(now, d.DueDate) > s.WindowDays {
			continue
		}
		out = append(out, Build(d, s.UserPhone, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// Run loads debtors from the source and selects the ones to remind.
func (s *Sweeper) Run(ctx context.Context) ([]domain.Reminder, error) {
	debtors, err := s.Source.LoadDebtors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load debtors: %w", err)
	}
	reminders := s.Select(debtors)
	for _, r := range reminders {
		state := "due"
		if r.Overdue {
			state = "overdue"
		}
		s.Logger.Infof("reminder for %s (%s, %.2f outstanding): %s", r.DebtorName, state, r.AmountRemaining, r.Link)
	}
	s.Logger.Debugf("reminder sweep: %d of %d debtors selected", len(reminders), len(debtors))
	return reminders, nil
}
