package monitor

import (
	"context"
	"fmt"
	"math"
	"time"

	"devdesk/internal/notify"
	"devdesk/internal/tasks"
)

const (
	DueSoonWindow   = 15 * time.Minute
	DefaultInterval = time.Minute
)

// Monitor emits at most one due-soon and one overdue notification per
// task per due-date value.
type Monitor struct {
	repo     *tasks.Repository
	notifier notify.Notifier
}

func New(repo *tasks.Repository, notifier notify.Notifier) *Monitor {
	return &Monitor{repo: repo, notifier: notifier}
}

func (m *Monitor) Check(ctx context.Context, now time.Time) error {
	if !m.repo.Settings().NotificationsEnabled {
		return nil
	}
	for _, task := range m.repo.Tasks() {
		if task.DueDateTime == nil || task.Completed {
			continue
		}
		due := *task.DueDateTime

		if !task.Notified {
			minutesUntilDue := due.Sub(now).Minutes()
			if minutesUntilDue > 0 && minutesUntilDue <= DueSoonWindow.Minutes() {
				m.notifier.Notify(
					fmt.Sprintf("Task %q is due in %d minutes!", task.Title, int(math.Round(minutesUntilDue))),
					notify.SeverityAlarm,
				)
				if err := m.repo.MarkNotified(ctx, task.ID); err != nil {
					return fmt.Errorf("mark notified %s: %w", task.ID, err)
				}
			}
		}

		if !task.OverdueNotified && now.After(due) {
			m.notifier.Notify(
				fmt.Sprintf("Task %q is overdue!", task.Title),
				notify.SeverityError,
			)
			if err := m.repo.MarkOverdueNotified(ctx, task.ID); err != nil {
				return fmt.Errorf("mark overdue notified %s: %w", task.ID, err)
			}
		}
	}
	return nil
}
