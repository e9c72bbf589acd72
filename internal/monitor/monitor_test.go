package monitor

import (
	"context"
	"strings"
	"testing"
	"time"

	"devdesk/internal/model"
	"devdesk/internal/notify"
	"devdesk/internal/storage"
	"devdesk/internal/tasks"
)

type memStore struct {
	tasks    []model.Task
	sessions []model.TimerSession
	settings *model.Settings
}

func (s *memStore) SaveTasks(_ context.Context, tasks []model.Task) error {
	s.tasks = append([]model.Task(nil), tasks...)
	return nil
}

func (s *memStore) LoadTasks(context.Context) ([]model.Task, error) {
	return append([]model.Task(nil), s.tasks...), nil
}

func (s *memStore) SaveSessions(_ context.Context, sessions []model.TimerSession) error {
	s.sessions = append([]model.TimerSession(nil), sessions...)
	return nil
}

func (s *memStore) LoadSessions(context.Context) ([]model.TimerSession, error) {
	return append([]model.TimerSession(nil), s.sessions...), nil
}

func (s *memStore) SaveSettings(_ context.Context, settings model.Settings) error {
	copied := settings
	s.settings = &copied
	return nil
}

func (s *memStore) LoadSettings(context.Context) (model.Settings, error) {
	if s.settings == nil {
		return model.DefaultSettings(), nil
	}
	return *s.settings, nil
}

var _ storage.Store = (*memStore)(nil)

type capturingNotifier struct {
	messages   []string
	severities []notify.Severity
}

func (n *capturingNotifier) Notify(message string, severity notify.Severity) {
	n.messages = append(n.messages, message)
	n.severities = append(n.severities, severity)
}

func setup(t *testing.T) (*tasks.Repository, *Monitor, *capturingNotifier) {
	t.Helper()
	repo, err := tasks.NewRepository(context.Background(), &memStore{})
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	sink := &capturingNotifier{}
	return repo, New(repo, sink), sink
}

func TestNoDueDateNeverNotifies(t *testing.T) {
	repo, mon, sink := setup(t)
	ctx := context.Background()
	if _, err := repo.Create(ctx, "No schedule", "", model.CategoryGeneral, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := mon.Check(ctx, now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("check: %v", err)
		}
	}
	if len(sink.messages) != 0 {
		t.Fatalf("expected no notifications, got: %v", sink.messages)
	}
}

func TestDueSoonFiresOnceInsideWindow(t *testing.T) {
	repo, mon, sink := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	due := now.Add(10 * time.Minute)

	task, err := repo.Create(ctx, "Standup", "", model.CategoryGeneral, &due)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := mon.Check(ctx, now); err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(sink.messages) != 1 {
		t.Fatalf("expected 1 notification, got: %v", sink.messages)
	}
	if !strings.Contains(sink.messages[0], `"Standup" is due in 10 minutes`) {
		t.Fatalf("unexpected message: %q", sink.messages[0])
	}
	if sink.severities[0] != notify.SeverityAlarm {
		t.Fatalf("expected alarm severity, got %q", sink.severities[0])
	}

	// repeated scans stay quiet
	if err := mon.Check(ctx, now.Add(time.Minute)); err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(sink.messages) != 1 {
		t.Fatalf("expected still 1 notification, got: %v", sink.messages)
	}
	got, _ := repo.Get(task.ID)
	if !got.Notified {
		t.Fatal("expected notified flag set")
	}
}

func TestDueSoonWindowBoundaries(t *testing.T) {
	repo, mon, sink := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	farDue := now.Add(16 * time.Minute)
	edgeDue := now.Add(15 * time.Minute)
	exactDue := now

	repo.Create(ctx, "Too far", "", model.CategoryGeneral, &farDue)
	repo.Create(ctx, "On the edge", "", model.CategoryGeneral, &edgeDue)
	repo.Create(ctx, "Due right now", "", model.CategoryGeneral, &exactDue)

	if err := mon.Check(ctx, now); err != nil {
		t.Fatalf("check: %v", err)
	}
	// only the 15-minute task is inside the window
	if len(sink.messages) != 1 {
		t.Fatalf("expected 1 notification, got: %v", sink.messages)
	}
	if !strings.Contains(sink.messages[0], `"On the edge" is due in 15 minutes`) {
		t.Fatalf("unexpected message: %q", sink.messages[0])
	}
}

func TestOverdueFiresOnceAndSurvivesUpdate(t *testing.T) {
	repo, mon, sink := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	due := now.Add(-time.Minute)

	task, err := repo.Create(ctx, "Tax docs", "", model.CategoryUrgent, &due)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := mon.Check(ctx, now); err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(sink.messages) != 1 || !strings.Contains(sink.messages[0], `"Tax docs" is overdue!`) {
		t.Fatalf("expected overdue notification, got: %v", sink.messages)
	}
	if sink.severities[0] != notify.SeverityError {
		t.Fatalf("expected error severity, got %q", sink.severities[0])
	}

	// update re-arms the due-soon flag but never the overdue flag
	if _, err := repo.Update(ctx, task.ID, task.Title, task.Content, task.Category, &due); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mon.Check(ctx, now.Add(time.Minute)); err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(sink.messages) != 1 {
		t.Fatalf("expected overdue to fire once, got: %v", sink.messages)
	}
}

func TestUpdateReArmsDueSoon(t *testing.T) {
	repo, mon, sink := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	due := now.Add(5 * time.Minute)

	task, err := repo.Create(ctx, "Standup", "", model.CategoryGeneral, &due)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mon.Check(ctx, now); err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(sink.messages) != 1 {
		t.Fatalf("expected 1 notification, got: %v", sink.messages)
	}

	// the reset flag makes the next scan fire again for the same due date
	if _, err := repo.Update(ctx, task.ID, task.Title, task.Content, task.Category, &due); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mon.Check(ctx, now.Add(time.Minute)); err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(sink.messages) != 2 {
		t.Fatalf("expected re-armed notification, got: %v", sink.messages)
	}
}

func TestNotificationsDisabledSuppressesScan(t *testing.T) {
	repo, mon, sink := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	due := now.Add(5 * time.Minute)

	repo.Create(ctx, "Quiet task", "", model.CategoryGeneral, &due)
	if err := repo.SetNotificationsEnabled(ctx, false); err != nil {
		t.Fatalf("disable notifications: %v", err)
	}

	if err := mon.Check(ctx, now); err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(sink.messages) != 0 {
		t.Fatalf("expected no notifications while disabled, got: %v", sink.messages)
	}
}
