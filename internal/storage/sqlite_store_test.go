package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"devdesk/internal/model"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "devdesk-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestTasksRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	created := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	due := time.Date(2026, 8, 21, 9, 30, 0, 0, time.UTC)

	tasks := []model.Task{
		{
			ID:        "1755691200000",
			Title:     "Ship report",
			Content:   "## Checklist\n- [ ] numbers",
			Category:  model.CategoryUrgent,
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:              "1755691200001",
			Title:           "Invoice client",
			Category:        model.CategoryFreelancing,
			DueDateTime:     &due,
			CreatedAt:       created.Add(time.Minute),
			UpdatedAt:       created.Add(2 * time.Minute),
			Scheduled:       true,
			Notified:        true,
			OverdueNotified: true,
		},
	}
	if err := store.SaveTasks(ctx, tasks); err != nil {
		t.Fatalf("save tasks: %v", err)
	}

	loaded, err := store.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if !reflect.DeepEqual(tasks, loaded) {
		t.Fatalf("round trip mismatch:\nsaved:  %#v\nloaded: %#v", tasks, loaded)
	}
}

func TestSaveTasksOverwritesWholeSnapshot(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	first := []model.Task{{ID: "1", Title: "One", Category: model.CategoryGeneral, CreatedAt: now, UpdatedAt: now}}
	second := []model.Task{{ID: "2", Title: "Two", Category: model.CategoryGeneral, CreatedAt: now, UpdatedAt: now}}
	if err := store.SaveTasks(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.SaveTasks(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, err := store.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "2" {
		t.Fatalf("expected only second snapshot, got: %#v", loaded)
	}
}

func TestLoadMissingSnapshotsYieldDefaults(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	tasks, err := store.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty task list, got %d", len(tasks))
	}

	sessions, err := store.LoadSessions(ctx)
	if err != nil {
		t.Fatalf("load sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected empty session list, got %d", len(sessions))
	}

	settings, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings != model.DefaultSettings() {
		t.Fatalf("expected default settings, got: %#v", settings)
	}
}

func TestSessionsAndSettingsRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	sessions := []model.TimerSession{
		{
			Mode:            model.TimerModePomodoro,
			DurationSeconds: 25 * 60,
			CompletedAt:     time.Date(2026, 8, 20, 12, 25, 0, 0, time.UTC),
			TaskLabel:       "Ship report",
		},
		{
			Mode:            model.TimerModeCustom,
			DurationSeconds: 600,
			CompletedAt:     time.Date(2026, 8, 20, 13, 0, 0, 0, time.UTC),
		},
	}
	if err := store.SaveSessions(ctx, sessions); err != nil {
		t.Fatalf("save sessions: %v", err)
	}
	loadedSessions, err := store.LoadSessions(ctx)
	if err != nil {
		t.Fatalf("load sessions: %v", err)
	}
	if !reflect.DeepEqual(sessions, loadedSessions) {
		t.Fatalf("session round trip mismatch: %#v", loadedSessions)
	}

	settings := model.Settings{SortBy: model.SortByPriority, NotificationsEnabled: false}
	if err := store.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	loadedSettings, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if loadedSettings != settings {
		t.Fatalf("settings round trip mismatch: %#v", loadedSettings)
	}
}
