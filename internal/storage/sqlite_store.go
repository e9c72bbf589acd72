package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"devdesk/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

const (
	snapshotTasks    = "tasks"
	snapshotSessions = "timerSessions"
	snapshotSettings = "settings"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []model.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, taskToRecord(task))
	}
	return s.saveSnapshot(ctx, snapshotTasks, records)
}

func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]model.Task, error) {
	var records []taskRecord
	found, err := s.loadSnapshot(ctx, snapshotTasks, &records)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(records))
	if !found {
		return out, nil
	}
	for _, record := range records {
		out = append(out, taskFromRecord(record))
	}
	return out, nil
}

func (s *SQLiteStore) SaveSessions(ctx context.Context, sessions []model.TimerSession) error {
	records := make([]sessionRecord, 0, len(sessions))
	for _, session := range sessions {
		records = append(records, sessionToRecord(session))
	}
	return s.saveSnapshot(ctx, snapshotSessions, records)
}

func (s *SQLiteStore) LoadSessions(ctx context.Context) ([]model.TimerSession, error) {
	var records []sessionRecord
	found, err := s.loadSnapshot(ctx, snapshotSessions, &records)
	if err != nil {
		return nil, err
	}
	out := make([]model.TimerSession, 0, len(records))
	if !found {
		return out, nil
	}
	for _, record := range records {
		out = append(out, sessionFromRecord(record))
	}
	return out, nil
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, settings model.Settings) error {
	record := settingsRecord{
		SortBy:        string(settings.SortBy),
		Notifications: settings.NotificationsEnabled,
	}
	return s.saveSnapshot(ctx, snapshotSettings, record)
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (model.Settings, error) {
	var record settingsRecord
	found, err := s.loadSnapshot(ctx, snapshotSettings, &record)
	if err != nil {
		return model.Settings{}, err
	}
	if !found {
		return model.DefaultSettings(), nil
	}
	return model.Settings{
		SortBy:               model.SortMode(record.SortBy),
		NotificationsEnabled: record.Notifications,
	}, nil
}

func (s *SQLiteStore) saveSnapshot(ctx context.Context, name string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		name, string(raw), time.Now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) loadSnapshot(ctx context.Context, name string, out any) (bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE name = ?`, name)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("load snapshot %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", name, err)
	}
	return true, nil
}
