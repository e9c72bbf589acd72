package storage

import (
	"context"

	"devdesk/internal/model"
)

// Saves overwrite the whole collection; missing snapshots load as defaults.
type Store interface {
	SaveTasks(ctx context.Context, tasks []model.Task) error
	LoadTasks(ctx context.Context) ([]model.Task, error)

	SaveSessions(ctx context.Context, sessions []model.TimerSession) error
	LoadSessions(ctx context.Context) ([]model.TimerSession, error)

	SaveSettings(ctx context.Context, settings model.Settings) error
	LoadSettings(ctx context.Context) (model.Settings, error)
}
