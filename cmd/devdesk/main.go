package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"devdesk/internal/monitor"
	"devdesk/internal/notify"
	"devdesk/internal/storage"
	"devdesk/internal/tasks"
	"devdesk/internal/timer"
	"devdesk/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "devdesk failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	repo, err := tasks.NewRepository(ctx, store)
	if err != nil {
		return err
	}
	sessions, err := tasks.NewSessionLog(ctx, store)
	if err != nil {
		return err
	}

	relay := notify.NewRelay()
	mon := monitor.New(repo, relay)
	engine := timer.NewEngine(sessions, notify.TerminalBellAlarm{Out: os.Stdout})

	var desktop notify.DesktopNotifier = notify.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		desktop = notify.ExecDesktopNotifier{}
	}

	m := update.NewModelWithConfig(update.Deps{
		Repo:     repo,
		Engine:   engine,
		Sessions: sessions,
		Monitor:  mon,
		Desktop:  desktop,
	}, cfg)

	program := tea.NewProgram(m)
	relay.Bind(func(message string, severity notify.Severity) {
		program.Send(update.AlertMsg{Message: message, Severity: severity})
	})

	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
