package tasks

import (
	"context"
	"fmt"
	"sync"

	"devdesk/internal/model"
	"devdesk/internal/storage"
)

// SessionLog is written from the timer engine's goroutine.
type SessionLog struct {
	mu       sync.Mutex
	store    storage.Store
	sessions []model.TimerSession
}

func NewSessionLog(ctx context.Context, store storage.Store) (*SessionLog, error) {
	sessions, err := store.LoadSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	return &SessionLog{store: store, sessions: sessions}, nil
}

func (l *SessionLog) RecordSession(session model.TimerSession) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions = append(l.sessions, session)
	if err := l.store.SaveSessions(context.Background(), l.sessions); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

func (l *SessionLog) Sessions() []model.TimerSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.TimerSession, len(l.sessions))
	copy(out, l.sessions)
	return out
}

func (l *SessionLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions)
}
