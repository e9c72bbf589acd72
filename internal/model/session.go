package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimerMode = errors.New("model: invalid timer mode")

type TimerMode string

const (
	TimerModePomodoro TimerMode = "pomodoro"
	TimerModeDeepWork TimerMode = "deep-work"
	TimerModeCustom   TimerMode = "custom"
)

func (m TimerMode) IsValid() bool {
	switch m {
	case TimerModePomodoro, TimerModeDeepWork, TimerModeCustom:
		return true
	default:
		return false
	}
}

func (m TimerMode) Label() string {
	switch m {
	case TimerModePomodoro:
		return "Pomodoro"
	case TimerModeDeepWork:
		return "Deep Work"
	default:
		return "Custom"
	}
}

type TimerSession struct {
	Mode            TimerMode
	DurationSeconds int
	CompletedAt     time.Time
	TaskLabel       string
}

func (s TimerSession) Validate() error {
	if !s.Mode.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimerMode, s.Mode)
	}
	if s.DurationSeconds < 0 {
		return errors.New("model: session duration must not be negative")
	}
	if s.CompletedAt.IsZero() {
		return errors.New("model: session completed_at is required")
	}
	return nil
}
