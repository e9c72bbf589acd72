package timer

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"devdesk/internal/model"
	"devdesk/internal/notify"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

const (
	PomodoroSeconds = 25 * 60
	DeepWorkSeconds = 90 * 60

	defaultTotalSessions = 4
	defaultTickInterval  = 100 * time.Millisecond
)

type CustomDuration struct {
	Hours   int
	Minutes int
	Seconds int
}

func (d CustomDuration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

type EventKind string

const (
	EventTick      EventKind = "tick"
	EventCompleted EventKind = "completed"
)

type Event struct {
	Kind         EventKind
	RemainingSec int
	Progress     float64
	Message      string
	Session      int
	Err          error
}

type Status struct {
	State           State
	Mode            model.TimerMode
	RemainingSec    int
	TotalSec        int
	Session         int
	TotalSessions   int
	ActiveTaskID    string
	ActiveTaskTitle string
}

type SessionRecorder interface {
	RecordSession(model.TimerSession) error
}

// Engine derives remaining time from the deadline, not tick counting.
// At most one tick goroutine is active per engine.
type Engine struct {
	mu            sync.Mutex
	state         State
	mode          model.TimerMode
	custom        CustomDuration
	totalSec      int
	currentSec    int
	deadline      time.Time
	session       int
	totalSessions int

	activeTaskID    string
	activeTaskTitle string

	recorder SessionRecorder
	alarm    notify.Alarm
	out      chan Event
	stopTick chan struct{}
	dropped  uint64

	now          func() time.Time
	tickInterval time.Duration
}

func NewEngine(recorder SessionRecorder, alarm notify.Alarm) *Engine {
	if alarm == nil {
		alarm = notify.NoopAlarm{}
	}
	e := &Engine{
		state:         StateIdle,
		custom:        CustomDuration{Minutes: 60},
		session:       1,
		totalSessions: defaultTotalSessions,
		recorder:      recorder,
		alarm:         alarm,
		out:           make(chan Event, 64),
		now:           time.Now,
		tickInterval:  defaultTickInterval,
	}
	e.setModeLocked(model.TimerModePomodoro)
	return e
}

func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) SetMode(mode model.TimerMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidTimerMode, mode)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelTickLocked()
	e.setModeLocked(mode)
	return nil
}

// SetCustomDuration has no effect on a run in flight.
func (e *Engine) SetCustomDuration(d CustomDuration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.custom = d
	if e.mode == model.TimerModeCustom && e.state != StateRunning {
		e.totalSec = d.TotalSeconds()
		e.currentSec = e.totalSec
	}
}

func (e *Engine) SetActiveTask(id, title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activeTaskID = id
	e.activeTaskTitle = title
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateRunning {
		return
	}
	if e.currentSec <= 0 {
		e.currentSec = e.totalSec
	}
	e.deadline = e.now().Add(time.Duration(e.currentSec) * time.Second)
	e.cancelTickLocked()
	stop := make(chan struct{})
	e.stopTick = stop
	e.state = StateRunning
	go e.run(stop)
}

func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateRunning {
		return
	}
	e.currentSec = e.remainingLocked()
	e.cancelTickLocked()
	e.state = StatePaused
}

func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelTickLocked()
	e.state = StateIdle
	if e.mode == model.TimerModeCustom {
		e.totalSec = e.custom.TotalSeconds()
	}
	e.currentSec = e.totalSec
}

func (e *Engine) Snapshot() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	remaining := e.currentSec
	if e.state == StateRunning {
		remaining = e.remainingLocked()
	}
	return Status{
		State:           e.state,
		Mode:            e.mode,
		RemainingSec:    remaining,
		TotalSec:        e.totalSec,
		Session:         e.session,
		TotalSessions:   e.totalSessions,
		ActiveTaskID:    e.activeTaskID,
		ActiveTaskTitle: e.activeTaskTitle,
	}
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) run(stop chan struct{}) {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			if e.state != StateRunning || e.stopTick != stop {
				e.mu.Unlock()
				return
			}
			remaining := e.remainingLocked()
			e.currentSec = remaining
			if remaining <= 0 {
				ev := e.completeLocked()
				e.mu.Unlock()
				e.emit(ev)
				return
			}
			total := e.totalSec
			e.mu.Unlock()
			e.emit(Event{
				Kind:         EventTick,
				RemainingSec: remaining,
				Progress:     progress(total, remaining),
			})
		}
	}
}

func (e *Engine) completeLocked() Event {
	e.cancelTickLocked()
	e.state = StateIdle
	e.currentSec = 0

	taskTitle := e.activeTaskTitle
	session := model.TimerSession{
		Mode:            e.mode,
		DurationSeconds: e.totalSec,
		CompletedAt:     e.now().UTC(),
		TaskLabel:       taskTitle,
	}
	var recordErr error
	if e.recorder != nil {
		recordErr = e.recorder.RecordSession(session)
	}
	e.alarm.Play()

	message := "Timer complete! Great work!"
	if taskTitle != "" {
		message = fmt.Sprintf("Timer complete! Great work on %q!", taskTitle)
	}
	if e.mode == model.TimerModePomodoro {
		e.session++
		if e.session > e.totalSessions {
			e.session = 1
			message = "All sessions complete! Take a longer break."
		} else {
			message = "Session complete! Take a short break."
		}
	}

	e.activeTaskID = ""
	e.activeTaskTitle = ""

	return Event{
		Kind:         EventCompleted,
		RemainingSec: 0,
		Progress:     1,
		Message:      message,
		Session:      e.session,
		Err:          recordErr,
	}
}

func (e *Engine) remainingLocked() int {
	remaining := int(math.Round(e.deadline.Sub(e.now()).Seconds()))
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (e *Engine) setModeLocked(mode model.TimerMode) {
	e.mode = mode
	e.state = StateIdle
	switch mode {
	case model.TimerModePomodoro:
		e.totalSec = PomodoroSeconds
	case model.TimerModeDeepWork:
		e.totalSec = DeepWorkSeconds
	default:
		e.totalSec = e.custom.TotalSeconds()
	}
	e.currentSec = e.totalSec
}

func (e *Engine) cancelTickLocked() {
	if e.stopTick != nil {
		close(e.stopTick)
		e.stopTick = nil
	}
}

func (e *Engine) emit(ev Event) {
	select {
	case e.out <- ev:
	default:
		atomic.AddUint64(&e.dropped, 1)
	}
}

func progress(total, remaining int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(total-remaining) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
