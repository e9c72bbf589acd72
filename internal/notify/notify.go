package notify

import (
	"sync"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityAlarm   Severity = "alarm"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError, SeverityAlarm:
		return true
	default:
		return false
	}
}

type Notifier interface {
	Notify(message string, severity Severity)
}

type NotifierFunc func(message string, severity Severity)

func (f NotifierFunc) Notify(message string, severity Severity) {
	f(message, severity)
}

// Relay drops messages that arrive before Bind.
type Relay struct {
	mu     sync.Mutex
	target NotifierFunc
}

func NewRelay() *Relay {
	return &Relay{}
}

func (r *Relay) Bind(target NotifierFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = target
}

func (r *Relay) Notify(message string, severity Severity) {
	r.mu.Lock()
	target := r.target
	r.mu.Unlock()
	if target == nil {
		return
	}
	target(message, severity)
}

type Notification struct {
	Title    string
	Body     string
	Severity Severity
	At       time.Time
}
