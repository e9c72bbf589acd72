package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"devdesk/internal/model"
	"devdesk/internal/timer"
	"devdesk/internal/views"
)

func (m Model) handleTimerKey(msg tea.KeyMsg) Model {
	if m.Engine == nil {
		return m
	}
	switch msg.String() {
	case " ":
		if m.Engine.Snapshot().State == timer.StateRunning {
			m.Engine.Pause()
			m.Status = StatusBar{Text: "timer paused", IsError: false}
		} else {
			m.Engine.Start()
			m.Status = StatusBar{Text: "timer running", IsError: false}
		}
	case "r":
		m.Engine.Reset()
		m.Status = StatusBar{Text: "timer reset", IsError: false}
	case "p":
		m = m.switchTimerMode(model.TimerModePomodoro)
	case "w":
		m = m.switchTimerMode(model.TimerModeDeepWork)
	case "c":
		m = m.switchTimerMode(model.TimerModeCustom)
	case "+", "=":
		m = m.adjustCustomMinutes(5)
	case "-":
		m = m.adjustCustomMinutes(-5)
	}
	m.Timer = m.Engine.Snapshot()
	return m
}

func (m Model) switchTimerMode(mode model.TimerMode) Model {
	if err := m.Engine.SetMode(mode); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("timer mode: %s", mode.Label()), IsError: false}
	return m
}

func (m Model) adjustCustomMinutes(delta int) Model {
	total := m.Custom.TotalSeconds() + delta*60
	if total < 60 {
		total = 60
	}
	m.Custom = timerDurationFromSeconds(total)
	m.Engine.SetCustomDuration(m.Custom)
	m.Status = StatusBar{Text: fmt.Sprintf("custom duration: %s", formatClock(total)), IsError: false}
	return m
}

func (m Model) renderTimerView() string {
	status := m.Timer
	pct := 0
	if status.TotalSec > 0 {
		pct = (status.TotalSec - status.RemainingSec) * 100 / status.TotalSec
	}
	return views.RenderTimerPanel(views.TimerPanelData{
		Mode:          status.Mode.Label(),
		State:         string(status.State),
		Clock:         formatClock(status.RemainingSec),
		ProgressView:  m.timerProgress.View(),
		ProgressPct:   pct,
		Session:       status.Session,
		TotalSessions: status.TotalSessions,
		TaskTitle:     status.ActiveTaskTitle,
		CustomClock:   formatClock(m.Custom.TotalSeconds()),
	})
}

func (m Model) renderSessionsView() string {
	count := 0
	if m.Sessions != nil {
		count = m.Sessions.Len()
	}
	return views.RenderSessionsPanel(views.SessionsPanelData{
		TableView: m.sessionsTable.View(),
		Count:     count,
	})
}
