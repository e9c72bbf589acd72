package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"devdesk/internal/notify"
	"devdesk/internal/timer"
	"devdesk/internal/views"
)

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.Engine != nil {
		cmds = append(cmds, waitForTimerEventCmd(m.Engine.C()))
	}
	if m.Monitor != nil {
		cmds = append(cmds, func() tea.Msg { return DueCheckMsg{} })
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			next := m.handlePaletteKey(typed)
			return next, nil
		}
		if m.Form.Active {
			next := m.handleFormKey(typed)
			return next, nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Timer:
			m.CurrentView = ViewTimer
			return m, nil
		case m.Keys.Sessions:
			m.CurrentView = ViewSessions
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewTasks {
			return m.handleTasksKey(typed), nil
		}
		if m.CurrentView == ViewTimer {
			return m.handleTimerKey(typed), nil
		}
		if m.CurrentView == ViewSessions {
			return m.handleSessionsKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.toast("Error", typed.Err.Error(), notify.SeverityError)
		}
		return m, nil
	case DueCheckMsg:
		return m.onDueCheck()
	case TimerEventMsg:
		return m.onTimerEvent(typed.Event)
	case AlertMsg:
		m.Status = StatusBar{Text: typed.Message, IsError: typed.Severity == notify.SeverityError}
		m.toast("Task Alert", typed.Message, typed.Severity)
		return m, nil
	}

	return m, nil
}

func (m Model) onDueCheck() (Model, tea.Cmd) {
	if m.Monitor == nil {
		return m, nil
	}
	if err := m.Monitor.Check(context.Background(), m.now()); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	return m, dueCheckTickCmd(m.DueInterval)
}

func (m Model) onTimerEvent(ev timer.Event) (Model, tea.Cmd) {
	if ev.Kind == timer.EventCompleted {
		m.Status = StatusBar{Text: ev.Message, IsError: false}
		m.toast("DevDesk Timer Complete!", ev.Message, notify.SeveritySuccess)
		if ev.Err != nil {
			m.LastError = ev.Err
			m.Status = StatusBar{Text: fmt.Sprintf("session not saved: %v", ev.Err), IsError: true}
		}
	}
	if m.Engine != nil {
		m.Timer = m.Engine.Snapshot()
		return m, waitForTimerEventCmd(m.Engine.C())
	}
	return m, nil
}

func (m Model) View() string {
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		if m.Form.Active {
			leftPane = m.renderTaskForm()
		} else {
			leftPane = m.renderTasksView()
		}
		rightPane = m.renderTaskPreview() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewTimer:
		leftPane = m.renderTimerView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewSessions:
		leftPane = m.renderSessionsView()
		rightPane = m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.Toasts) > 0 {
		last := m.Toasts[len(m.Toasts)-1]
		notificationView = strings.TrimSpace(views.RenderNotification(string(last.Severity), last.Body))
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("devdesk | view: %s | selected: %s", m.CurrentView, m.SelectedTaskID),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Notification:  notificationView,
		Footer:        fmt.Sprintf("keys: %s tasks | %s timer | %s sessions | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Timer, m.Keys.Sessions, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewTimer, ViewSessions:
		return true
	default:
		return false
	}
}

func waitForTimerEventCmd(ch <-chan timer.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return TimerEventMsg{Event: ev}
	}
}

func dueCheckTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return DueCheckMsg{} })
}
