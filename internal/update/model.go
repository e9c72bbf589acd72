package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"devdesk/internal/model"
	"devdesk/internal/monitor"
	"devdesk/internal/notify"
	"devdesk/internal/tasks"
	"devdesk/internal/timer"
	"devdesk/internal/views"
)

type View string

const (
	ViewTasks    View = "Tasks"
	ViewTimer    View = "Timer"
	ViewSessions View = "Sessions"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	Timer    string
	Sessions string
	Help     string
	Quit     string
}

type FormField string

const (
	FieldTitle    FormField = "title"
	FieldDue      FormField = "due"
	FieldCategory FormField = "category"
	FieldContent  FormField = "content"
)

type TaskFormState struct {
	Active   bool
	Editing  bool
	TaskID   string
	Category model.Category
	Field    FormField
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Deps struct {
	Repo     *tasks.Repository
	Engine   *timer.Engine
	Sessions *tasks.SessionLog
	Monitor  *monitor.Monitor
	Desktop  notify.DesktopNotifier
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Repo           *tasks.Repository
	Engine         *timer.Engine
	Sessions       *tasks.SessionLog
	Monitor        *monitor.Monitor
	Timer          timer.Status
	Custom         timer.CustomDuration
	Cursor         int
	Form           TaskFormState
	Palette        CommandPaletteState
	HelpVisible    bool
	Toasts         []notify.Notification
	DesktopEnabled bool
	desktop        notify.DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	DueInterval    time.Duration

	taskList        list.Model
	sessionsTable   table.Model
	titleInput      textinput.Model
	dueInput        textinput.Model
	commandInput    textinput.Model
	contentArea     textarea.Model
	timerProgress   progress.Model
	helpModel       help.Model
	previewViewport viewport.Model
	now             func() time.Time
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type DueCheckMsg struct{}

type TimerEventMsg struct {
	Event timer.Event
}

type AlertMsg struct {
	Message  string
	Severity notify.Severity
}

func NewModel(deps Deps) Model {
	return NewModelWithConfig(deps, DefaultRuntimeConfig())
}

func NewModelWithConfig(deps Deps, cfg RuntimeConfig) Model {
	m := Model{
		CurrentView:    ViewTasks,
		Repo:           deps.Repo,
		Engine:         deps.Engine,
		Sessions:       deps.Sessions,
		Monitor:        deps.Monitor,
		Custom:         timer.CustomDuration{Minutes: 60},
		DesktopEnabled: cfg.DesktopNotifications,
		desktop:        notify.NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Tasks:    "1",
			Timer:    "2",
			Sessions: "3",
			Help:     "?",
			Quit:     "q",
		},
		Form:        TaskFormState{Category: model.CategoryGeneral, Field: FieldTitle},
		DueInterval: monitor.DefaultInterval,
		now:         time.Now,
	}
	if deps.Desktop != nil {
		m.desktop = deps.Desktop
	}
	if cfg.DueCheckSeconds > 0 {
		m.DueInterval = time.Duration(cfg.DueCheckSeconds) * time.Second
	}
	if cfg.CustomMinutes > 0 {
		m.Custom = timer.CustomDuration{Minutes: cfg.CustomMinutes}
	}
	if m.Engine != nil {
		m.Engine.SetCustomDuration(m.Custom)
		m.Timer = m.Engine.Snapshot()
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Tasks (list)"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Mode", Width: 10},
		{Title: "Duration", Width: 10},
		{Title: "Completed", Width: 17},
		{Title: "Task", Width: 18},
	}
	m.sessionsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 42

	m.dueInput = textinput.New()
	m.dueInput.Prompt = "due> "
	m.dueInput.CharLimit = 32
	m.dueInput.Width = 24

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.contentArea = textarea.New()
	m.contentArea.SetWidth(54)
	m.contentArea.SetHeight(6)
	m.contentArea.ShowLineNumbers = false
	m.contentArea.Placeholder = "Task content (markdown)"

	m.timerProgress = progress.New(progress.WithDefaultGradient())

	m.helpModel = help.New()
	m.previewViewport = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	items := m.taskItems()
	listItems := make([]list.Item, 0, len(items))
	for _, item := range items {
		desc := item.Category
		if item.DueLabel != "" {
			desc += " | due " + item.DueLabel
		}
		listItems = append(listItems, listItem{title: item.Title, description: desc})
	}
	m.taskList.SetItems(listItems)
	if len(listItems) > 0 {
		m.taskList.Select(m.Cursor)
	}

	if m.Sessions != nil {
		sessions := m.Sessions.Sessions()
		rows := make([]table.Row, 0, len(sessions))
		for i := len(sessions) - 1; i >= 0; i-- {
			s := sessions[i]
			rows = append(rows, table.Row{
				s.Mode.Label(),
				formatClock(s.DurationSeconds),
				s.CompletedAt.Local().Format("2006-01-02 15:04"),
				s.TaskLabel,
			})
		}
		m.sessionsTable.SetRows(rows)
	}

	if task, ok := m.selectedTask(); ok {
		md := task.Content
		if md == "" {
			md = "_No content_"
		}
		m.previewViewport.SetContent(views.RenderMarkdown(md))
	}

	if m.Engine != nil {
		m.Timer = m.Engine.Snapshot()
	}
	pct := 0.0
	if m.Timer.TotalSec > 0 {
		pct = float64(m.Timer.TotalSec-m.Timer.RemainingSec) / float64(m.Timer.TotalSec)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	_ = m.timerProgress.SetPercent(pct)
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Repo == nil {
		return model.Task{}, false
	}
	items := m.Repo.Tasks()
	if len(items) == 0 || m.Cursor < 0 || m.Cursor >= len(items) {
		return model.Task{}, false
	}
	return items[m.Cursor], true
}

func (m *Model) clampCursor() {
	if m.Repo == nil {
		return
	}
	n := len(m.Repo.Tasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if task, ok := m.selectedTask(); ok {
		m.SelectedTaskID = task.ID
	} else {
		m.SelectedTaskID = ""
	}
}

func (m *Model) toast(title, body string, severity notify.Severity) {
	if body == "" {
		return
	}
	n := notify.Notification{
		Title:    title,
		Body:     body,
		Severity: severity,
		At:       m.now().UTC(),
	}
	m.Toasts = append(m.Toasts, n)
	if len(m.Toasts) > 40 {
		m.Toasts = m.Toasts[len(m.Toasts)-40:]
	}
	if m.DesktopEnabled && m.desktop != nil {
		_ = m.desktop.Send(n)
	}
}
