package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID       string
	Title    string
	Category string
	DueLabel string
	Overdue  bool
	DueSoon  bool
}

type TasksPanelData struct {
	ListView   string
	Items      []TaskItemData
	SelectedID string
	SortMode   string
}

type TaskFormData struct {
	Editing     bool
	TitleView   string
	ContentView string
	Category    string
	DueView     string
	ActiveField string
}

type TimerPanelData struct {
	Mode          string
	State         string
	Clock         string
	ProgressView  string
	ProgressPct   int
	Session       int
	TotalSessions int
	TaskTitle     string
	CustomClock   string
}

type SessionRowData struct {
	Mode        string
	Duration    string
	CompletedAt string
	Task        string
}

type SessionsPanelData struct {
	TableView string
	Count     int
}

type TaskPreviewData struct {
	SelectedID   string
	Category     string
	DueLabel     string
	MarkdownView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(fmt.Sprintf("sorted by: %s\n", data.SortMode))
	b.WriteString("actions: [a]add [e]edit [d]delete [t]timer [s]sort [j/k]move\n")
	b.WriteString(data.ListView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(no tasks yet, press a to add one)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s #%s %s", cursor, dueBadge(item), item.Category, item.Title))
		if item.DueLabel != "" {
			b.WriteString(fmt.Sprintf(" due:%s", item.DueLabel))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskForm(data TaskFormData) string {
	label := "new task"
	if data.Editing {
		label = "edit task"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s:\n", label))
	b.WriteString("keys: [tab]next field [c]category [enter]save [esc]cancel\n")
	b.WriteString(fmt.Sprintf("field: %s\n", data.ActiveField))
	b.WriteString(fmt.Sprintf("title: %s\n", data.TitleView))
	b.WriteString(fmt.Sprintf("category: %s\n", data.Category))
	b.WriteString(fmt.Sprintf("due (2006-01-02 15:04): %s\n", data.DueView))
	b.WriteString("content:\n")
	b.WriteString(data.ContentView)
	return strings.TrimSpace(b.String())
}

func RenderTimerPanel(data TimerPanelData) string {
	var b strings.Builder
	b.WriteString("timer:\n")
	b.WriteString(fmt.Sprintf("mode: %s | state: %s\n", data.Mode, strings.ToUpper(data.State)))
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("remaining: %s\n", data.Clock))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	if data.Mode == "Pomodoro" {
		b.WriteString(fmt.Sprintf("session: %d of %d\n", data.Session, data.TotalSessions))
	}
	if data.Mode == "Custom" {
		b.WriteString(fmt.Sprintf("custom duration: %s\n", data.CustomClock))
	}
	b.WriteString("actions: [space]start/pause [r]reset [p]pomodoro [w]deep-work [c]custom [+/-]minutes")
	return strings.TrimSpace(b.String())
}

func RenderSessionsPanel(data SessionsPanelData) string {
	var b strings.Builder
	b.WriteString("sessions:\n")
	b.WriteString(fmt.Sprintf("completed: %d\n", data.Count))
	if data.Count == 0 {
		b.WriteString("(no completed sessions yet)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderTaskPreview(data TaskPreviewData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "preview:\n(no selection)"
	}
	return fmt.Sprintf("preview:\nid: %s\ncategory: %s\ndue: %s\n\ncontent:\n%s",
		data.SelectedID,
		data.Category,
		data.DueLabel,
		data.MarkdownView,
	)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func dueBadge(item TaskItemData) string {
	if item.Overdue {
		return "[RED]"
	}
	if item.DueSoon {
		return "[YELLOW]"
	}
	return "[GREEN]"
}
