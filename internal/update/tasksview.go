package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"devdesk/internal/model"
	"devdesk/internal/notify"
	"devdesk/internal/views"
)

const dueSoonDisplayWindow = 30 * time.Minute

const dueInputLayout = "2006-01-02 15:04"

var categoryCycle = []model.Category{
	model.CategoryUrgent,
	model.CategoryFreelancing,
	model.CategoryCodeIdeas,
	model.CategoryGeneral,
}

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.clampCursor()
	case "down", "j":
		if m.Repo != nil && m.Cursor < len(m.Repo.Tasks())-1 {
			m.Cursor++
		}
		m.clampCursor()
	case "a":
		m = m.openTaskForm(model.Task{}, false)
	case "e":
		if task, ok := m.selectedTask(); ok {
			m = m.openTaskForm(task, true)
		}
	case "d":
		m = m.deleteSelectedTask()
	case "t":
		if task, ok := m.selectedTask(); ok && m.Engine != nil {
			m.Engine.SetActiveTask(task.ID, task.Title)
			m.CurrentView = ViewTimer
			m.Status = StatusBar{Text: fmt.Sprintf("Timer ready for: %s", task.Title), IsError: false}
			m.toast("Timer", m.Status.Text, notify.SeverityInfo)
		}
	case "s":
		m = m.toggleSortMode()
	case "n":
		m = m.toggleNotifications()
	}
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Form.Active = false
		m.blurFormInputs()
		m.Status = StatusBar{Text: "task form closed", IsError: false}
		return m
	case "enter":
		return m.submitTaskForm()
	case "tab":
		m = m.cycleFormField()
		return m
	}

	switch m.Form.Field {
	case FieldCategory:
		switch msg.String() {
		case "j", "k", "left", "right", " ":
			m.Form.Category = nextCategory(m.Form.Category, msg.String() == "k" || msg.String() == "left")
		}
	case FieldTitle:
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		_ = cmd
	case FieldDue:
		var cmd tea.Cmd
		m.dueInput, cmd = m.dueInput.Update(msg)
		_ = cmd
	case FieldContent:
		var cmd tea.Cmd
		m.contentArea, cmd = m.contentArea.Update(msg)
		_ = cmd
	}
	return m
}

func (m Model) handleSessionsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		m.sessionsTable, cmd = m.sessionsTable.Update(msg)
		_ = cmd
	}
	return m
}

func (m Model) openTaskForm(task model.Task, editing bool) Model {
	m.Form = TaskFormState{
		Active:   true,
		Editing:  editing,
		TaskID:   task.ID,
		Category: model.CategoryGeneral,
		Field:    FieldTitle,
	}
	m.titleInput.SetValue("")
	m.dueInput.SetValue("")
	m.contentArea.SetValue("")
	if editing {
		m.Form.Category = task.Category
		m.titleInput.SetValue(task.Title)
		m.contentArea.SetValue(task.Content)
		if task.DueDateTime != nil {
			m.dueInput.SetValue(task.DueDateTime.Local().Format(dueInputLayout))
		}
	}
	m.titleInput.Focus()
	m.dueInput.Blur()
	m.contentArea.Blur()
	return m
}

func (m Model) cycleFormField() Model {
	switch m.Form.Field {
	case FieldTitle:
		m.Form.Field = FieldDue
		m.titleInput.Blur()
		m.dueInput.Focus()
	case FieldDue:
		m.Form.Field = FieldCategory
		m.dueInput.Blur()
	case FieldCategory:
		m.Form.Field = FieldContent
		m.contentArea.Focus()
	default:
		m.Form.Field = FieldTitle
		m.contentArea.Blur()
		m.titleInput.Focus()
	}
	return m
}

func (m Model) submitTaskForm() Model {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		m.Status = StatusBar{Text: "Please enter a task title!", IsError: true}
		m.toast("Task", m.Status.Text, notify.SeverityWarning)
		return m
	}

	var due *time.Time
	if raw := strings.TrimSpace(m.dueInput.Value()); raw != "" {
		parsed, err := time.ParseInLocation(dueInputLayout, raw, time.Local)
		if err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("invalid due date %q, use %s", raw, dueInputLayout), IsError: true}
			return m
		}
		due = &parsed
	}

	content := m.contentArea.Value()
	ctx := context.Background()
	if m.Form.Editing {
		found, err := m.Repo.Update(ctx, m.Form.TaskID, title, content, m.Form.Category, due)
		if err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		if !found {
			m.Status = StatusBar{Text: "task no longer exists", IsError: true}
			m.Form.Active = false
			m.blurFormInputs()
			m.clampCursor()
			return m
		}
		m.Status = StatusBar{Text: "Task updated successfully!", IsError: false}
	} else {
		if _, err := m.Repo.Create(ctx, title, content, m.Form.Category, due); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: "Task added successfully!", IsError: false}
	}
	m.toast("Task", m.Status.Text, notify.SeveritySuccess)
	m.Form.Active = false
	m.blurFormInputs()
	m.clampCursor()
	return m
}

func (m Model) deleteSelectedTask() Model {
	task, ok := m.selectedTask()
	if !ok {
		return m
	}
	if err := m.Repo.Delete(context.Background(), task.ID); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: "Task deleted successfully!", IsError: false}
	m.toast("Task", m.Status.Text, notify.SeveritySuccess)
	m.clampCursor()
	return m
}

func (m Model) toggleSortMode() Model {
	if m.Repo == nil {
		return m
	}
	mode := model.SortByPriority
	if m.Repo.SortMode() == model.SortByPriority {
		mode = model.SortByDate
	}
	if err := m.Repo.SetSortMode(context.Background(), mode); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("Sorted by %s", mode), IsError: false}
	m.clampCursor()
	return m
}

func (m Model) toggleNotifications() Model {
	if m.Repo == nil {
		return m
	}
	enabled := !m.Repo.Settings().NotificationsEnabled
	if err := m.Repo.SetNotificationsEnabled(context.Background(), enabled); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if enabled {
		m.Status = StatusBar{Text: "notifications enabled", IsError: false}
	} else {
		m.Status = StatusBar{Text: "notifications disabled", IsError: false}
	}
	return m
}

func (m *Model) blurFormInputs() {
	m.titleInput.Blur()
	m.dueInput.Blur()
	m.contentArea.Blur()
}

func (m Model) taskItems() []views.TaskItemData {
	if m.Repo == nil {
		return nil
	}
	now := m.now()
	items := m.Repo.Tasks()
	out := make([]views.TaskItemData, 0, len(items))
	for _, task := range items {
		item := views.TaskItemData{
			ID:       task.ID,
			Title:    task.Title,
			Category: string(task.Category),
		}
		if task.DueDateTime != nil {
			due := *task.DueDateTime
			item.DueLabel = due.Local().Format(dueInputLayout)
			item.Overdue = now.After(due)
			item.DueSoon = !item.Overdue && due.Sub(now) <= dueSoonDisplayWindow
		}
		out = append(out, item)
	}
	return out
}

func (m Model) renderTasksView() string {
	return views.RenderTasksPanel(views.TasksPanelData{
		ListView:   m.taskList.View(),
		Items:      m.taskItems(),
		SelectedID: m.SelectedTaskID,
		SortMode:   string(m.Repo.SortMode()),
	})
}

func (m Model) renderTaskForm() string {
	return views.RenderTaskForm(views.TaskFormData{
		Editing:     m.Form.Editing,
		TitleView:   m.titleInput.View(),
		ContentView: m.contentArea.View(),
		Category:    string(m.Form.Category),
		DueView:     m.dueInput.View(),
		ActiveField: string(m.Form.Field),
	})
}

func (m Model) renderTaskPreview() string {
	task, ok := m.selectedTask()
	if !ok {
		return "preview:\n(no selection)"
	}
	dueLabel := "none"
	if task.DueDateTime != nil {
		dueLabel = task.DueDateTime.Local().Format(dueInputLayout)
	}
	return views.RenderTaskPreview(views.TaskPreviewData{
		SelectedID:   task.ID,
		Category:     string(task.Category),
		DueLabel:     dueLabel,
		MarkdownView: m.previewViewport.View(),
	})
}

func nextCategory(current model.Category, backwards bool) model.Category {
	idx := 0
	for i, c := range categoryCycle {
		if c == current {
			idx = i
			break
		}
	}
	if backwards {
		idx--
	} else {
		idx++
	}
	if idx < 0 {
		idx = len(categoryCycle) - 1
	}
	if idx >= len(categoryCycle) {
		idx = 0
	}
	return categoryCycle[idx]
}
