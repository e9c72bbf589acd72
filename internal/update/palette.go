package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"devdesk/internal/commands"
	"devdesk/internal/model"
	"devdesk/internal/notify"
	"devdesk/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	ctx := context.Background()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if _, err := m.Repo.Create(ctx, a.Title, "", model.CategoryGeneral, nil); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewTasks
			m.clampCursor()
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			mode := model.SortMode(s.Mode)
			if err := m.Repo.SetSortMode(ctx, mode); err != nil {
				return commands.Result{}, err
			}
			m.clampCursor()
			return commands.Result{Message: fmt.Sprintf("Sorted by %s", mode)}, nil
		},
		Due: func(d commands.DueArgs) (commands.Result, error) {
			task, ok := m.paletteTarget(d.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matches target %q", d.Target)}
			}
			parsed, err := time.ParseInLocation(dueInputLayout, d.When, time.Local)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid due time %q, use %s", d.When, dueInputLayout)}
			}
			if _, err := m.Repo.Update(ctx, task.ID, task.Title, task.Content, task.Category, &parsed); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("due date set for %q", task.Title)}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			task, ok := m.paletteTarget(d.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matches target %q", d.Target)}
			}
			if err := m.Repo.Delete(ctx, task.ID); err != nil {
				return commands.Result{}, err
			}
			m.clampCursor()
			return commands.Result{Message: "Task deleted successfully!"}, nil
		},
		Timer: func(a commands.TimerArgs) (commands.Result, error) {
			if m.Engine == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "timer engine not running"}
			}
			mode := model.TimerMode(a.Mode)
			if err := m.Engine.SetMode(mode); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewTimer
			return commands.Result{Message: fmt.Sprintf("timer mode: %s", mode.Label())}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.toast("Command Failed", err.Error(), notify.SeverityError)
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.toast("Command", res.Message, notify.SeverityInfo)
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func (m Model) paletteTarget(target string) (model.Task, bool) {
	if m.Repo == nil {
		return model.Task{}, false
	}
	if target == "selected" {
		return m.selectedTask()
	}
	return m.Repo.Get(target)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
