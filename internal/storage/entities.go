package storage

import (
	"time"

	"devdesk/internal/model"
)

type taskRecord struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Category        string     `json:"category"`
	DueDateTime     *time.Time `json:"dueDateTime,omitempty"`
	Completed       bool       `json:"completed"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Scheduled       bool       `json:"scheduled"`
	Notified        bool       `json:"notified"`
	OverdueNotified bool       `json:"overdueNotified,omitempty"`
}

type sessionRecord struct {
	Mode        string    `json:"mode"`
	Duration    int       `json:"duration"`
	CompletedAt time.Time `json:"completedAt"`
	Task        string    `json:"task,omitempty"`
}

type settingsRecord struct {
	SortBy        string `json:"sortBy"`
	Notifications bool   `json:"notifications"`
}

func taskToRecord(in model.Task) taskRecord {
	return taskRecord{
		ID:              in.ID,
		Title:           in.Title,
		Content:         in.Content,
		Category:        string(in.Category),
		DueDateTime:     in.DueDateTime,
		Completed:       in.Completed,
		CreatedAt:       in.CreatedAt,
		UpdatedAt:       in.UpdatedAt,
		Scheduled:       in.Scheduled,
		Notified:        in.Notified,
		OverdueNotified: in.OverdueNotified,
	}
}

func taskFromRecord(in taskRecord) model.Task {
	return model.Task{
		ID:              in.ID,
		Title:           in.Title,
		Content:         in.Content,
		Category:        model.Category(in.Category),
		DueDateTime:     in.DueDateTime,
		Completed:       in.Completed,
		CreatedAt:       in.CreatedAt,
		UpdatedAt:       in.UpdatedAt,
		Scheduled:       in.Scheduled,
		Notified:        in.Notified,
		OverdueNotified: in.OverdueNotified,
	}
}

func sessionToRecord(in model.TimerSession) sessionRecord {
	return sessionRecord{
		Mode:        string(in.Mode),
		Duration:    in.DurationSeconds,
		CompletedAt: in.CompletedAt,
		Task:        in.TaskLabel,
	}
}

func sessionFromRecord(in sessionRecord) model.TimerSession {
	return model.TimerSession{
		Mode:            model.TimerMode(in.Mode),
		DurationSeconds: in.Duration,
		CompletedAt:     in.CompletedAt,
		TaskLabel:       in.Task,
	}
}
