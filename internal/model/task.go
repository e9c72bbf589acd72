package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidCategory = errors.New("model: invalid task category")

type Category string

const (
	CategoryUrgent      Category = "Urgent"
	CategoryFreelancing Category = "Freelancing"
	CategoryCodeIdeas   Category = "Code Ideas"
	CategoryGeneral     Category = "General"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryUrgent, CategoryFreelancing, CategoryCodeIdeas, CategoryGeneral:
		return true
	default:
		return false
	}
}

func (c Category) PriorityRank() int {
	switch c {
	case CategoryUrgent:
		return 0
	case CategoryFreelancing:
		return 1
	case CategoryCodeIdeas:
		return 2
	default:
		return 3
	}
}

type Task struct {
	ID              string
	Title           string
	Content         string
	Category        Category
	DueDateTime     *time.Time
	Completed       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Scheduled       bool
	Notified        bool
	OverdueNotified bool
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.UpdatedAt.IsZero() {
		return errors.New("model: task updated_at is required")
	}
	if t.Scheduled != (t.DueDateTime != nil) {
		return errors.New("model: scheduled must mirror presence of due_date_time")
	}
	return nil
}
