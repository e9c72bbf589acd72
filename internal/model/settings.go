package model

import "errors"

var ErrInvalidSortMode = errors.New("model: invalid sort mode")

type SortMode string

const (
	SortByDate     SortMode = "date"
	SortByPriority SortMode = "priority"
)

func (s SortMode) IsValid() bool {
	switch s {
	case SortByDate, SortByPriority:
		return true
	default:
		return false
	}
}

type Settings struct {
	SortBy               SortMode
	NotificationsEnabled bool
}

func DefaultSettings() Settings {
	return Settings{
		SortBy:               SortByDate,
		NotificationsEnabled: true,
	}
}
