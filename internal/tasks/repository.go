package tasks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"devdesk/internal/model"
	"devdesk/internal/storage"
)

type Repository struct {
	store    storage.Store
	items    []model.Task
	settings model.Settings
	lastID   int64
	now      func() time.Time
}

func NewRepository(ctx context.Context, store storage.Store) (*Repository, error) {
	items, err := store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	settings, err := store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !settings.SortBy.IsValid() {
		settings.SortBy = model.SortByDate
	}
	repo := &Repository{
		store:    store,
		items:    items,
		settings: settings,
		now:      time.Now,
	}
	repo.Sort()
	return repo, nil
}

func (r *Repository) Create(ctx context.Context, title, content string, category model.Category, due *time.Time) (model.Task, error) {
	now := r.now().UTC()
	task := model.Task{
		ID:          r.nextID(now),
		Title:       title,
		Content:     content,
		Category:    category,
		DueDateTime: due,
		CreatedAt:   now,
		UpdatedAt:   now,
		Scheduled:   due != nil,
	}
	r.items = append(r.items, task)
	if err := r.persist(ctx); err != nil {
		return model.Task{}, err
	}
	r.Sort()
	return task, nil
}

// Update always resets Notified and never touches OverdueNotified.
func (r *Repository) Update(ctx context.Context, id, title, content string, category model.Category, due *time.Time) (bool, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	task := &r.items[idx]
	task.Title = title
	task.Content = content
	task.Category = category
	task.DueDateTime = due
	task.UpdatedAt = r.now().UTC()
	task.Scheduled = due != nil
	task.Notified = false
	if err := r.persist(ctx); err != nil {
		return true, err
	}
	r.Sort()
	return true, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return r.persist(ctx)
}

func (r *Repository) SetSortMode(ctx context.Context, mode model.SortMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidSortMode, mode)
	}
	r.settings.SortBy = mode
	r.Sort()
	if err := r.store.SaveSettings(ctx, r.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (r *Repository) SortMode() model.SortMode {
	return r.settings.SortBy
}

func (r *Repository) Settings() model.Settings {
	return r.settings
}

func (r *Repository) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	r.settings.NotificationsEnabled = enabled
	if err := r.store.SaveSettings(ctx, r.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (r *Repository) Sort() {
	switch r.settings.SortBy {
	case model.SortByPriority:
		sort.SliceStable(r.items, func(i, j int) bool {
			return r.items[i].Category.PriorityRank() < r.items[j].Category.PriorityRank()
		})
	default:
		sort.SliceStable(r.items, func(i, j int) bool {
			return r.items[i].CreatedAt.Before(r.items[j].CreatedAt)
		})
	}
}

func (r *Repository) Tasks() []model.Task {
	out := make([]model.Task, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Repository) Get(id string) (model.Task, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return r.items[idx], true
}

func (r *Repository) MarkNotified(ctx context.Context, id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil
	}
	r.items[idx].Notified = true
	return r.persist(ctx)
}

func (r *Repository) MarkOverdueNotified(ctx context.Context, id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil
	}
	r.items[idx].OverdueNotified = true
	return r.persist(ctx)
}

func (r *Repository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) persist(ctx context.Context) error {
	if err := r.store.SaveTasks(ctx, r.items); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (r *Repository) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}
