package testutil

import (
	"time"

	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the reference clock used by fixtures.
var FixedNow = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

type TaskOption func(*domain.Task)

func WithID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithCategory(c string) TaskOption {
	return func(t *domain.Task) {
		t.Category = c
	}
}

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

// WithCreatedAt sets CreatedAt in milliseconds since the epoch.
func WithCreatedAt(ms int64) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = ms
	}
}

func WithSubTasks(titles ...string) TaskOption {
	return func(t *domain.Task) {
		for _, title := range titles {
			t.SubTasks = append(t.SubTasks, domain.SubTask{ID: uuid.New().String(), Title: title})
		}
	}
}

// NewTestTask builds a pending medium-priority work task created at FixedNow.
func NewTestTask(title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Priority:  domain.PriorityMedium,
		Category:  domain.DefaultCategoryID,
		CreatedAt: FixedNow.UnixMilli(),
		SubTasks:  []domain.SubTask{},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
