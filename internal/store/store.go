// Package store holds the task collection and persists it through a
// key-value backend after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/alexanderramin/zentask/internal/repository"
	"github.com/google/uuid"
)

// StorageKey is the fixed key the collection is stored under.
const StorageKey = "zentask_todos"

// ErrEmptyTitle is returned by Add when the title is blank.
var ErrEmptyTitle = errors.New("task title must not be empty")

// TaskInput carries the user-supplied fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	Category    string
}

// Store is the single owner of the task collection. It is safe for
// concurrent use; readers receive deep copies.
type Store struct {
	mu     sync.RWMutex
	kv     repository.KVRepo
	tasks  []domain.Task
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

type Option func(*Store)

// WithClock overrides the time source used for CreatedAt and defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how task and sub-task ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store backed by kv. The collection is empty until Load.
func New(kv repository.KVRepo, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		tasks:  []domain.Task{},
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. A missing,
// unreadable, or malformed payload falls back to domain.DefaultTasks; Load
// never fails.
func (s *Store) Load(ctx context.Context) []domain.Task {
	tasks := s.readPersisted(ctx)

	s.mu.Lock()
	s.tasks = tasks
	out := domain.CloneTasks(s.tasks)
	s.mu.Unlock()
	return out
}

func (s *Store) readPersisted(ctx context.Context) []domain.Task {
	raw, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "task_store_load", "outcome", "read_failed", "error", err.Error())
		}
		return domain.DefaultTasks(s.now())
	}

	tasks, err := decodeTasks(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "task_store_load", "outcome", "malformed", "error", err.Error())
		return domain.DefaultTasks(s.now())
	}
	return tasks
}

func decodeTasks(raw string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	if tasks == nil {
		return nil, errors.New("decoding tasks: payload is null")
	}
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		id := tasks[i].ID
		if id == "" {
			return nil, fmt.Errorf("decoding tasks: task %d has no id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("decoding tasks: duplicate id %q", id)
		}
		seen[id] = true
		if tasks[i].SubTasks == nil {
			tasks[i].SubTasks = []domain.SubTask{}
		}
	}
	return tasks, nil
}

// Save overwrites the persisted collection with the current one.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of the collection in insertion order.
func (s *Store) Snapshot() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneTasks(s.tasks)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Add prepends a new pending task and persists the collection.
func (s *Store) Add(ctx context.Context, in TaskInput) (domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Task{}, ErrEmptyTitle
	}
	priority := in.Priority
	if !priority.Valid() {
		priority = domain.PriorityMedium
	}
	category := in.Category
	if _, ok := domain.CategoryByID(category); !ok {
		category = domain.DefaultCategoryID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := domain.Task{
		ID:          s.uniqueIDLocked(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Completed:   false,
		Priority:    priority,
		Category:    category,
		CreatedAt:   s.now().UnixMilli(),
		SubTasks:    []domain.SubTask{},
	}
	s.tasks = append([]domain.Task{task}, s.tasks...)

	if err := s.saveLocked(ctx); err != nil {
		return task.Clone(), err
	}
	return task.Clone(), nil
}

// ToggleCompleted flips the completed flag. It reports whether a task
// matched; an unknown id is a silent no-op.
func (s *Store) ToggleCompleted(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, id, func(t *domain.Task) bool {
		t.Completed = !t.Completed
		return true
	})
}

// Delete removes the task. An unknown id is a silent no-op.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return true, s.saveLocked(ctx)
}

// SetSubTasks replaces the task's sub-task list wholesale.
func (s *Store) SetSubTasks(ctx context.Context, id string, subTasks []domain.SubTask) (bool, error) {
	replacement := make([]domain.SubTask, len(subTasks))
	copy(replacement, subTasks)
	return s.mutate(ctx, id, func(t *domain.Task) bool {
		t.SubTasks = replacement
		return true
	})
}

// ApplyBreakdown installs generated sub-tasks only while the task still has
// none, so a late decomposition result never clobbers an existing list.
func (s *Store) ApplyBreakdown(ctx context.Context, id string, subTasks []domain.SubTask) (bool, error) {
	if len(subTasks) == 0 {
		return false, nil
	}
	replacement := make([]domain.SubTask, len(subTasks))
	copy(replacement, subTasks)
	return s.mutate(ctx, id, func(t *domain.Task) bool {
		if len(t.SubTasks) > 0 {
			return false
		}
		t.SubTasks = replacement
		return true
	})
}

// ToggleSubTask flips one sub-task's completed flag by rebuilding the list.
func (s *Store) ToggleSubTask(ctx context.Context, taskID, subTaskID string) (bool, error) {
	return s.mutate(ctx, taskID, func(t *domain.Task) bool {
		updated := make([]domain.SubTask, len(t.SubTasks))
		found := false
		for i, st := range t.SubTasks {
			if st.ID == subTaskID {
				st.Completed = !st.Completed
				found = true
			}
			updated[i] = st
		}
		if !found {
			return false
		}
		t.SubTasks = updated
		return true
	})
}

// mutate applies fn to the matching task and persists when fn reports a change.
func (s *Store) mutate(ctx context.Context, id string, fn func(*domain.Task) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	if !fn(&s.tasks[i]) {
		return false, nil
	}
	return true, s.saveLocked(ctx)
}

func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
	}
}
