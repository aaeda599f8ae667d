package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/alexanderramin/zentask/internal/repository"
)

// ErrAmbiguousID is returned when an id prefix matches more than one item.
var ErrAmbiguousID = errors.New("ambiguous id")

// resolvePrefix finds the one item whose id equals input or, failing that,
// starts with it.
func resolvePrefix[T any](items []T, idOf func(T) string, input, kind string) (T, error) {
	var zero T
	input = strings.TrimSpace(input)
	if input == "" {
		return zero, fmt.Errorf("%s id must not be empty", kind)
	}

	var matches []T
	for _, item := range items {
		id := idOf(item)
		if id == input {
			return item, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("no %s matches %q: %w", kind, input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%w: %q matches %d %ss", ErrAmbiguousID, input, len(matches), kind)
	}
}

// resolveTask resolves a full task id or unique prefix against the store.
func resolveTask(app *App, input string) (domain.Task, error) {
	return resolvePrefix(app.Store.Snapshot(), func(t domain.Task) string { return t.ID }, input, "task")
}

// resolveSubTask resolves a sub-task id or unique prefix within one task.
func resolveSubTask(t domain.Task, input string) (domain.SubTask, error) {
	return resolvePrefix(t.SubTasks, func(s domain.SubTask) string { return s.ID }, input, "sub-task")
}
