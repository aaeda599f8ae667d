// Package view derives read-only projections of the task collection:
// tab/search filtering, display ordering, and progress statistics.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/zentask/internal/domain"
)

type Tab string

const (
	TabAll       Tab = "all"
	TabPending   Tab = "pending"
	TabCompleted Tab = "completed"
)

// DefaultTab is the tab a fresh session opens on.
const DefaultTab = TabPending

// Tabs lists tabs in display order.
var Tabs = []Tab{TabPending, TabCompleted, TabAll}

// ParseTab accepts a tab name in any case. An empty string means DefaultTab.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultTab, nil
	case TabAll:
		return TabAll, nil
	case TabPending:
		return TabPending, nil
	case TabCompleted:
		return TabCompleted, nil
	default:
		return "", fmt.Errorf("unknown tab %q (want pending, completed, or all)", s)
	}
}

func (t Tab) admits(task domain.Task) bool {
	switch t {
	case TabPending:
		return !task.Completed
	case TabCompleted:
		return task.Completed
	default:
		return true
	}
}

// Filter returns the tasks visible under tab and query, in display order.
// The input slice is never modified.
func Filter(tasks []domain.Task, tab Tab, query string) []domain.Task {
	needle := strings.ToLower(query)
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !tab.admits(t) || !Matches(t, needle) {
			continue
		}
		out = append(out, t)
	}
	Sort(out)
	return out
}

// Matches reports whether the lower-cased needle occurs in the title or
// description. An empty needle matches every task.
func Matches(t domain.Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	if t.Description == "" {
		return false
	}
	return strings.Contains(strings.ToLower(t.Description), needle)
}

// Sort orders tasks in place: pending before completed, then priority
// weight descending, then newest first. Ties keep their relative order.
func Sort(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return Less(tasks[i], tasks[j])
	})
}

// Less is the display ordering used by Sort.
func Less(a, b domain.Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if wa, wb := a.Priority.Weight(), b.Priority.Weight(); wa != wb {
		return wa > wb
	}
	return a.CreatedAt > b.CreatedAt
}
