package view

import (
	"math"

	"github.com/alexanderramin/zentask/internal/domain"
)

// Stats are derived counts over the whole collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	// Progress is the rounded completion percentage, 0 for an empty collection.
	Progress int `json:"progress"`
}

func Compute(tasks []domain.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.Progress = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}

// CountFor returns the badge count shown next to a tab.
func (s Stats) CountFor(tab Tab) int {
	switch tab {
	case TabPending:
		return s.Pending
	case TabCompleted:
		return s.Completed
	default:
		return s.Total
	}
}

// CategoryCount pairs a registry category with the number of tasks in it.
type CategoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
}

// CategoryCounts counts tasks per registry category, in registry order.
// Tasks naming an unknown category are not counted.
func CategoryCounts(tasks []domain.Task) []CategoryCount {
	byID := make(map[string]int, len(domain.Categories))
	for _, t := range tasks {
		byID[t.Category]++
	}
	out := make([]CategoryCount, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, CategoryCount{Category: c, Count: byID[c.ID]})
	}
	return out
}

// PendingTasks returns the incomplete tasks in their original order.
func PendingTasks(tasks []domain.Task) []domain.Task {
	var out []domain.Task
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}
