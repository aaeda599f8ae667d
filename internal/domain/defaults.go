package domain

import "time"

// DefaultTasks returns the starter collection shown when nothing has been
// persisted yet, or when the persisted payload cannot be read.
func DefaultTasks(now time.Time) []Task {
	ms := now.UnixMilli()
	return []Task{
		{
			ID:          "1",
			Title:       "Welcome to ZenTask AI",
			Description: `Try clicking the "Magic" wand to break down tasks!`,
			Completed:   false,
			Priority:    PriorityMedium,
			Category:    "personal",
			CreatedAt:   ms,
			SubTasks:    []SubTask{},
		},
		{
			ID:          "2",
			Title:       "Update project documentation",
			Description: "Review API specs and update README",
			Completed:   true,
			Priority:    PriorityHigh,
			Category:    "work",
			CreatedAt:   ms - (24 * time.Hour).Milliseconds(),
			SubTasks:    []SubTask{},
		},
	}
}
