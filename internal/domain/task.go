package domain

import "time"

// SubTask is a checklist entry owned by exactly one Task.
type SubTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is the unit the store persists. CreatedAt is milliseconds since the
// Unix epoch so the serialized form matches what earlier versions wrote.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	Category    string    `json:"category"`
	CreatedAt   int64     `json:"createdAt"`
	SubTasks    []SubTask `json:"subTasks"`
}

// Clone returns a copy that shares no sub-task storage with t.
func (t Task) Clone() Task {
	c := t
	c.SubTasks = make([]SubTask, len(t.SubTasks))
	copy(c.SubTasks, t.SubTasks)
	return c
}

// Created returns CreatedAt as a time.Time in UTC.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt).UTC()
}

// SubTaskProgress returns how many sub-tasks are done out of the total.
func (t Task) SubTaskProgress() (done, total int) {
	for _, st := range t.SubTasks {
		if st.Completed {
			done++
		}
	}
	return done, len(t.SubTasks)
}

// CloneTasks deep-copies a task slice. A nil input yields an empty slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
