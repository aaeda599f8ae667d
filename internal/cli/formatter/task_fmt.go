package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/alexanderramin/zentask/internal/view"
)

const (
	listTitleWidth   = 48
	statsProgressBar = 20
)

// FormatTaskList renders tasks as a table in the order given.
func FormatTaskList(tasks []domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks here.") + "\n"
	}

	cols := []Column{{}, {Title: "ID"}, {Title: "TITLE"}, {Title: "PRIORITY"}, {Title: "CATEGORY"}, {Title: "STEPS", Right: true}, {Title: "CREATED"}}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		title := Truncate(t.Title, listTitleWidth)
		if t.Completed {
			title = StyleDone.Render(title)
		} else {
			title = StyleFg.Render(title)
		}

		rows = append(rows, []string{
			Checkbox(t.Completed),
			TruncID(t.ID),
			title,
			PriorityPill(t.Priority),
			CategoryBadge(t.Category),
			SubTaskSummary(t),
			Dim(Age(t.Created(), now)),
		})
	}
	return RenderTable(cols, rows)
}

// SubTaskSummary renders "done/total" for tasks with sub-tasks, "--" otherwise.
func SubTaskSummary(t domain.Task) string {
	done, total := t.SubTaskProgress()
	if total == 0 {
		return Dim("--")
	}
	s := fmt.Sprintf("%d/%d", done, total)
	if done == total {
		return StyleGreen.Render(s)
	}
	return StyleFg.Render(s)
}

// FormatTaskDetail renders one task with its description and sub-tasks.
func FormatTaskDetail(t domain.Task, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n\n", Checkbox(t.Completed), Bold(t.Title)))
	if t.Description != "" {
		b.WriteString(fmt.Sprintf("  %s\n\n", StyleFg.Render(t.Description)))
	}

	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ID      "), TruncID(t.ID)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("PRIORITY"), PriorityPill(t.Priority)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("CATEGORY"), CategoryBadge(t.Category)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("CREATED "), Age(t.Created(), now)))

	if len(t.SubTasks) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatSubTasks(t.SubTasks, "  "))
	}
	return b.String()
}

// FormatSubTasks renders one checkbox line per sub-task with the given indent.
func FormatSubTasks(subTasks []domain.SubTask, indent string) string {
	var b strings.Builder
	for _, st := range subTasks {
		title := StyleFg.Render(st.Title)
		if st.Completed {
			title = StyleDone.Render(st.Title)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", indent, Checkbox(st.Completed), title, TruncID(st.ID)))
	}
	return b.String()
}

// FormatStats renders the progress summary shown by "zentask stats".
func FormatStats(s view.Stats) string {
	var b strings.Builder
	b.WriteString(Header("Progress"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s\n\n", RenderProgress(s.Progress, statsProgressBar)))
	b.WriteString(fmt.Sprintf("  %s  %d\n", Dim("TOTAL    "), s.Total))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("COMPLETED"), StyleGreen.Render(fmt.Sprint(s.Completed))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("PENDING  "), StyleYellow.Render(fmt.Sprint(s.Pending))))
	return b.String()
}

// FormatCategories renders the category registry with per-category counts.
func FormatCategories(counts []view.CategoryCount) string {
	cols := []Column{{Title: "ID"}, {Title: "CATEGORY"}, {Title: "TASKS", Right: true}}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		n := Dim("0")
		if c.Count > 0 {
			n = StyleFg.Render(fmt.Sprint(c.Count))
		}
		rows = append(rows, []string{Dim(c.Category.ID), CategoryBadge(c.Category.ID), n})
	}
	return RenderTable(cols, rows)
}

// FormatTabs renders the tab strip with per-tab counts, highlighting active.
func FormatTabs(active view.Tab, s view.Stats) string {
	parts := make([]string, 0, len(view.Tabs))
	for i, tab := range view.Tabs {
		label := fmt.Sprintf("%d %s (%d)", i+1, tabLabel(tab), s.CountFor(tab))
		if tab == active {
			parts = append(parts, StyleHeader.Render(label))
		} else {
			parts = append(parts, Dim(label))
		}
	}
	return strings.Join(parts, Dim("  │  "))
}

func tabLabel(tab view.Tab) string {
	s := string(tab)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatAdvice boxes a focus recommendation.
func FormatAdvice(text string) string {
	return RenderBox("Focus", StyleFg.Render(text))
}
