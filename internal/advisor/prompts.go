package advisor

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/zentask/internal/domain"
)

// prioritySystemPrompt constrains the model to the priority object.
const prioritySystemPrompt = `You triage personal to-do items for a task manager called ZenTask.
Decide how urgent and important the task is.

You must output ONLY a JSON object: {"priority": "low" | "medium" | "high"}
No markdown, no explanation.`

// breakdownSystemPrompt constrains the model to the sub-task list object.
const breakdownSystemPrompt = `You help users split a task into small concrete steps for a task manager called ZenTask.
Each step must be a short imperative phrase that can be checked off on its own.

You must output ONLY a JSON object: {"subtasks": ["step", "step", ...]} with 3 to 5 entries.
No markdown, no numbering inside the strings, no explanation.`

// adviceSystemPrompt keeps focus advice short and plain.
const adviceSystemPrompt = `You are a focus coach inside a task manager called ZenTask.
Answer in at most two sentences of plain text. No lists, no markdown.`

// prioritySchema is sent as the response format for SuggestPriority.
const prioritySchema = `{
  "type": "object",
  "properties": {
    "priority": {"type": "string", "enum": ["low", "medium", "high"]}
  },
  "required": ["priority"]
}`

// breakdownSchema is sent as the response format for BreakdownTask.
const breakdownSchema = `{
  "type": "object",
  "properties": {
    "subtasks": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["subtasks"]
}`

func priorityPrompt(title, description string) string {
	return fmt.Sprintf("Based on this task title: %q and description: %q, suggest a priority (low, medium, or high).",
		title, description)
}

func breakdownPrompt(title string) string {
	return fmt.Sprintf("Break down this task into 3-5 actionable sub-tasks: %q", title)
}

// advicePrompt lists every pending task as "title (priority priority)".
func advicePrompt(pending []domain.Task) string {
	items := make([]string, len(pending))
	for i, t := range pending {
		items[i] = fmt.Sprintf("%s (%s priority)", t.Title, t.Priority)
	}
	return fmt.Sprintf("I have these pending tasks: %s. What should I focus on first for maximum impact? Give a concise 2-sentence advice.",
		strings.Join(items, ", "))
}
