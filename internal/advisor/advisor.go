// Package advisor wraps the generation service behind three advisory
// operations. Every operation degrades to a fixed default instead of
// returning an error, and none of them touch the task store.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/alexanderramin/zentask/internal/llm"
	"github.com/alexanderramin/zentask/internal/view"
	"github.com/google/uuid"
)

const (
	// NoPendingAdvice is returned without a service call when nothing is pending.
	NoPendingAdvice = "No pending tasks! Time for a well-deserved break."

	// FallbackAdvice is returned when the service fails or answers with nothing.
	FallbackAdvice = "Focus on your highest-priority task first."

	// FallbackPriority is returned when no usable suggestion comes back.
	FallbackPriority = domain.PriorityMedium
)

// Advisor is the AI advisory surface consumed by the presentation layers.
type Advisor interface {
	// SuggestPriority proposes a priority for a task that may not exist yet.
	SuggestPriority(ctx context.Context, title, description string) domain.Priority

	// BreakdownTask proposes pending sub-tasks. An empty result means the
	// service produced nothing usable.
	BreakdownTask(ctx context.Context, title string) []domain.SubTask

	// GetAdvice returns a short focus recommendation for the pending tasks.
	GetAdvice(ctx context.Context, tasks []domain.Task) string

	// Available reports whether the generation service answers at all.
	Available(ctx context.Context) bool
}

type advisor struct {
	client llm.LLMClient
	newID  func() string
}

type Option func(*advisor)

// WithIDGenerator overrides how sub-task ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(a *advisor) { a.newID = gen }
}

// New creates an Advisor backed by client.
func New(client llm.LLMClient, opts ...Option) Advisor {
	a := &advisor{
		client: client,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type priorityResult struct {
	Priority string `json:"priority"`
}

type breakdownResult struct {
	Subtasks []string `json:"subtasks"`
}

func (a *advisor) SuggestPriority(ctx context.Context, title, description string) domain.Priority {
	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPriority,
		SystemPrompt: prioritySystemPrompt,
		UserPrompt:   priorityPrompt(title, description),
		Schema:       json.RawMessage(prioritySchema),
	})
	if err != nil {
		return FallbackPriority
	}

	result, err := llm.ExtractJSON[priorityResult](resp.Text, validatePriority)
	if err != nil {
		return FallbackPriority
	}
	p, _ := domain.ParsePriority(result.Priority)
	return p
}

func validatePriority(r priorityResult) error {
	if _, ok := domain.ParsePriority(r.Priority); !ok {
		return errors.New("priority must be low, medium, or high")
	}
	return nil
}

func (a *advisor) BreakdownTask(ctx context.Context, title string) []domain.SubTask {
	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskBreakdown,
		SystemPrompt: breakdownSystemPrompt,
		UserPrompt:   breakdownPrompt(title),
		Schema:       json.RawMessage(breakdownSchema),
	})
	if err != nil {
		return []domain.SubTask{}
	}

	result, err := llm.ExtractJSON[breakdownResult](resp.Text, nil)
	if err != nil {
		return []domain.SubTask{}
	}

	subTasks := make([]domain.SubTask, 0, len(result.Subtasks))
	for _, s := range result.Subtasks {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		subTasks = append(subTasks, domain.SubTask{ID: a.newID(), Title: s})
	}
	return subTasks
}

func (a *advisor) GetAdvice(ctx context.Context, tasks []domain.Task) string {
	pending := view.PendingTasks(tasks)
	if len(pending) == 0 {
		return NoPendingAdvice
	}

	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAdvice,
		SystemPrompt: adviceSystemPrompt,
		UserPrompt:   advicePrompt(pending),
	})
	if err != nil {
		return FallbackAdvice
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return FallbackAdvice
	}
	return text
}

func (a *advisor) Available(ctx context.Context) bool {
	return a.client.Available(ctx)
}
