package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/zentask/internal/domain"
)

// StubAdvisor is a scripted advisor for presentation-layer tests. When Gate
// is non-nil every call announces itself on Started (if set) and then waits
// for Gate to be closed.
type StubAdvisor struct {
	Priority      domain.Priority
	SubTaskTitles []string
	Advice        string
	Offline       bool

	Gate    chan struct{}
	Started chan string

	mu    sync.Mutex
	calls map[string]int
}

func (s *StubAdvisor) enter(ctx context.Context, op string) {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[op]++
	s.mu.Unlock()

	if s.Started != nil {
		s.Started <- op
	}
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
		}
	}
}

// Calls reports how many times op ("priority", "breakdown", "advice") ran.
func (s *StubAdvisor) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *StubAdvisor) SuggestPriority(ctx context.Context, _, _ string) domain.Priority {
	s.enter(ctx, "priority")
	if s.Priority == "" {
		return domain.PriorityMedium
	}
	return s.Priority
}

func (s *StubAdvisor) BreakdownTask(ctx context.Context, _ string) []domain.SubTask {
	s.enter(ctx, "breakdown")
	subs := make([]domain.SubTask, 0, len(s.SubTaskTitles))
	for i, title := range s.SubTaskTitles {
		subs = append(subs, domain.SubTask{ID: fmt.Sprintf("st-%d", i+1), Title: title})
	}
	return subs
}

func (s *StubAdvisor) GetAdvice(ctx context.Context, tasks []domain.Task) string {
	s.enter(ctx, "advice")
	if s.Advice == "" {
		return "Focus on your highest-priority task first."
	}
	return s.Advice
}

func (s *StubAdvisor) Available(context.Context) bool { return !s.Offline }
