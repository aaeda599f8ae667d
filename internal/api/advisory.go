package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/zentask/internal/domain"
)

type priorityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type priorityResponse struct {
	Priority domain.Priority `json:"priority"`
}

type breakdownResponse struct {
	Task    domain.Task `json:"task"`
	Applied bool        `json:"applied"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

// acquire claims an in-flight flag. It writes 409 and returns false when a
// call of the same kind is already running.
func acquire(w http.ResponseWriter, flag *atomic.Bool, op string) bool {
	if !flag.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, op+" already in progress")
		return false
	}
	return true
}

func (s *Server) handleSuggestPriority(w http.ResponseWriter, r *http.Request) {
	var req priorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	if !acquire(w, &s.suggestingPriority, "priority suggestion") {
		return
	}
	defer s.suggestingPriority.Store(false)

	p := s.advisor.SuggestPriority(r.Context(), req.Title, req.Description)
	writeJSON(w, http.StatusOK, priorityResponse{Priority: p})
}

// handleBreakdown decomposes a task that has no sub-tasks yet. The result is
// applied only if the task still has none when the advisor returns.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	task, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if len(task.SubTasks) > 0 {
		writeError(w, http.StatusConflict, "task already has sub-tasks")
		return
	}

	if !acquire(w, &s.breakingDown, "breakdown") {
		return
	}
	defer s.breakingDown.Store(false)

	subTasks := s.advisor.BreakdownTask(r.Context(), task.Title)
	applied, err := s.store.ApplyBreakdown(r.Context(), id, subTasks)
	if err != nil {
		s.internalError(w, "apply breakdown", err)
		return
	}

	current, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, breakdownResponse{Task: current, Applied: applied})
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if !acquire(w, &s.loadingAdvice, "advice") {
		return
	}
	defer s.loadingAdvice.Store(false)

	advice := s.advisor.GetAdvice(r.Context(), s.store.Snapshot())
	writeJSON(w, http.StatusOK, adviceResponse{Advice: advice})
}

func (s *Server) handleAIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"available": s.advisor.Available(r.Context())})
}
