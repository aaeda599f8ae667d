package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/alexanderramin/zentask/internal/store"
	"github.com/alexanderramin/zentask/internal/view"
)

type taskListResponse struct {
	Tab   view.Tab      `json:"tab"`
	Query string        `json:"query"`
	Tasks []domain.Task `json:"tasks"`
	Stats view.Stats    `json:"stats"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tab, err := view.ParseTab(r.URL.Query().Get("tab"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	query := r.URL.Query().Get("q")

	tasks := s.store.Snapshot()
	writeJSON(w, http.StatusOK, taskListResponse{
		Tab:   tab,
		Query: query,
		Tasks: view.Filter(tasks, tab, query),
		Stats: view.Compute(tasks),
	})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := s.store.Add(r.Context(), store.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		Category:    req.Category,
	})
	if errors.Is(err, store.ErrEmptyTitle) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := s.store.ToggleCompleted(r.Context(), id)
	if err != nil {
		s.internalError(w, "toggle task", err)
		return
	}
	s.writeTask(w, id, ok)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ok, err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.internalError(w, "delete task", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleSubTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := s.store.ToggleSubTask(r.Context(), id, chi.URLParam(r, "subID"))
	if err != nil {
		s.internalError(w, "toggle sub-task", err)
		return
	}
	s.writeTask(w, id, ok)
}

// writeTask responds with the current state of a task after a mutation
// reported whether it found its target.
func (s *Server) writeTask(w http.ResponseWriter, id string, found bool) {
	task, ok := s.store.Get(id)
	if !found || !ok {
		writeError(w, http.StatusNotFound, "task or sub-task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.Compute(s.store.Snapshot()))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.CategoryCounts(s.store.Snapshot()))
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, op+" failed")
}
