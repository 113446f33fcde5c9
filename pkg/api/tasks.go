package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tableflip.dev/focus/pkg/task"
)

// AddTaskRequest is the body of POST /tasks.
type AddTaskRequest struct {
	Priority string `json:"priority"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req AddTaskRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		s.Error(w, r, http.StatusBadRequest, "text is required")
		return
	}
	p, err := task.ParsePriority(req.Priority)
	if err != nil {
		s.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.tasks.AddTask(r.Context(), p, req.Text, req.Category)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var patch task.Patch
	if !s.decode(w, r, &patch) {
		return
	}
	if patch.Empty() {
		s.Error(w, r, http.StatusBadRequest, "no fields to update")
		return
	}
	s.respondFound(w, r)(s.tasks.UpdateTask(r.Context(), chi.URLParam(r, "id"), patch))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	s.respondFound(w, r)(s.tasks.DeleteTask(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	s.respondFound(w, r)(s.tasks.CompleteTask(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleUncompleteTask(w http.ResponseWriter, r *http.Request) {
	s.respondFound(w, r)(s.tasks.UncompleteTask(r.Context(), chi.URLParam(r, "id")))
}

// respondFound writes today's board on success and 404 for unknown ids.
func (s *Server) respondFound(w http.ResponseWriter, r *http.Request) func(bool, error) {
	return func(found bool, err error) {
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if !found {
			s.Error(w, r, http.StatusNotFound, "task not found in today's board")
			return
		}
		s.handleTodaysTasks(w, r)
	}
}

func (s *Server) handleTodaysTasks(w http.ResponseWriter, r *http.Request) {
	b, err := s.tasks.TodaysTasks(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, b)
}

func (s *Server) handleTodaysCompleted(w http.ResponseWriter, r *http.Request) {
	completed, err := s.tasks.TodaysCompletedTasks(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, completed)
}

func (s *Server) handleAllTasks(w http.ResponseWriter, r *http.Request) {
	all, err := s.tasks.AllTasks(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, all)
}

func (s *Server) handleCarryOver(w http.ResponseWriter, r *http.Request) {
	n, err := s.tasks.CarryOverIncompleteTasks(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, map[string]int{"carried": n})
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	entry, err := s.tasks.ArchiveCompletedTasks(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, entry)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := s.tasks.TaskHistory(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, entries)
}

func (s *Server) handleClearTasks(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.ClearAllTasks(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, nil)
}
