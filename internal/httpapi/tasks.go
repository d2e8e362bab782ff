package httpapi

import (
	"net/http"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/go-chi/chi/v5"
)

type createTaskRequest struct {
	domain.Task
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type unassignResponse struct {
	TaskID     string `json:"taskId"`
	ResourceID string `json:"resourceId"`
	Removed    bool   `json:"removed"`
}

type conflictsResponse struct {
	HasConflicts bool              `json:"hasConflicts"`
	Conflicts    []domain.Conflict `json:"conflicts"`
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// listTasks returns every task, or only those overlapping from/to when
// both are given.
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		tasks []*domain.Task
		err   error
	)
	if q.Get("from") == "" && q.Get("to") == "" {
		tasks, err = s.svc.Tasks.List(r.Context())
	} else {
		from, to, rerr := queryRange(r, "from", "to")
		if rerr != nil {
			s.handleError(w, r, rerr)
			return
		}
		tasks, err = s.svc.Tasks.ListInRange(r.Context(), from, to)
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, orEmpty(tasks))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	task := req.Task
	if err := s.svc.Tasks.Create(r.Context(), &task, app.NewActor(req.UserID, req.UserName)); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, &task)
}

// updateTask decodes the body onto the stored task, so omitted fields keep
// their current values.
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	stored, err := s.svc.Tasks.GetByID(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	req := createTaskRequest{Task: *stored}
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	task := req.Task
	task.ID = id
	if err := s.svc.Tasks.Update(r.Context(), &task, app.NewActor(req.UserID, req.UserName)); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, &task)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.Tasks.GetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	detail.Assignments = orEmpty(detail.Assignments)
	s.writeJSON(w, r, http.StatusOK, detail)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTasksByOrder(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Tasks.ListByOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, orEmpty(tasks))
}

func (s *Server) updateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req app.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	req.TaskID = chi.URLParam(r, "id")
	task, err := s.svc.Tasks.UpdateStatus(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, task)
}

func (s *Server) taskConflicts(w http.ResponseWriter, r *http.Request) {
	conflicts, err := s.svc.Conflicts.DetectConflicts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, conflictsResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    orEmpty(conflicts),
	})
}

func (s *Server) scanConflicts(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryRange(r, "from", "to")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	conflicts, err := s.svc.Conflicts.ScanConflicts(r.Context(), from, to)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, conflictsResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    orEmpty(conflicts),
	})
}

func (s *Server) rescheduleTask(w http.ResponseWriter, r *http.Request) {
	var req app.RescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	resp, err := s.svc.Reschedule.RescheduleTask(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	resp.Assignments = orEmpty(resp.Assignments)
	resp.Conflicts = orEmpty(resp.Conflicts)
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) assignResource(w http.ResponseWriter, r *http.Request) {
	var req app.AssignResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	resp, err := s.svc.Assignments.AssignResource(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	resp.Conflicts = orEmpty(resp.Conflicts)
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	s.writeJSON(w, r, status, resp)
}

func (s *Server) unassignResource(w http.ResponseWriter, r *http.Request) {
	taskID, resourceID := chi.URLParam(r, "taskId"), chi.URLParam(r, "resourceId")
	removed, err := s.svc.Assignments.UnassignResource(r.Context(), taskID, resourceID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, unassignResponse{TaskID: taskID, ResourceID: resourceID, Removed: removed})
}

func (s *Server) removeAssignment(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Assignments.RemoveResourceFromTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
