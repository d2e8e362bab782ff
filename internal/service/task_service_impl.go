package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks       repository.TaskRepo
	assignments repository.AssignmentRepo
	observer    UseCaseObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	assignments repository.AssignmentRepo,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:       tasks,
		assignments: assignments,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task, actor domain.Actor) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.TaskPlanned
	}
	st, err := domain.ParseTaskStatus(string(t.Status))
	if err != nil {
		return err
	}
	// Later statuses are reached through UpdateStatus, which stamps actuals.
	if st != domain.TaskPlanned {
		return fmt.Errorf("%w: new tasks start as %s, not %s", domain.ErrInvalidInput, domain.TaskPlanned, st)
	}
	t.Status = st
	if t.Priority == 0 {
		t.Priority = domain.DefaultTaskPriority
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.checkPredecessors(ctx, t.PredecessorIDs); err != nil {
		return err
	}

	t.CreatedAt = time.Now().UTC()
	t.CreatedBy = actor
	t.UpdatedAt = nil
	t.UpdatedBy = nil
	t.Version = 1
	return s.tasks.Create(ctx, t)
}

// Update edits the descriptive fields of a stored task. The status and the
// planned window are left to UpdateStatus and RescheduleTask; a request
// that changes either is rejected. A zero Version means "current".
func (s *taskService) Update(ctx context.Context, t *domain.Task, actor domain.Actor) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": t.ID}
	defer observe(ctx, s.observer, "update-task", startedAt, fields, &err)

	current, err := s.tasks.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if t.Status != "" {
		st, err := domain.ParseTaskStatus(string(t.Status))
		if err != nil {
			return err
		}
		if st != current.Status {
			return fmt.Errorf("%w: status changes go through the status update", domain.ErrInvalidInput)
		}
	}
	if windowChanged(t.PlannedStart, current.PlannedStart) || windowChanged(t.PlannedEnd, current.PlannedEnd) {
		return fmt.Errorf("%w: reschedule the task to move its planned window", domain.ErrInvalidInput)
	}

	current.OrderID = t.OrderID
	current.Title = t.Title
	current.Description = t.Description
	current.Type = t.Type
	current.Priority = t.Priority
	current.EstimatedDurationMin = t.EstimatedDurationMin
	current.PredecessorIDs = t.PredecessorIDs
	current.Notes = t.Notes
	if t.Version != 0 {
		current.Version = t.Version
	}

	if err := current.Validate(); err != nil {
		return err
	}
	if err := s.checkPredecessors(ctx, current.PredecessorIDs); err != nil {
		return err
	}
	current.Touch(actor, time.Now().UTC())
	if err := s.tasks.Update(ctx, current); err != nil {
		return err
	}
	*t = *current
	return nil
}

func windowChanged(requested, stored time.Time) bool {
	return !requested.IsZero() && !requested.Truncate(time.Second).Equal(stored)
}

func (s *taskService) checkPredecessors(ctx context.Context, ids []string) error {
	missing, err := s.tasks.MissingIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: unknown predecessor tasks %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) GetDetail(ctx context.Context, id string) (*app.TaskDetail, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	as, err := s.assignments.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return &app.TaskDetail{Task: t, Assignments: as}, nil
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) ListByOrder(ctx context.Context, orderID string) ([]*domain.Task, error) {
	return s.tasks.ListByOrder(ctx, orderID)
}

func (s *taskService) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	if err := domain.ValidateWindow(from, to); err != nil {
		return nil, err
	}
	return s.tasks.ListInRange(ctx, domain.Window{Start: from, End: to})
}

func (s *taskService) UpdateStatus(ctx context.Context, req app.StatusUpdateRequest) (task *domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": req.TaskID, "status": req.Status}
	defer observe(ctx, s.observer, "update-task-status", startedAt, fields, &err)

	next, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		return nil, err
	}
	task, err = s.tasks.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	fields["from"] = string(task.Status)
	if err = task.TransitionTo(next, req.CompletionPct, req.Actor(), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
