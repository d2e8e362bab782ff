package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/alexanderramin/prodsched/internal/scheduler"
)

type rescheduleService struct {
	conflicts ConflictService
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewRescheduleService(conflicts ConflictService, uow db.UnitOfWork, observers ...UseCaseObserver) RescheduleService {
	return &rescheduleService{
		conflicts: conflicts,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// RescheduleTask moves a task and all of its assignments by the same delta
// in one transaction, then reports the conflicts at the new position.
func (s *rescheduleService) RescheduleTask(ctx context.Context, req app.RescheduleRequest) (resp *app.RescheduleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": req.TaskID}
	defer observe(ctx, s.observer, "reschedule-task", startedAt, fields, &err)

	if req.NewStart.IsZero() {
		return nil, fmt.Errorf("%w: new start time is required", domain.ErrInvalidInput)
	}

	resp = &app.RescheduleResponse{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		task, err := txTasks.GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		assignments, err := txAssignments.ListByTask(ctx, req.TaskID)
		if err != nil {
			return err
		}

		resp.Delta = scheduler.ShiftPlan(task, assignments, req.NewStart)
		task.Touch(req.Actor(), time.Now().UTC())

		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		for _, a := range assignments {
			if err := txAssignments.Update(ctx, a); err != nil {
				return fmt.Errorf("shifting assignment %s: %w", a.ID, err)
			}
		}
		resp.Task = task
		resp.Assignments = assignments
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["delta_min"] = resp.Delta.Minutes()
	fields["assignments"] = len(resp.Assignments)

	resp.Conflicts, err = s.conflicts.DetectConflicts(ctx, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("detecting conflicts: %w", err)
	}
	resp.HasConflicts = len(resp.Conflicts) > 0
	fields["conflicts"] = len(resp.Conflicts)
	return resp, nil
}
