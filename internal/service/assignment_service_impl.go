package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/google/uuid"
)

type assignmentService struct {
	assignments repository.AssignmentRepo
	conflicts   ConflictService
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewAssignmentService(
	assignments repository.AssignmentRepo,
	conflicts ConflictService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		conflicts:   conflicts,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// AssignResource books a resource onto a task, updating the existing
// booking for the same pair in place. Conflicts are reported, not enforced.
func (s *assignmentService) AssignResource(ctx context.Context, req app.AssignResourceRequest) (resp *app.AssignResourceResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": req.TaskID, "resource_id": req.ResourceID}
	defer observe(ctx, s.observer, "assign-resource", startedAt, fields, &err)

	if req.TaskID == "" || req.ResourceID == "" {
		return nil, fmt.Errorf("%w: task and resource ids are required", domain.ErrInvalidInput)
	}
	// The store keeps UTC seconds; respond with what a re-read would return.
	start, end := storedTime(req.Start), storedTime(req.End)
	if err = domain.ValidateWindow(start, end); err != nil {
		return nil, err
	}
	if err = domain.ValidateAllocation(req.Allocation()); err != nil {
		return nil, err
	}

	var saved *domain.Assignment
	created := false
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txResources := repository.NewSQLiteResourceRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		if _, err := txTasks.GetByID(ctx, req.TaskID); err != nil {
			return err
		}
		res, err := txResources.GetByID(ctx, req.ResourceID)
		if err != nil {
			return err
		}
		if !res.IsActive {
			return fmt.Errorf("%w: resource %s is inactive", domain.ErrInvalidInput, res.Name)
		}

		existing, err := txAssignments.GetByPair(ctx, req.TaskID, req.ResourceID)
		switch {
		case err == nil:
			existing.Start = start
			existing.End = end
			existing.AllocationPct = req.Allocation()
			existing.Notes = req.Notes
			if err := txAssignments.Update(ctx, existing); err != nil {
				return err
			}
			saved = existing
			return nil
		case errors.Is(err, repository.ErrNotFound):
			a := &domain.Assignment{
				ID:            uuid.New().String(),
				TaskID:        req.TaskID,
				ResourceID:    req.ResourceID,
				Start:         start,
				End:           end,
				AllocationPct: req.Allocation(),
				Notes:         req.Notes,
				CreatedAt:     storedTime(time.Now()),
				CreatedBy:     req.Actor(),
				Version:       1,
			}
			if err := txAssignments.Create(ctx, a); err != nil {
				return err
			}
			saved = a
			created = true
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = created

	conflicts, err := s.conflicts.DetectConflicts(ctx, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("detecting conflicts: %w", err)
	}
	fields["conflicts"] = len(conflicts)

	return &app.AssignResourceResponse{
		Assignment:   saved,
		Created:      created,
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}

// UnassignResource reports false with ErrNotFound when the pair has no
// booking.
func (s *assignmentService) UnassignResource(ctx context.Context, taskID, resourceID string) (bool, error) {
	if err := s.assignments.DeleteByPair(ctx, taskID, resourceID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *assignmentService) RemoveResourceFromTask(ctx context.Context, assignmentID string) error {
	return s.assignments.Delete(ctx, assignmentID)
}

func (s *assignmentService) ListTaskAssignments(ctx context.Context, taskID string) ([]*domain.Assignment, error) {
	return s.assignments.ListByTask(ctx, taskID)
}

func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
