package service

import (
	"context"
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/alexanderramin/prodsched/internal/scheduler"
)

type conflictService struct {
	tasks       repository.TaskRepo
	assignments repository.AssignmentRepo
}

func NewConflictService(tasks repository.TaskRepo, assignments repository.AssignmentRepo) ConflictService {
	return &conflictService{tasks: tasks, assignments: assignments}
}

// DetectConflicts checks each of the task's assignments against other
// tasks' bookings on the same resource.
func (s *conflictService) DetectConflicts(ctx context.Context, taskID string) ([]domain.Conflict, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	mine, err := s.assignments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	conflicts := []domain.Conflict{}
	for _, a := range mine {
		others, err := s.assignments.ListOverlapping(ctx, a.ResourceID, a.Window(), taskID)
		if err != nil {
			return nil, err
		}
		subject := domain.Booking{Assignment: *a, TaskTitle: task.Title, TaskStatus: task.Status}
		conflicts = append(conflicts, scheduler.DetectConflicts(subject, others)...)
	}
	return conflicts, nil
}

// ScanConflicts reports every conflicting pair whose overlap falls at
// least partly inside [from, to].
func (s *conflictService) ScanConflicts(ctx context.Context, from, to time.Time) ([]domain.Conflict, error) {
	if err := domain.ValidateWindow(from, to); err != nil {
		return nil, err
	}
	span := domain.Window{Start: from, End: to}
	bookings, err := s.assignments.ListInRange(ctx, span, "")
	if err != nil {
		return nil, err
	}

	conflicts := []domain.Conflict{}
	for _, c := range scheduler.FindConflicts(bookings) {
		if span.Overlaps(domain.Window{Start: c.Start, End: c.End}) {
			conflicts = append(conflicts, c)
		}
	}
	return conflicts, nil
}
