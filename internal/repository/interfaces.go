package repository

import (
	"context"

	"github.com/alexanderramin/prodsched/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Task, error)
	// ListInRange returns tasks whose planned window overlaps w.
	ListInRange(ctx context.Context, w domain.Window) ([]*domain.Task, error)
	// MissingIDs returns the subset of ids that have no task row.
	MissingIDs(ctx context.Context, ids []string) ([]string, error)
	// Update writes t if its Version still matches and bumps t.Version.
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Resource, error)
	ListByType(ctx context.Context, rt domain.ResourceType) ([]*domain.Resource, error)
	ListByDepartment(ctx context.Context, department string) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	GetByPair(ctx context.Context, taskID, resourceID string) (*domain.Assignment, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.Assignment, error)
	// ListOverlapping returns bookings of resourceID that strictly overlap w,
	// skipping those that belong to excludeTaskID (pass "" to keep all).
	ListOverlapping(ctx context.Context, resourceID string, w domain.Window, excludeTaskID string) ([]domain.Booking, error)
	// ListInRange returns every booking overlapping w, optionally limited to
	// one resource.
	ListInRange(ctx context.Context, w domain.Window, resourceID string) ([]domain.Booking, error)
	CountByResource(ctx context.Context, resourceID string) (int, error)
	Update(ctx context.Context, a *domain.Assignment) error
	Delete(ctx context.Context, id string) error
	DeleteByPair(ctx context.Context, taskID, resourceID string) error
}
