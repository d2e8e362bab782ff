package service

import (
	"context"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/importer"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task, actor domain.Actor) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetDetail(ctx context.Context, id string) (*app.TaskDetail, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Task, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task, actor domain.Actor) error
	UpdateStatus(ctx context.Context, req app.StatusUpdateRequest) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type ResourceService interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Resource, error)
	ListByType(ctx context.Context, rt domain.ResourceType) ([]*domain.Resource, error)
	ListByDepartment(ctx context.Context, department string) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	// Delete hard-deletes an unreferenced resource and deactivates one
	// that any assignment still points at.
	Delete(ctx context.Context, id string) (domain.DeleteOutcome, error)
}

type AssignmentService interface {
	AssignResource(ctx context.Context, req app.AssignResourceRequest) (*app.AssignResourceResponse, error)
	UnassignResource(ctx context.Context, taskID, resourceID string) (bool, error)
	RemoveResourceFromTask(ctx context.Context, assignmentID string) error
	ListTaskAssignments(ctx context.Context, taskID string) ([]*domain.Assignment, error)
}

type ConflictService interface {
	DetectConflicts(ctx context.Context, taskID string) ([]domain.Conflict, error)
	ScanConflicts(ctx context.Context, from, to time.Time) ([]domain.Conflict, error)
}

type RescheduleService interface {
	RescheduleTask(ctx context.Context, req app.RescheduleRequest) (*app.RescheduleResponse, error)
}

type AvailabilityService interface {
	GetResourceLoad(ctx context.Context, resourceID string, from, to time.Time) (map[string]float64, error)
	GetResourceLoadDetail(ctx context.Context, resourceID string, from, to time.Time) ([]app.DayLoad, error)
	GetAvailableResources(ctx context.Context, start, end time.Time) ([]*domain.Resource, error)
	GetResourceAvailability(ctx context.Context, from, to time.Time, resourceID string) ([]app.ResourceAvailability, error)
}

type ImportService interface {
	ImportPlan(ctx context.Context, filePath string, actor domain.Actor) (*app.ImportResult, error)
	ImportPlanFromSchema(ctx context.Context, plan *importer.PlanImport, actor domain.Actor) (*app.ImportResult, error)
}
