package service

import (
	"context"
	"time"

	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/google/uuid"
)

type resourceService struct {
	resources repository.ResourceRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewResourceService(
	resources repository.ResourceRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ResourceService {
	return &resourceService{
		resources: resources,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *resourceService) Create(ctx context.Context, r *domain.Resource) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	rt, err := domain.ParseResourceType(string(r.Type))
	if err != nil {
		return err
	}
	r.Type = rt
	if err := r.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	r.IsActive = true
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Version = 1
	return s.resources.Create(ctx, r)
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *resourceService) List(ctx context.Context, activeOnly bool) ([]*domain.Resource, error) {
	return s.resources.List(ctx, activeOnly)
}

func (s *resourceService) ListByType(ctx context.Context, rt domain.ResourceType) ([]*domain.Resource, error) {
	parsed, err := domain.ParseResourceType(string(rt))
	if err != nil {
		return nil, err
	}
	return s.resources.ListByType(ctx, parsed)
}

func (s *resourceService) ListByDepartment(ctx context.Context, department string) ([]*domain.Resource, error) {
	return s.resources.ListByDepartment(ctx, department)
}

func (s *resourceService) Update(ctx context.Context, r *domain.Resource) error {
	rt, err := domain.ParseResourceType(string(r.Type))
	if err != nil {
		return err
	}
	r.Type = rt
	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	return s.resources.Update(ctx, r)
}

func (s *resourceService) Delete(ctx context.Context, id string) (outcome domain.DeleteOutcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"resource_id": id}
	defer func() {
		fields["outcome"] = string(outcome)
		observe(ctx, s.observer, "delete-resource", startedAt, fields, &err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txResources := repository.NewSQLiteResourceRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		r, err := txResources.GetByID(ctx, id)
		if err != nil {
			return err
		}
		n, err := txAssignments.CountByResource(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			outcome = domain.ResourceDeleted
			return txResources.Delete(ctx, id)
		}

		fields["assignments"] = n
		r.IsActive = false
		r.UpdatedAt = time.Now().UTC()
		outcome = domain.ResourceDeactivated
		return txResources.Update(ctx, r)
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}
