package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/importer"
	"github.com/alexanderramin/prodsched/internal/repository"
)

type importService struct {
	conflicts ConflictService
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewImportService(conflicts ConflictService, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		conflicts: conflicts,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportPlan(ctx context.Context, filePath string, actor domain.Actor) (*app.ImportResult, error) {
	plan, err := importer.LoadPlan(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportPlanFromSchema(ctx, plan, actor)
}

// ImportPlanFromSchema validates the whole plan, then writes it in one
// transaction. Conflicts touching imported tasks are reported afterwards.
func (s *importService) ImportPlanFromSchema(ctx context.Context, in *importer.PlanImport, actor domain.Actor) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"resources":   len(in.Resources),
		"tasks":       len(in.Tasks),
		"assignments": len(in.Assignments),
	}
	defer observe(ctx, s.observer, "import-plan", startedAt, fields, &err)

	if errs := importer.ValidatePlan(in); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	plan, err := importer.Convert(in, actor, time.Now())
	if err != nil {
		return nil, fmt.Errorf("converting import plan: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txResources := repository.NewSQLiteResourceRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		for _, r := range plan.Resources {
			if err := txResources.Create(ctx, r); err != nil {
				return fmt.Errorf("creating resource %q: %w", r.Name, err)
			}
		}
		for _, t := range plan.Tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Title, err)
			}
		}
		for _, a := range plan.Assignments {
			if err := txAssignments.Create(ctx, a); err != nil {
				return fmt.Errorf("creating assignment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		ResourceIDs: make(map[string]string, len(in.Resources)),
		TaskIDs:     make(map[string]string, len(in.Tasks)),
		Assignments: len(plan.Assignments),
		Conflicts:   []domain.Conflict{},
	}
	for i, r := range in.Resources {
		result.ResourceIDs[r.Ref] = plan.Resources[i].ID
	}
	for i, t := range in.Tasks {
		result.TaskIDs[t.Ref] = plan.Tasks[i].ID
	}

	if len(plan.Assignments) > 0 {
		conflicts, err := s.importedConflicts(ctx, plan.Assignments)
		if err != nil {
			return nil, fmt.Errorf("detecting conflicts: %w", err)
		}
		result.Conflicts = conflicts
		result.HasConflicts = len(conflicts) > 0
	}
	fields["conflicts"] = len(result.Conflicts)
	return result, nil
}

// importedConflicts scans the span covered by the imported assignments and
// keeps findings that involve at least one imported task. Assignment windows
// may lie outside their task's planned window.
func (s *importService) importedConflicts(ctx context.Context, assignments []*domain.Assignment) ([]domain.Conflict, error) {
	imported := make(map[string]bool, len(assignments))
	span := assignments[0].Window()
	for _, a := range assignments {
		imported[a.TaskID] = true
		if a.Start.Before(span.Start) {
			span.Start = a.Start
		}
		if a.End.After(span.End) {
			span.End = a.End
		}
	}

	all, err := s.conflicts.ScanConflicts(ctx, span.Start, span.End)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Conflict, 0, len(all))
	for _, c := range all {
		if imported[c.TaskID] || imported[c.ConflictingTaskID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return fmt.Errorf("%w: import validation failed (%d errors):%s", domain.ErrInvalidInput, len(errs), b.String())
}
