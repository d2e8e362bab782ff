package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/prodsched/internal/db"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/alexanderramin/prodsched/internal/testutil"
	"github.com/stretchr/testify/require"
)

// harness wires every service against one in-memory database.
type harness struct {
	db          *sql.DB
	uow         db.UnitOfWork
	tasks       *repository.SQLiteTaskRepo
	resources   *repository.SQLiteResourceRepo
	assignments *repository.SQLiteAssignmentRepo

	taskSvc       TaskService
	resourceSvc   ResourceService
	assignSvc     AssignmentService
	conflictSvc   ConflictService
	rescheduleSvc RescheduleService
	availSvc      AvailabilityService
	importSvc     ImportService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newHarnessWithUoW(t, database, testutil.NewTestUoW(database))
}

func newHarnessWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *harness {
	t.Helper()
	h := &harness{
		db:          database,
		uow:         uow,
		tasks:       repository.NewSQLiteTaskRepo(database),
		resources:   repository.NewSQLiteResourceRepo(database),
		assignments: repository.NewSQLiteAssignmentRepo(database),
	}
	h.conflictSvc = NewConflictService(h.tasks, h.assignments)
	h.taskSvc = NewTaskService(h.tasks, h.assignments)
	h.resourceSvc = NewResourceService(h.resources, uow)
	h.assignSvc = NewAssignmentService(h.assignments, h.conflictSvc, uow)
	h.rescheduleSvc = NewRescheduleService(h.conflictSvc, uow)
	h.availSvc = NewAvailabilityService(h.resources, h.assignments, 8)
	h.importSvc = NewImportService(h.conflictSvc, uow)
	return h
}

func (h *harness) seedTask(t *testing.T, title string, start, end time.Time) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(title, testutil.WithWindow(start, end))
	require.NoError(t, h.tasks.Create(context.Background(), task))
	return task
}

func (h *harness) seedResource(t *testing.T, name string, opts ...testutil.ResourceOption) *domain.Resource {
	t.Helper()
	r := testutil.NewTestResource(name, opts...)
	require.NoError(t, h.resources.Create(context.Background(), r))
	return r
}

func (h *harness) seedAssignment(t *testing.T, task *domain.Task, r *domain.Resource, start, end time.Time, pct float64) *domain.Assignment {
	t.Helper()
	a := testutil.NewTestAssignment(task, r.ID,
		testutil.WithAssignmentWindow(start, end),
		testutil.WithAllocation(pct))
	require.NoError(t, h.assignments.Create(context.Background(), a))
	return a
}

func at(day, hour int) time.Time {
	return time.Date(2023, 1, day, hour, 0, 0, 0, time.UTC)
}

func pct(v float64) *float64 {
	return &v
}
