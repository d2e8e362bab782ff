package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/importer"
	"github.com/alexanderramin/prodsched/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func stampingPlan() *importer.PlanImport {
	return &importer.PlanImport{
		Resources: []importer.ResourceImport{
			{Ref: "press", Name: "Press 1", Type: "Machine"},
			{Ref: "kim", Name: "Kim", Type: "Person"},
		},
		Tasks: []importer.TaskImport{
			{Ref: "a", Title: "Stamp A", Start: "2023-01-16T10:00:00Z", End: "2023-01-16T14:00:00Z"},
			{Ref: "b", Title: "Stamp B", Start: "2023-01-16T12:00:00Z", End: "2023-01-16T16:00:00Z", PredecessorRefs: []string{"a"}},
		},
		Assignments: []importer.AssignmentImport{
			{TaskRef: "a", ResourceRef: "press"},
			{TaskRef: "b", ResourceRef: "press", AllocationPct: pct(60)},
			{TaskRef: "b", ResourceRef: "kim"},
		},
	}
}

func TestImportPlan_PersistsAndReportsConflicts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	result, err := h.importSvc.ImportPlanFromSchema(ctx, stampingPlan(), testutil.TestActor)
	require.NoError(t, err)

	assert.Len(t, result.ResourceIDs, 2)
	assert.Len(t, result.TaskIDs, 2)
	assert.Equal(t, 3, result.Assignments)
	require.True(t, result.HasConflicts)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, 160.0, result.Conflicts[0].TotalAllocation)
	assert.Equal(t, "Press 1", result.Conflicts[0].ResourceName)

	b, err := h.tasks.GetByID(ctx, result.TaskIDs["b"])
	require.NoError(t, err)
	assert.Equal(t, []string{result.TaskIDs["a"]}, b.PredecessorIDs)
	assert.Equal(t, testutil.TestActor, b.CreatedBy)

	as, err := h.assignments.ListByTask(ctx, result.TaskIDs["b"])
	require.NoError(t, err)
	assert.Len(t, as, 2)
}

func TestImportPlan_IgnoresConflictsBetweenExistingTasks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	saw := h.seedResource(t, "Saw")
	x := h.seedTask(t, "X", at(16, 8), at(16, 12))
	y := h.seedTask(t, "Y", at(16, 9), at(16, 11))
	h.seedAssignment(t, x, saw, at(16, 8), at(16, 12), 100)
	h.seedAssignment(t, y, saw, at(16, 9), at(16, 11), 100)

	plan := &importer.PlanImport{
		Resources: []importer.ResourceImport{{Ref: "lathe", Name: "Lathe", Type: "Machine"}},
		Tasks:     []importer.TaskImport{{Ref: "t", Title: "Turn", Start: "2023-01-16 08:00", End: "2023-01-16 12:00"}},
		Assignments: []importer.AssignmentImport{
			{TaskRef: "t", ResourceRef: "lathe"},
		},
	}
	result, err := h.importSvc.ImportPlanFromSchema(ctx, plan, domain.SystemActor)
	require.NoError(t, err)
	assert.False(t, result.HasConflicts)
	assert.Empty(t, result.Conflicts)
}

func TestImportPlan_ValidationFailureWritesNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	plan := stampingPlan()
	plan.Tasks[1].PredecessorRefs = []string{"missing"}
	plan.Resources[1].Type = "Robot"

	_, err := h.importSvc.ImportPlanFromSchema(ctx, plan, domain.SystemActor)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "(2 errors)")

	resources, err := h.resources.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestImportPlan_RollsBackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	failUoW := &testutil.FailingUoW{
		DB:     database,
		FailOn: 3,
		Match:  "INSERT INTO task_resource_assignments",
		Err:    errors.New("injected insert failure"),
	}
	h := newHarnessWithUoW(t, database, failUoW)
	ctx := context.Background()

	_, err := h.importSvc.ImportPlanFromSchema(ctx, stampingPlan(), domain.SystemActor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")

	tasks, err := h.tasks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks, "tasks written before the failure must be rolled back")
	resources, err := h.resources.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestImportPlan_FromFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"resources": [{"ref": "r", "name": "Line 3", "type": "Line"}],
		"tasks": [{"ref": "t", "title": "Assemble", "start": "2023-01-17 08:00", "end": "2023-01-17 16:00"}]
	}`), 0o644))

	result, err := h.importSvc.ImportPlan(context.Background(), path, domain.SystemActor)
	require.NoError(t, err)
	assert.Len(t, result.TaskIDs, 1)
	assert.Zero(t, result.Assignments)

	_, err = h.importSvc.ImportPlan(context.Background(), filepath.Join(t.TempDir(), "nope.json"), domain.SystemActor)
	assert.ErrorContains(t, err, "loading import file")
}

func TestImportPlan_ChecksAssignmentWindowsOutsideTheirTask(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	plan := &importer.PlanImport{
		Resources: []importer.ResourceImport{{Ref: "oven", Name: "Oven", Type: "Machine"}},
		Tasks: []importer.TaskImport{
			{Ref: "a", Title: "Cure A", Start: "2023-01-16T08:00:00Z", End: "2023-01-16T10:00:00Z"},
			{Ref: "b", Title: "Cure B", Start: "2023-01-16T10:00:00Z", End: "2023-01-16T12:00:00Z"},
		},
		Assignments: []importer.AssignmentImport{
			{TaskRef: "a", ResourceRef: "oven", Start: "2023-01-20T10:00:00Z", End: "2023-01-20T12:00:00Z"},
			{TaskRef: "b", ResourceRef: "oven", Start: "2023-01-20T11:00:00Z", End: "2023-01-20T13:00:00Z"},
		},
	}
	result, err := h.importSvc.ImportPlanFromSchema(ctx, plan, domain.SystemActor)
	require.NoError(t, err)
	require.True(t, result.HasConflicts)
	require.Len(t, result.Conflicts, 1)
	assert.True(t, time.Date(2023, 1, 20, 11, 0, 0, 0, time.UTC).Equal(result.Conflicts[0].Start))
}
