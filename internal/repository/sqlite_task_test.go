package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	pred := testutil.NewTestTask("Cut")
	require.NoError(t, repo.Create(ctx, pred))
	task := testutil.NewTestTask("Weld", testutil.WithPredecessors(pred.ID), testutil.WithPriority(1))
	require.NoError(t, repo.Create(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weld", fetched.Title)
	assert.Equal(t, 1, fetched.Priority)
	assert.Equal(t, domain.TaskPlanned, fetched.Status)
	assert.Equal(t, []string{pred.ID}, fetched.PredecessorIDs)
	assert.True(t, task.PlannedStart.Equal(fetched.PlannedStart))
	assert.True(t, task.PlannedEnd.Equal(fetched.PlannedEnd))
	assert.Equal(t, testutil.TestActor, fetched.CreatedBy)
	assert.Nil(t, fetched.UpdatedBy)
	assert.Nil(t, fetched.ActualStart)
	assert.Equal(t, 1, fetched.Version)
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_ListByOrderAndRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	day := 24 * time.Hour
	t1 := testutil.NewTestTask("A", testutil.WithOrderID("ord-1"))
	t2 := testutil.NewTestTask("B", testutil.WithOrderID("ord-1"),
		testutil.WithWindow(testutil.BaseTime.Add(day), testutil.BaseTime.Add(day+4*time.Hour)))
	t3 := testutil.NewTestTask("C", testutil.WithOrderID("ord-2"),
		testutil.WithWindow(testutil.BaseTime.Add(3*day), testutil.BaseTime.Add(3*day+time.Hour)))
	for _, tk := range []*domain.Task{t1, t2, t3} {
		require.NoError(t, repo.Create(ctx, tk))
	}

	byOrder, err := repo.ListByOrder(ctx, "ord-1")
	require.NoError(t, err)
	require.Len(t, byOrder, 2)
	assert.Equal(t, "A", byOrder[0].Title)
	assert.Equal(t, "B", byOrder[1].Title)

	inRange, err := repo.ListInRange(ctx, domain.Window{
		Start: testutil.BaseTime.Add(4 * time.Hour),
		End:   testutil.BaseTime.Add(2 * day),
	})
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	assert.Equal(t, t1.ID, inRange[0].ID)
	assert.Equal(t, t2.ID, inRange[1].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTaskRepo_MissingIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask("A")
	require.NoError(t, repo.Create(ctx, task))

	missing, err := repo.MissingIDs(ctx, []string{task.ID, "ghost"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, missing)

	missing, err = repo.MissingIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestTaskRepo_UpdateBumpsVersion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask("A")
	require.NoError(t, repo.Create(ctx, task))

	now := testutil.BaseTime.Add(time.Hour)
	require.NoError(t, task.TransitionTo(domain.TaskInProgress, 25, testutil.TestActor, now))
	require.NoError(t, repo.Update(ctx, task))
	assert.Equal(t, 2, task.Version)

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, fetched.Status)
	assert.Equal(t, 25, fetched.CompletionPct)
	assert.Equal(t, 2, fetched.Version)
	require.NotNil(t, fetched.ActualStart)
	assert.True(t, now.Equal(*fetched.ActualStart))
	require.NotNil(t, fetched.UpdatedBy)
	assert.Equal(t, testutil.TestActor, *fetched.UpdatedBy)
}

func TestTaskRepo_UpdateStaleVersion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask("A")
	require.NoError(t, repo.Create(ctx, task))

	first, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)

	first.Notes = "first writer"
	require.NoError(t, repo.Update(ctx, first))

	second.Notes = "second writer"
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, ErrConcurrencyConflict)

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "first writer", fetched.Notes)
}

func TestTaskRepo_UpdateMissing(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))

	err := repo.Update(context.Background(), testutil.NewTestTask("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_DeleteCascadesAssignments(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	tasks := NewSQLiteTaskRepo(db)
	resources := NewSQLiteResourceRepo(db)
	assignments := NewSQLiteAssignmentRepo(db)

	task := testutil.NewTestTask("A")
	res := testutil.NewTestResource("Press")
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, resources.Create(ctx, res))
	require.NoError(t, assignments.Create(ctx, testutil.NewTestAssignment(task, res.ID)))

	require.NoError(t, tasks.Delete(ctx, task.ID))

	n, err := assignments.CountByResource(ctx, res.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, tasks.Delete(ctx, task.ID), ErrNotFound)
}
