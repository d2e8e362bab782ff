package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectConflicts_Scenario160(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	r := h.seedResource(t, "R")
	t1 := h.seedTask(t, "Task1", at(15, 10), at(15, 14))
	t2 := h.seedTask(t, "Task2", at(15, 12), at(15, 16))
	h.seedAssignment(t, t1, r, at(15, 10), at(15, 14), 100)
	h.seedAssignment(t, t2, r, at(15, 12), at(15, 16), 60)

	got, err := h.conflictSvc.DetectConflicts(ctx, t1.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	c := got[0]
	assert.Equal(t, r.ID, c.ResourceID)
	assert.Equal(t, "R", c.ResourceName)
	assert.Equal(t, t1.ID, c.TaskID)
	assert.Equal(t, t2.ID, c.ConflictingTaskID)
	assert.Equal(t, "Task2", c.ConflictingTaskTitle)
	assert.True(t, at(15, 12).Equal(c.Start))
	assert.True(t, at(15, 14).Equal(c.End))
	assert.InDelta(t, 160.0, c.TotalAllocation, 1e-9)

	// Symmetric from the other side.
	back, err := h.conflictSvc.DetectConflicts(ctx, t2.ID)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, t1.ID, back[0].ConflictingTaskID)
	assert.True(t, c.Start.Equal(back[0].Start))
	assert.True(t, c.End.Equal(back[0].End))
}

func TestDetectConflicts_TouchingWindowsDoNotConflict(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	r := h.seedResource(t, "R")
	t1 := h.seedTask(t, "Morning", at(15, 8), at(15, 12))
	t2 := h.seedTask(t, "Afternoon", at(15, 12), at(15, 16))
	h.seedAssignment(t, t1, r, at(15, 8), at(15, 12), 100)
	h.seedAssignment(t, t2, r, at(15, 12), at(15, 16), 100)

	got, err := h.conflictSvc.DetectConflicts(ctx, t1.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got, "no conflicts is an empty list, not nil")
}

func TestDetectConflicts_NoAssignmentsAndUnknownTask(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	task := h.seedTask(t, "Idle", at(15, 8), at(15, 12))

	got, err := h.conflictSvc.DetectConflicts(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = h.conflictSvc.DetectConflicts(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScanConflicts_EachPairOnceWithinRange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	r := h.seedResource(t, "R")
	t1 := h.seedTask(t, "A", at(15, 8), at(15, 12))
	t2 := h.seedTask(t, "B", at(15, 10), at(15, 14))
	t3 := h.seedTask(t, "C", at(17, 8), at(17, 12))
	t4 := h.seedTask(t, "D", at(17, 9), at(17, 10))
	h.seedAssignment(t, t1, r, at(15, 8), at(15, 12), 80)
	h.seedAssignment(t, t2, r, at(15, 10), at(15, 14), 80)
	h.seedAssignment(t, t3, r, at(17, 8), at(17, 12), 80)
	h.seedAssignment(t, t4, r, at(17, 9), at(17, 10), 80)

	got, err := h.conflictSvc.ScanConflicts(ctx, at(15, 0), at(16, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, t1.ID, got[0].TaskID)
	assert.Equal(t, t2.ID, got[0].ConflictingTaskID)

	all, err := h.conflictSvc.ScanConflicts(ctx, at(14, 0), at(18, 0))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestConflictService_EmptyBookingNeverConflicts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	r := h.seedResource(t, "R")

	long := h.seedTask(t, "A", at(16, 9), at(16, 12))
	point := h.seedTask(t, "B", at(16, 10), at(16, 10))
	h.seedAssignment(t, long, r, at(16, 9), at(16, 12), 50)
	h.seedAssignment(t, point, r, at(16, 10), at(16, 10), 100)

	got, err := h.conflictSvc.DetectConflicts(ctx, point.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = h.conflictSvc.DetectConflicts(ctx, long.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	scanned, err := h.conflictSvc.ScanConflicts(ctx, at(16, 0), at(17, 0))
	require.NoError(t, err)
	assert.Empty(t, scanned)
}
