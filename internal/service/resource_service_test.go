package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceService_CreateNormalizesType(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := &domain.Resource{Name: "Line 2", Type: "line", Department: "Assembly"}
	require.NoError(t, h.resourceSvc.Create(ctx, r))
	assert.Equal(t, domain.ResourceLine, r.Type)
	assert.True(t, r.IsActive)

	bad := &domain.Resource{Name: "Robot", Type: "Android"}
	assert.ErrorIs(t, h.resourceSvc.Create(ctx, bad), domain.ErrInvalidInput)

	lines, err := h.resourceSvc.ListByType(ctx, "LINE")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, r.ID, lines[0].ID)
}

func TestResourceService_DeletePolicy(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	unused := h.seedResource(t, "Spare")
	outcome, err := h.resourceSvc.Delete(ctx, unused.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ResourceDeleted, outcome)
	_, err = h.resourceSvc.GetByID(ctx, unused.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	busy := h.seedResource(t, "Press")
	task := h.seedTask(t, "Cut", at(15, 8), at(15, 12))
	h.seedAssignment(t, task, busy, at(15, 8), at(15, 12), 100)

	outcome, err = h.resourceSvc.Delete(ctx, busy.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ResourceDeactivated, outcome)

	stored, err := h.resourceSvc.GetByID(ctx, busy.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	n, err := h.assignments.CountByResource(ctx, busy.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "deactivation keeps existing bookings")

	_, err = h.resourceSvc.Delete(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResourceService_UpdateDetectsStaleWrite(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	r := h.seedResource(t, "Press")

	a, err := h.resourceSvc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	b, err := h.resourceSvc.GetByID(ctx, r.ID)
	require.NoError(t, err)

	a.Department = "Finishing"
	require.NoError(t, h.resourceSvc.Update(ctx, a))

	b.Department = "Welding"
	assert.ErrorIs(t, h.resourceSvc.Update(ctx, b), repository.ErrConcurrencyConflict)
}
