package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/repository"
	"github.com/alexanderramin/prodsched/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConcurrentHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewFileTestDB(t)
	return newHarnessWithUoW(t, database, testutil.NewTestUoW(database))
}

// Every racing call must either land or come back as a retryable
// ErrConcurrencyConflict, never as a raw driver error.
func TestConcurrentAssignResource_SamePair(t *testing.T) {
	h := newConcurrentHarness(t)
	ctx := context.Background()

	press := h.seedResource(t, "Press")
	task := h.seedTask(t, "Stamp", at(16, 8), at(16, 16))

	const callers = 16
	var ok, conflicts atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := h.assignSvc.AssignResource(ctx, app.AssignResourceRequest{
				TaskID:        task.ID,
				ResourceID:    press.ID,
				Start:         at(16, 8),
				End:           at(16, 8).Add(time.Duration(i+1) * 15 * time.Minute),
				AllocationPct: pct(50),
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, repository.ErrConcurrencyConflict):
				conflicts.Add(1)
			default:
				t.Errorf("caller %d: %v", i, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(callers), ok.Load()+conflicts.Load())
	assert.GreaterOrEqual(t, ok.Load(), int32(1))

	stored, err := h.assignments.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1, "the pair keeps a single booking")
	assert.Equal(t, int(ok.Load()), stored[0].Version, "one create plus one bump per later winner")
}

func TestConcurrentRescheduleTask_KeepsCascadeConsistent(t *testing.T) {
	h := newConcurrentHarness(t)
	ctx := context.Background()

	press := h.seedResource(t, "Press")
	crew := h.seedResource(t, "Crew")
	task := h.seedTask(t, "Assemble", at(16, 8), at(16, 12))
	h.seedAssignment(t, task, press, at(16, 8), at(16, 10), 100)
	h.seedAssignment(t, task, crew, at(16, 9), at(16, 12), 50)

	const callers = 8
	var ok, conflicts atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := h.rescheduleSvc.RescheduleTask(ctx, app.RescheduleRequest{
				TaskID:   task.ID,
				NewStart: at(17+i, 6),
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, repository.ErrConcurrencyConflict):
				conflicts.Add(1)
			default:
				t.Errorf("caller %d: %v", i, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(callers), ok.Load()+conflicts.Load())
	require.GreaterOrEqual(t, ok.Load(), int32(1))

	final, err := h.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, final.PlannedWindow().Duration())

	stored, err := h.assignments.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	offsets := map[string]time.Duration{press.ID: 0, crew.ID: time.Hour}
	for _, a := range stored {
		assert.Equal(t, offsets[a.ResourceID], a.Start.Sub(final.PlannedStart),
			"assignment %s moved with the winning reschedule", a.ResourceID)
	}
}
