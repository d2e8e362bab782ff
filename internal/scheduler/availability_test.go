package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableResources(t *testing.T) {
	press := &domain.Resource{ID: "press", Name: "Press", IsActive: true}
	welder := &domain.Resource{ID: "welder", Name: "Welder", IsActive: true}
	lathe := &domain.Resource{ID: "lathe", Name: "Lathe", IsActive: true}
	retired := &domain.Resource{ID: "retired", Name: "Retired", IsActive: false}

	bookings := []domain.Booking{
		booking("t1", "press", hour(8), hour(12), 100),
		booking("t2", "welder", hour(8), hour(12), 60),
	}

	got := AvailableResources([]*domain.Resource{press, welder, lathe, retired}, bookings)

	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"welder", "lathe"}, ids)
}

func TestGroupSlots(t *testing.T) {
	press := &domain.Resource{ID: "press", Name: "Press"}
	idle := &domain.Resource{ID: "idle", Name: "Idle"}

	bookings := []domain.Booking{
		booking("t2", "press", hour(13), hour(15), 50),
		booking("t1", "press", hour(8), hour(12), 100),
	}

	got := GroupSlots([]*domain.Resource{press, idle}, bookings)

	require.Len(t, got, 2)
	require.Len(t, got[0].Slots, 2)
	assert.Equal(t, "t1", got[0].Slots[0].TaskID)
	assert.Equal(t, "Task t1", got[0].Slots[0].TaskTitle)
	assert.Equal(t, "t2", got[0].Slots[1].TaskID)
	assert.Equal(t, "idle", got[1].ResourceID)
	assert.Empty(t, got[1].Slots)
}

func TestShiftPlan_PreservesDurationsAndOffsets(t *testing.T) {
	task := &domain.Task{
		PlannedStart: time.Date(2023, 1, 16, 8, 0, 0, 0, time.UTC),
		PlannedEnd:   time.Date(2023, 1, 16, 10, 0, 0, 0, time.UTC),
	}
	full := &domain.Assignment{Start: task.PlannedStart, End: task.PlannedEnd}
	partial := &domain.Assignment{
		Start: time.Date(2023, 1, 16, 8, 30, 0, 0, time.UTC),
		End:   time.Date(2023, 1, 16, 9, 0, 0, 0, time.UTC),
	}

	delta := ShiftPlan(task, []*domain.Assignment{full, partial}, time.Date(2023, 1, 17, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 25*time.Hour, delta)
	assert.Equal(t, time.Date(2023, 1, 17, 11, 0, 0, 0, time.UTC), task.PlannedEnd)
	assert.Equal(t, time.Date(2023, 1, 17, 9, 0, 0, 0, time.UTC), full.Start)
	assert.Equal(t, time.Date(2023, 1, 17, 11, 0, 0, 0, time.UTC), full.End)
	assert.Equal(t, time.Date(2023, 1, 17, 9, 30, 0, 0, time.UTC), partial.Start)
	assert.Equal(t, 30*time.Minute, partial.Window().Duration())
}
