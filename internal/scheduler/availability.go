package scheduler

import (
	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
)

// AvailableResources keeps the active resources that have no fully
// allocated booking among bookings. Callers pass the bookings overlapping
// the window of interest. Partially allocated resources stay available.
func AvailableResources(resources []*domain.Resource, bookings []domain.Booking) []*domain.Resource {
	busy := make(map[string]bool)
	for _, b := range bookings {
		if b.Assignment.FullyAllocated() {
			busy[b.Assignment.ResourceID] = true
		}
	}
	var out []*domain.Resource
	for _, r := range resources {
		if r.IsActive && !busy[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// GroupSlots lists each resource's booked slots in start order. Every
// resource given appears, even when it has no bookings.
func GroupSlots(resources []*domain.Resource, bookings []domain.Booking) []app.ResourceAvailability {
	sorted := append([]domain.Booking(nil), bookings...)
	sortBookings(sorted)

	slots := make(map[string][]app.TimeSlot, len(resources))
	for _, b := range sorted {
		slots[b.Assignment.ResourceID] = append(slots[b.Assignment.ResourceID], app.TimeSlot{
			Start:         b.Assignment.Start,
			End:           b.Assignment.End,
			TaskID:        b.Assignment.TaskID,
			TaskTitle:     b.TaskTitle,
			AllocationPct: b.Assignment.AllocationPct,
		})
	}

	out := make([]app.ResourceAvailability, 0, len(resources))
	for _, r := range resources {
		out = append(out, app.ResourceAvailability{
			ResourceID:   r.ID,
			ResourceName: r.Name,
			Slots:        slots[r.ID],
		})
	}
	return out
}
