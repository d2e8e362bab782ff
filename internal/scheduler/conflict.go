package scheduler

import (
	"sort"

	"github.com/alexanderramin/prodsched/internal/domain"
)

// DetectConflicts checks one booking against others on the same resource.
// A conflict is a strict overlap whose combined allocation exceeds 100%.
// Bookings of the subject's own task never conflict with it.
func DetectConflicts(subject domain.Booking, others []domain.Booking) []domain.Conflict {
	var out []domain.Conflict
	for _, other := range others {
		if c, ok := conflictBetween(subject, other); ok {
			out = append(out, c)
		}
	}
	return out
}

// FindConflicts reports every conflicting pair among bookings exactly once.
// Within a pair, the booking that starts first (then lower task id) is the
// subject. Results are ordered by resource, then overlap start.
func FindConflicts(bookings []domain.Booking) []domain.Conflict {
	byResource := make(map[string][]domain.Booking)
	for _, b := range bookings {
		byResource[b.Assignment.ResourceID] = append(byResource[b.Assignment.ResourceID], b)
	}

	var out []domain.Conflict
	for _, group := range byResource {
		sortBookings(group)
		for i := range group {
			for j := i + 1; j < len(group); j++ {
				// Sorted by start: nothing later can overlap group[i].
				if !group[j].Assignment.Start.Before(group[i].Assignment.End) {
					break
				}
				if c, ok := conflictBetween(group[i], group[j]); ok {
					out = append(out, c)
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ResourceID != b.ResourceID {
			return a.ResourceID < b.ResourceID
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.TaskID != b.TaskID {
			return a.TaskID < b.TaskID
		}
		return a.ConflictingTaskID < b.ConflictingTaskID
	})
	return out
}

func conflictBetween(a, b domain.Booking) (domain.Conflict, bool) {
	if a.Assignment.TaskID == b.Assignment.TaskID || a.Assignment.ResourceID != b.Assignment.ResourceID {
		return domain.Conflict{}, false
	}
	overlap, ok := a.Assignment.Window().Intersect(b.Assignment.Window())
	if !ok {
		return domain.Conflict{}, false
	}
	total := a.Assignment.AllocationPct + b.Assignment.AllocationPct
	if total <= 100 {
		return domain.Conflict{}, false
	}
	name := a.ResourceName
	if name == "" {
		name = b.ResourceName
	}
	return domain.Conflict{
		ResourceID:           a.Assignment.ResourceID,
		ResourceName:         name,
		TaskID:               a.Assignment.TaskID,
		ConflictingTaskID:    b.Assignment.TaskID,
		ConflictingTaskTitle: b.TaskTitle,
		Start:                overlap.Start,
		End:                  overlap.End,
		TotalAllocation:      total,
	}, true
}

func sortBookings(bs []domain.Booking) {
	sort.SliceStable(bs, func(i, j int) bool {
		a, b := bs[i].Assignment, bs[j].Assignment
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.TaskID < b.TaskID
	})
}
